// UCI Engine Sessions
//
// Copyright (c) 2024, 2025  The go-combat authors
//
// This file is part of go-combat.
//
// go-combat is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-combat is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-combat. If not, see
// <http://www.gnu.org/licenses/>

package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	combat "go-combat"
	cmd "go-combat/cmd"
)

// Score that a forced mate is folded to, less the distance to it.
const mateScore = 32000

// A Session talks the UCI protocol to one engine over a stream the
// launcher provided.  One session serves exactly one contest.
type Session struct {
	name string
	rwc  io.ReadWriteCloser
	scan *bufio.Scanner
	conf *cmd.Conf
}

// Connect performs the protocol handshake and returns the live
// session.  A handshake that does not reach "uciok" means the channel
// is unusable, which is fatal for the contest.
func Connect(rwc io.ReadWriteCloser, name string, conf *cmd.Conf) (*Session, error) {
	s := &Session{
		name: name,
		rwc:  rwc,
		scan: bufio.NewScanner(rwc),
		conf: conf,
	}

	if err := s.send("uci"); err != nil {
		return nil, err
	}
	for {
		line, err := s.recv()
		if err != nil {
			return nil, fmt.Errorf("handshake with %s: %w", name, err)
		}
		if line == "uciok" {
			return s, nil
		}
	}
}

func (s *Session) String() string {
	return s.name
}

func (s *Session) send(format string, args ...interface{}) error {
	line := fmt.Sprintf(format, args...)
	s.conf.Debug.Printf("%s > %s", s.name, line)
	_, err := fmt.Fprintf(s.rwc, "%s\n", line)
	return err
}

func (s *Session) recv() (string, error) {
	if !s.scan.Scan() {
		if err := s.scan.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := strings.TrimSpace(s.scan.Text())
	s.conf.Debug.Printf("%s < %s", s.name, line)
	return line, nil
}

// Configure pushes the non-default options and waits for the engine
// to settle.
func (s *Session) Configure(opts combat.Options) error {
	for _, o := range opts {
		err := s.send("setoption name %s value %s", o.Name, o.Value())
		if err != nil {
			return err
		}
	}
	if err := s.send("isready"); err != nil {
		return err
	}
	for {
		line, err := s.recv()
		if err != nil {
			return fmt.Errorf("configuring %s: %w", s.name, err)
		}
		if line == "readyok" {
			return nil
		}
	}
}

// Search asks the engine for the move of the current position, handed
// over as the opening plus the moves played so far.  Score, depth and
// time are taken from the last info line before the move; each may be
// missing without failing the search.
func (s *Session) Search(start combat.Position, moves []string,
	white, black *combat.Clock) (*combat.SearchInfo, error) {
	pos := "position fen " + string(start)
	if len(moves) > 0 {
		pos += " moves " + strings.Join(moves, " ")
	}
	if err := s.send(pos); err != nil {
		return nil, err
	}
	err := s.send("go wtime %d winc %d btime %d binc %d",
		white.RemainingMs, white.IncMs,
		black.RemainingMs, black.IncMs)
	if err != nil {
		return nil, err
	}

	info := &combat.SearchInfo{}
	for {
		line, err := s.recv()
		if err != nil {
			return nil, fmt.Errorf("search by %s: %w", s.name, err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "info":
			parseInfo(fields[1:], info)
		case "bestmove":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%s sent an empty bestmove", s.name)
			}
			info.Move = fields[1]
			return info, nil
		}
	}
}

// parseInfo picks score, depth and time out of an info line.  A field
// that fails to parse is left absent; never fails the contest.
func parseInfo(fields []string, info *combat.SearchInfo) {
	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "depth":
			if i+1 >= len(fields) {
				return
			}
			if d, err := strconv.Atoi(fields[i+1]); err == nil {
				info.Depth = &d
			}
			i++
		case "time":
			if i+1 >= len(fields) {
				return
			}
			if t, err := strconv.ParseInt(fields[i+1], 10, 64); err == nil {
				info.TimeMs = &t
			}
			i++
		case "score":
			if i+2 >= len(fields) {
				return
			}
			v, err := strconv.Atoi(fields[i+2])
			if err != nil {
				i += 2
				continue
			}
			switch fields[i+1] {
			case "cp":
				score := v
				info.Score = &score
			case "mate":
				// Fold mate distances into the
				// centipawn scale.
				score := mateScore - v
				if v < 0 {
					score = -mateScore - v
				}
				info.Score = &score
			}
			i += 2
		}
	}
}

// Terminate asks the engine to quit and closes the channel.  The
// launcher remains responsible for reaping the process itself.
func (s *Session) Terminate() error {
	// The engine may already be gone; closing is what matters.
	_ = s.send("quit")
	return s.rwc.Close()
}

var _ combat.Searcher = &Session{}
