// Rules Oracle Client
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

// The orchestrator does not know the rules of chess.  Legality and
// natural termination are delegated to an oracle subprocess speaking
// a line protocol:
//
//	> start <fen>        < ok | error <reason>
//	> apply <move>       < ok | error <reason>
//	> over               < yes | no
//	> class              < checkmate | stalemate | material |
//	                       fifty | repetition | none
//	> result             < 1-0 | 0-1 | 1/2-1/2 | *
//	> quit
package rules

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	combat "go-combat"
	cmd "go-combat/cmd"
	"go-combat/isol"
)

type oracle struct {
	launcher isol.Launcher
	rwc      io.ReadWriteCloser
	scan     *bufio.Scanner
	conf     *cmd.Conf
}

// Connect launches the configured oracle and returns a client for
// one contest.
func Connect(st *cmd.State, conf *cmd.Conf) (combat.Oracle, error) {
	if conf.Oracle.Command == "" {
		return nil, fmt.Errorf("no rules oracle configured")
	}
	launcher := isol.MakeProcess(conf.Oracle.Command, conf.Oracle.Args, "")
	rwc, err := launcher.Start(st, conf)
	if err != nil {
		return nil, fmt.Errorf("launching oracle: %w", err)
	}
	return &oracle{
		launcher: launcher,
		rwc:      rwc,
		scan:     bufio.NewScanner(rwc),
		conf:     conf,
	}, nil
}

// call sends one command and returns the reply line.
func (o *oracle) call(format string, args ...interface{}) (string, error) {
	line := fmt.Sprintf(format, args...)
	o.conf.Debug.Printf("oracle > %s", line)
	if _, err := fmt.Fprintf(o.rwc, "%s\n", line); err != nil {
		return "", err
	}
	if !o.scan.Scan() {
		if err := o.scan.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	reply := strings.TrimSpace(o.scan.Text())
	o.conf.Debug.Printf("oracle < %s", reply)
	if strings.HasPrefix(reply, "error") {
		return "", fmt.Errorf("oracle: %s",
			strings.TrimSpace(strings.TrimPrefix(reply, "error")))
	}
	return reply, nil
}

func (o *oracle) Start(start combat.Position) error {
	_, err := o.call("start %s", start)
	return err
}

func (o *oracle) Apply(move string) error {
	_, err := o.call("apply %s", move)
	return err
}

func (o *oracle) Over() (bool, error) {
	reply, err := o.call("over")
	if err != nil {
		return false, err
	}
	return reply == "yes", nil
}

func (o *oracle) Classify() (combat.Termination, error) {
	reply, err := o.call("class")
	if err != nil {
		return combat.Unknown, err
	}
	switch reply {
	case "checkmate":
		return combat.Checkmate, nil
	case "stalemate":
		return combat.Stalemate, nil
	case "material":
		return combat.Material, nil
	case "fifty":
		return combat.FiftyMoves, nil
	case "repetition":
		return combat.Repetition, nil
	case "none":
		return combat.Unknown, nil
	default:
		return combat.Unknown, fmt.Errorf("oracle sent class %q", reply)
	}
}

func (o *oracle) Result() (combat.Result, error) {
	reply, err := o.call("result")
	if err != nil {
		return combat.Unterminated, err
	}
	switch reply {
	case "1-0":
		return combat.WhiteWon, nil
	case "0-1":
		return combat.BlackWon, nil
	case "1/2-1/2":
		return combat.Draw, nil
	case "*":
		return combat.Unterminated, nil
	default:
		return combat.Unterminated, fmt.Errorf("oracle sent result %q", reply)
	}
}

func (o *oracle) Terminate() error {
	_, _ = fmt.Fprintln(o.rwc, "quit")
	_ = o.rwc.Close()
	return o.launcher.Shutdown()
}
