// Annotated Game Records
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

package pgn

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	combat "go-combat"
)

type tag struct{ name, value string }

type move struct{ text, comment string }

// A Game accumulates the annotated record of one contest.  Tags keep
// their insertion order; the caller is expected to set the roster
// tags first.
type Game struct {
	tags    []tag
	index   map[string]int
	opening combat.Position
	moves   []move
	result  combat.Result
}

func MakeGame(opening combat.Position) *Game {
	return &Game{
		index:   make(map[string]int),
		opening: opening,
	}
}

// SetTag sets or replaces a header tag.
func (g *Game) SetTag(name, value string) {
	if i, ok := g.index[name]; ok {
		g.tags[i].value = value
		return
	}
	g.index[name] = len(g.tags)
	g.tags = append(g.tags, tag{name, value})
}

// AddMove appends a move with an optional annotation comment.
func (g *Game) AddMove(text, comment string) {
	g.moves = append(g.moves, move{text, comment})
}

func (g *Game) SetResult(r combat.Result) {
	g.result = r
	g.SetTag("Result", r.String())
}

// start returns the side to move and fullmove number of the opening.
func (g *Game) start() (combat.Side, int) {
	side := g.opening.SideToMove()
	number := 1
	fields := strings.Fields(string(g.opening))
	if len(fields) >= 6 {
		if n, err := strconv.Atoi(fields[5]); err == nil && n > 0 {
			number = n
		}
	}
	return side, number
}

// String renders the record: tag pair section, blank line, movetext
// terminated by the result token.
func (g *Game) String() string {
	var sb strings.Builder

	for _, t := range g.tags {
		fmt.Fprintf(&sb, "[%s \"%s\"]\n", t.name, t.value)
	}
	sb.WriteByte('\n')

	side, number := g.start()
	var (
		line string
		emit = func(word string) {
			if line == "" {
				line = word
			} else if len(line)+1+len(word) > 79 {
				sb.WriteString(line)
				sb.WriteByte('\n')
				line = word
			} else {
				line += " " + word
			}
		}
	)
	for i, m := range g.moves {
		switch {
		case side == combat.White:
			emit(fmt.Sprintf("%d.", number))
		case i == 0:
			// A record starting from a black-to-move position
			emit(fmt.Sprintf("%d...", number))
		}
		emit(m.text)
		if m.comment != "" {
			emit("{" + m.comment + "}")
		}
		if side == combat.Black {
			number++
		}
		side = side.Opponent()
	}
	emit(g.result.String())
	sb.WriteString(line)
	sb.WriteByte('\n')

	return sb.String()
}

// Comment renders the per-move annotation of score, depth and time,
// with the score converted from centipawns to pawns.
func Comment(scoreCp, depth int, timeMs int64) string {
	return fmt.Sprintf("%+.2f/%d %dms", float64(scoreCp)/100, depth, timeMs)
}

// FormatDuration renders D in the h:mm:ss:ms header format.
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	s, ms := ms/1000, ms%1000
	m, s := s/60, s%60
	h, m := m/60, m%60
	return fmt.Sprintf("%01dh:%02dm:%02ds:%03dms", h, m, s, ms)
}

// FormatDurationShort renders D without the hour field, used for the
// increment part of a time control header.
func FormatDurationShort(d time.Duration) string {
	ms := d.Milliseconds()
	s, ms := ms/1000, ms%1000
	m, s := s/60, s%60
	return fmt.Sprintf("%02dm:%02ds:%03dms", m, s, ms)
}

// FormatTimeControl renders the per-side time control header value.
func FormatTimeControl(tc combat.TimeControl) string {
	base := time.Duration(tc.BaseMs) * time.Millisecond
	inc := time.Duration(tc.IncMs) * time.Millisecond
	return FormatDuration(base) + " + " + FormatDurationShort(inc)
}
