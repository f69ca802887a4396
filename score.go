// Running Scoreboard
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

package combat

import (
	"fmt"
	"io"
)

// An Entry is the cumulative tally of one competitor.  Percentages
// and the score are derived on read and never stored.
type Entry struct {
	Wins     uint
	Losses   uint
	Draws    uint
	Forfeits uint
}

// Points returns the tournament score, counting a draw as half a win.
func (e *Entry) Points() float64 {
	return float64(e.Wins) + float64(e.Draws)/2
}

// A Scoreboard aggregates the outcomes of finished fixtures.  It is
// not synchronised: the execution coordinator is its only writer.
type Scoreboard struct {
	order   []string
	entries map[string]*Entry
	games   uint
}

// MakeScoreboard creates one zeroed entry per competitor, preserving
// the roster order for reporting.
func MakeScoreboard(names ...string) *Scoreboard {
	s := &Scoreboard{entries: make(map[string]*Entry)}
	for _, n := range names {
		if _, ok := s.entries[n]; ok {
			continue
		}
		s.order = append(s.order, n)
		s.entries[n] = &Entry{}
	}
	return s
}

// Games returns the number of fixtures applied so far.
func (s *Scoreboard) Games() uint {
	return s.games
}

// Entry returns the tally of NAME, or nil for unknown competitors.
func (s *Scoreboard) Entry(name string) *Entry {
	return s.entries[name]
}

// Apply records the outcome of one finished fixture.  A malformed
// outcome is reported as an error and leaves the scoreboard
// untouched, so the caller can log and carry on.
func (s *Scoreboard) Apply(o *Outcome) error {
	if o == nil || o.Fixture == nil {
		return fmt.Errorf("outcome without a fixture")
	}
	if o.Err != nil {
		return fmt.Errorf("failed outcome for %s: %w", o.Fixture, o.Err)
	}

	white := s.entries[o.Fixture.White.Name]
	black := s.entries[o.Fixture.Black.Name]
	if white == nil || black == nil {
		return fmt.Errorf("unknown competitor in %s", o.Fixture)
	}

	var winner, loser *Entry
	switch o.Result {
	case WhiteWon:
		winner, loser = white, black
	case BlackWon:
		winner, loser = black, white
	case Draw:
		white.Draws++
		black.Draws++
	case Unterminated:
		// Counted as played, scored for neither side
	default:
		return fmt.Errorf("illegal result %d in %s", o.Result, o.Fixture)
	}
	if winner != nil {
		winner.Wins++
		loser.Losses++
		if o.Termination == TimeForfeit {
			loser.Forfeits++
		}
	}

	s.games++
	return nil
}

// Render writes the standings table.
func (s *Scoreboard) Render(w io.Writer) {
	fmt.Fprintf(w, "%-32s %9s %9s %7s %7s %4s\n",
		"name", "score", "games", "score%", "draw%", "tf")
	for _, name := range s.order {
		e := s.entries[name]
		var spct, dpct float64
		if s.games > 0 {
			spct = 100 * e.Points() / float64(s.games)
			dpct = 100 * float64(e.Draws) / float64(s.games)
		}
		fmt.Fprintf(w, "%-32s %9.1f %9d %7.1f %7.1f %4d\n",
			name, e.Points(), s.games, spct, dpct, e.Forfeits)
	}
}
