// Common Type Tests
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

import "testing"

func TestRoundString(t *testing.T) {
	for i, test := range []struct {
		round Round
		want  string
	}{
		{Round{Number: 1}, "1"},
		{Round{Number: 3, Sub: 1}, "3.1"},
		{Round{Number: 3, Sub: 2}, "3.2"},
		{Round{Number: 12}, "12"},
	} {
		if got := test.round.String(); got != test.want {
			t.Errorf("[%d] %v = %q, want %q", i, test.round, got, test.want)
		}
	}
}

func TestParseTimeControl(t *testing.T) {
	for i, test := range []struct {
		tc   string
		want TimeControl
		fail bool
	}{
		{"60000+100", TimeControl{60000, 100}, false},
		{"1000+0", TimeControl{1000, 0}, false},
		{"60000", TimeControl{}, true},
		{"+100", TimeControl{}, true},
		{"abc+q", TimeControl{}, true},
	} {
		got, err := ParseTimeControl(test.tc)
		if test.fail {
			if err == nil {
				t.Errorf("[%d] expected an error for %q", i, test.tc)
			}
			continue
		}
		if err != nil {
			t.Errorf("[%d] %q: %s", i, test.tc, err)
		} else if got != test.want {
			t.Errorf("[%d] %q = %v, want %v", i, test.tc, got, test.want)
		}
	}
}

func TestPositionSideToMove(t *testing.T) {
	for i, test := range []struct {
		pos  Position
		want Side
	}{
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", White},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1", Black},
		{"8/8/8/8/8/8/8/8", White},
	} {
		if got := test.pos.SideToMove(); got != test.want {
			t.Errorf("[%d] side to move = %s, want %s", i, got, test.want)
		}
	}
}

func TestOptionValue(t *testing.T) {
	for i, test := range []struct {
		opt  Option
		want string
	}{
		{Option{Name: "Ponder", Kind: CheckOption, Check: false}, "false"},
		{Option{Name: "Ponder", Kind: CheckOption, Check: true}, "true"},
		{Option{Name: "Hash", Kind: SpinOption, Spin: 128}, "128"},
		{Option{Name: "SyzygyPath", Kind: TextOption, Text: "/tb"}, "/tb"},
	} {
		if got := test.opt.Value(); got != test.want {
			t.Errorf("[%d] %s = %q, want %q", i, test.opt.Name, got, test.want)
		}
	}
}
