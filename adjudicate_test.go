// Score-Based Adjudication Tests
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

func feed(a *Adjudicator, white, black []int) {
	for _, s := range white {
		a.Record(White, s)
	}
	for _, s := range black {
		a.Record(Black, s)
	}
}

func TestAdjudicatorDecide(t *testing.T) {
	for i, test := range []struct {
		count, score        int
		white, black        []int
		blackWins, whiteWins bool
	}{
		// Not enough history on either side
		{4, 700, nil, nil, false, false},
		{4, 700, []int{800, 800, 800}, []int{-800, -800, -800}, false, false},
		{4, 700, []int{800, 800, 800, 800}, []int{-800, -800, -800}, false, false},
		// Both sides agree white is winning
		{4, 700, []int{800, 800, 800, 800}, []int{-800, -800, -800, -800}, false, true},
		// Only the window counts: an early bad score is forgotten
		{4, 700, []int{-900, 800, 800, 800, 800}, []int{0, -800, -800, -800, -800}, false, true},
		// One neutral score inside the window blocks the decision
		{4, 700, []int{800, 800, 0, 800}, []int{-800, -800, -800, -800}, false, false},
		{4, 700, []int{800, 800, 800, 800}, []int{-800, -800, 0, -800}, false, false},
		// Threshold is inclusive
		{4, 700, []int{700, 700, 700, 700}, []int{-700, -700, -700, -700}, false, true},
		{4, 700, []int{699, 700, 700, 700}, []int{-700, -700, -700, -700}, false, false},
		// Both sides agree black is winning
		{4, 700, []int{-800, -800, -800, -800}, []int{800, 800, 800, 800}, true, false},
		// One side winning without the other losing is not enough
		{4, 700, []int{800, 800, 800, 800}, []int{0, 0, 0, 0}, false, false},
		// Smaller windows decide sooner
		{2, 500, []int{510, 520}, []int{-505, -515}, false, true},
	} {
		a := MakeAdjudicator(test.count, test.score)
		feed(a, test.white, test.black)
		b, w := a.Decide()
		if b != test.blackWins || w != test.whiteWins {
			t.Errorf("[%d] Decide() = (%v, %v), want (%v, %v)",
				i, b, w, test.blackWins, test.whiteWins)
		}
	}
}

// Negating every score and swapping the sides must swap the decision.
func TestAdjudicatorAntiSymmetry(t *testing.T) {
	for i, test := range []struct {
		white, black []int
	}{
		{[]int{800, 800, 800, 800}, []int{-800, -800, -800, -800}},
		{[]int{0, 900, 900, 900, 900}, []int{-750, -750, -800, -900}},
		{[]int{100, 200, 300, 400}, []int{-100, -200, -300, -400}},
		{[]int{700, 700, 700, 700}, []int{-700, -700, -699, -700}},
	} {
		a := MakeAdjudicator(0, 0)
		feed(a, test.white, test.black)
		ab, aw := a.Decide()

		negate := func(scores []int) []int {
			out := make([]int, len(scores))
			for j, s := range scores {
				out[j] = -s
			}
			return out
		}
		m := MakeAdjudicator(0, 0)
		feed(m, negate(test.black), negate(test.white))
		mb, mw := m.Decide()

		if ab != mw || aw != mb {
			t.Errorf("[%d] mirror decided (%v, %v), want swap of (%v, %v)",
				i, mb, mw, ab, aw)
		}
	}
}

func TestAdjudicatorDefaults(t *testing.T) {
	a := MakeAdjudicator(0, 0)
	if a.Count != DefaultAdjudicationCount {
		t.Errorf("Count = %d, want %d", a.Count, DefaultAdjudicationCount)
	}
	if a.Score != DefaultAdjudicationScore {
		t.Errorf("Score = %d, want %d", a.Score, DefaultAdjudicationScore)
	}
}
