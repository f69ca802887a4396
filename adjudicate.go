// Score-Based Adjudication
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

const (
	DefaultAdjudicationCount = 4
	DefaultAdjudicationScore = 700
)

// An Adjudicator decides whether a contest should be stopped early
// because both competitors agree one side is winning.  It accumulates
// the per-move evaluation scores of either side, in centipawns from
// that side's own perspective.
type Adjudicator struct {
	// Number of trailing scores both sides must agree on
	Count int
	// Centipawn threshold a score must reach
	Score int

	white []int
	black []int
}

// MakeAdjudicator returns an adjudicator with window COUNT and
// threshold SCORE.  Non-positive arguments fall back to the defaults.
func MakeAdjudicator(count, score int) *Adjudicator {
	if count <= 0 {
		count = DefaultAdjudicationCount
	}
	if score <= 0 {
		score = DefaultAdjudicationScore
	}
	return &Adjudicator{Count: count, Score: score}
}

// Record appends the score of one move by SIDE.  A move without an
// available score must be recorded as 0, so that the window stays
// aligned with the move sequence.
func (a *Adjudicator) Record(side Side, score int) {
	switch side {
	case White:
		a.white = append(a.white, score)
	case Black:
		a.black = append(a.black, score)
	}
}

// Decide checks the trailing score windows of both sides.  It returns
// (blackWins, whiteWins); both false means the contest continues.
//
// The white-wins condition is tested before the black-wins condition
// and short-circuits it, so at most one of the two is ever true in a
// single call.  This precedence is a deliberate tie-break.
func (a *Adjudicator) Decide() (blackWins, whiteWins bool) {
	n := a.Count
	if len(a.white) < n || len(a.black) < n {
		return false, false
	}

	wgood, bbad := 0, 0
	for _, s := range a.white[len(a.white)-n:] {
		if s >= a.Score {
			wgood++
		}
	}
	for _, s := range a.black[len(a.black)-n:] {
		if s <= -a.Score {
			bbad++
		}
	}
	if wgood >= n && bbad >= n {
		return false, true
	}

	bgood, wbad := 0, 0
	for _, s := range a.black[len(a.black)-n:] {
		if s >= a.Score {
			bgood++
		}
	}
	for _, s := range a.white[len(a.white)-n:] {
		if s <= -a.Score {
			wbad++
		}
	}
	if bgood >= n && wbad >= n {
		return true, false
	}

	return false, false
}
