// Fixture Expansion
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

package sched

import (
	"fmt"

	combat "go-combat"
)

type Gauntlet uint8

const (
	// No gauntlet: a plain two-competitor match
	NoGauntlet Gauntlet = iota
	// The first competitor plays every other, always as white
	GauntletWhite
	// The first competitor plays every other, always as black
	GauntletBlack
)

// ParseGauntlet maps the configuration value onto a gauntlet mode.
func ParseGauntlet(mode string) (Gauntlet, error) {
	switch mode {
	case "":
		return NoGauntlet, nil
	case "white":
		return GauntletWhite, nil
	case "black":
		return GauntletBlack, nil
	default:
		return NoGauntlet, fmt.Errorf("unknown gauntlet mode %q", mode)
	}
}

// Expand turns openings and a roster into the flat, ordered fixture
// sequence.  One opening makes one logical round; sibling fixtures of
// a round (colour-reversed rematches, gauntlet opponents) share the
// round number and carry sub-round indices.  Fixture ids increase
// monotonically across the whole expansion.
//
// Without a gauntlet the roster must hold exactly two competitors;
// the first-listed competitor takes black.
// A single-colour gauntlet pins the first competitor to that colour
// and suppresses colour reversal.
func Expand(openings []combat.Position, roster []*combat.Competitor,
	reverse bool, mode Gauntlet) ([]*combat.Fixture, error) {
	if len(roster) < 2 {
		return nil, fmt.Errorf("roster of %d competitor(s) cannot be paired",
			len(roster))
	}
	if mode == NoGauntlet && len(roster) != 2 {
		return nil, fmt.Errorf("roster of %d needs a gauntlet mode",
			len(roster))
	}

	var (
		fixtures []*combat.Fixture
		id       uint
	)
	for r, opening := range openings {
		var siblings []*combat.Fixture

		emit := func(white, black *combat.Competitor) {
			id++
			siblings = append(siblings, &combat.Fixture{
				Id:      id,
				Round:   combat.Round{Number: r + 1},
				Opening: opening,
				White:   white,
				Black:   black,
			})
		}

		for i := 1; i < len(roster); i++ {
			first, opp := roster[0], roster[i]
			switch mode {
			case GauntletWhite:
				emit(first, opp)
			case GauntletBlack:
				emit(opp, first)
			case NoGauntlet:
				emit(opp, first)
				if reverse {
					emit(first, opp)
				}
			}
		}

		if len(siblings) > 1 {
			for i, f := range siblings {
				f.Round.Sub = i + 1
			}
		}
		fixtures = append(fixtures, siblings...)
	}

	for _, f := range fixtures {
		f.Total = uint(len(fixtures))
	}
	return fixtures, nil
}
