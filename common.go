// Common Interfaces and constants
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
	"strings"
	"time"
)

type (
	Side        uint8
	Result      uint8
	Termination uint8
)

const (
	// Possible sides of a contest
	White Side = iota
	Black
)

const (
	// Possible contest results
	Unterminated Result = iota
	WhiteWon
	BlackWon
	Draw
)

const (
	// Reasons a contest may end, in increasing classification
	// priority.  TimeForfeit outranks the adjudications, which
	// outrank the natural reasons.
	Unknown Termination = iota
	Repetition
	FiftyMoves
	Material
	Stalemate
	Checkmate
	AdjudicatedBlack
	AdjudicatedWhite
	TimeForfeit
)

func (s Side) String() string {
	switch s {
	case White:
		return "white"
	case Black:
		return "black"
	}
	panic("Illegal side")
}

// Opponent returns the side that is not S.
func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (r Result) String() string {
	switch r {
	case Unterminated:
		return "*"
	case WhiteWon:
		return "1-0"
	case BlackWon:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		panic(fmt.Sprintf("Illegal result: %d", r))
	}
}

func (t Termination) String() string {
	switch t {
	case Unknown:
		return "unknown"
	case Repetition:
		return "threefold repetition"
	case FiftyMoves:
		return "fifty-move draw rule"
	case Material:
		return "insufficient mating material"
	case Stalemate:
		return "stalemate"
	case Checkmate:
		return "checkmate"
	case AdjudicatedWhite:
		return "adjudication: good score for white"
	case AdjudicatedBlack:
		return "adjudication: good score for black"
	case TimeForfeit:
		return "time forfeit"
	default:
		panic(fmt.Sprintf("Illegal termination: %d", t))
	}
}

// A Round names the logical round a fixture belongs to.  Sibling
// fixtures of one round (such as a colour-reversed rematch) share
// NUMBER and are told apart by SUB.
type Round struct {
	Number int
	Sub    int
}

func (r Round) String() string {
	if r.Sub == 0 {
		return fmt.Sprintf("%d", r.Number)
	}
	return fmt.Sprintf("%d.%d", r.Number, r.Sub)
}

// A Position is the canonical notation of a starting position.
type Position string

// SideToMove extracts the side to move from the position notation.
func (p Position) SideToMove() Side {
	fields := strings.Fields(string(p))
	if len(fields) >= 2 && fields[1] == "b" {
		return Black
	}
	return White
}

// A TimeControl gives the base and increment time budget of one
// competitor, in milliseconds.
type TimeControl struct {
	BaseMs int64
	IncMs  int64
}

func (tc TimeControl) String() string {
	return fmt.Sprintf("%d+%d", tc.BaseMs, tc.IncMs)
}

// ParseTimeControl destructs a "base+inc" time control declaration.
func ParseTimeControl(tc string) (TimeControl, error) {
	var parsed TimeControl

	i := strings.IndexByte(tc, '+')
	if i < 0 {
		return parsed, fmt.Errorf("time increment is missing in %q", tc)
	}
	_, err := fmt.Sscanf(tc[:i], "%d", &parsed.BaseMs)
	if err != nil {
		return parsed, fmt.Errorf("invalid base time in %q", tc)
	}
	_, err = fmt.Sscanf(tc[i+1:], "%d", &parsed.IncMs)
	if err != nil {
		return parsed, fmt.Errorf("invalid increment in %q", tc)
	}
	return parsed, nil
}

// OptionKind tags the value type of an engine option.
type OptionKind uint8

const (
	CheckOption OptionKind = iota
	SpinOption
	TextOption
)

// An Option is a single non-default engine setting.  Only the field
// matching KIND is meaningful.
type Option struct {
	Name  string
	Kind  OptionKind
	Check bool
	Spin  int
	Text  string
}

// Value renders the option value in its textual form.
func (o Option) Value() string {
	switch o.Kind {
	case CheckOption:
		if o.Check {
			return "true"
		}
		return "false"
	case SpinOption:
		return fmt.Sprintf("%d", o.Spin)
	case TextOption:
		return o.Text
	default:
		panic(fmt.Sprintf("Illegal option kind: %d", o.Kind))
	}
}

// Options preserves the declaration order of the catalog.
type Options []Option

// A Competitor is one participant of the tournament.  It is immutable
// once fixtures have been expanded; live clock state belongs to the
// per-contest Clock pair, never to the competitor itself.
type Competitor struct {
	Name    string
	Command string
	Args    []string
	Dir     string
	Options Options
	Time    TimeControl
}

func (c *Competitor) String() string {
	return c.Name
}

// A Fixture is one scheduled contest: an opening position and a
// competitor pair with a fixed colour assignment.
type Fixture struct {
	Id      uint
	Round   Round
	Opening Position
	White   *Competitor
	Black   *Competitor
	Total   uint
}

func (f *Fixture) String() string {
	return fmt.Sprintf("game %d/%d (round %s; %s vs %s)",
		f.Id, f.Total, f.Round, f.White, f.Black)
}

// An Outcome is the terminal report of one fixture.  If ERR is
// non-nil the contest failed and the remaining fields are not to be
// trusted; failed outcomes never reach the scoreboard.
type Outcome struct {
	Fixture     *Fixture
	Result      Result
	Termination Termination
	Elapsed     time.Duration
	Record      string
	Err         error
}

// SearchInfo is what a competitor reports for one move.  Score, depth
// and time may each be missing independently; a missing field is nil
// and never fails the contest.
type SearchInfo struct {
	Move   string
	Score  *int
	Depth  *int
	TimeMs *int64
}

// Searcher is the move-search session of a single competitor within a
// single contest.
type Searcher interface {
	Configure(opts Options) error
	Search(start Position, moves []string, white, black *Clock) (*SearchInfo, error)
	Terminate() error
}

// Oracle answers rule questions about a single contest.  Move
// legality and natural termination are entirely its business.
type Oracle interface {
	Start(start Position) error
	Apply(move string) error
	Over() (bool, error)
	Classify() (Termination, error)
	Result() (Result, error)
	Terminate() error
}
