// Contest Runner
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

package game

import (
	"fmt"
	"time"

	combat "go-combat"
	cmd "go-combat/cmd"
	"go-combat/pgn"
)

type Phase uint8

const (
	Initializing Phase = iota
	InProgress
	NaturallyEnded
	TimeForfeited
	ScoreAdjudicated
	Finalizing
	Done
)

func (p Phase) String() string {
	switch p {
	case Initializing:
		return "initializing"
	case InProgress:
		return "in progress"
	case NaturallyEnded:
		return "naturally ended"
	case TimeForfeited:
		return "time forfeited"
	case ScoreAdjudicated:
		return "score adjudicated"
	case Finalizing:
		return "finalizing"
	case Done:
		return "done"
	default:
		panic(fmt.Sprintf("Illegal phase: %d", p))
	}
}

// A Contest drives one fixture to completion.  It owns its clock pair
// and adjudicator; the search sessions and the oracle are handed in
// by the coordinator and released unconditionally when the contest
// finalises.
type Contest struct {
	Fixture *combat.Fixture
	White   combat.Searcher
	Black   combat.Searcher
	Oracle  combat.Oracle

	// Early-stopping configuration
	Adjudicate bool
	Score      int
	Count      int

	phase     Phase
	wclock    *combat.Clock
	bclock    *combat.Clock
	forfeiter combat.Side
	adjudged  combat.Termination
}

func (c *Contest) Phase() Phase {
	return c.phase
}

func (c *Contest) searcher(s combat.Side) combat.Searcher {
	if s == combat.White {
		return c.White
	}
	return c.Black
}

func (c *Contest) clock(s combat.Side) *combat.Clock {
	if s == combat.White {
		return c.wclock
	}
	return c.bclock
}

// fail releases nothing by itself; the deferred teardown in Play
// takes care of the sessions on every path.
func (c *Contest) fail(err error) *combat.Outcome {
	return &combat.Outcome{
		Fixture: c.Fixture,
		Result:  combat.Unterminated,
		Err:     err,
	}
}

// Play runs the contest to its terminal outcome.  A nil Outcome.Err
// means the record and classification fields are valid.
func Play(c *Contest, conf *cmd.Conf) *combat.Outcome {
	f := c.Fixture
	dbg := conf.Debug.Printf

	c.phase = Initializing
	c.wclock = combat.MakeClock(f.White.Time)
	c.bclock = combat.MakeClock(f.Black.Time)

	// Whichever way the contest ends, both sessions and the
	// oracle must be released.
	defer func() {
		for _, s := range []combat.Searcher{c.White, c.Black} {
			if err := s.Terminate(); err != nil {
				conf.Log.Printf("%s: terminating session: %s", f, err)
			}
		}
		if err := c.Oracle.Terminate(); err != nil {
			conf.Log.Printf("%s: terminating oracle: %s", f, err)
		}
		c.phase = Done
	}()

	if err := c.White.Configure(f.White.Options); err != nil {
		return c.fail(fmt.Errorf("configuring %s: %w", f.White, err))
	}
	if err := c.Black.Configure(f.Black.Options); err != nil {
		return c.fail(fmt.Errorf("configuring %s: %w", f.Black, err))
	}
	if err := c.Oracle.Start(f.Opening); err != nil {
		return c.fail(fmt.Errorf("starting oracle: %w", err))
	}

	conf.Log.Printf("Starting %s", f)

	var (
		adj    = combat.MakeAdjudicator(c.Count, c.Score)
		record = pgn.MakeGame(f.Opening)
		moves  []string
		turn   = f.Opening.SideToMove()
		start  = time.Now()
	)

	c.phase = InProgress
	for {
		over, err := c.Oracle.Over()
		if err != nil {
			return c.fail(fmt.Errorf("rules query: %w", err))
		}
		if over {
			c.phase = NaturallyEnded
			break
		}

		// Measure wall time locally in case the engine does
		// not report how long it searched.
		before := time.Now()
		info, err := c.searcher(turn).Search(f.Opening, moves, c.wclock, c.bclock)
		if err != nil {
			return c.fail(fmt.Errorf("search by %s: %w", turn, err))
		}

		// A move without a score still feeds the adjudication
		// window, as a neutral entry.
		score := 0
		if info.Score != nil {
			score = *info.Score
		} else {
			dbg("%s: no score from %s", f, turn)
		}
		adj.Record(turn, score)

		elapsed := time.Since(before).Milliseconds()
		if info.TimeMs != nil {
			elapsed = *info.TimeMs
		}
		if elapsed < 1 {
			elapsed = 1
		}

		if c.clock(turn).Update(elapsed) {
			// Out of time: the move is not applied.
			conf.Log.Printf("round %s, infraction: %s loses on time!",
				f.Round, turn)
			c.forfeiter = turn
			c.phase = TimeForfeited
			break
		}

		if err := c.Oracle.Apply(info.Move); err != nil {
			return c.fail(fmt.Errorf("move %q by %s: %w",
				info.Move, turn, err))
		}
		moves = append(moves, info.Move)

		var comment string
		if info.Score != nil && info.Depth != nil {
			comment = pgn.Comment(*info.Score, *info.Depth, elapsed)
		}
		record.AddMove(info.Move, comment)

		if c.Adjudicate {
			if blackWins, whiteWins := adj.Decide(); blackWins || whiteWins {
				if whiteWins {
					c.adjudged = combat.AdjudicatedWhite
				} else {
					c.adjudged = combat.AdjudicatedBlack
				}
				c.phase = ScoreAdjudicated
				break
			}
		}

		turn = turn.Opponent()
	}

	c.phase = Finalizing
	elapsed := time.Since(start)

	result, termination := c.classify(conf)
	c.header(record, result, termination, elapsed)

	return &combat.Outcome{
		Fixture:     f,
		Result:      result,
		Termination: termination,
		Elapsed:     elapsed,
		Record:      record.String(),
	}
}

// classify derives the result and termination reason.  A time forfeit
// outranks score adjudication, which outranks the natural reasons
// reported by the oracle.
func (c *Contest) classify(conf *cmd.Conf) (combat.Result, combat.Termination) {
	switch c.phase {
	case TimeForfeited:
		if c.forfeiter == combat.White {
			return combat.BlackWon, combat.TimeForfeit
		}
		return combat.WhiteWon, combat.TimeForfeit
	case ScoreAdjudicated:
		if c.adjudged == combat.AdjudicatedWhite {
			return combat.WhiteWon, combat.AdjudicatedWhite
		}
		return combat.BlackWon, combat.AdjudicatedBlack
	}

	// A failing classification query is not worth losing the
	// record over at this point.
	result, err := c.Oracle.Result()
	if err != nil {
		conf.Log.Printf("%s: querying result: %s", c.Fixture, err)
		result = combat.Unterminated
	}
	termination, err := c.Oracle.Classify()
	if err != nil {
		conf.Log.Printf("%s: classifying: %s", c.Fixture, err)
		termination = combat.Unknown
	}
	return result, termination
}

func (c *Contest) header(record *pgn.Game, result combat.Result,
	termination combat.Termination, elapsed time.Duration) {
	f := c.Fixture

	record.SetTag("Event", "Computer games")
	record.SetTag("Site", "Combat")
	record.SetTag("Date", time.Now().Format("2006.01.02"))
	record.SetTag("Round", f.Round.String())
	record.SetTag("White", f.White.Name)
	record.SetTag("Black", f.Black.Name)
	record.SetResult(result)
	record.SetTag("FEN", string(f.Opening))
	record.SetTag("Termination", termination.String())
	record.SetTag("WhiteTimeControl", pgn.FormatTimeControl(f.White.Time))
	record.SetTag("BlackTimeControl", pgn.FormatTimeControl(f.Black.Time))
	record.SetTag("GameDuration", pgn.FormatDuration(elapsed))
}
