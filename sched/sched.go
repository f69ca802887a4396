// Execution Coordinator
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
	"io"
	"strings"
	"sync"

	combat "go-combat"
	cmd "go-combat/cmd"
	"go-combat/pgn"
)

// The scheduler submits every fixture to a bounded worker pool and
// consumes completions in arrival order.  The completion loop is the
// only writer to the scoreboard and the record archive, so neither
// needs locking.
type scheduler struct {
	fixtures []*combat.Fixture
	board    *combat.Scoreboard
	// Runs a single fixture to completion; replaced in tests
	play func(*cmd.State, *cmd.Conf, *combat.Fixture) *combat.Outcome

	workers sync.WaitGroup
	done    chan struct{}
}

func MakeScheduler(fixtures []*combat.Fixture, board *combat.Scoreboard) cmd.Scheduler {
	return &scheduler{
		fixtures: fixtures,
		board:    board,
		play:     Run,
		done:     make(chan struct{}),
	}
}

func (s *scheduler) String() string { return "Execution Coordinator" }

func (s *scheduler) Start(st *cmd.State, conf *cmd.Conf) {
	defer close(s.done)

	queue := make(chan *combat.Fixture, len(s.fixtures))
	for _, f := range s.fixtures {
		if st.Database != nil {
			st.Database.SaveFixture(st.Context, f)
		}
		queue <- f
	}
	close(queue)

	parallel := conf.Match.Parallel
	if parallel < 1 {
		conf.Log.Printf("parallel is only %d!, now it is set at 1.", parallel)
		parallel = 1
	}
	conf.Debug.Printf("Starting %d workers for %d fixtures",
		parallel, len(s.fixtures))

	results := make(chan *combat.Outcome)
	for i := uint(0); i < parallel; i++ {
		s.workers.Add(1)
		go func() {
			defer s.workers.Done()
			for {
				select {
				case <-st.Context.Done():
					// Abort: fixtures still queued
					// never complete, in-flight ones
					// are finishing in other workers.
					return
				case f, ok := <-queue:
					if !ok {
						return
					}
					if st.Context.Err() != nil {
						return
					}
					results <- s.play(st, conf, f)
				}
			}
		}()
	}
	go func() {
		s.workers.Wait()
		close(results)
	}()

	archive, err := pgn.MakeArchive(conf.Output.File)
	if err != nil {
		conf.Log.Printf("Cannot open archive %s: %s", conf.Output.File, err)
		archive = nil
	} else {
		defer archive.Close()
	}

	for o := range results {
		s.record(st, conf, archive, o)
	}
	st.Kill()
}

// record processes one completed fixture.  Nothing in here may take
// the coordinator loop down: a bad outcome is logged and skipped.
func (s *scheduler) record(st *cmd.State, conf *cmd.Conf,
	archive *pgn.Archive, o *combat.Outcome) {
	if o == nil {
		conf.Log.Print("Discarding empty completion")
		return
	}
	if o.Err != nil {
		conf.Log.Printf("Failed %s: %s", o.Fixture, o.Err)
		return
	}

	if archive != nil {
		if err := archive.Append(o.Record); err != nil {
			conf.Log.Printf("Archiving %s: %s", o.Fixture, err)
		}
	}
	if st.Database != nil {
		st.Database.SaveOutcome(st.Context, o)
	}

	if err := s.board.Apply(o); err != nil {
		conf.Log.Printf("Scoring %s: %s", o.Fixture, err)
		return
	}

	f := o.Fixture
	conf.Log.Printf("Done, game: %d, round: %s, elapse: %s",
		f.Id, f.Round, pgn.FormatDuration(o.Elapsed))
	conf.Log.Printf("players: %s vs %s", f.White, f.Black)
	conf.Log.Printf("result: %s (%s)", o.Result, o.Termination)

	var sb strings.Builder
	s.board.Render(&sb)
	conf.Log.Printf("\n\n%s", sb.String())
	st.Publish(sb.String())
}

// Shutdown waits for the completion loop to drain.
func (s *scheduler) Shutdown() {
	<-s.done
}

func (s *scheduler) PrintResults(st *cmd.State, w io.Writer) {
	s.board.Render(w)
}
