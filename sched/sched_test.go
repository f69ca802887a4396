// Execution coordinator tests
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
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	combat "go-combat"
	cmd "go-combat/cmd"
)

func testConf(t *testing.T, parallel uint) *cmd.Conf {
	quiet := log.New(io.Discard, "", 0)
	conf := &cmd.Conf{Log: quiet, Debug: quiet}
	conf.Match.Parallel = parallel
	conf.Output.File = filepath.Join(t.TempDir(), "games.pgn")
	return conf
}

func testFixtures(n int) []*combat.Fixture {
	white := &combat.Competitor{Name: "alpha"}
	black := &combat.Competitor{Name: "beta"}
	var fixtures []*combat.Fixture
	for i := 0; i < n; i++ {
		fixtures = append(fixtures, &combat.Fixture{
			Id:      uint(i + 1),
			Round:   combat.Round{Number: i + 1},
			Opening: "8/8/8/8/8/8/8/8 w - - 0 1",
			White:   white,
			Black:   black,
			Total:   uint(n),
		})
	}
	return fixtures
}

func TestStartPlaysEveryFixture(t *testing.T) {
	var (
		lock   sync.Mutex
		played []uint
	)
	fixtures := testFixtures(8)
	board := combat.MakeScoreboard("alpha", "beta")
	s := &scheduler{
		fixtures: fixtures,
		board:    board,
		done:     make(chan struct{}),
		play: func(st *cmd.State, conf *cmd.Conf, f *combat.Fixture) *combat.Outcome {
			lock.Lock()
			played = append(played, f.Id)
			lock.Unlock()
			return &combat.Outcome{
				Fixture:     f,
				Result:      combat.WhiteWon,
				Termination: combat.Checkmate,
				Elapsed:     time.Second,
				Record:      fmt.Sprintf("[Round \"%d\"]", f.Round.Number),
			}
		},
	}

	st := cmd.MakeState()
	conf := testConf(t, 2)
	s.Start(st, conf)
	s.Shutdown()

	if len(played) != len(fixtures) {
		t.Fatalf("played %d of %d fixtures", len(played), len(fixtures))
	}
	if n := board.Games(); n != 8 {
		t.Errorf("scoreboard counts %d games", n)
	}
	if p := board.Entry("alpha").Points(); p != 8 {
		t.Errorf("alpha has %g points, expected 8", p)
	}

	// The run is over, so the state must have been killed
	select {
	case <-st.Context.Done():
	default:
		t.Error("context was not cancelled after the last fixture")
	}

	data, err := os.ReadFile(conf.Output.File)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "[Round"); n != 8 {
		t.Errorf("archive holds %d records, expected 8", n)
	}
}

func TestStartSkipsFailures(t *testing.T) {
	fixtures := testFixtures(4)
	board := combat.MakeScoreboard("alpha", "beta")
	s := &scheduler{
		fixtures: fixtures,
		board:    board,
		done:     make(chan struct{}),
		play: func(st *cmd.State, conf *cmd.Conf, f *combat.Fixture) *combat.Outcome {
			if f.Id%2 == 0 {
				return &combat.Outcome{
					Fixture: f,
					Err:     fmt.Errorf("engine crashed"),
				}
			}
			return &combat.Outcome{
				Fixture:     f,
				Result:      combat.Draw,
				Termination: combat.Stalemate,
				Record:      "1/2-1/2",
			}
		},
	}

	st := cmd.MakeState()
	s.Start(st, testConf(t, 1))

	// Failed fixtures never reach the scoreboard
	if n := board.Games(); n != 2 {
		t.Errorf("scoreboard counts %d games, expected 2", n)
	}
	if p := board.Entry("beta").Points(); p != 1 {
		t.Errorf("beta has %g points, expected 1", p)
	}
}

func TestStartPublishesStandings(t *testing.T) {
	fixtures := testFixtures(1)
	board := combat.MakeScoreboard("alpha", "beta")
	s := &scheduler{
		fixtures: fixtures,
		board:    board,
		done:     make(chan struct{}),
		play: func(st *cmd.State, conf *cmd.Conf, f *combat.Fixture) *combat.Outcome {
			return &combat.Outcome{
				Fixture:     f,
				Result:      combat.BlackWon,
				Termination: combat.Checkmate,
				Record:      "0-1",
			}
		},
	}

	st := cmd.MakeState()
	s.Start(st, testConf(t, 1))

	select {
	case snap := <-st.Standings:
		if !strings.Contains(snap, "beta") {
			t.Errorf("snapshot misses a competitor: %q", snap)
		}
	default:
		t.Error("no standings snapshot was published")
	}
}

func TestStartAbortsOnCancel(t *testing.T) {
	var (
		lock   sync.Mutex
		played int
	)
	fixtures := testFixtures(100)
	board := combat.MakeScoreboard("alpha", "beta")
	s := &scheduler{
		fixtures: fixtures,
		board:    board,
		done:     make(chan struct{}),
		play: func(st *cmd.State, conf *cmd.Conf, f *combat.Fixture) *combat.Outcome {
			lock.Lock()
			played++
			lock.Unlock()
			if f.Id == 1 {
				st.Kill()
			}
			return &combat.Outcome{
				Fixture:     f,
				Result:      combat.Draw,
				Termination: combat.Stalemate,
				Record:      "1/2-1/2",
			}
		},
	}

	st := cmd.MakeState()
	s.Start(st, testConf(t, 1))

	lock.Lock()
	defer lock.Unlock()
	if played == 100 {
		t.Error("cancellation did not stop the queue")
	}
}
