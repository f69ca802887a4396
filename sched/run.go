// Fixture Execution
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
	cmd "go-combat/cmd"
	"go-combat/game"
	"go-combat/isol"
	"go-combat/rules"
	"go-combat/uci"
)

// fail wraps a launch-time error into a failed outcome.
func fail(f *combat.Fixture, err error) *combat.Outcome {
	return &combat.Outcome{Fixture: f, Err: err}
}

// launch brings one competitor to life for one contest.
func launch(st *cmd.State, conf *cmd.Conf, c *combat.Competitor) (combat.Searcher, isol.Launcher, error) {
	launcher, err := isol.Make(conf, c.Command, c.Args, c.Dir)
	if err != nil {
		return nil, nil, err
	}
	rwc, err := launcher.Start(st, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("launching %s: %w", c, err)
	}
	session, err := uci.Connect(rwc, c.Name, conf)
	if err != nil {
		_ = launcher.Shutdown()
		return nil, nil, err
	}
	return session, launcher, nil
}

// Run executes one fixture with real engine sessions and a real
// oracle.  Every error is folded into the outcome; the worker pool
// never sees a panic from here.
func Run(st *cmd.State, conf *cmd.Conf, f *combat.Fixture) *combat.Outcome {
	white, wl, err := launch(st, conf, f.White)
	if err != nil {
		return fail(f, err)
	}
	defer func() { _ = wl.Shutdown() }()

	black, bl, err := launch(st, conf, f.Black)
	if err != nil {
		_ = white.Terminate()
		return fail(f, err)
	}
	defer func() { _ = bl.Shutdown() }()

	oracle, err := rules.Connect(st, conf)
	if err != nil {
		_ = white.Terminate()
		_ = black.Terminate()
		return fail(f, err)
	}

	return game.Play(&game.Contest{
		Fixture:    f,
		White:      white,
		Black:      black,
		Oracle:     oracle,
		Adjudicate: conf.Match.Adjudication.Enabled,
		Score:      conf.Match.Adjudication.Score,
		Count:      conf.Match.Adjudication.Count,
	}, conf)
}
