// Entry point
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

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	combat "go-combat"
	"go-combat/book"
	"go-combat/catalog"
	cmd "go-combat/cmd"
	"go-combat/db"
	"go-combat/pgn"
	"go-combat/sched"
	"go-combat/web"
)

func main() {
	flag.Parse()
	if flag.NArg() != 0 {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Too many arguments passed to %s.\nUsage:\n",
			os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Create a run state and load the configuration
	st := cmd.MakeState()
	conf := cmd.LoadConf()

	// Resolve the competitors against the catalog
	cat, err := catalog.Open(conf.Engines.Catalog)
	if err != nil {
		log.Fatal(err)
	}
	if len(conf.Engines.Entries) < 2 {
		log.Fatalf("%d engine(s) configured, need at least two",
			len(conf.Engines.Entries))
	}
	var roster []*combat.Competitor
	for i, e := range conf.Engines.Entries {
		if e.Name == "" {
			log.Fatalf("Engine entry %d has no name", i+1)
		}
		tc, err := combat.ParseTimeControl(e.TC)
		if err != nil {
			log.Fatalf("Engine %q: %s", e.Name, err)
		}
		c, err := cat.Lookup(e.Name, tc)
		if err != nil {
			log.Fatal(err)
		}
		roster = append(roster, c)
	}

	// Prepare the fixture schedule
	openings, err := book.Load(conf.Book.File, conf.Match.Rounds,
		conf.Book.Random, conf)
	if err != nil {
		log.Fatal(err)
	}
	mode, err := sched.ParseGauntlet(conf.Match.Gauntlet)
	if err != nil {
		log.Fatal(err)
	}
	fixtures, err := sched.Expand(openings, roster, conf.Match.Reverse, mode)
	if err != nil {
		log.Fatal(err)
	}

	var names []string
	for _, c := range roster {
		names = append(names, c.Name)
	}
	board := combat.MakeScoreboard(names...)

	// Load components
	if err := db.Register(st, conf); err != nil {
		log.Fatal(err)
	}
	web.Register(st, conf)
	st.Register(sched.MakeScheduler(fixtures, board))

	// Announce the match conditions
	log.Printf("Total games to play: %d", len(fixtures))
	for _, c := range roster {
		log.Printf("%s, time control: %s",
			c.Name, pgn.FormatTimeControl(c.Time))
	}
	if conf.Match.Adjudication.Enabled {
		log.Printf("Adjudication: score %d over %d moves",
			conf.Match.Adjudication.Score,
			conf.Match.Adjudication.Count)
	}

	// Run the match
	st.Start(conf)

	// Print results
	st.Scheduler.PrintResults(st, os.Stdout)
}
