// Configuration
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
	"flag"
	"io"
	"log"
	"os"

	"github.com/BurntSushi/toml"
)

const defconf = "go-combat.toml"

func init() {
	def := &defaultConfig

	flag.UintVar(&def.Match.Rounds, "rounds", def.Match.Rounds,
		"Number of rounds to play, doubled if -reverse is set")
	flag.BoolVar(&def.Match.Reverse, "reverse", def.Match.Reverse,
		"Play every opening a second time with colours swapped")
	flag.StringVar(&def.Match.Gauntlet, "gauntlet", def.Match.Gauntlet,
		"Gauntlet colour of the first competitor (white or black)")
	flag.UintVar(&def.Match.Parallel, "parallel", def.Match.Parallel,
		"Number of contests to run in parallel")

	flag.StringVar(&def.Book.File, "openings", def.Book.File,
		"File with starting positions (.fen or .epd)")
	flag.BoolVar(&def.Book.Random, "random", def.Book.Random,
		"Shuffle the starting positions")

	flag.StringVar(&def.Engines.Catalog, "catalog", def.Engines.Catalog,
		"Engine catalog file (engines.json format)")
	flag.StringVar(&def.Engines.Isolation, "isolation", def.Engines.Isolation,
		"How to launch engines (process or docker)")

	flag.StringVar(&def.Output.File, "output", def.Output.File,
		"File to append annotated game records to")
	flag.StringVar(&def.Database.File, "db", def.Database.File,
		"File to use for the database")

	flag.BoolVar(&def.Web.Enabled, "web", def.Web.Enabled,
		"Serve the live standings page")
	flag.UintVar(&def.Web.Port, "wwwport", def.Web.Port,
		"Port to use for the HTTP server")

	flag.BoolVar(&debug, "debug", debug, "Enable debug output")
	flag.BoolVar(&silent, "silent", silent, "Disable most output")
	flag.BoolVar(&dump, "dump-config", dump, "Dump configuration to standard output")
	flag.StringVar(&cfile, "conf", cfile, "Path to configuration file")
}

type DatabaseConf struct {
	File string `toml:"file"`
}

type MatchConf struct {
	Rounds       uint             `toml:"rounds"`
	Reverse      bool             `toml:"reverse"`
	Gauntlet     string           `toml:"gauntlet,omitempty"`
	Parallel     uint             `toml:"parallel"`
	Adjudication AdjudicationConf `toml:"adjudication"`
}

type AdjudicationConf struct {
	Enabled bool `toml:"enabled"`
	Score   int  `toml:"score"`
	Count   int  `toml:"count"`
}

type BookConf struct {
	File   string `toml:"file"`
	Random bool   `toml:"random"`
}

type EngineEntry struct {
	Name string `toml:"name"`
	TC   string `toml:"tc"`
}

type EnginesConf struct {
	Catalog   string        `toml:"catalog"`
	Isolation string        `toml:"isolation"`
	Entries   []EngineEntry `toml:"entry"`
}

type OracleConf struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args,omitempty"`
}

type OutputConf struct {
	File string `toml:"file"`
}

type WebConf struct {
	Enabled bool `toml:"enabled"`
	Port    uint `toml:"port"`
}

// Internal representation
type Conf struct {
	Match    MatchConf    `toml:"match"`
	Book     BookConf     `toml:"book"`
	Engines  EnginesConf  `toml:"engines"`
	Oracle   OracleConf   `toml:"oracle"`
	Output   OutputConf   `toml:"output"`
	Database DatabaseConf `toml:"database"`
	Web      WebConf      `toml:"web"`

	// Logging handles, constructed once at startup and passed
	// down explicitly.
	Log   *log.Logger `toml:"-"`
	Debug *log.Logger `toml:"-"`
}

// Configuration object used by default
var defaultConfig = Conf{
	Match: MatchConf{
		Rounds:   500,
		Parallel: 1,
		Adjudication: AdjudicationConf{
			Score: 700,
			Count: 4,
		},
	},
	Book: BookConf{
		File: "openings.epd",
	},
	Engines: EnginesConf{
		Catalog:   "engines.json",
		Isolation: "process",
	},
	Oracle: OracleConf{
		Command: "combat-oracle",
	},
	Output: OutputConf{
		File: "output_games.pgn",
	},
	Database: DatabaseConf{
		File: "combat.db",
	},
	Web: WebConf{
		Enabled: false,
		Port:    8080,
	},
}

var (
	debug  = false
	silent = false
	dump   = false
	cfile  = defconf
)

// Open the configuration file and return it
func LoadConf() (c *Conf) {
	c = &defaultConfig
	file, err := os.Open(cfile)
	if err != nil {
		if !os.IsNotExist(err) || cfile != defconf {
			log.Fatal(err)
		}
	} else {
		defer file.Close()
		_, err := toml.NewDecoder(file).Decode(c)
		if err != nil {
			log.Fatal(cfile, ": ", err)
		}
	}

	c.Log = log.Default()
	c.Debug = log.New(io.Discard, "[debug] ",
		log.Ltime|log.Lshortfile|log.Lmicroseconds)
	switch {
	case debug:
		c.Debug.SetOutput(os.Stderr)
		log.Default().SetFlags(log.LstdFlags | log.Lshortfile)
		c.Debug.Println("Debug logging has been enabled")
	case silent:
		log.Default().SetOutput(io.Discard)
	}

	// Dump the configuration onto the disk if requested
	if dump {
		err := c.Dump(os.Stdout)
		if err != nil {
			log.Fatalln("Failed to dump configuration:", err)
		}
		os.Exit(0)
	}

	return c
}

// Serialise the configuration into a writer
func (c *Conf) Dump(wr io.Writer) error {
	return toml.NewEncoder(wr).Encode(c)
}
