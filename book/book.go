// Opening Book
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

package book

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	combat "go-combat"
	cmd "go-combat/cmd"
)

// Load reads the starting positions, one per line, capped at LIMIT
// rounds.  Only .fen and .epd files are understood; a PGN book would
// need a movetext parser, which this tool does not carry.
func Load(name string, limit uint, shuffle bool, conf *cmd.Conf) ([]combat.Position, error) {
	switch filepath.Ext(name) {
	case ".fen", ".epd":
	case ".pgn":
		return nil, fmt.Errorf("pgn books are not supported, use .fen or .epd")
	default:
		return nil, fmt.Errorf("file %s has no known extension, accepted: .fen, .epd", name)
	}

	conf.Log.Printf("Preparing start openings from %s ...", filepath.Base(name))

	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var openings []combat.Position
	scan := bufio.NewScanner(file)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		openings = append(openings, combat.Position(line))
		if uint(len(openings)) >= limit {
			break
		}
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if len(openings) == 0 {
		return nil, fmt.Errorf("no positions in %s", name)
	}

	if shuffle {
		rand.Shuffle(len(openings), func(i, j int) {
			openings[i], openings[j] = openings[j], openings[i]
		})
	}

	if uint(len(openings)) < limit {
		conf.Log.Printf("Number of positions in the file %d is below the requested rounds %d!",
			len(openings), limit)
	}
	conf.Log.Printf("status: done, openings prepared: %d", len(openings))

	return openings, nil
}
