// Catalog tests
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

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	combat "go-combat"
)

func writeCatalog(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engines.json")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sample = `[
  {
    "name": "alpha",
    "command": "./alpha",
    "workingDirectory": "/opt/alpha",
    "options": [
      {"name": "Hash", "type": "spin", "default": 16, "value": 128},
      {"name": "Ponder", "type": "check", "default": false, "value": false},
      {"name": "Contempt", "type": "spin", "default": 0, "value": 0},
      {"name": "SyzygyPath", "type": "string", "default": "", "value": "/tb"},
      {"name": "Style", "type": "combo", "default": "Normal"}
    ]
  },
  {
    "name": "beta",
    "command": "beta",
    "args": ["--uci"]
  }
]`

func TestLookup(t *testing.T) {
	cat, err := Open(writeCatalog(t, sample))
	if err != nil {
		t.Fatal(err)
	}

	tc := combat.TimeControl{BaseMs: 60000, IncMs: 1000}
	c, err := cat.Lookup("alpha", tc)
	if err != nil {
		t.Fatal(err)
	}
	if c.Command != "./alpha" || c.Dir != "/opt/alpha" {
		t.Errorf("unexpected launch spec %q in %q", c.Command, c.Dir)
	}
	if c.Time != tc {
		t.Errorf("time control was not attached: %v", c.Time)
	}

	// Only options diverging from their default survive, and an
	// option without a recorded value is dropped.
	if len(c.Options) != 2 {
		t.Fatalf("expected 2 options, got %v", c.Options)
	}
	hash := c.Options[0]
	if hash.Name != "Hash" || hash.Kind != combat.SpinOption || hash.Spin != 128 {
		t.Errorf("unexpected option %+v", hash)
	}
	tb := c.Options[1]
	if tb.Name != "SyzygyPath" || tb.Kind != combat.TextOption || tb.Text != "/tb" {
		t.Errorf("unexpected option %+v", tb)
	}
}

func TestLookupBare(t *testing.T) {
	cat, err := Open(writeCatalog(t, sample))
	if err != nil {
		t.Fatal(err)
	}

	c, err := cat.Lookup("beta", combat.TimeControl{BaseMs: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Options) != 0 {
		t.Errorf("expected no options, got %v", c.Options)
	}
	if len(c.Args) != 1 || c.Args[0] != "--uci" {
		t.Errorf("arguments were lost: %v", c.Args)
	}
}

func TestLookupUnknown(t *testing.T) {
	cat, err := Open(writeCatalog(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cat.Lookup("gamma", combat.TimeControl{}); err == nil {
		t.Error("expected an error for an engine outside the catalog")
	}
}

func TestOpenErrors(t *testing.T) {
	for i, data := range []string{
		`not json`,
		`[{"command": "nameless"}]`,
		`[{"name": "cmdless"}]`,
		`[{"name": "twin", "command": "a"}, {"name": "twin", "command": "b"}]`,
	} {
		if _, err := Open(writeCatalog(t, data)); err == nil {
			t.Errorf("[%d] expected an error", i)
		}
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
