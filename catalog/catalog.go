// Competitor Catalog
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

// Package catalog resolves competitor names against an engines.json
// registry.  Each entry names the engine, the command to launch it
// and a list of UCI options.  Only options whose configured value
// differs from the engine default are forwarded at startup.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	combat "go-combat"
)

type rawOption struct {
	Name    string      `json:"name"`
	Type    string      `json:"type"`
	Default interface{} `json:"default"`
	Value   interface{} `json:"value"`
}

type rawEntry struct {
	Name       string      `json:"name"`
	Command    string      `json:"command"`
	Args       []string    `json:"args"`
	WorkingDir string      `json:"workingDirectory"`
	Options    []rawOption `json:"options"`
}

// Catalog is a set of engine definitions loaded from a JSON file.
type Catalog struct {
	entries map[string]*rawEntry
}

// Open parses the registry at NAME and validates that every entry has
// a name and a command.
func Open(name string) (*Catalog, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	var raw []rawEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed catalog %s: %w", name, err)
	}

	cat := &Catalog{entries: make(map[string]*rawEntry)}
	for i := range raw {
		e := &raw[i]
		if e.Name == "" {
			return nil, fmt.Errorf("catalog %s: entry %d has no name", name, i)
		}
		if e.Command == "" {
			return nil, fmt.Errorf("catalog %s: entry %q has no command", name, e.Name)
		}
		if _, ok := cat.entries[e.Name]; ok {
			return nil, fmt.Errorf("catalog %s: duplicate entry %q", name, e.Name)
		}
		cat.entries[e.Name] = e
	}
	return cat, nil
}

// convert narrows a JSON option value into the typed form.  Unknown
// types fall back to text, matching how UCI treats string, combo and
// button options alike on the wire.
func convert(o *rawOption) (combat.Option, error) {
	opt := combat.Option{Name: o.Name}
	switch o.Type {
	case "check":
		v, ok := o.Value.(bool)
		if !ok {
			return opt, fmt.Errorf("expected a boolean, got %v", o.Value)
		}
		opt.Kind = combat.CheckOption
		opt.Check = v
	case "spin":
		v, ok := o.Value.(float64)
		if !ok {
			return opt, fmt.Errorf("expected a number, got %v", o.Value)
		}
		opt.Kind = combat.SpinOption
		opt.Spin = int(v)
	default:
		opt.Kind = combat.TextOption
		opt.Text = fmt.Sprint(o.Value)
	}
	return opt, nil
}

// Lookup resolves NAME to a competitor playing under TC.  Options
// without a recorded default, or whose value matches the default, are
// left out.
func (c *Catalog) Lookup(name string, tc combat.TimeControl) (*combat.Competitor, error) {
	e, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("engine %q is not in the catalog", name)
	}

	var opts combat.Options
	for _, o := range e.Options {
		if o.Default == nil || o.Value == nil {
			continue
		}
		if o.Value == o.Default {
			continue
		}
		opt, err := convert(&o)
		if err != nil {
			return nil, fmt.Errorf("engine %q, option %q: %w", name, o.Name, err)
		}
		opts = append(opts, opt)
	}

	return &combat.Competitor{
		Name:    e.Name,
		Command: e.Command,
		Args:    e.Args,
		Dir:     e.WorkingDir,
		Options: opts,
		Time:    tc,
	}, nil
}
