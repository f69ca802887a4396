// General Isolation
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

package isol

import (
	"fmt"
	"io"

	cmd "go-combat/cmd"
)

// A Launcher brings one engine to life and tears it down again.
// Start yields the engine's standard input and output as a stream;
// Shutdown must be safe to call after the stream has been closed and
// must never leak the underlying process or container.
type Launcher interface {
	fmt.Stringer
	Start(*cmd.State, *cmd.Conf) (io.ReadWriteCloser, error)
	Shutdown() error
}

// Make picks the launcher requested by the configuration.
func Make(conf *cmd.Conf, command string, args []string, dir string) (Launcher, error) {
	switch conf.Engines.Isolation {
	case "", "process":
		return MakeProcess(command, args, dir), nil
	case "docker":
		return MakeDocker(command), nil
	default:
		return nil, fmt.Errorf("unknown isolation %q", conf.Engines.Isolation)
	}
}
