// Subprocess-Based Engine Isolation
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
	"io"
	"os/exec"

	cmd "go-combat/cmd"
)

type process struct {
	command string
	args    []string
	dir     string
	run     *exec.Cmd
}

// MakeProcess launches the engine as a direct subprocess, talking to
// it over its standard input and output.
func MakeProcess(command string, args []string, dir string) Launcher {
	return &process{command: command, args: args, dir: dir}
}

func (p *process) String() string {
	return "process " + p.command
}

// stdio pairs the subprocess pipes into one stream.
type stdio struct {
	io.WriteCloser
	io.ReadCloser
}

func (s *stdio) Close() error {
	err := s.WriteCloser.Close()
	if cerr := s.ReadCloser.Close(); err == nil {
		err = cerr
	}
	return err
}

func (p *process) Start(st *cmd.State, conf *cmd.Conf) (io.ReadWriteCloser, error) {
	p.run = exec.Command(p.command, p.args...)
	p.run.Dir = p.dir
	p.run.Stderr = io.Discard

	in, err := p.run.StdinPipe()
	if err != nil {
		return nil, err
	}
	out, err := p.run.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := p.run.Start(); err != nil {
		conf.Log.Printf("Failed to start %v: %s", p.command, err)
		return nil, err
	}
	return &stdio{WriteCloser: in, ReadCloser: out}, nil
}

func (p *process) Shutdown() error {
	if p.run == nil || p.run.Process == nil {
		return nil
	}
	// An engine that honoured "quit" is already gone; everything
	// else is killed without ceremony.
	_ = p.run.Process.Kill()
	_ = p.run.Wait()
	return nil
}
