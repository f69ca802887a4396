// Shared State
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
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	combat "go-combat"
)

type Manager interface {
	fmt.Stringer
	Start(*State, *Conf)
	Shutdown()
}

// Scheduler is the manager that expands and executes fixtures.
type Scheduler interface {
	Manager

	PrintResults(*State, io.Writer)
}

// Database is the manager archiving fixtures and their outcomes.
type Database interface {
	Manager

	SaveFixture(context.Context, *combat.Fixture)
	SaveOutcome(context.Context, *combat.Outcome)
	QueryOutcomes(context.Context, chan<- *combat.Outcome, int)
}

type State struct {
	Context context.Context
	Kill    context.CancelFunc
	Running bool

	// Rendered standings snapshots, published by the execution
	// coordinator after each completed fixture.  Consumers that
	// lag behind miss snapshots instead of slowing the run down.
	Standings chan string

	Scheduler Scheduler
	Database  Database
	Managers  []Manager
}

func MakeState() *State {
	ctx, kill := context.WithCancel(context.Background())
	return &State{
		Context:   ctx,
		Kill:      kill,
		Standings: make(chan string, 1),
	}
}

func (st *State) Register(m Manager) {
	if st.Running {
		panic(fmt.Sprintf("Late register: %#v", m))
	}

	switch s := m.(type) {
	case Database:
		st.Database = s
	case Scheduler:
		st.Scheduler = s
	}

	st.Managers = append(st.Managers, m)
}

// Publish offers a standings snapshot to whoever is listening,
// without ever blocking the coordinator.
func (st *State) Publish(standings string) {
	for {
		select {
		case st.Standings <- standings:
			return
		default:
			select {
			case <-st.Standings:
			default:
			}
		}
	}
}

func (st *State) Start(c *Conf) {
	for _, m := range st.Managers {
		c.Debug.Printf("Starting %s", m)
		go m.Start(st, c)
	}
	st.Running = true

	// Catch an interrupt request...
	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	select {
	case <-intr:
		log.Println("Caught interrupt")
		st.Kill()
	case <-st.Context.Done():
	}

	done := make(chan struct{})
	go func() {
		// ...and request all managers to shut down.  In-flight
		// contests are given the chance to finish.
		c.Debug.Println("Waiting for managers to shutdown...")
		for i := len(st.Managers) - 1; i >= 0; i-- {
			m := st.Managers[i]
			c.Debug.Printf("Shutting %s down", m)
			m.Shutdown()
		}
		done <- struct{}{}
	}()

	select {
	case <-intr:
		log.Println("Forced shutdown")
	case <-done:
		log.Println("Shutting down regularly")
	}
}
