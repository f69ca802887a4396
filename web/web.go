// Web interface generator
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

package web

import (
	"embed"
	"html/template"
	"sync"
	"time"

	combat "go-combat"
	cmd "go-combat/cmd"
	"go-combat/pgn"

	"github.com/gorilla/websocket"
)

const PER_PAGE = 50

//go:embed *.tmpl
var html embed.FS

var (
	// Template manager
	tmpl *template.Template

	// Custom template functions
	funcs = template.FuncMap{
		"inc": func(i int) int {
			return i + 1
		},
		"dec": func(i int) int {
			return i - 1
		},
		"now": func() string {
			return time.Now().Format(time.RFC3339)
		},
		"hasMore": func(i int) bool {
			return i%PER_PAGE != 0
		},
		"elapsed": func(d time.Duration) string {
			return pgn.FormatDuration(d)
		},
		"result": func(o *combat.Outcome) template.HTML {
			var class string
			switch o.Result {
			case combat.WhiteWon:
				class = "won"
			case combat.BlackWon:
				class = "lost"
			case combat.Draw:
				class = "draw"
			default:
				class = "open"
			}
			return template.HTML(`<span class="` + class + `">` +
				template.HTMLEscapeString(o.Result.String()) + `</span>`)
		},
	}
)

type web struct {
	conf *cmd.Conf
	st   *cmd.State

	// Most recent standings snapshot, pushed to every websocket
	// client as it changes.
	lock      sync.Mutex
	standings string
	clients   map[*websocket.Conn]struct{}
}

func (s *web) snapshot() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.standings
}

// The watcher consumes standings snapshots and fans them out.
func (s *web) watch() {
	for {
		select {
		case snap := <-s.st.Standings:
			s.lock.Lock()
			s.standings = snap
			for conn := range s.clients {
				err := conn.WriteMessage(websocket.TextMessage, []byte(snap))
				if err != nil {
					s.conf.Debug.Printf("Dropping websocket client %s: %s",
						conn.RemoteAddr(), err)
					conn.Close()
					delete(s.clients, conn)
				}
			}
			s.lock.Unlock()
		case <-s.st.Context.Done():
			return
		}
	}
}
