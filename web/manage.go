// Web interface manager
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
	"fmt"
	"html/template"
	"net/http"

	cmd "go-combat/cmd"

	"github.com/gorilla/websocket"
)

func (s *web) Start(st *cmd.State, conf *cmd.Conf) {
	s.st = st
	s.conf = conf
	go s.watch()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.index)
	mux.HandleFunc("/socket", s.upgrader())
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "User-agent: *\nDisallow: /")
	})

	tmpl = template.Must(template.New("").Funcs(funcs).ParseFS(html, "*.tmpl"))

	addr := fmt.Sprintf(":%d", conf.Web.Port)
	conf.Log.Printf("Listening via HTTP on %s", addr)
	err := http.ListenAndServe(addr, mux)
	if err != nil {
		conf.Log.Print(err)
	}
}

// The web server can shut down immediately
func (s *web) Shutdown() {
	s.lock.Lock()
	defer s.lock.Unlock()
	for conn := range s.clients {
		conn.Close()
		delete(s.clients, conn)
	}
}

func (*web) String() string { return "Web Server" }

func Register(st *cmd.State, conf *cmd.Conf) {
	if !conf.Web.Enabled {
		return
	}

	st.Register(&web{
		clients: make(map[*websocket.Conn]struct{}),
	})
}
