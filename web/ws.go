// Websocket interface
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
	"net/http"

	"github.com/gorilla/websocket"
)

// Upgrade a HTTP connection to a WebSocket that receives live
// standings snapshots
func (s *web) upgrader() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// upgrade to websocket or bail out
		conn, err := (&websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		}).Upgrade(w, r, nil)
		if err != nil {
			s.conf.Debug.Printf("Unable to upgrade connection: %s", err)
			w.WriteHeader(400)
			return
		}

		s.conf.Debug.Printf("New connection from %s", conn.RemoteAddr())
		s.lock.Lock()
		s.clients[conn] = struct{}{}
		snap := s.standings
		s.lock.Unlock()

		if snap != "" {
			err = conn.WriteMessage(websocket.TextMessage, []byte(snap))
			if err != nil {
				s.conf.Debug.Print(err)
			}
		}
	}
}
