// Web request handlers
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
	"context"
	"net/http"
	"strconv"
	"time"

	combat "go-combat"
)

const DB_TIMEOUT = 20 * time.Second // arbitrary choice

// Generate the index page
func (s *web) index(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}

	bg := context.Background()
	ctx, cancel := context.WithTimeout(bg, DB_TIMEOUT)
	defer cancel()

	w.Header().Add("Content-Type", "text/html")
	c := make(chan *combat.Outcome)
	go s.st.Database.QueryOutcomes(ctx, c, page-1)
	err = tmpl.ExecuteTemplate(w, "index.tmpl", struct {
		Standings string
		Outcomes  chan *combat.Outcome
		Page      int
	}{s.snapshot(), c, page})
	if err != nil {
		s.conf.Log.Print(err)
	}
}
