// Database management
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

package db

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"os"
	"os/signal"
	"path"
	"strings"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"

	combat "go-combat"
	cmd "go-combat/cmd"
)

//go:embed *.sql
var sql_dir embed.FS

type db struct {
	// The database connections
	read  *sql.DB
	write *sql.DB

	// The SQL queries are stored in *.sql files next to this
	// one.  QUERIES are the statements handled by READ, COMMANDS
	// are the statements handled by WRITE.
	queries  map[string]*sql.Stmt
	commands map[string]*sql.Stmt

	conf *cmd.Conf
}

func (db *db) SaveFixture(ctx context.Context, f *combat.Fixture) {
	_, err := db.commands["insert-fixture"].ExecContext(ctx,
		f.Id, f.Round.Number, f.Round.Sub,
		string(f.Opening), f.White.Name, f.Black.Name)
	if err != nil {
		db.conf.Log.Print(err)
	}
}

func (db *db) SaveOutcome(ctx context.Context, o *combat.Outcome) {
	_, err := db.commands["insert-outcome"].ExecContext(ctx,
		o.Fixture.Id, o.Result, o.Termination,
		o.Elapsed.Milliseconds(), o.Record)
	if err != nil {
		db.conf.Log.Print(err)
	}
}

// QueryOutcomes streams page PAGE of recorded outcomes, most recent
// first, into C.  The competitor records carry only names, since the
// commands that launched past engines are not persisted.
func (db *db) QueryOutcomes(ctx context.Context, c chan<- *combat.Outcome, page int) {
	defer close(c)
	rows, err := db.queries["select-outcomes"].QueryContext(ctx, page)
	if err != nil {
		db.conf.Log.Print(err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var (
			f       combat.Fixture
			o       combat.Outcome
			white   string
			black   string
			opening string
			elapsed int64
		)
		err = rows.Scan(
			&f.Id, &f.Round.Number, &f.Round.Sub,
			&opening, &white, &black,
			&o.Result, &o.Termination, &elapsed, &o.Record)
		if err != nil {
			db.conf.Log.Print(err)
			return
		}
		f.Opening = combat.Position(opening)
		f.White = &combat.Competitor{Name: white}
		f.Black = &combat.Competitor{Name: black}
		o.Fixture = &f
		o.Elapsed = time.Duration(elapsed) * time.Millisecond

		select {
		case c <- &o:
		case <-ctx.Done():
			return
		}
	}
	if err = rows.Err(); err != nil {
		db.conf.Log.Print(err)
	}
}

func (db *db) Start(st *cmd.State, conf *cmd.Conf) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGUSR1)
	for {
		select {
		case <-c:
			// https://www.sqlite.org/lang_vacuum.html
			if _, err := db.write.Exec("VACUUM;"); err != nil {
				conf.Log.Print(err)
			}
		case <-st.Context.Done():
			return
		}
	}
}

func (db *db) Shutdown() {
	var err error

	// https://www.sqlite.org/pragma.html#pragma_optimize
	_, err = db.write.Exec("PRAGMA optimize;")
	if err != nil {
		db.conf.Log.Print(err)
	}

	err = db.write.Close()
	if err != nil {
		db.conf.Log.Print(err)
	}

	err = db.read.Close()
	if err != nil {
		db.conf.Log.Print(err)
	}
}

func (*db) String() string { return "Database Manager" }

// Initialise the database and the database manager
func Register(st *cmd.State, conf *cmd.Conf) error {
	read, err := sql.Open("sqlite3", conf.Database.File)
	if err != nil {
		return err
	}
	read.SetConnMaxLifetime(0)
	read.SetMaxIdleConns(1)

	write, err := sql.Open("sqlite3", conf.Database.File)
	if err != nil {
		return err
	}
	write.SetConnMaxLifetime(0)
	write.SetMaxIdleConns(1)
	write.SetMaxOpenConns(1)

	db := &db{
		queries:  make(map[string]*sql.Stmt),
		commands: make(map[string]*sql.Stmt),
		write:    write,
		read:     read,
		conf:     conf,
	}

	for _, pragma := range []string{
		// https://www.sqlite.org/pragma.html#pragma_journal_mode
		"journal_mode = WAL",
		// https://www.sqlite.org/pragma.html#pragma_synchronous
		"synchronous = normal",
		// https://www.sqlite.org/pragma.html#pragma_temp_store
		"temp_store = memory",
		// https://www.sqlite.org/pragma.html#pragma_foreign_keys
		"foreign_keys = on",
	} {
		conf.Debug.Printf("Run PRAGMA %v", pragma)
		_, err = db.write.Exec("PRAGMA " + pragma + ";")
		if err != nil {
			return err
		}
	}

	entries, err := sql_dir.ReadDir(".")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		base := path.Base(entry.Name())
		data, err := fs.ReadFile(sql_dir, entry.Name())
		if err != nil {
			return err
		}

		if strings.HasPrefix(base, "create-") {
			_, err = db.write.Exec(string(data))
			conf.Debug.Printf("Executed query %v", base)
		} else {
			query := strings.TrimSuffix(base, ".sql")
			if strings.HasPrefix(query, "select-") {
				db.queries[query], err = db.read.Prepare(string(data))
				conf.Debug.Printf("Registered query %v", query)
			} else {
				db.commands[query], err = db.write.Prepare(string(data))
				conf.Debug.Printf("Registered command %v", query)
			}
		}
		if err != nil {
			return err
		}
	}

	if len(db.commands) == 0 {
		panic("No commands loaded")
	}

	st.Register(cmd.Database(db))
	return nil
}
