// Append-Only Record Archive
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

package pgn

import (
	"fmt"
	"os"
)

// An Archive appends finished records to a file, one blank line
// between games.  It is written to by a single goroutine, the
// execution coordinator.
type Archive struct {
	file *os.File
}

func MakeArchive(name string) (*Archive, error) {
	file, err := os.OpenFile(name,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &Archive{file: file}, nil
}

// Append writes one rendered record to the archive.
func (a *Archive) Append(record string) error {
	_, err := fmt.Fprintf(a.file, "%s\n", record)
	return err
}

func (a *Archive) Close() error {
	return a.file.Close()
}
