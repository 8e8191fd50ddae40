// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package latticestore

import (
	"context"

	"github.com/erigontech/latticestore/kv"
)

// rawIterator wraps an engine cursor bound to its own standalone read
// transaction (§5: a live iterator holds a read reference until released).
// The original source compares an iterator against a distinct "end"
// sentinel; Go idiom replaces that with Valid() returning false once the
// cursor is exhausted — begin() == end() in the original is simply
// !it.Valid() here, and that equality survives move/copy because it is a
// plain bool, not a pointer comparison (§9).
type rawIterator struct {
	tx    kv.Tx
	cur   kv.Cursor
	table string
	key   []byte
	val   []byte
	valid bool
}

func newRawIterator(ctx context.Context, db kv.DB, table string, seek []byte) (*rawIterator, error) {
	tx, err := db.BeginRo(ctx)
	if err != nil {
		return nil, err
	}
	cur, err := tx.Cursor(table)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	it := &rawIterator{tx: tx, cur: cur, table: table}
	var k, v []byte
	if seek == nil {
		k, v, err = cur.First()
	} else {
		k, v, err = cur.Seek(seek)
	}
	if err != nil {
		it.Close()
		return nil, err
	}
	it.set(k, v)
	return it, nil
}

func (it *rawIterator) set(k, v []byte) {
	it.key, it.val, it.valid = k, v, k != nil
}

// Next advances one position. Calling Next past exhaustion is a no-op,
// matching the original's iterator semantics where incrementing end()
// repeatedly stays at end().
func (it *rawIterator) Next() error {
	if !it.valid {
		return nil
	}
	k, v, err := it.cur.Next()
	if err != nil {
		return err
	}
	it.set(k, v)
	return nil
}

func (it *rawIterator) Close() {
	it.cur.Close()
	it.tx.Rollback()
}
