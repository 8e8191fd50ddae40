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

package kv

import "context"

// Cursor walks one table in ascending key order. It owns a read reference
// into the underlying engine transaction and must not be used after that
// transaction ends (§5, "Iterators hold a read reference ... must be
// released before the store is destroyed").
type Cursor interface {
	// First positions at the smallest key in the table, or returns a nil
	// key if the table is empty.
	First() (k, v []byte, err error)
	// Seek positions at the smallest key >= seek, or returns a nil key if
	// none exists (I6).
	Seek(seek []byte) (k, v []byte, err error)
	// Next advances one position; returns a nil key once exhausted.
	Next() (k, v []byte, err error)
	Close()
}

// Tx is a read-only view over every table, consistent for its entire
// lifetime (§9, Open Question #1).
type Tx interface {
	GetOne(table string, key []byte) ([]byte, error)
	Has(table string, key []byte) (bool, error)
	Cursor(table string) (Cursor, error)
	// Rollback releases the transaction's read reference. Safe to call
	// more than once. Iterators call this when closed; View calls it via
	// defer after the supplied closure returns.
	Rollback()
}

// RwTx additionally allows mutation. A single RwTx may touch more than one
// table, which is what backs the store's Batch primitive (§9, Open Question
// #3) — unused within this layer but required by the ledger layer above it.
type RwTx interface {
	Tx
	Put(table string, key, value []byte) error
	Delete(table string, key []byte) error
}

// DB is the engine handle the latticestore package drives. View/Update take
// a closure rather than exposing Begin/Commit directly, matching the
// erigon-lib/kv convention of function-scoped transactions so a forgotten
// Rollback/Commit can never leak a lock.
type DB interface {
	View(ctx context.Context, f func(tx Tx) error) error
	Update(ctx context.Context, f func(tx RwTx) error) error
	// BeginRo starts a read-only transaction the caller must Rollback
	// itself. Used by the typed iterators in package latticestore, which
	// outlive a single closure call.
	BeginRo(ctx context.Context) (Tx, error)
	Close() error
}
