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

// Package boltkv implements kv.DB on top of go.etcd.io/bbolt: one *bolt.DB
// file per table, each holding a single bucket named after the table.
package boltkv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/erigontech/latticestore/kv"
)

// defaultLockTimeout bounds how long bolt.Open waits on a table file's OS
// flock. bbolt treats Timeout: 0 as "wait forever," not "fail fast" — left
// at zero, a table file already held open by another handle would hang
// Open rather than report the contention as an error (I7/P6).
const defaultLockTimeout = 500 * time.Millisecond

// DB opens one bbolt file per table under dir. Opening is exclusive per
// I7/P6: bbolt takes an flock on each file it opens, so a second DB pointed
// at the same directory fails here, not at first use.
type DB struct {
	dir    string
	tables map[string]*bolt.DB
}

// Open opens (creating if necessary) the named tables under dir. An empty
// dir, a dir that cannot be created, or a table file already held open by
// another handle all yield a non-nil error and no partially-opened state —
// every file opened so far is closed again before returning.
func Open(dir string, tables []string, opts *bolt.Options) (*DB, error) {
	if dir == "" {
		return nil, errors.New("boltkv: empty path")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "boltkv: create directory")
	}

	tableOpts := bolt.Options{}
	if opts != nil {
		tableOpts = *opts
	}
	if tableOpts.Timeout == 0 {
		tableOpts.Timeout = defaultLockTimeout
	}

	db := &DB{dir: dir, tables: make(map[string]*bolt.DB, len(tables))}
	for _, table := range tables {
		path := filepath.Join(dir, kv.FileName(table))
		bdb, err := bolt.Open(path, 0o600, &tableOpts)
		if err != nil {
			db.closeOpened()
			return nil, errors.Wrapf(err, "boltkv: open table %q", table)
		}
		if err := bdb.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists([]byte(table))
			return err
		}); err != nil {
			_ = bdb.Close()
			db.closeOpened()
			return nil, errors.Wrapf(err, "boltkv: init bucket %q", table)
		}
		db.tables[table] = bdb
	}
	return db, nil
}

func (db *DB) closeOpened() {
	for _, bdb := range db.tables {
		_ = bdb.Close()
	}
}

func (db *DB) Close() error {
	var first error
	for name, bdb := range db.tables {
		if err := bdb.Close(); err != nil && first == nil {
			first = errors.Wrapf(err, "boltkv: close table %q", name)
		}
	}
	return first
}

func (db *DB) View(ctx context.Context, f func(kv.Tx) error) error {
	tx, err := newTx(db, false)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := f(tx); err != nil {
		return err
	}
	return nil
}

// BeginRo starts a standalone read-only transaction for the typed
// iterators, which must outlive the single closure that View offers.
func (db *DB) BeginRo(ctx context.Context) (kv.Tx, error) {
	return newTx(db, false)
}

func (db *DB) Update(ctx context.Context, f func(kv.RwTx) error) error {
	tx, err := newTx(db, true)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := f(tx); err != nil {
		return err
	}
	return tx.commit()
}

// tx lazily begins one *bolt.Tx per table it touches, so a single-table
// operation never pays for opening the other seven. When the enclosing
// View/Update closure returns, all of them are rolled back if it failed, or
// committed one table after another if it succeeded — this is what backs the
// store's cross-table Batch primitive (§9, Open Question #3). Each table is
// its own bbolt file, so the commit is not atomic across tables: if one
// table's commit fails, tables committed before it stay committed.
type tx struct {
	db       *DB
	writable bool
	open     map[string]*bolt.Tx
}

func newTx(db *DB, writable bool) (*tx, error) {
	return &tx{db: db, writable: writable, open: make(map[string]*bolt.Tx, 1)}, nil
}

func (t *tx) boltTx(table string) (*bolt.Tx, error) {
	if btx, ok := t.open[table]; ok {
		return btx, nil
	}
	bdb, ok := t.db.tables[table]
	if !ok {
		return nil, fmt.Errorf("boltkv: unknown table %q", table)
	}
	btx, err := bdb.Begin(t.writable)
	if err != nil {
		return nil, errors.Wrapf(err, "boltkv: begin tx on %q", table)
	}
	t.open[table] = btx
	return btx, nil
}

func (t *tx) bucket(table string) (*bolt.Bucket, error) {
	btx, err := t.boltTx(table)
	if err != nil {
		return nil, err
	}
	b := btx.Bucket([]byte(table))
	if b == nil {
		return nil, fmt.Errorf("boltkv: bucket %q missing", table)
	}
	return b, nil
}

func (t *tx) GetOne(table string, key []byte) ([]byte, error) {
	b, err := t.bucket(table)
	if err != nil {
		return nil, err
	}
	v := b.Get(key)
	if v == nil {
		return nil, nil
	}
	// bbolt's []byte is only valid for the transaction's lifetime; the
	// contract our callers rely on (decode then let the cursor/tx go away)
	// requires an owned copy.
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (t *tx) Has(table string, key []byte) (bool, error) {
	b, err := t.bucket(table)
	if err != nil {
		return false, err
	}
	return b.Get(key) != nil, nil
}

func (t *tx) Put(table string, key, value []byte) error {
	b, err := t.bucket(table)
	if err != nil {
		return err
	}
	return b.Put(key, value)
}

func (t *tx) Delete(table string, key []byte) error {
	b, err := t.bucket(table)
	if err != nil {
		return err
	}
	return b.Delete(key)
}

func (t *tx) Cursor(table string) (kv.Cursor, error) {
	b, err := t.bucket(table)
	if err != nil {
		return nil, err
	}
	return &cursor{c: b.Cursor()}, nil
}

func (t *tx) commit() error {
	for name, btx := range t.open {
		if err := btx.Commit(); err != nil {
			return errors.Wrapf(err, "boltkv: commit %q", name)
		}
	}
	return nil
}

// Rollback releases every per-table bbolt transaction this tx opened. Safe
// to call after commit() (bbolt returns ErrTxClosed, which we swallow) and
// safe to call twice.
func (t *tx) Rollback() {
	for name, btx := range t.open {
		_ = btx.Rollback()
		delete(t.open, name)
	}
}

type cursor struct {
	c *bolt.Cursor
}

func (cu *cursor) First() (k, v []byte, err error) {
	k, v = cu.c.First()
	return clone(k), clone(v), nil
}

func (cu *cursor) Seek(seek []byte) (k, v []byte, err error) {
	k, v = cu.c.Seek(seek)
	return clone(k), clone(v), nil
}

func (cu *cursor) Next() (k, v []byte, err error) {
	k, v = cu.c.Next()
	return clone(k), clone(v), nil
}

func (cu *cursor) Close() {}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
