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

// Package latticestore is the persistent block store of a block-lattice
// node: every block, every account's frontier, every unclaimed receivable,
// the representative weight cache, and the bootstrap staging tables,
// opened together as one composite handle (§2, §4.7).
package latticestore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/gofrs/flock"
	"github.com/google/btree"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/erigontech/latticestore/kv"
	"github.com/erigontech/latticestore/kv/boltkv"
)

// Config controls how a Store is opened. There is no configuration file at
// this layer (§6) — callers build Config themselves from whatever outer
// configuration mechanism they use.
type Config struct {
	// Path roots the directory holding one <table>.ldb file per table
	// (§6). Use TempDir() for an ephemeral, test-only store — the
	// equivalent of the original source's block_store_temp sentinel.
	Path string

	// Logger receives Warn-level notices for lock contention and decode
	// failures. Defaults to a no-op logger when nil.
	Logger *zap.SugaredLogger

	// MaxTableSize, if non-zero, is forwarded to bbolt as InitialMmapSize
	// for every table file — useful for callers that know their working
	// set up front and want to avoid remap churn.
	MaxTableSize datasize.ByteSize
}

// Store is the composite handle described in §4.7: constructing one opens
// every named table atomically, and failure of any single open leaves no
// partial state and no background threads behind.
type Store struct {
	cfg  Config
	db   kv.DB
	lock *flock.Flock
	log  *zap.SugaredLogger

	stackMu  sync.Mutex
	stackIdx *btree.BTreeG[stackEntry]
}

// errAlreadyOpen is returned when another live Store (in this process or
// another) already holds the directory lock (I7, P6).
var errAlreadyOpen = errors.New("latticestore: path already held open by another instance")

// New opens (creating if necessary) every table listed in kv.Tables under
// cfg.Path. Opening is exclusive (I7): a directory-level flock is acquired
// first so "already open" is detected before any individual table file is
// touched, and every bbolt file itself also carries its own OS-level flock
// as a second line of defense.
func New(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("latticestore: empty path")
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if err := os.MkdirAll(cfg.Path, 0o700); err != nil {
		return nil, errors.Wrap(err, "latticestore: create directory")
	}

	lockPath := filepath.Join(cfg.Path, "LOCK")
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrap(err, "latticestore: acquire directory lock")
	}
	if !locked {
		log.Warnw("latticestore: directory already locked", "path", cfg.Path)
		return nil, errAlreadyOpen
	}

	// Timeout is left unset here; boltkv.Open fills in its own default
	// rather than waiting forever on lock contention (I7/P6).
	var boltOpts *bolt.Options
	if cfg.MaxTableSize > 0 {
		boltOpts = &bolt.Options{
			InitialMmapSize: int(cfg.MaxTableSize.Bytes()),
		}
	}

	db, err := boltkv.Open(cfg.Path, kv.Tables, boltOpts)
	if err != nil {
		_ = fl.Unlock()
		log.Warnw("latticestore: open failed", "path", cfg.Path, "err", err)
		return nil, err
	}

	return &Store{cfg: cfg, db: db, lock: fl, log: log, stackIdx: newStackIndex()}, nil
}

// TempDir creates a fresh temporary directory suitable for Config.Path,
// mirroring the original source's block_store_temp sentinel used
// throughout its test suite. Callers should os.RemoveAll it when done.
func TempDir() (string, error) {
	return os.MkdirTemp("", "latticestore-")
}

// Close releases every table file and the directory lock. Any iterator
// obtained from this Store must be closed first (§5).
func (s *Store) Close() error {
	dbErr := s.db.Close()
	lockErr := s.lock.Unlock()
	if dbErr != nil {
		return dbErr
	}
	return lockErr
}

// Now returns the current wall-clock time in seconds since the epoch — the
// sole source of timestamps for newly written frontiers (§4.7). It is
// guaranteed greater than the ledger's epoch anchor (I8).
func Now() uint64 {
	return uint64(time.Now().Unix())
}

// Batch runs fn inside a single engine transaction spanning every table fn
// touches, for the cross-table use that no single accessor needs on its own
// but that the ledger layer above this one does (§9, Open Question #3). If
// fn returns an error, every table's changes are discarded. Otherwise the
// tables are committed one after another; a commit failure on one table
// does not undo tables already committed. Nothing in this package calls it.
func (s *Store) Batch(ctx context.Context, fn func(*RwBatch) error) error {
	return s.db.Update(ctx, func(tx kv.RwTx) error {
		return fn(&RwBatch{tx: tx})
	})
}

// RwBatch exposes raw table access inside a Batch callback. It is
// deliberately table-name-based rather than typed, since a batch's whole
// purpose is to let a collaborator mix operations across tables this
// package's typed accessors keep separate.
type RwBatch struct {
	tx kv.RwTx
}

func (b *RwBatch) Put(table string, key, value []byte) error { return b.tx.Put(table, key, value) }
func (b *RwBatch) Delete(table string, key []byte) error     { return b.tx.Delete(table, key) }
func (b *RwBatch) Get(table string, key []byte) ([]byte, error) {
	return b.tx.GetOne(table, key)
}
