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

	"github.com/google/btree"

	"github.com/erigontech/latticestore/common"
	"github.com/erigontech/latticestore/kv"
)

// stackEntry is one in-memory mirror of a level->hash slot. The durable
// bucket (table kv.Stack) remains the source of truth; stackIdx only saves
// a disk round trip for the push/pop pairs a single traversal algorithm
// issues in a tight loop — grounded on Erigon's own use of google/btree for
// in-memory ordered indices ahead of the durable engine.
type stackEntry struct {
	level uint64
	hash  common.Hash256
}

func stackLess(a, b stackEntry) bool { return a.level < b.level }

func newStackIndex() *btree.BTreeG[stackEntry] {
	return btree.NewG(32, stackLess)
}

// StackPush overwrites whatever hash was previously recorded at level
// (§4.5, §9): the level is the key, so each level holds exactly one slot.
func (s *Store) StackPush(level uint64, hash common.Hash256) error {
	key := common.PutUint64BE(level)
	if err := s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Put(kv.Stack, key, hash[:])
	}); err != nil {
		return err
	}
	s.stackMu.Lock()
	s.stackIdx.ReplaceOrInsert(stackEntry{level: level, hash: hash})
	s.stackMu.Unlock()
	return nil
}

// StackPop returns and removes the hash recorded at level. found is false
// if nothing was ever pushed at that level (or it was already popped).
func (s *Store) StackPop(level uint64) (hash common.Hash256, found bool) {
	s.stackMu.Lock()
	if entry, ok := s.stackIdx.Get(stackEntry{level: level}); ok {
		hash, found = entry.hash, true
		s.stackIdx.Delete(stackEntry{level: level})
	}
	s.stackMu.Unlock()

	if !found {
		key := common.PutUint64BE(level)
		_ = s.db.View(context.Background(), func(tx kv.Tx) error {
			raw, err := tx.GetOne(kv.Stack, key)
			if err != nil || raw == nil {
				return nil
			}
			hash = common.BytesToHash256(raw)
			found = true
			return nil
		})
		if !found {
			return common.Hash256{}, false
		}
	}

	key := common.PutUint64BE(level)
	_ = s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Delete(kv.Stack, key)
	})
	return hash, true
}
