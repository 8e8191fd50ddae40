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

	"github.com/erigontech/latticestore/block"
	"github.com/erigontech/latticestore/common"
	"github.com/erigontech/latticestore/kv"
)

// UncheckedPut parks blk under the hash of the predecessor it is waiting
// on — mirrors Blocks in interface but keys by the awaited hash, not the
// block's own hash (§4.5).
func (s *Store) UncheckedPut(awaited common.Hash256, blk block.Block) error {
	raw := block.Encode(blk)
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Put(kv.Unchecked, awaited[:], raw)
	})
}

// UncheckedGet decodes the parked block waiting on awaited, or nil if
// there is none (same absent/undecodable conflation as BlockGet, §7).
func (s *Store) UncheckedGet(awaited common.Hash256) block.Block {
	var out block.Block
	_ = s.db.View(context.Background(), func(tx kv.Tx) error {
		raw, err := tx.GetOne(kv.Unchecked, awaited[:])
		if err != nil || raw == nil {
			return nil
		}
		b, err := block.Decode(raw)
		if err != nil {
			s.log.Warnw("latticestore: undecodable unchecked block", "awaited", awaited.String(), "err", err)
			return nil
		}
		out = b
		return nil
	})
	return out
}

// UncheckedDel removes the parked entry — happens once the predecessor
// arrives and reprocessing succeeds (§3).
func (s *Store) UncheckedDel(awaited common.Hash256) error {
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Delete(kv.Unchecked, awaited[:])
	})
}

// UncheckedIterator walks the unchecked table in ascending key order.
type UncheckedIterator struct{ raw *rawIterator }

func (it *UncheckedIterator) Valid() bool { return it.raw.valid }

func (it *UncheckedIterator) Key() common.Hash256 { return common.BytesToHash256(it.raw.key) }

func (it *UncheckedIterator) Value() (block.Block, error) { return block.Decode(it.raw.val) }

func (it *UncheckedIterator) Next() error { return it.raw.Next() }

func (it *UncheckedIterator) Close() { it.raw.Close() }

func (s *Store) UncheckedBegin() (*UncheckedIterator, error) {
	raw, err := newRawIterator(context.Background(), s.db, kv.Unchecked, nil)
	if err != nil {
		return nil, err
	}
	return &UncheckedIterator{raw: raw}, nil
}
