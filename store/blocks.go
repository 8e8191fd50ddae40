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

// BlockPut encodes and stores blk under hash, overwriting any prior value
// (§4.1). A non-nil error here is the catastrophic "engine I/O error
// during a write" class from §7 — the store does not retry.
func (s *Store) BlockPut(hash common.Hash256, blk block.Block) error {
	raw := block.Encode(blk)
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Put(kv.Blocks, hash[:], raw)
	})
}

// BlockGet decodes the block stored under hash, or returns nil if hash is
// absent — and also nil if the stored bytes fail to decode, since §7
// requires that the caller cannot distinguish "unreadable" from "absent".
func (s *Store) BlockGet(hash common.Hash256) block.Block {
	var out block.Block
	_ = s.db.View(context.Background(), func(tx kv.Tx) error {
		raw, err := tx.GetOne(kv.Blocks, hash[:])
		if err != nil || raw == nil {
			return nil
		}
		b, err := block.Decode(raw)
		if err != nil {
			s.log.Warnw("latticestore: undecodable block", "hash", hash.String(), "err", err)
			return nil
		}
		out = b
		return nil
	})
	return out
}

// BlockExists probes for presence without decoding the body (§4.1).
func (s *Store) BlockExists(hash common.Hash256) bool {
	var exists bool
	_ = s.db.View(context.Background(), func(tx kv.Tx) error {
		var err error
		exists, err = tx.Has(kv.Blocks, hash[:])
		return err
	})
	return exists
}

// BlockDel removes hash. Deleting an absent key is a no-op (I5).
func (s *Store) BlockDel(hash common.Hash256) error {
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Delete(kv.Blocks, hash[:])
	})
}

// BlocksIterator walks the blocks table in ascending hash order (I4).
type BlocksIterator struct{ raw *rawIterator }

func (it *BlocksIterator) Valid() bool { return it.raw.valid }

func (it *BlocksIterator) Key() common.Hash256 { return common.BytesToHash256(it.raw.key) }

// Value decodes the current entry. It is safe to retain beyond Next()/Close
// because Decode produces an independently-owned Block (§4.1, "Cloning").
func (it *BlocksIterator) Value() (block.Block, error) { return block.Decode(it.raw.val) }

func (it *BlocksIterator) Next() error { return it.raw.Next() }

func (it *BlocksIterator) Close() { it.raw.Close() }

// BlocksBegin positions at the smallest stored hash, or an invalid iterator
// if the table is empty.
func (s *Store) BlocksBegin() (*BlocksIterator, error) {
	raw, err := newRawIterator(context.Background(), s.db, kv.Blocks, nil)
	if err != nil {
		return nil, err
	}
	return &BlocksIterator{raw: raw}, nil
}

// BlocksBeginAt positions at the smallest stored hash >= hash (I6).
func (s *Store) BlocksBeginAt(hash common.Hash256) (*BlocksIterator, error) {
	raw, err := newRawIterator(context.Background(), s.db, kv.Blocks, hash[:])
	if err != nil {
		return nil, err
	}
	return &BlocksIterator{raw: raw}, nil
}
