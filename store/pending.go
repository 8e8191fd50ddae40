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
	"fmt"

	"github.com/erigontech/latticestore/common"
	"github.com/erigontech/latticestore/kv"
)

// Receivable describes an unclaimed incoming transfer (§3, §4.3).
type Receivable struct {
	Source      common.Account
	Amount      common.Uint128
	Destination common.Account
}

const receivableLen = common.Hash256Length*2 + common.Uint128Length

func encodeReceivable(r Receivable) []byte {
	out := make([]byte, 0, receivableLen)
	out = append(out, r.Source[:]...)
	out = append(out, r.Amount[:]...)
	out = append(out, r.Destination[:]...)
	return out
}

func decodeReceivable(raw []byte) (Receivable, error) {
	if len(raw) != receivableLen {
		return Receivable{}, fmt.Errorf("latticestore: receivable length %d, want %d", len(raw), receivableLen)
	}
	var r Receivable
	off := 0
	copy(r.Source[:], raw[off:off+common.Hash256Length])
	off += common.Hash256Length
	copy(r.Amount[:], raw[off:off+common.Uint128Length])
	off += common.Uint128Length
	copy(r.Destination[:], raw[off:off+common.Hash256Length])
	return r, nil
}

// PendingPut records receivable under the hash of the send block that
// created it, created when the send is observed (§3).
func (s *Store) PendingPut(hash common.Hash256, r Receivable) error {
	raw := encodeReceivable(r)
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Put(kv.Pending, hash[:], raw)
	})
}

// PendingGet follows the same false-on-success convention as LatestGet
// (§4.3): true means hash is missing.
func (s *Store) PendingGet(hash common.Hash256, out *Receivable) bool {
	missing := true
	_ = s.db.View(context.Background(), func(tx kv.Tx) error {
		raw, err := tx.GetOne(kv.Pending, hash[:])
		if err != nil || raw == nil {
			return nil
		}
		r, err := decodeReceivable(raw)
		if err != nil {
			s.log.Warnw("latticestore: undecodable receivable", "hash", hash.String(), "err", err)
			return nil
		}
		*out = r
		missing = false
		return nil
	})
	return missing
}

func (s *Store) PendingExists(hash common.Hash256) bool {
	var exists bool
	_ = s.db.View(context.Background(), func(tx kv.Tx) error {
		var err error
		exists, err = tx.Has(kv.Pending, hash[:])
		return err
	})
	return exists
}

// PendingDel removes hash — happens when its matching receive/open is
// processed (§3).
func (s *Store) PendingDel(hash common.Hash256) error {
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Delete(kv.Pending, hash[:])
	})
}

// PendingIterator walks the pending table in ascending hash order.
type PendingIterator struct{ raw *rawIterator }

func (it *PendingIterator) Valid() bool { return it.raw.valid }

func (it *PendingIterator) Key() common.Hash256 { return common.BytesToHash256(it.raw.key) }

func (it *PendingIterator) Value() (Receivable, error) { return decodeReceivable(it.raw.val) }

func (it *PendingIterator) Next() error { return it.raw.Next() }

func (it *PendingIterator) Close() { it.raw.Close() }

func (s *Store) PendingBegin() (*PendingIterator, error) {
	raw, err := newRawIterator(context.Background(), s.db, kv.Pending, nil)
	if err != nil {
		return nil, err
	}
	return &PendingIterator{raw: raw}, nil
}

func (s *Store) PendingBeginAt(hash common.Hash256) (*PendingIterator, error) {
	raw, err := newRawIterator(context.Background(), s.db, kv.Pending, hash[:])
	if err != nil {
		return nil, err
	}
	return &PendingIterator{raw: raw}, nil
}
