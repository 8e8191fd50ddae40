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

	"github.com/erigontech/latticestore/common"
	"github.com/erigontech/latticestore/kv"
)

// Unsynced is a set of hashes known by reference but not yet fetched
// (§3, §4.5). Values are empty; presence of the key is the whole record.
var unsyncedValue = []byte{}

func (s *Store) UnsyncedPut(hash common.Hash256) error {
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Put(kv.Unsynced, hash[:], unsyncedValue)
	})
}

func (s *Store) UnsyncedDel(hash common.Hash256) error {
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Delete(kv.Unsynced, hash[:])
	})
}

func (s *Store) UnsyncedExists(hash common.Hash256) bool {
	var exists bool
	_ = s.db.View(context.Background(), func(tx kv.Tx) error {
		var err error
		exists, err = tx.Has(kv.Unsynced, hash[:])
		return err
	})
	return exists
}

// UnsyncedIterator walks the unsynced set in ascending hash order, yielding
// raw hashes (§4.5).
type UnsyncedIterator struct{ raw *rawIterator }

func (it *UnsyncedIterator) Valid() bool { return it.raw.valid }

func (it *UnsyncedIterator) Hash() common.Hash256 { return common.BytesToHash256(it.raw.key) }

func (it *UnsyncedIterator) Next() error { return it.raw.Next() }

func (it *UnsyncedIterator) Close() { it.raw.Close() }

func (s *Store) UnsyncedBegin() (*UnsyncedIterator, error) {
	raw, err := newRawIterator(context.Background(), s.db, kv.Unsynced, nil)
	if err != nil {
		return nil, err
	}
	return &UnsyncedIterator{raw: raw}, nil
}
