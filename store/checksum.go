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

// ChecksumPut stores hash under the composite key (prefix<<8)|mask (§3,
// §4.6). The hierarchy prefix/mask encode is not interpreted here — it is
// a flat table whose higher-level semantics belong to the ledger.
func (s *Store) ChecksumPut(prefix uint32, mask uint8, hash common.Hash256) error {
	key := common.ChecksumKey(prefix, mask)
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Put(kv.Checksum, key, hash[:])
	})
}

// ChecksumGet follows the same false-on-success convention as LatestGet
// and PendingGet (§4.6): true means the composite key is missing.
func (s *Store) ChecksumGet(prefix uint32, mask uint8, out *common.Hash256) bool {
	key := common.ChecksumKey(prefix, mask)
	missing := true
	_ = s.db.View(context.Background(), func(tx kv.Tx) error {
		raw, err := tx.GetOne(kv.Checksum, key)
		if err != nil || raw == nil || len(raw) != common.Hash256Length {
			return nil
		}
		copy(out[:], raw)
		missing = false
		return nil
	})
	return missing
}

func (s *Store) ChecksumDel(prefix uint32, mask uint8) error {
	key := common.ChecksumKey(prefix, mask)
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Delete(kv.Checksum, key)
	})
}
