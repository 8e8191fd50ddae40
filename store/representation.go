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

// RepresentationGet returns the cached vote weight for account, or the
// zero value if account was never written. This is the one table where
// absent and zero are deliberately the same thing (§4.4): a weight of zero
// carries no ledger meaning, so the table is a cache, not a ledger of
// record.
func (s *Store) RepresentationGet(account common.Account) common.Uint128 {
	var weight common.Uint128
	_ = s.db.View(context.Background(), func(tx kv.Tx) error {
		raw, err := tx.GetOne(kv.Representation, account[:])
		if err != nil || raw == nil || len(raw) != common.Uint128Length {
			return nil
		}
		copy(weight[:], raw)
		return nil
	})
	return weight
}

// RepresentationPut overwrites the cached weight for account. No delete is
// required by the contract (§4.4) — writing the zero value is sufficient
// to make a subsequent Get indistinguishable from absent.
func (s *Store) RepresentationPut(account common.Account, weight common.Uint128) error {
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Put(kv.Representation, account[:], weight[:])
	})
}
