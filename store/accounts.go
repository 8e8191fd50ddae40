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

// Frontier is an account's head pointer and metadata (§3, §4.2).
type Frontier struct {
	Hash           common.Hash256
	Representative common.Hash256
	Balance        common.Uint128
	Time           uint64
}

const frontierLen = common.Hash256Length*2 + common.Uint128Length + 8

func encodeFrontier(f Frontier) []byte {
	out := make([]byte, 0, frontierLen)
	out = append(out, f.Hash[:]...)
	out = append(out, f.Representative[:]...)
	out = append(out, f.Balance[:]...)
	out = append(out, common.PutUint64BE(f.Time)...)
	return out
}

func decodeFrontier(raw []byte) (Frontier, error) {
	if len(raw) != frontierLen {
		return Frontier{}, fmt.Errorf("latticestore: frontier length %d, want %d", len(raw), frontierLen)
	}
	var f Frontier
	off := 0
	copy(f.Hash[:], raw[off:off+common.Hash256Length])
	off += common.Hash256Length
	copy(f.Representative[:], raw[off:off+common.Hash256Length])
	off += common.Hash256Length
	copy(f.Balance[:], raw[off:off+common.Uint128Length])
	off += common.Uint128Length
	f.Time = common.Uint64BE(raw[off : off+8])
	return f, nil
}

// LatestPut writes the frontier record for account, overwriting any prior
// value — rewritten on every accepted block for that account (§3).
func (s *Store) LatestPut(account common.Account, f Frontier) error {
	raw := encodeFrontier(f)
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Put(kv.Accounts, account[:], raw)
	})
}

// LatestGet follows the original's false-on-success convention (§4.2):
// it returns true when account is missing, false when found — in which
// case out has been populated. This reads oddly next to Go idiom, but the
// contract is preserved deliberately because callers elsewhere in the
// ledger already depend on "false means no error".
func (s *Store) LatestGet(account common.Account, out *Frontier) bool {
	missing := true
	_ = s.db.View(context.Background(), func(tx kv.Tx) error {
		raw, err := tx.GetOne(kv.Accounts, account[:])
		if err != nil || raw == nil {
			return nil
		}
		f, err := decodeFrontier(raw)
		if err != nil {
			s.log.Warnw("latticestore: undecodable frontier", "account", account.String(), "err", err)
			return nil
		}
		*out = f
		missing = false
		return nil
	})
	return missing
}

func (s *Store) LatestExists(account common.Account) bool {
	var exists bool
	_ = s.db.View(context.Background(), func(tx kv.Tx) error {
		var err error
		exists, err = tx.Has(kv.Accounts, account[:])
		return err
	})
	return exists
}

func (s *Store) LatestDel(account common.Account) error {
	return s.db.Update(context.Background(), func(tx kv.RwTx) error {
		return tx.Delete(kv.Accounts, account[:])
	})
}

// AccountsIterator walks the accounts table in ascending account order.
type AccountsIterator struct{ raw *rawIterator }

func (it *AccountsIterator) Valid() bool { return it.raw.valid }

func (it *AccountsIterator) Key() common.Account { return common.BytesToHash256(it.raw.key) }

func (it *AccountsIterator) Value() (Frontier, error) { return decodeFrontier(it.raw.val) }

func (it *AccountsIterator) Next() error { return it.raw.Next() }

func (it *AccountsIterator) Close() { it.raw.Close() }

func (s *Store) LatestBegin() (*AccountsIterator, error) {
	raw, err := newRawIterator(context.Background(), s.db, kv.Accounts, nil)
	if err != nil {
		return nil, err
	}
	return &AccountsIterator{raw: raw}, nil
}

// LatestBeginAt positions at the smallest account >= account (I6) — the
// lower-bound cursor the original's latest_begin(account) overload gives.
func (s *Store) LatestBeginAt(account common.Account) (*AccountsIterator, error) {
	raw, err := newRawIterator(context.Background(), s.db, kv.Accounts, account[:])
	if err != nil {
		return nil, err
	}
	return &AccountsIterator{raw: raw}, nil
}
