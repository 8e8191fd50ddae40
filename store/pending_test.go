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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/latticestore/common"
)

// TestAddPending mirrors TEST(block_store, add_pending): a put/get round
// trip preserves every field of the receivable record.
func TestAddPending(t *testing.T) {
	s := newTestStore(t)
	hash := hh(1)
	want := Receivable{Source: hh(2), Amount: common.Uint64ToUint128(5), Destination: hh(3)}

	var out Receivable
	require.True(t, s.PendingGet(hash, &out))

	require.NoError(t, s.PendingPut(hash, want))
	require.False(t, s.PendingGet(hash, &out))
	require.Equal(t, want, out)

	require.NoError(t, s.PendingDel(hash))
	require.True(t, s.PendingGet(hash, &out))
}

// TestPendingIterator mirrors TEST(block_store, pending_iterator): every
// live entry is visited exactly once in ascending key order.
func TestPendingIterator(t *testing.T) {
	s := newTestStore(t)
	h1, h2 := hh(1), hh(2)
	require.NoError(t, s.PendingPut(h1, Receivable{Source: hh(10)}))
	require.NoError(t, s.PendingPut(h2, Receivable{Source: hh(20)}))

	seen := map[common.Hash256]bool{}
	it, err := s.PendingBegin()
	require.NoError(t, err)
	defer it.Close()
	for it.Valid() {
		seen[it.Key()] = true
		require.NoError(t, it.Next())
	}
	require.Len(t, seen, 2)
	require.True(t, seen[h1])
	require.True(t, seen[h2])
}

// TestPendingExists mirrors the original's pending_exists negative case.
func TestPendingExists(t *testing.T) {
	s := newTestStore(t)
	hash := hh(1)
	require.False(t, s.PendingExists(hash))
	require.NoError(t, s.PendingPut(hash, Receivable{Source: hh(2)}))
	require.True(t, s.PendingExists(hash))
	require.False(t, s.PendingExists(hh(2)))
}

func TestPendingBeginAt(t *testing.T) {
	s := newTestStore(t)
	h1, h3 := hh(1), hh(3)
	require.NoError(t, s.PendingPut(h1, Receivable{Source: hh(10)}))
	require.NoError(t, s.PendingPut(h3, Receivable{Source: hh(30)}))

	it, err := s.PendingBeginAt(hh(2))
	require.NoError(t, err)
	defer it.Close()
	require.True(t, it.Valid())
	require.Equal(t, h3, it.Key())
}
