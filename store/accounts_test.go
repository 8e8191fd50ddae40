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

// TestFrontierRetrieval mirrors TEST(block_store, frontier_retrieval): a
// put/get round trip preserves every field of the frontier record.
func TestFrontierRetrieval(t *testing.T) {
	s := newTestStore(t)
	account := hh(1)
	want := Frontier{
		Hash:           hh(2),
		Representative: hh(3),
		Balance:        common.Uint64ToUint128(4),
		Time:           Now(),
	}
	require.NoError(t, s.LatestPut(account, want))

	var got Frontier
	require.False(t, s.LatestGet(account, &got))
	require.Equal(t, want, got)
}

// TestOneAccount mirrors TEST(block_store, one_account): a single entry is
// both directly gettable and reachable via the iterator.
func TestOneAccount(t *testing.T) {
	s := newTestStore(t)
	account := hh(1)
	f := Frontier{Hash: hh(2), Representative: hh(3), Balance: common.Uint64ToUint128(100), Time: 5}
	require.NoError(t, s.LatestPut(account, f))

	it, err := s.LatestBegin()
	require.NoError(t, err)
	defer it.Close()
	require.True(t, it.Valid())
	require.Equal(t, account, it.Key())
	val, err := it.Value()
	require.NoError(t, err)
	require.Equal(t, f, val)
	require.NoError(t, it.Next())
	require.False(t, it.Valid())
}

// TestTwoAccount mirrors TEST(block_store, two_account): both entries are
// visited in ascending account order, each exactly once.
func TestTwoAccount(t *testing.T) {
	s := newTestStore(t)
	a1, a2 := hh(1), hh(2)
	require.NoError(t, s.LatestPut(a1, Frontier{Hash: hh(10)}))
	require.NoError(t, s.LatestPut(a2, Frontier{Hash: hh(20)}))

	seen := map[common.Account]bool{}
	it, err := s.LatestBegin()
	require.NoError(t, err)
	defer it.Close()
	for it.Valid() {
		seen[it.Key()] = true
		require.NoError(t, it.Next())
	}
	require.Len(t, seen, 2)
	require.True(t, seen[a1])
	require.True(t, seen[a2])
}

func TestEmptyAccounts(t *testing.T) {
	s := newTestStore(t)
	it, err := s.LatestBegin()
	require.NoError(t, err)
	defer it.Close()
	require.False(t, it.Valid())
}

// TestLatestFind mirrors TEST(block_store, latest_find): LatestBeginAt
// positions at the smallest account >= the requested one (I6).
func TestLatestFind(t *testing.T) {
	s := newTestStore(t)
	a1, a3 := hh(1), hh(3)
	require.NoError(t, s.LatestPut(a1, Frontier{Hash: hh(10)}))
	require.NoError(t, s.LatestPut(a3, Frontier{Hash: hh(30)}))

	it, err := s.LatestBeginAt(hh(2))
	require.NoError(t, err)
	defer it.Close()
	require.True(t, it.Valid())
	require.Equal(t, a3, it.Key())

	afterEnd, err := s.LatestBeginAt(hh(4))
	require.NoError(t, err)
	defer afterEnd.Close()
	require.False(t, afterEnd.Valid())
}

// TestLatestExists mirrors the original's latest_exists negative case.
func TestLatestExists(t *testing.T) {
	s := newTestStore(t)
	account := hh(1)
	require.False(t, s.LatestExists(account))
	require.NoError(t, s.LatestPut(account, Frontier{Hash: hh(2)}))
	require.True(t, s.LatestExists(account))
	require.False(t, s.LatestExists(hh(2)))
	require.NoError(t, s.LatestDel(account))
	require.False(t, s.LatestExists(account))
}

func TestLatestGetMissingReturnsTrue(t *testing.T) {
	s := newTestStore(t)
	var out Frontier
	require.True(t, s.LatestGet(hh(9), &out))
	require.Equal(t, Frontier{}, out)
}
