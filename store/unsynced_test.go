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

func TestUnsynced(t *testing.T) {
	s := newTestStore(t)
	hash := hh(1)
	require.False(t, s.UnsyncedExists(hash))
	require.NoError(t, s.UnsyncedPut(hash))
	require.True(t, s.UnsyncedExists(hash))
	require.NoError(t, s.UnsyncedDel(hash))
	require.False(t, s.UnsyncedExists(hash))
}

// TestUnsyncedIteration mirrors the original's unsynced iteration test: the
// set's hashes, and only its hashes, come back in ascending order.
func TestUnsyncedIteration(t *testing.T) {
	s := newTestStore(t)
	h1, h2 := hh(1), hh(2)
	require.NoError(t, s.UnsyncedPut(h1))
	require.NoError(t, s.UnsyncedPut(h2))

	seen := map[common.Hash256]bool{}
	it, err := s.UnsyncedBegin()
	require.NoError(t, err)
	defer it.Close()
	for it.Valid() {
		seen[it.Hash()] = true
		require.NoError(t, it.Next())
	}
	require.Len(t, seen, 2)
	require.True(t, seen[h1])
	require.True(t, seen[h2])
}
