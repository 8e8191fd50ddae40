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

// TestChecksumSimple mirrors TEST(block_store, checksum_simple): a put/get
// round trip at a given prefix/mask pair preserves the stored hash.
func TestChecksumSimple(t *testing.T) {
	s := newTestStore(t)
	var out common.Hash256
	require.True(t, s.ChecksumGet(1, 2, &out))

	want := hh(9)
	require.NoError(t, s.ChecksumPut(1, 2, want))
	require.False(t, s.ChecksumGet(1, 2, &out))
	require.Equal(t, want, out)
}

// TestChecksumDistinctMasks confirms prefix and mask both participate in
// the key: two masks under the same prefix are independent slots.
func TestChecksumDistinctMasks(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ChecksumPut(1, 1, hh(1)))
	require.NoError(t, s.ChecksumPut(1, 2, hh(2)))

	var out common.Hash256
	require.False(t, s.ChecksumGet(1, 1, &out))
	require.Equal(t, hh(1), out)
	require.False(t, s.ChecksumGet(1, 2, &out))
	require.Equal(t, hh(2), out)
}

func TestChecksumDel(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ChecksumPut(1, 1, hh(1)))
	require.NoError(t, s.ChecksumDel(1, 1))

	var out common.Hash256
	require.True(t, s.ChecksumGet(1, 1, &out))
}
