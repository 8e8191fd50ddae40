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

package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/erigontech/latticestore/common"
)

func h(v uint64) common.Hash256 { return common.Uint64ToHash256(v) }

// roots mirrors the original source's TEST(block_store, roots): every
// variant's Root() returns Previous, except Open, which returns Account.
func TestRoots(t *testing.T) {
	send := &SendBlock{Previous: h(1)}
	require.Equal(t, send.Previous, send.Root())

	change := &ChangeBlock{Previous: h(1)}
	require.Equal(t, change.Previous, change.Root())

	receive := &ReceiveBlock{Previous: h(1)}
	require.Equal(t, receive.Previous, receive.Root())

	open := &OpenBlock{Account: h(3)}
	require.Equal(t, open.Account, open.Root())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Block{
		&SendBlock{Previous: h(1), Destination: h(2), Balance: common.Uint64ToUint128(3), Work: 5},
		&ReceiveBlock{Previous: h(1), Source: h(2), Work: 3},
		&OpenBlock{Source: h(0), Representative: h(0), Account: h(0)},
		&ChangeBlock{Previous: h(1), Representative: h(2), Work: 4},
	}
	for _, blk := range cases {
		raw := Encode(blk)
		decoded, err := Decode(raw)
		require.NoError(t, err)
		require.True(t, blk.Equal(decoded))
		require.True(t, decoded.Equal(blk))
	}
}

func TestDecodeUnknownTag(t *testing.T) {
	_, err := Decode([]byte{0})
	require.Error(t, err)

	_, err = Decode([]byte{99, 1, 2, 3})
	require.Error(t, err)
}

func TestDecodeTruncatedBody(t *testing.T) {
	raw := Encode(&SendBlock{Previous: h(1)})
	_, err := Decode(raw[:len(raw)-1])
	require.Error(t, err)
}

// Two distinct open blocks with different fields must not compare equal,
// mirroring TEST(block_store, add_two_items).
func TestTwoDistinctOpensNotEqual(t *testing.T) {
	a := &OpenBlock{Account: h(1)}
	b := &OpenBlock{Account: h(3)}
	require.False(t, a.Equal(b))
}

func TestCloneIsIndependent(t *testing.T) {
	orig := &OpenBlock{Account: h(1)}
	clone := orig.Clone().(*OpenBlock)
	clone.Account = h(2)
	require.Equal(t, h(1), orig.Account)
	require.True(t, orig.Equal(&OpenBlock{Account: h(1)}))
}

func TestHashStableAcrossSignatureAndWork(t *testing.T) {
	a := &SendBlock{Previous: h(1), Destination: h(2), Balance: common.Uint64ToUint128(3)}
	b := &SendBlock{Previous: h(1), Destination: h(2), Balance: common.Uint64ToUint128(3), Signature: common.Uint512{1}, Work: 42}
	require.Equal(t, a.Hash(), b.Hash())
}
