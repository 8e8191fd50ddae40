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

// TestRepresentationAbsentIsZero exercises §4.4's conflation of absent and
// zero: a representative never written reads back as the zero weight, with
// no way to tell "never written" from "written as zero" (P7).
func TestRepresentationAbsentIsZero(t *testing.T) {
	s := newTestStore(t)
	account := hh(1)
	require.Equal(t, common.Uint128{}, s.RepresentationGet(account))
}

func TestRepresentationChanges(t *testing.T) {
	s := newTestStore(t)
	account := hh(1)
	require.NoError(t, s.RepresentationPut(account, common.Uint64ToUint128(5)))
	require.Equal(t, common.Uint64ToUint128(5), s.RepresentationGet(account))

	require.NoError(t, s.RepresentationPut(account, common.Uint64ToUint128(9)))
	require.Equal(t, common.Uint64ToUint128(9), s.RepresentationGet(account))
}

// TestRepresentationWriteZeroLooksAbsent confirms the deliberate contract:
// writing the zero weight is indistinguishable from never writing at all.
func TestRepresentationWriteZeroLooksAbsent(t *testing.T) {
	s := newTestStore(t)
	account := hh(1)
	require.NoError(t, s.RepresentationPut(account, common.Uint128{}))
	require.Equal(t, common.Uint128{}, s.RepresentationGet(account))
}
