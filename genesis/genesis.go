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

// Package genesis is a collaborator, not part of the store proper (§4.8):
// it seeds a fresh latticestore.Store with the ledger's well-known opening
// block using only the primitives the store already exposes — BlockPut,
// LatestPut, and the Now clock. The store never constructs genesis itself.
package genesis

import (
	"encoding/hex"

	"github.com/erigontech/latticestore/block"
	"github.com/erigontech/latticestore/common"
	latticestore "github.com/erigontech/latticestore/store"
)

// accountHex is the ledger's well-known genesis account, the single
// account that begins holding the entire initial supply.
const accountHex = "E89208DD038FBB269987689621D52292AE9C35941A7484756ECCED92A65093BA"

// Account is the genesis account id.
var Account = mustHash(accountHex)

// maxSupply is the total raw unit supply, held entirely by Account until
// the first send block moves any of it.
var maxSupply = common.Uint128{
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
}

// Block is the canonical genesis open block: it opens its own account,
// names itself as its own representative, and claims a synthetic "source"
// of itself rather than a prior send (there being no prior block).
var Block = &block.OpenBlock{
	Source:         Account,
	Representative: Account,
	Account:        Account,
}

// Hash is the content hash of the genesis block, used as both the block's
// storage key and the frontier's head pointer.
func Hash() common.Hash256 { return Block.Hash() }

// Initialize seeds store with the genesis block and frontier, the way a
// freshly constructed node bootstraps its ledger before processing any
// other block. It uses only the store's existing public surface (§4.8).
func Initialize(store *latticestore.Store) error {
	hash := Hash()
	if err := store.BlockPut(hash, Block); err != nil {
		return err
	}
	return store.LatestPut(Account, latticestore.Frontier{
		Hash:           hash,
		Representative: Account,
		Balance:        maxSupply,
		Time:           latticestore.Now(),
	})
}

func mustHash(h string) common.Hash256 {
	b, err := hex.DecodeString(h)
	if err != nil || len(b) != common.Hash256Length {
		panic("genesis: malformed account constant")
	}
	return common.BytesToHash256(b)
}
