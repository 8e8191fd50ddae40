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

// Package kv names the tables of the block-lattice store and the small
// engine-facing interfaces (Tx, RwTx, Cursor) that the boltkv package
// implements. It carries no storage logic of its own — see boltkv for
// the bbolt-backed implementation, and the latticestore package for the
// typed accessors built on top of it.
package kv

import (
	"sort"
)

// Table names. Each one becomes a file on disk named "<name>.ldb" — one
// bbolt file per table rather than one shared environment, so each table
// satisfies §6's layout requirement on its own terms.
const (
	// Blocks
	// key   - 256-bit block hash
	// value - 1-byte type tag + block body (see package block)
	Blocks = "blocks"

	// Accounts (aka "latest" in the original source)
	// key   - 256-bit account id
	// value - frontier: head hash(256) + representative(256) + balance(128) + timestamp(64)
	Accounts = "accounts"

	// Pending
	// key   - 256-bit hash of the send block that created the receivable
	// value - receivable: source account(256) + amount(128) + destination account(256)
	Pending = "pending"

	// Representation
	// key   - 256-bit account id
	// value - 128-bit cached representative weight. Absent == zero (§4.4) —
	//         this is the one table where "missing" and "zero" are the same thing.
	Representation = "representation"

	// Unchecked
	// key   - 256-bit hash of the missing predecessor a parked block is waiting on
	// value - 1-byte type tag + block body, same codec as Blocks
	Unchecked = "unchecked"

	// Unsynced
	// key   - 256-bit block hash known by reference but not yet fetched
	// value - empty; this table is a set
	Unsynced = "unsynced"

	// Stack
	// key   - 64-bit big-endian level index
	// value - 256-bit hash
	// LIFO/addressable scratch for traversal algorithms; push overwrites.
	Stack = "stack"

	// Checksum
	// key   - (32-bit prefix << 8 | 8-bit mask), big-endian, 5 bytes
	// value - 256-bit hash
	Checksum = "checksum"
)

// Tables lists every bucket the store opens on construction. Sorted once in
// init so iteration order when opening/reporting status is deterministic —
// mirrors the teacher's ChaindataTables/sortBuckets pattern, minus the
// hundred-odd Ethereum-specific buckets that have no analogue here.
var Tables = []string{
	Blocks,
	Accounts,
	Pending,
	Representation,
	Unchecked,
	Unsynced,
	Stack,
	Checksum,
}

func init() {
	sort.Strings(Tables)
}

// FileName returns the on-disk file name for a table, per §6.
func FileName(table string) string {
	return table + ".ldb"
}
