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

// Package block implements the closed, four-variant block hierarchy of the
// block-lattice ledger and its on-disk codec. The package deliberately does
// not validate signatures or proof-of-work (§1: out of scope) — it only
// knows how to tell the variants apart on the wire and compare/clone them.
//
// Rather than a class hierarchy with virtual dispatch (the approach of the
// C++ original this was distilled from), variants are plain structs behind
// the Block interface and the tag byte drives a single decode switch —
// see §9, "Block polymorphism".
package block

import (
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/erigontech/latticestore/common"
)

// Tag is the one-byte on-disk discriminant. 0 is deliberately unused so a
// zeroed or truncated buffer is always an unambiguous decode failure rather
// than a phantom Send block (§9, Open Question #2).
type Tag byte

const (
	TagInvalid Tag = 0
	TagSend    Tag = 1
	TagReceive Tag = 2
	TagOpen    Tag = 3
	TagChange  Tag = 4
)

func (t Tag) String() string {
	switch t {
	case TagSend:
		return "send"
	case TagReceive:
		return "receive"
	case TagOpen:
		return "open"
	case TagChange:
		return "change"
	default:
		return fmt.Sprintf("invalid(%d)", byte(t))
	}
}

// Block is the interface every variant satisfies. The store holds Blocks
// behind this interface and never needs to know which concrete variant it
// is decoding or re-encoding.
type Block interface {
	// Tag identifies the variant for the wire encoding.
	Tag() Tag
	// Hash is the content hash over the hashable fields only (excludes
	// Signature and Work, per the original ledger's definition).
	Hash() common.Hash256
	// Root returns Previous for every non-open variant, and Account for
	// Open, the one variant with no predecessor to extend (§9).
	Root() common.Hash256
	// Clone returns a value the caller may outlive any cursor or
	// transaction that produced it (§4.1, "Cloning").
	Clone() Block
	// Equal does a field-by-field value comparison against another Block;
	// returns false if the variants differ.
	Equal(other Block) bool
	// encodeBody appends this block's canonical fixed-length body (no tag, no
	// length prefix) to dst and returns the result.
	encodeBody(dst []byte) []byte
}

// SendBlock moves `Balance` worth of funds out of the sender's chain,
// leaving a receivable for Destination to claim.
type SendBlock struct {
	Previous    common.Hash256
	Destination common.Hash256
	Balance     common.Uint128
	Signature   common.Uint512
	Work        uint64
}

const sendBodyLen = common.Hash256Length*2 + common.Uint128Length + common.Uint512Length + 8

func (b *SendBlock) Tag() Tag { return TagSend }

func (b *SendBlock) Root() common.Hash256 { return b.Previous }

func (b *SendBlock) Hash() common.Hash256 {
	return hashFields(b.Previous[:], b.Destination[:], b.Balance[:])
}

func (b *SendBlock) Clone() Block {
	c := *b
	return &c
}

func (b *SendBlock) Equal(other Block) bool {
	o, ok := other.(*SendBlock)
	return ok && *b == *o
}

func (b *SendBlock) encodeBody(dst []byte) []byte {
	dst = append(dst, b.Previous[:]...)
	dst = append(dst, b.Destination[:]...)
	dst = append(dst, b.Balance[:]...)
	dst = append(dst, b.Signature[:]...)
	dst = append(dst, common.PutUint64BE(b.Work)...)
	return dst
}

func decodeSendBody(body []byte) (*SendBlock, error) {
	if len(body) != sendBodyLen {
		return nil, fmt.Errorf("block: send body length %d, want %d", len(body), sendBodyLen)
	}
	b := &SendBlock{}
	off := 0
	off = readHash(body, off, &b.Previous)
	off = readHash(body, off, &b.Destination)
	off = readU128(body, off, &b.Balance)
	off = readU512(body, off, &b.Signature)
	b.Work = common.Uint64BE(body[off : off+8])
	return b, nil
}

// ReceiveBlock claims a receivable left by a prior SendBlock.
type ReceiveBlock struct {
	Previous  common.Hash256
	Source    common.Hash256
	Signature common.Uint512
	Work      uint64
}

const receiveBodyLen = common.Hash256Length*2 + common.Uint512Length + 8

func (b *ReceiveBlock) Tag() Tag { return TagReceive }

func (b *ReceiveBlock) Root() common.Hash256 { return b.Previous }

func (b *ReceiveBlock) Hash() common.Hash256 {
	return hashFields(b.Previous[:], b.Source[:])
}

func (b *ReceiveBlock) Clone() Block {
	c := *b
	return &c
}

func (b *ReceiveBlock) Equal(other Block) bool {
	o, ok := other.(*ReceiveBlock)
	return ok && *b == *o
}

func (b *ReceiveBlock) encodeBody(dst []byte) []byte {
	dst = append(dst, b.Previous[:]...)
	dst = append(dst, b.Source[:]...)
	dst = append(dst, b.Signature[:]...)
	dst = append(dst, common.PutUint64BE(b.Work)...)
	return dst
}

func decodeReceiveBody(body []byte) (*ReceiveBlock, error) {
	if len(body) != receiveBodyLen {
		return nil, fmt.Errorf("block: receive body length %d, want %d", len(body), receiveBodyLen)
	}
	b := &ReceiveBlock{}
	off := 0
	off = readHash(body, off, &b.Previous)
	off = readHash(body, off, &b.Source)
	off = readU512(body, off, &b.Signature)
	b.Work = common.Uint64BE(body[off : off+8])
	return b, nil
}

// OpenBlock is the first block of an account's chain: it has no Previous,
// only a Source receivable it claims and the Account it opens.
type OpenBlock struct {
	Source         common.Hash256
	Representative common.Hash256
	Account        common.Hash256
	Signature      common.Uint512
	Work           uint64
}

const openBodyLen = common.Hash256Length*3 + common.Uint512Length + 8

func (b *OpenBlock) Tag() Tag { return TagOpen }

// Root returns Account for Open blocks — the one variant that does not
// extend a Previous (§9).
func (b *OpenBlock) Root() common.Hash256 { return b.Account }

func (b *OpenBlock) Hash() common.Hash256 {
	return hashFields(b.Source[:], b.Representative[:], b.Account[:])
}

func (b *OpenBlock) Clone() Block {
	c := *b
	return &c
}

func (b *OpenBlock) Equal(other Block) bool {
	o, ok := other.(*OpenBlock)
	return ok && *b == *o
}

func (b *OpenBlock) encodeBody(dst []byte) []byte {
	dst = append(dst, b.Source[:]...)
	dst = append(dst, b.Representative[:]...)
	dst = append(dst, b.Account[:]...)
	dst = append(dst, b.Signature[:]...)
	dst = append(dst, common.PutUint64BE(b.Work)...)
	return dst
}

func decodeOpenBody(body []byte) (*OpenBlock, error) {
	if len(body) != openBodyLen {
		return nil, fmt.Errorf("block: open body length %d, want %d", len(body), openBodyLen)
	}
	b := &OpenBlock{}
	off := 0
	off = readHash(body, off, &b.Source)
	off = readHash(body, off, &b.Representative)
	off = readHash(body, off, &b.Account)
	off = readU512(body, off, &b.Signature)
	b.Work = common.Uint64BE(body[off : off+8])
	return b, nil
}

// ChangeBlock changes the account's chosen representative without moving
// funds.
type ChangeBlock struct {
	Previous       common.Hash256
	Representative common.Hash256
	Signature      common.Uint512
	Work           uint64
}

const changeBodyLen = common.Hash256Length*2 + common.Uint512Length + 8

func (b *ChangeBlock) Tag() Tag { return TagChange }

func (b *ChangeBlock) Root() common.Hash256 { return b.Previous }

func (b *ChangeBlock) Hash() common.Hash256 {
	return hashFields(b.Previous[:], b.Representative[:])
}

func (b *ChangeBlock) Clone() Block {
	c := *b
	return &c
}

func (b *ChangeBlock) Equal(other Block) bool {
	o, ok := other.(*ChangeBlock)
	return ok && *b == *o
}

func (b *ChangeBlock) encodeBody(dst []byte) []byte {
	dst = append(dst, b.Previous[:]...)
	dst = append(dst, b.Representative[:]...)
	dst = append(dst, b.Signature[:]...)
	dst = append(dst, common.PutUint64BE(b.Work)...)
	return dst
}

func decodeChangeBody(body []byte) (*ChangeBlock, error) {
	if len(body) != changeBodyLen {
		return nil, fmt.Errorf("block: change body length %d, want %d", len(body), changeBodyLen)
	}
	b := &ChangeBlock{}
	off := 0
	off = readHash(body, off, &b.Previous)
	off = readHash(body, off, &b.Representative)
	off = readU512(body, off, &b.Signature)
	b.Work = common.Uint64BE(body[off : off+8])
	return b, nil
}

// Encode produces the on-disk representation: tag byte + canonical body,
// no length prefix (§4.1).
func Encode(b Block) []byte {
	dst := make([]byte, 0, 1+maxBodyLen)
	dst = append(dst, byte(b.Tag()))
	return b.encodeBody(dst)
}

// Decode reads the tag byte and dispatches to the matching fixed-length
// body reader. Extra or missing trailing bytes, or an unknown tag, is a
// decode failure (§4.1) — returned as a plain error; callers that need the
// §7 "absent on decode failure" behavior (block_get) convert this to nil.
func Decode(raw []byte) (Block, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("block: empty encoding")
	}
	tag := Tag(raw[0])
	body := raw[1:]
	switch tag {
	case TagSend:
		return decodeSendBody(body)
	case TagReceive:
		return decodeReceiveBody(body)
	case TagOpen:
		return decodeOpenBody(body)
	case TagChange:
		return decodeChangeBody(body)
	default:
		return nil, fmt.Errorf("block: unknown tag %d", raw[0])
	}
}

const maxBodyLen = openBodyLen // the widest variant

func hashFields(parts ...[]byte) common.Hash256 {
	h, err := blake2b.New256(nil)
	if err != nil {
		// blake2b.New256 only errors on an oversized key, and we never
		// pass one.
		panic(err)
	}
	for _, p := range parts {
		h.Write(p)
	}
	var out common.Hash256
	copy(out[:], h.Sum(nil))
	return out
}

func readHash(body []byte, off int, out *common.Hash256) int {
	copy(out[:], body[off:off+common.Hash256Length])
	return off + common.Hash256Length
}

func readU128(body []byte, off int, out *common.Uint128) int {
	copy(out[:], body[off:off+common.Uint128Length])
	return off + common.Uint128Length
}

func readU512(body []byte, off int, out *common.Uint512) int {
	copy(out[:], body[off:off+common.Uint512Length])
	return off + common.Uint512Length
}
