// Copyright 2025 The Armada Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hosts implements the address side of the scan's target space: an
// ordered list of CIDR blocks that can be walked lazily, one address at a
// time, without ever materializing the full set in memory.
package hosts

import (
	"math/big"
	"net/netip"
)

// Sequence is an ordered list of CIDR blocks (v4 and v6 may be mixed) with a
// single iteration cursor. Blocks are visited in insertion order, and every
// address of a block — including its network and broadcast addresses — is
// produced; this scanner has no notion of a "usable host range".
//
// The zero value is not usable; construct with New.
type Sequence struct {
	blocks []netip.Prefix

	idx      int // index into blocks of the block currently being walked, -1 before Next's first call
	cur      netip.Addr
	curValid bool // true while cur still has unvisited addresses ahead of it, inclusive
}

// New returns an empty Sequence ready to be built up with AddIP/AddCIDR.
func New() *Sequence {
	return &Sequence{idx: -1}
}

// AddIP appends a single address as a /32 (v4) or /128 (v6) block.
func (s *Sequence) AddIP(addr netip.Addr) *Sequence {
	addr = addr.Unmap()

	bits := 32
	if !addr.Is4() {
		bits = 128
	}

	return s.AddCIDR(netip.PrefixFrom(addr, bits))
}

// AddCIDR appends a block. The prefix is masked, so passing a host address
// with bits set below the prefix length is tolerated the same way it would
// be for an explicit CIDR literal.
func (s *Sequence) AddCIDR(p netip.Prefix) *Sequence {
	s.blocks = append(s.blocks, p.Masked())
	return s
}

// Len reports how many blocks have been added.
func (s *Sequence) Len() int {
	return len(s.blocks)
}

// Size returns the total address count across every block, as a big.Int
// since a single /0 IPv6 block vastly exceeds any native integer type.
func (s *Sequence) Size() *big.Int {
	total := new(big.Int)

	for _, p := range s.blocks {
		hostBits := p.Addr().BitLen() - p.Bits()
		count := new(big.Int).Lsh(big.NewInt(1), uint(hostBits))
		total.Add(total, count)
	}

	return total
}

// Clone returns a copy that shares no mutable state with s: it preserves the
// block list but resets the iteration cursor, so the clone starts over from
// the first block regardless of how far s had advanced. This mirrors a
// deliberate upstream quirk: a "clone" of an in-progress sequence is not a
// snapshot of its position, only of its membership.
func (s *Sequence) Clone() *Sequence {
	blocks := make([]netip.Prefix, len(s.blocks))
	copy(blocks, s.blocks)

	return &Sequence{blocks: blocks, idx: -1}
}

// Reset rewinds the iteration cursor to the beginning without touching the
// block list.
func (s *Sequence) Reset() {
	s.idx = -1
	s.curValid = false
}

// Next returns the next address in the sequence, or ok=false once every
// block has been exhausted.
func (s *Sequence) Next() (netip.Addr, bool) {
	for {
		if !s.curValid {
			if !s.rotate() {
				return netip.Addr{}, false
			}

			continue
		}

		out := s.cur
		if s.cur == s.blockLast() {
			s.curValid = false
		} else {
			s.cur = s.cur.Next()
		}

		return out, true
	}
}

// rotate advances to the first address of the next non-empty block,
// returning false once blocks are exhausted.
func (s *Sequence) rotate() bool {
	s.idx++

	if s.idx >= len(s.blocks) {
		return false
	}

	s.cur = s.blocks[s.idx].Addr()
	s.curValid = true

	return true
}

// blockLast returns the final address (broadcast-equivalent, all host bits
// set) of the block currently being walked.
func (s *Sequence) blockLast() netip.Addr {
	p := s.blocks[s.idx]
	hostBits := p.Addr().BitLen() - p.Bits()

	if p.Addr().Is4() {
		b := p.Addr().As4()
		setTrailingBits(b[:], hostBits)

		return netip.AddrFrom4(b)
	}

	b := p.Addr().As16()
	setTrailingBits(b[:], hostBits)

	return netip.AddrFrom16(b)
}

// setTrailingBits sets the low n bits of a big-endian byte slice to 1.
func setTrailingBits(b []byte, n int) {
	for i := len(b) - 1; i >= 0 && n > 0; i-- {
		if n >= 8 {
			b[i] = 0xff
			n -= 8

			continue
		}

		b[i] |= byte(0xff >> (8 - n))
		n = 0
	}
}
