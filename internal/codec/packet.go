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

// Package codec builds and parses the bare-minimum TCP SYN segments this
// scanner sends and the replies it inspects. It never touches an IP header:
// the kernel raw socket fills that in on send, and internal/rawsock strips it
// on receive before handing bytes here.
package codec

import (
	"encoding/binary"
	"net/netip"
)

// TCP flag bits (single-byte flags field, no NS/ECN-aware offset byte split).
const (
	FlagFIN = 0x01
	FlagSYN = 0x02
	FlagRST = 0x04
	FlagPSH = 0x08
	FlagACK = 0x10
	FlagURG = 0x20
)

const (
	// synSegmentSize is the fixed wire size of every probe this scanner
	// sends: a 20-byte TCP header plus a 4-byte MSS option, zero-padded out
	// to a declared data offset of 8 32-bit words (32 bytes total).
	synSegmentSize = 32

	baseHeaderSize = 20
	dataOffsetWord = 8 // 8 * 4 = 32 bytes, matches synSegmentSize

	mssOptionKind = 2
	mssOptionLen  = 4
	mssValue      = 1460

	ipv4PseudoHeaderSize = 12
	ipv6PseudoHeaderSize = 40

	tcpProtocolNumber = 6
)

// SegmentSize is the number of bytes BuildSYN writes.
const SegmentSize = synSegmentSize

// BuildSYN crafts a SYN-only TCP segment from srcPort to dstPort into buf,
// using (and pre-incrementing) the shared sequence counter seq. The returned
// length is always SegmentSize on success.
//
// buf must be at least SegmentSize bytes; BuildSYN never allocates.
func BuildSYN(srcIP, dstIP netip.Addr, srcPort, dstPort uint16, seq *uint32, buf []byte) (int, error) {
	if len(buf) < synSegmentSize {
		return 0, ErrBufferTooSmall
	}

	if srcIP.Is4() != dstIP.Is4() {
		return 0, ErrMixedFamily
	}

	*seq++

	segment := buf[:synSegmentSize]
	for i := range segment {
		segment[i] = 0
	}

	binary.BigEndian.PutUint16(segment[0:2], srcPort)
	binary.BigEndian.PutUint16(segment[2:4], dstPort)
	binary.BigEndian.PutUint32(segment[4:8], *seq)
	// ack (segment[8:12]) stays zero.
	segment[12] = dataOffsetWord << 4
	segment[13] = FlagSYN
	binary.BigEndian.PutUint16(segment[14:16], 1024) // window
	// checksum (segment[16:18]) filled below; urgent pointer stays zero.

	segment[20] = mssOptionKind
	segment[21] = mssOptionLen
	binary.BigEndian.PutUint16(segment[22:24], mssValue)
	// segment[24:32] left zero: reads as TCP EOL + padding.

	var sum uint16
	if srcIP.Is4() {
		sum = tcpChecksumV4(srcIP, dstIP, segment)
	} else {
		sum = tcpChecksumV6(srcIP, dstIP, segment)
	}

	binary.BigEndian.PutUint16(segment[16:18], sum)

	return synSegmentSize, nil
}

// Segment holds the fixed header fields of a received TCP segment. The values
// are copied out of the parsed buffer, so a Segment stays valid after that
// buffer is reused.
type Segment struct {
	SrcPort  uint16
	DstPort  uint16
	Seq      uint32
	Ack      uint32
	DataOff  uint8 // header length in 32-bit words
	Flags    uint8
	Window   uint16
	Checksum uint16
}

// ParseTCP reads the fixed TCP header fields out of buf. It does not validate
// the checksum (the scanner only inspects flags) and ignores any options.
func ParseTCP(buf []byte) (Segment, error) {
	if len(buf) < baseHeaderSize {
		return Segment{}, ErrShortSegment
	}

	return Segment{
		SrcPort:  binary.BigEndian.Uint16(buf[0:2]),
		DstPort:  binary.BigEndian.Uint16(buf[2:4]),
		Seq:      binary.BigEndian.Uint32(buf[4:8]),
		Ack:      binary.BigEndian.Uint32(buf[8:12]),
		DataOff:  buf[12] >> 4,
		Flags:    buf[13],
		Window:   binary.BigEndian.Uint16(buf[14:16]),
		Checksum: binary.BigEndian.Uint16(buf[16:18]),
	}, nil
}

// IsSYNACK reports whether flags looks like a response to an outstanding SYN
// probe under this scanner's (deliberately lax) acceptance rule: ACK set and
// RST clear. See spec.md §9 "Open question (possible bug)" — SYN is not
// required to be set, matching the source behavior being reimplemented.
func IsSYNACK(flags uint8) bool {
	return flags&FlagACK != 0 && flags&FlagRST == 0
}

// tcpChecksumV4 computes the standard IPv4 TCP checksum: ones'-complement sum
// over the IPv4 pseudo-header followed by the TCP segment.
func tcpChecksumV4(srcIP, dstIP netip.Addr, segment []byte) uint16 {
	var pseudo [ipv4PseudoHeaderSize]byte

	src4 := srcIP.As4()
	dst4 := dstIP.As4()

	copy(pseudo[0:4], src4[:])
	copy(pseudo[4:8], dst4[:])
	pseudo[8] = 0
	pseudo[9] = tcpProtocolNumber
	binary.BigEndian.PutUint16(pseudo[10:12], uint16(len(segment)))

	return ones16(checksumAccumulate(checksumAccumulate(0, pseudo[:]), segment))
}

// tcpChecksumV6 computes the TCP checksum using the IPv6 pseudo-header.
func tcpChecksumV6(srcIP, dstIP netip.Addr, segment []byte) uint16 {
	var pseudo [ipv6PseudoHeaderSize]byte

	src16 := srcIP.As16()
	dst16 := dstIP.As16()

	copy(pseudo[0:16], src16[:])
	copy(pseudo[16:32], dst16[:])
	binary.BigEndian.PutUint32(pseudo[32:36], uint32(len(segment)))
	pseudo[39] = tcpProtocolNumber

	return ones16(checksumAccumulate(checksumAccumulate(0, pseudo[:]), segment))
}

// checksumAccumulate adds payload, as big-endian 16-bit words, to a running
// 32-bit ones'-complement accumulator. An odd trailing byte is padded with a
// zero low byte within this call; no partial word is carried into a later
// call. Folding to 16 bits is left to ones16.
func checksumAccumulate(acc uint32, payload []byte) uint32 {
	i := 0
	for ; i+1 < len(payload); i += 2 {
		acc += uint32(binary.BigEndian.Uint16(payload[i:]))
	}

	if i < len(payload) {
		acc += uint32(payload[i]) << 8
	}

	return acc
}

// ones16 folds a 32-bit accumulator down to the final ones'-complement
// 16-bit checksum.
func ones16(acc uint32) uint16 {
	for acc > 0xffff {
		acc = (acc >> 16) + (acc & 0xffff)
	}

	return ^uint16(acc)
}
