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

package codec

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSYNFieldsV4(t *testing.T) {
	src := netip.MustParseAddr("192.0.2.1")
	dst := netip.MustParseAddr("192.0.2.2")

	var seq uint32 = 41

	buf := make([]byte, SegmentSize)

	n, err := BuildSYN(src, dst, 50123, 80, &seq, buf)
	require.NoError(t, err)
	require.Equal(t, SegmentSize, n)
	require.EqualValues(t, 42, seq, "seq must be pre-incremented before use")

	seg, err := ParseTCP(buf)
	require.NoError(t, err)
	require.EqualValues(t, 50123, seg.SrcPort)
	require.EqualValues(t, 80, seg.DstPort)
	require.EqualValues(t, 42, seg.Seq)
	require.Zero(t, seg.Ack)
	require.EqualValues(t, 8, seg.DataOff)
	require.EqualValues(t, FlagSYN, seg.Flags)
	require.EqualValues(t, 1024, seg.Window)

	// MSS option bytes.
	require.EqualValues(t, mssOptionKind, buf[20])
	require.EqualValues(t, mssOptionLen, buf[21])
	require.EqualValues(t, mssValue, uint16(buf[22])<<8|uint16(buf[23]))
}

func TestBuildSYNDeterministic(t *testing.T) {
	src := netip.MustParseAddr("10.0.0.1")
	dst := netip.MustParseAddr("10.0.0.2")

	var seqA, seqB uint32 = 7, 7

	bufA := make([]byte, SegmentSize)
	bufB := make([]byte, SegmentSize)

	_, err := BuildSYN(src, dst, 1111, 443, &seqA, bufA)
	require.NoError(t, err)

	_, err = BuildSYN(src, dst, 1111, 443, &seqB, bufB)
	require.NoError(t, err)

	require.Equal(t, bufA, bufB, "fixed inputs must produce a deterministic segment")
}

func TestBuildSYNChecksumVerifiesV4(t *testing.T) {
	src := netip.MustParseAddr("192.0.2.10")
	dst := netip.MustParseAddr("192.0.2.20")

	var seq uint32

	buf := make([]byte, SegmentSize)

	_, err := BuildSYN(src, dst, 1234, 22, &seq, buf)
	require.NoError(t, err)

	seg, err := ParseTCP(buf)
	require.NoError(t, err)

	zeroed := make([]byte, SegmentSize)
	copy(zeroed, buf)
	zeroed[16], zeroed[17] = 0, 0

	recomputed := tcpChecksumV4(src, dst, zeroed)
	require.Equal(t, seg.Checksum, recomputed)
}

func TestBuildSYNChecksumVerifiesV6(t *testing.T) {
	src := netip.MustParseAddr("2001:db8::1")
	dst := netip.MustParseAddr("2001:db8::2")

	var seq uint32

	buf := make([]byte, SegmentSize)

	_, err := BuildSYN(src, dst, 4444, 443, &seq, buf)
	require.NoError(t, err)

	seg, err := ParseTCP(buf)
	require.NoError(t, err)

	zeroed := make([]byte, SegmentSize)
	copy(zeroed, buf)
	zeroed[16], zeroed[17] = 0, 0

	recomputed := tcpChecksumV6(src, dst, zeroed)
	require.Equal(t, seg.Checksum, recomputed)
}

func TestBuildSYNBufferTooSmall(t *testing.T) {
	src := netip.MustParseAddr("192.0.2.1")
	dst := netip.MustParseAddr("192.0.2.2")

	var seq uint32

	buf := make([]byte, 10)

	_, err := BuildSYN(src, dst, 1, 1, &seq, buf)
	require.ErrorIs(t, err, ErrBufferTooSmall)
}

func TestBuildSYNMixedFamily(t *testing.T) {
	src := netip.MustParseAddr("192.0.2.1")
	dst := netip.MustParseAddr("2001:db8::1")

	var seq uint32

	buf := make([]byte, SegmentSize)

	_, err := BuildSYN(src, dst, 1, 1, &seq, buf)
	require.ErrorIs(t, err, ErrMixedFamily)
}

func TestIsSYNACK(t *testing.T) {
	require.True(t, IsSYNACK(FlagSYN|FlagACK))
	require.False(t, IsSYNACK(FlagACK|FlagRST))
	require.False(t, IsSYNACK(FlagSYN))
	// Documented lax acceptance: bare ACK (no SYN) still counts as open.
	require.True(t, IsSYNACK(FlagACK))
}
