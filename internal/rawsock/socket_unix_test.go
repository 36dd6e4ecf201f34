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

//go:build linux || darwin || freebsd

package rawsock

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripHeaderV6NoOuterHeader(t *testing.T) {
	s := &unixSocket{family: FamilyV6}

	buf := make([]byte, 20)
	_, offset, ok := s.stripHeader(buf)
	require.True(t, ok)
	require.Zero(t, offset)
}

func TestStripHeaderV4SkipsIHL(t *testing.T) {
	s := &unixSocket{family: FamilyV4}

	buf := make([]byte, 40)
	buf[0] = 0x45 // version 4, IHL 5 (20 bytes)

	srcBytes := netip.MustParseAddr("203.0.113.9").As4()
	copy(buf[12:16], srcBytes[:])

	src, offset, ok := s.stripHeader(buf)
	require.True(t, ok)
	require.Equal(t, 20, offset)
	require.Equal(t, "203.0.113.9", src.String())
}

func TestStripHeaderV4RejectsTruncated(t *testing.T) {
	s := &unixSocket{family: FamilyV4}

	buf := make([]byte, 10)
	_, _, ok := s.stripHeader(buf)
	require.False(t, ok)
}

func TestStripHeaderV4RejectsBadIHL(t *testing.T) {
	s := &unixSocket{family: FamilyV4}

	buf := make([]byte, 20)
	buf[0] = 0x40 // IHL 0, below the 20-byte minimum
	_, _, ok := s.stripHeader(buf)
	require.False(t, ok)
}
