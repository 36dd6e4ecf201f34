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

package ports

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequenceSinglePort(t *testing.T) {
	s := New()
	s.AddPort(443)

	require.EqualValues(t, 1, s.Size())

	port, ok := s.Next()
	require.True(t, ok)
	require.EqualValues(t, 443, port)

	_, ok = s.Next()
	require.False(t, ok)
}

func TestSequenceRangeInclusive(t *testing.T) {
	s := New()
	s.AddRange(8000, 8003)

	require.EqualValues(t, 4, s.Size())

	var got []uint16
	for {
		port, ok := s.Next()
		if !ok {
			break
		}

		got = append(got, port)
	}

	require.Equal(t, []uint16{8000, 8001, 8002, 8003}, got)
}

func TestSequenceMultipleRangesInInsertionOrder(t *testing.T) {
	s := New()
	s.AddRange(20, 22)
	s.AddPort(80)
	s.AddRange(8080, 8081)

	var got []uint16
	for {
		port, ok := s.Next()
		if !ok {
			break
		}

		got = append(got, port)
	}

	require.Equal(t, []uint16{20, 21, 22, 80, 8080, 8081}, got)
	require.EqualValues(t, len(got), s.Size())
}

func TestSequenceCloneResetsCursor(t *testing.T) {
	s := New()
	s.AddRange(1, 3)

	first, ok := s.Next()
	require.True(t, ok)
	require.EqualValues(t, 1, first)

	clone := s.Clone()

	next, ok := s.Next()
	require.True(t, ok)
	require.EqualValues(t, 2, next)

	cloneFirst, ok := clone.Next()
	require.True(t, ok)
	require.EqualValues(t, 1, cloneFirst)
}

func TestSequenceReset(t *testing.T) {
	s := New()
	s.AddPort(53)

	_, _ = s.Next()
	_, ok := s.Next()
	require.False(t, ok)

	s.Reset()

	port, ok := s.Next()
	require.True(t, ok)
	require.EqualValues(t, 53, port)
}

func TestTop100IsWellFormed(t *testing.T) {
	require.NotEmpty(t, Top100)
	require.Len(t, Top100, 100)

	seen := make(map[uint16]bool, len(Top100))
	for _, p := range Top100 {
		require.False(t, seen[p], "duplicate port %d in Top100", p)
		seen[p] = true
	}
}

func TestTop1000ContainsTop100(t *testing.T) {
	set := make(map[uint16]bool, len(Top1000))
	for _, p := range Top1000 {
		set[p] = true
	}

	for _, p := range Top100 {
		require.True(t, set[p], "Top1000 must be a superset of Top100, missing %d", p)
	}
}
