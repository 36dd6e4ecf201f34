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

package main

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTargetsAcceptsIPsAndCIDRs(t *testing.T) {
	seq, err := parseTargets([]string{"10.0.0.1", "192.168.1.0/30"})
	require.NoError(t, err)
	require.Equal(t, 2, seq.Len())
}

func TestParseTargetsRejectsGarbage(t *testing.T) {
	_, err := parseTargets([]string{"not-an-ip"})
	require.Error(t, err)
}

func TestParsePortSpecsAcceptsPortsAndRanges(t *testing.T) {
	seq, err := parsePortSpecs([]string{"80", "8000-8010"})
	require.NoError(t, err)
	require.EqualValues(t, 12, seq.Size())
}

func TestParsePortSpecsRejectsGarbage(t *testing.T) {
	_, err := parsePortSpecs([]string{"not-a-port"})
	require.Error(t, err)
}

func TestSplitSourceIPsPartitionsByFamily(t *testing.T) {
	v4, v6 := splitSourceIPs([]netip.Addr{
		netip.MustParseAddr("10.0.0.9"),
		netip.MustParseAddr("2001:db8::9"),
	})

	require.Len(t, v4, 1)
	require.Len(t, v6, 1)
}
