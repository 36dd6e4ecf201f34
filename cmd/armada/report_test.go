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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/resyncgg/armada/internal/engine"
)

func TestWriteReportGroupsPortsByIP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	probes := []engine.Probe{
		{IP: netip.MustParseAddr("10.0.0.1"), Port: 443},
		{IP: netip.MustParseAddr("10.0.0.1"), Port: 80},
		{IP: netip.MustParseAddr("10.0.0.2"), Port: 22},
	}

	require.NoError(t, writeReport(path, probes))

	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, "Remote IP,Remote Port\n10.0.0.1,\"443,80\"\n10.0.0.2,22\n", string(contents))
}
