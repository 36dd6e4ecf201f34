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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadParsesKnownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "armada.toml")

	contents := `
targets = ["10.0.0.0/24", "192.0.2.1"]
ports = ["80", "443", "8000-8100"]
quiet = true
rate_limit = 5000
retries = 3
timeout = 750
source_ip = ["10.0.0.9"]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	f, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, []string{"10.0.0.0/24", "192.0.2.1"}, f.Targets)
	require.Equal(t, []string{"80", "443", "8000-8100"}, f.Ports)
	require.True(t, f.Quiet)
	require.NotNil(t, f.RateLimit)
	require.Equal(t, 5000, *f.RateLimit)
	require.NotNil(t, f.Retries)
	require.EqualValues(t, 3, *f.Retries)
	require.NotNil(t, f.TimeoutMS)
	require.EqualValues(t, 750, *f.TimeoutMS)
	require.Equal(t, []string{"10.0.0.9"}, f.SourceIPs)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
