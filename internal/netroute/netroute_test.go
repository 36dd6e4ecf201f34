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

package netroute

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultDeviceExtractsInterfaceName(t *testing.T) {
	out := "default via 192.0.2.1 dev eth0 proto dhcp metric 100\n"

	iface, err := parseDefaultDevice(out)
	require.NoError(t, err)
	require.Equal(t, "eth0", iface)
}

func TestParseDefaultDeviceNoRouteReturnsErr(t *testing.T) {
	_, err := parseDefaultDevice("")
	require.ErrorIs(t, err, ErrNoDefaultRoute)
}

func TestDefaultSourceIPsPropagatesRunnerError(t *testing.T) {
	boom := errors.New("boom")

	fake := func(name string, args ...string) ([]byte, error) {
		return nil, boom
	}

	_, err := defaultSourceIPs(fake, false)
	require.ErrorIs(t, err, boom)
}

func TestDefaultSourceIPsSelectsRequestedAddressArgs(t *testing.T) {
	var gotArgs []string

	fake := func(name string, args ...string) ([]byte, error) {
		gotArgs = args
		return []byte("default via fe80::1 dev eth0\n"), nil
	}

	_, _ = defaultSourceIPs(fake, true)
	require.Contains(t, gotArgs, "-6")
}
