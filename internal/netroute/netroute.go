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

// Package netroute discovers the source addresses armada should bind probes
// to when the caller did not pass --source-ip explicitly: the addresses
// configured on whichever interface the kernel's default route points at.
package netroute

import (
	"errors"
	"net"
	"net/netip"
	"os/exec"
	"regexp"
	"strings"
)

// ErrNoDefaultRoute is returned when the host has no default route for the
// requested address family.
var ErrNoDefaultRoute = errors.New("netroute: no default route found")

var devPattern = regexp.MustCompile(`\bdev\s+(\S+)`)

// runner abstracts subprocess execution so tests can substitute canned route
// table output without a real routing table or root privileges.
type runner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// DefaultSourceIPs returns every address configured on the interface the
// kernel routes 0.0.0.0/0 (v4) or ::/0 (v6) through. Mirrors the Rust
// original's subprocess-based discovery: shell out to "ip route", regex out
// the "dev" token, then enumerate that interface's addresses.
func DefaultSourceIPs(v6 bool) ([]netip.Addr, error) {
	return defaultSourceIPs(execRunner, v6)
}

func defaultSourceIPs(run runner, v6 bool) ([]netip.Addr, error) {
	args := []string{"route", "show", "default"}
	if v6 {
		args = []string{"-6", "route", "show", "default"}
	}

	out, err := run("ip", args...)
	if err != nil {
		return nil, err
	}

	iface, err := parseDefaultDevice(string(out))
	if err != nil {
		return nil, err
	}

	return interfaceAddrs(iface, v6)
}

func parseDefaultDevice(output string) (string, error) {
	for _, line := range strings.Split(output, "\n") {
		m := devPattern.FindStringSubmatch(line)
		if m != nil {
			return m[1], nil
		}
	}

	return "", ErrNoDefaultRoute
}

func interfaceAddrs(name string, v6 bool) ([]netip.Addr, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, err
	}

	addrs, err := iface.Addrs()
	if err != nil {
		return nil, err
	}

	var out []netip.Addr

	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}

		addr, ok := netip.AddrFromSlice(ipNet.IP)
		if !ok {
			continue
		}

		addr = addr.Unmap()

		if addr.Is4() == v6 {
			continue
		}

		out = append(out, addr)
	}

	if len(out) == 0 {
		return nil, ErrNoDefaultRoute
	}

	return out, nil
}
