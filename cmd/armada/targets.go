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
	"fmt"
	"net/netip"
	"regexp"
	"strconv"

	"github.com/resyncgg/armada/internal/hosts"
	"github.com/resyncgg/armada/internal/ports"
)

var portSpecPattern = regexp.MustCompile(`^(\d+)(?:-(\d+))?$`)

// parseTargets folds each target string into a HostSequence, accepting
// either a bare IP address or a CIDR block.
func parseTargets(values []string) (*hosts.Sequence, error) {
	seq := hosts.New()

	for _, v := range values {
		if addr, err := netip.ParseAddr(v); err == nil {
			seq.AddIP(addr)
			continue
		}

		prefix, err := netip.ParsePrefix(v)
		if err != nil {
			return nil, fmt.Errorf("targets: %q is neither an IP address nor a CIDR block", v)
		}

		seq.AddCIDR(prefix)
	}

	return seq, nil
}

// parsePortSpecs folds each "N" or "N-M" token into a PortSequence.
func parsePortSpecs(values []string) (*ports.Sequence, error) {
	seq := ports.New()

	for _, v := range values {
		m := portSpecPattern.FindStringSubmatch(v)
		if m == nil {
			return nil, fmt.Errorf("ports: %q is not a valid port or port range", v)
		}

		start, err := strconv.ParseUint(m[1], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("ports: %q: %w", v, err)
		}

		if m[2] == "" {
			seq.AddPort(uint16(start))
			continue
		}

		end, err := strconv.ParseUint(m[2], 10, 16)
		if err != nil {
			return nil, fmt.Errorf("ports: %q: %w", v, err)
		}

		seq.AddRange(uint16(start), uint16(end))
	}

	return seq, nil
}

func parseSourceIPs(values []string) ([]netip.Addr, error) {
	out := make([]netip.Addr, 0, len(values))

	for _, v := range values {
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("source-ip: %q: %w", v, err)
		}

		out = append(out, addr)
	}

	return out, nil
}

// splitSourceIPs partitions addrs by family, the Go analogue of the
// original's split_and_enforce_source_ips.
func splitSourceIPs(addrs []netip.Addr) (v4, v6 []netip.Addr) {
	for _, a := range addrs {
		a = a.Unmap()
		if a.Is4() {
			v4 = append(v4, a)
		} else {
			v6 = append(v6, a)
		}
	}

	return v4, v6
}
