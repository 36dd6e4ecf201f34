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

package engine

import (
	"net/netip"

	"github.com/resyncgg/armada/internal/hosts"
	"github.com/resyncgg/armada/internal/ports"
)

// cartesian lazily enumerates hosts × ports, hosts outermost: every port is
// visited for the current host before the host sequence advances. It never
// materializes the full product.
type cartesian struct {
	hosts *hosts.Sequence
	ports *ports.Sequence

	curHost  netip.Addr
	hostSet  bool
	done     bool
}

func newCartesian(h *hosts.Sequence, p *ports.Sequence) *cartesian {
	return &cartesian{hosts: h, ports: p}
}

// next returns the next Probe in host-major order, or ok=false once every
// host has exhausted every port.
func (c *cartesian) next() (Probe, bool) {
	if c.done {
		return Probe{}, false
	}

	for {
		if !c.hostSet {
			host, ok := c.hosts.Next()
			if !ok {
				c.done = true
				return Probe{}, false
			}

			c.curHost = host
			c.hostSet = true
			c.ports.Reset()
		}

		port, ok := c.ports.Next()
		if !ok {
			c.hostSet = false
			continue
		}

		return Probe{IP: c.curHost, Port: port}, true
	}
}
