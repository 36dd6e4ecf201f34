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

import "net/netip"

// addrCycle round-robins over a fixed list of source addresses. One address
// is drawn per send-phase iteration of the main loop, not per probe within
// the batch: every probe sent in the same batch for a given address family
// shares the same source address.
type addrCycle struct {
	addrs []netip.Addr
	next  int
}

// pick returns the next address in rotation, or ok=false if the list is
// empty (meaning this family has no usable source address).
func (c *addrCycle) pick() (netip.Addr, bool) {
	if len(c.addrs) == 0 {
		return netip.Addr{}, false
	}

	a := c.addrs[c.next%len(c.addrs)]
	c.next++

	return a, true
}
