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

// Top100 lists the 100 ports this scanner's --top100 flag expands to,
// ordered roughly by how often each turns up open during general-purpose
// sweeps. It backs AddTop100.
var Top100 = []uint16{
	80, 443, 22, 21, 25, 53, 110, 143, 3389, 8080,
	23, 993, 995, 587, 465, 139, 445, 135, 111, 2049,
	3306, 5432, 6379, 27017, 9200, 1433, 1521, 5900, 5985, 5986,
	8443, 8000, 8888, 9090, 9100, 7000, 6000, 6646, 2000, 2001,
	1723, 1720, 1755, 1900, 179, 113, 119, 106, 88, 79,
	20, 19, 17, 13, 9, 7, 3, 1, 514, 513,
	515, 543, 544, 548, 554, 631, 873, 990, 1025, 1026,
	1027, 1028, 1029, 1110, 2121, 2181, 2375, 2483, 2484, 3000,
	3128, 3268, 3478, 3690, 3986, 4040, 4443, 4500, 5000, 5001,
	5060, 5061, 5631, 5666, 5800, 6443, 7070, 8008, 8081, 9000,
}

// Top1000 is the --top1000 expansion: Top100 followed by every other port in
// [1, 1024] not already present, in ascending order, capped at 1000 entries.
// This scanner ships its own curation rather than embedding a third-party
// port database.
var Top1000 = buildTop1000()

func buildTop1000() []uint16 {
	seen := make(map[uint16]bool, 1000)

	out := make([]uint16, 0, 1000)
	for _, p := range Top100 {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for p := uint16(1); p <= 1024 && len(out) < 1000; p++ {
		if seen[p] {
			continue
		}

		seen[p] = true
		out = append(out, p)
	}

	return out
}

// AddTop100 appends every Top100 port to s.
func AddTop100(s *Sequence) *Sequence {
	for _, p := range Top100 {
		s.AddPort(p)
	}

	return s
}

// AddTop1000 appends every Top1000 port to s.
func AddTop1000(s *Sequence) *Sequence {
	for _, p := range Top1000 {
		s.AddPort(p)
	}

	return s
}
