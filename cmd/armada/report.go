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
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/resyncgg/armada/internal/engine"
)

// writeReport writes one CSV row per distinct IP, with that IP's open ports
// comma-joined into a single field, matching the original's
// HashMap<String, Vec<String>> grouping.
func writeReport(path string, probes []engine.Probe) error {
	byIP := make(map[string][]string)

	for _, p := range probes {
		ip := p.IP.String()
		byIP[ip] = append(byIP[ip], strconv.FormatUint(uint64(p.Port), 10))
	}

	ips := make([]string, 0, len(byIP))
	for ip := range byIP {
		ips = append(ips, ip)
	}

	sort.Strings(ips)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Remote IP", "Remote Port"}); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	for _, ip := range ips {
		if err := w.Write([]string{ip, strings.Join(byIP[ip], ",")}); err != nil {
			return fmt.Errorf("report: write row: %w", err)
		}
	}

	return w.Error()
}
