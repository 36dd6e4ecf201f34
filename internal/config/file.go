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

// Package config loads the optional TOML configuration file the CLI accepts
// via --config. Targets stands in for the positional target arguments and
// most other fields mirror a CLI flag of the same meaning; TargetFile is
// parsed but nothing in the CLI reads it. The CLI layer is responsible for
// letting an explicitly-passed flag win over a value loaded from file.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// File is the shape of the optional TOML configuration file.
type File struct {
	ListeningPort *uint16  `toml:"listening_port"`
	Ports         []string `toml:"ports"`
	Top100        bool     `toml:"top100"`
	Top1000       bool     `toml:"top1000"`
	Quiet         bool     `toml:"quiet"`
	RateLimit     *int     `toml:"rate_limit"`
	Retries       *uint8   `toml:"retries"`
	Stream        bool     `toml:"stream"`
	SourceIPs     []string `toml:"source_ip"`
	Targets       []string `toml:"targets"`
	TargetFile    string   `toml:"target_file"`
	TimeoutMS     *uint64  `toml:"timeout"`
}

// Load reads and parses path as TOML.
func Load(path string) (*File, error) {
	var f File

	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return &f, nil
}
