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
	"github.com/spf13/cobra"

	"github.com/resyncgg/armada/internal/config"
)

// applyConfigFile loads path and fills in any flag the caller did not pass
// explicitly on the command line. An explicitly-passed flag always wins,
// mirroring the original's TOML-becomes-synthetic-argv precedence. It
// returns the file's target list, used by the caller only when no targets
// were given positionally.
func applyConfigFile(cmd *cobra.Command, path string) ([]string, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed

	if len(f.Ports) > 0 && !changed("ports") {
		flagPorts = f.Ports
	}

	if f.Top100 && !changed("top100") {
		flagTop100 = true
	}

	if f.Top1000 && !changed("top1000") {
		flagTop1000 = true
	}

	if f.Quiet && !changed("quiet") {
		flagQuiet = true
	}

	if f.RateLimit != nil && !changed("rate-limit") {
		flagRateLimit = *f.RateLimit
	}

	if f.ListeningPort != nil && !changed("listening-port") {
		flagListeningPort = *f.ListeningPort
	}

	if f.Retries != nil && !changed("retries") {
		flagRetries = *f.Retries
	}

	if f.TimeoutMS != nil && !changed("timeout") {
		flagTimeoutMS = *f.TimeoutMS
	}

	if f.Stream && !changed("stream") {
		flagStream = true
	}

	if len(f.SourceIPs) > 0 && !changed("source-ip") {
		flagSourceIPs = f.SourceIPs
	}

	return f.Targets, nil
}
