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

// Command armada is a high performance TCP SYN port scanner.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/netip"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/resyncgg/armada/internal/armadalog"
	"github.com/resyncgg/armada/internal/engine"
	"github.com/resyncgg/armada/internal/netroute"
	"github.com/resyncgg/armada/internal/ports"
)

const (
	defaultRateLimit = 10_000
	defaultRetries   = 2
	defaultTimeoutMS = 1_000
	listeningPortLow = 50_000
	listeningPortHi  = 60_000
)

var (
	flagPorts         []string
	flagQuiet         bool
	flagRateLimit     int
	flagListeningPort uint16
	flagRetries       uint8
	flagTimeoutMS     uint64
	flagSourceIPs     []string
	flagTop100        bool
	flagTop1000       bool
	flagStream        bool
	flagSanic         bool
	flagConfigPath    string
	flagReportPath    string
	flagLogLevel      string
)

var rootCmd = &cobra.Command{
	Use:     "armada [flags] TARGET...",
	Short:   "High performance TCP SYN port scanner",
	Version: "0.1.0",
	RunE:    runArmada,
}

func init() {
	flags := rootCmd.Flags()

	flags.StringSliceVarP(&flagPorts, "ports", "p", nil, "Ports to scan, e.g. 80,443,8000-8100")
	flags.BoolVarP(&flagQuiet, "quiet", "q", false, "Disable progress reporting during the scan")
	flags.IntVar(&flagRateLimit, "rate-limit", defaultRateLimit, "Maximum packets per second across both address families; 0 means unlimited")
	flags.Uint16Var(&flagListeningPort, "listening-port", 0, "Port to listen on; a random port in 50000-60000 is chosen if unset")
	flags.Uint8Var(&flagRetries, "retries", defaultRetries, "Additional attempts made to verify a port is open")
	flags.Uint64Var(&flagTimeoutMS, "timeout", defaultTimeoutMS, "Milliseconds to wait before a sent packet is considered timed out")
	flags.StringSliceVar(&flagSourceIPs, "source-ip", nil, "Source IP address (v4 or v6) to send probes from; may be repeated")
	flags.BoolVar(&flagTop100, "top100", false, "Scan the top 100 most common ports")
	flags.BoolVar(&flagTop1000, "top1000", false, "Scan the top 1,000 most common ports")
	flags.BoolVarP(&flagStream, "stream", "s", false, "Stream results to stdout as they arrive; requires quiet mode or a non-tty stdout")
	flags.BoolVar(&flagSanic, "sanic", false, "Disables the rate limit and, unless retries was set explicitly, disables retries too")
	flags.StringVar(&flagConfigPath, "config", "", "Path to a TOML configuration file; explicit flags always win over its values")
	flags.StringVar(&flagReportPath, "report", "", "Write a CSV report of open ports to this path")
	flags.StringVar(&flagLogLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")

	_ = flags.MarkHidden("sanic")
}

func runArmada(cmd *cobra.Command, args []string) error {
	if err := armadalog.Init(armadalog.Config{Level: flagLogLevel}); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}

	log := armadalog.Component("cli")

	if flagConfigPath != "" {
		configTargets, err := applyConfigFile(cmd, flagConfigPath)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			args = configTargets
		}
	}

	if len(args) == 0 {
		return fmt.Errorf("armada: at least one target IP or CIDR block is required")
	}

	if flagTop100 && flagTop1000 {
		return fmt.Errorf("armada: --top100 and --top1000 are mutually exclusive")
	}

	if (flagTop100 || flagTop1000) && len(flagPorts) > 0 {
		return fmt.Errorf("armada: --ports conflicts with --top100/--top1000")
	}

	if len(flagPorts) == 0 && !flagTop100 && !flagTop1000 {
		return fmt.Errorf("armada: one of --ports, --top100, or --top1000 is required")
	}

	if flagSanic {
		flagRateLimit = 0

		if !cmd.Flags().Changed("retries") {
			flagRetries = 0
		}
	}

	if flagStream && !flagQuiet && term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("armada: --stream requires --quiet or a non-tty stdout")
	}

	hostSeq, err := parseTargets(args)
	if err != nil {
		return err
	}

	portSeq, err := resolvePortSequence()
	if err != nil {
		return err
	}

	sourceV4, sourceV6, err := resolveSourceIPs(flagSourceIPs)
	if err != nil {
		return err
	}

	listeningPort := flagListeningPort
	if listeningPort == 0 {
		listeningPort = uint16(listeningPortLow + rand.IntN(listeningPortHi-listeningPortLow))
	}

	eng, err := engine.New(listeningPort, log)
	if err != nil {
		return fmt.Errorf("armada: start scan engine: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var rateLimit *int
	if flagRateLimit > 0 {
		rl := flagRateLimit
		rateLimit = &rl
	}

	req := engine.ScanRequest{
		Hosts:     hostSeq,
		Ports:     portSeq,
		Retries:   flagRetries,
		Timeout:   time.Duration(flagTimeoutMS) * time.Millisecond,
		RateLimit: rateLimit,
		SourceV4:  sourceV4,
		SourceV6:  sourceV6,
	}

	var results []engine.Probe

	if flagQuiet {
		results, err = runQuiet(ctx, eng, req, flagStream)
	} else {
		results, err = runProgress(ctx, eng, req, flagStream)
	}

	eng.Close()
	eng.Wait()

	if err != nil {
		return fmt.Errorf("armada: scan aborted: %w", err)
	}

	if !flagStream {
		for _, p := range results {
			fmt.Printf("%s:%d\n", p.IP, p.Port)
		}
	}

	if flagReportPath != "" {
		if err := writeReport(flagReportPath, results); err != nil {
			return fmt.Errorf("armada: write report: %w", err)
		}
	}

	return nil
}

func resolvePortSequence() (*ports.Sequence, error) {
	switch {
	case flagTop100:
		return ports.AddTop100(ports.New()), nil
	case flagTop1000:
		return ports.AddTop1000(ports.New()), nil
	default:
		return parsePortSpecs(flagPorts)
	}
}

// resolveSourceIPs parses any explicitly supplied --source-ip values, or
// falls back to the default route's interface addresses, exactly as the
// original's split_and_enforce_source_ips does.
func resolveSourceIPs(explicit []string) (v4, v6 []netip.Addr, err error) {
	if len(explicit) > 0 {
		addrs, err := parseSourceIPs(explicit)
		if err != nil {
			return nil, nil, err
		}

		v4, v6 = splitSourceIPs(addrs)

		return v4, v6, nil
	}

	v4, v4Err := netroute.DefaultSourceIPs(false)
	v6, v6Err := netroute.DefaultSourceIPs(true)

	if v4Err != nil && v6Err != nil {
		return nil, nil, fmt.Errorf("armada: unable to identify source ip addresses automatically, supply --source-ip: %w", v4Err)
	}

	return v4, v6, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
