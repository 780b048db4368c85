// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

package bench

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	lpm "github.com/ipforward/lpmbench"
	"github.com/ipforward/lpmbench/internal/genutil"
	"github.com/ipforward/lpmbench/internal/lpmio"
)

// DynConfig is the CLI surface for the dynamic-workload simulators:
// n lookups per write, and an optional total op count.
type DynConfig struct {
	PrefixFile      string
	ResultsFile     string
	LookupsPerWrite int
	NumOps          int
	Help            bool
}

const defaultNumOps = 100_000

// ParseDynFlags parses the positional <n> [num_ops] surface the
// dynamic simulators take, alongside -h/--help.
func ParseDynFlags(progName string, args []string, defaultPrefixFile, defaultResultsFile string) (DynConfig, error) {
	fs := pflag.NewFlagSet(progName, pflag.ContinueOnError)

	cfg := DynConfig{
		PrefixFile:      defaultPrefixFile,
		ResultsFile:     defaultResultsFile,
		LookupsPerWrite: 10,
		NumOps:          defaultNumOps,
	}
	fs.BoolVarP(&cfg.Help, "help", "h", false, "print usage and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Help {
		fmt.Fprintf(os.Stderr, "usage: %s [-h|--help] <n> [num_ops]\n", progName)
		fs.PrintDefaults()
		os.Exit(0)
	}

	rest := fs.Args()
	if len(rest) > 0 {
		n, err := parsePositiveInt(rest[0])
		if err != nil {
			return cfg, fmt.Errorf("bench: invalid <n>: %w", err)
		}
		cfg.LookupsPerWrite = n
	}
	if len(rest) > 1 {
		n, err := parsePositiveInt(rest[1])
		if err != nil {
			return cfg, fmt.Errorf("bench: invalid num_ops: %w", err)
		}
		cfg.NumOps = n
	}
	return cfg, nil
}

func parsePositiveInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%q is not a positive integer", s)
	}
	return n, nil
}

// DynRunner drives a DynamicEngine through an interleaved mixed
// workload of lookups, inserts, and deletes, timing each op kind
// separately.
type DynRunner struct {
	Log *logrus.Logger
	Cfg DynConfig
}

func NewDynRunner(cfg DynConfig) *DynRunner {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
	return &DynRunner{Log: log, Cfg: cfg}
}

// RunMixedWorkload loads the initial FIB into engine, then runs
// NumOps operations: every (LookupsPerWrite+1)th op is a write
// (alternating insert/delete of a freshly generated prefix), the rest
// are lookups of random addresses. It appends one row to the sim CSV.
func (r *DynRunner) RunMixedWorkload(engine lpm.DynamicEngine, pool *lpm.KeyPool) error {
	entries, res, err := lpmio.LoadPrefixes(r.Cfg.PrefixFile, pool, r.Log)
	if err != nil {
		r.Log.Fatalf("cannot open prefix file %s: %v", r.Cfg.PrefixFile, err)
	}
	r.Log.Infof("loaded %d prefixes (%d skipped)", res.Accepted, res.Skipped)

	if err := engine.Build(entries); err != nil {
		return fmt.Errorf("bench: building %s: %w", engine.Name(), err)
	}

	prng := genutil.NewRand(42, 42)

	var numLookups, numWrites int
	var lookupNsTotal, writeNsTotal int64

	var pendingInsert bool
	var lastNet uint32
	var lastLen uint8

	period := r.Cfg.LookupsPerWrite + 1

	for i := 0; i < r.Cfg.NumOps; i++ {
		if period > 0 && i%period == period-1 {
			start := time.Now()
			if pendingInsert {
				engine.Delete(lastNet, lastLen)
				pendingInsert = false
			} else {
				net, length := genutil.RandomPrefix(prng, genutil.DefaultLevels)
				key, _ := pool.InternBytes(genutil.RandomKeyBytes(prng, 64))
				engine.Insert(net, length, key)
				lastNet, lastLen = net, length
				pendingInsert = true
			}
			writeNsTotal += time.Since(start).Nanoseconds()
			numWrites++
			continue
		}

		ip := genutil.RandomIP(prng)
		start := time.Now()
		engine.Lookup(ip)
		lookupNsTotal += time.Since(start).Nanoseconds()
		numLookups++
	}

	avgLookupNs := 0.0
	if numLookups > 0 {
		avgLookupNs = float64(lookupNsTotal) / float64(numLookups)
	}
	avgWriteNs := 0.0
	if numWrites > 0 {
		avgWriteNs = float64(writeNsTotal) / float64(numWrites)
	}
	totalOps := numLookups + numWrites
	avgTotalNs := 0.0
	if totalOps > 0 {
		avgTotalNs = float64(lookupNsTotal+writeNsTotal) / float64(totalOps)
	}

	row := lpmio.SimRow{
		WriteReadRatio: fmt.Sprintf("1:%d", r.Cfg.LookupsPerWrite),
		NumOps:         totalOps,
		NumLookups:     numLookups,
		NumWrites:      numWrites,
		AvgLookupNs:    avgLookupNs,
		AvgWriteNs:     avgWriteNs,
		AvgTotalNs:     avgTotalNs,
	}
	if err := lpmio.AppendSimRow(r.Cfg.ResultsFile, row); err != nil {
		r.Log.Errorf("cannot append sim row to %s: %v", r.Cfg.ResultsFile, err)
	}
	return nil
}
