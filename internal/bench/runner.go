// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Package bench holds the CLI scaffolding shared by every cmd/*bench
// binary: flag parsing, phase timing, RSS sampling, and metrics-row
// assembly. Each engine binary is a thin wrapper around a Runner.
package bench

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	lpm "github.com/ipforward/lpmbench"
	"github.com/ipforward/lpmbench/internal/lpmio"
	"github.com/ipforward/lpmbench/internal/rss"
)

// Config is the parsed CLI surface common to every static-engine
// benchmark binary: input files, check-mode, and output
// file locations.
type Config struct {
	PrefixFile  string
	IPFile      string
	MatchFile   string
	ResultsFile string
	Check       bool
	Help        bool
}

// ParseFlags builds the pflag.FlagSet for the static-engine benchmark
// CLI: [-chk|--chk], -h/--help, plus optional positional prefix and IP
// file paths; the match and results files keep their defaults.
// args excludes the program name (pass os.Args[1:]).
func ParseFlags(progName string, args []string, defaultPrefixFile, defaultIPFile, defaultMatchFile, defaultResultsFile string) (Config, error) {
	fs := pflag.NewFlagSet(progName, pflag.ContinueOnError)

	var cfg Config
	fs.BoolVarP(&cfg.Check, "chk", "c", false, "enable hex-key output in the match file")
	fs.BoolVarP(&cfg.Help, "help", "h", false, "print usage and exit")

	cfg.PrefixFile = defaultPrefixFile
	cfg.IPFile = defaultIPFile
	cfg.MatchFile = defaultMatchFile
	cfg.ResultsFile = defaultResultsFile

	// pflag would read "-chk" as the shorthands -c -h -k, so the
	// single-dash long form is mapped to --chk before parsing.
	norm := make([]string, len(args))
	for i, a := range args {
		if a == "-chk" {
			a = "--chk"
		}
		norm[i] = a
	}
	if err := fs.Parse(norm); err != nil {
		return cfg, err
	}

	if cfg.Help {
		fmt.Fprintf(os.Stderr, "usage: %s [-chk|--chk] [-h|--help]\n", progName)
		fs.PrintDefaults()
		os.Exit(0)
	}

	if rest := fs.Args(); len(rest) > 0 {
		cfg.PrefixFile = rest[0]
	}
	if rest := fs.Args(); len(rest) > 1 {
		cfg.IPFile = rest[1]
	}
	return cfg, nil
}

// Runner drives one static engine through load → build → query,
// timing each phase and sampling RSS before/after.
type Runner struct {
	Log *logrus.Logger
	Cfg Config
}

// NewRunner returns a Runner logging at info level to stderr.
func NewRunner(cfg Config) *Runner {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.InfoLevel)
	return &Runner{Log: log, Cfg: cfg}
}

// phaseResult is the timing and memory delta for one benchmark phase.
type phaseResult struct {
	seconds float64
	memMB   float64
}

func (r *Runner) timePhase(name string, fn func() error) (phaseResult, error) {
	before := rss.SampleMB(r.Log)
	start := time.Now()
	err := fn()
	elapsed := time.Since(start).Seconds()
	after := rss.SampleMB(r.Log)

	r.Log.Infof("%s: %.3fs", name, elapsed)
	return phaseResult{seconds: elapsed, memMB: rss.Delta(before, after)}, err
}

// RunStatic loads prefixes, builds engine, loads IPs, queries every IP
// writing to matchFile, and appends one row to resultsFile. It
// implements the per-engine driver shape shared by cmd/radixbench,
// cmd/patriciabench, cmd/dir248bench, cmd/dxrbench, and
// cmd/dxrbloombench.
func (r *Runner) RunStatic(engine lpm.Engine, pool *lpm.KeyPool) error {
	var entries []lpm.Entry
	var ips []lpmio.IPRecord

	loadPhase, err := r.timePhase("prefix_load", func() error {
		var err error
		var res lpmio.LoadResult
		entries, res, err = lpmio.LoadPrefixes(r.Cfg.PrefixFile, pool, r.Log)
		if err == nil {
			r.Log.Infof("loaded %d prefixes (%d skipped)", res.Accepted, res.Skipped)
		}
		return err
	})
	if err != nil {
		r.Log.Fatalf("cannot open prefix file %s: %v", r.Cfg.PrefixFile, err)
	}

	buildPhase, err := r.timePhase("build_ds", func() error {
		return engine.Build(entries)
	})
	if err != nil {
		return fmt.Errorf("bench: building %s: %w", engine.Name(), err)
	}

	ipLoadPhase, err := r.timePhase("ip_load", func() error {
		var err error
		var res lpmio.LoadResult
		ips, res, err = lpmio.LoadIPs(r.Cfg.IPFile, r.Log)
		if err == nil {
			r.Log.Infof("loaded %d ips (%d skipped)", res.Accepted, res.Skipped)
		}
		return err
	})
	if err != nil {
		r.Log.Fatalf("cannot open ip file %s: %v", r.Cfg.IPFile, err)
	}

	mw, err := lpmio.NewMatchWriter(r.Cfg.MatchFile, r.Cfg.Check)
	if err != nil {
		r.Log.Errorf("cannot open match file %s: %v", r.Cfg.MatchFile, err)
		mw = nil
	}

	var lookupSeconds float64
	lookupPhase, err := r.timePhase("lookup", func() error {
		start := time.Now()
		for _, rec := range ips {
			value, matched := engine.Lookup(rec.IP)
			if mw != nil {
				hexKey := ""
				if matched {
					hexKey = value.Hex()
				}
				if werr := mw.WriteMatch(rec.IP, matched, hexKey); werr != nil {
					r.Log.Errorf("bench: writing match row: %v", werr)
				}
			}
		}
		lookupSeconds = time.Since(start).Seconds()
		return nil
	})
	if err != nil {
		return err
	}
	if mw != nil {
		if err := mw.Close(); err != nil {
			r.Log.Errorf("bench: closing match file: %v", err)
		}
	}

	numIPs := len(ips)
	lookupsPerS := 0.0
	nsPerLookup := 0.0
	if numIPs > 0 && lookupSeconds > 0 {
		lookupsPerS = float64(numIPs) / lookupSeconds
		nsPerLookup = (lookupSeconds * 1e9) / float64(numIPs)
	}

	row := lpmio.ResultsRow{
		Algorithm:        engine.Name(),
		PrefixFile:       r.Cfg.PrefixFile,
		IPFile:           r.Cfg.IPFile,
		NumPrefixes:      len(entries),
		NumIPs:           numIPs,
		PrefixLoadS:      loadPhase.seconds,
		BuildDSS:         buildPhase.seconds,
		IPLoadS:          ipLoadPhase.seconds,
		LookupS:          lookupPhase.seconds,
		LookupsPerS:      lookupsPerS,
		NsPerLookup:      nsPerLookup,
		MemPrefixArrayMB: loadPhase.memMB,
		MemDSMB:          buildPhase.memMB,
		MemIPArrayMB:     ipLoadPhase.memMB,
		MemTotalMB:       loadPhase.memMB + buildPhase.memMB + ipLoadPhase.memMB,
	}

	if bloomEngine, ok := engine.(interface {
		BloomStats() (kL1, kL2, kL3 int, countL1, countL2, countL3 int, mL1, mL2, mL3 uint64)
	}); ok {
		kL1, kL2, kL3, cL1, cL2, cL3, mL1, mL2, mL3 := bloomEngine.BloomStats()
		row.Bloom = true
		row.BuildBloomS = buildPhase.seconds
		row.MemBloomMB = buildPhase.memMB
		row.BFBitsPerElem = 10.0
		row.KL1, row.KL2, row.KL3 = kL1, kL2, kL3
		row.CountL1, row.CountL2, row.CountL3 = cL1, cL2, cL3
		row.MBitsL1, row.MBitsL2, row.MBitsL3 = mL1, mL2, mL3
	}

	if err := lpmio.AppendResultsRow(r.Cfg.ResultsFile, row); err != nil {
		r.Log.Errorf("cannot append results row to %s: %v", r.Cfg.ResultsFile, err)
	}
	return nil
}
