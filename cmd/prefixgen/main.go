// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Command prefixgen synthesizes prefix_table.csv. It honors a
// --levels distribution weighted toward /24, /16, /8 (matching typical
// FIB shape) and always emits rows sorted by descending length, so
// the output satisfies the static-build ordering contract.
package main

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/ipforward/lpmbench/internal/genutil"
	"github.com/ipforward/lpmbench/internal/lpmio"
)

func main() {
	fs := pflag.NewFlagSet("prefixgen", pflag.ContinueOnError)
	help := fs.BoolP("help", "h", false, "print usage and exit")
	count := fs.IntP("count", "n", 10000, "number of distinct prefixes to generate")
	out := fs.StringP("out", "o", "prefix_table.csv", "output CSV path")
	realistic := fs.Bool("levels", true, "bias lengths toward typical FIB shape (/24,/16,/8) instead of uniform")
	seed1 := fs.Uint64("seed1", 42, "PRNG seed (first word)")
	seed2 := fs.Uint64("seed2", 42, "PRNG seed (second word)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *help {
		fmt.Fprintln(os.Stderr, "usage: prefixgen [-n count] [-o out.csv] [--levels] [-h|--help]")
		fs.PrintDefaults()
		os.Exit(0)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	prng := genutil.NewRand(*seed1, *seed2)

	var levels []genutil.LevelWeights
	if *realistic {
		levels = genutil.DefaultLevels
	}

	pairs := genutil.DistinctPrefixes(prng, *count, levels)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("cannot create %s: %v", *out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"prefix", "key"}); err != nil {
		log.Fatalf("writing header: %v", err)
	}

	for _, p := range pairs {
		net, length := p[0], uint8(p[1])
		key := genutil.RandomKeyBytes(prng, 64)
		row := []string{
			fmt.Sprintf("%s/%d", lpmio.FormatIPv4(net), length),
			fmt.Sprintf("%x", key),
		}
		if err := w.Write(row); err != nil {
			log.Errorf("writing row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("flushing %s: %v", *out, err)
	}

	log.Infof("wrote %d prefixes to %s", len(pairs), *out)
}
