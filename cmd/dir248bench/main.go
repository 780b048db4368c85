// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Command dir248bench benchmarks the static DIR-24-8 direct-index engine.
package main

import (
	"os"

	lpm "github.com/ipforward/lpmbench"
	"github.com/ipforward/lpmbench/internal/bench"
)

func main() {
	cfg, err := bench.ParseFlags("dir248bench", os.Args[1:],
		"prefix_table.csv", "generated_ips.csv", "match_dir248.csv", "results.csv")
	if err != nil {
		os.Exit(2)
	}

	pool := lpm.NewKeyPool()
	defer pool.DestroyAll()

	runner := bench.NewRunner(cfg)
	if err := runner.RunStatic(lpm.NewDir248(), pool); err != nil {
		runner.Log.Fatal(err)
	}
}
