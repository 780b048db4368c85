// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Command dxrbench benchmarks the static DIR-16-8-8 direct-index engine.
package main

import (
	"os"

	lpm "github.com/ipforward/lpmbench"
	"github.com/ipforward/lpmbench/internal/bench"
)

func main() {
	cfg, err := bench.ParseFlags("dxrbench", os.Args[1:],
		"prefix_table.csv", "generated_ips.csv", "match_dxr.csv", "results.csv")
	if err != nil {
		os.Exit(2)
	}

	pool := lpm.NewKeyPool()
	defer pool.DestroyAll()

	runner := bench.NewRunner(cfg)
	if err := runner.RunStatic(lpm.NewDxr(), pool); err != nil {
		runner.Log.Fatal(err)
	}
}
