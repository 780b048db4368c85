// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Command patriciabench benchmarks the path-compressed Patricia trie engine.
package main

import (
	"os"

	lpm "github.com/ipforward/lpmbench"
	"github.com/ipforward/lpmbench/internal/bench"
)

func main() {
	cfg, err := bench.ParseFlags("patriciabench", os.Args[1:],
		"prefix_table.csv", "generated_ips.csv", "match_patricia.csv", "results.csv")
	if err != nil {
		os.Exit(2)
	}

	pool := lpm.NewKeyPool()
	defer pool.DestroyAll()

	runner := bench.NewRunner(cfg)
	if err := runner.RunStatic(lpm.NewPatricia(), pool); err != nil {
		runner.Log.Fatal(err)
	}
}
