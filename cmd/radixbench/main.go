// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Command radixbench benchmarks the binary radix trie engine.
package main

import (
	"os"

	lpm "github.com/ipforward/lpmbench"
	"github.com/ipforward/lpmbench/internal/bench"
)

func main() {
	cfg, err := bench.ParseFlags("radixbench", os.Args[1:],
		"prefix_table.csv", "generated_ips.csv", "match_radix.csv", "results.csv")
	if err != nil {
		os.Exit(2)
	}

	pool := lpm.NewKeyPool()
	defer pool.DestroyAll()

	runner := bench.NewRunner(cfg)
	if err := runner.RunStatic(lpm.NewRadixTrie(), pool); err != nil {
		runner.Log.Fatal(err)
	}
}
