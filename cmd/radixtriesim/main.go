// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Command radixtriesim drives the dynamic binary radix trie through an
// interleaved mixed workload of lookups, inserts, and deletes, and
// appends one latency row to the sim CSV.
package main

import (
	"os"

	lpm "github.com/ipforward/lpmbench"
	"github.com/ipforward/lpmbench/internal/bench"
)

func main() {
	cfg, err := bench.ParseDynFlags("radixtriesim", os.Args[1:],
		"prefix_table.csv", "sim_results.csv")
	if err != nil {
		os.Exit(2)
	}

	pool := lpm.NewKeyPool()
	defer pool.DestroyAll()

	runner := bench.NewDynRunner(cfg)
	if err := runner.RunMixedWorkload(lpm.NewDynamicRadixTrie(), pool); err != nil {
		runner.Log.Fatal(err)
	}
}
