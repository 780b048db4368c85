// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Package rss samples the current process's resident set size, used by
// internal/bench to report mem_*_mb columns in the results CSV.
// gopsutil provides a portable way to do this, with a Go-runtime
// fallback for platforms it cannot sample.
package rss

import (
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
)

// SampleBytes returns the current process's RSS in bytes. If gopsutil
// cannot sample the platform, it falls back to runtime.MemStats.Sys,
// which is not a true RSS but tracks allocation growth well enough for
// the benchmark's comparative mem_*_mb columns.
func SampleBytes(log *logrus.Logger) uint64 {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if info, err := proc.MemoryInfo(); err == nil && info != nil {
			return info.RSS
		}
	}

	if log != nil {
		log.Warn("rss: gopsutil sample unavailable, falling back to runtime.MemStats.Sys")
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Sys
}

// SampleMB is SampleBytes expressed in megabytes, the unit every
// mem_*_mb results column uses.
func SampleMB(log *logrus.Logger) float64 {
	return float64(SampleBytes(log)) / (1024 * 1024)
}

// Delta reports (after - before) in megabytes, clamped to zero: RSS can
// dip between a before/after pair when the runtime reclaims memory
// concurrently with a benchmark phase, and a negative mem_*_mb column
// would be meaningless for a build/load phase's footprint.
func Delta(beforeMB, afterMB float64) float64 {
	d := afterMB - beforeMB
	if d < 0 {
		return 0
	}
	return d
}
