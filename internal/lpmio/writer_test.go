// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

package lpmio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMatchWriterFastMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "match.csv")
	mw, err := NewMatchWriter(path, false)
	if err != nil {
		t.Fatalf("NewMatchWriter: %v", err)
	}

	if err := mw.WriteMatch(ip4(10, 0, 0, 1), true, "deadbeef"); err != nil {
		t.Fatalf("WriteMatch: %v", err)
	}
	if err := mw.WriteMatch(ip4(10, 0, 0, 2), false, ""); err != nil {
		t.Fatalf("WriteMatch: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "ip,key\n10.0.0.1,1\n10.0.0.2,-1\n"
	if string(got) != want {
		t.Errorf("match file = %q, want %q", got, want)
	}
}

func TestMatchWriterCheckMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "match.csv")
	mw, err := NewMatchWriter(path, true)
	if err != nil {
		t.Fatalf("NewMatchWriter: %v", err)
	}

	hexKey := strings.Repeat("ab", 64)
	if err := mw.WriteMatch(ip4(10, 0, 0, 1), true, hexKey); err != nil {
		t.Fatalf("WriteMatch: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "ip,key\n10.0.0.1," + hexKey + "\n"
	if string(got) != want {
		t.Errorf("match file = %q, want %q", got, want)
	}
}

func TestAppendResultsRowWritesHeaderOnlyOnce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.csv")

	row := ResultsRow{Algorithm: "DIR-24-8", NumPrefixes: 3, NumIPs: 10}
	if err := AppendResultsRow(path, row); err != nil {
		t.Fatalf("AppendResultsRow (1st): %v", err)
	}
	if err := AppendResultsRow(path, row); err != nil {
		t.Fatalf("AppendResultsRow (2nd): %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (1 header + 2 rows): %q", len(lines), content)
	}
	if !strings.HasPrefix(lines[0], "algorithm,") {
		t.Errorf("header = %q, want to start with \"algorithm,\"", lines[0])
	}
}

func TestAppendResultsRowBloomHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.csv")
	row := ResultsRow{Algorithm: "DIR-16-8-8+Bloom", Bloom: true, KL1: 3, KL2: 4, KL3: 5}
	if err := AppendResultsRow(path, row); err != nil {
		t.Fatalf("AppendResultsRow: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(content), "bf_bits_per_elem") {
		t.Errorf("results file missing Bloom-extended header: %q", content)
	}
}

func TestAppendSimRow(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sim.csv")
	row := SimRow{WriteReadRatio: "1:10", NumOps: 110, NumLookups: 100, NumWrites: 10}
	if err := AppendSimRow(path, row); err != nil {
		t.Fatalf("AppendSimRow: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(content), "write_per_read_ratio") {
		t.Errorf("sim file missing header: %q", content)
	}
	if !strings.Contains(string(content), "1:10") {
		t.Errorf("sim file missing row: %q", content)
	}
}
