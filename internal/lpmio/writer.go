// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

package lpmio

import (
	"encoding/csv"
	"fmt"
	"os"
)

// MatchWriter appends one row per queried IP to the match CSV (header
// "ip,key"). In fast mode the key column is "1" or "-1"; in check mode
// it is the matched value's 128-char hex or "-1".
type MatchWriter struct {
	f   *os.File
	w   *csv.Writer
	chk bool
}

// NewMatchWriter creates (truncating) path and writes its header.
func NewMatchWriter(path string, checkMode bool) (*MatchWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("lpmio: create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write([]string{"ip", "key"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("lpmio: writing header of %s: %w", path, err)
	}
	return &MatchWriter{f: f, w: w, chk: checkMode}, nil
}

// WriteMatch appends one row for ip. hexKey is ignored in fast mode,
// where only whether a match occurred is recorded.
func (mw *MatchWriter) WriteMatch(ip uint32, matched bool, hexKey string) error {
	ipStr := FormatIPv4(ip)

	var keyCol string
	switch {
	case !matched:
		keyCol = "-1"
	case mw.chk:
		keyCol = hexKey
	default:
		keyCol = "1"
	}
	return mw.w.Write([]string{ipStr, keyCol})
}

// Close flushes and closes the underlying file.
func (mw *MatchWriter) Close() error {
	mw.w.Flush()
	if err := mw.w.Error(); err != nil {
		mw.f.Close()
		return err
	}
	return mw.f.Close()
}

// ResultsRow is one appended row of results.csv. Bloom-only
// fields are zero for non-Bloom engines and omitted from the written
// row entirely. The header shape is set by the row that creates the
// file; a later row of the other shape is appended under it unchanged.
type ResultsRow struct {
	Algorithm        string
	PrefixFile       string
	IPFile           string
	NumPrefixes      int
	NumIPs           int
	PrefixLoadS      float64
	BuildDSS         float64
	IPLoadS          float64
	LookupS          float64
	LookupsPerS      float64
	NsPerLookup      float64
	MemPrefixArrayMB float64
	MemDSMB          float64
	MemIPArrayMB     float64
	MemTotalMB       float64

	Bloom          bool
	BuildBloomS    float64
	MemBloomMB     float64
	BFBitsPerElem  float64
	KL1, KL2, KL3  int
	CountL1        int
	CountL2        int
	CountL3        int
	MBitsL1        uint64
	MBitsL2        uint64
	MBitsL3        uint64
}

var baseResultsHeader = []string{
	"algorithm", "prefix_file", "ip_file", "num_prefixes", "num_ips",
	"prefix_load_s", "build_ds_s", "ip_load_s", "lookup_s",
	"lookups_per_s", "ns_per_lookup",
	"mem_prefix_array_mb", "mem_ds_mb", "mem_ip_array_mb", "mem_total_mb",
}

var bloomResultsHeader = append(append([]string{}, baseResultsHeader...),
	"build_bloom_s", "mem_bloom_mb", "bf_bits_per_elem",
	"k_l1", "k_l2", "k_l3",
	"count_l1", "count_l2", "count_l3",
	"m_bits_l1", "m_bits_l2", "m_bits_l3",
)

// AppendResultsRow appends row to path, writing the header first only
// if path did not already exist. That header is the Bloom-extended one
// when row.Bloom is set.
func AppendResultsRow(path string, row ResultsRow) error {
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("lpmio: open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if isNew {
		header := baseResultsHeader
		if row.Bloom {
			header = bloomResultsHeader
		}
		if err := w.Write(header); err != nil {
			return fmt.Errorf("lpmio: writing header of %s: %w", path, err)
		}
	}

	rec := []string{
		row.Algorithm,
		row.PrefixFile,
		row.IPFile,
		itoa(row.NumPrefixes),
		itoa(row.NumIPs),
		ftoa(row.PrefixLoadS),
		ftoa(row.BuildDSS),
		ftoa(row.IPLoadS),
		ftoa(row.LookupS),
		ftoa(row.LookupsPerS),
		ftoa(row.NsPerLookup),
		ftoa(row.MemPrefixArrayMB),
		ftoa(row.MemDSMB),
		ftoa(row.MemIPArrayMB),
		ftoa(row.MemTotalMB),
	}
	if row.Bloom {
		rec = append(rec,
			ftoa(row.BuildBloomS),
			ftoa(row.MemBloomMB),
			ftoa(row.BFBitsPerElem),
			itoa(row.KL1), itoa(row.KL2), itoa(row.KL3),
			itoa(row.CountL1), itoa(row.CountL2), itoa(row.CountL3),
			utoa(row.MBitsL1), utoa(row.MBitsL2), utoa(row.MBitsL3),
		)
	}

	if err := w.Write(rec); err != nil {
		return fmt.Errorf("lpmio: writing row of %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

// SimRow is one appended row of the dynamic-workload sim CSV.
type SimRow struct {
	WriteReadRatio string // "1:n"
	NumOps         int
	NumLookups     int
	NumWrites      int
	AvgLookupNs    float64
	AvgWriteNs     float64
	AvgTotalNs     float64
}

var simHeader = []string{
	"write_per_read_ratio", "num_ops", "num_lookups", "num_writes",
	"avg_lookup_ns", "avg_write_ns", "avg_total_ns",
}

// AppendSimRow appends row to path, writing the header only on first
// creation, matching AppendResultsRow's contract.
func AppendSimRow(path string, row SimRow) error {
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("lpmio: open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if isNew {
		if err := w.Write(simHeader); err != nil {
			return fmt.Errorf("lpmio: writing header of %s: %w", path, err)
		}
	}

	rec := []string{
		row.WriteReadRatio,
		itoa(row.NumOps),
		itoa(row.NumLookups),
		itoa(row.NumWrites),
		ftoa(row.AvgLookupNs),
		ftoa(row.AvgWriteNs),
		ftoa(row.AvgTotalNs),
	}
	if err := w.Write(rec); err != nil {
		return fmt.Errorf("lpmio: writing row of %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}

func itoa(v int) string    { return fmt.Sprintf("%d", v) }
func utoa(v uint64) string { return fmt.Sprintf("%d", v) }
func ftoa(v float64) string { return fmt.Sprintf("%.6f", v) }
