// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Package lpmio implements the CSV file formats at the benchmark
// harness's boundary: the prefix FIB, the generated IP
// list, the match output, the results metrics, and the dynamic-sim
// metrics. None of this is part of the LPM core — it is the external
// collaborator the core's engines are built and queried from.
package lpmio

import (
	"encoding/csv"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	lpm "github.com/ipforward/lpmbench"
)

// LoadResult reports how many rows a loader accepted and skipped, for
// a single "skipped N of M rows" summary line instead of one log line
// per malformed row.
type LoadResult struct {
	Accepted int
	Skipped  int
}

// LoadPrefixes parses prefix_table.csv: header "prefix,key", rows
// "a.b.c.d/L,HHHH...". Rows with L > 32, a missing '/', or a key that
// is not exactly 128 hex characters are dropped. The file is
// expected sorted by L descending; LoadPrefixes neither sorts nor
// checks that order and returns rows in file order.
func LoadPrefixes(path string, pool *lpm.KeyPool, log *logrus.Logger) ([]lpm.Entry, LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadResult{}, fmt.Errorf("lpmio: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil { // header
		if err == io.EOF {
			return nil, LoadResult{}, nil
		}
		return nil, LoadResult{}, fmt.Errorf("lpmio: reading header of %s: %w", path, err)
	}

	var entries []lpm.Entry
	var res LoadResult

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}
		if len(row) < 2 {
			res.Skipped++
			continue
		}

		net, length, ok := parsePrefix(row[0])
		if !ok {
			res.Skipped++
			continue
		}

		value, err := pool.Intern(strings.TrimSpace(row[1]))
		if err != nil {
			res.Skipped++
			continue
		}

		entries = append(entries, lpm.Entry{Net: net, Len: length, Value: value})
		res.Accepted++
	}

	if res.Skipped > 0 && log != nil {
		log.Warnf("lpmio: skipped %d of %d rows in %s", res.Skipped, res.Skipped+res.Accepted, path)
	}
	return entries, res, nil
}

// parsePrefix parses "a.b.c.d/L" into a host-byte-order uint32 and a
// length in [0,32], normalizing the network to its mask.
func parsePrefix(s string) (net32 uint32, length uint8, ok bool) {
	slash := strings.IndexByte(s, '/')
	if slash < 0 {
		return 0, 0, false
	}

	ipPart, lenPart := s[:slash], s[slash+1:]

	lenVal, err := strconv.Atoi(lenPart)
	if err != nil || lenVal < 0 || lenVal > 32 {
		return 0, 0, false
	}

	ip, ok := ParseIPv4(ipPart)
	if !ok {
		return 0, 0, false
	}

	length = uint8(lenVal)
	net32 = ip & maskFromLen(length)
	return net32, length, true
}

func maskFromLen(length uint8) uint32 {
	if length == 0 {
		return 0
	}
	return ^uint32(0) << (32 - length)
}

// ParseIPv4 parses a dotted-quad into a host-byte-order uint32.
func ParseIPv4(s string) (uint32, bool) {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return 0, false
	}
	v4 := ip.To4()
	if v4 == nil {
		return 0, false
	}
	return uint32(v4[0])<<24 | uint32(v4[1])<<16 | uint32(v4[2])<<8 | uint32(v4[3]), true
}

// FormatIPv4 renders a host-byte-order uint32 as dotted-quad.
func FormatIPv4(ip uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", ip>>24&0xFF, ip>>16&0xFF, ip>>8&0xFF, ip&0xFF)
}

// IPRecord is one row of generated_ips.csv; UsedPrefix is carried
// through but never inspected by the core.
type IPRecord struct {
	IP         uint32
	UsedPrefix string
}

// LoadIPs parses generated_ips.csv: header "ip,used_prefix".
func LoadIPs(path string, log *logrus.Logger) ([]IPRecord, LoadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadResult{}, fmt.Errorf("lpmio: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil { // header
		if err == io.EOF {
			return nil, LoadResult{}, nil
		}
		return nil, LoadResult{}, fmt.Errorf("lpmio: reading header of %s: %w", path, err)
	}

	var out []IPRecord
	var res LoadResult

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}
		if len(row) < 1 {
			res.Skipped++
			continue
		}

		ip, ok := ParseIPv4(row[0])
		if !ok {
			res.Skipped++
			continue
		}

		used := ""
		if len(row) > 1 {
			used = row[1]
		}
		out = append(out, IPRecord{IP: ip, UsedPrefix: used})
		res.Accepted++
	}

	if res.Skipped > 0 && log != nil {
		log.Warnf("lpmio: skipped %d of %d rows in %s", res.Skipped, res.Skipped+res.Accepted, path)
	}
	return out, res, nil
}
