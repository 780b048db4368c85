// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Command radixops replays a deterministic, file-driven sequence of
// insert/delete/lookup operations against the dynamic DIR-24-8 engine,
// reporting per-op-type timing. It is the file-driven counterpart to
// cmd/dir248sim's randomized workload.
//
// Ops file format: header "op,net_len,key_hex". op is one of
// "insert", "delete", "lookup". For insert/delete, net_len is
// "a.b.c.d/L" and key_hex (insert only) is 128 hex characters. For
// lookup, net_len is a bare "a.b.c.d" address and key_hex is ignored.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	lpm "github.com/ipforward/lpmbench"
	"github.com/ipforward/lpmbench/internal/lpmio"
)

type opRow struct {
	op     string
	net    uint32
	length uint8
	key    string
}

func loadOps(path string) ([]opRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil { // header
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	var out []opRow
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(row) < 2 {
			continue
		}

		op := strings.ToLower(strings.TrimSpace(row[0]))
		addrField := strings.TrimSpace(row[1])
		key := ""
		if len(row) > 2 {
			key = strings.TrimSpace(row[2])
		}

		var net uint32
		var length uint8

		if op == "lookup" {
			ip, ok := lpmio.ParseIPv4(addrField)
			if !ok {
				continue
			}
			net = ip
			length = 32
		} else {
			slash := strings.IndexByte(addrField, '/')
			if slash < 0 {
				continue
			}
			ip, ok := lpmio.ParseIPv4(addrField[:slash])
			if !ok {
				continue
			}
			var n int
			if _, err := fmt.Sscanf(addrField[slash+1:], "%d", &n); err != nil || n < 0 || n > 32 {
				continue
			}
			net, length = ip, uint8(n)
		}

		out = append(out, opRow{op: op, net: net, length: length, key: key})
	}
	return out, nil
}

func main() {
	fs := pflag.NewFlagSet("radixops", pflag.ContinueOnError)
	help := fs.BoolP("help", "h", false, "print usage and exit")
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *help {
		fmt.Fprintln(os.Stderr, "usage: radixops [-h|--help] <ops_file> [sim_results.csv]")
		os.Exit(0)
	}

	rest := fs.Args()
	opsFile := "ops.csv"
	resultsFile := "sim_results.csv"
	if len(rest) > 0 {
		opsFile = rest[0]
	}
	if len(rest) > 1 {
		resultsFile = rest[1]
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	ops, err := loadOps(opsFile)
	if err != nil {
		log.Fatalf("cannot open ops file %s: %v", opsFile, err)
	}

	pool := lpm.NewKeyPool()
	defer pool.DestroyAll()

	engine := lpm.NewDynamicDir248()

	var numLookups, numWrites int
	var lookupNs, writeNs int64

	for _, o := range ops {
		switch o.op {
		case "insert":
			value, err := pool.Intern(o.key)
			if err != nil {
				log.Warnf("radixops: skipping malformed insert key: %v", err)
				continue
			}
			start := time.Now()
			engine.Insert(o.net, o.length, value)
			writeNs += time.Since(start).Nanoseconds()
			numWrites++

		case "delete":
			start := time.Now()
			engine.Delete(o.net, o.length)
			writeNs += time.Since(start).Nanoseconds()
			numWrites++

		case "lookup":
			start := time.Now()
			engine.Lookup(o.net)
			lookupNs += time.Since(start).Nanoseconds()
			numLookups++

		default:
			log.Warnf("radixops: unknown op %q, skipping", o.op)
		}
	}

	avgLookupNs, avgWriteNs, avgTotalNs := 0.0, 0.0, 0.0
	if numLookups > 0 {
		avgLookupNs = float64(lookupNs) / float64(numLookups)
	}
	if numWrites > 0 {
		avgWriteNs = float64(writeNs) / float64(numWrites)
	}
	if total := numLookups + numWrites; total > 0 {
		avgTotalNs = float64(lookupNs+writeNs) / float64(total)
	}

	ratio := "n/a"
	if numWrites > 0 {
		ratio = fmt.Sprintf("1:%d", numLookups/numWrites)
	}

	row := lpmio.SimRow{
		WriteReadRatio: ratio,
		NumOps:         numLookups + numWrites,
		NumLookups:     numLookups,
		NumWrites:      numWrites,
		AvgLookupNs:    avgLookupNs,
		AvgWriteNs:     avgWriteNs,
		AvgTotalNs:     avgTotalNs,
	}
	if err := lpmio.AppendSimRow(resultsFile, row); err != nil {
		log.Errorf("cannot append sim row to %s: %v", resultsFile, err)
	}
}
