// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Command ipgen synthesizes generated_ips.csv. Each emitted address is
// drawn either uniformly at random or, when --from-prefixes is given, by picking a
// random row of an existing prefix table and an address within it, so
// the used_prefix column can be populated meaningfully for downstream
// analysis even though the core engines never read it.
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/ipforward/lpmbench/internal/genutil"
	"github.com/ipforward/lpmbench/internal/lpmio"
)

func main() {
	fs := pflag.NewFlagSet("ipgen", pflag.ContinueOnError)
	help := fs.BoolP("help", "h", false, "print usage and exit")
	count := fs.IntP("count", "n", 100000, "number of IPs to generate")
	out := fs.StringP("out", "o", "generated_ips.csv", "output CSV path")
	fromPrefixes := fs.String("from-prefixes", "", "if set, draw addresses from within this prefix table's rows")
	seed1 := fs.Uint64("seed1", 7, "PRNG seed (first word)")
	seed2 := fs.Uint64("seed2", 7, "PRNG seed (second word)")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *help {
		fmt.Fprintln(os.Stderr, "usage: ipgen [-n count] [-o out.csv] [--from-prefixes file] [-h|--help]")
		fs.PrintDefaults()
		os.Exit(0)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	prng := genutil.NewRand(*seed1, *seed2)

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("cannot create %s: %v", *out, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"ip", "used_prefix"}); err != nil {
		log.Fatalf("writing header: %v", err)
	}

	if *fromPrefixes != "" {
		rows, err := loadPrefixStrings(*fromPrefixes)
		if err != nil {
			log.Fatalf("cannot open %s: %v", *fromPrefixes, err)
		}
		if len(rows) == 0 {
			log.Fatalf("%s contains no usable prefixes", *fromPrefixes)
		}
		for i := 0; i < *count; i++ {
			pfx := rows[prng.IntN(len(rows))]
			ip := withinPrefix(prng, pfx.net, pfx.length)
			writeRow(w, log, ip, pfx.raw)
		}
	} else {
		for i := 0; i < *count; i++ {
			ip := genutil.RandomIP(prng)
			writeRow(w, log, ip, "")
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("flushing %s: %v", *out, err)
	}
	log.Infof("wrote %d ips to %s", *count, *out)
}

func writeRow(w *csv.Writer, log *logrus.Logger, ip uint32, used string) {
	if err := w.Write([]string{lpmio.FormatIPv4(ip), used}); err != nil {
		log.Errorf("writing row: %v", err)
	}
}

type prefixRow struct {
	net    uint32
	length uint8
	raw    string
}

func loadPrefixStrings(path string) ([]prefixRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	if _, err := r.Read(); err != nil { // header
		return nil, err
	}

	var out []prefixRow
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		if len(row) < 1 {
			continue
		}
		for i := 0; i < len(row[0]); i++ {
			if row[0][i] == '/' {
				ip, ok := lpmio.ParseIPv4(row[0][:i])
				if !ok {
					break
				}
				var n int
				if _, err := fmt.Sscanf(row[0][i+1:], "%d", &n); err != nil || n < 0 || n > 32 {
					break
				}
				out = append(out, prefixRow{net: ip, length: uint8(n), raw: row[0]})
				break
			}
		}
	}
	return out, nil
}

// withinPrefix returns a uniformly random address inside net/length.
func withinPrefix(prng *rand.Rand, net uint32, length uint8) uint32 {
	if length >= 32 {
		return net
	}
	hostBits := 32 - length
	host := uint32(prng.UintN(uint64(1) << hostBits))
	return net | host
}
