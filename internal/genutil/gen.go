// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Package genutil synthesizes random IPv4 prefixes and addresses for
// cmd/prefixgen, cmd/ipgen, and the dynamic workload simulators.
package genutil

import (
	"math/rand/v2"
	"sort"
)

// LevelWeights biases generated prefix lengths toward a realistic FIB
// shape: mostly /24, some /16, a few /8, matching what real routing
// tables look like far more than a uniform draw over [0,32] would.
type LevelWeights struct {
	Len    uint8
	Weight float64
}

// DefaultLevels mirrors a typical Internet FIB's length distribution.
var DefaultLevels = []LevelWeights{
	{Len: 8, Weight: 0.02},
	{Len: 16, Weight: 0.15},
	{Len: 20, Weight: 0.13},
	{Len: 24, Weight: 0.65},
	{Len: 32, Weight: 0.05},
}

// NewRand returns a PCG-seeded PRNG, for reproducible benchmark runs
// across machines.
func NewRand(seed1, seed2 uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed1, seed2))
}

// RandomIP returns a uniformly random host-byte-order IPv4 address.
func RandomIP(prng *rand.Rand) uint32 {
	return uint32(prng.Uint64() & 0xFFFFFFFF)
}

// RandomLength draws a prefix length from levels, falling back to a
// uniform [0,32] draw if levels is empty.
func RandomLength(prng *rand.Rand, levels []LevelWeights) uint8 {
	if len(levels) == 0 {
		return uint8(prng.IntN(33))
	}

	var total float64
	for _, lv := range levels {
		total += lv.Weight
	}

	r := prng.Float64() * total
	for _, lv := range levels {
		if r < lv.Weight {
			return lv.Len
		}
		r -= lv.Weight
	}
	return levels[len(levels)-1].Len
}

// RandomPrefix returns a network/length pair with net already masked
// to length, biased per levels.
func RandomPrefix(prng *rand.Rand, levels []LevelWeights) (net uint32, length uint8) {
	length = RandomLength(prng, levels)
	ip := RandomIP(prng)
	if length == 0 {
		return 0, 0
	}
	maskBits := ^uint32(0) << (32 - length)
	return ip & maskBits, length
}

// DistinctPrefixes generates n distinct (net, length) pairs biased by
// levels, then sorts them by descending length so the output honors
// the static-build ordering contract.
func DistinctPrefixes(prng *rand.Rand, n int, levels []LevelWeights) [][2]uint32 {
	type key struct {
		net uint32
		len uint8
	}
	seen := make(map[key]struct{}, n)
	out := make([]key, 0, n)

	for len(out) < n {
		net, length := RandomPrefix(prng, levels)
		k := key{net: net, len: length}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].len > out[j].len })

	pairs := make([][2]uint32, len(out))
	for i, k := range out {
		pairs[i] = [2]uint32{k.net, uint32(k.len)}
	}
	return pairs
}

// RandomKeyBytes fills a 64-byte opaque value with random bytes, used
// when synthesizing a prefix table with no pre-existing key pool.
func RandomKeyBytes(prng *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(prng.UintN(256))
	}
	return b
}
