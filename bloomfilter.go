// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

package lpm

import (
	"math"

	"github.com/bits-and-blooms/bitset"
)

// bitsPerElement is the target Bloom filter density used to size m
// from a populated-coordinate count.
const bitsPerElement = 10.0

// bloomSeed1 and bloomSeed2 are fixed so runs are reproducible across
// implementations.
const (
	bloomSeed1 uint64 = 0x12345678abcdef01
	bloomSeed2 uint64 = 0xfedcba9876543210
)

// bloomFilter is a probabilistic set with no false negatives, backed
// by github.com/bits-and-blooms/bitset.
type bloomFilter struct {
	bits *bitset.BitSet
	m    uint64
	k    int
	n    int // populated-coordinate count the filter was sized for; 0 makes add a no-op
}

// newBloomFilter sizes a filter for an expected n populated
// coordinates. When n is zero, m=64 and k=1 and add becomes a no-op:
// the subsequent table probe will simply miss.
func newBloomFilter(n int) *bloomFilter {
	if n == 0 {
		return &bloomFilter{bits: bitset.New(64), m: 64, k: 1, n: 0}
	}

	target := uint64(math.Ceil(bitsPerElement * float64(n)))
	m := nextPowerOfTwo(maxU64(64, target))

	kf := (float64(m) / float64(n)) * math.Ln2
	k := int(math.Round(kf))
	if k < 1 {
		k = 1
	}
	if k > 16 {
		k = 16
	}

	return &bloomFilter{bits: bitset.New(uint(m)), m: m, k: k, n: n}
}

// add sets the k bits derived from coord. A no-op when the filter was
// sized for zero elements.
func (b *bloomFilter) add(coord uint64) {
	if b.n == 0 {
		return
	}
	h1 := splitMix64(coord ^ bloomSeed1)
	h2 := splitMix64(coord ^ bloomSeed2)
	for i := 0; i < b.k; i++ {
		idx := (h1 + uint64(i)*h2) % b.m
		b.bits.Set(uint(idx))
	}
}

// possiblyContains reports false only when coord is definitely
// absent; a true result may be a false positive.
func (b *bloomFilter) possiblyContains(coord uint64) bool {
	h1 := splitMix64(coord ^ bloomSeed1)
	h2 := splitMix64(coord ^ bloomSeed2)
	for i := 0; i < b.k; i++ {
		idx := (h1 + uint64(i)*h2) % b.m
		if !b.bits.Test(uint(idx)) {
			return false
		}
	}
	return true
}

// splitMix64 is the fixed 64-bit mixer requires for
// reproducibility across implementations.
func splitMix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

func nextPowerOfTwo(v uint64) uint64 {
	if v <= 1 {
		return 1
	}
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// Bloom coordinate tags keep the three strides' bit-space semantics
// disjoint even though they share no physical storage.
const (
	tagL1 uint64 = 0xB1
	tagL2 uint64 = 0xB2
	tagL3 uint64 = 0xB3
)

func encodeL1(top uint32) uint64 {
	return (tagL1 << 56) ^ (uint64(top) << 32)
}

func encodeL2(top, mid uint32) uint64 {
	return (tagL2 << 56) ^ (uint64(top) << 24) ^ (uint64(mid) << 16)
}

func encodeL3(top, mid, low uint32) uint64 {
	return (tagL3 << 56) ^ (uint64(top) << 16) ^ (uint64(mid) << 8) ^ uint64(low)
}
