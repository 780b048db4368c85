// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

package lpm

import "testing"

func TestPatriciaLookup(t *testing.T) {
	t.Parallel()

	pool := NewKeyPool()
	k1 := testValue(t, pool, 1)
	k2 := testValue(t, pool, 2)
	k3 := testValue(t, pool, 3)

	trie := NewPatricia()
	if err := trie.Build([]Entry{
		{Net: ip4(10, 0, 0, 0), Len: 8, Value: k1},
		{Net: ip4(10, 1, 0, 0), Len: 16, Value: k2},
		{Net: ip4(10, 1, 2, 0), Len: 24, Value: k3},
	}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	tests := []struct {
		name string
		ip   uint32
		want *Value
	}{
		{"most specific", ip4(10, 1, 2, 3), k3},
		{"middle specific", ip4(10, 1, 5, 6), k2},
		{"least specific", ip4(10, 2, 0, 1), k1},
		{"no match", ip4(11, 0, 0, 1), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := trie.Lookup(tt.ip)
			if tt.want == nil {
				if found {
					t.Errorf("Lookup(%#x) matched, want no match", tt.ip)
				}
				return
			}
			if !found || got != tt.want {
				t.Errorf("Lookup(%#x) = (%v, %v), want (%v, true)", tt.ip, got, found, tt.want)
			}
		})
	}
}

func TestPatriciaIncomparableBranch(t *testing.T) {
	t.Parallel()

	pool := NewKeyPool()
	k1 := testValue(t, pool, 1)
	k2 := testValue(t, pool, 2)

	trie := NewPatricia()
	trie.Insert(ip4(10, 0, 0, 0), 32, k1)
	trie.Insert(ip4(192, 168, 1, 1), 32, k2)

	if got, found := trie.Lookup(ip4(10, 0, 0, 0)); !found || got != k1 {
		t.Errorf("Lookup(10.0.0.0) = (%v, %v), want (%v, true)", got, found, k1)
	}
	if got, found := trie.Lookup(ip4(192, 168, 1, 1)); !found || got != k2 {
		t.Errorf("Lookup(192.168.1.1) = (%v, %v), want (%v, true)", got, found, k2)
	}
}

// TestPatriciaDivergenceAboveSplitBit exercises the internal-node
// divergence guard: a third prefix diverges from an existing subtree
// before that subtree's split_bit, and must branch above it rather
// than incorrectly descending into one of its children.
func TestPatriciaDivergenceAboveSplitBit(t *testing.T) {
	t.Parallel()

	pool := NewKeyPool()
	k1 := testValue(t, pool, 1)
	k2 := testValue(t, pool, 2)
	k3 := testValue(t, pool, 3)

	trie := NewPatricia()
	// These two share their first 23 bits (10.0.0.0/23) and split
	// deep, at bit 23.
	trie.Insert(ip4(10, 0, 0, 0), 24, k1)
	trie.Insert(ip4(10, 0, 1, 0), 24, k2)
	// This one diverges from both at bit 0 (the very first bit:
	// 10.x has MSB 0, 138.x has MSB 1) -- far above the existing split.
	trie.Insert(ip4(138, 0, 0, 0), 8, k3)

	tests := []struct {
		ip   uint32
		want *Value
	}{
		{ip4(10, 0, 0, 5), k1},
		{ip4(10, 0, 1, 5), k2},
		{ip4(138, 5, 5, 5), k3},
	}
	for _, tt := range tests {
		if got, found := trie.Lookup(tt.ip); !found || got != tt.want {
			t.Errorf("Lookup(%#x) = (%v, %v), want (%v, true)", tt.ip, got, found, tt.want)
		}
	}
}

func TestPatriciaOverwriteExact(t *testing.T) {
	t.Parallel()

	pool := NewKeyPool()
	k1 := testValue(t, pool, 1)
	k2 := testValue(t, pool, 2)

	trie := NewPatricia()
	trie.Insert(ip4(10, 0, 0, 0), 8, k1)
	trie.Insert(ip4(10, 0, 0, 0), 8, k2)

	if got, found := trie.Lookup(ip4(10, 5, 5, 5)); !found || got != k2 {
		t.Errorf("Lookup after overwrite = (%v, %v), want (%v, true)", got, found, k2)
	}
}

func TestPatriciaCoveringRouteAfterDeeperInternalNode(t *testing.T) {
	t.Parallel()

	pool := NewKeyPool()
	k1 := testValue(t, pool, 1)
	k2 := testValue(t, pool, 2)
	k3 := testValue(t, pool, 3)
	k4 := testValue(t, pool, 4)

	trie := NewPatricia()
	// Descending-length insertion order: each covering route arrives
	// after a deeper internal node already exists for its subtree.
	trie.Insert(ip4(10, 1, 2, 0), 24, k1)
	trie.Insert(ip4(10, 1, 0, 0), 16, k2)
	trie.Insert(ip4(10, 0, 0, 0), 8, k3)
	trie.Insert(ip4(0, 0, 0, 0), 0, k4)

	tests := []struct {
		ip   uint32
		want *Value
	}{
		{ip4(10, 1, 2, 3), k1},
		{ip4(10, 1, 5, 6), k2},
		{ip4(10, 2, 0, 1), k3},
		{ip4(11, 0, 0, 1), k4},
		{ip4(8, 8, 8, 8), k4},
	}
	for _, tt := range tests {
		if got, found := trie.Lookup(tt.ip); !found || got != tt.want {
			t.Errorf("Lookup(%#x) = (%v, %v), want (%v, true)", tt.ip, got, found, tt.want)
		}
	}
}

func TestFirstDifferingBit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b uint32
		want int
	}{
		{0x00000000, 0x00000000, 31},
		{0x80000000, 0x00000000, 0},
		{0x00000001, 0x00000000, 31},
		{0xFFFFFFFF, 0x7FFFFFFF, 0},
	}
	for _, tt := range tests {
		if got := firstDifferingBit(tt.a, tt.b); got != tt.want {
			t.Errorf("firstDifferingBit(%#x,%#x) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
