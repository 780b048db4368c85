// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

package lpm

import "testing"

// TestDxrBloomMatchesPlainDxr asserts that DXR+Bloom returns identical
// results to plain DXR for every query, since the Bloom filters only
// ever skip a probe that would have missed anyway.
func TestDxrBloomMatchesPlainDxr(t *testing.T) {
	t.Parallel()

	pool := NewKeyPool()
	k1 := testValue(t, pool, 1)
	k2 := testValue(t, pool, 2)
	k3 := testValue(t, pool, 3)

	entries := buildDescending([]Entry{
		{Net: ip4(10, 0, 0, 0), Len: 8, Value: k1},
		{Net: ip4(10, 1, 0, 0), Len: 16, Value: k2},
		{Net: ip4(10, 1, 2, 0), Len: 24, Value: k3},
	})

	plain := NewDxr()
	if err := plain.Build(entries); err != nil {
		t.Fatalf("plain Build: %v", err)
	}
	bloom := NewDxrBloom()
	if err := bloom.Build(entries); err != nil {
		t.Fatalf("bloom Build: %v", err)
	}

	probes := []uint32{
		ip4(10, 1, 2, 3),
		ip4(10, 1, 5, 6),
		ip4(10, 2, 0, 1),
		ip4(11, 0, 0, 1),
		ip4(0, 0, 0, 0),
		ip4(255, 255, 255, 255),
	}

	for _, ip := range probes {
		wantVal, wantFound := plain.Lookup(ip)
		gotVal, gotFound := bloom.Lookup(ip)
		if wantFound != gotFound || wantVal != gotVal {
			t.Errorf("Lookup(%#x): plain=(%v,%v) bloom=(%v,%v)", ip, wantVal, wantFound, gotVal, gotFound)
		}
	}
}

func TestDxrBloomStatsPopulated(t *testing.T) {
	t.Parallel()

	pool := NewKeyPool()
	k := testValue(t, pool, 1)

	entries := []Entry{
		{Net: ip4(10, 1, 2, 0), Len: 24, Value: k},
	}

	bloom := NewDxrBloom()
	if err := bloom.Build(entries); err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, kl2, _, _, countL2, _, _, mL2, _ := bloom.BloomStats()
	if countL2 != 1 {
		t.Errorf("countL2 = %d, want 1", countL2)
	}
	if kl2 < 1 {
		t.Errorf("kL2 = %d, want >= 1", kl2)
	}
	if mL2 == 0 {
		t.Error("mL2 = 0, want a sized bit array")
	}
}

func TestBloomFilterNoFalseNegatives(t *testing.T) {
	t.Parallel()

	coords := []uint64{1, 2, 3, 1000, 123456}
	bf := newBloomFilter(len(coords))
	for _, c := range coords {
		bf.add(c)
	}
	for _, c := range coords {
		if !bf.possiblyContains(c) {
			t.Errorf("possiblyContains(%d) = false after add, want true (no false negatives)", c)
		}
	}
}

func TestBloomFilterEmptyIsNoop(t *testing.T) {
	t.Parallel()

	bf := newBloomFilter(0)
	bf.add(42)
	if bf.possiblyContains(42) {
		t.Error("a zero-sized filter reported a coordinate as present")
	}
}
