// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

package lpm

import "testing"

// testValue returns a deterministic, distinct *Value for tag, interned
// into pool so every call with the same tag returns the same pointer.
func testValue(t *testing.T, pool *KeyPool, tag byte) *Value {
	t.Helper()
	raw := make([]byte, valueLen)
	raw[0] = tag
	v, err := pool.InternBytes(raw)
	if err != nil {
		t.Fatalf("InternBytes: %v", err)
	}
	return v
}

// ip4 packs four octets into a host-byte-order uint32.
func ip4(a, b, c, d byte) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d)
}
