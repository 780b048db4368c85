// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

package lpm

import (
	"encoding/hex"
	"fmt"
)

// valueLen is the fixed size of an opaque FIB value, in bytes.
const valueLen = 64

// Value is an interned, immutable 64-byte opaque key. Identity is by
// content: two calls to [KeyPool.Intern] with the same bytes return the
// same *Value. Engines hold non-owning references; validity is tied to
// the KeyPool's lifetime.
type Value [valueLen]byte

// KeyPool deduplicates 64-byte values by their hex representation and
// owns their storage. It is shared across every engine built from the
// same FIB in one benchmark run.
//
// KeyPool is not safe for concurrent use; the benchmark driver is
// single-threaded.
type KeyPool struct {
	byHex map[string]*Value

	totalInterned int
	totalRequests int
}

// NewKeyPool returns an empty pool.
func NewKeyPool() *KeyPool {
	return &KeyPool{byHex: make(map[string]*Value)}
}

// Intern returns the shared *Value for the given 128-character hex
// string, creating and storing it on first sight. It returns an error
// (and no entry is created) if hexStr does not decode to exactly 64
// bytes.
func (p *KeyPool) Intern(hexStr string) (*Value, error) {
	p.totalRequests++

	if v, ok := p.byHex[hexStr]; ok {
		return v, nil
	}

	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("lpm: malformed hex key: %w", err)
	}
	if len(raw) != valueLen {
		return nil, fmt.Errorf("lpm: key is %d bytes, want %d", len(raw), valueLen)
	}

	// Key by the canonical lowercase hex so that inputs differing only
	// in hex letter case share one *Value.
	key := hex.EncodeToString(raw)
	if v, ok := p.byHex[key]; ok {
		return v, nil
	}

	v := new(Value)
	copy(v[:], raw)
	p.byHex[key] = v
	p.totalInterned++

	return v, nil
}

// InternBytes is like Intern but takes the raw bytes directly, used by
// synthetic-data generators that never round-trip through hex.
func (p *KeyPool) InternBytes(raw []byte) (*Value, error) {
	if len(raw) != valueLen {
		return nil, fmt.Errorf("lpm: key is %d bytes, want %d", len(raw), valueLen)
	}
	return p.Intern(hex.EncodeToString(raw))
}

// Stats reports the number of distinct values interned and the total
// number of Intern calls observed. InternBytes is counted through its
// call to Intern, so an InternBytes call rejected for its length is not
// counted.
func (p *KeyPool) Stats() (distinct, requests int) {
	return p.totalInterned, p.totalRequests
}

// Len returns the number of distinct values currently held.
func (p *KeyPool) Len() int {
	return len(p.byHex)
}

// DestroyAll releases every interned value. Must be called only after
// every engine holding references into this pool has been torn down.
func (p *KeyPool) DestroyAll() {
	p.byHex = make(map[string]*Value)
}

// Hex renders a value as its 128-character lowercase hex string, used
// by the match-file writer in check mode.
func (v *Value) Hex() string {
	if v == nil {
		return ""
	}
	return hex.EncodeToString(v[:])
}
