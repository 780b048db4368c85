// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

package lpm

// mainTableSize is 2^24, one cell per /24 network.
const mainTableSize = 1 << 24

// subTableSize is 2^8, one cell per address within a /24.
const subTableSize = 1 << 8

// dirCell is a direct-index table slot. An empty cell has value==nil;
// plen is only meaningful when value is non-nil (it is never used as
// an emptiness sentinel, since /0 is a legal prefix length — see
// DESIGN.md for why this departs from a literal plen==0 sentinel).
type dirCell struct {
	value *Value
	plen  uint8
}

func (c dirCell) empty() bool { return c.value == nil }

// subTable is the on-demand 256-entry table covering one /24 when a
// prefix longer than /24 falls under it.
type subTable [subTableSize]dirCell

// Dir248 is a static two-stride direct-index table: a flat
// 2^24-cell main table for prefixes of length <= 24, plus on-demand
// 256-entry sub-tables for lengths 25..32.
type Dir248 struct {
	main []dirCell
	sub  []*subTable
}

func NewDir248() *Dir248 { return &Dir248{} }

func (d *Dir248) Name() string { return "DIR-24-8" }

// Build requires entries sorted by descending length; it
// uses "write-if-empty" rather than "longer wins" because that
// ordering makes the two rules equivalent and write-if-empty is
// cheaper. Passing unsorted entries produces an incorrect table.
func (d *Dir248) Build(entries []Entry) error {
	d.main = make([]dirCell, mainTableSize)
	d.sub = make([]*subTable, mainTableSize)

	for _, e := range entries {
		net := normalize(e.Net, e.Len)
		length := e.Len

		if length <= 24 {
			start := net >> 8
			fill := uint32(1) << (24 - length)
			for i := uint32(0); i < fill; i++ {
				idx := start + i
				if d.main[idx].empty() {
					d.main[idx] = dirCell{value: e.Value, plen: length}
				}
			}
			continue
		}

		count := uint32(1) << (32 - length)
		for off := uint32(0); off < count; off++ {
			ipFull := net + off
			mainIdx := ipFull >> 8
			subIdx := uint8(ipFull & 0xFF)

			if d.sub[mainIdx] == nil {
				d.sub[mainIdx] = &subTable{}
			}
			if d.sub[mainIdx][subIdx].empty() {
				d.sub[mainIdx][subIdx] = dirCell{value: e.Value, plen: length}
			}
		}
	}
	return nil
}

// Lookup probes the sub-table first (it only exists and is only
// populated where a longer-than-/24 prefix shadows the /24 cell),
// falling back to the main table.
func (d *Dir248) Lookup(ip uint32) (*Value, bool) {
	mi := ip >> 8
	si := uint8(ip & 0xFF)

	if st := d.sub[mi]; st != nil {
		if c := st[si]; !c.empty() {
			return c.value, true
		}
	}
	if c := d.main[mi]; !c.empty() {
		return c.value, true
	}
	return nil, false
}
