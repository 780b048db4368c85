// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

package lpm

// DxrBloom wraps a Dxr with one Bloom filter per stride,
// skipping a level's table probe when its filter reports the
// coordinate as definitely absent. False positives cost a wasted
// indirection but never change the answer.
type DxrBloom struct {
	dxr *Dxr

	bfL1, bfL2, bfL3 *bloomFilter

	countL1, countL2, countL3 int
}

func NewDxrBloom() *DxrBloom { return &DxrBloom{dxr: NewDxr()} }

func (d *DxrBloom) Name() string { return "DIR-16-8-8+Bloom" }

func (d *DxrBloom) Build(entries []Entry) error {
	if err := d.dxr.Build(entries); err != nil {
		return err
	}

	var l1Coords, l2Coords, l3Coords []uint64

	for top := range d.dxr.l1 {
		if !d.dxr.l1[top].empty() {
			l1Coords = append(l1Coords, encodeL1(uint32(top)))
		}

		if st := d.dxr.l2[top]; st != nil {
			for mid := range st {
				if !st[mid].empty() {
					l2Coords = append(l2Coords, encodeL2(uint32(top), uint32(mid)))
				}
			}
		}

		if l3mid := d.dxr.l3[top]; l3mid != nil {
			for mid, st := range l3mid {
				if st == nil {
					continue
				}
				for low := range st {
					if !st[low].empty() {
						l3Coords = append(l3Coords, encodeL3(uint32(top), uint32(mid), uint32(low)))
					}
				}
			}
		}
	}

	d.countL1, d.countL2, d.countL3 = len(l1Coords), len(l2Coords), len(l3Coords)

	d.bfL1 = newBloomFilter(d.countL1)
	d.bfL2 = newBloomFilter(d.countL2)
	d.bfL3 = newBloomFilter(d.countL3)

	for _, c := range l1Coords {
		d.bfL1.add(c)
	}
	for _, c := range l2Coords {
		d.bfL2.add(c)
	}
	for _, c := range l3Coords {
		d.bfL3.add(c)
	}
	return nil
}

// Lookup mirrors Dxr.Lookup but tries a Bloom filter before each table
// probe, skipping directly to the next-less-specific level when the
// filter reports the coordinate as definitely absent.
func (d *DxrBloom) Lookup(ip uint32) (*Value, bool) {
	top := ip >> 16
	mid := (ip >> 8) & 0xFF
	low := ip & 0xFF

	if d.bfL3.possiblyContains(encodeL3(top, mid, low)) {
		if l3mid := d.dxr.l3[top]; l3mid != nil {
			if st := l3mid[mid]; st != nil {
				if c := st[low]; !c.empty() {
					return c.value, true
				}
			}
		}
	}
	if d.bfL2.possiblyContains(encodeL2(top, mid)) {
		if st := d.dxr.l2[top]; st != nil {
			if c := st[mid]; !c.empty() {
				return c.value, true
			}
		}
	}
	if d.bfL1.possiblyContains(encodeL1(top)) {
		if c := d.dxr.l1[top]; !c.empty() {
			return c.value, true
		}
	}
	return nil, false
}

// BloomStats reports the sizing and population metrics the results
// CSV appends for the Bloom variant.
func (d *DxrBloom) BloomStats() (kL1, kL2, kL3 int, countL1, countL2, countL3 int, mL1, mL2, mL3 uint64) {
	return d.bfL1.k, d.bfL2.k, d.bfL3.k,
		d.countL1, d.countL2, d.countL3,
		d.bfL1.m, d.bfL2.m, d.bfL3.m
}
