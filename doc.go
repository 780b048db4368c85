// Copyright (c) 2026 The lpmbench Authors
// SPDX-License-Identifier: MIT

// Package lpm implements the data structures used to benchmark IPv4
// longest-prefix-match (LPM) forwarding.
//
// Seven engines share the same lookup contract:
//
//   - RadixTrie:     one node per bit, binary radix trie.
//   - Patricia:      a path-compressed binary trie with split-bit indices.
//   - Dir248:        a flat 2^24-cell direct-index table with on-demand
//     256-entry sub-tables for prefixes longer than /24.
//   - Dxr:           a three-level direct-index table striding at /16,
//     /24 and /32.
//   - DxrBloom:      Dxr with a Bloom filter per stride to skip absent
//     levels before a table probe.
//   - DynamicDir248: Dir248 augmented with two radix tries so that
//     deletes can recompute the correct occupant of every affected cell.
//   - DynamicRadixTrie: RadixTrie behind the DynamicEngine Insert/Delete
//     signatures.
//
// All seven are built from a FIB of (network, length, value) entries where
// value is a reference into a [KeyPool] of interned 64-byte opaque keys.
package lpm
