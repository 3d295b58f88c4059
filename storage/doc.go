// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// one LevelDB database split into prefix-scoped pools:
//
//	Anchors    'A'  digest → big endian uint64 anchor sequence
//	Nonces     'N'  principal bytes → big endian uint64 nonce
//	Balances   'F'  principal bytes → big endian uint64 pending balance
//	Tokens     'T'  big endian uint64 token id → packed receipt record
//	TokenIndex 'X'  content hash → big endian uint64 token id
//	Events     'E'  big endian uint64 sequence → packed audit event
//	Counters   'C'  name → big endian uint64 durable totals
//
// every write goes through an expiring in-memory cache so hot reads
// avoid touching the database
package storage
