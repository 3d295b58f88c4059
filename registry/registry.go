// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the permanent record of anchored content digests
//
// each anchored digest maps to the sequence number of its most recent
// anchor; anchoring a digest again simply moves it forward
package registry

import (
	"github.com/bitmark-inc/logger"

	"github.com/canon-registry/canond/digest"
	"github.com/canon-registry/canond/storage"
)

// Registry - anchored digest lookup
type Registry struct {
	log  *logger.L
	pool *storage.PoolHandle
}

// New - create a registry over the anchors pool
func New(pool *storage.PoolHandle) *Registry {
	return &Registry{
		log:  logger.New("registry"),
		pool: pool,
	}
}

// Record - mark a digest as anchored at a sequence number
//
// overwrites any earlier anchor of the same digest
func (r *Registry) Record(d digest.Digest, sequence uint64) {
	r.pool.PutN(d[:], sequence)
	r.log.Debugf("record: %v  sequence: %d", d, sequence)
}

// IsAnchored - true if the digest has ever been anchored
func (r *Registry) IsAnchored(d digest.Digest) bool {
	return r.pool.Has(d[:])
}

// LastAnchorBlock - sequence number of the most recent anchor
//
// zero for a digest that was never anchored
func (r *Registry) LastAnchorBlock(d digest.Digest) uint64 {
	sequence, _ := r.pool.GetN(d[:])
	return sequence
}
