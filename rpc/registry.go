// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/canon-registry/canond/digest"
	"github.com/canon-registry/canond/registry"
)

// Registry - type for the RPC
type Registry struct {
	Log      *logger.L
	Limiter  *rate.Limiter
	Registry *registry.Registry
}

// RegistryDigestArguments - query a single digest
type RegistryDigestArguments struct {
	Digest digest.Digest `json:"digest"`
}

// RegistryStatusReply - anchor status of a digest
type RegistryStatusReply struct {
	Anchored bool   `json:"anchored"`
	Sequence uint64 `json:"sequence"`
}

// IsAnchored - check whether a digest was ever anchored
func (reg *Registry) IsAnchored(arguments *RegistryDigestArguments, reply *RegistryStatusReply) error {

	if err := rateLimit(reg.Limiter); nil != err {
		return err
	}

	reply.Anchored = reg.Registry.IsAnchored(arguments.Digest)
	reply.Sequence = reg.Registry.LastAnchorBlock(arguments.Digest)
	return nil
}

// LastAnchorBlock - sequence number of the most recent anchor of a digest
func (reg *Registry) LastAnchorBlock(arguments *RegistryDigestArguments, reply *RegistryStatusReply) error {

	if err := rateLimit(reg.Limiter); nil != err {
		return err
	}

	reply.Sequence = reg.Registry.LastAnchorBlock(arguments.Digest)
	reply.Anchored = reg.Registry.IsAnchored(arguments.Digest)
	return nil
}
