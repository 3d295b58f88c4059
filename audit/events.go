// SPDX-License-Identifier: ISC
// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package audit - the append-only audit event log
//
// events are the canonical external record; pool entries, nonces and
// balances are summary state derived from them.  every successful
// mutating operation appends exactly one event, re-anchoring an
// already known digest included
package audit

import (
	"encoding/binary"
	"encoding/json"

	"github.com/bitmark-inc/logger"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/digest"
	"github.com/canon-registry/canond/messagebus"
	"github.com/canon-registry/canond/storage"
)

// event kinds as placed on the wire
const (
	KindAnchored  = "anchored"
	KindMinted    = "minted"
	KindBurned    = "burned"
	KindWithdrawn = "withdrawn"
	KindSwept     = "swept"
)

// AnchoredEvent - one digest set recorded into the ledger
type AnchoredEvent struct {
	Sequence          uint64           `json:"sequence,string"`
	WarrantDigest     digest.Digest    `json:"warrantDigest"`
	AttestationDigest digest.Digest    `json:"attestationDigest"`
	SubjectTag        digest.Digest    `json:"subjectTag"`
	ControllerDidHash digest.Digest    `json:"controllerDidHash"`
	Principal         *account.Account `json:"principal"`
	Executor          *account.Account `json:"executor,omitempty"`
	Assurance         uint8            `json:"assurance"`
	Fee               uint64           `json:"fee,string"`
	Timestamp         uint64           `json:"timestamp,string"`
}

// MintedEvent - a receipt token came into existence
type MintedEvent struct {
	Sequence    uint64           `json:"sequence,string"`
	TokenId     uint64           `json:"tokenId,string"`
	ContentHash digest.Digest    `json:"contentHash"`
	Owner       *account.Account `json:"owner"`
	Minter      *account.Account `json:"minter"`
	Timestamp   uint64           `json:"timestamp,string"`
}

// BurnedEvent - a receipt token was destroyed
type BurnedEvent struct {
	Sequence    uint64        `json:"sequence,string"`
	TokenId     uint64        `json:"tokenId,string"`
	ContentHash digest.Digest `json:"contentHash"`
	Timestamp   uint64        `json:"timestamp,string"`
}

// WithdrawnEvent - a pull payment completed
type WithdrawnEvent struct {
	Sequence  uint64           `json:"sequence,string"`
	Principal *account.Account `json:"principal"`
	Amount    uint64           `json:"amount,string"`
	Timestamp uint64           `json:"timestamp,string"`
}

// SweptEvent - an emergency sweep of undistributed funds
type SweptEvent struct {
	Sequence  uint64           `json:"sequence,string"`
	Admin     *account.Account `json:"admin"`
	Amount    uint64           `json:"amount,string"`
	Timestamp uint64           `json:"timestamp,string"`
}

// Envelope - kind-tagged wrapper, the persisted and published form
type Envelope struct {
	Kind  string          `json:"kind"`
	Event json.RawMessage `json:"event"`
}

// Unpack - recover the envelope from stored bytes
func Unpack(buffer []byte) (*Envelope, error) {
	envelope := &Envelope{}
	err := json.Unmarshal(buffer, envelope)
	if nil != err {
		return nil, err
	}
	return envelope, nil
}

// Append - persist an event at a sequence number and queue it for
// live subscribers
//
// the pool write happens first: the durable log must never lag what
// subscribers have seen
func Append(from string, sequence uint64, kind string, event interface{}) {
	body, err := json.Marshal(event)
	logger.PanicIfError("audit.Append marshal", err)

	packed, err := json.Marshal(Envelope{Kind: kind, Event: body})
	logger.PanicIfError("audit.Append envelope", err)

	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, sequence)
	storage.Pool.Events.Put(key, packed)

	messagebus.Send(from, &Envelope{Kind: kind, Event: body})
}
