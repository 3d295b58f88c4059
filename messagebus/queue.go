// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - in-process fan-out of audit events
//
// the persisted event pool is the canonical audit trail; this queue
// only feeds live subscribers (the zmq publisher), so a send never
// blocks a ledger operation - overflow is dropped and counted
package messagebus

import (
	"github.com/canon-registry/canond/counter"
)

// internal constants
const (
	queueSize = 1000
)

// Message - one queued audit event
type Message struct {
	From string
	Item interface{}
}

var (
	// for queueing data
	queue = make(chan Message, queueSize)

	// number of messages dropped through overflow
	dropped counter.Counter
)

// Send - queue an audit event
func Send(from string, item interface{}) {
	select {
	case queue <- Message{From: from, Item: item}:
	default:
		dropped.Increment()
	}
}

// Chan - channel to read from
func Chan() <-chan Message {
	return queue
}

// Dropped - number of messages lost to overflow since start
func Dropped() uint64 {
	return dropped.Uint64()
}
