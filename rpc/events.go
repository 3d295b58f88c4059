// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/canon-registry/canond/audit"
	"github.com/canon-registry/canond/storage"
)

// Events - type for the RPC
type Events struct {
	Log     *logger.L
	Limiter *rate.Limiter
}

// maximum number of events that can be returned on one fetch
const maximumEventCount = 100

// EventsFetchArguments - ranged fetch over the persisted event log
type EventsFetchArguments struct {
	Start uint64 `json:"start"`
	Count int    `json:"count"`
}

// EventsFetchReply - a slice of the event log
type EventsFetchReply struct {
	Events []audit.Envelope `json:"events"`
	Next   uint64           `json:"next"`
}

// Fetch - return up to Count events starting at sequence Start
//
// Next is the sequence to pass as the following Start, so a client
// can tail the log with repeated calls
func (events *Events) Fetch(arguments *EventsFetchArguments, reply *EventsFetchReply) error {

	if err := rateLimitN(events.Limiter, arguments.Count, maximumEventCount); nil != err {
		return err
	}

	start := make([]byte, 8)
	binary.BigEndian.PutUint64(start, arguments.Start)

	cursor := storage.Pool.Events.NewFetchCursor().Seek(start)

	elements, err := cursor.Fetch(arguments.Count)
	if nil != err {
		return err
	}

	next := arguments.Start
	result := make([]audit.Envelope, 0, len(elements))
	for _, element := range elements {
		envelope, err := audit.Unpack(element.Value)
		if nil != err {
			events.Log.Errorf("corrupt event at: %x  error: %v", element.Key, err)
			return err
		}
		result = append(result, *envelope)
		next = binary.BigEndian.Uint64(element.Key) + 1
	}

	reply.Events = result
	reply.Next = next
	return nil
}
