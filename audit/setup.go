// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package audit

import (
	"sync"

	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/storage"
)

// key of the durable sequence counter
var sequenceKey = []byte("event.sequence")

var globalData struct {
	sync.Mutex
	sequence    uint64
	initialised bool
}

// Initialise - restore the event sequence from storage
//
// must be called after storage.Initialise
func Initialise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	value, _ := storage.Pool.Counters.GetN(sequenceKey)
	globalData.sequence = value
	globalData.initialised = true
	return nil
}

// Finalise - stop allocating sequence numbers
func Finalise() {
	globalData.Lock()
	defer globalData.Unlock()
	globalData.initialised = false
}

// NextSequence - allocate the next event sequence number
//
// the allocation is durable before it is returned so a restart can
// never reissue a sequence number
func NextSequence() uint64 {
	globalData.Lock()
	defer globalData.Unlock()

	globalData.sequence += 1
	storage.Pool.Counters.PutN(sequenceKey, globalData.sequence)
	return globalData.sequence
}
