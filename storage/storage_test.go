// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/canon-registry/canond/storage"
)

const testDatabase = "test-canond.leveldb"

func removeFiles() {
	os.RemoveAll(testDatabase)
}

func setup(t *testing.T) {
	removeFiles()
	err := storage.Initialise(testDatabase)
	if nil != err {
		t.Fatalf("storage initialise error: %v", err)
	}
}

func teardown(t *testing.T) {
	storage.Finalise()
	removeFiles()
}

func TestPutGetDelete(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Anchors

	key := []byte("key-one")
	value := []byte("value-one")

	if p.Has(key) {
		t.Error("key present before put")
	}

	p.Put(key, value)

	if !p.Has(key) {
		t.Error("key absent after put")
	}
	if string(p.Get(key)) != string(value) {
		t.Errorf("value: %q  expected: %q", p.Get(key), value)
	}

	p.Delete(key)

	if p.Has(key) {
		t.Error("key present after delete")
	}
	if nil != p.Get(key) {
		t.Errorf("value present after delete: %q", p.Get(key))
	}
}

func TestPutNGetN(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Nonces

	key := []byte("principal")

	if _, ok := p.GetN(key); ok {
		t.Error("uint64 present before put")
	}

	p.PutN(key, 42)

	value, ok := p.GetN(key)
	if !ok || 42 != value {
		t.Errorf("value: %d (%v)  expected: 42", value, ok)
	}
}

// pools with different prefixes must not see each other's keys
func TestPoolIsolation(t *testing.T) {
	setup(t)
	defer teardown(t)

	key := []byte("shared-key")

	storage.Pool.Anchors.Put(key, []byte("anchors"))
	storage.Pool.Tokens.Put(key, []byte("tokens"))

	if string(storage.Pool.Anchors.Get(key)) != "anchors" {
		t.Error("anchors pool value corrupted")
	}
	if string(storage.Pool.Tokens.Get(key)) != "tokens" {
		t.Error("tokens pool value corrupted")
	}

	storage.Pool.Anchors.Delete(key)

	if storage.Pool.Tokens.Has(key) == false {
		t.Error("delete crossed pool boundary")
	}
}

// page through an ordered pool with a cursor
func TestFetchCursor(t *testing.T) {
	setup(t)
	defer teardown(t)

	p := storage.Pool.Events

	for i := uint64(1); i <= 10; i += 1 {
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, i)
		p.Put(key, []byte{byte(i)})
	}

	cursor := p.NewFetchCursor()

	first, err := cursor.Fetch(4)
	if nil != err {
		t.Fatalf("fetch error: %v", err)
	}
	if 4 != len(first) {
		t.Fatalf("fetched: %d items  expected: 4", len(first))
	}
	if 1 != binary.BigEndian.Uint64(first[0].Key) {
		t.Errorf("first key: %x", first[0].Key)
	}

	second, err := cursor.Fetch(100)
	if nil != err {
		t.Fatalf("fetch error: %v", err)
	}
	if 6 != len(second) {
		t.Fatalf("fetched: %d items  expected: 6", len(second))
	}
	if 5 != binary.BigEndian.Uint64(second[0].Key) {
		t.Errorf("second page first key: %x", second[0].Key)
	}

	// items appended after exhaustion are picked up by the same cursor
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, 11)
	p.Put(key, []byte{11})

	third, err := cursor.Fetch(100)
	if nil != err {
		t.Fatalf("fetch error: %v", err)
	}
	if 1 != len(third) || 11 != binary.BigEndian.Uint64(third[0].Key) {
		t.Fatalf("late append not fetched: %v", third)
	}
}
