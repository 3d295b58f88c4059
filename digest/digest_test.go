// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package digest_test

import (
	"fmt"
	"testing"

	"github.com/canon-registry/canond/digest"
)

// printf '%s' 'hello world' | sha3sum -a 256
const helloWorldDigest = "644bcc7e564373040999aac89e7622f3ca71fba1d972fd94a31c3bfbf24e3938"

func TestDigest(t *testing.T) {
	d := digest.NewDigest([]byte("hello world"))

	if helloWorldDigest != d.String() {
		t.Errorf("digest: %s  expected: %s", d, helloWorldDigest)
	}

	s := fmt.Sprintf("%#v", d)
	if "<SHA3-256:"+helloWorldDigest+">" != s {
		t.Errorf("digest: %s  expected: <SHA3-256:%s>", s, helloWorldDigest)
	}

	if d.IsZero() {
		t.Error("non-zero digest reported as zero")
	}

	var zero digest.Digest
	if !zero.IsZero() {
		t.Error("zero digest not reported as zero")
	}
}

func TestScanFmt(t *testing.T) {

	var d digest.Digest
	n, err := fmt.Sscan(helloWorldDigest, &d)
	if nil != err {
		t.Fatalf("hex to digest error: %v", err)
	}
	if 1 != n {
		t.Fatalf("scanned %d items expected to scan 1", n)
	}

	if digest.NewDigest([]byte("hello world")) != d {
		t.Errorf("digest: %#v  expected: %s", d, helloWorldDigest)
	}
}

func TestMarshalText(t *testing.T) {

	d := digest.NewDigest([]byte("hello world"))

	text, err := d.MarshalText()
	if nil != err {
		t.Fatalf("marshal text error: %v", err)
	}
	if helloWorldDigest != string(text) {
		t.Errorf("marshalled: %s  expected: %s", text, helloWorldDigest)
	}

	var back digest.Digest
	err = back.UnmarshalText(text)
	if nil != err {
		t.Fatalf("unmarshal text error: %v", err)
	}
	if back != d {
		t.Errorf("unmarshalled: %#v  expected: %#v", back, d)
	}

	// truncated text must be rejected
	err = back.UnmarshalText(text[:10])
	if nil == err {
		t.Error("truncated text was accepted")
	}
}
