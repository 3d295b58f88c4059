// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

// set by the Makefile: -ldflags "-X main.version=…"
var version = "zero" // do not change this value
