// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - this is to setup and handle all of the JSON RPC calls
//
// the service runs over TLS: clients verify the server by its
// certificate fingerprint; per service rate limits protect the daemon
// from flooding
package rpc
