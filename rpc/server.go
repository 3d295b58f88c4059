// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"io"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/canon-registry/canond/counter"
)

// rate limits per service
const (
	rateLimitAnchor   = 200
	rateBurstAnchor   = 100
	rateLimitLedger   = 200
	rateBurstLedger   = 100
	rateLimitRegistry = 200
	rateBurstRegistry = 100
	rateLimitNode     = 200
	rateBurstNode     = 100
	rateLimitReceipt  = 200
	rateBurstReceipt  = 100
	rateLimitEvents   = 200
	rateBurstEvents   = 100
)

// the argument passed to the callback
type serverArgument struct {
	Log    *logger.L
	Server *rpc.Server
}

var connectionCount counter.Counter

// build the RPC server with all services registered
func createServer(log *logger.L, version string, services *Services) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	server.Register(&Anchor{
		Log:        log,
		Limiter:    rate.NewLimiter(rateLimitAnchor, rateBurstAnchor),
		Engine:     services.Engine,
		Authorizer: services.Authorizer,
	})
	server.Register(&Ledger{
		Log:        log,
		Limiter:    rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		Ledger:     services.Ledger,
		Authorizer: services.Authorizer,
	})
	server.Register(&Registry{
		Log:      log,
		Limiter:  rate.NewLimiter(rateLimitRegistry, rateBurstRegistry),
		Registry: services.Registry,
	})
	server.Register(&Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Engine:  services.Engine,
		Token:   services.Token,
		version: version,
		start:   start,
	})
	server.Register(&Receipt{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitReceipt, rateBurstReceipt),
		Token:   services.Token,
	})
	server.Register(&Events{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitEvents, rateBurstEvents),
	})

	return server
}

// Callback - listener callback, serves one connection
func Callback(conn io.ReadWriteCloser, argument interface{}) {

	serverArgument := argument.(*serverArgument)

	log := serverArgument.Log
	log.Info("starting…")

	server := serverArgument.Server

	connectionCount.Increment()
	defer connectionCount.Decrement()

	codec := jsonrpc.NewServerCodec(conn)
	defer codec.Close()
	server.ServeCodec(codec)

	log.Info("finished")
}
