// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"sync"

	"github.com/bitmark-inc/listener"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/canon-registry/canond/anchor"
	"github.com/canon-registry/canond/authorize"
	"github.com/canon-registry/canond/fault"
	"github.com/canon-registry/canond/feeledger"
	"github.com/canon-registry/canond/receipt"
	"github.com/canon-registry/canond/registry"
	"github.com/canon-registry/canond/util"
)

// Configuration - a block of configuration data
// this is read from the configuration file
type Configuration struct {
	MaximumConnections int      `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// Services - the live components served over RPC
type Services struct {
	Engine     *anchor.Engine
	Ledger     *feeledger.Ledger
	Registry   *registry.Registry
	Token      *receipt.Token
	Authorizer *authorize.Authorizer
}

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listener *listener.MultiListener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// Initialise - start the RPC listeners
func Initialise(configuration *Configuration, version string, services *Services) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if 0 == len(configuration.Listen) {
		log.Error("missing listen addresses")
		return fault.ErrMissingParameters
	}
	if configuration.MaximumConnections < 1 {
		log.Errorf("invalid maximum connection limit: %d", configuration.MaximumConnections)
		return fault.ErrMissingParameters
	}

	if !util.EnsureFileExists(configuration.Certificate) {
		log.Errorf("certificate: %q does not exist", configuration.Certificate)
		return fault.ErrCertificateFileExists
	}
	if !util.EnsureFileExists(configuration.PrivateKey) {
		log.Errorf("private key: %q does not exist", configuration.PrivateKey)
		return fault.ErrKeyFileExists
	}

	// set up TLS
	keyPair, err := tls.LoadX509KeyPair(configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		log.Errorf("failed to load keypair: %v", err)
		return err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
	}

	fingerprint := CertificateFingerprint(keyPair.Certificate[0])
	log.Infof("SHA3-256 fingerprint: %x", fingerprint)

	limiter := listener.NewLimiter(configuration.MaximumConnections)

	argument := &serverArgument{
		Log:    log,
		Server: createServer(log, version, services),
	}

	ml, err := listener.NewMultiListener("rpc", configuration.Listen, tlsConfiguration, limiter, Callback)
	if nil != err {
		log.Errorf("invalid listen addresses: %v", err)
		return err
	}
	ml.Start(argument)
	globalData.listener = ml

	for _, address := range configuration.Listen {
		log.Infof("listen on: %q", address)
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop the RPC listeners
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	globalData.listener.Stop()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

// CertificateFingerprint - compute the fingerprint of a certificate
//
// FreeBSD: openssl x509 -outform DER -in canond-local-rpc.crt | sha3sum -a 256
func CertificateFingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
