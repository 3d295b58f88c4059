// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/canon-registry/canond/account"
	"github.com/canon-registry/canond/anchor"
	"github.com/canon-registry/canond/audit"
	"github.com/canon-registry/canond/authorize"
	"github.com/canon-registry/canond/configuration"
	"github.com/canon-registry/canond/feeledger"
	"github.com/canon-registry/canond/mode"
	"github.com/canon-registry/canond/nonce"
	"github.com/canon-registry/canond/publish"
	"github.com/canon-registry/canond/receipt"
	"github.com/canon-registry/canond/registry"
	"github.com/canon-registry/canond/rpc"
	"github.com/canon-registry/canond/storage"
	"github.com/canon-registry/canond/zmqutil"
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := configuration.GetConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// general info
	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)

	// connection info
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Publishing", theConfiguration.Publishing)

	// start the data storage
	log.Info("initialise storage")
	err = storage.Initialise(theConfiguration.Database.Name)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer storage.Finalise()

	// the durable event sequence
	log.Info("initialise audit")
	err = audit.Initialise()
	if nil != err {
		log.Criticalf("audit initialise error: %s", err)
		exitwithstatus.Message("audit initialise error: %s", err)
	}
	defer audit.Finalise()

	// decode the configured accounts
	foundation := decodeAccount(log, "treasury.foundation", theConfiguration.Treasury.Foundation)
	implementer := decodeAccount(log, "treasury.implementer", theConfiguration.Treasury.Implementer)
	anchorers := decodeAccounts(log, "access.anchorers", theConfiguration.Access.Anchorers)
	admins := decodeAccounts(log, "access.admins", theConfiguration.Access.Admins)

	// assemble the engine
	nonces := nonce.New(storage.Pool.Nonces)
	authorizer := authorize.New(nonces, anchorers, admins)
	ledger := feeledger.New(
		storage.Pool.Balances,
		foundation,
		implementer,
		feeledger.NewBookTransferor(storage.Pool.Balances),
	)
	reg := registry.New(storage.Pool.Anchors)
	engine := anchor.New(reg, authorizer, ledger, theConfiguration.BaseFee)
	token := receipt.New(storage.Pool.Tokens, storage.Pool.TokenIndex, authorizer)

	// initialise encryption
	err = zmqutil.StartAuthentication()
	if nil != err {
		log.Criticalf("zmq.AuthStart: error: %s", err)
		exitwithstatus.Message("zmq.AuthStart: error: %s", err)
	}

	// start up the event publishing background processes
	err = publish.Initialise(&theConfiguration.Publishing)
	if nil != err {
		log.Criticalf("publish initialise error: %s", err)
		exitwithstatus.Message("publish initialise error: %s", err)
	}
	defer publish.Finalise()

	// start up the rpc listeners
	err = rpc.Initialise(&theConfiguration.ClientRPC, version, &rpc.Services{
		Engine:     engine,
		Ledger:     ledger,
		Registry:   reg,
		Token:      token,
		Authorizer: authorizer,
	})
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	// ready to serve
	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}

// decode one base58 account or abort
func decodeAccount(log *logger.L, name string, accountBase58 string) *account.Account {
	if "" == accountBase58 {
		log.Criticalf("missing account: %s", name)
		exitwithstatus.Message("missing account: %s", name)
	}
	acc, err := account.AccountFromBase58(accountBase58)
	if nil != err {
		log.Criticalf("account: %s: %q  error: %s", name, accountBase58, err)
		exitwithstatus.Message("account: %s: %q  error: %s", name, accountBase58, err)
	}
	return acc
}

// decode a list of base58 accounts or abort
func decodeAccounts(log *logger.L, name string, accountsBase58 []string) []*account.Account {
	accounts := make([]*account.Account, len(accountsBase58))
	for i, accountBase58 := range accountsBase58 {
		accounts[i] = decodeAccount(log, name, accountBase58)
	}
	return accounts
}
