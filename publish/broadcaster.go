// Copyright (c) 2024-2026 Canon Registry Developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package publish

import (
	"encoding/json"

	"github.com/bitmark-inc/logger"
	zmq "github.com/pebbe/zmq4"

	"github.com/canon-registry/canond/audit"
	"github.com/canon-registry/canond/messagebus"
	"github.com/canon-registry/canond/util"
)

const (
	broadcasterZapDomain = "broadcaster"
)

type broadcaster struct {
	log    *logger.L
	socket *zmq.Socket
}

// bind the PUB socket to all broadcast addresses
func (brdc *broadcaster) initialise(privateKey []byte, publicKey []byte, broadcast []string) error {

	log := logger.New("broadcaster")
	brdc.log = log

	log.Info("initialising…")

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		return err
	}
	brdc.socket = socket

	// this allows any client to subscribe
	zmq.AuthAllow(broadcasterZapDomain, "127.0.0.1/8")
	zmq.AuthCurveAdd(broadcasterZapDomain, zmq.CURVE_ALLOW_ANY)

	socket.SetCurveServer(1)
	socket.SetCurveSecretkey(string(privateKey))

	socket.SetZapDomain(broadcasterZapDomain)
	socket.SetIdentity(string(publicKey)) // just use public key for identity

	for i, address := range broadcast {
		bindTo, err := util.CanonicalIPandPort("tcp://", address)
		if nil != err {
			log.Errorf("broadcast[%d]=%q  error: %v", i, address, err)
			socket.Close()
			return err
		}

		err = socket.Bind(bindTo)
		if nil != err {
			log.Errorf("broadcast[%d]=%q  bind error: %v", i, address, err)
			socket.Close()
			return err
		}
		log.Infof("broadcast on: %q", address)
	}
	return nil
}

// forward audit events until shutdown
func (brdc *broadcaster) Run(args interface{}, shutdown <-chan struct{}) {

	log := brdc.log

	log.Info("starting…")

	queue := messagebus.Chan()

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case message := <-queue:
			brdc.process(&message)
		}
	}
	brdc.socket.Close()
}

// send one event as a two frame message: kind then JSON body
func (brdc *broadcaster) process(message *messagebus.Message) {

	envelope, ok := message.Item.(*audit.Envelope)
	if !ok {
		brdc.log.Errorf("unexpected item from: %q: %v", message.From, message.Item)
		return
	}

	body, err := json.Marshal(envelope)
	if nil != err {
		brdc.log.Errorf("marshal error: %v", err)
		return
	}

	brdc.log.Debugf("broadcast: %q from: %q", envelope.Kind, message.From)

	_, err = brdc.socket.SendMessageDontwait(envelope.Kind, body)
	if nil != err {
		brdc.log.Errorf("send error: %v", err)
	}
}
