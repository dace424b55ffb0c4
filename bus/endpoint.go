// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bus

import (
	"fmt"

	"github.com/nspike/nspike/message"
	"github.com/nspike/nspike/uid"
)

// Endpoint is a per-agent handle onto a MessageBus, holding no state of its
// own beyond a reference to the shared bus: subscriptions, pending queues,
// and inboxes all live on the bus so that multiple endpoints — potentially
// across threads — can share routing state under the bus's single mutex.
type Endpoint struct {
	bus *MessageBus
}

// NewEndpoint returns an endpoint bound to bus.
func NewEndpoint(bus *MessageBus) *Endpoint {
	return &Endpoint{bus: bus}
}

// SubscribeSpike ensures a (SpikeMessage, receiver) subscription exists and
// unions senders into it. Idempotent: subscribing twice with the same
// senders yields a sender set equal to a single subscribe with their union.
func (e *Endpoint) SubscribeSpike(receiver uid.UID, senders ...uid.UID) int {
	return e.bus.subscribeSpike(receiver, senders)
}

// SubscribeImpact is SubscribeSpike's counterpart for SynapticImpactMessage.
func (e *Endpoint) SubscribeImpact(receiver uid.UID, senders ...uid.UID) int {
	return e.bus.subscribeImpact(receiver, senders)
}

// UnsubscribeSpike removes sender from the (SpikeMessage, receiver)
// subscription, returning 1 if removed, 0 otherwise.
func (e *Endpoint) UnsubscribeSpike(receiver, sender uid.UID) int {
	return e.bus.removeSpikeSender(receiver, sender)
}

// UnsubscribeImpact is UnsubscribeSpike's counterpart for SynapticImpactMessage.
func (e *Endpoint) UnsubscribeImpact(receiver, sender uid.UID) int {
	return e.bus.removeImpactSender(receiver, sender)
}

// SendMessage posts m to the bus's pending queue. It does not deliver —
// delivery happens on the next RouteMessages call. Sending with an unknown
// sender UID is legal; no subscriber will receive it.
func (e *Endpoint) SendMessage(m message.Message) error {
	switch v := m.(type) {
	case message.SpikeMessage:
		e.bus.sendSpike(v)
	case message.SynapticImpactMessage:
		e.bus.sendImpact(v)
	default:
		return fmt.Errorf("bus: send message: unsupported message type %T", m)
	}
	return nil
}

// ReceiveAllMessages moves routed messages from the bus into this
// endpoint's local inboxes. It is a no-op here because subscriptions and
// their inboxes live directly on the shared MessageBus in this
// single-process core; the call exists so multi-endpoint configurations
// (e.g. one endpoint per worker thread, or across a process boundary) have
// a place to hang that copy without changing the rest of the API.
func (e *Endpoint) ReceiveAllMessages() {}

// UnloadSpikeMessages returns and clears the SpikeMessage inbox for receiver.
func (e *Endpoint) UnloadSpikeMessages(receiver uid.UID) []message.SpikeMessage {
	return e.bus.unloadSpike(receiver)
}

// UnloadImpactMessages returns and clears the SynapticImpactMessage inbox
// for receiver.
func (e *Endpoint) UnloadImpactMessages(receiver uid.UID) []message.SynapticImpactMessage {
	return e.bus.unloadImpact(receiver)
}

// RouteMessages drains the bus's pending queue into subscriber inboxes.
// Exposed on Endpoint as a convenience so callers driving a single-endpoint
// simulation don't need to hold a separate *MessageBus reference.
func (e *Endpoint) RouteMessages() {
	e.bus.RouteMessages()
}
