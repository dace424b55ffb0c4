// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bus

import (
	"sync"

	"github.com/nspike/nspike/message"
	"github.com/nspike/nspike/uid"
)

// MessageBus routes typed messages between entities by subscription. It is
// the shared object behind every Endpoint; its single mutex guards its
// pending queues and subscription inboxes.
type MessageBus struct {
	mu sync.Mutex

	spikeSubs  map[uid.UID]*Subscription[message.SpikeMessage]
	impactSubs map[uid.UID]*Subscription[message.SynapticImpactMessage]

	pendingSpikes  []message.SpikeMessage
	pendingImpacts []message.SynapticImpactMessage
}

// NewMessageBus returns an empty bus with no subscriptions and no pending
// messages.
func NewMessageBus() *MessageBus {
	return &MessageBus{
		spikeSubs:  make(map[uid.UID]*Subscription[message.SpikeMessage]),
		impactSubs: make(map[uid.UID]*Subscription[message.SynapticImpactMessage]),
	}
}

// subscribeSpike ensures a subscription record for (KindSpike, receiver) and
// unions senders into its set; idempotent, returns the count of senders
// newly added.
func (b *MessageBus) subscribeSpike(receiver uid.UID, senders []uid.UID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.spikeSubs[receiver]
	if !ok {
		sub = newSubscription[message.SpikeMessage](receiver, nil)
		b.spikeSubs[receiver] = sub
	}
	return sub.addSenders(senders)
}

// subscribeImpact is subscribeSpike's counterpart for KindImpact.
func (b *MessageBus) subscribeImpact(receiver uid.UID, senders []uid.UID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.impactSubs[receiver]
	if !ok {
		sub = newSubscription[message.SynapticImpactMessage](receiver, nil)
		b.impactSubs[receiver] = sub
	}
	return sub.addSenders(senders)
}

// removeSpikeSender / removeImpactSender remove a sender from an existing
// subscription, if any, returning 1 if removed, 0 otherwise.
func (b *MessageBus) removeSpikeSender(receiver, sender uid.UID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.spikeSubs[receiver]
	if !ok {
		return 0
	}
	return sub.removeSender(sender)
}

func (b *MessageBus) removeImpactSender(receiver, sender uid.UID) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.impactSubs[receiver]
	if !ok {
		return 0
	}
	return sub.removeSender(sender)
}

// sendSpike posts m to the pending queue. Legal even if no subscriber lists
// m.SenderUID as a sender — in that case routing simply delivers to nobody.
func (b *MessageBus) sendSpike(m message.SpikeMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pendingSpikes = append(b.pendingSpikes, m)
}

func (b *MessageBus) sendImpact(m message.SynapticImpactMessage) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pendingImpacts = append(b.pendingImpacts, m)
}

// RouteMessages drains the pending queue and, for every message, appends a
// copy to the inbox of every subscription whose sender set contains the
// message's sender UID. Messages are routed in send order; across receivers
// routing order is arbitrary but deterministic given a fixed input ordering,
// since Go map iteration here only decides inbox append order per distinct
// receiver, never which messages a receiver sees.
func (b *MessageBus) RouteMessages() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, m := range b.pendingSpikes {
		for _, sub := range b.spikeSubs {
			if sub.HasSender(m.SenderUID) {
				sub.addMessage(m)
			}
		}
	}
	b.pendingSpikes = nil
	for _, m := range b.pendingImpacts {
		for _, sub := range b.impactSubs {
			if sub.HasSender(m.SenderUID) {
				sub.addMessage(m)
			}
		}
	}
	b.pendingImpacts = nil
}

// unloadSpike returns and clears the inbox for (KindSpike, receiver). Unload
// on a nonexistent subscription returns an empty slice, not an error.
func (b *MessageBus) unloadSpike(receiver uid.UID) []message.SpikeMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.spikeSubs[receiver]
	if !ok {
		return nil
	}
	return sub.unload()
}

func (b *MessageBus) unloadImpact(receiver uid.UID) []message.SynapticImpactMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.impactSubs[receiver]
	if !ok {
		return nil
	}
	return sub.unload()
}
