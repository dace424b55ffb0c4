// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bus implements the typed publish/subscribe routing that decouples
// populations and projections: a Subscription table keyed by (message kind,
// receiver), a MessageBus that drains a pending queue into subscriber
// inboxes, and an Endpoint that is the per-agent handle onto the bus.
package bus

import "github.com/nspike/nspike/uid"

// Kind discriminates the two message kinds the bus routes. The set is fixed
// at build time (see message.Message); MessageBus keeps one subscription
// table per kind, each keyed by receiver UID.
type Kind uint8

const (
	// KindSpike routes message.SpikeMessage.
	KindSpike Kind = iota
	// KindImpact routes message.SynapticImpactMessage.
	KindImpact
)

// Subscription is a {receiver, senders, inbox} record: senders is a set (no
// duplicates); the inbox is append-only between Route and Unload.
type Subscription[M any] struct {
	receiver uid.UID
	senders  map[uid.UID]struct{}
	inbox    []M
}

// newSubscription creates a subscription for receiver with an initial sender
// set; it is the only constructor.
func newSubscription[M any](receiver uid.UID, senders []uid.UID) *Subscription[M] {
	s := &Subscription[M]{
		receiver: receiver,
		senders:  make(map[uid.UID]struct{}, len(senders)),
	}
	s.addSenders(senders)
	return s
}

// ReceiverUID returns the UID this subscription delivers to.
func (s *Subscription[M]) ReceiverUID() uid.UID { return s.receiver }

// HasSender reports whether uid is a subscribed sender.
func (s *Subscription[M]) HasSender(u uid.UID) bool {
	_, ok := s.senders[u]
	return ok
}

// Senders returns the current sender set, in unspecified order.
func (s *Subscription[M]) Senders() []uid.UID {
	out := make([]uid.UID, 0, len(s.senders))
	for u := range s.senders {
		out = append(out, u)
	}
	return out
}

// addSenders inserts every not-yet-present sender and returns the number
// newly added: idempotent, monotone, union-on-repeat.
func (s *Subscription[M]) addSenders(senders []uid.UID) int {
	added := 0
	for _, u := range senders {
		if _, ok := s.senders[u]; !ok {
			s.senders[u] = struct{}{}
			added++
		}
	}
	return added
}

// removeSender deletes a sender, returning 1 if it was present, 0 otherwise.
func (s *Subscription[M]) removeSender(u uid.UID) int {
	if _, ok := s.senders[u]; ok {
		delete(s.senders, u)
		return 1
	}
	return 0
}

// addMessage appends m to the inbox. Not safe for concurrent use without the
// bus's mutex held by the caller.
func (s *Subscription[M]) addMessage(m M) {
	s.inbox = append(s.inbox, m)
}

// unload returns and clears the inbox.
func (s *Subscription[M]) unload() []M {
	out := s.inbox
	s.inbox = nil
	return out
}

// subscriptionKey identifies one (kind, receiver) subscription slot.
type subscriptionKey struct {
	kind     Kind
	receiver uid.UID
}
