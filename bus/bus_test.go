// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bus

import (
	"testing"

	"github.com/nspike/nspike/message"
	"github.com/nspike/nspike/uid"
)

func TestSubscribeIdempotentUnion(t *testing.T) {
	b := NewMessageBus()
	receiver := uid.New()
	a, c := uid.New(), uid.New()

	n1 := b.subscribeSpike(receiver, []uid.UID{a})
	n2 := b.subscribeSpike(receiver, []uid.UID{a, c})
	if n1 != 1 {
		t.Fatalf("first subscribe: got %d new senders, want 1", n1)
	}
	if n2 != 1 {
		t.Fatalf("second subscribe: got %d new senders, want 1 (only c is new)", n2)
	}
	sub := b.spikeSubs[receiver]
	if !sub.HasSender(a) || !sub.HasSender(c) {
		t.Fatalf("subscription senders = %v, want union of {a, c}", sub.Senders())
	}
	if len(sub.Senders()) != 2 {
		t.Fatalf("subscription has %d senders, want 2", len(sub.Senders()))
	}
}

func TestRouteMessagesExactlyOneCopy(t *testing.T) {
	b := NewMessageBus()
	ep := NewEndpoint(b)
	sender := uid.New()
	receiver := uid.New()
	ep.SubscribeSpike(receiver, sender)

	msg := message.SpikeMessage{
		Header:        message.Header{SenderUID: sender, SendTime: 3},
		NeuronIndexes: []uint32{1, 2},
	}
	if err := ep.SendMessage(msg); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	ep.RouteMessages()
	ep.ReceiveAllMessages()

	got := ep.UnloadSpikeMessages(receiver)
	if len(got) != 1 {
		t.Fatalf("inbox has %d messages, want exactly 1", len(got))
	}

	// Second unload returns empty — inbox is cleared on unload.
	again := ep.UnloadSpikeMessages(receiver)
	if len(again) != 0 {
		t.Fatalf("second unload returned %d messages, want 0", len(again))
	}
}

func TestUnsubscribedSenderLeavesInboxesEmpty(t *testing.T) {
	b := NewMessageBus()
	ep := NewEndpoint(b)
	sender := uid.New()
	receiver := uid.New()
	// No subscription at all for receiver.

	ep.SendMessage(message.SpikeMessage{Header: message.Header{SenderUID: sender, SendTime: 0}})
	ep.RouteMessages()

	if got := ep.UnloadSpikeMessages(receiver); len(got) != 0 {
		t.Fatalf("unsubscribed receiver inbox = %v, want empty", got)
	}
}

func TestUnloadWithoutSubscribeReturnsEmpty(t *testing.T) {
	b := NewMessageBus()
	ep := NewEndpoint(b)
	if got := ep.UnloadSpikeMessages(uid.New()); len(got) != 0 {
		t.Fatalf("unload without subscribe = %v, want empty", got)
	}
	if got := ep.UnloadImpactMessages(uid.New()); len(got) != 0 {
		t.Fatalf("unload without subscribe = %v, want empty", got)
	}
}

func TestRemoveSender(t *testing.T) {
	b := NewMessageBus()
	receiver, sender := uid.New(), uid.New()
	b.subscribeSpike(receiver, []uid.UID{sender})

	if n := b.removeSpikeSender(receiver, sender); n != 1 {
		t.Fatalf("removeSpikeSender present: got %d, want 1", n)
	}
	if n := b.removeSpikeSender(receiver, sender); n != 0 {
		t.Fatalf("removeSpikeSender absent: got %d, want 0", n)
	}
}
