// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"github.com/nspike/nspike/message"
	"github.com/nspike/nspike/uid"
)

// Init wires every loaded projection's subscriptions on the backend.
func (n *Network) Init() { n.Backend.Init() }

// Start marks the backend running.
func (n *Network) Start() { n.Backend.Start() }

// Stop halts the backend and joins its worker pool.
func (n *Network) Stop() { n.Backend.Stop() }

// Step runs a single simulation tick.
func (n *Network) Step() { n.Backend.TickStep() }

// Running reports whether the backend is between Start and Stop.
func (n *Network) Running() bool { return n.Backend.Running() }

// CurrentStep returns the backend's monotone step counter.
func (n *Network) CurrentStep() uint64 { return n.Backend.Step() }

// ObserveSpikes subscribes an independent endpoint to the spike messages of
// a population of interest and returns a function that unloads and returns
// whatever spikes have accumulated since the last call.
func (n *Network) ObserveSpikes(popUID uid.UID) func() []message.SpikeMessage {
	receiver := uid.New()
	n.Backend.Endpoint.SubscribeSpike(receiver, popUID)
	return func() []message.SpikeMessage {
		return n.Backend.Endpoint.UnloadSpikeMessages(receiver)
	}
}
