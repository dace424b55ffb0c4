// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"fmt"
	"sync"

	"github.com/nspike/nspike/bus"
	"github.com/nspike/nspike/message"
	"github.com/nspike/nspike/population"
	"github.com/nspike/nspike/projection"
)

// Backend is the discrete-time step scheduler: it owns the population and
// projection vectors, a shared message bus and endpoint, the monotone step
// counter, and the worker pool that computes every phase.
type Backend struct {
	Populations []*population.Population
	Projections []*projection.Projection

	Bus      *bus.MessageBus
	Endpoint *bus.Endpoint

	step     uint64
	running  bool
	stepping bool

	pool *Pool

	// NeuronsPerThread and SpikesPerThread set the chunk sizes used to split
	// population and projection work across the pool; a zero value runs the
	// corresponding phase unchunked.
	NeuronsPerThread int
	SpikesPerThread  int
}

// New returns a backend with nThreads persistent workers and no populations
// or projections loaded.
func New(nThreads int) *Backend {
	b := bus.NewMessageBus()
	return &Backend{
		Bus:              b,
		Endpoint:         bus.NewEndpoint(b),
		pool:             NewPool(nThreads),
		NeuronsPerThread: 256,
		SpikesPerThread:  256,
	}
}

// LoadPopulations replaces the population vector. Idempotent and
// destructive: any prior vector is discarded.
func (b *Backend) LoadPopulations(pops []*population.Population) {
	b.Populations = pops
}

// LoadProjections replaces the projection vector. Idempotent and
// destructive.
func (b *Backend) LoadProjections(projs []*projection.Projection) {
	b.Projections = projs
}

// Init subscribes every projection to the spike messages of its
// presynaptic population (and, for STDP-wrapped projections, of every
// other population named in its StdpPopulations table — most commonly the
// postsynaptic population, needed for postsynaptic spike-time
// registration), and subscribes every postsynaptic population to the
// synaptic impacts its projections deliver.
func (b *Backend) Init() {
	for _, pr := range b.Projections {
		b.Endpoint.SubscribeSpike(pr.UID(), pr.PresynapticUID)
		if pr.Rule != nil {
			for sender := range pr.StdpPopulations {
				if sender != pr.PresynapticUID {
					b.Endpoint.SubscribeSpike(pr.UID(), sender)
				}
			}
		}
		b.Endpoint.SubscribeImpact(pr.PostsynapticUID, pr.UID())
	}
}

// Start marks the backend as running. The caller drives Step until it
// decides to stop; Start imposes no stop condition of its own.
func (b *Backend) Start() { b.running = true }

// Stop marks the backend as not running and joins the worker pool.
func (b *Backend) Stop() {
	b.running = false
	b.pool.Stop()
}

// Running reports whether Start has been called without a matching Stop.
func (b *Backend) Running() bool { return b.running }

// Step returns the current monotone step counter.
func (b *Backend) Step() uint64 { return b.step }

// GetCurrentDevices reports the compute resources this backend runs on —
// a single in-process worker pool, so the answer is always one device
// describing its thread count.
func (b *Backend) GetCurrentDevices() []string {
	return []string{fmt.Sprintf("cpu-multi-threaded(%d)", b.pool.NumWorkers())}
}

// GetSupportedNeurons reports the closed set of neuron models this backend
// can run: just BLIFAT.
func (b *Backend) GetSupportedNeurons() []string { return []string{"BLIFAT"} }

// GetSupportedSynapses reports the closed set of synapse models this
// backend can run: delta synapses, optionally additive-STDP-wrapped.
func (b *Backend) GetSupportedSynapses() []string { return []string{"delta", "delta+stdp"} }

// GetStatus reports the scheduler's lifecycle state: "running", "stopped",
// or "stepping" while a TickStep call is in flight.
func (b *Backend) GetStatus() string {
	if b.stepping {
		return "stepping"
	}
	if b.running {
		return "running"
	}
	return "stopped"
}

// TickStep runs one simulation tick: calculate_populations, route, apply,
// calculate_projections, route, apply, then advances the step counter.
func (b *Backend) TickStep() {
	b.stepping = true
	defer func() { b.stepping = false }()

	b.calculatePopulations()
	b.Bus.RouteMessages()
	b.Endpoint.ReceiveAllMessages()

	b.calculateProjections()
	b.Bus.RouteMessages()
	b.Endpoint.ReceiveAllMessages()

	b.step++
}

// calculatePopulations runs Phase A chunked across all populations, then
// Phase B (one worker per population consuming its impact inbox), then
// Phase C chunked, emitting one SpikeMessage per population with a
// nonempty spike list.
func (b *Backend) calculatePopulations() {
	for _, p := range b.Populations {
		pop := p
		b.pool.Run(pop.Size(), b.NeuronsPerThread, func(lo, hi int) {
			population.PhaseA(pop, lo, hi)
		})
	}

	for _, p := range b.Populations {
		pop := p
		b.pool.Submit(func() {
			inbox := b.Endpoint.UnloadImpactMessages(pop.UID())
			var impacts []message.Impact
			for _, m := range inbox {
				impacts = append(impacts, m.Impacts...)
			}
			population.PhaseB(pop, b.step, impacts)
		})
	}
	b.pool.Wait()

	for _, p := range b.Populations {
		pop := p
		var mu sync.Mutex
		var spikes []uint32
		b.pool.Run(pop.Size(), b.NeuronsPerThread, func(lo, hi int) {
			local := population.PhaseC(pop, b.step, lo, hi, nil)
			if len(local) == 0 {
				return
			}
			mu.Lock()
			spikes = append(spikes, local...)
			mu.Unlock()
		})
		pop.SetSpikeIndexes(spikes)
		if len(spikes) > 0 {
			b.Endpoint.SendMessage(message.SpikeMessage{
				Header:        message.Header{SenderUID: pop.UID(), SendTime: b.step},
				NeuronIndexes: spikes,
			})
		}
	}
}

// calculateProjections runs, for each projection in declared order, a drain
// and merge of its spike inbox, STDP bookkeeping if wrapped, and a chunked
// delta-kernel dispatch; then — after every projection has run — delivers
// whichever pending entries are keyed by the current step.
func (b *Backend) calculateProjections() {
	for _, pr := range b.Projections {
		msgs := b.Endpoint.UnloadSpikeMessages(pr.UID())
		if len(msgs) == 0 {
			msgs = []message.SpikeMessage{{}}
		}
		var combined []uint32
		for _, m := range msgs {
			if pr.Rule != nil {
				m = pr.RegisterSpikes(b.step, m.Header.SenderUID, m)
			}
			combined = append(combined, m.NeuronIndexes...)
		}
		if pr.Rule != nil {
			pr.UpdateWeights()
		}
		p := pr
		b.pool.Run(len(combined), b.SpikesPerThread, func(lo, hi int) {
			p.DeltaKernel(b.step, combined[lo:hi])
		})
	}
	for _, pr := range b.Projections {
		if msg := pr.Deliver(b.step, pr.UID()); msg != nil {
			b.Endpoint.SendMessage(*msg)
		}
	}
}
