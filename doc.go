// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package nspike is the overall repository for the NSpike spiking neural
network simulation core, implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* uid: the opaque 128-bit identifier type used to address every population,
projection, and message sender/receiver in the simulation, plus the
diagnostic-only tag map attached to entities.

* message: the two message kinds routed by the bus -- spikes emitted by
populations and synaptic impacts delivered by projections -- and their
little-endian wire envelope for external transport.

* bus: the typed publish/subscribe message bus and per-agent endpoint that
decouples senders from receivers via UID-addressed subscriptions.

* population: the BLIFAT (bio-inspired leaky integrate-and-fire with
adaptive threshold) neuron model -- the per-neuron record, the population
store, and the three-phase kernel that computes one simulation step for
every neuron in a population.

* projection: the delta synapse record, the projection store with its
forward index and pending-impact queue, the delta kernel that turns
presynaptic spikes into delayed impacts, and the additive-STDP plasticity
kernel that wraps a delta synapse with spike-time bookkeeping.

* backend: the discrete-time step scheduler -- a fixed worker pool computing
population and projection phases under a per-phase barrier, driven by an
external caller one step() at a time.

* network: the UID-indexed facade over a backend's loaded populations and
projections, exposing entity lookup, lifecycle control, and reporting.
*/
package nspike
