// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package network is the Network facade: UID-indexed lookup over the
// populations and projections owned by a backend, plus reporting helpers
// for external callers.
package network

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"

	"github.com/nspike/nspike/backend"
	"github.com/nspike/nspike/population"
	"github.com/nspike/nspike/projection"
	"github.com/nspike/nspike/uid"
)

// Network is the collection of all populations and projections with
// UID-indexed lookup, backed by a *backend.Backend's loaded vectors. It
// owns the entities in the sense that populations and projections are
// constructed by the caller and handed to the network via LoadPopulations
// and LoadProjections, which forward to the backend's own load methods.
type Network struct {
	Backend *backend.Backend

	populations map[uid.UID]*population.Population
	projections map[uid.UID]*projection.Projection
}

// New returns a network fronting a freshly constructed backend with
// nThreads workers.
func New(nThreads int) *Network {
	return &Network{
		Backend:     backend.New(nThreads),
		populations: make(map[uid.UID]*population.Population),
		projections: make(map[uid.UID]*projection.Projection),
	}
}

// LoadPopulations replaces the population vector on both the index and the
// backend.
func (n *Network) LoadPopulations(pops []*population.Population) {
	n.populations = make(map[uid.UID]*population.Population, len(pops))
	for _, p := range pops {
		n.populations[p.UID()] = p
	}
	n.Backend.LoadPopulations(pops)
}

// LoadProjections replaces the projection vector on both the index and the
// backend.
func (n *Network) LoadProjections(projs []*projection.Projection) {
	n.projections = make(map[uid.UID]*projection.Projection, len(projs))
	for _, p := range projs {
		n.projections[p.UID()] = p
	}
	n.Backend.LoadProjections(projs)
}

// IsPopulationExists reports whether u names a loaded population.
func (n *Network) IsPopulationExists(u uid.UID) bool {
	_, ok := n.populations[u]
	return ok
}

// IsProjectionExists reports whether u names a loaded projection.
func (n *Network) IsProjectionExists(u uid.UID) bool {
	_, ok := n.projections[u]
	return ok
}

// Population returns the population named by u, or nil if none exists.
func (n *Network) Population(u uid.UID) *population.Population {
	return n.populations[u]
}

// Projection returns the projection named by u, or nil if none exists.
func (n *Network) Projection(u uid.UID) *projection.Projection {
	return n.projections[u]
}

// SizeReport returns a human-readable breakdown of neuron and synapse
// counts and memory footprint across every loaded population and
// projection, reporting each entity before the running totals.
func (n *Network) SizeReport() string {
	var b strings.Builder
	var neurons, synapses int
	var neuronMem, synapseMem uint64

	for u, p := range n.populations {
		nn := p.Size()
		nmem := uint64(nn) * uint64(unsafe.Sizeof(population.Neuron{}))
		neurons += nn
		neuronMem += nmem
		fmt.Fprintf(&b, "%s:\tNeurons: %d\tNeurMem: %v\n", u, nn, datasize.ByteSize(nmem).HumanReadable())
	}
	for u, p := range n.projections {
		ns := len(p.Synapses)
		pmem := uint64(ns) * uint64(unsafe.Sizeof(projection.Synapse{}))
		synapses += ns
		synapseMem += pmem
		fmt.Fprintf(&b, "%s:\tSyns: %d\tSynMem: %v\n", u, ns, datasize.ByteSize(pmem).HumanReadable())
	}
	fmt.Fprintf(&b, "\nTotal:\tNeurons: %d\tNeurMem: %v\tSyns: %d\tSynMem: %v\n",
		neurons, datasize.ByteSize(neuronMem).HumanReadable(), synapses, datasize.ByteSize(synapseMem).HumanReadable())
	return b.String()
}
