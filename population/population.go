// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package population

import (
	"github.com/emer/emergent/v2/params"

	"github.com/nspike/nspike/uid"
)

// Population holds neuron records in a contiguous, index-addressable
// sequence, sharing a neuron type tag. It does not compute by itself — its
// Neurons are mutated by the kernel in kernel.go and by input processing.
// Size is fixed by New; individual neurons may be mutated concurrently
// by disjoint-index worker chunks.
type Population struct {
	u     uid.UID
	name  string
	class string
	tags  *uid.TagMap

	Neurons []Neuron

	// spikeIndexes holds the spikes accumulated by the most recent Phase C
	// run, as neuron indexes. Drained into one message.SpikeMessage per
	// tick by the scheduler.
	spikeIndexes []uint32
}

// New returns a population of n BLIFAT neurons, each initialized by
// Neuron.Defaults, addressed by a freshly generated UID.
func New(name string, n int) *Population {
	p := &Population{
		u:       uid.New(),
		name:    name,
		tags:    uid.NewTagMap(),
		Neurons: make([]Neuron, n),
	}
	for i := range p.Neurons {
		p.Neurons[i].Defaults()
	}
	return p
}

// UID returns this population's stable identifier.
func (p *Population) UID() uid.UID { return p.u }

// Name returns the population's diagnostic name.
func (p *Population) Name() string { return p.name }

// Class returns the population's parameter-styling class tags, space
// separated.
func (p *Population) Class() string { return p.class }

// AddClass unions cls into the population's class tags, for applying
// parameter styles by class.
func (p *Population) AddClass(cls string) { p.class = params.AddClass(p.class, cls) }

// Tags returns the population's tag map (diagnostics/metadata only — never
// consulted by the kernel or scheduler for any numeric or scheduling
// decision).
func (p *Population) Tags() *uid.TagMap { return p.tags }

// Size returns the number of neurons in the population.
func (p *Population) Size() int { return len(p.Neurons) }

// SpikeIndexes returns the neuron indexes that spiked during the most
// recently completed Phase C run. Order is unspecified: a chunked run
// across several workers (see backend.calculatePopulations) accumulates
// results in completion order, not index order.
func (p *Population) SpikeIndexes() []uint32 { return p.spikeIndexes }

// SetSpikeIndexes records the spike list produced by a chunked Phase C run
// driven by an external scheduler (see backend.calculatePopulations, which
// merges per-chunk results before calling this rather than using the
// single-threaded RunTick path).
func (p *Population) SetSpikeIndexes(indexes []uint32) { p.spikeIndexes = indexes }
