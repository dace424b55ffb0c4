// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package projection

import (
	"sync"

	"github.com/emer/emergent/v2/params"
	"github.com/emer/etable/v2/minmax"

	"github.com/nspike/nspike/message"
	"github.com/nspike/nspike/uid"
)

// Projection is an ordered sequence of synapses sharing a synapse type,
// directed from one presynaptic population to one postsynaptic population.
// It owns a forward index — by presynaptic neuron and by postsynaptic
// neuron, each a slice of synapse indexes — built once by Build and
// read-only thereafter, avoiding cyclic ownership between projections and
// populations. A projection owns UIDs, not pointers, to its endpoint
// populations.
type Projection struct {
	u uid.UID

	PresynapticUID  uid.UID
	PostsynapticUID uid.UID

	class string

	Synapses []Synapse

	byPre  [][]int
	byPost [][]int

	// PreConNAvgMax / PostConNAvgMax report the average and maximum synapse
	// fan-out per presynaptic neuron and fan-in per postsynaptic neuron,
	// computed once by Build.
	PreConNAvgMax  minmax.AvgMax32
	PostConNAvgMax minmax.AvgMax32

	// pending maps deliver_step -> accumulated impacts for that step.
	// pendingMu guards it against the several chunked workers that may
	// append to it concurrently within one tick.
	pendingMu sync.Mutex
	pending   map[uint64][]message.Impact

	// Rule is nil for a plain delta projection; non-nil enables the
	// additive-STDP plasticity kernel over history, one entry per synapse.
	Rule    *PlasticityRule
	history []synapseHistory

	// StdpPopulations maps a sender population UID to the processing mode
	// the plasticity kernel uses for spike messages from that sender.
	// Entries are consulted only when Rule is non-nil.
	StdpPopulations map[uid.UID]ProcessingMode

	Tags *uid.TagMap
}

// New returns an empty projection from pre to post, with no synapses and no
// plasticity rule.
func New(pre, post uid.UID) *Projection {
	return &Projection{
		u:               uid.New(),
		PresynapticUID:  pre,
		PostsynapticUID: post,
		pending:         make(map[uint64][]message.Impact),
		StdpPopulations: make(map[uid.UID]ProcessingMode),
		Tags:            uid.NewTagMap(),
	}
}

// UID returns this projection's stable identifier.
func (p *Projection) UID() uid.UID { return p.u }

// Class returns the projection's parameter-styling class tags.
func (p *Projection) Class() string { return p.class }

// AddClass unions cls into the projection's class tags.
func (p *Projection) AddClass(cls string) { p.class = params.AddClass(p.class, cls) }

// Build replaces the synapse table and rebuilds the forward index.
// preCount and postCount size the index slices; a synapse whose PreIndex
// falls outside [0, preCount), or whose PostIndex falls outside
// [0, postCount), is omitted from that index and so is never looked up
// through it by RegisterSpikes or DeltaKernel. The index is built
// once here and read-only thereafter.
func (p *Projection) Build(synapses []Synapse, preCount, postCount int) {
	p.Synapses = synapses
	p.byPre = make([][]int, preCount)
	p.byPost = make([][]int, postCount)
	if p.Rule != nil {
		p.history = make([]synapseHistory, len(synapses))
	}
	for i, s := range synapses {
		if int(s.PreIndex) < preCount {
			p.byPre[s.PreIndex] = append(p.byPre[s.PreIndex], i)
		}
		if int(s.PostIndex) < postCount {
			p.byPost[s.PostIndex] = append(p.byPost[s.PostIndex], i)
		}
	}

	p.PreConNAvgMax.Init()
	for i, idxs := range p.byPre {
		p.PreConNAvgMax.UpdateValue(float32(len(idxs)), int32(i))
	}
	p.PreConNAvgMax.CalcAvg()

	p.PostConNAvgMax.Init()
	for i, idxs := range p.byPost {
		p.PostConNAvgMax.UpdateValue(float32(len(idxs)), int32(i))
	}
	p.PostConNAvgMax.CalcAvg()
}

// EnableSTDP wraps every synapse with the given additive-STDP rule,
// allocating a fresh, empty history per synapse.
func (p *Projection) EnableSTDP(rule PlasticityRule) {
	p.Rule = &rule
	p.history = make([]synapseHistory, len(p.Synapses))
}
