// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package projection

import (
	"github.com/nspike/nspike/message"
	"github.com/nspike/nspike/uid"
)

// DeltaKernel consumes the merged spike indexes a projection received this
// tick and, for each, looks up every synapse whose PreIndex matches via the
// forward index, appending a weighted impact to the pending queue keyed by
// current_step + synapse delay. A delay of 0 is accepted and keys the
// impact at current_step itself, so a Deliver for the same step returns it.
func (p *Projection) DeltaKernel(currentStep uint64, spikeIndexes []uint32) {
	for _, s := range spikeIndexes {
		if int(s) >= len(p.byPre) {
			continue
		}
		for _, si := range p.byPre[s] {
			syn := p.Synapses[si]
			deliverStep := currentStep + syn.Delay
			imp := message.Impact{
				PreIndex:  syn.PreIndex,
				PostIndex: syn.PostIndex,
				Value:     syn.Weight,
				Kind:      syn.Kind,
			}
			p.pendingMu.Lock()
			p.pending[deliverStep] = append(p.pending[deliverStep], imp)
			p.pendingMu.Unlock()
		}
	}
}

// Deliver removes and returns the pending entry keyed by currentStep as a
// SynapticImpactMessage targeted at the postsynaptic population, or nil if
// there is no entry for currentStep.
func (p *Projection) Deliver(currentStep uint64, senderUID uid.UID) *message.SynapticImpactMessage {
	p.pendingMu.Lock()
	impacts, ok := p.pending[currentStep]
	delete(p.pending, currentStep)
	p.pendingMu.Unlock()
	if !ok {
		return nil
	}
	return &message.SynapticImpactMessage{
		Header: message.Header{SenderUID: senderUID, SendTime: currentStep},
		Target: p.PostsynapticUID,
		Impacts: impacts,
	}
}

// RegisterSpikes runs the additive-STDP spike-registration step for one
// incoming spike message from senderUID. It returns the message the delta
// kernel should see afterward: unchanged, unless senderUID's mode
// is STDPOnly, in which case the neuron-index list comes back empty so
// downstream delivery skips it. A no-op (message returned unchanged) when
// Rule is nil or senderUID is not in StdpPopulations.
func (p *Projection) RegisterSpikes(currentStep uint64, senderUID uid.UID, msg message.SpikeMessage) message.SpikeMessage {
	if p.Rule == nil {
		return msg
	}
	mode, ok := p.StdpPopulations[senderUID]
	if !ok {
		return msg
	}
	capacity := p.Rule.Period()
	if mode == STDPOnly || mode == STDPAndSpike {
		for _, idx := range msg.NeuronIndexes {
			if int(idx) >= len(p.byPost) {
				continue
			}
			for _, si := range p.byPost[idx] {
				p.history[si].PostTimes = appendCapped(p.history[si].PostTimes, currentStep, capacity)
			}
		}
	}
	if mode == STDPAndSpike {
		for _, idx := range msg.NeuronIndexes {
			if int(idx) >= len(p.byPre) {
				continue
			}
			for _, si := range p.byPre[idx] {
				p.history[si].PreTimes = appendCapped(p.history[si].PreTimes, currentStep, capacity)
			}
		}
	}
	if mode == STDPOnly {
		msg.NeuronIndexes = nil
	}
	return msg
}

// UpdateWeights runs the additive-STDP weight update once per tick, after
// registration. A synapse only updates once both its queues hold
// at least Rule.Period() entries; both queues are cleared after updating,
// so Δw applied in a tick with insufficient history is exactly 0.
func (p *Projection) UpdateWeights() {
	if p.Rule == nil {
		return
	}
	period := p.Rule.Period()
	for i := range p.Synapses {
		h := &p.history[i]
		if uint64(len(h.PreTimes)) < period || uint64(len(h.PostTimes)) < period {
			continue
		}
		var dw float32
		for _, tf := range h.PreTimes {
			for _, tn := range h.PostTimes {
				dw += p.Rule.kernel(int64(tn) - int64(tf))
			}
		}
		p.Synapses[i].Weight += dw
		h.PreTimes = nil
		h.PostTimes = nil
	}
}
