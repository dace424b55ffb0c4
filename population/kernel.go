// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package population

import "github.com/nspike/nspike/message"

// PhaseA runs the pre-message integration step over neurons[lo:hi] of p,
// applying refractory clamping, the four decay multiplications, and the
// bursting-phase reflexive injection. Disjoint [lo, hi) ranges across
// concurrent calls touch disjoint neurons and need no synchronization.
func PhaseA(p *Population, lo, hi int) {
	for i := lo; i < hi; i++ {
		n := &p.Neurons[i]
		if n.InRefractory() {
			n.Potential = n.PotentialResetValue
		}
		n.Potential *= n.PotentialDecay
		n.DynamicThreshold *= n.ThresholdDecay
		if n.PostsynapticTraceDecay == 0 {
			n.PostsynapticTrace = 0
		} else {
			n.PostsynapticTrace *= n.PostsynapticTraceDecay
		}
		n.InhibitoryConductance *= n.InhibitoryConductanceDecay
		if n.BurstingPeriod > 0 {
			n.BurstingPhase = (n.BurstingPhase + 1) % n.BurstingPeriod
			if n.BurstingPhase == 0 {
				n.Potential += n.ReflexiveWeight
			}
		}
		n.PreImpactPotential = n.Potential
	}
}

// PhaseB applies the synaptic impacts in impacts whose PostIndex addresses a
// neuron in p, then the inhibitory-conductance coupling and the
// min-potential clamp, for every neuron in p (not just those with an
// impact this tick — the coupling and clamp run unconditionally).
func PhaseB(p *Population, currentStep uint64, impacts []message.Impact) {
	for _, imp := range impacts {
		if int(imp.PostIndex) >= len(p.Neurons) {
			continue
		}
		n := &p.Neurons[imp.PostIndex]
		switch imp.Kind {
		case message.KindExcitatory:
			n.Potential += float64(imp.Value)
		case message.KindInhibitoryCurrent:
			n.Potential -= float64(imp.Value)
		case message.KindInhibitoryConductance:
			n.InhibitoryConductance += float64(imp.Value)
		case message.KindBlocking:
			n.BlockedUntil = currentStep + uint64(n.TotalBlockingPeriod)
			n.Potential = n.PreImpactPotential
		case message.KindDopamine:
			n.DopamineValue += float64(imp.Value)
		}
	}
	for i := range p.Neurons {
		n := &p.Neurons[i]
		n.Potential += n.InhibitoryConductance * (n.ReversiveInhibitoryPotential - n.Potential)
		if n.Potential < n.MinPotential {
			n.Potential = n.MinPotential
		}
	}
}

// PhaseC runs the spike decision over neurons[lo:hi], appending a spike's
// neuron index to out for every neuron that fires, and returns the updated
// slice. currentStep is used only to evaluate IsBlocked.
func PhaseC(p *Population, currentStep uint64, lo, hi int, out []uint32) []uint32 {
	for i := lo; i < hi; i++ {
		n := &p.Neurons[i]
		fires := n.Potential >= n.ActivationThreshold+n.DynamicThreshold &&
			!n.InRefractory() && !n.IsBlocked(currentStep)
		if fires {
			out = append(out, uint32(i))
			n.Potential = n.PotentialResetValue
			n.DynamicThreshold += n.ThresholdIncrement
			n.PostsynapticTrace += n.PostsynapticTraceIncrement
			n.NTimeStepsSinceLastFiring = 0
		} else if n.NTimeStepsSinceLastFiring < ^uint64(0) {
			// Saturate rather than wrap: the Defaults sentinel starts at the
			// maximum uint64 value, and wrapping it to 0 on the very next
			// non-firing tick would make a never-fired neuron look freshly
			// fired again.
			n.NTimeStepsSinceLastFiring++
		}
	}
	return out
}

// RunTick runs Phase A, B and C over the whole population sequentially (no
// chunking), applies impacts from inbox, and records the resulting spike
// indexes on p for later draining by the scheduler. It is the
// single-threaded reference path; the backend package reproduces the same
// three phases chunked across its worker pool.
func RunTick(p *Population, currentStep uint64, inbox []message.SynapticImpactMessage) {
	PhaseA(p, 0, len(p.Neurons))
	var impacts []message.Impact
	for _, m := range inbox {
		impacts = append(impacts, m.Impacts...)
	}
	PhaseB(p, currentStep, impacts)
	p.spikeIndexes = PhaseC(p, currentStep, 0, len(p.Neurons), p.spikeIndexes[:0])
}
