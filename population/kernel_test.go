// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package population

import (
	"testing"

	"github.com/nspike/nspike/message"
)

func tonicNeuron() Neuron {
	var n Neuron
	n.Defaults()
	n.PotentialDecay = 1
	n.ThresholdDecay = 1
	n.PostsynapticTraceDecay = 1
	n.InhibitoryConductanceDecay = 1
	n.ActivationThreshold = 1
	n.PotentialResetValue = 0
	n.MinPotential = -1000
	n.AbsoluteRefractoryPeriod = 2
	return n
}

// TestSingleNeuronPeriodicSpiking: a neuron driven by a constant excitatory
// impact each tick spikes periodically, respecting its absolute refractory
// period.
func TestSingleNeuronPeriodicSpiking(t *testing.T) {
	p := New("drive", 1)
	p.Neurons[0] = tonicNeuron()

	var spikeSteps []uint64
	for step := uint64(0); step < 10; step++ {
		inbox := []message.SynapticImpactMessage{{
			Impacts: []message.Impact{{PostIndex: 0, Value: 1, Kind: message.KindExcitatory}},
		}}
		RunTick(p, step, inbox)
		if len(p.SpikeIndexes()) > 0 {
			spikeSteps = append(spikeSteps, step)
		}
	}
	if len(spikeSteps) == 0 {
		t.Fatalf("expected periodic spiking, got none")
	}
	for i := 1; i < len(spikeSteps); i++ {
		gap := spikeSteps[i] - spikeSteps[i-1]
		if gap < tonicNeuron().AbsoluteRefractoryPeriod {
			t.Fatalf("spikes at %d and %d violate refractory period", spikeSteps[i-1], spikeSteps[i])
		}
	}
}

// TestRefractoryClampsPotential covers invariant 3: within the absolute
// refractory period, potential is clamped to potential_reset_value every
// Phase A regardless of inbound excitatory drive.
func TestRefractoryClampsPotential(t *testing.T) {
	p := New("clamp", 1)
	n := tonicNeuron()
	n.AbsoluteRefractoryPeriod = 5
	n.NTimeStepsSinceLastFiring = 1
	n.Potential = 99
	p.Neurons[0] = n

	PhaseA(p, 0, 1)
	if p.Neurons[0].Potential != n.PotentialResetValue*n.PotentialDecay {
		t.Fatalf("potential = %v, want clamp to reset value", p.Neurons[0].Potential)
	}
}

// TestBlockingRestoresPreImpactPotential covers scenario 2: a blocking
// impact rolls potential back to its pre-impact value and suppresses
// spiking until blocked_until.
func TestBlockingRestoresPreImpactPotential(t *testing.T) {
	p := New("block", 1)
	n := tonicNeuron()
	n.AbsoluteRefractoryPeriod = 0
	n.TotalBlockingPeriod = 3
	p.Neurons[0] = n

	PhaseA(p, 0, 1)
	pre := p.Neurons[0].PreImpactPotential

	impacts := []message.Impact{
		{PostIndex: 0, Value: 5, Kind: message.KindExcitatory},
		{PostIndex: 0, Value: 0, Kind: message.KindBlocking},
	}
	PhaseB(p, 10, impacts)
	if p.Neurons[0].Potential != pre {
		t.Fatalf("potential after blocking = %v, want pre-impact potential %v", p.Neurons[0].Potential, pre)
	}
	if !p.Neurons[0].IsBlocked(10) {
		t.Fatalf("neuron should be blocked at step 10")
	}

	out := PhaseC(p, 10, 0, 1, nil)
	if len(out) != 0 {
		t.Fatalf("blocked neuron should not spike, got spikes %v", out)
	}
}

// TestBurstingPeriodZeroDisablesBursting covers the documented boundary: a
// zero bursting_period never injects reflexive_weight.
func TestBurstingPeriodZeroDisablesBursting(t *testing.T) {
	p := New("noburst", 1)
	n := tonicNeuron()
	n.BurstingPeriod = 0
	n.ReflexiveWeight = 1000
	n.Potential = 0
	p.Neurons[0] = n

	for step := 0; step < 5; step++ {
		PhaseA(p, 0, 1)
	}
	if p.Neurons[0].Potential != 0 {
		t.Fatalf("potential = %v, want 0 (bursting disabled)", p.Neurons[0].Potential)
	}
}

// TestAbsoluteRefractoryPeriodZeroAllowsEveryTick covers the documented
// boundary: absolute_refractory_period == 0 never clamps, so a neuron may
// spike on consecutive ticks.
func TestAbsoluteRefractoryPeriodZeroAllowsEveryTick(t *testing.T) {
	p := New("everytick", 1)
	n := tonicNeuron()
	n.AbsoluteRefractoryPeriod = 0
	p.Neurons[0] = n

	inbox := []message.SynapticImpactMessage{{
		Impacts: []message.Impact{{PostIndex: 0, Value: 10, Kind: message.KindExcitatory}},
	}}
	RunTick(p, 0, inbox)
	if len(p.SpikeIndexes()) != 1 {
		t.Fatalf("expected spike on step 0")
	}
	RunTick(p, 1, inbox)
	if len(p.SpikeIndexes()) != 1 {
		t.Fatalf("expected spike on step 1 too, refractory period is 0")
	}
}

func TestInhibitoryConductanceCouplingAndClamp(t *testing.T) {
	p := New("inhib", 1)
	n := tonicNeuron()
	n.Potential = 0
	n.MinPotential = -1
	n.ReversiveInhibitoryPotential = -5
	p.Neurons[0] = n

	impacts := []message.Impact{
		{PostIndex: 0, Value: 10, Kind: message.KindInhibitoryConductance},
	}
	PhaseB(p, 0, impacts)
	if p.Neurons[0].Potential != -1 {
		t.Fatalf("potential = %v, want clamp to min_potential -1", p.Neurons[0].Potential)
	}
}
