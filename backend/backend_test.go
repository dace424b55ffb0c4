// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package backend

import (
	"testing"

	"github.com/nspike/nspike/message"
	"github.com/nspike/nspike/population"
	"github.com/nspike/nspike/projection"
	"github.com/nspike/nspike/uid"
)

func tonicNeuron() population.Neuron {
	var n population.Neuron
	n.Defaults()
	n.ActivationThreshold = 1
	n.PotentialResetValue = 0
	n.MinPotential = -1000
	n.AbsoluteRefractoryPeriod = 1
	return n
}

// TestSingleNeuronSelfLoopPeriodicSpiking is scenario 1: a single BLIFAT
// neuron projecting onto itself with weight 1, delay 1, fed one external
// excitatory impact at step 0, spikes at steps 0, 2, 4, ... (period 2).
func TestSingleNeuronSelfLoopPeriodicSpiking(t *testing.T) {
	p := population.New("P", 1)
	p.Neurons[0] = tonicNeuron()

	pr := projection.New(p.UID(), p.UID())
	pr.Build([]projection.Synapse{{PreIndex: 0, PostIndex: 0, Weight: 1, Delay: 1, Kind: message.KindExcitatory}}, 1, 1)

	b := New(2)
	b.LoadPopulations([]*population.Population{p})
	b.LoadProjections([]*projection.Projection{pr})
	b.Init()
	b.Start()

	ext := uid.New() // stand-in sender UID for external impact injection
	b.Endpoint.SubscribeImpact(p.UID(), ext)
	b.Endpoint.SendMessage(message.SynapticImpactMessage{
		Header:  message.Header{SenderUID: ext, SendTime: 0},
		Target:  p.UID(),
		Impacts: []message.Impact{{PostIndex: 0, Value: 1, Kind: message.KindExcitatory}},
	})
	b.Bus.RouteMessages()

	var spikeSteps []uint64
	for step := uint64(0); step < 6; step++ {
		b.TickStep()
		if len(p.SpikeIndexes()) > 0 {
			spikeSteps = append(spikeSteps, step)
		}
	}
	want := []uint64{0, 2, 4}
	if len(spikeSteps) < len(want) {
		t.Fatalf("spike steps = %v, want at least %v", spikeSteps, want)
	}
	for i, w := range want {
		if spikeSteps[i] != w {
			t.Fatalf("spike steps = %v, want %v", spikeSteps, want)
		}
	}
	b.Stop()
}

// TestInhibitoryBlockSuppressesOnlyTargetedNeuron is scenario 2: a blocking
// impact targeting neuron 0 of a 2-neuron population suppresses its spiking
// for total_blocking_period steps while neuron 1 is unaffected.
func TestInhibitoryBlockSuppressesOnlyTargetedNeuron(t *testing.T) {
	p := population.New("Q", 2)
	n0 := tonicNeuron()
	n0.TotalBlockingPeriod = 3
	p.Neurons[0] = n0
	p.Neurons[1] = tonicNeuron()

	b := New(1)
	b.LoadPopulations([]*population.Population{p})
	b.Init()
	b.Start()

	ext := uid.New()
	b.Endpoint.SubscribeImpact(p.UID(), ext)

	for step := uint64(0); step < 3; step++ {
		impacts := []message.Impact{
			{PostIndex: 0, Value: 10, Kind: message.KindExcitatory},
			{PostIndex: 1, Value: 10, Kind: message.KindExcitatory},
		}
		if step == 0 {
			impacts = append(impacts, message.Impact{PostIndex: 0, Kind: message.KindBlocking})
		}
		b.Endpoint.SendMessage(message.SynapticImpactMessage{
			Header:  message.Header{SenderUID: ext, SendTime: step},
			Target:  p.UID(),
			Impacts: impacts,
		})
		b.Bus.RouteMessages()
		b.TickStep()

		for _, idx := range p.SpikeIndexes() {
			if idx == 0 {
				t.Fatalf("neuron 0 spiked at step %d while blocked", step)
			}
		}
	}
	if len(p.SpikeIndexes()) == 0 {
		t.Fatalf("neuron 1 never spiked despite being unaffected by the block")
	}
	b.Stop()
}
