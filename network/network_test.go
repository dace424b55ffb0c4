// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package network

import (
	"strings"
	"testing"

	"github.com/nspike/nspike/message"
	"github.com/nspike/nspike/population"
	"github.com/nspike/nspike/projection"
	"github.com/nspike/nspike/uid"
)

func TestIsPopulationAndProjectionExists(t *testing.T) {
	n := New(1)
	p := population.New("P", 1)
	pr := projection.New(p.UID(), p.UID())
	pr.Build([]projection.Synapse{{PreIndex: 0, PostIndex: 0, Weight: 1, Delay: 1}}, 1, 1)

	n.LoadPopulations([]*population.Population{p})
	n.LoadProjections([]*projection.Projection{pr})

	if !n.IsPopulationExists(p.UID()) {
		t.Fatalf("expected population to exist")
	}
	if !n.IsProjectionExists(pr.UID()) {
		t.Fatalf("expected projection to exist")
	}
	if n.IsPopulationExists(uid.New()) {
		t.Fatalf("random uid should not exist")
	}
	if n.IsProjectionExists(uid.New()) {
		t.Fatalf("random uid should not exist")
	}
}

func TestObserveSpikesReceivesEmittedSpikes(t *testing.T) {
	n := New(1)
	p := population.New("P", 1)
	var neuron population.Neuron
	neuron.Defaults()
	neuron.ActivationThreshold = 1
	neuron.MinPotential = -1000
	p.Neurons[0] = neuron

	n.LoadPopulations([]*population.Population{p})
	n.Init()
	n.Start()

	drain := n.ObserveSpikes(p.UID())

	ext := uid.New()
	n.Backend.Endpoint.SubscribeImpact(p.UID(), ext)
	n.Backend.Endpoint.SendMessage(message.SynapticImpactMessage{
		Header:  message.Header{SenderUID: ext, SendTime: 0},
		Target:  p.UID(),
		Impacts: []message.Impact{{PostIndex: 0, Value: 2, Kind: message.KindExcitatory}},
	})
	n.Backend.Bus.RouteMessages()
	n.Step()

	got := drain()
	if len(got) != 1 || len(got[0].NeuronIndexes) != 1 || got[0].NeuronIndexes[0] != 0 {
		t.Fatalf("observed spikes = %v, want one spike message naming neuron 0", got)
	}
	n.Stop()
}

func TestSizeReportMentionsTotals(t *testing.T) {
	n := New(1)
	p := population.New("P", 4)
	n.LoadPopulations([]*population.Population{p})
	report := n.SizeReport()
	if !strings.Contains(report, "Total:") {
		t.Fatalf("size report %q missing totals line", report)
	}
}
