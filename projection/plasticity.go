// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package projection

import "github.com/goki/mat32"

// ProcessingMode classifies how a projection treats spike messages from one
// sender population when additive STDP is enabled.
type ProcessingMode uint8

const (
	// SpikeOnly feeds the message straight to the delta kernel; no spike
	// history is recorded for it.
	SpikeOnly ProcessingMode = iota
	// STDPOnly records spike history but clears the message's neuron-index
	// list afterward, so the delta kernel delivers no impact for it.
	STDPOnly
	// STDPAndSpike records spike history and still feeds the delta kernel.
	STDPAndSpike
)

// PlasticityRule is the additive-STDP rule parameterization: symmetric
// exponential kernel with window half-widths tau_plus/tau_minus and
// amplitudes a_plus/a_minus.
type PlasticityRule struct {
	TauPlus, TauMinus uint64
	APlus, AMinus     float32
}

// Period is the number of spike-time entries each queue must reach before a
// weight update may fire.
func (r PlasticityRule) Period() uint64 { return r.TauPlus + r.TauMinus }

// kernel evaluates K(d): the a_plus branch is used at d == 0.
func (r PlasticityRule) kernel(d int64) float32 {
	if d > 0 {
		return r.APlus * mat32.Exp(-float32(d)/float32(r.TauPlus))
	}
	return r.AMinus * mat32.Exp(float32(d)/float32(r.TauMinus))
}

// synapseHistory holds one STDP-wrapped synapse's ordered spike-time
// queues, each capped at the rule's Period so stale entries fall off the
// front as new ones arrive.
type synapseHistory struct {
	PreTimes  []uint64
	PostTimes []uint64
}

func appendCapped(q []uint64, t uint64, capacity uint64) []uint64 {
	q = append(q, t)
	if capacity > 0 && uint64(len(q)) > capacity {
		q = q[uint64(len(q))-capacity:]
	}
	return q
}
