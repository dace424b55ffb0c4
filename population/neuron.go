// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package population holds the BLIFAT (bio-inspired leaky integrate-and-fire
// with adaptive threshold) neuron model: the per-neuron parameter record,
// the population store that owns a contiguous sequence of neurons, and the
// three-phase kernel (integrate, apply impacts, spike decision) that
// computes one simulation step for every neuron in a population.
package population

// Neuron is the BLIFAT per-neuron record. Unlike a shared population-level
// parameter block, every field here — decay constants included — lives on
// the individual neuron, so a population may be heterogeneous: parameters
// and dynamic state stay together on one struct rather than split across a
// population-level params type and a per-neuron state type.
type Neuron struct {
	// Dynamic state.
	Potential                 float64
	DynamicThreshold          float64
	PostsynapticTrace         float64
	InhibitoryConductance     float64
	NTimeStepsSinceLastFiring uint64
	BurstingPhase             uint64
	DopamineValue             float64
	PreImpactPotential        float64

	// BlockedUntil is the step number until which this neuron is blocked by
	// a "blocking"-kind impact (see Phase B); 0 means not blocked.
	BlockedUntil uint64

	// Decay / threshold / trace parameters.
	PotentialDecay                float64
	PotentialResetValue           float64
	MinPotential                  float64
	ActivationThreshold           float64
	ThresholdDecay                float64
	ThresholdIncrement            float64
	PostsynapticTraceDecay        float64
	PostsynapticTraceIncrement    float64
	InhibitoryConductanceDecay    float64
	ReversiveInhibitoryPotential  float64
	ReflexiveWeight               float64

	// Refractory / bursting / blocking parameters.
	AbsoluteRefractoryPeriod uint64
	BurstingPeriod           uint64
	TotalBlockingPeriod      int64
}

// Defaults sets the sentinel values: bursting_period == 0 disables
// bursting; absolute_refractory_period == 0 permits spiking every tick.
// All decay factors default to 1 (no decay) so a freshly constructed
// neuron is numerically inert until configured. NTimeStepsSinceLastFiring
// is seeded to the maximum uint64 value, not 0, so a neuron that has never
// fired is never mistaken for one still inside its refractory period.
func (n *Neuron) Defaults() {
	*n = Neuron{
		NTimeStepsSinceLastFiring:  ^uint64(0),
		PotentialDecay:             1,
		ThresholdDecay:             1,
		PostsynapticTraceDecay:     1,
		InhibitoryConductanceDecay: 1,
		ActivationThreshold:        1,
	}
}

// InRefractory reports whether the neuron is still within its absolute
// refractory period.
func (n *Neuron) InRefractory() bool {
	return n.NTimeStepsSinceLastFiring < n.AbsoluteRefractoryPeriod
}

// IsBlocked reports whether a prior blocking impact still suppresses
// spiking at currentStep.
func (n *Neuron) IsBlocked(currentStep uint64) bool {
	return n.BlockedUntil > currentStep
}
