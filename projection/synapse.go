// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package projection holds the delta synapse record, the projection store
// (forward index plus pending-impact queue), the delta kernel that turns
// presynaptic spikes into delayed impacts, and the additive-STDP plasticity
// kernel that wraps a delta synapse with spike-time bookkeeping.
package projection

import "github.com/nspike/nspike/message"

// Synapse is a delta synapse: its impact at delivery time is a single
// weighted pulse with no further temporal shape. PreIndex and PostIndex are
// neuron indexes into the projection's presynaptic and postsynaptic
// populations, respectively.
type Synapse struct {
	PreIndex  uint32
	PostIndex uint32
	Weight    float32
	Delay     uint64
	Kind      message.Kind
}
