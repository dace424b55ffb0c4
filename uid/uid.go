// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uid provides a stable, opaque, 128-bit identifier for every
// network entity (population, projection, input channel, output channel,
// backend instance), plus a tag map for entity diagnostics metadata.
package uid

import (
	"fmt"

	"github.com/google/uuid"
)

// UID is a 128-bit opaque identifier, comparable and hashable, suitable for
// use as a map key. The zero value is not a valid UID; use New or Parse.
type UID struct {
	v uuid.UUID
}

// New returns a freshly generated, random UID.
func New() UID {
	return UID{v: uuid.New()}
}

// Parse decodes the canonical string form of a UID (as produced by String).
func Parse(s string) (UID, error) {
	v, err := uuid.Parse(s)
	if err != nil {
		return UID{}, fmt.Errorf("uid: parse %q: %w", s, err)
	}
	return UID{v: v}, nil
}

// IsZero reports whether u is the zero UID (never returned by New).
func (u UID) IsZero() bool {
	return u.v == uuid.Nil
}

// String returns the canonical hyphenated hex representation.
func (u UID) String() string {
	return u.v.String()
}

// Bytes returns the 16-byte big-endian encoding used by the envelope codec
// (see package message).
func (u UID) Bytes() [16]byte {
	return u.v
}

// FromBytes reconstructs a UID from its 16-byte encoding.
func FromBytes(b [16]byte) UID {
	return UID{v: uuid.UUID(b)}
}
