// Copyright (c) 2024, The NSpike Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package message

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/nspike/nspike/uid"
)

// envelopeTag is the one-byte kind discriminator that opens every packed
// envelope.
type envelopeTag uint8

const (
	tagSpikeMessage          envelopeTag = 0
	tagSynapticImpactMessage envelopeTag = 1
)

// PackToEnvelope encodes m as a self-describing little-endian byte
// sequence: one kind-tag byte, followed by the kind's fixed layout.
// ExtractFromEnvelope(PackToEnvelope(v)) == v for all valid v.
func PackToEnvelope(m Message) ([]byte, error) {
	switch v := m.(type) {
	case SpikeMessage:
		return packSpike(v), nil
	case SynapticImpactMessage:
		return packImpact(v), nil
	default:
		return nil, fmt.Errorf("message: pack to envelope: unsupported message type %T", m)
	}
}

// ExtractFromEnvelope decodes a byte sequence produced by PackToEnvelope.
func ExtractFromEnvelope(buf []byte) (Message, error) {
	if len(buf) < 1 {
		return nil, fmt.Errorf("message: extract from envelope: empty buffer")
	}
	switch envelopeTag(buf[0]) {
	case tagSpikeMessage:
		return unpackSpike(buf[1:])
	case tagSynapticImpactMessage:
		return unpackImpact(buf[1:])
	default:
		return nil, fmt.Errorf("message: extract from envelope: unknown kind tag %d", buf[0])
	}
}

func packSpike(m SpikeMessage) []byte {
	n := len(m.NeuronIndexes)
	buf := make([]byte, 1+16+8+4+4*n)
	off := 0
	buf[off] = byte(tagSpikeMessage)
	off++
	off += putUID(buf[off:], m.SenderUID)
	binary.LittleEndian.PutUint64(buf[off:], m.SendTime)
	off += 8
	binary.LittleEndian.PutUint32(buf[off:], uint32(n))
	off += 4
	for _, idx := range m.NeuronIndexes {
		binary.LittleEndian.PutUint32(buf[off:], idx)
		off += 4
	}
	return buf
}

func unpackSpike(buf []byte) (SpikeMessage, error) {
	const fixed = 16 + 8 + 4
	if len(buf) < fixed {
		return SpikeMessage{}, fmt.Errorf("message: spike envelope: short buffer (%d bytes)", len(buf))
	}
	off := 0
	sender, off2 := getUID(buf[off:])
	off += off2
	sendTime := binary.LittleEndian.Uint64(buf[off:])
	off += 8
	n := binary.LittleEndian.Uint32(buf[off:])
	off += 4
	if len(buf) < off+4*int(n) {
		return SpikeMessage{}, fmt.Errorf("message: spike envelope: short buffer for %d indexes", n)
	}
	idxs := make([]uint32, n)
	for i := range idxs {
		idxs[i] = binary.LittleEndian.Uint32(buf[off:])
		off += 4
	}
	return SpikeMessage{
		Header:        Header{SenderUID: sender, SendTime: sendTime},
		NeuronIndexes: idxs,
	}, nil
}

func packImpact(m SynapticImpactMessage) []byte {
	n := len(m.Impacts)
	const impactSize = 4 + 4 + 4 + 1
	buf := make([]byte, 1+16+8+16+4+impactSize*n)
	off := 0
	buf[off] = byte(tagSynapticImpactMessage)
	off++
	off += putUID(buf[off:], m.SenderUID)
	binary.LittleEndian.PutUint64(buf[off:], m.SendTime)
	off += 8
	off += putUID(buf[off:], m.Target)
	binary.LittleEndian.PutUint32(buf[off:], uint32(n))
	off += 4
	for _, imp := range m.Impacts {
		binary.LittleEndian.PutUint32(buf[off:], imp.PreIndex)
		off += 4
		binary.LittleEndian.PutUint32(buf[off:], imp.PostIndex)
		off += 4
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(imp.Value))
		off += 4
		buf[off] = byte(imp.Kind)
		off++
	}
	return buf
}

func unpackImpact(buf []byte) (SynapticImpactMessage, error) {
	const fixed = 16 + 8 + 16 + 4
	if len(buf) < fixed {
		return SynapticImpactMessage{}, fmt.Errorf("message: impact envelope: short buffer (%d bytes)", len(buf))
	}
	off := 0
	sender, n1 := getUID(buf[off:])
	off += n1
	sendTime := binary.LittleEndian.Uint64(buf[off:])
	off += 8
	target, n2 := getUID(buf[off:])
	off += n2
	n := binary.LittleEndian.Uint32(buf[off:])
	off += 4
	const impactSize = 4 + 4 + 4 + 1
	if len(buf) < off+impactSize*int(n) {
		return SynapticImpactMessage{}, fmt.Errorf("message: impact envelope: short buffer for %d impacts", n)
	}
	impacts := make([]Impact, n)
	for i := range impacts {
		pre := binary.LittleEndian.Uint32(buf[off:])
		off += 4
		post := binary.LittleEndian.Uint32(buf[off:])
		off += 4
		val := math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
		off += 4
		kind := Kind(buf[off])
		off++
		impacts[i] = Impact{PreIndex: pre, PostIndex: post, Value: val, Kind: kind}
	}
	return SynapticImpactMessage{
		Header:  Header{SenderUID: sender, SendTime: sendTime},
		Target:  target,
		Impacts: impacts,
	}, nil
}

func putUID(dst []byte, u uid.UID) int {
	b := u.Bytes()
	copy(dst, b[:])
	return 16
}

func getUID(src []byte) (uid.UID, int) {
	var b [16]byte
	copy(b[:], src[:16])
	return uid.FromBytes(b), 16
}
