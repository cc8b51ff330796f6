package proto

import (
	"encoding/binary"
	"math"
)

// MaxWindowValues caps the per-window value count in a MsgWindowSnapshot.
const MaxWindowValues = 15

// WindowSnapshotPayload encodes a MsgWindowSnapshot payload.
//
// Layout (little-endian):
//   - u8: person value count
//   - u8: no-person value count
//   - f32 x count: person values, oldest first
//   - f32 x count: no-person values, oldest first
func WindowSnapshotPayload(person, noPerson []float32) []byte {
	if len(person) > MaxWindowValues {
		person = person[:MaxWindowValues]
	}
	if len(noPerson) > MaxWindowValues {
		noPerson = noPerson[:MaxWindowValues]
	}
	buf := make([]byte, 2+4*(len(person)+len(noPerson)))
	buf[0] = uint8(len(person))
	buf[1] = uint8(len(noPerson))
	off := 2
	for _, v := range person {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		off += 4
	}
	for _, v := range noPerson {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(v))
		off += 4
	}
	return buf
}

// DecodeWindowSnapshotPayload decodes a WindowSnapshotPayload.
func DecodeWindowSnapshotPayload(payload []byte) (person, noPerson []float32, ok bool) {
	if len(payload) < 2 {
		return nil, nil, false
	}
	na := int(payload[0])
	nb := int(payload[1])
	if na > MaxWindowValues || nb > MaxWindowValues {
		return nil, nil, false
	}
	if len(payload) < 2+4*(na+nb) {
		return nil, nil, false
	}
	off := 2
	person = make([]float32, na)
	for i := range person {
		person[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[off : off+4]))
		off += 4
	}
	noPerson = make([]float32, nb)
	for i := range noPerson {
		noPerson[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[off : off+4]))
		off += 4
	}
	return person, noPerson, true
}
