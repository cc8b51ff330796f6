package proto

import (
	"encoding/binary"
	"math"
)

// ScorePairPayload encodes a MsgScorePair payload.
//
// Layout (little-endian):
//   - f32: person score
//   - f32: no-person score
func ScorePairPayload(person, noPerson float32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(person))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(noPerson))
	return buf
}

// DecodeScorePairPayload decodes a ScorePairPayload.
func DecodeScorePairPayload(payload []byte) (person, noPerson float32, ok bool) {
	if len(payload) < 8 {
		return 0, 0, false
	}
	person = math.Float32frombits(binary.LittleEndian.Uint32(payload[0:4]))
	noPerson = math.Float32frombits(binary.LittleEndian.Uint32(payload[4:8]))
	return person, noPerson, true
}
