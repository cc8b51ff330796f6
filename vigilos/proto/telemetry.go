package proto

import (
	"encoding/binary"
	"math"
)

// CaptureEdgePayload encodes a MsgCaptureEdge payload.
//
// Layout (little-endian):
//   - u16: distance in centimeters
//   - u8: motion flag (0/1)
//   - u8: capture gate open (0/1)
func CaptureEdgePayload(distanceCm uint16, motion, open bool) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint16(buf[0:2], distanceCm)
	if motion {
		buf[2] = 1
	}
	if open {
		buf[3] = 1
	}
	return buf
}

// DecodeCaptureEdgePayload decodes a CaptureEdgePayload.
func DecodeCaptureEdgePayload(payload []byte) (distanceCm uint16, motion, open bool, ok bool) {
	if len(payload) < 4 {
		return 0, false, false, false
	}
	distanceCm = binary.LittleEndian.Uint16(payload[0:2])
	return distanceCm, payload[2] != 0, payload[3] != 0, true
}

// LinkStatsPayload encodes a MsgLinkStats payload.
//
// Layout (little-endian):
//   - u32: frames decoded
//   - u32: frames dropped on hand-off timeout
//   - u32: frames discarded as corrupt
//   - u32: bytes discarded outside frames
func LinkStatsPayload(decoded, dropped, corrupt, discardedBytes uint32) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint32(buf[0:4], decoded)
	binary.LittleEndian.PutUint32(buf[4:8], dropped)
	binary.LittleEndian.PutUint32(buf[8:12], corrupt)
	binary.LittleEndian.PutUint32(buf[12:16], discardedBytes)
	return buf
}

// DecodeLinkStatsPayload decodes a LinkStatsPayload.
func DecodeLinkStatsPayload(payload []byte) (decoded, dropped, corrupt, discardedBytes uint32, ok bool) {
	if len(payload) < 16 {
		return 0, 0, 0, 0, false
	}
	decoded = binary.LittleEndian.Uint32(payload[0:4])
	dropped = binary.LittleEndian.Uint32(payload[4:8])
	corrupt = binary.LittleEndian.Uint32(payload[8:12])
	discardedBytes = binary.LittleEndian.Uint32(payload[12:16])
	return decoded, dropped, corrupt, discardedBytes, true
}

// VerdictStatusPayload encodes a MsgVerdictStatus payload.
//
// Layout (little-endian):
//   - u8: verdict code
//   - f32: person window mean
//   - f32: no-person window mean
//   - u8: person window length
//   - u8: no-person window length
func VerdictStatusPayload(verdict uint8, meanPerson, meanNoPerson float32, lenPerson, lenNoPerson uint8) []byte {
	buf := make([]byte, 11)
	buf[0] = verdict
	binary.LittleEndian.PutUint32(buf[1:5], math.Float32bits(meanPerson))
	binary.LittleEndian.PutUint32(buf[5:9], math.Float32bits(meanNoPerson))
	buf[9] = lenPerson
	buf[10] = lenNoPerson
	return buf
}

// DecodeVerdictStatusPayload decodes a VerdictStatusPayload.
func DecodeVerdictStatusPayload(payload []byte) (verdict uint8, meanPerson, meanNoPerson float32, lenPerson, lenNoPerson uint8, ok bool) {
	if len(payload) < 11 {
		return 0, 0, 0, 0, 0, false
	}
	verdict = payload[0]
	meanPerson = math.Float32frombits(binary.LittleEndian.Uint32(payload[1:5]))
	meanNoPerson = math.Float32frombits(binary.LittleEndian.Uint32(payload[5:9]))
	return verdict, meanPerson, meanNoPerson, payload[9], payload[10], true
}
