package assess

// ScorePair carries one classification result from the vision board.
//
// Both confidences are independent model outputs in [0, 1]; they are not
// required to sum to 1.
type ScorePair struct {
	Person   float32
	NoPerson float32
}

// ScoreFromByte maps a signed score byte onto a confidence in [0, 1].
//
// The wire byte is interpreted as int8, so 0x80 (-128) maps to 0.0 and
// 0x7F (127) maps to 1.0.
func ScoreFromByte(b byte) float32 {
	return float32(int(int8(b))+128) / 255
}

// ByteFromScore is the inverse of ScoreFromByte, clamping to [0, 1].
func ByteFromScore(s float32) byte {
	if s < 0 {
		s = 0
	}
	if s > 1 {
		s = 1
	}
	v := int(s*255 + 0.5)
	return byte(int8(v - 128))
}

// PairFromPayload decodes a frame payload into a score pair.
//
// A single-byte payload is the legacy format: only the person confidence is
// transmitted and the no-person confidence is derived as its complement.
// A two-byte payload carries both confidences.
func PairFromPayload(payload []byte) (ScorePair, bool) {
	switch len(payload) {
	case 1:
		p := ScoreFromByte(payload[0])
		return ScorePair{Person: p, NoPerson: 1 - p}, true
	case 2:
		return ScorePair{
			Person:   ScoreFromByte(payload[0]),
			NoPerson: ScoreFromByte(payload[1]),
		}, true
	default:
		return ScorePair{}, false
	}
}
