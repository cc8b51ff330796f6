package proto

// PanelDrawPayload encodes a MsgPanelDraw payload.
//
// Layout:
//   - u8: top row length
//   - bytes: top row text
//   - u8: bottom row length
//   - bytes: bottom row text
//
// Rows longer than the panel width are clipped by the panel service.
func PanelDrawPayload(top, bottom string) []byte {
	if len(top) > 255 {
		top = top[:255]
	}
	if len(bottom) > 255 {
		bottom = bottom[:255]
	}
	buf := make([]byte, 0, 2+len(top)+len(bottom))
	buf = append(buf, uint8(len(top)))
	buf = append(buf, top...)
	buf = append(buf, uint8(len(bottom)))
	buf = append(buf, bottom...)
	return buf
}

// DecodePanelDrawPayload decodes a PanelDrawPayload.
func DecodePanelDrawPayload(payload []byte) (top, bottom string, ok bool) {
	if len(payload) < 1 {
		return "", "", false
	}
	n := int(payload[0])
	if len(payload) < 1+n+1 {
		return "", "", false
	}
	top = string(payload[1 : 1+n])
	rest := payload[1+n:]
	m := int(rest[0])
	if len(rest) < 1+m {
		return "", "", false
	}
	bottom = string(rest[1 : 1+m])
	return top, bottom, true
}
