package proto

// Frame markers of the board link protocol. A frame is FrameStart, one or
// two payload score bytes, FrameEnd.
const (
	FrameStart = '<'
	FrameEnd   = '>'
)

// Capture signal bytes, one per fusion sweep on the outbound link.
const (
	CaptureOn  = '1'
	CaptureOff = '0'
)

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgLinkSubscribe
	MsgLinkWrite
	MsgLinkData
	MsgScorePair
	MsgWindowSnapshot
	MsgPanelDraw
	MsgPanelClear
	MsgCaptureEdge
	MsgLinkStats
	MsgVerdictStatus
)

func (k Kind) String() string {
	switch k {
	case MsgLogLine:
		return "log_line"
	case MsgLinkSubscribe:
		return "link_subscribe"
	case MsgLinkWrite:
		return "link_write"
	case MsgLinkData:
		return "link_data"
	case MsgScorePair:
		return "score_pair"
	case MsgWindowSnapshot:
		return "window_snapshot"
	case MsgPanelDraw:
		return "panel_draw"
	case MsgPanelClear:
		return "panel_clear"
	case MsgCaptureEdge:
		return "capture_edge"
	case MsgLinkStats:
		return "link_stats"
	case MsgVerdictStatus:
		return "verdict_status"
	default:
		return "unknown"
	}
}
