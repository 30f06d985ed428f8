package vizserver

import (
	"github.com/katalvlaran/pairviz/geometry"
	"github.com/katalvlaran/pairviz/playback"
	"github.com/katalvlaran/pairviz/trace"
)

// Command names accepted on the websocket.
const (
	CmdPoints   = "points"
	CmdRandom   = "random"
	CmdStart    = "start"
	CmdPause    = "pause"
	CmdResume   = "resume"
	CmdForward  = "forward"
	CmdBackward = "backward"
	CmdReset    = "reset"
	CmdSpeed    = "speed"
	CmdInstant  = "instant"
)

// Message types sent to the client.
const (
	MsgSession  = "session"
	MsgPoints   = "points"
	MsgApply    = "apply"
	MsgReplay   = "replay"
	MsgState    = "state"
	MsgComplete = "complete"
	MsgResult   = "result"
	MsgError    = "error"
)

// Command is one client request.
type Command struct {
	Cmd     string           `json:"cmd"`
	Points  []geometry.Point `json:"points,omitempty"`
	Count   int              `json:"count,omitempty"`
	Seed    *int64           `json:"seed,omitempty"`
	SpeedMs *int             `json:"speed_ms,omitempty"`
}

// Result is the payload of result and complete messages and of /api/solve.
type Result struct {
	Pair      geometry.PairResult `json:"pair"`
	Distance  float64             `json:"distance"`
	ElapsedMs float64             `json:"elapsed_ms"`
}

// Message is one server frame. Only the fields relevant to Type are set.
type Message struct {
	Type    string                  `json:"type"`
	Session string                  `json:"session,omitempty"`
	Index   int                     `json:"index"`
	Step    *trace.Envelope         `json:"step,omitempty"`
	Steps   []trace.Envelope        `json:"steps,omitempty"`
	Text    string                  `json:"text,omitempty"`
	Points  []geometry.Point        `json:"points,omitempty"`
	State   *playback.PlaybackState `json:"state,omitempty"`
	Result  *Result                 `json:"result,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

// PointsRequest is the body of /api/solve and /api/trace.
type PointsRequest struct {
	Points []geometry.Point `json:"points"`
}

// TraceResponse is the body returned by /api/trace.
type TraceResponse struct {
	Steps  []trace.Envelope `json:"steps"`
	Result Result           `json:"result"`
}

func envelope(s trace.Step) trace.Envelope {
	return trace.Envelope{Kind: s.Kind(), Data: s}
}

func envelopes(steps []trace.Step) []trace.Envelope {
	out := make([]trace.Envelope, len(steps))
	for i, s := range steps {
		out[i] = envelope(s)
	}
	return out
}
