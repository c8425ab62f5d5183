package session

import (
	"encoding/json"

	"github.com/inamate/sketchboard/internal/camera"
	"github.com/inamate/sketchboard/internal/engine"
	"github.com/inamate/sketchboard/internal/geom"
)

type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Inbound
	TypePointerDown    = "pointer.down"
	TypePointerMove    = "pointer.move"
	TypePointerUp      = "pointer.up"
	TypePointerLeave   = "pointer.leave"
	TypeWheel          = "wheel"
	TypeTextCommit     = "text.commit"
	TypeToolSet        = "tool.set"
	TypeZoomAdjust     = "zoom.adjust"
	TypeImageInsert    = "image.insert"
	TypeBoardClear     = "board.clear"
	TypeViewportResize = "viewport.resize"

	// Outbound
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeError   = "error"
)

type TextCommitPayload struct {
	Text         string  `json:"text"`
	ScrollHeight float64 `json:"scrollHeight"`
}

type ToolPayload struct {
	Tool string `json:"tool"`
}

type ZoomPayload struct {
	Mode   camera.ZoomMode `json:"mode"`
	Value  float64         `json:"value"`
	Center *geom.Point     `json:"center,omitempty"`
}

type ImageInsertPayload struct {
	AssetID string  `json:"assetId"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

type ViewportPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type WelcomePayload struct {
	SessionID string `json:"sessionId"`
}

// FramePayload is everything a front end needs to redraw after an event.
type FramePayload struct {
	Commands []engine.DrawCommand `json:"commands"`
	State    engine.State         `json:"state"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	// Seq echoes the inbound message that failed.
	Seq int64 `json:"seq,omitempty"`
}
