// Package session drives one engine from a stream of JSON messages, one
// drawing session per websocket connection.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inamate/sketchboard/internal/engine"
)

// ErrUnknownMessage is returned for a message type the session does not handle.
var ErrUnknownMessage = errors.New("unknown message type")

// Session applies inbound messages to its engine in the order they are
// given. It is owned by a single goroutine.
type Session struct {
	ID     string
	engine *engine.Engine
	logger *slog.Logger

	viewport ViewportPayload
}

// New returns a session with a fresh engine built from opts.
func New(id string, logger *slog.Logger, opts ...engine.Option) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session", id)
	opts = append([]engine.Option{engine.WithLogger(logger)}, opts...)
	return &Session{
		ID:     id,
		engine: engine.New(opts...),
		logger: logger,
	}
}

func (s *Session) Engine() *engine.Engine { return s.engine }

// Apply decodes msg, runs it against the engine and returns the frame to
// send back.
func (s *Session) Apply(msg *Message) (*Message, error) {
	if err := s.dispatch(msg); err != nil {
		return nil, fmt.Errorf("%s: %w", msg.Type, err)
	}
	return s.Frame()
}

func (s *Session) dispatch(msg *Message) error {
	e := s.engine

	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp:
		var ev engine.PointerEvent
		if err := decode(msg.Payload, &ev); err != nil {
			return err
		}
		switch msg.Type {
		case TypePointerDown:
			return e.PointerDown(ev)
		case TypePointerMove:
			return e.PointerMove(ev)
		default:
			return e.PointerUp(ev)
		}

	case TypePointerLeave:
		e.PointerLeave()
		return nil

	case TypeWheel:
		var ev engine.WheelEvent
		if err := decode(msg.Payload, &ev); err != nil {
			return err
		}
		return e.Wheel(ev)

	case TypeTextCommit:
		var p TextCommitPayload
		if err := decode(msg.Payload, &p); err != nil {
			return err
		}
		return e.CommitText(p.Text, p.ScrollHeight)

	case TypeToolSet:
		var p ToolPayload
		if err := decode(msg.Payload, &p); err != nil {
			return err
		}
		tool, err := engine.ParseTool(p.Tool)
		if err != nil {
			return err
		}
		return e.SetTool(tool)

	case TypeZoomAdjust:
		var p ZoomPayload
		if err := decode(msg.Payload, &p); err != nil {
			return err
		}
		return e.AdjustZoom(p.Mode, p.Value, p.Center)

	case TypeImageInsert:
		var p ImageInsertPayload
		if err := decode(msg.Payload, &p); err != nil {
			return err
		}
		_, err := e.InsertImage(p.AssetID, p.Width, p.Height)
		return err

	case TypeBoardClear:
		e.Clear()
		return nil

	case TypeViewportResize:
		var p ViewportPayload
		if err := decode(msg.Payload, &p); err != nil {
			return err
		}
		s.viewport = p
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
}

func decode(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// Frame renders the board for the current viewport.
func (s *Session) Frame() (*Message, error) {
	return s.message(TypeFrame, FramePayload{
		Commands: s.engine.Render(s.viewport.Width, s.viewport.Height),
		State:    s.engine.State(),
	})
}

func (s *Session) Welcome() (*Message, error) {
	return s.message(TypeWelcome, WelcomePayload{SessionID: s.ID})
}

// ErrorMessage reports a failed inbound message back to the client.
func (s *Session) ErrorMessage(seq int64, err error) *Message {
	data, _ := json.Marshal(ErrorPayload{Message: err.Error(), Seq: seq})
	return &Message{Type: TypeError, SessionID: s.ID, Payload: data}
}

func (s *Session) message(typ string, payload any) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", typ, err)
	}
	return &Message{Type: typ, SessionID: s.ID, Payload: data}, nil
}
