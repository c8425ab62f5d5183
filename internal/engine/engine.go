// Package engine is the whiteboard's interaction state machine. It turns
// pointer, wheel and text-commit events into element and camera changes and
// answers the queries a front end needs to draw the board.
//
// An Engine is single-threaded: events must be delivered one at a time, in
// arrival order, by the goroutine that owns it.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/inamate/sketchboard/internal/camera"
	"github.com/inamate/sketchboard/internal/element"
	"github.com/inamate/sketchboard/internal/freehand"
	"github.com/inamate/sketchboard/internal/geom"
	"github.com/inamate/sketchboard/internal/hittest"
)

// Engine owns the elements, the camera and the gesture in progress.
type Engine struct {
	store  *element.Store
	camera camera.Camera

	tool    Tool
	action  Action
	gesture gesture

	// Settings
	scrollSensitivity float64
	scrollReversed    bool
	smoothZoom        bool
	hitTolerance      float64
	gridSize          float64
	font              element.Font
	stroke            freehand.StrokeOptions

	logger *slog.Logger
}

// gesture is the bookkeeping for one pointer-down to pointer-up cycle. It is
// reset when the gesture ends; the last pointer position survives.
type gesture struct {
	left, middle, right bool

	// pointer is the last known screen position.
	pointer geom.Point

	// elementID is the element being drawn, moved or typed into.
	elementID string
	// grab is the pointer's world offset from the moved element's anchor.
	grab geom.Point

	panAnchor geom.Point
	panZoom   float64
}

func (g *gesture) press(b Button, down bool) {
	switch b {
	case ButtonPrimary:
		g.left = down
	case ButtonMiddle:
		g.middle = down
	case ButtonSecondary:
		g.right = down
	}
}

func (g *gesture) release() {
	g.left, g.middle, g.right = false, false, false
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. By default the engine logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithFactory sets the factory elements are derived with.
func WithFactory(f *element.Factory) Option {
	return func(e *Engine) { e.store = element.NewStore(f) }
}

// WithScrollSensitivity sets the zoom change per unit of wheel delta.
func WithScrollSensitivity(s float64) Option {
	return func(e *Engine) { e.scrollSensitivity = s }
}

// WithScrollReversed makes scrolling down zoom in.
func WithScrollReversed(reversed bool) Option {
	return func(e *Engine) { e.scrollReversed = reversed }
}

// WithSmoothZoom selects proportional wheel zoom (true) or fixed ×1.1/×0.9
// steps per wheel event (false).
func WithSmoothZoom(smooth bool) Option {
	return func(e *Engine) { e.smoothZoom = smooth }
}

// WithHitTolerance sets the pick distance for lines and strokes in screen
// pixels.
func WithHitTolerance(px float64) Option {
	return func(e *Engine) { e.hitTolerance = px }
}

// WithGridSize sets the background grid spacing in world units. Zero hides
// the grid.
func WithGridSize(size float64) Option {
	return func(e *Engine) { e.gridSize = size }
}

// WithFont sets the font new text elements are created with.
func WithFont(f element.Font) Option {
	return func(e *Engine) { e.font = f }
}

// WithStrokeOptions sets the outline options for new freedraw elements.
func WithStrokeOptions(o freehand.StrokeOptions) Option {
	return func(e *Engine) { e.stroke = o }
}

// New creates an idle engine with the selection tool active.
func New(opts ...Option) *Engine {
	e := &Engine{
		store:             element.NewStore(nil),
		camera:            camera.New(),
		tool:              ToolSelection,
		action:            ActionIdle,
		scrollSensitivity: 0.0005,
		smoothZoom:        true,
		hitTolerance:      hittest.DefaultTolerance,
		gridSize:          20,
		font:              element.DefaultFont,
		stroke:            freehand.DefaultStrokeOptions,
		logger:            newNopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// fail logs err and returns it wrapped with op.
func (e *Engine) fail(op string, err error) error {
	err = fmt.Errorf("%s: %w", op, err)
	e.logger.Error("engine event failed",
		"error", err,
		"action", e.action,
		"tool", e.tool,
		"element", e.gesture.elementID,
	)
	return err
}

// --- Queries ---

func (e *Engine) Action() Action { return e.action }

func (e *Engine) Tool() Tool { return e.tool }

func (e *Engine) Camera() camera.Camera { return e.camera }

// Elements returns every element in paint order.
func (e *Engine) Elements() []element.Element { return e.store.Ordered() }

func (e *Engine) Element(id string) (element.Element, bool) { return e.store.Get(id) }

// Manipulating returns the id of the element the current gesture is
// drawing, moving or typing into, or "".
func (e *Engine) Manipulating() string { return e.gesture.elementID }

// HitTest returns the topmost element under a screen point.
func (e *Engine) HitTest(screen geom.Point) (element.Element, bool, error) {
	return e.hitWorld(e.camera.ScreenToWorld(screen))
}

func (e *Engine) hitWorld(world geom.Point) (element.Element, bool, error) {
	// The tolerance is in screen pixels, so it shrinks in world units as
	// the view zooms in.
	opts := hittest.Options{Tolerance: e.hitTolerance / e.camera.Zoom}
	return hittest.At(world, e.store.Ordered(), opts)
}

// Cursor returns the pointer cursor for the last known pointer position.
func (e *Engine) Cursor() Cursor {
	switch e.action {
	case ActionPanning:
		return CursorGrabbing
	case ActionMoving:
		return CursorMove
	case ActionTyping:
		return CursorText
	}
	switch e.tool {
	case ToolPan:
		return CursorGrab
	case ToolSelection:
		if _, ok, err := e.HitTest(e.gesture.pointer); err == nil && ok {
			return CursorMove
		}
		return CursorDefault
	case ToolText:
		return CursorText
	}
	return CursorCrosshair
}

// TextEditor says where the text-input overlay goes while typing.
type TextEditor struct {
	ElementID string     `json:"elementId"`
	Position  geom.Point `json:"position"` // screen position of the top-left corner
	Scale     float64    `json:"scale"`
	Font      string     `json:"font"`
	Text      string     `json:"text"`
}

// TextEditor returns the overlay placement, or false when not typing.
func (e *Engine) TextEditor() (TextEditor, bool) {
	if e.action != ActionTyping {
		return TextEditor{}, false
	}
	el, ok := e.store.Get(e.gesture.elementID)
	if !ok {
		return TextEditor{}, false
	}
	txt, ok := el.Shape.(element.Text)
	if !ok {
		return TextEditor{}, false
	}
	return TextEditor{
		ElementID: el.ID,
		Position:  e.camera.WorldToScreen(el.Anchor()),
		Scale:     e.camera.Zoom,
		Font:      txt.Font.String(),
		Text:      txt.Text.RawText,
	}, true
}

// MeasureTextInput measures text as the overlay is typing it, in unscaled
// font units, so the overlay can grow with its content.
func (e *Engine) MeasureTextInput(text string) (element.Metrics, error) {
	font := e.font
	if ed, ok := e.store.Get(e.gesture.elementID); ok {
		if txt, ok := ed.Shape.(element.Text); ok {
			font = txt.Font
		}
	}
	m, err := e.store.Factory().Measure(text, font)
	if err != nil {
		return element.Metrics{}, fmt.Errorf("measure text input: %w", err)
	}
	return m, nil
}

// State is a snapshot of the engine for a front end.
type State struct {
	Action      Action        `json:"action"`
	Tool        Tool          `json:"tool"`
	Camera      camera.Camera `json:"camera"`
	ZoomPercent int           `json:"zoomPercent"`
	Cursor      Cursor        `json:"cursor"`
	TextEditor  *TextEditor   `json:"textEditor,omitempty"`
}

func (e *Engine) State() State {
	s := State{
		Action:      e.action,
		Tool:        e.tool,
		Camera:      e.camera,
		ZoomPercent: e.camera.ZoomPercent(),
		Cursor:      e.Cursor(),
	}
	if ed, ok := e.TextEditor(); ok {
		s.TextEditor = &ed
	}
	return s
}
