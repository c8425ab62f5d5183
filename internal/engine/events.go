package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/inamate/sketchboard/internal/camera"
	"github.com/inamate/sketchboard/internal/element"
	"github.com/inamate/sketchboard/internal/geom"
)

// ErrNotTyping is returned by CommitText when no text element is being edited.
var ErrNotTyping = errors.New("no text being edited")

// PointerEvent is a normalised mouse or single-touch event in screen
// coordinates.
type PointerEvent struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Button Button  `json:"button"`
}

func (ev PointerEvent) point() geom.Point { return geom.Pt(ev.X, ev.Y) }

type WheelEvent struct {
	DeltaY float64 `json:"deltaY"`
}

// PointerDown starts a gesture according to the active tool.
func (e *Engine) PointerDown(ev PointerEvent) error {
	pt := ev.point()
	e.gesture.press(ev.Button, true)
	e.gesture.pointer = pt

	if e.action == ActionTyping {
		return nil
	}

	if e.tool == ToolPan || e.gesture.middle {
		e.action = ActionPanning
		e.gesture.panAnchor = e.camera.PanAnchor(pt)
		e.gesture.panZoom = e.camera.Zoom
		return nil
	}

	if !e.gesture.left {
		return nil
	}

	world := e.camera.ScreenToWorld(pt)

	if e.tool == ToolSelection {
		el, ok, err := e.hitWorld(world)
		if err != nil {
			return e.fail("select", err)
		}
		if ok {
			e.begin(ActionMoving, el.ID)
			e.gesture.grab = world.Sub(el.Anchor())
		}
		return nil
	}

	if kind, ok := e.tool.shapeKind(); ok {
		p := element.Params{Coords: []geom.Point{world, world}}
		if kind == element.KindFreedraw {
			stroke := e.stroke
			p = element.Params{Coords: []geom.Point{world}, Stroke: &stroke}
		}
		el, err := e.store.Create(kind, p)
		if err != nil {
			return e.fail("start drawing", err)
		}
		e.begin(ActionDrawing, el.ID)
		return nil
	}

	if e.tool == ToolText {
		// The text tool is one-shot.
		e.tool = ToolSelection
		font := e.font
		el, err := e.store.Create(element.KindText, element.Params{
			Coords: []geom.Point{world},
			Font:   &font,
		})
		if err != nil {
			return e.fail("start typing", err)
		}
		e.begin(ActionTyping, el.ID)
	}
	return nil
}

// PointerMove advances the gesture in progress.
func (e *Engine) PointerMove(ev PointerEvent) error {
	pt := ev.point()
	e.gesture.pointer = pt

	switch e.action {
	case ActionPanning:
		e.camera.PanTo(pt, e.gesture.panAnchor, e.gesture.panZoom)

	case ActionDrawing:
		el, ok := e.store.Get(e.gesture.elementID)
		if !ok {
			return e.abandon("draw")
		}
		world := e.camera.ScreenToWorld(pt)
		var coords []geom.Point
		if el.Kind() == element.KindFreedraw {
			coords = append(slices.Clone(el.Coords), world)
		} else {
			coords = []geom.Point{el.Coords[0], world}
		}
		if _, err := e.store.Update(el.ID, element.Patch{Coords: coords}); err != nil {
			return e.fail("draw", err)
		}

	case ActionMoving:
		el, ok := e.store.Get(e.gesture.elementID)
		if !ok {
			return e.abandon("move")
		}
		world := e.camera.ScreenToWorld(pt)
		delta := world.Sub(e.gesture.grab).Sub(el.Anchor())
		if _, err := e.store.Update(el.ID, element.Patch{Coords: el.Translated(delta)}); err != nil {
			return e.fail("move", err)
		}
	}
	return nil
}

// PointerUp finishes a drawing, moving or panning gesture. It does nothing
// while typing; text is finished by CommitText.
func (e *Engine) PointerUp(ev PointerEvent) error {
	e.gesture.press(ev.Button, false)
	e.gesture.pointer = ev.point()
	if e.action == ActionTyping {
		return nil
	}
	e.end()
	return nil
}

// PointerLeave handles the pointer leaving the canvas. Button state is
// dropped. A drawing or moving gesture ends where it was last seen, as if the
// button had been released there. Panning and typing carry on.
func (e *Engine) PointerLeave() {
	e.gesture.release()
	if e.action == ActionDrawing || e.action == ActionMoving {
		e.end()
	}
}

// Wheel zooms about the last pointer position.
func (e *Engine) Wheel(ev WheelEvent) error {
	if e.action == ActionPanning || e.action == ActionTyping {
		return nil
	}

	if e.smoothZoom {
		inc := -ev.DeltaY * e.scrollSensitivity
		if e.scrollReversed {
			inc = -inc
		}
		return e.AdjustZoom(camera.ZoomIncrement, inc, nil)
	}

	const step = 0.1
	switch {
	case ev.DeltaY < 0:
		return e.AdjustZoom(camera.ZoomMultiply, 1+step, nil)
	case ev.DeltaY > 0:
		return e.AdjustZoom(camera.ZoomMultiply, 1-step, nil)
	}
	return nil
}

// AdjustZoom changes the zoom keeping center, a screen point, fixed. A nil
// center means the last known pointer position.
func (e *Engine) AdjustZoom(mode camera.ZoomMode, value float64, center *geom.Point) error {
	c := e.gesture.pointer
	if center != nil {
		c = *center
	}
	if err := e.camera.AdjustZoom(mode, value, c); err != nil {
		return e.fail("adjust zoom", err)
	}
	return nil
}

// CommitText finishes typing. Blank text deletes the element. Otherwise the
// text is stored with a line height derived from the overlay's scroll
// height; scrollHeight <= 0 keeps the measured line height.
func (e *Engine) CommitText(text string, scrollHeight float64) error {
	if e.action != ActionTyping {
		return e.fail("commit text", ErrNotTyping)
	}
	id := e.gesture.elementID
	defer e.end()

	if strings.TrimSpace(text) == "" {
		e.store.Delete(id)
		e.logger.Debug("blank text discarded", "element", id)
		return nil
	}

	patch := element.Patch{Text: &text}
	if scrollHeight > 0 {
		lineHeight := overlayLineHeight(text, scrollHeight)
		patch.LineHeight = &lineHeight
	}
	if _, err := e.store.Update(id, patch); err != nil {
		return e.fail("commit text", err)
	}
	return nil
}

// overlayLineHeight derives the line height from the text overlay. A one- or
// two-line overlay always reports two lines of scroll height.
func overlayLineHeight(text string, scrollHeight float64) float64 {
	n := len(element.NewTextObject(text).Lines)
	if n > 2 {
		return scrollHeight / float64(n)
	}
	return scrollHeight / 2
}

// SetTool switches the active tool. The gesture in progress is unaffected.
func (e *Engine) SetTool(t Tool) error {
	if _, err := ParseTool(string(t)); err != nil {
		return e.fail("set tool", err)
	}
	e.tool = t
	return nil
}

// Clear removes every element and ends any gesture.
func (e *Engine) Clear() {
	e.store.Clear()
	e.end()
}

// InsertImage places an already loaded image of the given natural size
// centred on the last pointer position.
func (e *Engine) InsertImage(assetID string, width, height float64) (element.Element, error) {
	if width <= 0 || height <= 0 {
		return element.Element{}, e.fail("insert image",
			fmt.Errorf("%w: image size %vx%v", element.ErrInvalidGeometry, width, height))
	}
	c := e.camera.ScreenToWorld(e.gesture.pointer)
	half := geom.Pt(width/2, height/2)
	el, err := e.store.Create(element.KindImage, element.Params{
		Coords: []geom.Point{c.Sub(half), c.Add(half)},
		Image:  &element.ImageSource{AssetID: assetID, Width: width, Height: height},
	})
	if err != nil {
		return element.Element{}, e.fail("insert image", err)
	}
	return el, nil
}

func (e *Engine) begin(a Action, id string) {
	e.action = a
	e.gesture.elementID = id
	e.logger.Debug("gesture started", "action", a, "tool", e.tool, "element", id)
}

func (e *Engine) end() {
	if e.action != ActionIdle {
		e.logger.Debug("gesture ended", "action", e.action, "element", e.gesture.elementID)
	}
	e.action = ActionIdle
	e.gesture.elementID = ""
	e.gesture.grab = geom.Point{}
}

// abandon ends a gesture whose element has disappeared from the store.
func (e *Engine) abandon(op string) error {
	err := e.fail(op, fmt.Errorf("%w: %q", element.ErrUnknownElement, e.gesture.elementID))
	e.end()
	return err
}
