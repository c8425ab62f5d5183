package engine

import (
	"errors"
	"fmt"

	"github.com/inamate/sketchboard/internal/element"
)

// ErrUnknownTool is returned for a tool name the engine does not have.
var ErrUnknownTool = errors.New("unknown tool")

// Tool is the active drawing tool.
type Tool string

const (
	ToolSelection Tool = "selection"
	ToolPan       Tool = "pan"
	ToolRectangle Tool = "rectangle"
	ToolLine      Tool = "line"
	ToolDiamond   Tool = "diamond"
	ToolEllipse   Tool = "ellipse"
	ToolFreedraw  Tool = "freedraw"
	ToolText      Tool = "text"
	ToolImage     Tool = "image"
)

// ParseTool validates a tool name.
func ParseTool(name string) (Tool, error) {
	switch t := Tool(name); t {
	case ToolSelection, ToolPan, ToolRectangle, ToolLine, ToolDiamond,
		ToolEllipse, ToolFreedraw, ToolText, ToolImage:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTool, name)
}

// shapeKind returns the element a drawing tool creates on pointer-down.
func (t Tool) shapeKind() (element.Kind, bool) {
	switch t {
	case ToolRectangle:
		return element.KindRectangle, true
	case ToolLine:
		return element.KindLine, true
	case ToolDiamond:
		return element.KindDiamond, true
	case ToolEllipse:
		return element.KindEllipse, true
	case ToolFreedraw:
		return element.KindFreedraw, true
	}
	return "", false
}

// Action is what the current gesture is doing.
type Action string

const (
	ActionIdle    Action = "idle"
	ActionDrawing Action = "drawing"
	ActionMoving  Action = "moving"
	ActionPanning Action = "panning"
	ActionTyping  Action = "typing"
)

// Cursor is a CSS cursor name.
type Cursor string

const (
	CursorDefault   Cursor = "default"
	CursorMove      Cursor = "move"
	CursorGrab      Cursor = "grab"
	CursorGrabbing  Cursor = "grabbing"
	CursorCrosshair Cursor = "crosshair"
	CursorText      Cursor = "text"
)

// Button identifies a pointer button, numbered as in DOM MouseEvent.button.
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonMiddle    Button = 1
	ButtonSecondary Button = 2
)
