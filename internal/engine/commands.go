package engine

import (
	"encoding/json"
	"math"

	"github.com/inamate/sketchboard/internal/element"
	"github.com/inamate/sketchboard/internal/freehand"
	"github.com/inamate/sketchboard/internal/geom"
)

// DrawCommand is a single drawing operation for the front end to execute on
// a Canvas2D context. Coordinates are world space; Transform maps them to
// the screen.
type DrawCommand struct {
	Op          string                 `json:"op"`                    // "grid", "rough", "path", "text", "image"
	ObjectID    string                 `json:"objectId,omitempty"`    // for hit correlation
	Transform   []float64              `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix
	Shape       element.Kind           `json:"shape,omitempty"`       // element kind for "rough"
	Points      []geom.Point           `json:"points,omitempty"`      // corners or vertices for "rough"
	Rough       *element.RoughSettings `json:"rough,omitempty"`       // renderer options, seed included
	Path        []freehand.PathCommand `json:"path,omitempty"`        // path data for "grid" and "path"
	Triangles   [][3]geom.Point        `json:"triangles,omitempty"`   // fill mesh for "path"
	Fill        string                 `json:"fill,omitempty"`        // fill color
	Stroke      string                 `json:"stroke,omitempty"`      // stroke color
	StrokeWidth float64                `json:"strokeWidth,omitempty"` // stroke width
	Font        string                 `json:"font,omitempty"`        // CSS font for "text"
	Lines       []TextLine             `json:"lines,omitempty"`       // baselines for "text"
	Bounds      *geom.Rect             `json:"bounds,omitempty"`      // destination for "image"

	ImageAssetID string  `json:"imageAssetId,omitempty"` // asset id for image lookup
	ImageWidth   float64 `json:"imageWidth,omitempty"`   // image natural width
	ImageHeight  float64 `json:"imageHeight,omitempty"`  // image natural height
}

// TextLine is one line of a text element with the position of its baseline.
type TextLine struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

const (
	gridColor  = "rgba(0, 0, 0, 0.1)"
	inkColor   = "#000000"
	majorEvery = 4
)

// Render compiles the board into draw commands for a viewport of the given
// screen size: the grid first, then every visible element in paint order.
// It reads the elements and camera and changes nothing.
func (e *Engine) Render(width, height float64) []DrawCommand {
	view := e.camera.View().ToSlice()

	var commands []DrawCommand
	if e.gridSize > 0 && width > 0 && height > 0 {
		commands = append(commands, e.gridCommands(width, height, view)...)
	}
	for _, el := range e.store.Ordered() {
		if !el.Visible || el.SoftDeleted {
			continue
		}
		if cmd, ok := e.compileElement(el); ok {
			cmd.Transform = view
			commands = append(commands, cmd)
		}
	}
	return commands
}

// RenderJSON is Render serialised for the browser bridge.
func (e *Engine) RenderJSON(width, height float64) (string, error) {
	return DrawCommandsToJSON(e.Render(width, height))
}

// gridCommands draws minor lines every gridSize and major lines every
// fourth, covering the visible world rectangle. Line widths are divided by
// the zoom so they stay one and two pixels wide on screen.
func (e *Engine) gridCommands(width, height float64, view []float64) []DrawCommand {
	r := e.camera.ViewRect(width, height)
	zoom := e.camera.Zoom
	return []DrawCommand{
		{
			Op:          "grid",
			Transform:   view,
			Path:        gridPath(r, e.gridSize),
			Stroke:      gridColor,
			StrokeWidth: 1 / zoom,
		},
		{
			Op:          "grid",
			Transform:   view,
			Path:        gridPath(r, majorEvery*e.gridSize),
			Stroke:      gridColor,
			StrokeWidth: 2 / zoom,
		},
	}
}

func gridPath(r geom.Rect, step float64) []freehand.PathCommand {
	from, to := r.Min(), r.Max()
	var path []freehand.PathCommand
	for x := math.Floor(from.X/step) * step; x < to.X; x += step {
		path = append(path,
			freehand.PathCommand{"M", x, from.Y},
			freehand.PathCommand{"L", x, to.Y})
	}
	for y := math.Floor(from.Y/step) * step; y < to.Y; y += step {
		path = append(path,
			freehand.PathCommand{"M", from.X, y},
			freehand.PathCommand{"L", to.X, y})
	}
	return path
}

func (e *Engine) compileElement(el element.Element) (DrawCommand, bool) {
	cmd := DrawCommand{ObjectID: el.ID}

	switch s := el.Shape.(type) {
	case element.Rectangle, element.Ellipse, element.Line:
		cmd.Op = "rough"
		cmd.Shape = el.Kind()
		cmd.Points = el.Coords
		cmd.Rough = el.Rough

	case element.Diamond:
		cmd.Op = "rough"
		cmd.Shape = el.Kind()
		cmd.Points = s.Vertices
		cmd.Rough = el.Rough

	case element.Polygon:
		cmd.Op = "rough"
		cmd.Shape = el.Kind()
		cmd.Points = s.Vertices
		cmd.Rough = el.Rough

	case element.Freedraw:
		if s.Path.IsEmpty() {
			return DrawCommand{}, false
		}
		cmd.Op = "path"
		cmd.Path = s.Path.Commands()
		cmd.Fill = inkColor
		tris, err := freehand.Triangulate(s.Outline)
		if err != nil {
			e.logger.Debug("stroke not triangulated", "element", el.ID, "error", err)
		}
		cmd.Triangles = tris

	case element.Text:
		cmd.Op = "text"
		cmd.Font = s.Font.String()
		cmd.Fill = inkColor
		cmd.Lines = textLines(el, s)

	case element.Image:
		b := el.Bounds()
		cmd.Op = "image"
		cmd.Bounds = &b
		cmd.ImageAssetID = s.AssetID
		cmd.ImageWidth = s.NaturalWidth
		cmd.ImageHeight = s.NaturalHeight

	default:
		e.logger.Warn("element not drawable", "element", el.ID, "kind", el.Kind())
		return DrawCommand{}, false
	}
	return cmd, true
}

// textLines places each line's baseline lineHeight apart, shifted so the
// last baseline sits where the measured block puts it.
func textLines(el element.Element, s element.Text) []TextLine {
	anchor := el.Anchor()
	descent := el.Height - s.Baseline
	lines := make([]TextLine, len(s.Text.Lines))
	for i, line := range s.Text.Lines {
		lines[i] = TextLine{
			Text: line,
			X:    anchor.X,
			Y:    anchor.Y + float64(i+1)*s.LineHeight - descent,
		}
	}
	return lines
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
