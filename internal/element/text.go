package element

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Font describes how a text element is set.
type Font struct {
	Family  string  `json:"family"`
	Size    float64 `json:"size"`
	Style   string  `json:"style"`
	Variant string  `json:"variant"`
	Weight  int     `json:"weight"`
}

// DefaultFont is the font new text elements get when none is configured.
var DefaultFont = Font{
	Family:  "sans-serif",
	Size:    32,
	Style:   "normal",
	Variant: "normal",
	Weight:  400,
}

// String returns the CSS font shorthand, e.g. "normal normal 400 32px sans-serif".
func (f Font) String() string {
	return fmt.Sprintf("%s %s %d %spx %s", f.Style, f.Variant, f.Weight, trimFloat(f.Size), f.Family)
}

func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

// TextObject is the text of a text element, raw and split into lines.
type TextObject struct {
	RawText string   `json:"rawText"`
	Lines   []string `json:"lines"`
}

// NewTextObject normalises raw (NFC, CRLF and CR become LF) and splits it
// into lines. Empty text has a single empty line.
func NewTextObject(raw string) TextObject {
	text := preprocess(raw)
	return TextObject{RawText: text, Lines: strings.Split(text, "\n")}
}

func preprocess(s string) string {
	s = norm.NFC.String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Metrics is the measured extent of a block of text.
type Metrics struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Baseline   float64 `json:"baseline"` // from the top of the block to the last line's baseline
	LineHeight float64 `json:"lineHeight"`
}

// Measurer measures text set in a font.
type Measurer interface {
	Measure(lines []string, f Font) (Metrics, error)
}

type faceKey struct {
	size   float64
	bold   bool
	italic bool
}

// FaceMeasurer measures text with the Go font family. Font.Family is not
// consulted; weight selects regular or bold and style selects italic.
// A FaceMeasurer is not safe for concurrent use.
type FaceMeasurer struct {
	fonts map[faceKey]*opentype.Font
	faces map[faceKey]font.Face
}

// NewFaceMeasurer returns an empty measurer; faces are loaded on first use.
func NewFaceMeasurer() *FaceMeasurer {
	return &FaceMeasurer{
		fonts: make(map[faceKey]*opentype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

func (m *FaceMeasurer) face(f Font) (font.Face, error) {
	key := faceKey{size: f.Size, bold: f.Weight >= 600, italic: f.Style == "italic" || f.Style == "oblique"}
	if face, ok := m.faces[key]; ok {
		return face, nil
	}

	style := faceKey{bold: key.bold, italic: key.italic}
	parsed, ok := m.fonts[style]
	if !ok {
		var ttf []byte
		switch {
		case key.bold && key.italic:
			ttf = gobolditalic.TTF
		case key.bold:
			ttf = gobold.TTF
		case key.italic:
			ttf = goitalic.TTF
		default:
			ttf = goregular.TTF
		}
		var err error
		parsed, err = opentype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse font: %w", err)
		}
		m.fonts[style] = parsed
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("new face %s: %w", f, err)
	}
	m.faces[key] = face
	return face, nil
}

// Measure implements Measurer.
func (m *FaceMeasurer) Measure(lines []string, f Font) (Metrics, error) {
	if f.Size <= 0 {
		return Metrics{}, fmt.Errorf("%w: font size %v", ErrInvalidStyle, f.Size)
	}
	face, err := m.face(f)
	if err != nil {
		return Metrics{}, err
	}

	var width fixed.Int26_6
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line))
	}
	fm := face.Metrics()
	lineHeight := fixedToFloat(fm.Height)
	n := float64(max(len(lines), 1))

	return Metrics{
		Width:      fixedToFloat(width),
		Height:     n * lineHeight,
		Baseline:   (n-1)*lineHeight + fixedToFloat(fm.Ascent),
		LineHeight: lineHeight,
	}, nil
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }
