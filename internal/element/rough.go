package element

import (
	"fmt"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// RoughSettings are the options handed to the sketchy renderer together with
// an element's geometry. Seed fixes the renderer's jitter: geometry updates
// keep it, new elements get a fresh one.
type RoughSettings struct {
	MaxRandomnessOffset    float64 `json:"maxRandomnessOffset"`
	Roughness              float64 `json:"roughness"`
	Bowing                 float64 `json:"bowing"`
	Stroke                 string  `json:"stroke"`
	StrokeWidth            float64 `json:"strokeWidth"`
	CurveTightness         float64 `json:"curveTightness"`
	CurveFitting           float64 `json:"curveFitting"`
	CurveStepCount         float64 `json:"curveStepCount"`
	FillStyle              string  `json:"fillStyle"`
	FillWeight             float64 `json:"fillWeight"`
	HachureAngle           float64 `json:"hachureAngle"`
	HachureGap             float64 `json:"hachureGap"`
	DashOffset             float64 `json:"dashOffset"`
	DashGap                float64 `json:"dashGap"`
	ZigzagOffset           float64 `json:"zigzagOffset"`
	Seed                   int64   `json:"seed"`
	DisableMultiStroke     bool    `json:"disableMultiStroke"`
	DisableMultiStrokeFill bool    `json:"disableMultiStrokeFill"`
	PreserveVertices       bool    `json:"preserveVertices"`
}

// DefaultRoughSettings returns the renderer defaults with no seed assigned.
func DefaultRoughSettings() RoughSettings {
	return RoughSettings{
		MaxRandomnessOffset: 2,
		Roughness:           1,
		Bowing:              1,
		Stroke:              "#000000",
		StrokeWidth:         1,
		CurveTightness:      0,
		CurveFitting:        0.95,
		CurveStepCount:      9,
		FillStyle:           "hachure",
		FillWeight:          -1,
		HachureAngle:        -41,
		HachureGap:          -1,
		DashOffset:          -1,
		DashGap:             -1,
		ZigzagOffset:        -1,
	}
}

// NewSeed returns a random seed in [1, 2^31). Zero means "unassigned".
func NewSeed() int64 {
	return rand.Int64N(1<<31-1) + 1
}

// normalize canonicalises the stroke colour to #rrggbb.
func (r RoughSettings) normalize() (RoughSettings, error) {
	if r.Stroke == "" {
		r.Stroke = DefaultRoughSettings().Stroke
		return r, nil
	}
	c, err := colorful.Hex(r.Stroke)
	if err != nil {
		return r, fmt.Errorf("%w: stroke colour %q: %v", ErrInvalidStyle, r.Stroke, err)
	}
	r.Stroke = c.Hex()
	return r, nil
}
