// Named photographic adjustments, their ranges and presets.
package adjustments

import (
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
)

var ErrUnknownParam = errors.New("unknown adjustment")

// Settings holds every adjustment of an edit session. The zero value is the
// neutral (default) state.
type Settings struct {
	Exposure       float64 `json:"exposure"`
	Highlights     float64 `json:"highlights"`
	Shadows        float64 `json:"shadows"`
	Whites         float64 `json:"whites"`
	Blacks         float64 `json:"blacks"`
	Contrast       float64 `json:"contrast"`
	Temperature    float64 `json:"temperature"`
	Tint           float64 `json:"tint"`
	Vibrance       float64 `json:"vibrance"`
	Saturation     float64 `json:"saturation"`
	Clarity        float64 `json:"clarity"`
	Texture        float64 `json:"texture"`
	Dehaze         float64 `json:"dehaze"`
	Sharpening     float64 `json:"sharpening"`
	NoiseReduction float64 `json:"noiseReduction"`
}

// Param identifies one field of Settings
type Param int

const (
	Exposure Param = iota
	Highlights
	Shadows
	Whites
	Blacks
	Contrast
	Temperature
	Tint
	Vibrance
	Saturation
	Clarity
	Texture
	Dehaze
	Sharpening
	NoiseReduction

	numParams
)

// Range is the accepted interval of a parameter and its UI step
type Range struct {
	Min, Max, Step float64
}

// Clamps v into the range
func (r Range) Clamp(v float64) float64 {
	return lo.Clamp(v, r.Min, r.Max)
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

var (
	evRange      = Range{Min: -5, Max: 5, Step: 0.1}
	signedRange  = Range{Min: -100, Max: 100, Step: 1}
	percentRange = Range{Min: 0, Max: 100, Step: 1}
)

type paramMeta struct {
	name string
	rng  Range
	unit string
}

var paramInfo = [numParams]paramMeta{
	Exposure:       {"exposure", evRange, "EV"},
	Highlights:     {"highlights", signedRange, ""},
	Shadows:        {"shadows", signedRange, ""},
	Whites:         {"whites", signedRange, ""},
	Blacks:         {"blacks", signedRange, ""},
	Contrast:       {"contrast", signedRange, ""},
	Temperature:    {"temperature", signedRange, "K"},
	Tint:           {"tint", signedRange, ""},
	Vibrance:       {"vibrance", signedRange, ""},
	Saturation:     {"saturation", signedRange, ""},
	Clarity:        {"clarity", signedRange, ""},
	Texture:        {"texture", signedRange, ""},
	Dehaze:         {"dehaze", signedRange, ""},
	Sharpening:     {"sharpening", percentRange, ""},
	NoiseReduction: {"noiseReduction", percentRange, ""},
}

// Returns all parameters in declaration order
func Params() []Param {
	params := make([]Param, numParams)
	for i := range params {
		params[i] = Param(i)
	}
	return params
}

func (p Param) valid() bool {
	return p >= 0 && p < numParams
}

func (p Param) String() string {
	if !p.valid() {
		return fmt.Sprintf("Param(%d)", int(p))
	}
	return paramInfo[p].name
}

func (p Param) Range() Range {
	return p.info().rng
}

// Display unit ("EV" for exposure, "K" for temperature, "" otherwise)
func (p Param) Unit() string {
	return p.info().unit
}

func (p Param) info() paramMeta {
	if !p.valid() {
		panic(fmt.Sprintf("adjustments: invalid param %d", int(p)))
	}
	return paramInfo[p]
}

// Inert parameters are accepted and stored but no stage reads them yet.
func (p Param) Inert() bool {
	return p == Texture || p == Dehaze || p == NoiseReduction
}

// Looks up a parameter by its camelCase name
func ParseParam(name string) (Param, error) {
	for _, p := range Params() {
		if paramInfo[p].name == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// Returns the neutral settings
func Default() Settings {
	return Settings{}
}

func (s *Settings) field(p Param) *float64 {
	switch p {
	case Exposure:
		return &s.Exposure
	case Highlights:
		return &s.Highlights
	case Shadows:
		return &s.Shadows
	case Whites:
		return &s.Whites
	case Blacks:
		return &s.Blacks
	case Contrast:
		return &s.Contrast
	case Temperature:
		return &s.Temperature
	case Tint:
		return &s.Tint
	case Vibrance:
		return &s.Vibrance
	case Saturation:
		return &s.Saturation
	case Clarity:
		return &s.Clarity
	case Texture:
		return &s.Texture
	case Dehaze:
		return &s.Dehaze
	case Sharpening:
		return &s.Sharpening
	case NoiseReduction:
		return &s.NoiseReduction
	}
	panic(fmt.Sprintf("adjustments: invalid param %d", int(p)))
}

func (s Settings) Get(p Param) float64 {
	return *s.field(p)
}

// Stores v as given; range enforcement happens in Clamped
func (s *Settings) Set(p Param, v float64) {
	*s.field(p) = v
}

// Resets every field to its default
func (s *Settings) Reset() {
	*s = Default()
}

func (s Settings) IsDefault() bool {
	return s == Default()
}

// Returns a copy with every field clamped into its declared range.
// NaN falls back to the default.
func (s Settings) Clamped() Settings {
	out := s
	for _, p := range Params() {
		v := out.Get(p)
		if math.IsNaN(v) {
			v = 0
		}
		out.Set(p, p.Range().Clamp(v))
	}
	return out
}
