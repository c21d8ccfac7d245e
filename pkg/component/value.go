package component

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"
)

// Viewport is a breakpoint class a responsive value varies over.
type Viewport int

const (
	Desktop Viewport = iota
	Tablet
	Mobile
)

// Viewports lists the breakpoints in the order responsive triples store them.
var Viewports = []Viewport{Desktop, Tablet, Mobile}

func (v Viewport) String() string {
	switch v {
	case Desktop:
		return "desktop"
	case Tablet:
		return "tablet"
	case Mobile:
		return "mobile"
	default:
		return "unknown"
	}
}

// Value is a property value. Implementations are limited to this package:
// String, Number and Responsive.
type Value interface {
	value() // marker method restricting implementations to this package
	String() string
}

// Scalar is a single, non-responsive value.
type Scalar interface {
	Value
	scalar()
}

// String is a text or enumerated-literal property value ("h1", "#F1F5F9").
type String string

func (String) value()  {}
func (String) scalar() {}

func (s String) String() string { return string(s) }

// Number is a numeric property value. Lengths are in px.
type Number float64

func (Number) value()  {}
func (Number) scalar() {}

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Responsive holds one scalar per viewport class.
type Responsive struct {
	Desktop Scalar `json:"desktop"`
	Tablet  Scalar `json:"tablet"`
	Mobile  Scalar `json:"mobile"`
}

func (Responsive) value() {}

func (r Responsive) String() string {
	return fmt.Sprintf("{desktop: %s, tablet: %s, mobile: %s}", scalarString(r.Desktop), scalarString(r.Tablet), scalarString(r.Mobile))
}

// At returns the value for one viewport.
func (r Responsive) At(v Viewport) Scalar {
	switch v {
	case Tablet:
		return r.Tablet
	case Mobile:
		return r.Mobile
	default:
		return r.Desktop
	}
}

// With returns a copy of r with the value for one viewport replaced. Updates
// merge whole responsive values, so editors changing a single breakpoint build
// the replacement with With.
func (r Responsive) With(v Viewport, s Scalar) Responsive {
	switch v {
	case Desktop:
		r.Desktop = s
	case Tablet:
		r.Tablet = s
	case Mobile:
		r.Mobile = s
	}
	return r
}

func (r *Responsive) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, err := FromAny(raw)
	if err != nil {
		return err
	}
	resp, ok := v.(Responsive)
	if !ok {
		return fmt.Errorf("expected responsive object, got %T", v)
	}
	*r = resp
	return nil
}

// ResponsiveNumber builds a numeric responsive triple.
func ResponsiveNumber(desktop, tablet, mobile float64) Responsive {
	return Responsive{Desktop: Number(desktop), Tablet: Number(tablet), Mobile: Number(mobile)}
}

// ResponsiveString builds a string responsive triple.
func ResponsiveString(desktop, tablet, mobile string) Responsive {
	return Responsive{Desktop: String(desktop), Tablet: String(tablet), Mobile: String(mobile)}
}

// Uniform builds a responsive triple holding the same scalar everywhere.
func Uniform(s Scalar) Responsive {
	return Responsive{Desktop: s, Tablet: s, Mobile: s}
}

func scalarString(s Scalar) string {
	if s == nil {
		return ""
	}
	return s.String()
}

// FromAny converts a decoded JSON value (string, number, or an object with
// desktop/tablet/mobile keys) into a Value. Values that already are a Value
// pass through unchanged.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case map[string]any:
		return responsiveFromMap(x)
	}
	return scalarFromAny(v)
}

func responsiveFromMap(m map[string]any) (Responsive, error) {
	var r Responsive
	for _, vp := range Viewports {
		raw, ok := m[vp.String()]
		if !ok {
			return Responsive{}, fmt.Errorf("responsive value missing %q", vp)
		}
		s, err := scalarFromAny(raw)
		if err != nil {
			return Responsive{}, fmt.Errorf("responsive %s: %w", vp, err)
		}
		r = r.With(vp, s)
	}
	if len(m) != len(Viewports) {
		return Responsive{}, fmt.Errorf("responsive value has %d keys, want %d", len(m), len(Viewports))
	}
	return r, nil
}

func scalarFromAny(v any) (Scalar, error) {
	switch x := v.(type) {
	case Scalar:
		return x, nil
	case string:
		return String(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(x), nil
	case int:
		return Number(x), nil
	case int64:
		return Number(x), nil
	}
	return nil, fmt.Errorf("unsupported property value %T", v)
}
