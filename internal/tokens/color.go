package tokens

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Shade is a Tailwind-style shade key, from 50 (lightest) to 900 (darkest).
type Shade int

const (
	Shade50  Shade = 50
	Shade100 Shade = 100
	Shade200 Shade = 200
	Shade300 Shade = 300
	Shade400 Shade = 400
	Shade500 Shade = 500
	Shade600 Shade = 600
	Shade700 Shade = 700
	Shade800 Shade = 800
	Shade900 Shade = 900
)

// DefaultShade is used when a caller does not name a shade.
const DefaultShade = Shade500

// StandardShades lists the shade keys of a complete scale in order.
var StandardShades = []Shade{
	Shade50, Shade100, Shade200, Shade300, Shade400,
	Shade500, Shade600, Shade700, Shade800, Shade900,
}

// ColorScale maps shade keys to color values (hex or rgba strings).
type ColorScale map[Shade]string

// Shades returns the defined shade keys in ascending order.
func (cs ColorScale) Shades() []Shade {
	shades := make([]Shade, 0, len(cs))
	for shade := range cs {
		shades = append(shades, shade)
	}
	sort.Slice(shades, func(i, j int) bool { return shades[i] < shades[j] })
	return shades
}

// Nearest returns the value for shade, falling back to the closest defined
// shade below it, then to DefaultShade, then to the lightest defined shade.
// The boolean is false only for an empty scale.
func (cs ColorScale) Nearest(shade Shade) (string, bool) {
	if v, ok := cs[shade]; ok {
		return v, true
	}
	shades := cs.Shades()
	if len(shades) == 0 {
		return "", false
	}
	for i := len(shades) - 1; i >= 0; i-- {
		if shades[i] <= shade {
			return cs[shades[i]], true
		}
	}
	if v, ok := cs[DefaultShade]; ok {
		return v, true
	}
	return cs[shades[0]], true
}

func (cs ColorScale) clone() ColorScale {
	out := make(ColorScale, len(cs))
	for k, v := range cs {
		out[k] = v
	}
	return out
}

// ColorRef points at a scale entry, or carries a literal value when Value is set.
type ColorRef struct {
	Scale string
	Shade Shade
	Value string
}

// ParseColorRef accepts either "scale.shade" (e.g. "gray.900") or a literal
// color such as "#ffffff" or "rgba(0, 0, 0, 0.5)".
func ParseColorRef(s string) (ColorRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ColorRef{}, fmt.Errorf("empty color reference")
	}
	if strings.HasPrefix(s, "#") || strings.HasPrefix(strings.ToLower(s), "rgb") {
		return ColorRef{Value: s}, nil
	}
	scale, shadeText, ok := strings.Cut(s, ".")
	if !ok || scale == "" {
		return ColorRef{}, fmt.Errorf("color reference %q must be scale.shade or a literal color", s)
	}
	shade, err := strconv.Atoi(shadeText)
	if err != nil || shade <= 0 {
		return ColorRef{}, fmt.Errorf("color reference %q has invalid shade", s)
	}
	return ColorRef{Scale: scale, Shade: Shade(shade)}, nil
}

// IsLiteral reports whether the reference carries its own value.
func (r ColorRef) IsLiteral() bool {
	return r.Value != ""
}

func (r ColorRef) String() string {
	if r.IsLiteral() {
		return r.Value
	}
	return fmt.Sprintf("%s.%d", r.Scale, r.Shade)
}

// SemanticColor is a role alias whose target depends on the mode.
type SemanticColor struct {
	Light ColorRef
	Dark  ColorRef
}

// Ref returns the reference for mode. Unknown modes use the light reference.
func (s SemanticColor) Ref(mode Mode) ColorRef {
	if mode == ModeDark {
		return s.Dark
	}
	return s.Light
}

// Lightness returns the CIE L* lightness (0..1) of a hex color.
func Lightness(hex string) (float64, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0, err
	}
	l, _, _ := c.Lab()
	return l, nil
}

// ContrastRatio computes the WCAG contrast ratio between two hex colors.
func ContrastRatio(a, b string) (float64, error) {
	ca, err := colorful.Hex(a)
	if err != nil {
		return 0, err
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return 0, err
	}
	la, lb := relativeLuminance(ca), relativeLuminance(cb)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05), nil
}

func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return math.Max(0, 0.2126*r+0.7152*g+0.0722*b)
}
