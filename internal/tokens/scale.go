package tokens

import (
	"math"
	"strconv"
	"strings"
)

// pxPerCell converts CSS pixels into terminal cells for lipgloss rendering.
const pxPerCell = 4

// Length is a size in CSS pixels.
type Length float64

// String renders the length as a CSS value. Zero renders as "0".
func (l Length) String() string {
	if l == 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(l), 'f', -1, 64) + "px"
}

// Cells converts the length into whole terminal cells (4px per cell).
func (l Length) Cells() int {
	return int(math.Round(float64(l) / pxPerCell))
}

// Size is one entry of an ordered size scale (spacing or typography).
type Size struct {
	Key   string
	Value Length
}

// ShadowLayer is one offset/blur/color layer of a composite shadow.
type ShadowLayer struct {
	X      Length
	Y      Length
	Blur   Length
	Spread Length
	Color  string
	Inset  bool
}

func (l ShadowLayer) String() string {
	parts := make([]string, 0, 6)
	if l.Inset {
		parts = append(parts, "inset")
	}
	parts = append(parts, l.X.String(), l.Y.String(), l.Blur.String(), l.Spread.String(), l.Color)
	return strings.Join(parts, " ")
}

// Shadow is a layered box shadow. An empty shadow renders as "none".
type Shadow []ShadowLayer

func (s Shadow) String() string {
	if len(s) == 0 {
		return "none"
	}
	layers := make([]string, len(s))
	for i, layer := range s {
		layers[i] = layer.String()
	}
	return strings.Join(layers, ", ")
}

// ShadowToken names a shadow in the ordered shadow scale.
type ShadowToken struct {
	Key   string
	Value Shadow
}

// Breakpoint is a named minimum viewport width in pixels.
type Breakpoint struct {
	Name     string
	MinWidth int
}

// BreakpointTable lists breakpoints ordered by strictly increasing MinWidth.
// The last entry has no upper bound.
type BreakpointTable []Breakpoint

// Names returns breakpoint names smallest first.
func (t BreakpointTable) Names() []string {
	names := make([]string, len(t))
	for i, bp := range t {
		names[i] = bp.Name
	}
	return names
}

// Index returns the position of name, or -1.
func (t BreakpointTable) Index(name string) int {
	for i, bp := range t {
		if bp.Name == name {
			return i
		}
	}
	return -1
}

// MinWidth returns the minimum width of name.
func (t BreakpointTable) MinWidth(name string) (int, bool) {
	if i := t.Index(name); i >= 0 {
		return t[i].MinWidth, true
	}
	return 0, false
}

// Classify returns the greatest breakpoint whose minimum does not exceed width.
// Widths below the first minimum classify as the smallest breakpoint. An empty
// table yields "".
func (t BreakpointTable) Classify(width int) string {
	if len(t) == 0 {
		return ""
	}
	current := t[0].Name
	for _, bp := range t {
		if width < bp.MinWidth {
			break
		}
		current = bp.Name
	}
	return current
}

func (t BreakpointTable) clone() BreakpointTable {
	return append(BreakpointTable(nil), t...)
}
