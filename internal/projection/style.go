package projection

import (
	"strconv"

	"github.com/alexisbeaulieu97/themekit/internal/tokens"
)

// ColorToken references a color role and shade. A zero shade means 500.
type ColorToken struct {
	Role  string
	Shade tokens.Shade
}

// Color builds a ColorToken.
func Color(role string, shade tokens.Shade) ColorToken {
	return ColorToken{Role: role, Shade: shade}
}

// Style is the concrete style record for one breakpoint and mode. It has a
// fixed set of fields; there is no free-form property bag.
type Style struct {
	Foreground  string
	Background  string
	BorderColor string
	Padding     tokens.Length
	Margin      tokens.Length
	Gap         tokens.Length
	FontSize    tokens.Length
	Shadow      tokens.Shadow
	Columns     int
	Hidden      bool
}

// Property is one rendered style declaration.
type Property struct {
	Name  string
	Value string
}

// Properties renders the set fields as CSS-style declarations in a fixed
// order. Unset colors, zero lengths and an empty shadow are omitted.
func (s Style) Properties() []Property {
	var props []Property
	add := func(name, value string) {
		if value != "" {
			props = append(props, Property{Name: name, Value: value})
		}
	}
	length := func(l tokens.Length) string {
		if l == 0 {
			return ""
		}
		return l.String()
	}

	add("color", s.Foreground)
	add("background-color", s.Background)
	add("border-color", s.BorderColor)
	add("padding", length(s.Padding))
	add("margin", length(s.Margin))
	add("gap", length(s.Gap))
	add("font-size", length(s.FontSize))
	if len(s.Shadow) > 0 {
		add("box-shadow", s.Shadow.String())
	}
	if s.Columns > 0 {
		add("grid-template-columns", "repeat("+strconv.Itoa(s.Columns)+", minmax(0, 1fr))")
	}
	if s.Hidden {
		add("display", "none")
	}
	return props
}

// ResponsiveStyle describes a style as token references per breakpoint.
// Length fields hold spacing or typography keys and Shadow holds a shadow key.
type ResponsiveStyle struct {
	Foreground  Responsive[ColorToken]
	Background  Responsive[ColorToken]
	BorderColor Responsive[ColorToken]
	Padding     Responsive[string]
	Margin      Responsive[string]
	Gap         Responsive[string]
	FontSize    Responsive[string]
	Shadow      Responsive[string]
	Columns     Responsive[int]
	Hidden      Responsive[bool]
}
