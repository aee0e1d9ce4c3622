// Package styles renders resolved tokens as lipgloss styles for terminal
// output.
package styles

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/alexisbeaulieu97/themekit/internal/projection"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
)

// pxPerLine is the CSS pixel height of one terminal row.
const pxPerLine = 16

// Strategy applies token-driven styling to a lipgloss style.
type Strategy interface {
	Apply(base lipgloss.Style, tokens projection.TokenResolver) lipgloss.Style
}

// StyleFunc transforms a style using values looked up from the resolver.
type StyleFunc func(lipgloss.Style, projection.TokenResolver) lipgloss.Style

// Apply lets a StyleFunc act as a Strategy.
func (f StyleFunc) Apply(base lipgloss.Style, res projection.TokenResolver) lipgloss.Style {
	return f(base, res)
}

// CompositeStrategy applies StyleFuncs in order.
type CompositeStrategy struct {
	funcs []StyleFunc
}

// Compose builds a CompositeStrategy.
func Compose(funcs ...StyleFunc) CompositeStrategy {
	return CompositeStrategy{funcs: funcs}
}

// Apply runs every StyleFunc against base.
func (c CompositeStrategy) Apply(base lipgloss.Style, res projection.TokenResolver) lipgloss.Style {
	for _, fn := range c.funcs {
		base = fn(base, res)
	}
	return base
}

// With returns a copy of c with more StyleFuncs appended. c is unchanged.
func (c CompositeStrategy) With(funcs ...StyleFunc) CompositeStrategy {
	next := make([]StyleFunc, len(c.funcs), len(c.funcs)+len(funcs))
	copy(next, c.funcs)
	return CompositeStrategy{funcs: append(next, funcs...)}
}

// Foreground sets the text color from a role and shade.
func Foreground(role string, shade tokens.Shade) StyleFunc {
	return func(s lipgloss.Style, res projection.TokenResolver) lipgloss.Style {
		if c, ok := TerminalColor(res.Color(role, shade)); ok {
			return s.Foreground(c)
		}
		return s
	}
}

// Background sets the background color from a role and shade.
func Background(role string, shade tokens.Shade) StyleFunc {
	return func(s lipgloss.Style, res projection.TokenResolver) lipgloss.Style {
		if c, ok := TerminalColor(res.Color(role, shade)); ok {
			return s.Background(c)
		}
		return s
	}
}

// Border draws border in the color of role and shade.
func Border(border lipgloss.Border, role string, shade tokens.Shade) StyleFunc {
	return func(s lipgloss.Style, res projection.TokenResolver) lipgloss.Style {
		s = s.BorderStyle(border)
		if c, ok := TerminalColor(res.Color(role, shade)); ok {
			s = s.BorderForeground(c)
		}
		return s
	}
}

// Padding pads by a spacing key.
func Padding(key string) StyleFunc {
	return func(s lipgloss.Style, res projection.TokenResolver) lipgloss.Style {
		v, h := boxCells(res.Spacing(key))
		return s.Padding(v, h)
	}
}

// Margin adds margin by a spacing key.
func Margin(key string) StyleFunc {
	return func(s lipgloss.Style, res projection.TokenResolver) lipgloss.Style {
		v, h := boxCells(res.Spacing(key))
		return s.Margin(v, h)
	}
}

// Text maps a typography key onto terminal emphasis since cell height is
// fixed: large sizes render bold, small sizes faint.
func Text(key string) StyleFunc {
	return func(s lipgloss.Style, res projection.TokenResolver) lipgloss.Style {
		return emphasis(s, res.FontSize(key))
	}
}

// FromStyle converts a projected style into a lipgloss style.
func FromStyle(style projection.Style) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c, ok := TerminalColor(style.Foreground); ok {
		s = s.Foreground(c)
	}
	if c, ok := TerminalColor(style.Background); ok {
		s = s.Background(c)
	}
	if c, ok := TerminalColor(style.BorderColor); ok {
		s = s.BorderStyle(lipgloss.RoundedBorder()).BorderForeground(c)
	}
	if style.Padding > 0 {
		v, h := boxCells(style.Padding)
		s = s.Padding(v, h)
	}
	if style.Margin > 0 {
		v, h := boxCells(style.Margin)
		s = s.Margin(v, h)
	}
	if style.FontSize > 0 {
		s = emphasis(s, style.FontSize)
	}
	if len(style.Shadow) > 0 && style.BorderColor == "" {
		s = s.BorderStyle(lipgloss.ThickBorder()).BorderTop(false).BorderLeft(false)
	}
	return s
}

// Swatch renders label on a block of color, picking black or white text for
// contrast. Values that are not terminal colors render label unstyled.
func Swatch(value, label string) string {
	bg, ok := TerminalColor(value)
	if !ok {
		return label
	}
	fg := lipgloss.Color("#000000")
	onWhite, errW := tokens.ContrastRatio(string(bg), "#ffffff")
	onBlack, errB := tokens.ContrastRatio(string(bg), "#000000")
	if errW == nil && errB == nil && onWhite > onBlack {
		fg = "#ffffff"
	}
	return lipgloss.NewStyle().Background(bg).Foreground(fg).Padding(0, 1).Render(label)
}

// TerminalColor converts a CSS color value into a lipgloss color. Hex values
// pass through and rgb/rgba values drop their alpha channel.
func TerminalColor(value string) (lipgloss.Color, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if c, err := colorful.Hex(value); err == nil {
		return lipgloss.Color(c.Hex()), true
	}

	var r, g, b int
	var a float64
	if _, err := fmt.Sscanf(value, "rgba(%d, %d, %d, %g)", &r, &g, &b, &a); err != nil {
		if _, err := fmt.Sscanf(value, "rgb(%d, %d, %d)", &r, &g, &b); err != nil {
			return "", false
		}
	}
	c := colorful.Color{R: clamp(r), G: clamp(g), B: clamp(b)}
	return lipgloss.Color(c.Hex()), true
}

func clamp(v int) float64 {
	return math.Max(0, math.Min(255, float64(v))) / 255
}

func boxCells(l tokens.Length) (vertical, horizontal int) {
	return int(float64(l) / pxPerLine), l.Cells()
}

func emphasis(s lipgloss.Style, size tokens.Length) lipgloss.Style {
	switch {
	case size >= 20:
		return s.Bold(true)
	case size > 0 && size < 14:
		return s.Faint(true)
	default:
		return s
	}
}
