package projection

import "github.com/alexisbeaulieu97/themekit/internal/tokens"

// TokenResolver resolves token references for the active mode.
type TokenResolver interface {
	Color(role string, shade tokens.Shade) string
	Spacing(key string) tokens.Length
	FontSize(key string) tokens.Length
	Shadow(key string) tokens.Shadow
}

// BreakpointSource reports the active breakpoint and the table it belongs to.
type BreakpointSource interface {
	CurrentBreakpoint() string
	Table() tokens.BreakpointTable
}

// Projector combines the resolver and the responsive engine to turn a
// ResponsiveStyle into a Style.
type Projector struct {
	resolver    TokenResolver
	breakpoints BreakpointSource
}

// NewProjector builds a Projector.
func NewProjector(resolver TokenResolver, breakpoints BreakpointSource) *Projector {
	return &Projector{resolver: resolver, breakpoints: breakpoints}
}

// Resolve projects rs at the active breakpoint.
func (p *Projector) Resolve(rs ResponsiveStyle) Style {
	return p.ResolveAt(rs, p.breakpoints.CurrentBreakpoint())
}

// ResolveAt projects rs at the named breakpoint. Fields without a value stay
// zero.
func (p *Projector) ResolveAt(rs ResponsiveStyle, breakpoint string) Style {
	table := p.breakpoints.Table()
	var style Style

	color := func(r Responsive[ColorToken]) string {
		if token, ok := Project(r, breakpoint, table); ok {
			return p.resolver.Color(token.Role, token.Shade)
		}
		return ""
	}
	spacing := func(r Responsive[string]) tokens.Length {
		if key, ok := Project(r, breakpoint, table); ok {
			return p.resolver.Spacing(key)
		}
		return 0
	}

	style.Foreground = color(rs.Foreground)
	style.Background = color(rs.Background)
	style.BorderColor = color(rs.BorderColor)
	style.Padding = spacing(rs.Padding)
	style.Margin = spacing(rs.Margin)
	style.Gap = spacing(rs.Gap)
	if key, ok := Project(rs.FontSize, breakpoint, table); ok {
		style.FontSize = p.resolver.FontSize(key)
	}
	if key, ok := Project(rs.Shadow, breakpoint, table); ok {
		style.Shadow = p.resolver.Shadow(key)
	}
	style.Columns, _ = Project(rs.Columns, breakpoint, table)
	style.Hidden, _ = Project(rs.Hidden, breakpoint, table)
	return style
}
