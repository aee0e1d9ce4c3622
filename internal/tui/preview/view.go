package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/themekit/internal/projection"
	"github.com/alexisbeaulieu97/themekit/internal/styles"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
)

var (
	titleStyle   = styles.Compose(styles.Foreground(tokens.RolePrimary, tokens.Shade500), styles.Text("2xl"))
	sectionStyle = styles.Compose(styles.Foreground("text.secondary", 0), styles.Text("lg"))
	mutedStyle   = styles.Compose(styles.Foreground("text.muted", 0), styles.Text("xs"))
)

// previewCard is the sample component shown in the preview.
var previewCard = projection.ResponsiveStyle{
	Foreground:  projection.Static(projection.Color("text", 0)),
	Background:  projection.Static(projection.Color("surface", 0)),
	BorderColor: projection.Static(projection.Color("border", 0)),
	Padding:     projection.Static("xs").At("md", "sm").At("xl", "md"),
	FontSize:    projection.Static("base").At("lg", "xl"),
}

// View renders the preview.
func (m Model) View() string {
	if !m.ready {
		return "measuring terminal..."
	}

	res := m.deps.Resolver
	var b strings.Builder

	title := titleStyle.Apply(lipgloss.NewStyle(), res).Render("themekit preview")
	mode := m.deps.Modes.Current().String()
	if !m.deps.Modes.HasExplicitChoice() {
		mode += " (system)"
	}
	size := m.deps.Engine.Viewport()
	status := fmt.Sprintf("mode %s  breakpoint %s  viewport %dx%dpx", mode, m.deps.Engine.CurrentBreakpoint(), size.Width, size.Height)
	fmt.Fprintf(&b, "%s\n%s\n\n", title, mutedStyle.Apply(lipgloss.NewStyle(), res).Render(status))

	section := sectionStyle.Apply(lipgloss.NewStyle(), res)
	b.WriteString(section.Render("Scales") + "\n")
	for _, role := range res.Store().ScaleNames() {
		b.WriteString(m.scaleRow(role) + "\n")
	}

	b.WriteString("\n" + section.Render("Semantic") + "\n")
	var chips []string
	for _, alias := range res.Store().SemanticNames() {
		chips = append(chips, styles.Swatch(res.Color(alias, 0), alias))
	}
	b.WriteString(wrap(chips, m.width) + "\n\n")

	card := styles.FromStyle(m.deps.Projector.Resolve(previewCard))
	b.WriteString(card.Render(fmt.Sprintf("Card at %s", m.deps.Engine.CurrentBreakpoint())) + "\n")

	if m.deps.Buffer != nil {
		b.WriteString("\n" + section.Render("Log") + "\n")
		muted := mutedStyle.Apply(lipgloss.NewStyle(), res)
		for _, entry := range m.deps.Buffer.Recent(logLines) {
			b.WriteString(muted.Render(entry.String()) + "\n")
		}
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) scaleRow(role string) string {
	res := m.deps.Resolver
	scale, err := res.Store().ColorScale(role)
	if err != nil {
		return role
	}
	cells := []string{fmt.Sprintf("%-10s", role)}
	for _, shade := range scale.Shades() {
		cells = append(cells, styles.Swatch(res.Color(role, shade), fmt.Sprintf("%d", shade)))
	}
	return strings.Join(cells, "")
}

// wrap joins chips into lines no wider than width.
func wrap(chips []string, width int) string {
	var lines []string
	var line string
	for _, chip := range chips {
		if line != "" && width > 0 && lipgloss.Width(line)+1+lipgloss.Width(chip) > width {
			lines = append(lines, line)
			line = ""
		}
		if line != "" {
			line += " "
		}
		line += chip
	}
	if line != "" {
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
