package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexisbeaulieu97/themekit/internal/tokens"
)

// Variables is the derived presentation variable set for one mode, keyed by
// dotted names such as "color.text.primary" or "spacing.md".
type Variables map[string]string

// Names returns the variable names sorted alphabetically.
func (v Variables) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CSS renders the set as custom property declarations, one per line:
// "--color-text-primary: #0f172a;".
func (v Variables) CSS() string {
	var b strings.Builder
	for _, name := range v.Names() {
		fmt.Fprintf(&b, "--%s: %s;\n", strings.ReplaceAll(name, ".", "-"), v[name])
	}
	return b.String()
}

// Variables derives every presentation variable for mode: each semantic
// alias, each status color, the base scale colors at 500, and every spacing,
// font size and shadow entry.
func (r *Resolver) Variables(mode tokens.Mode) Variables {
	if !mode.Valid() {
		mode = tokens.DefaultMode
	}
	store := r.store
	vars := make(Variables)

	for _, alias := range store.SemanticNames() {
		if value, ok := store.SemanticValue(alias, mode); ok {
			vars["color."+alias] = value
		}
	}
	for _, name := range store.ScaleNames() {
		vars["color."+name] = r.ColorFor(mode, name, tokens.DefaultShade)
	}
	for _, size := range store.SpacingScale() {
		vars["spacing."+size.Key] = size.Value.String()
	}
	for _, size := range store.TypographyScale() {
		vars["font-size."+size.Key] = size.Value.String()
	}
	for _, shadow := range store.ShadowScale() {
		vars["shadow."+shadow.Key] = shadow.Value.String()
	}
	return vars
}
