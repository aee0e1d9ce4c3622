package tokens

import (
	"fmt"
	"strings"

	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// Validate checks the invariants of a token table set:
//   - every named role scale is present
//   - scale names are not semantic families and contain no dot
//   - color scales are non-empty and get darker as the shade key grows
//   - semantic aliases belong to a known family and reference defined scales
//   - spacing and typography scales are strictly increasing
//   - shadow and size keys are unique and non-empty
//   - breakpoints are strictly increasing by minimum width
func Validate(t Tables) error {
	for _, name := range append(append([]string(nil), scaleRoles...), statusRoles...) {
		if _, ok := t.Colors[name]; !ok {
			return apperrors.NewValidationError("colors."+name, "required scale is missing", nil)
		}
	}
	for _, name := range sortedKeys(t.Colors) {
		if err := validateScale(name, t.Colors[name]); err != nil {
			return err
		}
	}
	for _, alias := range sortedKeys(t.Semantic) {
		if err := validateSemantic(alias, t.Semantic[alias], t.Colors); err != nil {
			return err
		}
	}
	if err := validateSizes("spacing", t.Spacing); err != nil {
		return err
	}
	if err := validateSizes("typography", t.Typography); err != nil {
		return err
	}
	if err := validateShadows(t.Shadows); err != nil {
		return err
	}
	return validateBreakpoints(t.Breakpoints)
}

func validateScale(name string, scale ColorScale) error {
	field := "colors." + name
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("colors", "scale name must not be empty", nil)
	}
	if IsSemanticFamily(name) {
		return apperrors.NewValidationError(field, fmt.Sprintf("%q is a semantic family; define its aliases under semantic", name), nil)
	}
	if strings.Contains(name, ".") {
		return apperrors.NewValidationError(field, "scale name must not contain '.'", nil)
	}
	if len(scale) == 0 {
		return apperrors.NewValidationError(field, "scale must define at least one shade", nil)
	}

	prevShade := Shade(0)
	prevL := 0.0
	havePrev := false
	for _, shade := range scale.Shades() {
		if shade <= 0 {
			return apperrors.NewValidationError(field, fmt.Sprintf("shade %d must be positive", shade), nil)
		}
		value := scale[shade]
		if strings.TrimSpace(value) == "" {
			return apperrors.NewValidationError(fmt.Sprintf("%s.%d", field, shade), "color value must not be empty", nil)
		}
		l, err := Lightness(value)
		if err != nil {
			// rgba and named colors cannot be ordered; skip them.
			continue
		}
		if havePrev && l > prevL {
			return apperrors.NewValidationError(
				fmt.Sprintf("%s.%d", field, shade),
				fmt.Sprintf("shade is lighter than %d; shades must darken as the key grows", prevShade),
				nil,
			)
		}
		prevShade, prevL, havePrev = shade, l, true
	}
	return nil
}

func validateSemantic(alias string, color SemanticColor, colors map[string]ColorScale) error {
	field := "semantic." + alias
	family, variant, ok := strings.Cut(alias, ".")
	if !ok || variant == "" {
		return apperrors.NewValidationError(field, "alias must be family.variant", nil)
	}
	if !IsSemanticFamily(family) {
		return apperrors.NewValidationError(field, fmt.Sprintf("unknown family %q", family), nil)
	}
	for _, ref := range []struct {
		mode Mode
		ref  ColorRef
	}{{ModeLight, color.Light}, {ModeDark, color.Dark}} {
		if ref.ref.IsLiteral() {
			continue
		}
		if ref.ref.Scale == "" {
			return apperrors.NewValidationError(field+"."+ref.mode.String(), "reference must not be empty", nil)
		}
		if _, ok := colors[ref.ref.Scale]; !ok {
			return apperrors.NewValidationError(field+"."+ref.mode.String(), fmt.Sprintf("references unknown scale %q", ref.ref.Scale), nil)
		}
	}
	return nil
}

func validateSizes(table string, sizes []Size) error {
	if len(sizes) == 0 {
		return apperrors.NewValidationError(table, "scale must define at least one size", nil)
	}
	seen := make(map[string]struct{}, len(sizes))
	for i, size := range sizes {
		if strings.TrimSpace(size.Key) == "" {
			return apperrors.NewValidationError(fmt.Sprintf("%s[%d]", table, i), "key must not be empty", nil)
		}
		if _, dup := seen[size.Key]; dup {
			return apperrors.NewValidationError(table+"."+size.Key, "duplicate key", nil)
		}
		seen[size.Key] = struct{}{}
		if size.Value < 0 {
			return apperrors.NewValidationError(table+"."+size.Key, "size must not be negative", nil)
		}
		if i > 0 && size.Value <= sizes[i-1].Value {
			return apperrors.NewValidationError(
				table+"."+size.Key,
				fmt.Sprintf("must be greater than %s (%s)", sizes[i-1].Key, sizes[i-1].Value),
				nil,
			)
		}
	}
	return nil
}

func validateShadows(shadows []ShadowToken) error {
	if len(shadows) == 0 {
		return apperrors.NewValidationError("shadows", "scale must define at least one shadow", nil)
	}
	seen := make(map[string]struct{}, len(shadows))
	for i, token := range shadows {
		if strings.TrimSpace(token.Key) == "" {
			return apperrors.NewValidationError(fmt.Sprintf("shadows[%d]", i), "key must not be empty", nil)
		}
		if _, dup := seen[token.Key]; dup {
			return apperrors.NewValidationError("shadows."+token.Key, "duplicate key", nil)
		}
		seen[token.Key] = struct{}{}
		for j, layer := range token.Value {
			if strings.TrimSpace(layer.Color) == "" {
				return apperrors.NewValidationError(fmt.Sprintf("shadows.%s.layers[%d]", token.Key, j), "color must not be empty", nil)
			}
			if layer.Blur < 0 {
				return apperrors.NewValidationError(fmt.Sprintf("shadows.%s.layers[%d]", token.Key, j), "blur must not be negative", nil)
			}
		}
	}
	return nil
}

func validateBreakpoints(table BreakpointTable) error {
	if len(table) == 0 {
		return apperrors.NewValidationError("breakpoints", "table must define at least one breakpoint", nil)
	}
	seen := make(map[string]struct{}, len(table))
	for i, bp := range table {
		if strings.TrimSpace(bp.Name) == "" {
			return apperrors.NewValidationError(fmt.Sprintf("breakpoints[%d]", i), "name must not be empty", nil)
		}
		if _, dup := seen[bp.Name]; dup {
			return apperrors.NewValidationError("breakpoints."+bp.Name, "duplicate name", nil)
		}
		seen[bp.Name] = struct{}{}
		if bp.MinWidth < 0 {
			return apperrors.NewValidationError("breakpoints."+bp.Name, "minimum width must not be negative", nil)
		}
		if i > 0 && bp.MinWidth <= table[i-1].MinWidth {
			return apperrors.NewValidationError(
				"breakpoints."+bp.Name,
				fmt.Sprintf("minimum width must be greater than %s (%d)", table[i-1].Name, table[i-1].MinWidth),
				nil,
			)
		}
	}
	return nil
}
