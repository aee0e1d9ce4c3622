package tokens

import (
	"sort"
	"strings"

	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// Base scale roles resolve through a shade.
const (
	RolePrimary   = "primary"
	RoleSecondary = "secondary"
	RoleGray      = "gray"
)

// Status roles are single-valued: the shade argument is ignored.
const (
	RoleSuccess = "success"
	RoleWarning = "warning"
	RoleDanger  = "danger"
	RoleInfo    = "info"
)

// Semantic families resolve through mode-dependent aliases.
const (
	FamilyText       = "text"
	FamilyBackground = "background"
	FamilyBorder     = "border"
	FamilySurface    = "surface"
)

var (
	scaleRoles       = []string{RolePrimary, RoleSecondary, RoleGray}
	statusRoles      = []string{RoleSuccess, RoleWarning, RoleDanger, RoleInfo}
	semanticFamilies = []string{FamilyText, FamilyBackground, FamilyBorder, FamilySurface}

	// familyDefaults names the alias used when a bare family is requested.
	familyDefaults = map[string]string{
		FamilyText:       "text.primary",
		FamilyBackground: "background.primary",
		FamilyBorder:     "border.medium",
		FamilySurface:    "surface.primary",
	}
)

// ColorNames returns the closed enumeration of supported color names.
func ColorNames() []string {
	names := make([]string, 0, len(scaleRoles)+len(statusRoles)+len(semanticFamilies))
	names = append(names, scaleRoles...)
	names = append(names, statusRoles...)
	return append(names, semanticFamilies...)
}

// IsScaleRole reports whether role resolves through a shade.
func IsScaleRole(role string) bool { return contains(scaleRoles, role) }

// IsStatusRole reports whether role is a single-valued status color.
func IsStatusRole(role string) bool { return contains(statusRoles, role) }

// IsSemanticFamily reports whether family is a mode-dependent alias family.
func IsSemanticFamily(family string) bool { return contains(semanticFamilies, family) }

// SemanticAlias expands a role to its full alias: "text" becomes
// "text.primary" and "border.light" is returned unchanged. The boolean is
// false when the role is not in a semantic family.
func SemanticAlias(role string) (string, bool) {
	family, _, dotted := strings.Cut(role, ".")
	if !IsSemanticFamily(family) {
		return "", false
	}
	if !dotted {
		return familyDefaults[family], true
	}
	return role, true
}

// Tables is the raw input used to construct a Store.
type Tables struct {
	Colors      map[string]ColorScale
	Semantic    map[string]SemanticColor
	Spacing     []Size
	Typography  []Size
	Shadows     []ShadowToken
	Breakpoints BreakpointTable
}

// Store holds validated, immutable token tables. Customizing a theme means
// building a new Store; entries are never patched in place.
type Store struct {
	colors      map[string]ColorScale
	semantic    map[string]SemanticColor
	spacing     []Size
	typography  []Size
	shadows     []ShadowToken
	breakpoints BreakpointTable

	spacingIdx    map[string]int
	typographyIdx map[string]int
	shadowIdx     map[string]int
}

// New validates tables and returns a Store holding a private copy of them.
func New(tables Tables) (*Store, error) {
	if err := Validate(tables); err != nil {
		return nil, err
	}

	s := &Store{
		colors:      make(map[string]ColorScale, len(tables.Colors)),
		semantic:    make(map[string]SemanticColor, len(tables.Semantic)),
		spacing:     append([]Size(nil), tables.Spacing...),
		typography:  append([]Size(nil), tables.Typography...),
		shadows:     make([]ShadowToken, len(tables.Shadows)),
		breakpoints: tables.Breakpoints.clone(),
	}
	for name, scale := range tables.Colors {
		s.colors[name] = scale.clone()
	}
	for alias, color := range tables.Semantic {
		s.semantic[alias] = color
	}
	for i, token := range tables.Shadows {
		s.shadows[i] = ShadowToken{Key: token.Key, Value: append(Shadow(nil), token.Value...)}
	}

	s.spacingIdx = indexSizes(s.spacing)
	s.typographyIdx = indexSizes(s.typography)
	s.shadowIdx = make(map[string]int, len(s.shadows))
	for i, token := range s.shadows {
		s.shadowIdx[token.Key] = i
	}
	return s, nil
}

// ColorScale returns a copy of the named scale. A semantic family name
// returns the light ramp behind the family's default alias: "text" yields the
// scale text.primary points at, and a literal alias yields a single 500 entry.
func (s *Store) ColorScale(name string) (ColorScale, error) {
	scale, ok := s.lookupScale(name)
	if !ok {
		return nil, apperrors.NewUnknownTokenError(apperrors.TokenKindColor, name, suggest(name, s.knownColorNames())...)
	}
	return scale.clone(), nil
}

// ShadeValue returns the color at shade in the named scale, falling back to
// the nearest defined shade below it, then to the 500 shade. It fails only
// for unknown scales.
func (s *Store) ShadeValue(scaleName string, shade Shade) (string, error) {
	scale, ok := s.lookupScale(scaleName)
	if !ok {
		return "", apperrors.NewUnknownTokenError(apperrors.TokenKindColor, scaleName, suggest(scaleName, s.knownColorNames())...)
	}
	value, _ := scale.Nearest(shade)
	return value, nil
}

func (s *Store) lookupScale(name string) (ColorScale, bool) {
	if scale, ok := s.colors[name]; ok {
		return scale, true
	}
	if !IsSemanticFamily(name) {
		return nil, false
	}
	color, ok := s.semantic[familyDefaults[name]]
	if !ok {
		return s.colors[RoleGray], true
	}
	if color.Light.IsLiteral() {
		return ColorScale{DefaultShade: color.Light.Value}, true
	}
	scale, ok := s.colors[color.Light.Scale]
	return scale, ok
}

func (s *Store) knownColorNames() []string {
	return append(s.ScaleNames(), semanticFamilies...)
}

// HasScale reports whether a color scale is defined.
func (s *Store) HasScale(name string) bool {
	_, ok := s.colors[name]
	return ok
}

// ScaleNames returns the defined color scale names sorted alphabetically.
func (s *Store) ScaleNames() []string {
	return sortedKeys(s.colors)
}

// Semantic returns the alias entry, e.g. "text.primary".
func (s *Store) Semantic(alias string) (SemanticColor, bool) {
	color, ok := s.semantic[alias]
	return color, ok
}

// SemanticValue resolves alias for mode to a concrete color.
func (s *Store) SemanticValue(alias string, mode Mode) (string, bool) {
	color, ok := s.semantic[alias]
	if !ok {
		return "", false
	}
	return s.refValue(color.Ref(mode))
}

// SemanticNames returns all aliases sorted alphabetically.
func (s *Store) SemanticNames() []string {
	return sortedKeys(s.semantic)
}

func (s *Store) refValue(ref ColorRef) (string, bool) {
	if ref.IsLiteral() {
		return ref.Value, true
	}
	scale, ok := s.colors[ref.Scale]
	if !ok {
		return "", false
	}
	return scale.Nearest(ref.Shade)
}

// Spacing returns the spacing length for key.
func (s *Store) Spacing(key string) (Length, bool) {
	return lookupSize(s.spacing, s.spacingIdx, key)
}

// SpacingScale returns the ordered spacing scale.
func (s *Store) SpacingScale() []Size {
	return append([]Size(nil), s.spacing...)
}

// FontSize returns the font size for key.
func (s *Store) FontSize(key string) (Length, bool) {
	return lookupSize(s.typography, s.typographyIdx, key)
}

// TypographyScale returns the ordered font size scale.
func (s *Store) TypographyScale() []Size {
	return append([]Size(nil), s.typography...)
}

// Shadow returns the shadow for key.
func (s *Store) Shadow(key string) (Shadow, bool) {
	i, ok := s.shadowIdx[key]
	if !ok {
		return nil, false
	}
	return append(Shadow(nil), s.shadows[i].Value...), true
}

// ShadowScale returns the ordered shadow scale.
func (s *Store) ShadowScale() []ShadowToken {
	out := make([]ShadowToken, len(s.shadows))
	for i, token := range s.shadows {
		out[i] = ShadowToken{Key: token.Key, Value: append(Shadow(nil), token.Value...)}
	}
	return out
}

// Breakpoints returns a copy of the breakpoint table.
func (s *Store) Breakpoints() BreakpointTable {
	return s.breakpoints.clone()
}

func indexSizes(sizes []Size) map[string]int {
	idx := make(map[string]int, len(sizes))
	for i, size := range sizes {
		idx[size.Key] = i
	}
	return idx
}

func lookupSize(sizes []Size, idx map[string]int, key string) (Length, bool) {
	i, ok := idx[key]
	if !ok {
		return 0, false
	}
	return sizes[i].Value, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
