// Package resolver maps semantic token requests to concrete values for the
// active light/dark mode. Soft lookups never fail: unknown names resolve to
// documented fallbacks. Lookup* variants report unknown names as errors.
package resolver

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// Fallback keys used by the soft lookups.
const (
	FallbackSpacing  = "md"
	FallbackFontSize = "base"
	FallbackShadow   = "md"
)

// ModeSource supplies the active mode.
type ModeSource interface {
	Current() tokens.Mode
}

// ModeFunc adapts a function to ModeSource.
type ModeFunc func() tokens.Mode

// Current implements ModeSource.
func (f ModeFunc) Current() tokens.Mode {
	if f == nil {
		return tokens.DefaultMode
	}
	return f()
}

// StaticMode is a ModeSource that always reports the same mode.
type StaticMode tokens.Mode

// Current implements ModeSource.
func (m StaticMode) Current() tokens.Mode { return tokens.Mode(m) }

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrict makes soft lookups report each unknown token once through the
// logger. Results are unchanged.
func WithStrict(strict bool) Option {
	return func(r *Resolver) { r.strict = strict }
}

// WithLogger sets the logger used for strict-mode reports.
func WithLogger(logger ports.Logger) Option {
	return func(r *Resolver) { r.logger = logging.OrNoOp(logger) }
}

// Resolver resolves token requests against an immutable Store. It is safe
// for concurrent use.
type Resolver struct {
	store  *tokens.Store
	modes  ModeSource
	strict bool
	logger ports.Logger

	colors   sync.Map // colorKey -> string, resolved roles only
	reported sync.Map // string -> struct{}
}

type colorKey struct {
	role  string
	shade tokens.Shade
	mode  tokens.Mode
}

// New builds a Resolver. A nil store uses the built-in tables and a nil mode
// source always reports the default mode.
func New(store *tokens.Store, modes ModeSource, opts ...Option) *Resolver {
	if store == nil {
		store = tokens.Default()
	}
	if modes == nil {
		modes = StaticMode(tokens.DefaultMode)
	}
	r := &Resolver{
		store:  store,
		modes:  modes,
		logger: logging.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Store returns the token store backing the resolver.
func (r *Resolver) Store() *tokens.Store { return r.store }

// Strict reports whether strict-mode reporting is enabled.
func (r *Resolver) Strict() bool { return r.strict }

// Mode returns the mode the soft lookups currently resolve against.
func (r *Resolver) Mode() tokens.Mode {
	mode := r.modes.Current()
	if !mode.Valid() {
		return tokens.DefaultMode
	}
	return mode
}

// Color resolves role at shade for the active mode. A shade of zero or less
// means 500.
func (r *Resolver) Color(role string, shade tokens.Shade) string {
	return r.ColorFor(r.Mode(), role, shade)
}

// ColorFor resolves role at shade for an explicit mode:
//   - scale roles return the nearest defined shade
//   - status roles ignore shade and return their 500 value
//   - semantic families ignore shade and follow mode
//   - anything else returns primary at 500
func (r *Resolver) ColorFor(mode tokens.Mode, role string, shade tokens.Shade) string {
	if !mode.Valid() {
		mode = tokens.DefaultMode
	}
	key := normalizeKey(role, shade, mode)
	if cached, ok := r.colors.Load(key); ok {
		return cached.(string)
	}

	value, err := r.lookupColor(key)
	if err != nil {
		// Unknown roles are not memoized.
		r.report(apperrors.TokenKindColor, role)
		return r.fallbackColor()
	}
	r.colors.Store(key, value)
	return value
}

// LookupColor is the strict form of ColorFor.
func (r *Resolver) LookupColor(mode tokens.Mode, role string, shade tokens.Shade) (string, error) {
	if !mode.Valid() {
		mode = tokens.DefaultMode
	}
	return r.lookupColor(normalizeKey(role, shade, mode))
}

func (r *Resolver) lookupColor(key colorKey) (string, error) {
	switch {
	case tokens.IsStatusRole(key.role) || r.store.HasScale(key.role):
		return r.store.ShadeValue(key.role, key.shade)
	default:
		if alias, ok := tokens.SemanticAlias(key.role); ok {
			if value, ok := r.store.SemanticValue(alias, key.mode); ok {
				return value, nil
			}
		}
	}
	return "", apperrors.NewUnknownTokenError(apperrors.TokenKindColor, key.role, tokens.Suggest(key.role, r.colorNames())...)
}

func (r *Resolver) fallbackColor() string {
	value, err := r.store.ShadeValue(tokens.RolePrimary, tokens.DefaultShade)
	if err != nil {
		return ""
	}
	return value
}

func (r *Resolver) colorNames() []string {
	names := tokens.ColorNames()
	for _, name := range r.store.ScaleNames() {
		if !tokens.IsScaleRole(name) && !tokens.IsStatusRole(name) {
			names = append(names, name)
		}
	}
	return append(names, r.store.SemanticNames()...)
}

// normalizeKey folds requests that resolve identically onto one cache key.
func normalizeKey(role string, shade tokens.Shade, mode tokens.Mode) colorKey {
	if shade <= 0 {
		shade = tokens.DefaultShade
	}
	if tokens.IsStatusRole(role) {
		return colorKey{role: role, shade: tokens.DefaultShade}
	}
	if _, semantic := tokens.SemanticAlias(role); semantic {
		return colorKey{role: role, mode: mode}
	}
	return colorKey{role: role, shade: shade}
}

// Spacing resolves a spacing key, falling back to "md".
func (r *Resolver) Spacing(key string) tokens.Length {
	if v, ok := r.store.Spacing(key); ok {
		return v
	}
	r.report(apperrors.TokenKindSpacing, key)
	return fallbackSize(r.store.SpacingScale(), FallbackSpacing)
}

// LookupSpacing is the strict form of Spacing.
func (r *Resolver) LookupSpacing(key string) (tokens.Length, error) {
	if v, ok := r.store.Spacing(key); ok {
		return v, nil
	}
	return 0, apperrors.NewUnknownTokenError(apperrors.TokenKindSpacing, key, tokens.Suggest(key, sizeKeys(r.store.SpacingScale()))...)
}

// FontSize resolves a typography key, falling back to "base".
func (r *Resolver) FontSize(key string) tokens.Length {
	if v, ok := r.store.FontSize(key); ok {
		return v
	}
	r.report(apperrors.TokenKindFontSize, key)
	return fallbackSize(r.store.TypographyScale(), FallbackFontSize)
}

// LookupFontSize is the strict form of FontSize.
func (r *Resolver) LookupFontSize(key string) (tokens.Length, error) {
	if v, ok := r.store.FontSize(key); ok {
		return v, nil
	}
	return 0, apperrors.NewUnknownTokenError(apperrors.TokenKindFontSize, key, tokens.Suggest(key, sizeKeys(r.store.TypographyScale()))...)
}

// Shadow resolves a shadow key, falling back to "md".
func (r *Resolver) Shadow(key string) tokens.Shadow {
	if v, ok := r.store.Shadow(key); ok {
		return v
	}
	r.report(apperrors.TokenKindShadow, key)
	if v, ok := r.store.Shadow(FallbackShadow); ok {
		return v
	}
	scale := r.store.ShadowScale()
	return scale[len(scale)/2].Value
}

// LookupShadow is the strict form of Shadow.
func (r *Resolver) LookupShadow(key string) (tokens.Shadow, error) {
	if v, ok := r.store.Shadow(key); ok {
		return v, nil
	}
	scale := r.store.ShadowScale()
	keys := make([]string, len(scale))
	for i, token := range scale {
		keys[i] = token.Key
	}
	return nil, apperrors.NewUnknownTokenError(apperrors.TokenKindShadow, key, tokens.Suggest(key, keys)...)
}

// report logs an unknown token once per kind and name when strict.
func (r *Resolver) report(kind apperrors.TokenKind, name string) {
	if !r.strict {
		return
	}
	if _, seen := r.reported.LoadOrStore(string(kind)+"\x00"+name, struct{}{}); seen {
		return
	}
	r.logger.Warn(context.Background(), "unknown token, using fallback",
		"kind", string(kind),
		"token", name,
	)
}

// fallbackSize returns the preferred key's value, or the middle of the scale
// when a custom table does not define it. Validated scales are never empty.
func fallbackSize(scale []tokens.Size, preferred string) tokens.Length {
	for _, size := range scale {
		if size.Key == preferred {
			return size.Value
		}
	}
	if len(scale) == 0 {
		return 0
	}
	return scale[len(scale)/2].Value
}

func sizeKeys(scale []tokens.Size) []string {
	keys := make([]string, len(scale))
	for i, size := range scale {
		keys[i] = size.Key
	}
	return keys
}
