package resolver

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

func TestColorReturnsValueFromScale(t *testing.T) {
	r := New(nil, nil)
	store := r.Store()

	for _, role := range []string{tokens.RolePrimary, tokens.RoleSecondary, tokens.RoleGray} {
		scale, err := store.ColorScale(role)
		require.NoError(t, err)
		for _, shade := range tokens.StandardShades {
			assert.Equal(t, scale[shade], r.Color(role, shade), "%s.%d", role, shade)
		}
	}
}

func TestColorDefaultsShadeTo500(t *testing.T) {
	r := New(nil, nil)
	assert.Equal(t, "#3b82f6", r.Color(tokens.RolePrimary, 0))
	assert.Equal(t, "#3b82f6", r.Color(tokens.RolePrimary, -100))
}

func TestColorFallsBackToNearestLowerShade(t *testing.T) {
	tables := tokens.DefaultTables()
	tables.Colors[tokens.RolePrimary] = tokens.ColorScale{500: "#3b82f6", 600: "#2563eb"}
	store, err := tokens.New(tables)
	require.NoError(t, err)

	r := New(store, nil)
	assert.Equal(t, "#2563eb", r.Color(tokens.RolePrimary, tokens.Shade700))
}

func TestStatusRolesIgnoreShade(t *testing.T) {
	r := New(nil, nil)
	for _, shade := range []tokens.Shade{0, tokens.Shade100, tokens.Shade900} {
		assert.Equal(t, "#22c55e", r.Color(tokens.RoleSuccess, shade))
		assert.Equal(t, "#ef4444", r.Color(tokens.RoleDanger, shade))
	}
}

func TestSemanticFamiliesFollowMode(t *testing.T) {
	var (
		mu   sync.Mutex
		mode = tokens.ModeLight
	)
	r := New(nil, ModeFunc(func() tokens.Mode {
		mu.Lock()
		defer mu.Unlock()
		return mode
	}))

	assert.Equal(t, "#0f172a", r.Color(tokens.FamilyText, tokens.Shade100))
	assert.Equal(t, "#ffffff", r.Color(tokens.FamilyBackground, 0))
	assert.Equal(t, "#cbd5e1", r.Color(tokens.FamilyBorder, 0))
	assert.Equal(t, "#e2e8f0", r.Color("border.light", 0))

	mu.Lock()
	mode = tokens.ModeDark
	mu.Unlock()

	assert.Equal(t, "#f8fafc", r.Color(tokens.FamilyText, tokens.Shade100))
	assert.Equal(t, "#0f172a", r.Color(tokens.FamilyBackground, 0))
	assert.Equal(t, "#1e293b", r.Color(tokens.FamilySurface, 0))
}

func TestUnknownRoleFallsBackToPrimary500(t *testing.T) {
	r := New(nil, StaticMode(tokens.ModeDark))
	for _, role := range []string{"", "primry", "text.shiny", "rainbow", "PRIMARY"} {
		assert.Equal(t, "#3b82f6", r.Color(role, tokens.Shade900), "role %q", role)
	}
}

func TestInvalidModeResolvesAsLight(t *testing.T) {
	r := New(nil, StaticMode("sepia"))
	assert.Equal(t, tokens.ModeLight, r.Mode())
	assert.Equal(t, "#0f172a", r.Color(tokens.FamilyText, 0))
}

func TestSizeLookupsAreTotal(t *testing.T) {
	r := New(nil, nil)

	assert.Equal(t, tokens.Length(24), r.Spacing("lg"))
	assert.Equal(t, tokens.Length(16), r.Spacing("huge"))
	assert.Equal(t, tokens.Length(0), r.Spacing("none"))

	assert.Equal(t, tokens.Length(20), r.FontSize("xl"))
	assert.Equal(t, tokens.Length(16), r.FontSize(""))

	md, _ := r.Store().Shadow("md")
	assert.Equal(t, md, r.Shadow("giant"))
	assert.Equal(t, "none", r.Shadow("none").String())

	for _, key := range []string{"", " ", "md ", "\x00", strings.Repeat("x", 100)} {
		assert.NotZero(t, r.Spacing(key))
		assert.NotZero(t, r.FontSize(key))
		assert.NotEmpty(t, r.Shadow(key).String())
	}
}

func TestFallbackSizeWithoutPreferredKey(t *testing.T) {
	tables := tokens.DefaultTables()
	tables.Spacing = []tokens.Size{{Key: "tight", Value: 2}, {Key: "normal", Value: 6}, {Key: "loose", Value: 12}}
	store, err := tokens.New(tables)
	require.NoError(t, err)

	assert.Equal(t, tokens.Length(6), New(store, nil).Spacing("md"))
}

func TestLookupsReturnUnknownTokenError(t *testing.T) {
	r := New(nil, nil)

	_, err := r.LookupColor(tokens.ModeLight, "primry", 500)
	require.Error(t, err)
	var unknown *apperrors.UnknownTokenError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, apperrors.TokenKindColor, unknown.Kind)
	assert.Contains(t, unknown.Suggestions, tokens.RolePrimary)

	value, err := r.LookupColor(tokens.ModeDark, "text.secondary", 0)
	require.NoError(t, err)
	assert.Equal(t, "#cbd5e1", value)

	_, err = r.LookupSpacing("mdd")
	assert.ErrorIs(t, err, apperrors.ErrUnknownToken)
	_, err = r.LookupFontSize("huge")
	assert.ErrorIs(t, err, apperrors.ErrUnknownToken)
	_, err = r.LookupShadow("l")
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, apperrors.TokenKindShadow, unknown.Kind)
	assert.Contains(t, unknown.Suggestions, "lg")

	size, err := r.LookupFontSize("sm")
	require.NoError(t, err)
	assert.Equal(t, tokens.Length(14), size)
}

func TestStrictModeReportsOncePerToken(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Options{Writer: buf, Format: "logfmt"})
	require.NoError(t, err)

	r := New(nil, nil, WithStrict(true), WithLogger(logger))
	require.True(t, r.Strict())

	for i := 0; i < 3; i++ {
		r.Color("primry", tokens.Shade600)
		r.Spacing("huge")
	}
	r.FontSize("huge")

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "unknown token"))
	assert.Contains(t, out, "token=primry")
	assert.Contains(t, out, "kind=font-size")
}

func TestNonStrictIsSilent(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := logging.New(logging.Options{Writer: buf})
	require.NoError(t, err)

	r := New(nil, nil, WithLogger(logger))
	r.Color("primry", 0)
	assert.Empty(t, buf.String())
}

func TestMemoizedResultsMatchUncached(t *testing.T) {
	cached := New(nil, StaticMode(tokens.ModeDark))
	roles := append(tokens.ColorNames(), "border.dark", "unknown")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, role := range roles {
				for _, shade := range tokens.StandardShades {
					cached.Color(role, shade)
				}
			}
		}()
	}
	wg.Wait()

	for _, role := range roles {
		for _, shade := range tokens.StandardShades {
			fresh := New(nil, StaticMode(tokens.ModeDark))
			assert.Equal(t, fresh.Color(role, shade), cached.Color(role, shade), "%s.%d", role, shade)
		}
	}
}

func TestUnknownRolesAreNotMemoized(t *testing.T) {
	r := New(nil, nil)
	primary := r.Color(tokens.RolePrimary, 0)

	for i := 0; i < 100; i++ {
		assert.Equal(t, primary, r.Color(fmt.Sprintf("made-up-%d", i), 0))
	}

	entries := 0
	r.colors.Range(func(_, _ any) bool {
		entries++
		return true
	})
	assert.Equal(t, 1, entries, "only the resolved primary lookup is cached")
}

func TestCustomScaleResolvesByName(t *testing.T) {
	tables := tokens.DefaultTables()
	tables.Colors["brand"] = tokens.ColorScale{500: "#ff6600"}
	store, err := tokens.New(tables)
	require.NoError(t, err)

	assert.Equal(t, "#ff6600", New(store, nil).Color("brand", tokens.Shade800))
}

func TestVariables(t *testing.T) {
	r := New(nil, nil)

	light := r.Variables(tokens.ModeLight)
	dark := r.Variables(tokens.ModeDark)

	assert.Equal(t, "#0f172a", light["color.text.primary"])
	assert.Equal(t, "#f8fafc", dark["color.text.primary"])
	assert.Equal(t, "#22c55e", light["color.success"])
	assert.Equal(t, "#3b82f6", dark["color.primary"])
	assert.Equal(t, "16px", light["spacing.md"])
	assert.Equal(t, "16px", light["font-size.base"])
	assert.Equal(t, "none", light["shadow.none"])
	assert.Equal(t, len(light), len(dark))

	css := light.CSS()
	assert.Contains(t, css, "--color-text-primary: #0f172a;\n")
	assert.True(t, strings.HasPrefix(css, "--color-background-primary"))
}
