package tokens

// DefaultTables returns the built-in token tables. Each call returns fresh
// values, so callers may derive custom tables from it before calling New.
func DefaultTables() Tables {
	return Tables{
		Colors: map[string]ColorScale{
			RolePrimary: scale(
				"#eff6ff", "#dbeafe", "#bfdbfe", "#93c5fd", "#60a5fa",
				"#3b82f6", "#2563eb", "#1d4ed8", "#1e40af", "#1e3a8a",
			),
			RoleSecondary: scale(
				"#faf5ff", "#f3e8ff", "#e9d5ff", "#d8b4fe", "#c084fc",
				"#a855f7", "#9333ea", "#7e22ce", "#6b21a8", "#581c87",
			),
			RoleGray: scale(
				"#f8fafc", "#f1f5f9", "#e2e8f0", "#cbd5e1", "#94a3b8",
				"#64748b", "#475569", "#334155", "#1e293b", "#0f172a",
			),
			RoleSuccess: scale(
				"#f0fdf4", "#dcfce7", "#bbf7d0", "#86efac", "#4ade80",
				"#22c55e", "#16a34a", "#15803d", "#166534", "#14532d",
			),
			RoleWarning: scale(
				"#fefce8", "#fef9c3", "#fef08a", "#fde047", "#facc15",
				"#eab308", "#ca8a04", "#a16207", "#854d0e", "#713f12",
			),
			RoleDanger: scale(
				"#fef2f2", "#fee2e2", "#fecaca", "#fca5a5", "#f87171",
				"#ef4444", "#dc2626", "#b91c1c", "#991b1b", "#7f1d1d",
			),
			RoleInfo: scale(
				"#ecfeff", "#cffafe", "#a5f3fc", "#67e8f9", "#22d3ee",
				"#06b6d4", "#0891b2", "#0e7490", "#155e75", "#164e63",
			),
		},
		Semantic: map[string]SemanticColor{
			"text.primary":         semantic("gray", Shade900, "gray", Shade50),
			"text.secondary":       semantic("gray", Shade600, "gray", Shade300),
			"text.muted":           semantic("gray", Shade500, "gray", Shade400),
			"text.inverse":         {Light: ColorRef{Value: "#ffffff"}, Dark: ColorRef{Scale: RoleGray, Shade: Shade900}},
			"background.primary":   {Light: ColorRef{Value: "#ffffff"}, Dark: ColorRef{Scale: RoleGray, Shade: Shade900}},
			"background.secondary": semantic("gray", Shade50, "gray", Shade800),
			"background.tertiary":  semantic("gray", Shade100, "gray", Shade700),
			"border.light":         semantic("gray", Shade200, "gray", Shade700),
			"border.medium":        semantic("gray", Shade300, "gray", Shade600),
			"border.dark":          semantic("gray", Shade400, "gray", Shade500),
			"surface.primary":      {Light: ColorRef{Value: "#ffffff"}, Dark: ColorRef{Scale: RoleGray, Shade: Shade800}},
			"surface.secondary":    semantic("gray", Shade50, "gray", Shade700),
			"surface.elevated":     {Light: ColorRef{Value: "#ffffff"}, Dark: ColorRef{Scale: RoleGray, Shade: Shade700}},
			"surface.overlay":      {Light: ColorRef{Value: "rgba(15, 23, 42, 0.5)"}, Dark: ColorRef{Value: "rgba(0, 0, 0, 0.7)"}},
		},
		Spacing: []Size{
			{Key: "none", Value: 0},
			{Key: "xs", Value: 4},
			{Key: "sm", Value: 8},
			{Key: "md", Value: 16},
			{Key: "lg", Value: 24},
			{Key: "xl", Value: 32},
			{Key: "2xl", Value: 48},
			{Key: "3xl", Value: 64},
		},
		Typography: []Size{
			{Key: "xs", Value: 12},
			{Key: "sm", Value: 14},
			{Key: "base", Value: 16},
			{Key: "lg", Value: 18},
			{Key: "xl", Value: 20},
			{Key: "2xl", Value: 24},
			{Key: "3xl", Value: 30},
			{Key: "4xl", Value: 36},
		},
		Shadows: []ShadowToken{
			{Key: "none", Value: nil},
			{Key: "sm", Value: Shadow{
				{Y: 1, Blur: 2, Color: "rgba(0, 0, 0, 0.05)"},
			}},
			{Key: "md", Value: Shadow{
				{Y: 4, Blur: 6, Spread: -1, Color: "rgba(0, 0, 0, 0.1)"},
				{Y: 2, Blur: 4, Spread: -2, Color: "rgba(0, 0, 0, 0.1)"},
			}},
			{Key: "lg", Value: Shadow{
				{Y: 10, Blur: 15, Spread: -3, Color: "rgba(0, 0, 0, 0.1)"},
				{Y: 4, Blur: 6, Spread: -4, Color: "rgba(0, 0, 0, 0.1)"},
			}},
			{Key: "xl", Value: Shadow{
				{Y: 20, Blur: 25, Spread: -5, Color: "rgba(0, 0, 0, 0.1)"},
				{Y: 8, Blur: 10, Spread: -6, Color: "rgba(0, 0, 0, 0.1)"},
			}},
			{Key: "2xl", Value: Shadow{
				{Y: 25, Blur: 50, Spread: -12, Color: "rgba(0, 0, 0, 0.25)"},
			}},
		},
		Breakpoints: BreakpointTable{
			{Name: "sm", MinWidth: 0},
			{Name: "md", MinWidth: 768},
			{Name: "lg", MinWidth: 1024},
			{Name: "xl", MinWidth: 1280},
			{Name: "2xl", MinWidth: 1536},
		},
	}
}

// Default returns a Store built from DefaultTables.
func Default() *Store {
	store, err := New(DefaultTables())
	if err != nil {
		panic("tokens: invalid default tables: " + err.Error())
	}
	return store
}

// scale builds a ColorScale from up to ten colors ordered lightest to darkest.
func scale(colors ...string) ColorScale {
	cs := make(ColorScale, len(colors))
	for i := 0; i < len(StandardShades) && i < len(colors); i++ {
		cs[StandardShades[i]] = colors[i]
	}
	return cs
}

func semantic(lightScale string, lightShade Shade, darkScale string, darkShade Shade) SemanticColor {
	return SemanticColor{
		Light: ColorRef{Scale: lightScale, Shade: lightShade},
		Dark:  ColorRef{Scale: darkScale, Shade: darkShade},
	}
}
