package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/app"
	"github.com/alexisbeaulieu97/themekit/internal/styles"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
)

func newTokensCmd(flags *rootFlags) *cobra.Command {
	var swatches bool

	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "List the loaded token tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := flags.openKit(cmd, nil, app.Options{})
			if err != nil {
				return err
			}
			defer kit.Close()

			printTokens(cmd.OutOrStdout(), kit, swatches)
			return nil
		},
	}
	cmd.Flags().BoolVar(&swatches, "swatches", false, "Render color swatches")

	return cmd
}

func printTokens(out io.Writer, kit *app.Kit, swatches bool) {
	store := kit.Tokens
	mode := kit.Modes.Current()
	render := func(value, label string) string {
		if swatches {
			return styles.Swatch(value, label)
		}
		return label + "=" + value
	}

	fmt.Fprintf(out, "colors (%s):\n", mode)
	for _, name := range store.ScaleNames() {
		scale, err := store.ColorScale(name)
		if err != nil {
			continue
		}
		cells := make([]string, 0, len(scale))
		for _, shade := range scale.Shades() {
			cells = append(cells, render(scale[shade], fmt.Sprintf("%d", shade)))
		}
		fmt.Fprintf(out, "  %-10s %s\n", name, strings.Join(cells, " "))
	}

	fmt.Fprintln(out, "semantic:")
	for _, alias := range store.SemanticNames() {
		value, _ := store.SemanticValue(alias, mode)
		fmt.Fprintf(out, "  %s\n", render(value, alias))
	}

	printSizes(out, "spacing", store.SpacingScale())
	printSizes(out, "typography", store.TypographyScale())

	fmt.Fprintln(out, "shadows:")
	for _, shadow := range store.ShadowScale() {
		fmt.Fprintf(out, "  %s=%s\n", shadow.Key, shadow.Value)
	}

	fmt.Fprintln(out, "breakpoints:")
	for _, bp := range store.Breakpoints() {
		fmt.Fprintf(out, "  %s=%dpx\n", bp.Name, bp.MinWidth)
	}
}

func printSizes(out io.Writer, title string, sizes []tokens.Size) {
	parts := make([]string, len(sizes))
	for i, size := range sizes {
		parts[i] = size.Key + "=" + size.Value.String()
	}
	fmt.Fprintf(out, "%s:\n  %s\n", title, strings.Join(parts, " "))
}
