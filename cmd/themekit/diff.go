package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/app"
	"github.com/alexisbeaulieu97/themekit/internal/resolver"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
	"github.com/alexisbeaulieu97/themekit/pkg/diff"
)

func newDiffCmd(flags *rootFlags) *cobra.Command {
	var against string

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare presentation variables between modes or token files",
		Long: "Without --against, diff compares the light and dark variables of the loaded tokens.\n" +
			"With --against FILE, it compares the loaded tokens with FILE in the active mode.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := flags.openKit(cmd, nil, app.Options{})
			if err != nil {
				return err
			}
			defer kit.Close()

			var expected, actual, expectedLabel, actualLabel string
			if against == "" {
				expected = renderVariables(kit.Resolver.Variables(tokens.ModeLight))
				actual = renderVariables(kit.Resolver.Variables(tokens.ModeDark))
				expectedLabel, actualLabel = "light", "dark"
			} else {
				other, err := tokens.LoadFile(against)
				if err != nil {
					return err
				}
				mode := kit.Modes.Current()
				otherResolver := resolver.New(other, resolver.StaticMode(mode))
				expected = renderVariables(kit.Resolver.Variables(mode))
				actual = renderVariables(otherResolver.Variables(mode))
				expectedLabel, actualLabel = "current ("+mode.String()+")", against
			}

			out := cmd.OutOrStdout()
			result := diff.Unified(expected, actual, expectedLabel, actualLabel)
			if result == "" {
				fmt.Fprintln(out, "no differences")
				return nil
			}
			removed, added := diff.Changes(expected, actual)
			fmt.Fprint(out, result)
			fmt.Fprintf(out, "%d removed, %d added\n", removed, added)
			return nil
		},
	}
	cmd.Flags().StringVar(&against, "against", "", "Token YAML file to compare with")

	return cmd
}

func renderVariables(vars resolver.Variables) string {
	var b strings.Builder
	for _, name := range vars.Names() {
		fmt.Fprintf(&b, "%s=%s\n", name, vars[name])
	}
	return b.String()
}
