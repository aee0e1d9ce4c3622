package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/app"
	"github.com/alexisbeaulieu97/themekit/internal/projection"
)

// defaultKey names the default entry in project arguments.
const defaultKey = "default"

func newProjectCmd(flags *rootFlags) *cobra.Command {
	size := &viewportFlags{}

	cmd := &cobra.Command{
		Use:   "project BREAKPOINT=VALUE...",
		Short: "Project per-breakpoint values onto the active breakpoint",
		Long: "Project picks the value for the active breakpoint from BREAKPOINT=VALUE pairs.\n" +
			"Use default=VALUE for the value below every override, e.g.\n\n" +
			"  themekit project --width 900 default=stack lg=grid",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := flags.openKit(cmd, nil, app.Options{})
			if err != nil {
				return err
			}
			defer kit.Close()

			values, err := parseResponsive(args, kit.Engine.Table().Names())
			if err != nil {
				return err
			}

			sub, err := size.apply(cmd, kit)
			if err != nil {
				return err
			}
			defer sub.Unsubscribe()

			active := kit.Engine.CurrentBreakpoint()
			value, ok := projection.Project(values, active, kit.Engine.Table())
			if !ok {
				return fmt.Errorf("no value for breakpoint %s", active)
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
	size.register(cmd)

	return cmd
}

func parseResponsive(args []string, breakpoints []string) (projection.Responsive[string], error) {
	var values projection.Responsive[string]
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return values, fmt.Errorf("invalid argument %q (want BREAKPOINT=VALUE)", arg)
		}
		if name == defaultKey {
			values = values.Or(value)
			continue
		}
		if !contains(breakpoints, name) {
			return values, fmt.Errorf("unknown breakpoint %q (known: %s)", name, strings.Join(breakpoints, ", "))
		}
		values = values.At(name, value)
	}
	return values, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
