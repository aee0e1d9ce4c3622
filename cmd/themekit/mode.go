package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/app"
	"github.com/alexisbeaulieu97/themekit/internal/mode"
)

func newModeCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Inspect or change the color mode",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the active mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withModes(cmd, flags, func(m *mode.Manager) error {
				printMode(cmd, m)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set light|dark",
		Short: "Choose a mode explicitly and remember it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withModes(cmd, flags, func(m *mode.Manager) error {
				if !m.SetThemeName(cmd.Context(), args[0]) {
					return fmt.Errorf("unknown mode %q (want light or dark)", args[0])
				}
				printMode(cmd, m)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Switch to the opposite mode and remember it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withModes(cmd, flags, func(m *mode.Manager) error {
				m.Toggle(cmd.Context())
				printMode(cmd, m)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the explicit choice and follow the system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withModes(cmd, flags, func(m *mode.Manager) error {
				m.ClearChoice(cmd.Context())
				printMode(cmd, m)
				return nil
			})
		},
	})

	return cmd
}

func withModes(cmd *cobra.Command, flags *rootFlags, fn func(*mode.Manager) error) error {
	kit, err := flags.openKit(cmd, nil, app.Options{})
	if err != nil {
		return err
	}
	defer kit.Close()

	if err := fn(kit.Modes); err != nil {
		return err
	}
	if err := kit.Modes.PersistenceErr(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: choice not saved: %v\n", err)
	}
	return nil
}

func printMode(cmd *cobra.Command, m *mode.Manager) {
	source := "system"
	if m.HasExplicitChoice() {
		source = "explicit"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", m.Current(), source)
}
