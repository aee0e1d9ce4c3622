package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/app"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
	"github.com/alexisbeaulieu97/themekit/internal/responsive"
)

type viewportFlags struct {
	width  int
	height int
}

func (v *viewportFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&v.width, "width", 0, "Viewport width in px (default: measure the terminal)")
	cmd.Flags().IntVar(&v.height, "height", 0, "Viewport height in px")
}

// apply feeds the engine either the flag size or the terminal size. Any
// explicit --width, including 0, skips measuring the terminal. The returned
// subscription is always safe to release.
func (v *viewportFlags) apply(cmd *cobra.Command, kit *app.Kit) (ports.Subscription, error) {
	if cmd.Flags().Changed("width") {
		if v.width < 0 || v.height < 0 {
			return nil, fmt.Errorf("viewport size must not be negative: %dx%d", v.width, v.height)
		}
		kit.Engine.Update(cmd.Context(), ports.Viewport{Width: v.width, Height: v.height})
		return ports.SubscriptionFunc(func() {}), nil
	}
	sub, err := kit.Engine.Attach(cmd.Context(), kit.TerminalViewport())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v; using %dpx\n", err, kit.Engine.Viewport().Width)
	}
	return sub, nil
}

func newBreakpointCmd(flags *rootFlags) *cobra.Command {
	size := &viewportFlags{}

	cmd := &cobra.Command{
		Use:   "breakpoint",
		Short: "Classify a viewport into a breakpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := flags.openKit(cmd, nil, app.Options{})
			if err != nil {
				return err
			}
			defer kit.Close()

			sub, err := size.apply(cmd, kit)
			if err != nil {
				return err
			}
			defer sub.Unsubscribe()

			engine := kit.Engine
			viewport := engine.Viewport()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "breakpoint: %s\n", engine.CurrentBreakpoint())
			fmt.Fprintf(out, "viewport:   %dx%dpx\n", viewport.Width, viewport.Height)
			fmt.Fprintf(out, "device:     %s\n", deviceClass(engine))
			fmt.Fprintf(out, "touch:      %t\n", engine.IsTouchCapable())
			return nil
		},
	}
	size.register(cmd)

	return cmd
}

func deviceClass(engine *responsive.Engine) string {
	switch {
	case engine.IsDesktop():
		return "desktop"
	case engine.IsTablet():
		return "tablet"
	default:
		return "mobile"
	}
}
