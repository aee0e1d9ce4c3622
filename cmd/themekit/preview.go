package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/app"
	"github.com/alexisbeaulieu97/themekit/internal/environment"
	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/themekit/internal/tui/preview"
)

// previewLogLimit bounds the log entries kept for the preview's log pane.
const previewLogLimit = 200

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Open a live preview of the theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The alternate screen owns the terminal, so logs are buffered
			// and flushed to stderr once the preview exits.
			buffer := logging.NewEventBuffer(previewLogLimit)
			kit, err := flags.openKit(cmd, nil, app.Options{Logger: logging.NewBufferedLogger(buffer)})
			if err != nil {
				return err
			}
			defer kit.Close()

			ctx := cmd.Context()
			viewport := environment.NewManualViewport()
			resizeSub, _ := kit.Engine.Attach(ctx, viewport)
			defer resizeSub.Unsubscribe()

			if prefSub, err := kit.Modes.WatchPreference(ctx); err == nil {
				defer prefSub.Unsubscribe()
			}

			model := preview.NewModel(ctx, preview.Deps{
				Modes:      kit.Modes,
				Engine:     kit.Engine,
				Resolver:   kit.Resolver,
				Projector:  kit.Projector,
				Viewport:   viewport,
				Buffer:     buffer,
				CellWidth:  kit.Config.Viewport.CellWidth,
				CellHeight: kit.Config.Viewport.CellHeight,
			})

			program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			_, runErr := program.Run()

			if stderrLog, err := app.NewLogger(kit.Config.Log, cmd.ErrOrStderr()); err == nil {
				buffer.Flush(stderrLog)
			}
			if runErr != nil {
				return fmt.Errorf("preview: %w", runErr)
			}
			return nil
		},
	}
}
