package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/themekit/internal/app"
	"github.com/alexisbeaulieu97/themekit/internal/mode"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
	"github.com/alexisbeaulieu97/themekit/internal/responsive"
)

func newWatchCmd(flags *rootFlags) *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow mode and breakpoint changes until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, err := flags.openKit(cmd, nil, app.Options{})
			if err != nil {
				return err
			}
			defer kit.Close()

			ctx := cmd.Context()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			return watch(ctx, cmd, kit)
		},
	}
	cmd.Flags().DurationVar(&duration, "for", 0, "Stop after this long (default: until interrupted)")

	return cmd
}

func watch(ctx context.Context, cmd *cobra.Command, kit *app.Kit) error {
	out := cmd.OutOrStdout()
	lines := make(chan string, 16)
	emit := func(line string) {
		select {
		case lines <- line:
		case <-ctx.Done():
		}
	}

	fmt.Fprintf(out, "mode %s, breakpoint %s\n", kit.Modes.Current(), kit.Engine.CurrentBreakpoint())

	var subs []ports.Subscription
	defer func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}()

	modeSub, err := kit.Modes.Subscribe(func(c mode.Change) {
		emit(fmt.Sprintf("mode %s -> %s (%s)", c.Previous, c.Current, c.Source))
	})
	if err != nil {
		return err
	}
	subs = append(subs, modeSub)

	bpSub, err := kit.Engine.Subscribe(func(c responsive.Change) {
		emit(fmt.Sprintf("breakpoint %s -> %s (%dpx)", c.Previous, c.Current, c.Viewport.Width))
	})
	if err != nil {
		return err
	}
	subs = append(subs, bpSub)

	prefSub, err := kit.Modes.WatchPreference(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: system preference changes not observed: %v\n", err)
	}
	if prefSub != nil {
		subs = append(subs, prefSub)
	}

	resizeSub, err := kit.Engine.Attach(ctx, kit.TerminalViewport())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: terminal size not observed: %v\n", err)
	}
	subs = append(subs, resizeSub)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case line := <-lines:
				fmt.Fprintln(out, line)
			case <-gctx.Done():
				for {
					select {
					case line := <-lines:
						fmt.Fprintln(out, line)
					default:
						return nil
					}
				}
			}
		}
	})
	return g.Wait()
}
