package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/app"
	"github.com/alexisbeaulieu97/themekit/internal/config"
	"github.com/alexisbeaulieu97/themekit/internal/ports"
)

type rootFlags struct {
	configPath string
	tokensFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "themekit",
		Short:         "themekit resolves design tokens for light and dark modes across breakpoints",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default $XDG_CONFIG_HOME/themekit/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.tokensFile, "tokens", "", "Token YAML file overriding tokens_file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newResolveCmd(flags))
	cmd.AddCommand(newModeCmd(flags))
	cmd.AddCommand(newBreakpointCmd(flags))
	cmd.AddCommand(newProjectCmd(flags))
	cmd.AddCommand(newTokensCmd(flags))
	cmd.AddCommand(newDiffCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))

	return cmd
}

func (f *rootFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.tokensFile != "" {
		cfg.TokensFile = f.tokensFile
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// openKit builds the services for one command invocation. Logs go to the
// command's stderr so stdout carries only results. The caller closes the kit.
func (f *rootFlags) openKit(cmd *cobra.Command, mutate func(*config.Config), opts app.Options) (*app.Kit, error) {
	cfg, err := f.loadConfig()
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(cfg)
	}
	opts.Config = cfg
	if opts.LogWriter == nil {
		opts.LogWriter = cmd.ErrOrStderr()
	}

	ctx := ports.WithCorrelationID(cmd.Context(), ports.GenerateCorrelationID())
	cmd.SetContext(ctx)
	return app.New(ctx, opts)
}
