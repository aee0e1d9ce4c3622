package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/themekit/internal/app"
	"github.com/alexisbeaulieu97/themekit/internal/config"
	"github.com/alexisbeaulieu97/themekit/internal/tokens"
)

type resolveOptions struct {
	mode   string
	strict bool
	shade  int
	format string
}

func newResolveCmd(flags *rootFlags) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve tokens for the active or a given mode",
	}
	cmd.PersistentFlags().StringVarP(&opts.mode, "mode", "m", "", "Resolve for light or dark instead of the active mode")
	cmd.PersistentFlags().BoolVar(&opts.strict, "strict", false, "Fail on unknown tokens instead of falling back")

	color := &cobra.Command{
		Use:   "color ROLE",
		Short: "Resolve a color role, status role or semantic alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withResolver(cmd, flags, opts, func(r resolveContext) error {
				shade := tokens.Shade(opts.shade)
				if opts.strict {
					value, err := r.kit.Resolver.LookupColor(r.mode, args[0], shade)
					if err != nil {
						return err
					}
					return r.print(value)
				}
				return r.print(r.kit.Resolver.ColorFor(r.mode, args[0], shade))
			})
		},
	}
	color.Flags().IntVarP(&opts.shade, "shade", "s", int(tokens.DefaultShade), "Shade for scale roles (50-900)")

	cmd.AddCommand(color)
	cmd.AddCommand(newSizeResolveCmd(flags, opts, "spacing", "Resolve a spacing key",
		func(k *app.Kit, key string) (string, error) {
			v, err := k.Resolver.LookupSpacing(key)
			return v.String(), err
		},
		func(k *app.Kit, key string) string { return k.Resolver.Spacing(key).String() },
	))
	cmd.AddCommand(newSizeResolveCmd(flags, opts, "font-size", "Resolve a typography key",
		func(k *app.Kit, key string) (string, error) {
			v, err := k.Resolver.LookupFontSize(key)
			return v.String(), err
		},
		func(k *app.Kit, key string) string { return k.Resolver.FontSize(key).String() },
	))
	cmd.AddCommand(newSizeResolveCmd(flags, opts, "shadow", "Resolve a shadow key",
		func(k *app.Kit, key string) (string, error) {
			v, err := k.Resolver.LookupShadow(key)
			return v.String(), err
		},
		func(k *app.Kit, key string) string { return k.Resolver.Shadow(key).String() },
	))

	vars := &cobra.Command{
		Use:   "vars",
		Short: "Print every presentation variable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withResolver(cmd, flags, opts, func(r resolveContext) error {
				variables := r.kit.Resolver.Variables(r.mode)
				out := cmd.OutOrStdout()
				switch opts.format {
				case "css":
					_, err := fmt.Fprint(out, variables.CSS())
					return err
				case "json":
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(variables)
				default:
					for _, name := range variables.Names() {
						fmt.Fprintf(out, "%s=%s\n", name, variables[name])
					}
					return nil
				}
			})
		},
	}
	vars.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, css or json")
	cmd.AddCommand(vars)

	return cmd
}

func newSizeResolveCmd(
	flags *rootFlags,
	opts *resolveOptions,
	name, short string,
	lookup func(*app.Kit, string) (string, error),
	soft func(*app.Kit, string) string,
) *cobra.Command {
	return &cobra.Command{
		Use:   name + " KEY",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withResolver(cmd, flags, opts, func(r resolveContext) error {
				if opts.strict {
					value, err := lookup(r.kit, args[0])
					if err != nil {
						return err
					}
					return r.print(value)
				}
				return r.print(soft(r.kit, args[0]))
			})
		},
	}
}

type resolveContext struct {
	cmd  *cobra.Command
	kit  *app.Kit
	mode tokens.Mode
}

func (r resolveContext) print(value string) error {
	_, err := fmt.Fprintln(r.cmd.OutOrStdout(), value)
	return err
}

func withResolver(cmd *cobra.Command, flags *rootFlags, opts *resolveOptions, fn func(resolveContext) error) error {
	if opts.shade != 0 && !validShade(opts.shade) {
		return fmt.Errorf("invalid shade %d", opts.shade)
	}

	kit, err := flags.openKit(cmd, func(cfg *config.Config) {
		if opts.strict {
			cfg.Strict = true
		}
	}, app.Options{})
	if err != nil {
		return err
	}
	defer kit.Close()

	mode := kit.Modes.Current()
	if opts.mode != "" {
		parsed, ok := tokens.ParseMode(opts.mode)
		if !ok {
			return fmt.Errorf("unknown mode %q (want light or dark)", opts.mode)
		}
		mode = parsed
	}
	return fn(resolveContext{cmd: cmd, kit: kit, mode: mode})
}

func validShade(shade int) bool {
	for _, s := range tokens.StandardShades {
		if int(s) == shade {
			return true
		}
	}
	return false
}
