package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"opkit/internal/app"
	"opkit/internal/domain"
	"opkit/internal/services/build"
)

// version is set at link time with -ldflags "-X opkit/cmd/opkit/commands.version=...".
var version = "dev"

// options are the flags shared by every command.
type options struct {
	logLevel  string
	logFormat string
	platform  string
	noDebug   bool
}

// wire builds the dependency graph for the selected platform.
func (o *options) wire(stderr io.Writer) (*app.Wire, error) {
	var p domain.Platform
	if o.platform != "" {
		var err error
		if p, err = domain.ParsePlatform(o.platform); err != nil {
			return nil, &domain.ConfigError{Err: err}
		}
	}
	return app.NewWire(app.Config{
		Platform:  p,
		LogLevel:  o.logLevel,
		LogFormat: o.logFormat,
		Out:       stderr,
	})
}

// Execute runs the CLI with args (without the program name).
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRoot(stdout, stderr)
	root.SetArgs(TranslateArgs(args))
	return root.ExecuteContext(ctx)
}

func newRoot(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}
	var flags domain.Flags

	root := &cobra.Command{
		Use:           "opkit <project-dir>",
		Short:         "Build and package cross-platform desktop applications",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			w, err := opts.wire(stderr)
			if err != nil {
				return err
			}
			flags.Debug = !opts.noDebug

			rep, err := w.Pipeline.Run(cmd.Context(), build.Request{ProjectDir: args[0], Flags: flags})
			if err != nil {
				return err
			}
			w.Log.Info("done", "bundle", rep.Plan.Bundle)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "pretty", "log format (pretty, json)")
	pf.StringVar(&opts.platform, "platform", "", "target platform (darwin, linux, windows)")
	_ = pf.MarkHidden("platform")
	pf.BoolVar(&opts.noDebug, "no-debug", false, "turn off debug mode (-xd)")

	f := root.Flags()
	f.BoolVar(&flags.AppStore, "app-store", false, "bundle for the app store (-b, -s)")
	f.BoolVar(&flags.Sign, "codesign", false, "code sign the bundle (-c)")
	f.BoolVar(&flags.Entitlements, "entitlements", false, "(macOS) use entitlements (-me)")
	f.BoolVar(&flags.Notarize, "notarize", false, "(macOS) notarize the bundle (-mn)")
	f.BoolVar(&flags.UserBuildOnly, "only-build", false, "only run the user build step (-o)")
	f.BoolVar(&flags.Package, "package", false, "package the app (-p)")
	f.BoolVar(&flags.Run, "run", false, "run after building (-r)")

	root.AddCommand(layoutCmd(opts, stdout, stderr))
	return root
}
