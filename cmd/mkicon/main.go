// mkicon generates the platform application icons from assets/icon-master.png:
// icon.icns (macOS), icon.png (Linux, 512×512) and icon.ico (Windows).
// Usage: go run ./cmd/mkicon
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Mavwarf/appicon/internal/config"
	"github.com/Mavwarf/appicon/internal/icon"
	"github.com/Mavwarf/appicon/internal/iconset"
	"github.com/Mavwarf/appicon/internal/runner"
)

var version = "dev"

// Exit codes.
const (
	exitOK      = 0
	exitMissing = 1
	exitFailure = 2
)

type flags struct {
	root         string
	configPath   string
	icnsMode     string
	filter       string
	cleanIconset bool
	verbose      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string) int {
	var f flags
	var runErr error
	cmd := newRootCmd(&f, func(cmd *cobra.Command) error {
		log := newLogger(cmd.ErrOrStderr(), f.verbose)
		cfg, err := resolveConfig(cmd, f)
		if err != nil {
			return err
		}
		opts, err := runner.OptionsFromConfig(cfg, log)
		if err != nil {
			return err
		}
		if _, runErr = runner.Execute(cmd.Context(), opts); runErr != nil {
			return runErr
		}
		log.Info("all icons generated successfully")
		return nil
	})
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		if runErr == nil {
			// flag or config problem
			return exitFailure
		}
		return exitCode(err)
	}
	return exitOK
}

func newRootCmd(f *flags, action func(*cobra.Command) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mkicon",
		Short:         "Generate macOS, Linux and Windows app icons from assets/icon-master.png",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return action(cmd)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.root, "root", "", "project root containing assets/ (default: current directory)")
	fs.StringVarP(&f.configPath, "config", "c", "", "JSON config file")
	fs.StringVar(&f.icnsMode, "icns", config.ICNSIconutil, "icon.icns mode: iconutil, native or off")
	fs.StringVar(&f.filter, "filter", config.DefaultFilter, "resampling filter: nearest, bilinear, bicubic, mitchell, lanczos2, lanczos3")
	fs.BoolVar(&f.cleanIconset, "clean-iconset", false, "remove assets/icon.iconset after icon.icns is built")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")
	return cmd
}

// resolveConfig loads the config file, then applies flags the user set
// explicitly. Flag defaults never override file values.
func resolveConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	fs := cmd.Flags()
	if fs.Changed("root") {
		cfg.Root = f.root
	}
	if fs.Changed("icns") {
		cfg.ICNSMode = f.icnsMode
	}
	if fs.Changed("filter") {
		cfg.Filter = f.filter
	}
	if fs.Changed("clean-iconset") {
		cfg.KeepIconset = !f.cleanIconset
	}
	return cfg, cfg.Validate()
}

// exitCode maps a pipeline error to the process exit status: 1 for a
// missing master, the compiler's own status when it failed, 2 otherwise.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var missing *icon.MissingInputError
	if errors.As(err, &missing) {
		return exitMissing
	}
	var toolErr *iconset.ExternalToolError
	if errors.As(err, &toolErr) {
		if toolErr.ExitCode > 0 {
			return toolErr.ExitCode
		}
		return 1
	}
	return exitFailure
}
