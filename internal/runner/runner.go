package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/Mavwarf/appicon/internal/config"
	"github.com/Mavwarf/appicon/internal/icon"
	"github.com/Mavwarf/appicon/internal/iconset"
	"github.com/Mavwarf/appicon/internal/paths"
)

// Emitter names, in execution order.
const (
	MacOS   = "macos"
	Linux   = "linux"
	Windows = "windows"
)

// Options controls a pipeline run.
type Options struct {
	Layout      paths.Layout
	Platform    string
	ICNSMode    string
	Filter      icon.Filter
	KeepIconset bool
	// Compiler builds icon.icns from the iconset; nil means iconutil on PATH.
	Compiler iconset.Compiler
	Logger   *slog.Logger
}

// OptionsFromConfig translates a validated config into run options.
func OptionsFromConfig(cfg config.Config, log *slog.Logger) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}
	f, err := icon.ParseFilter(cfg.Filter)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Layout:      paths.Layout{Root: cfg.Root},
		Platform:    cfg.Platform,
		ICNSMode:    cfg.ICNSMode,
		Filter:      f,
		KeepIconset: cfg.KeepIconset,
		Logger:      log,
	}, nil
}

func (o Options) logger() *slog.Logger { return logger(o.Logger) }

func (o Options) compiler() iconset.Compiler {
	if o.Compiler != nil {
		return o.Compiler
	}
	return iconset.Iconutil{}
}

// Result is the outcome of one emitter.
type Result struct {
	Emitter string
	Files   []string
	Skipped bool
	Reason  string
}

// Report collects the results of every emitter that ran.
type Report struct {
	Results []Result
}

// Result returns the result for the named emitter.
func (r Report) Result(name string) (Result, bool) {
	for _, res := range r.Results {
		if res.Emitter == name {
			return res, true
		}
	}
	return Result{}, false
}

// Execute loads the master image and runs the macOS, Linux and Windows
// emitters in that order. A missing or unreadable master stops the run
// before anything is written. Emitter failures do not stop the others;
// they are returned together once all emitters have run.
func Execute(ctx context.Context, opts Options) (Report, error) {
	log := opts.logger()

	master, err := icon.Load(opts.Layout.Master())
	if err != nil {
		return Report{}, err
	}
	b := master.Bounds()
	log.Info("master icon loaded", "path", opts.Layout.Master(), "size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()))
	for _, w := range icon.Check(master) {
		log.Warn("unexpected master icon size", "detail", w)
	}

	emitters := []struct {
		name string
		run  func() (Result, error)
	}{
		{MacOS, func() (Result, error) { return EmitMacOS(ctx, master, opts) }},
		{Linux, func() (Result, error) { return EmitLinux(master, opts.Layout.PNG(), opts.Filter, log) }},
		{Windows, func() (Result, error) { return EmitWindows(master, opts.Layout.ICO(), opts.Filter, log) }},
	}

	var rep Report
	var errs *multierror.Error
	for _, e := range emitters {
		res, err := e.run()
		res.Emitter = e.name
		rep.Results = append(rep.Results, res)
		if err != nil {
			log.Error("emitter failed", "emitter", e.name, "err", err)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", e.name, err))
		}
	}
	return rep, errs.ErrorOrNil()
}
