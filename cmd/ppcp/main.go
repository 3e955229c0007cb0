package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bamsammich/ppcp/internal/config"
	"github.com/bamsammich/ppcp/internal/engine"
	"github.com/bamsammich/ppcp/internal/event"
	"github.com/bamsammich/ppcp/internal/stats"
	"github.com/bamsammich/ppcp/internal/ui"
	"github.com/bamsammich/ppcp/internal/ui/tui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	sources        []string
	dest           string
	bufferSize     int
	window         int
	renderInterval time.Duration
	queueDepth     int
	tui            bool
	quiet          bool
	verbose        bool
	noProgress     bool
	logFile        string
	strict         bool
	preallocate    bool
	showVersion    bool
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ppcp [flags] [<source>... <destination>]",
		Short:         "Copy files and directory trees with live progress",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "ppcp %s\n", version)
				return nil
			}
			return copyCmd(cmd, opts, args)
		},
	}

	f := rootCmd.Flags()
	f.StringArrayVarP(&opts.sources, "source", "s", nil, "source `PATH` (repeatable)")
	f.StringVarP(&opts.dest, "dest", "d", "", "destination `PATH`")
	f.IntVar(&opts.bufferSize, "buffer-size", engine.DefaultBufferSize, "copy chunk size in bytes")
	f.IntVar(&opts.window, "window", stats.DefaultWindow, "throughput samples to average")
	f.DurationVar(&opts.renderInterval, "render-interval", ui.DefaultRenderInterval,
		"minimum time between progress redraws")
	f.IntVar(&opts.queueDepth, "queue-depth", engine.DefaultQueueDepth, "pipeline channel capacity")
	f.BoolVar(&opts.tui, "tui", false, "full-screen TUI (Bubble Tea)")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress all output except errors")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging and a final stats table")
	f.BoolVar(&opts.noProgress, "no-progress", false, "periodic progress lines instead of the live display")
	f.StringVar(&opts.logFile, "log", "", "write structured JSON log to `FILE`")
	f.BoolVar(&opts.strict, "strict", false, "exit 1 if any entry failed")
	f.BoolVar(&opts.preallocate, "preallocate", false, "reserve destination space before writing")
	f.BoolVar(&opts.showVersion, "version", false, "print version and exit")

	rootCmd.AddCommand(newDocsCmd())
	return rootCmd
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	rootCmd := newRootCmd(&opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

//nolint:gocyclo,revive // cyclomatic,cognitive-complexity: orchestrates setup, the run and exit status
func copyCmd(cmd *cobra.Command, opts *options, args []string) error {
	stderr := cmd.ErrOrStderr()

	sources, dest, err := resolveArgs(opts.sources, opts.dest, args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}
	if err := applyConfigDefaults(cmd.Flags(), cfg.Defaults, opts); err != nil {
		return err
	}
	if err := opts.validate(); err != nil {
		return err
	}

	// Configure logging.
	logLevel := slog.LevelInfo
	switch {
	case opts.verbose:
		logLevel = slog.LevelDebug
	case opts.quiet:
		logLevel = slog.LevelWarn
	}
	textHandler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel})
	var logHandler slog.Handler = textHandler
	var eventLog *slog.Logger
	runID := uuid.NewString()
	if opts.logFile != "" {
		lf, lfErr := os.Create(opts.logFile)
		if lfErr != nil {
			return fmt.Errorf("open log file: %w", lfErr)
		}
		defer lf.Close()
		jsonHandler := slog.NewJSONHandler(lf, &slog.HandlerOptions{Level: slog.LevelDebug})
		logHandler = ui.NewMultiHandler(textHandler, jsonHandler)
		// Events go to the file only; the terminal already shows them.
		eventLog = slog.New(jsonHandler).With("run", runID)
	}
	slog.SetDefault(slog.New(logHandler).With("run", runID))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slog.Debug("starting copy",
		"sources", sources,
		"dest", dest,
		"buffer_size", opts.bufferSize,
		"queue_depth", opts.queueDepth,
		"preallocate", opts.preallocate,
	)

	plan, events, err := engine.Start(ctx, engine.Config{
		Sources:     sources,
		Dst:         dest,
		BufferSize:  opts.bufferSize,
		QueueDepth:  opts.queueDepth,
		Preallocate: opts.preallocate,
	})
	if err != nil {
		return err
	}

	if eventLog != nil {
		events = teeEvents(events, eventLog, opts.queueDepth)
	}

	isTTY, width := false, 80
	if f, ok := stderr.(*os.File); ok {
		isTTY, width = ui.Terminal(f)
	}
	stripPrefix, _ := os.Getwd() //nolint:errcheck // an empty prefix leaves paths absolute

	var tuiRenderer *tui.Renderer
	var override ui.Renderer
	if opts.tui && !opts.quiet {
		if isTTY {
			tuiRenderer = tui.NewRenderer(tui.Config{
				Output:  stderr,
				NoInput: !ui.IsTTY(os.Stdin.Fd()),
				Theme:   cfg.Theme,
				Cancel:  cancel,
			})
			override = tuiRenderer
		} else {
			slog.Warn("--tui requires a terminal, falling back to inline output")
		}
	}

	presenter := ui.NewPresenter(ui.Config{
		Writer:         stderr,
		Width:          width,
		StripPrefix:    stripPrefix,
		IsTTY:          isTTY,
		Quiet:          opts.quiet,
		NoProgress:     opts.noProgress,
		RenderInterval: opts.renderInterval,
		Window:         opts.window,
		Renderer:       override,
	})
	if err := presenter.Run(events); err != nil {
		fmt.Fprintf(stderr, "presenter: %v\n", err)
	}
	if tuiRenderer != nil && tuiRenderer.Err() != nil {
		slog.Warn("tui exited with error", "error", tuiRenderer.Err())
	}

	snap := presenter.Snapshot()
	slog.Debug("copy finished", "dest_dir", plan.DestDir, "stats", snap.String())

	if !opts.quiet {
		fmt.Fprintln(stderr, presenter.Summary())
		if opts.verbose {
			fmt.Fprintln(stderr, ui.StatsTable(snap))
		}
	}

	switch {
	case ctx.Err() != nil:
		return &exitError{code: 130}
	case opts.strict && snap.FilesFailed > 0:
		return &exitError{code: 1}
	}
	return nil
}

// resolveArgs merges --source/--dest with positional arguments. Positional
// sources follow flag sources; without --dest the last positional argument
// is the destination.
func resolveArgs(flagSources []string, flagDest string, args []string) ([]string, string, error) {
	sources := append([]string(nil), flagSources...)
	dest := flagDest
	if dest == "" && len(args) > 0 {
		dest = args[len(args)-1]
		args = args[:len(args)-1]
	}
	sources = append(sources, args...)
	if len(sources) == 0 || dest == "" {
		return nil, "", engine.ErrArgumentsMissing
	}
	return sources, dest, nil
}

// applyConfigDefaults applies config file defaults for flags not explicitly set on the CLI.
func applyConfigDefaults(flags *pflag.FlagSet, defaults config.DefaultsConfig, opts *options) error {
	if !flags.Changed("buffer-size") && defaults.BufferSize != nil {
		opts.bufferSize = *defaults.BufferSize
	}
	if !flags.Changed("window") && defaults.Window != nil {
		opts.window = *defaults.Window
	}
	if !flags.Changed("queue-depth") && defaults.QueueDepth != nil {
		opts.queueDepth = *defaults.QueueDepth
	}
	if !flags.Changed("tui") && defaults.TUI != nil {
		opts.tui = *defaults.TUI
	}
	if !flags.Changed("preallocate") && defaults.Preallocate != nil {
		opts.preallocate = *defaults.Preallocate
	}
	if !flags.Changed("render-interval") && defaults.RenderInterval != nil {
		d, err := defaults.RenderIntervalDuration()
		if err != nil {
			return err
		}
		opts.renderInterval = d
	}
	return nil
}

func (o *options) validate() error {
	var errs []error
	if o.bufferSize <= 0 {
		errs = append(errs, fmt.Errorf("invalid --buffer-size %d: must be positive", o.bufferSize))
	}
	if o.window <= 0 {
		errs = append(errs, fmt.Errorf("invalid --window %d: must be positive", o.window))
	}
	if o.queueDepth <= 0 {
		errs = append(errs, fmt.Errorf("invalid --queue-depth %d: must be positive", o.queueDepth))
	}
	if o.renderInterval <= 0 {
		errs = append(errs, fmt.Errorf("invalid --render-interval %s: must be positive", o.renderInterval))
	}
	return errors.Join(errs...)
}

// teeEvents records every event in the structured log before forwarding it.
func teeEvents(in <-chan event.Event, log *slog.Logger, depth int) <-chan event.Event {
	out := make(chan event.Event, depth)
	go func() {
		defer close(out)
		for ev := range in {
			attrs := []slog.Attr{
				slog.String("type", ev.Type.String()),
				slog.String("path", ev.Path),
				slog.Int64("size", ev.Size),
			}
			if ev.Type == event.FileProgress {
				attrs = append(attrs, slog.Int64("done", ev.Done))
			}
			if ev.Error != nil {
				attrs = append(attrs, slog.String("error", ev.Error.Error()))
			}
			log.LogAttrs(context.Background(), slog.LevelInfo, "ppcp.event", attrs...)
			out <- ev
		}
	}()
	return out
}

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}
