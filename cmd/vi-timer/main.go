package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/vi-timer/audio"
	"github.com/lixenwraith/vi-timer/clock"
	"github.com/lixenwraith/vi-timer/config"
	"github.com/lixenwraith/vi-timer/display"
	"github.com/lixenwraith/vi-timer/engine"
	"github.com/lixenwraith/vi-timer/render"
	"github.com/lixenwraith/vi-timer/status"
	"github.com/lixenwraith/vi-timer/terminal"
	"github.com/lixenwraith/vi-timer/timer"
)

const usage = `Usage: vi-timer [flags] [duration]

Counts up from duration (default 0), or down to zero with -mode down.
Duration is HH:MM:SS, MM:SS, a second count or a Go duration such as 25m.

Flags:
`

func main() {
	// Panic recovery: restore the terminal even if the timer crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.HandleCrash(r)
		}
	}()

	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := loadConfig(args, os.LookupEnv, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "vi-timer: %v\n", err)
		return 2
	}

	logFile, logger := setupLogging(cfg.Debug, cfg.LogDir)
	if logFile != nil {
		defer logFile.Close()
	}

	printer := terminal.NewPrinter(os.Stdout)

	start, err := resolveStart(cfg, printer)
	if err != nil {
		if errors.Is(err, terminal.ErrPromptAborted) {
			return 130
		}
		fmt.Fprintf(os.Stderr, "vi-timer: %v\n", err)
		return 2
	}

	if cfg.Wait {
		if err := terminal.WaitKey(os.Stdin, printer, terminal.PausePrompt); err != nil {
			fmt.Fprintf(os.Stderr, "vi-timer: %v\n", err)
			return 1
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runTimer(ctx, cfg, start, printer, logger); err != nil {
		logger.Error("timer failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "vi-timer: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig applies defaults, the config file, the environment and then
// explicitly set flags, each overriding the one before
func loadConfig(args []string, lookup func(string) (string, bool), stderr io.Writer) (*config.Config, error) {
	def := config.Default()

	fs := flag.NewFlagSet("vi-timer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var (
		configPath = fs.String("config", "", "TOML or YAML config file")
		mode       = fs.String("mode", def.Mode, "up, down, tick or clock")
		precise    = fs.Bool("precise", def.Precise, "derive the reading from elapsed time")
		displayOpt = fs.String("display", def.Display, "text, block or screen")
		layout     = fs.String("layout", def.Layout, "block layout: long (HH:MM:SS) or short (MM:SS)")
		millis     = fs.Bool("millis", def.Millis, "show milliseconds")
		clearOpt   = fs.Bool("clear", def.Clear, "redraw block output in place")
		refresh    = fs.Duration("refresh", time.Duration(def.Refresh), "precise refresh interval")
		wait       = fs.Bool("wait", def.Wait, "wait for a key press before starting")
		bell       = fs.Bool("bell", def.Bell, "ring when a countdown finishes")
		volume     = fs.Int("volume", def.Volume, "bell volume 0-100")
		strikes    = fs.Int("strikes", def.Strikes, "bell strikes per ring")
		debug      = fs.Bool("debug", def.Debug, "write logs to the log directory")
		logDir     = fs.String("log-dir", def.LogDir, "log directory")
	)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := def
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}

	// Only flags given on the command line override file and environment
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "precise":
			cfg.Precise = *precise
		case "display":
			cfg.Display = *displayOpt
		case "layout":
			cfg.Layout = *layout
		case "millis":
			cfg.Millis = *millis
		case "clear":
			cfg.Clear = *clearOpt
		case "refresh":
			cfg.Refresh = config.Duration(*refresh)
		case "wait":
			cfg.Wait = *wait
		case "bell":
			cfg.Bell = *bell
		case "volume":
			cfg.Volume = *volume
		case "strikes":
			cfg.Strikes = *strikes
		case "debug":
			cfg.Debug = *debug
		case "log-dir":
			cfg.LogDir = *logDir
		}
	})

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Start = fs.Arg(0)
	default:
		return nil, fmt.Errorf("%w: expected at most one duration, got %d arguments", config.ErrInvalidConfig, fs.NArg())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Start != "" {
		if _, err := timer.ParseValue(cfg.Start); err != nil {
			return nil, fmt.Errorf("%w: start: %v", config.ErrInvalidConfig, err)
		}
	}
	return cfg, nil
}

// resolveStart parses the configured start time, prompting for one when
// counting down without it on an interactive terminal
func resolveStart(cfg *config.Config, p *terminal.Printer) (timer.Value, error) {
	if cfg.Start != "" || cfg.Mode != config.ModeDown || !terminal.IsTerminal(os.Stdin) {
		if cfg.Start == "" {
			return timer.Value{}, nil
		}
		return timer.ParseValue(cfg.Start)
	}

	pr, err := terminal.NewDurationPrompter("countdown from: ")
	if err != nil {
		return timer.Value{}, err
	}
	defer pr.Close()

	line, err := terminal.PromptDuration(pr, p, func(s string) error {
		_, err := timer.ParseValue(s)
		return err
	})
	if err != nil {
		return timer.Value{}, err
	}
	return timer.ParseValue(line)
}

// runTimer wires the clock, bell and output for cfg and runs until done
func runTimer(ctx context.Context, cfg *config.Config, start timer.Value, p *terminal.Printer, logger *slog.Logger) error {
	runMode, err := engine.ParseRunMode(cfg.Mode)
	if err != nil {
		return err
	}
	layout, err := display.ParseMode(cfg.Layout)
	if err != nil {
		return err
	}

	reg := status.NewRegistry()
	pc := clock.NewPausable(clock.NewReal())

	var bell *audio.Bell
	if cfg.Bell && runMode == engine.ModeDown {
		bell = audio.NewBell(float64(cfg.Volume)/100, cfg.Strikes)
		if err := bell.Initialize(); err != nil {
			// Non-fatal, the countdown runs silently
			logger.Warn("audio initialization failed", slog.Any("error", err))
		}
		defer bell.Cleanup()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var out engine.Output
	switch cfg.Display {
	case config.DisplayText:
		out = engine.NewTextOutput(p, cfg.Millis)
	case config.DisplayScreen:
		screen, err := render.NewScreen()
		if err != nil {
			return err
		}
		view := render.NewView(screen, layout, cfg.Millis, reg, pc)
		defer view.Close()
		view.Listen(ctx, cancel)
		out = view
	default:
		if cfg.Clear {
			p.HideCursor()
			defer p.ShowCursor()
		}
		out = engine.NewBlockOutput(p, layout, cfg.Clear, cfg.Millis)
	}

	opts := engine.Options{
		Mode:    runMode,
		Precise: cfg.Precise,
		Start:   start,
		Refresh: time.Duration(cfg.Refresh),
		Clock:   pc,
		Logger:  logger,
		Status:  reg,
	}
	if bell != nil {
		opts.Bell = bell
	}

	if err := engine.NewRunner(opts, out).Run(ctx); err != nil {
		return err
	}

	// The full-screen view keeps a finished countdown up until a key press
	if cfg.Display == config.DisplayScreen && reg.Bools.Get(status.KeyFinished).Load() {
		<-ctx.Done()
		return nil
	}

	// Let the bell finish before the speaker closes
	if bell != nil && bell.Rings() > 0 {
		select {
		case <-time.After(bell.Duration()):
		case <-ctx.Done():
		}
	}
	return nil
}
