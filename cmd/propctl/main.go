package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/propstore/capability"
	"github.com/wippyai/propstore/internal/config"
	"github.com/wippyai/propstore/listener"
	"github.com/wippyai/propstore/store"
)

func main() {
	var (
		scriptFile   = flag.String("f", "", "Read commands from file instead of stdin")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
		strict       = flag.Bool("strict", false, "Stop at the first failing command")
		trace        = flag.Bool("trace", false, "Log every property change at info level")
		logLevel     = flag.String("log-level", "", "Log level (overrides PROPCTL_LOG_LEVEL)")
		logFormat    = flag.String("log-format", "", "Log format console|json (overrides PROPCTL_LOG_FORMAT)")
		maxEntries   = flag.Int("max-entries", -1, "Property cap, 0 for unlimited (overrides PROPCTL_MAX_ENTRIES)")
		maxListeners = flag.Int("max-listeners", -1, "Subscription cap, 0 for unlimited (overrides PROPCTL_MAX_LISTENERS)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if *maxEntries >= 0 {
		cfg.MaxEntries = *maxEntries
	}
	if *maxListeners >= 0 {
		cfg.MaxListeners = *maxListeners
	}

	if err := run(cfg, *scriptFile, *interactive, *strict, *trace); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, scriptFile string, interactive, strict, trace bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store.SetLogger(logger.Named("store"))
	listener.SetLogger(logger.Named("listener"))

	owned := capability.Own(store.New(
		store.WithMaxEntries(cfg.MaxEntries),
		store.WithMaxListeners(cfg.MaxListeners),
	))
	defer owned.Release()

	table, err := owned.Get()
	if err != nil {
		return err
	}
	logger.Debug("property table created",
		zap.Stringer("table", table.ID()),
		zap.Int("max_entries", cfg.MaxEntries),
		zap.Int("max_listeners", cfg.MaxListeners))

	if trace {
		if _, err := table.AddListener(listener.Any(), listener.NewLogListener(logger.Named("trace"))); err != nil {
			return fmt.Errorf("install trace listener: %w", err)
		}
	}

	if interactive {
		if term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd())) {
			return runInteractive(table)
		}
		logger.Warn("stdout is not a terminal, falling back to line mode")
	}

	var in io.Reader = os.Stdin
	prompt := ""
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	} else if term.IsTerminal(int(os.Stdin.Fd())) {
		prompt = "> "
	}

	return newShell(table, os.Stdout).Run(in, strict, prompt)
}
