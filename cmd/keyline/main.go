// Package main is the entry point for the keyline editor.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/keyline/internal/app"
	"github.com/dshills/keyline/internal/config"
	"github.com/dshills/keyline/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// flags holds the parsed command line.
type flags struct {
	configPath string
	logLevel   string
	path       string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: keyline must be run in a terminal")
		return 1
	}

	// Load configuration
	configPath := f.configPath
	if configPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			configPath = p
		}
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}

	// Logs go to a file while the terminal is in use
	logger, closeLog := openLogger(cfg)
	defer closeLog()
	app.SetLogger(logger)
	logger.Info("keyline %s starting", version)

	// Create application
	application, err := app.New(app.Options{
		Path:       f.path,
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Create terminal backend
	tb, err := backend.NewTerminal()
	if err != nil {
		application.Close()
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(tb); err != nil {
		application.Close()
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	go func() {
		if _, ok := <-signals; ok {
			application.Shutdown()
		}
	}()

	// Run the application
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// openLogger opens the configured log file. Logging is discarded when the
// file is unset or cannot be opened.
func openLogger(cfg config.Config) (*app.Logger, func()) {
	lc := app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Logging.Level),
		Output: io.Discard,
		Prefix: "keyline",
	}
	if cfg.Logging.File == "" {
		return app.NewLogger(lc), func() {}
	}

	file, err := app.OpenLogFile(cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return app.NewLogger(lc), func() {}
	}
	lc.Output = file
	return app.NewLogger(lc), func() { _ = file.Close() }
}

func parseFlags() flags {
	var f flags
	var showVersion bool
	var showHelp bool

	flag.StringVar(&f.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&f.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keyline - a small modal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keyline [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keyline                     Open a scratch buffer\n")
		fmt.Fprintf(os.Stderr, "  keyline notes.txt           Open a file\n")
		fmt.Fprintf(os.Stderr, "  keyline -c ./dev.toml f.go  Use another config file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("keyline %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch f.logLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.logLevel)
		os.Exit(1)
	}

	switch flag.NArg() {
	case 0:
	case 1:
		f.path = config.ExpandHome(flag.Arg(0))
	default:
		fmt.Fprintln(os.Stderr, "Error: keyline edits one file at a time")
		os.Exit(1)
	}

	if f.configPath != "" {
		f.configPath = config.ExpandHome(f.configPath)
	}

	return f
}
