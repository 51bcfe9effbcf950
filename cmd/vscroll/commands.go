package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/HamStudy/vscroll/internal/core"
	"github.com/HamStudy/vscroll/internal/source"
	"github.com/HamStudy/vscroll/internal/ui"
)

// CLIFlags holds the root command flags.
type CLIFlags struct {
	configPath string

	totalItems      int
	estimatedHeight int
	overscan        int
	maxContentLines int
	seed            int64

	logFile  string
	logLevel string
}

// New builds the command tree. The root command runs the terminal UI.
func New() *cobra.Command {
	return newRootCommand(&CLIFlags{})
}

func newRootCommand(flags *CLIFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vscroll",
		Short: "Scroll through a very long list of variable-height items.",
		Example: `
# A thousand generated items
vscroll

# A million items, logging engine cycles to a file
vscroll --items 1000000 --log-file /tmp/vscroll.log --log-level debug
`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUI(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "~/.vscroll.yaml", "Path to the YAML config file")
	f.IntVar(&flags.totalItems, "items", core.DefaultTotalItems, "Number of generated items")
	f.IntVar(&flags.estimatedHeight, "estimate", core.DefaultEstimatedItemHeight, "Estimated height of an unmeasured item, in rows")
	f.IntVar(&flags.overscan, "overscan", core.DefaultOverscanCount, "Items rendered beyond each edge of the viewport")
	f.IntVar(&flags.maxContentLines, "max-lines", core.DefaultMaxContentLines, "Maximum content lines of a generated item")
	f.Int64Var(&flags.seed, "seed", 1, "Seed for generated content")
	f.StringVar(&flags.logFile, "log-file", "", "Write logs to this file")
	f.StringVar(&flags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	AddCommands(cmd)
	return cmd
}

// AddCommands attaches the subcommands to topLevel.
func AddCommands(topLevel *cobra.Command) {
	addBench(topLevel)
	addVersion(topLevel)
}

func runUI(cmd *cobra.Command, flags *CLIFlags) error {
	config, err := loadConfigWithFlags(cmd, flags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closeLog, err := newLogger(config)
	if err != nil {
		return err
	}
	defer closeLog()
	for _, change := range config.Normalize() {
		logger.Warn("configuration adjusted", slog.String("change", change))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	src := source.NewGenerated(config.TotalItems, config.MaxContentLines, config.Seed)
	state := core.NewState(config)
	app, err := ui.NewApp(src, state, config, logger)
	if err != nil {
		return err
	}

	logger.Info("starting", slog.Int("items", config.TotalItems), slog.Int("estimate", config.EstimatedItemHeight))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running application: %w", err)
	}

	for _, m := range app.Monitor().Metrics() {
		logger.Info("timing",
			slog.String("phase", m.Name),
			slog.Int64("count", m.Count),
			slog.Duration("avg", m.AverageTime()),
			slog.Duration("max", m.MaxTime))
	}
	return nil
}

// loadConfigWithFlags loads the config file and environment, then applies
// the flags the user set explicitly.
func loadConfigWithFlags(cmd *cobra.Command, flags *CLIFlags) (*core.Config, error) {
	config, err := core.LoadConfig(flags.configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("items") {
		config.TotalItems = flags.totalItems
	}
	if f.Changed("estimate") {
		config.EstimatedItemHeight = flags.estimatedHeight
	}
	if f.Changed("overscan") {
		config.OverscanCount = flags.overscan
	}
	if f.Changed("max-lines") {
		config.MaxContentLines = flags.maxContentLines
	}
	if f.Changed("seed") {
		config.Seed = flags.seed
	}
	if f.Changed("log-file") {
		config.LogFile = flags.logFile
	}
	if f.Changed("log-level") {
		config.LogLevel = flags.logLevel
	}
	return config, nil
}

// newLogger returns a text logger writing to config.LogFile, or a discarding
// logger when no file is set. The terminal belongs to the UI.
func newLogger(config *core.Config) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: config.SlogLevel()}
	if config.LogFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}

	path, err := homedir.Expand(config.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to expand log file path %q: %w", config.LogFile, err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(file, opts)), func() { _ = file.Close() }, nil
}
