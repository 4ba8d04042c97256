// Package main provides the CLI entrypoint for tuicube.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/shlex"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/zoobzio/clockz"

	"github.com/verte-zerg/tuicube/internal/config"
	"github.com/verte-zerg/tuicube/internal/logging"
	"github.com/verte-zerg/tuicube/internal/model"
	"github.com/verte-zerg/tuicube/internal/session"
	"github.com/verte-zerg/tuicube/internal/solvefile"
	"github.com/verte-zerg/tuicube/internal/stats"
	"github.com/verte-zerg/tuicube/internal/statsui"
	"github.com/verte-zerg/tuicube/internal/store"
	"github.com/verte-zerg/tuicube/internal/tui"
)

const (
	defaultStyle       = "boxes"
	defaultDiscipline  = "immediate"
	defaultPollMs      = 10
	defaultCurveWindow = 5
	minPollMs          = 1
	maxPollMs          = 100
)

var (
	timerMenu       bool
	timerStyle      string
	timerDiscipline string
	timerPollMs     int
	timerNoSave     bool
	timerLogLevel   string

	statsSince   string
	statsLast    int
	statsWindow  int
	statsSession string
	statsPlain   bool

	exportOut     string
	exportFormat  string
	exportSession string

	importDiscipline string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuicube",
		Short:         "Terminal speedcubing timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTimerCmd,
	}

	rootCmd.Flags().BoolVarP(&timerMenu, "menu", "m", false, "open the customization menu first")
	rootCmd.Flags().StringVar(&timerStyle, "style", defaultStyle, "timer style (text, boxes, rounded)")
	rootCmd.Flags().StringVar(&timerDiscipline, "discipline", defaultDiscipline, "run option (immediate, hold)")
	rootCmd.Flags().IntVar(&timerPollMs, "poll-ms", defaultPollMs, "input poll interval in milliseconds (1-100)")
	rootCmd.Flags().BoolVar(&timerNoSave, "no-save", false, "do not save solves")
	rootCmd.Flags().StringVar(&timerLogLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())

	return rootCmd
}

func runTimerCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveTimerConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(config.DefaultLogPath(), timerLogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warnw("failed to close db", "error", cerr)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if timerMenu {
		history, err := st.ListSolves(ctx, model.StatsConfig{})
		if err != nil {
			logger.Warnw("failed to load solve history", "error", err)
		}
		chosen, start, err := tui.Run(cfg, stats.Durations(history))
		if err != nil {
			return err
		}
		if !start {
			return nil
		}
		cfg = chosen
	}

	deps := session.Deps{Clock: clockz.RealClock, Logger: logger}
	if cfg.Save {
		deps.Recorder = st
	}
	results, err := session.RunTerminal(ctx, cfg, deps)
	if err != nil {
		return err
	}
	printSessionSummary(cmd.ErrOrStderr(), results)
	return nil
}

// resolveTimerConfig merges flags with the config file; explicit flags win.
func resolveTimerConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "style", &timerStyle, fileCfg.Timer.Style)
	applyStringConfig(cmd, "discipline", &timerDiscipline, fileCfg.Timer.Discipline)
	applyIntConfig(cmd, "poll-ms", &timerPollMs, fileCfg.Timer.PollMs)
	applyStringConfig(cmd, "log-level", &timerLogLevel, fileCfg.Log.Level)
	if fileCfg.Timer.Save != nil && !cmd.Flags().Changed("no-save") {
		timerNoSave = !*fileCfg.Timer.Save
	}

	style, err := model.ParseStyle(timerStyle)
	if err != nil {
		return model.Config{}, fmt.Errorf("--style: %w", err)
	}
	discipline, err := model.ParseDiscipline(timerDiscipline)
	if err != nil {
		return model.Config{}, fmt.Errorf("--discipline: %w", err)
	}
	cfg := model.Config{
		Style:        style,
		Discipline:   discipline,
		PollInterval: time.Duration(timerPollMs) * time.Millisecond,
		Save:         !timerNoSave,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	if _, err := logging.ParseLevel(timerLogLevel); err != nil {
		return model.Config{}, fmt.Errorf("--log-level: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.PollInterval < minPollMs*time.Millisecond || cfg.PollInterval > maxPollMs*time.Millisecond {
		return fmt.Errorf("--poll-ms must be between %d and %d", minPollMs, maxPollMs)
	}
	return nil
}

func printSessionSummary(w io.Writer, results []time.Duration) {
	if len(results) == 0 {
		return
	}
	s := stats.Summarize(results)
	if _, err := fmt.Fprintf(w, "%d solves  best %s  mean %s  ao5 %s  ao12 %s\n",
		s.Count, s.Best, s.Mean, s.Ao5, s.Ao12); err != nil {
		// Best-effort summary after the terminal is restored.
		_ = err
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}
	argv, err := editorCommand(os.Getenv("EDITOR"), path)
	if err != nil {
		return err
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

// editorCommand splits $EDITOR with shell quoting rules and appends path.
func editorCommand(editor, path string) ([]string, error) {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		editor = "vi"
	}
	parts, err := shlex.Split(editor)
	if err != nil {
		return nil, fmt.Errorf("invalid EDITOR %q: %w", editor, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return append(parts, path), nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show saved solve stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N solves")
	cmd.Flags().IntVar(&statsWindow, "window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsSession, "session", "", "only solves from this session id")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := statsConfigFromFlags()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if !statsPlain {
		return statsui.Run(st, cfg)
	}
	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load solves: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Solves); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSolveTable(out, report.Solves); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func statsConfigFromFlags() (model.StatsConfig, error) {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if statsWindow < 1 {
		return model.StatsConfig{}, fmt.Errorf("--window must be >= 1")
	}
	return model.StatsConfig{
		Since:   sinceTime,
		Last:    statsLast,
		Window:  statsWindow,
		Session: statsSession,
	}, nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write saved solves to a JSON or YAML file",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default: stdout)")
	cmd.Flags().StringVar(&exportFormat, "format", "", "json or yaml (default: from --out extension, else json)")
	cmd.Flags().StringVar(&exportSession, "session", "", "only solves from this session id")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	format := solvefile.FormatFromPath(exportOut)
	if exportFormat != "" {
		parsed, err := solvefile.ParseFormat(exportFormat)
		if err != nil {
			return fmt.Errorf("--format: %w", err)
		}
		format = parsed
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	solves, err := st.ListSolves(cmd.Context(), model.StatsConfig{Session: exportSession})
	if err != nil {
		return fmt.Errorf("failed to load solves: %w", err)
	}

	if exportOut == "" {
		return solvefile.Write(cmd.OutOrStdout(), format, solves)
	}
	if err := writeFileAtomic(exportOut, func(w io.Writer) error {
		return solvefile.Write(w, format, solves)
	}); err != nil {
		return err
	}
	logErrf("Exported %d solves to %s\n", len(solves), exportOut)
	return nil
}

func writeFileAtomic(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "solves-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := write(tmpFile); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Load solves from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importDiscipline, "discipline", defaultDiscipline, "run option recorded for imported solves")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	discipline, err := model.ParseDiscipline(importDiscipline)
	if err != nil {
		return fmt.Errorf("--discipline: %w", err)
	}
	doc, err := solvefile.Load(args[0])
	if err != nil {
		return err
	}
	sessionID := uuid.NewString()
	solves, err := doc.ToSolves(sessionID, discipline)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	n, err := st.InsertSolves(cmd.Context(), solves)
	if err != nil {
		return fmt.Errorf("failed to save solves: %w", err)
	}
	logErrf("Imported %d solves from %s (session %s)\n", n, args[0], sessionID)
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuicube configuration
# Uncomment a value to enable it. CLI flags override config values.

[timer]
# style = %q          # text, boxes or rounded
# discipline = %q # immediate or hold (hold to arm, release to start)
# poll-ms = %d            # Input poll interval in milliseconds (%d-%d)
# save = true             # Save solves to the local database

[log]
# level = %q           # debug, info, warn or error
`,
		defaultStyle,
		defaultDiscipline,
		defaultPollMs,
		minPollMs,
		maxPollMs,
		logging.DefaultLevel,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
