// Package main provides the CLI entrypoint for retype.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/retype/internal/config"
	"github.com/verte-zerg/retype/internal/excerpt"
	"github.com/verte-zerg/retype/internal/model"
	"github.com/verte-zerg/retype/internal/picker"
	"github.com/verte-zerg/retype/internal/session"
	"github.com/verte-zerg/retype/internal/stats"
	"github.com/verte-zerg/retype/internal/store"
	"github.com/verte-zerg/retype/internal/theme"
	"github.com/verte-zerg/retype/internal/tui"
)

const version = "v0.1.0"

const (
	defaultDir   = "."
	defaultLine  = 20
	defaultTheme = "dark"
	defaultTime  = 30

	defaultCurveWindow = 10
)

var (
	practiceDir       string
	practiceFile      string
	practiceExtension string
	practiceLine      int
	practiceTheme     string
	practiceTime      int

	historyExtension   string
	historySince       string
	historyLast        int
	historyCurveWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "retype",
		Short:         "Typing practice on real source code",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVarP(&practiceDir, "dir", "d", defaultDir, "root directory to sample files from")
	rootCmd.Flags().StringVarP(&practiceFile, "file", "f", "", "practice this file instead of a random pick")
	rootCmd.Flags().StringVarP(&practiceExtension, "extension", "e", "", "restrict selection to this extension")
	rootCmd.Flags().IntVar(&practiceLine, "line", defaultLine, "max lines in the excerpt")
	rootCmd.Flags().StringVarP(&practiceTheme, "theme", "t", defaultTheme, "color theme (dark, light)")
	rootCmd.Flags().IntVar(&practiceTime, "time", defaultTime, "session time limit in seconds")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dir", &practiceDir, fileCfg.Practice.Dir)
	applyStringConfig(cmd, "extension", &practiceExtension, fileCfg.Practice.Extension)
	applyIntConfig(cmd, "line", &practiceLine, fileCfg.Practice.Line)
	applyStringConfig(cmd, "theme", &practiceTheme, fileCfg.Practice.Theme)
	applyIntConfig(cmd, "time", &practiceTime, fileCfg.Practice.Time)

	cfg := model.Config{
		Dir:       practiceDir,
		File:      practiceFile,
		Extension: practiceExtension,
		Line:      practiceLine,
		Theme:     practiceTheme,
		Time:      practiceTime,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	th, err := theme.New(cfg.Theme)
	if err != nil {
		return err
	}

	p := picker.NewSeeded()
	pickFile := func() (string, error) {
		if cfg.File != "" {
			info, err := os.Stat(cfg.File)
			if err != nil {
				return "", fmt.Errorf("cannot open %s: %w", cfg.File, err)
			}
			if info.IsDir() {
				return "", fmt.Errorf("not a regular file: %s", cfg.File)
			}
			return cfg.File, nil
		}
		return p.Pick(cfg.Dir, cfg.Extension)
	}

	path, err := pickFile()
	if err != nil {
		return err
	}
	ex, err := excerpt.Extract(path, cfg.Line)
	if err != nil {
		return err
	}
	sess, err := session.New(ex.Text, time.Duration(cfg.Time)*time.Second)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		// History is best-effort; practice works without it.
		logErrf("history disabled, failed to open db: %v\n", err)
		st = nil
	}
	if st != nil {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	repick := func() (string, string, error) {
		path, err := pickFile()
		if err != nil {
			return "", "", err
		}
		ex, err := excerpt.Extract(path, cfg.Line)
		if err != nil {
			return "", "", err
		}
		return path, ex.Text, nil
	}

	m := tui.NewModel(cfg, th, st, sess, path, repick)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
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

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past-session stats",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyExtension, "extension", "", "extension filter")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&historyCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
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

	statsCfg := model.StatsConfig{
		Extension:   strings.TrimPrefix(strings.ToLower(historyExtension), "."),
		Since:       sinceTime,
		Last:        historyLast,
		CurveWindow: historyCurveWindow,
	}
	recs, err := st.ListSessions(cmd.Context(), statsCfg)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if statsCfg.Last > 0 && len(recs) > statsCfg.Last {
		recs = recs[len(recs)-statsCfg.Last:]
	}
	return stats.RenderHistory(cmd.OutOrStdout(), recs, statsCfg.CurveWindow)
}

func validateConfig(cfg model.Config) error {
	if cfg.Line <= 0 {
		return fmt.Errorf("--line must be > 0")
	}
	if cfg.Time <= 0 {
		return fmt.Errorf("--time must be > 0")
	}
	if cfg.Dir == "" {
		return fmt.Errorf("--dir must not be empty")
	}
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
	return fmt.Sprintf(`# retype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# dir = %q          # Root directory to sample files from
# extension = "go"  # Restrict selection to this extension
# line = %d         # Max lines in the excerpt
# theme = %q        # Color theme (dark, light)
# time = %d         # Session time limit in seconds
`,
		defaultDir,
		defaultLine,
		defaultTheme,
		defaultTime,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
