package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/linedrill/internal/store"
)

// tuiAnnotation marks commands that take over the terminal.
const tuiAnnotation = "tui"

// logger is configured by the root command before any subcommand runs.
var logger = slog.Default()

// logFile is closed on exit when --log-file is set.
var logFile *os.File

var rootCmd = &cobra.Command{
	Use:   "linedrill",
	Short: "Practice drawing lines on a coordinate grid",
	Long: `linedrill is a terminal exercise app for straight lines: draw a line through
two points, from an equation, from a slope and a point, or parallel to a given
line, and get hints about what went wrong.`,
	Annotations:       map[string]string{tuiAnnotation: "true"},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LINEDRILL_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file (the terminal UI logs nowhere otherwise)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads .env and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Warning: could not load .env:", err)
	}

	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := parseLevel(levelName)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stderr
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		w = f
	} else if isTUI(cmd) {
		logger = slog.New(slog.DiscardHandler)
		slog.SetDefault(logger)
		return nil
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q: %w", name, err)
	}
	return level, nil
}

func isTUI(cmd *cobra.Command) bool {
	return cmd.Annotations[tuiAnnotation] == "true"
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LINEDRILL_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database named by the flags and environment.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("opened store", "path", dbPath)
	return s, nil
}
