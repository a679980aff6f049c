package cmd

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/mindspark/internal/logging"
	"github.com/abhisek/mindspark/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mindspark",
	Short: "AI personality quiz for students",
	Long:  "MindSpark: a terminal quiz that turns twenty everyday school scenarios into a student archetype with strengths, study tips and career ideas.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MINDSPARK_DB env var)")
	rootCmd.PersistentFlags().String("log-file", "", `Log file path, "-" for stderr (overrides MINDSPARK_LOG env var)`)
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides MINDSPARK_LOG_LEVEL env var)")
	rootCmd.Flags().Bool("ephemeral", false, "Keep accounts and results in memory only")

	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MINDSPARK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openLogger builds the file logger from --log-file and --log-level.
func openLogger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	path, _ := cmd.Flags().GetString("log-file")
	level, _ := cmd.Flags().GetString("log-level")
	return logging.New(logging.Options{Path: path, Level: level})
}

// withStore opens the database named by --db for the duration of fn.
func withStore(cmd *cobra.Command, fn func(*store.Store) error) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer s.Close()
	return fn(s)
}
