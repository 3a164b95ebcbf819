package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/bkt/internal/config"
	"github.com/abhisek/bkt/internal/logging"
	"github.com/abhisek/bkt/internal/mastery"
	"github.com/abhisek/bkt/internal/store"
)

var (
	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "bkt",
	Short: "Bayesian Knowledge Tracing service",
	Long:  "bkt tracks per-learner, per-skill mastery with Bayesian Knowledge Tracing and serves it over HTTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envFiles, _ := cmd.Flags().GetStringSlice("env-file")
		if err := config.LoadEnvFiles(envFiles...); err != nil {
			return err
		}

		c, err := config.ConfigFromEnv()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			c.LogLevel = "debug"
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		cfg = c

		l, err := logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides BKT_DB env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringSlice("env-file", []string{".env.local", ".env"}, "Dotenv files to load before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(masteryCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then BKT_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openService opens the store and builds the mastery service on it. The
// caller closes the returned store.
func openService(cmd *cobra.Command) (*store.Store, *mastery.Service, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	logger.Debug("database opened", zap.String("path", dbPath))

	svc := mastery.NewService(st, cfg.Model,
		mastery.WithLogger(logger),
		mastery.WithStrictSkills(cfg.StrictSkills),
	)
	return st, svc, nil
}
