package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"managerapi/internal/loadtest"
	"managerapi/internal/logger"
)

// CLI flags
var (
	host      string
	users     int
	spawnRate float64
	duration  time.Duration
	minWait   time.Duration
	maxWait   time.Duration
	maxRPS    float64
	logLevel  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Generate traffic against the manager API",
		Long: `loadtest simulates users that repeatedly pick a weighted task (list, get,
create, update, delete managers or fetch the report), run it and wait.
Per-endpoint latency statistics are printed when the run ends.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&host, "host", "http://localhost:8080", "Base URL of the manager API")
	rootCmd.Flags().IntVarP(&users, "users", "u", 10, "Number of simulated users")
	rootCmd.Flags().Float64VarP(&spawnRate, "spawn-rate", "r", 1, "Users started per second (0 starts all at once)")
	rootCmd.Flags().DurationVarP(&duration, "duration", "t", time.Minute, "Run time (0 runs until interrupted)")
	rootCmd.Flags().DurationVar(&minWait, "min-wait", time.Second, "Minimum wait between tasks")
	rootCmd.Flags().DurationVar(&maxWait, "max-wait", 5*time.Second, "Maximum wait between tasks")
	rootCmd.Flags().Float64Var(&maxRPS, "max-rps", 0, "Global request rate cap (0 disables it)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	zerolog.SetGlobalLevel(logger.ParseLevel(logLevel))
	zerolog.TimestampFieldName = logger.TimestampField
	log := logger.New(os.Stderr, "loadtest")

	cfg := loadtest.Config{
		Host:      host,
		Users:     users,
		SpawnRate: spawnRate,
		Duration:  duration,
		MinWait:   minWait,
		MaxWait:   maxWait,
		MaxRPS:    maxRPS,
	}
	runner, err := loadtest.NewRunner(cfg, loadtest.DefaultTasks(), nil, log)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runner.Run(ctx); err != nil {
		return err
	}

	runner.Stats().Log(log)
	return runner.Stats().WriteTable(cmd.OutOrStdout())
}
