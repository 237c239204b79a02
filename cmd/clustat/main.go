package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"clustat/pkg/agent"
	"clustat/pkg/config"
	"clustat/pkg/render"
	"clustat/pkg/retry"
	"clustat/pkg/schema"
	"clustat/pkg/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configFile string
	verbose    bool
)

// errNotRunning marks the expected operational state where the liveness
// check found no agent. Its message goes to stdout before the command
// returns, so the error reporter stays quiet about it.
var errNotRunning = errors.New("cluster is not running")

func main() {
	rootCmd := &cobra.Command{
		Use:   "clustat",
		Short: "Storage cluster status reporter",
		Long: `Reconstructs the topology of a storage cluster - active profile, pools,
nodes and per-node services - from the coordination store's key tree and
renders it as a table or a structured document.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(
		statusCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		reportFailure(os.Stderr, err)
		os.Exit(1)
	}
}

// reportFailure writes the diagnostic for a failed command. The not-running
// case already reported itself on stdout and only carries the exit code.
func reportFailure(w io.Writer, err error) {
	if errors.Is(err, errNotRunning) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func statusCmd() *cobra.Command {
	var (
		jsonOutput   bool
		styledOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report cluster topology and service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogger(verbose)
			defer logger.Sync()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			alive, err := agent.Running(cfg.AgentPattern, logger)
			if err != nil {
				return fmt.Errorf("failed to inspect process table: %w", err)
			}
			if !alive {
				// Return through cobra so deferred cleanup (logger sync)
				// still runs; main exits 1 on the sentinel.
				fmt.Println("Cluster is not running")
				return errNotRunning
			}

			kv, err := store.Dial(cfg.StoreAddress, logger)
			if err != nil {
				return err
			}
			walker := schema.NewWalker(kv, logger)
			policy := retry.Policy{
				MaxAttempts: cfg.Retry.MaxAttempts,
				Wait:        time.Duration(cfg.Retry.WaitSeconds) * time.Second,
				Logger:      logger,
			}

			hostname, _ := os.Hostname()

			// One retry boundary around the whole aggregate+render pass.
			// The buffer resets per attempt so nothing half-rendered from a
			// failed pass ever reaches stdout.
			var buf bytes.Buffer
			err = policy.Do(func() error {
				buf.Reset()
				view, err := walker.Aggregate()
				if err != nil {
					return err
				}
				switch {
				case jsonOutput:
					return render.JSON(&buf, view)
				case styledOutput:
					return render.Styled(&buf, view, hostname)
				default:
					return render.Text(&buf, view)
				}
			})
			if err != nil {
				return err
			}

			_, err = os.Stdout.Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output status as JSON")
	cmd.Flags().BoolVar(&styledOutput, "styled", false, "output status as styled tables")
	cmd.MarkFlagsMutuallyExclusive("json", "styled")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("clustat v0.1.0")
		},
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	return config.LoadFromEnv(), nil
}

func setupLogger(verbose bool) *zap.Logger {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		// Keep the report clean: only warnings and errors reach stderr.
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, _ := config.Build()
	return logger
}
