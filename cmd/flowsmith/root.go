package main

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/flowsmith/flowsmith"
	"github.com/flowsmith/flowsmith/internal/logging"
	"github.com/flowsmith/flowsmith/internal/observability"
	fileStore "github.com/flowsmith/flowsmith/pkg/adapters/file"
	redisStore "github.com/flowsmith/flowsmith/pkg/adapters/redis"
	"github.com/flowsmith/flowsmith/pkg/persistence/middleware"
	"github.com/flowsmith/flowsmith/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "flowsmith",
	Short: "Flowsmith generates workflow documents from plain-language requests",
	Long: `Flowsmith turns free-text automation requests into validated workflow
graphs and exports them as importable workflow documents.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("redis", "", "Redis address for run persistence (empty = in-memory)")
	rootCmd.PersistentFlags().String("state-dir", "", "Directory for file-backed run persistence (ignored when --redis is set)")
	rootCmd.PersistentFlags().Duration("run-ttl", 24*time.Hour, "How long parked runs are kept in Redis")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}

func buildLogger(cmd *cobra.Command) *slog.Logger {
	levelName, _ := cmd.Flags().GetString("log-level")

	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		level = slog.LevelInfo
	}
	return logging.New(level)
}

// buildEngine assembles the facade from the persistent flags: optional
// Redis or file persistence and Prometheus-backed lifecycle hooks.
// Setting FLOWSMITH_STATE_KEY (base64, 32 bytes) encrypts parked runs
// at rest.
func buildEngine(cmd *cobra.Command, logger *slog.Logger) *flowsmith.Engine {
	metrics := observability.New(prometheus.DefaultRegisterer)
	opts := []flowsmith.Option{
		flowsmith.WithLogger(logger),
		flowsmith.WithHooks(metrics.Hooks()),
	}

	var store ports.RunStore
	if addr, _ := cmd.Flags().GetString("redis"); addr != "" {
		ttl, _ := cmd.Flags().GetDuration("run-ttl")
		client := redis.NewClient(&redis.Options{Addr: addr})
		store = redisStore.NewFromClient(client, redisStore.WithTTL(ttl))
		opts = append(opts, flowsmith.WithLocker(redisStore.NewLocker(client, "flowsmith:lock:")))
		logger.Info("using redis run store", "addr", addr, "ttl", ttl)
	} else if dir, _ := cmd.Flags().GetString("state-dir"); dir != "" {
		store = fileStore.NewStore(dir)
		logger.Info("using file run store", "dir", dir)
	}

	if store != nil {
		if encoded := os.Getenv("FLOWSMITH_STATE_KEY"); encoded != "" {
			key, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil || len(key) != 32 {
				fmt.Fprintln(os.Stderr, "FLOWSMITH_STATE_KEY must be 32 base64-encoded bytes")
				os.Exit(1)
			}
			mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
			store = mw(store)
			logger.Info("run store encryption enabled")
		}
		opts = append(opts, flowsmith.WithStore(store))
	}

	return flowsmith.New(opts...)
}
