package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/kubev2v/jobrunner/internal/config"
)

const configFileFlag = "config"

// registerFlags binds every configuration field to a flag. Flag defaults are the
// configuration defaults.
func registerFlags(flags *pflag.FlagSet, cfg *config.Configuration) {
	flags.String(configFileFlag, "", "Optional configuration file (yaml, json or toml); flags and environment take precedence")

	flags.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: console or json")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	flags.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "Server mode: dev or prod")
	flags.IntVar(&cfg.Server.HTTPPort, "http-port", cfg.Server.HTTPPort, "HTTP listen port")
	flags.DurationVar(&cfg.Server.ShutdownTimeout, "shutdown-timeout", cfg.Server.ShutdownTimeout, "Grace period for in-flight requests")

	flags.IntVar(&cfg.Engine.CPUCapacity, "cpu-capacity", cfg.Engine.CPUCapacity, "Permits of the CPU gate")
	flags.IntVar(&cfg.Engine.NetworkCapacity, "network-capacity", cfg.Engine.NetworkCapacity, "Permits of the NETWORK gate")
	flags.IntVar(&cfg.Engine.JobCoreWorkers, "job-core-workers", cfg.Engine.JobCoreWorkers, "Job pool workers kept while idle")
	flags.IntVar(&cfg.Engine.JobMaxWorkers, "job-max-workers", cfg.Engine.JobMaxWorkers, "Job pool worker cap")
	flags.DurationVar(&cfg.Engine.JobKeepAlive, "job-keep-alive", cfg.Engine.JobKeepAlive, "Idle time before extra job workers exit")
	flags.IntVar(&cfg.Engine.TaskCoreWorkers, "task-core-workers", cfg.Engine.TaskCoreWorkers, "Task pool workers kept while idle")
	flags.IntVar(&cfg.Engine.TaskMaxWorkers, "task-max-workers", cfg.Engine.TaskMaxWorkers, "Task pool worker cap")
	flags.DurationVar(&cfg.Engine.TaskKeepAlive, "task-keep-alive", cfg.Engine.TaskKeepAlive, "Idle time before extra task workers exit")
	flags.DurationVar(&cfg.Engine.TaskRetention, "task-retention", cfg.Engine.TaskRetention, "How long finished tasks stay listed")

	flags.BoolVar(&cfg.History.HistoryEnabled, "history-enabled", cfg.History.HistoryEnabled, "Persist finished jobs and tasks")
	flags.StringVar(&cfg.History.DataFolder, "data-folder", cfg.History.DataFolder, "DuckDB data folder; empty keeps history in memory")
	flags.IntVar(&cfg.History.BufferSize, "history-buffer", cfg.History.BufferSize, "History entries buffered before dropping")
	flags.UintVar(&cfg.History.MaxRetries, "history-max-retries", cfg.History.MaxRetries, "Write attempts per history entry")
	flags.DurationVar(&cfg.History.HistoryRetention, "history-retention", cfg.History.HistoryRetention, "Age after which history entries are pruned; 0 keeps everything")

	flags.BoolVar(&cfg.Auth.AuthEnabled, "auth-enabled", cfg.Auth.AuthEnabled, "Require a JWT on /api/v1")
	flags.StringVar(&cfg.Auth.JWTSecret, "jwt-secret", cfg.Auth.JWTSecret, "HMAC key used to verify tokens")
	flags.StringVar(&cfg.Auth.JWTIssuer, "jwt-issuer", cfg.Auth.JWTIssuer, "Expected token issuer")
}

// applyConfigFile fills flags that were set neither on the command line nor in the
// environment from the configuration file, if one is given. Keys are flag names.
func applyConfigFile(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString(configFileFlag)
	if err != nil || path == "" {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var setErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if setErr != nil || f.Changed || f.Name == configFileFlag || !v.IsSet(f.Name) {
			return
		}
		if err := cmd.Flags().Set(f.Name, v.GetString(f.Name)); err != nil {
			setErr = fmt.Errorf("invalid value for %q in %q: %w", f.Name, path, err)
		}
	})
	return setErr
}

func validate(cfg *config.Configuration) error {
	switch cfg.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be 'console' or 'json'", cfg.LogFormat)
	}
	switch cfg.Server.ServerMode {
	case "dev", "prod":
	default:
		return fmt.Errorf("invalid server mode %q: must be 'dev' or 'prod'", cfg.Server.ServerMode)
	}
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port %d", cfg.Server.HTTPPort)
	}
	if cfg.Engine.JobMaxWorkers < cfg.Engine.JobCoreWorkers {
		return fmt.Errorf("job-max-workers (%d) is lower than job-core-workers (%d)", cfg.Engine.JobMaxWorkers, cfg.Engine.JobCoreWorkers)
	}
	if cfg.Engine.TaskMaxWorkers < cfg.Engine.TaskCoreWorkers {
		return fmt.Errorf("task-max-workers (%d) is lower than task-core-workers (%d)", cfg.Engine.TaskMaxWorkers, cfg.Engine.TaskCoreWorkers)
	}
	if cfg.Auth.AuthEnabled && cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth-enabled requires jwt-secret")
	}
	return nil
}
