package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/paycalc/internal/cache"
	"github.com/rgehrsitz/paycalc/internal/calculation"
	"github.com/rgehrsitz/paycalc/internal/config"
	"github.com/spf13/cobra"
)

// slogCLILogger implements calculation.Logger on top of log/slog
type slogCLILogger struct{ l *slog.Logger }

func (s slogCLILogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s slogCLILogger) Infof(format string, args ...any)  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s slogCLILogger) Warnf(format string, args ...any)  { s.l.Warn(fmt.Sprintf(format, args...)) }
func (s slogCLILogger) Errorf(format string, args ...any) { s.l.Error(fmt.Sprintf(format, args...)) }

func newCLILogger(w io.Writer, level string) slogCLILogger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}
	return slogCLILogger{l: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// settings resolved for the current invocation; flags win over the environment
var settings config.Settings

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paycalc %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" && settings.LogLevel == "debug" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paycalc",
		Short: "Payroll calculator CLI",
		Long:  "Computes monthly payroll from timesheets: overtime, meal allowance, mileage, subsidies and deductions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			s, err := config.LoadEnv(envFile)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("cache-db") {
				s.CacheDB, _ = flags.GetString("cache-db")
			}
			if flags.Changed("log-level") {
				s.LogLevel, _ = flags.GetString("log-level")
			}
			if flags.Changed("statutory") {
				s.StatutoryFile, _ = flags.GetString("statutory")
			}
			settings = s
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("env-file", ".env", "Environment file with PAYCALC_* settings")
	pf.String("cache-db", "", "SQLite file for the calculation cache (in-memory when empty)")
	pf.String("log-level", "warn", "Log level: debug, info, warn, error")
	pf.String("statutory", "", "Statutory rules YAML file (built-in defaults when empty)")

	root.AddCommand(versionCmd())
	root.AddCommand(calculateCmd())
	root.AddCommand(batchCmd())
	root.AddCommand(overtimeCmd())
	root.AddCommand(weeklyCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(holidaysCmd())
	return root
}

// newEngine builds a calculation engine from the current settings. The returned
// function releases the cache store.
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, func(), error) {
	rules, err := config.NewInputParser().LoadStatutory(settings.StatutoryFile)
	if err != nil {
		return nil, nil, err
	}

	logger := newCLILogger(cmd.ErrOrStderr(), settings.LogLevel)
	var store cache.Store = cache.NewMemoryStore(nil)
	closeStore := func() {}
	if settings.CacheDB != "" {
		s, err := cache.NewSQLiteStore(settings.CacheDB, nil)
		if err != nil {
			return nil, nil, err
		}
		store = s
		closeStore = func() { closeCache(s, settings.CacheDB, logger) }
	}

	engine := calculation.NewCalculationEngineWithConfig(rules, store)
	engine.TTL = settings.CacheTTL
	engine.SetLogger(logger)
	return engine, closeStore, nil
}

// closeCache closes a persistent cache store, logging a failure instead of failing the
// command whose result was already written
func closeCache(c io.Closer, path string, logger calculation.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("failed to close cache database %s: %v", path, err)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
