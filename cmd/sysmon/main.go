//go:build linux

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ja7ad/sysmon/pkg/config"
	"github.com/ja7ad/sysmon/pkg/monitor"
	"github.com/ja7ad/sysmon/pkg/system/proc"
	"github.com/ja7ad/sysmon/pkg/telemetry"
)

var version = "dev"

// flag name -> config key
var flagKeys = map[string]string{
	"proc-root":     "proc_root",
	"log-level":     "log_level",
	"log-file":      "log_file",
	"cpu-mode":      "cpu_mode",
	"ema":           "ema",
	"evict-after":   "evict_after",
	"otlp-endpoint": "otlp_endpoint",
	"interval":      "interval",
	"rows":          "rows",
	"samples":       "samples",
	"json":          "json",
	"listen":        "listen",
	"top-k":         "top_k",
}

type app struct {
	v       *viper.Viper
	cfgPath string

	cfg       *config.Config
	logger    *zap.Logger
	telemetry *telemetry.Provider
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:   "sysmon",
		Short: "Linux system and process monitor",
		Long: `sysmon samples /proc to report machine-wide CPU and memory utilization,
uptime and process counts, and keeps a table of every process it has seen,
ranked by CPU.

CPU figures are cumulative by default: system CPU is the average since boot
and process CPU is CPU time over process age. Use --cpu-mode interval for the
system load between two polls.

Every flag can also be set in the config file or as SYSMON_<FLAG>, e.g.
SYSMON_EVICT_AFTER=10.

Examples:
  sysmon                         # same as "sysmon top"
  sysmon top -i 2s -n 15
  sysmon snapshot --json
  sysmon serve --listen :9101 --evict-after 30`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.teardown() },
		RunE:              a.runTop,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to a YAML config file")
	pf.String("proc-root", proc.DefaultRoot, "proc filesystem mount point")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "write logs to this file instead of stderr")
	pf.String("cpu-mode", string(config.CPUCumulative), "system CPU figure: cumulative (since boot) or interval (between polls)")
	pf.Float64("ema", 0, "EMA alpha for --cpu-mode interval [0..1], 0 disables smoothing")
	pf.Int("evict-after", 0, "drop processes not seen for N polls (0 = keep forever)")
	pf.String("otlp-endpoint", "", "push internal metrics to this OTLP/gRPC collector (host:port)")

	addTopFlags(root)
	root.AddCommand(newTopCmd(a), newSnapshotCmd(a), newServeCmd(a))
	return root
}

// setup binds the executing command's flags, loads the config and builds
// the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
		}
	}

	cfg, err := config.Load(a.v, a.cfgPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := newLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("configuration loaded", zap.Any("config", cfg))
	return nil
}

func (a *app) teardown() {
	if a.telemetry != nil {
		if err := a.telemetry.Shutdown(context.Background()); err != nil {
			a.logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// newMonitor builds the source and monitor from the loaded config.
// tcfg selects where the monitor's own instruments are exported.
func (a *app) newMonitor(ctx context.Context, tcfg telemetry.Config) (*monitor.Monitor, error) {
	tcfg.OTLPEndpoint = a.cfg.OTLPEndpoint
	tcfg.Version = version
	tp, err := telemetry.NewProvider(ctx, tcfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.telemetry = tp

	src := proc.NewSource(a.cfg.SourceOptions()...)
	opts := append(a.cfg.MonitorOptions(a.logger), monitor.WithMeter(tp.Meter()))
	a.logger.Debug("monitor ready",
		zap.String("proc_root", src.Root()),
		zap.Int("clock_ticks", src.ClockTicks()),
		zap.String("cpu_mode", string(a.cfg.CPUMode)),
		zap.Int("evict_after", a.cfg.EvictAfter))
	return monitor.New(src, opts...), nil
}
