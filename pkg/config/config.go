// Package config loads sysmon settings from flags, environment variables
// (SYSMON_*) and an optional config file through viper.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ja7ad/sysmon/pkg/monitor"
	"github.com/ja7ad/sysmon/pkg/system/proc"
)

const EnvPrefix = "SYSMON"

// CPUMode selects how system CPU utilization is computed.
type CPUMode string

const (
	// CPUCumulative is the average load since boot from a single sample.
	CPUCumulative CPUMode = "cumulative"
	// CPUInterval is the load between two consecutive polls.
	CPUInterval CPUMode = "interval"
)

var ErrCPUMode = errors.New("config: cpu_mode must be cumulative or interval")

// Config holds every tunable. Keys are the mapstructure tags.
type Config struct {
	ProcRoot   string `mapstructure:"proc_root"`
	OSRelease  string `mapstructure:"os_release"`
	Passwd     string `mapstructure:"passwd"`
	ClockTicks int    `mapstructure:"clock_ticks"`

	Interval   time.Duration `mapstructure:"interval"`
	Rows       int           `mapstructure:"rows"`
	Samples    int           `mapstructure:"samples"`
	CPUMode    CPUMode       `mapstructure:"cpu_mode"`
	EMA        float64       `mapstructure:"ema"`
	EvictAfter int           `mapstructure:"evict_after"`
	JSON       bool          `mapstructure:"json"`

	Listen       string `mapstructure:"listen"`
	TopK         int    `mapstructure:"top_k"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ProcRoot:   proc.DefaultRoot,
		OSRelease:  proc.DefaultOSRelease,
		Passwd:     proc.DefaultPasswd,
		ClockTicks: 0, // resolved by proc.ClockTicks
		Interval:   time.Second,
		Rows:       20,
		Samples:    0, // run until interrupted
		CPUMode:    CPUCumulative,
		EMA:        0,
		EvictAfter: 0, // never evict
		Listen:     ":9101",
		TopK:       10,
		LogLevel:   "info",
	}
}

// Merge overlays cfg on the defaults. Unset or out-of-range values keep the
// default:
//   - Interval, Rows, TopK and ClockTicks must be > 0 to override.
//   - Samples and EvictAfter accept 0 (meaning "unbounded" and "never");
//     negatives are unset.
//   - EMA must be in [0..1]; 0 disables smoothing.
//   - CPUMode must be a known mode.
//   - Empty strings are unset, except LogFile (empty means stderr) and
//     OTLPEndpoint (empty disables OTLP export).
func Merge(cfg *Config) *Config {
	base := Default()
	if cfg == nil {
		return base
	}
	merged := *base

	if cfg.ProcRoot != "" {
		merged.ProcRoot = cfg.ProcRoot
	}
	if cfg.OSRelease != "" {
		merged.OSRelease = cfg.OSRelease
	}
	if cfg.Passwd != "" {
		merged.Passwd = cfg.Passwd
	}
	if cfg.Listen != "" {
		merged.Listen = cfg.Listen
	}
	if cfg.LogLevel != "" {
		merged.LogLevel = cfg.LogLevel
	}
	merged.LogFile = cfg.LogFile
	merged.OTLPEndpoint = cfg.OTLPEndpoint
	merged.JSON = cfg.JSON

	// Positive-only overrides
	if cfg.Interval > 0 {
		merged.Interval = cfg.Interval
	}
	if cfg.Rows > 0 {
		merged.Rows = cfg.Rows
	}
	if cfg.TopK > 0 {
		merged.TopK = cfg.TopK
	}
	if cfg.ClockTicks > 0 {
		merged.ClockTicks = cfg.ClockTicks
	}

	// Zero is meaningful, negatives are not.
	if cfg.Samples >= 0 {
		merged.Samples = cfg.Samples
	}
	if cfg.EvictAfter >= 0 {
		merged.EvictAfter = cfg.EvictAfter
	}
	if cfg.EMA >= 0 && cfg.EMA <= 1 {
		merged.EMA = cfg.EMA
	}

	switch CPUMode(strings.ToLower(string(cfg.CPUMode))) {
	case CPUCumulative:
		merged.CPUMode = CPUCumulative
	case CPUInterval:
		merged.CPUMode = CPUInterval
	}

	return &merged
}

// SetDefaults registers every key with its default so that environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("proc_root", d.ProcRoot)
	v.SetDefault("os_release", d.OSRelease)
	v.SetDefault("passwd", d.Passwd)
	v.SetDefault("clock_ticks", d.ClockTicks)
	v.SetDefault("interval", d.Interval)
	v.SetDefault("rows", d.Rows)
	v.SetDefault("samples", d.Samples)
	v.SetDefault("cpu_mode", string(d.CPUMode))
	v.SetDefault("ema", d.EMA)
	v.SetDefault("evict_after", d.EvictAfter)
	v.SetDefault("json", d.JSON)
	v.SetDefault("listen", d.Listen)
	v.SetDefault("top_k", d.TopK)
	v.SetDefault("otlp_endpoint", d.OTLPEndpoint)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
}

// NewViper returns a viper instance with defaults and SYSMON_ environment
// binding ("evict-after" and "evict_after" both map to SYSMON_EVICT_AFTER).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the config file at path (if non-empty) into v, then decodes and
// merges the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var raw Config
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if m := CPUMode(strings.ToLower(string(raw.CPUMode))); m != "" && m != CPUCumulative && m != CPUInterval {
		return nil, fmt.Errorf("%w, got %q", ErrCPUMode, raw.CPUMode)
	}
	return Merge(&raw), nil
}

// SourceOptions translates the settings into proc.Source options.
func (c *Config) SourceOptions() []proc.Option {
	return []proc.Option{
		proc.WithRoot(c.ProcRoot),
		proc.WithOSRelease(c.OSRelease),
		proc.WithPasswd(c.Passwd),
		proc.WithClockTicks(c.ClockTicks),
	}
}

// MonitorOptions translates the settings into monitor options.
func (c *Config) MonitorOptions(logger *zap.Logger) []monitor.Option {
	opts := []monitor.Option{
		monitor.WithLogger(logger),
		monitor.WithEvictAfter(c.EvictAfter),
	}
	if c.CPUMode == CPUInterval {
		opts = append(opts, monitor.WithIntervalCPU(c.EMA))
	}
	return opts
}
