package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding the configuration,
// e.g. BESOLVE_SOLVER_STRATEGY for solver.strategy.
const EnvPrefix = "BESOLVE"

// Config represents the complete besolve configuration
type Config struct {
	Solver SolverConfig `mapstructure:"solver"`
	Log    LogConfig    `mapstructure:"log"`
	Output OutputConfig `mapstructure:"output"`
}

// SolverConfig controls how systems are solved
type SolverConfig struct {
	// Strategy is the solving strategy (default: "spm")
	// Options: "spm", "gauss"
	Strategy string `mapstructure:"strategy"`
	// Jacobi computes progress measure sweeps in parallel
	Jacobi bool `mapstructure:"jacobi"`
	// Workers is the number of goroutines of a parallel sweep, 0 = GOMAXPROCS
	Workers int `mapstructure:"workers"`
	// MaxSweeps bounds the number of sweeps, 0 = no limit
	MaxSweeps int `mapstructure:"max_sweeps"`
	// Timeout aborts solving after the given duration, 0 = no timeout
	Timeout time.Duration `mapstructure:"timeout"`
	// CrossCheck also solves with the other strategy and fails if verdicts differ
	CrossCheck bool `mapstructure:"cross_check"`
}

// LogConfig controls logging
type LogConfig struct {
	// Level is the minimum level of logged messages (default: "info")
	Level string `mapstructure:"level"`
	// Format is the encoding of log lines (default: "console")
	// Options: "console", "json"
	Format string `mapstructure:"format"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	// Format is the format of reports (default: "text")
	// Options: "text", "yaml"
	Format string `mapstructure:"format"`
	// Measures prints the stabilized progress measures along with the verdict
	Measures bool `mapstructure:"measures"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Solver: SolverConfig{
			Strategy: "spm",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// SetDefaults registers the default values of all keys in v
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("solver.strategy", defaults.Solver.Strategy)
	v.SetDefault("solver.jacobi", defaults.Solver.Jacobi)
	v.SetDefault("solver.workers", defaults.Solver.Workers)
	v.SetDefault("solver.max_sweeps", defaults.Solver.MaxSweeps)
	v.SetDefault("solver.timeout", defaults.Solver.Timeout)
	v.SetDefault("solver.cross_check", defaults.Solver.CrossCheck)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.measures", defaults.Output.Measures)
}

// NewViper returns a viper instance with defaults, environment overrides and,
// if file is not empty, the content of the given YAML file.
func NewViper(file string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file %s: %w", file, err)
		}
	}
	return v, nil
}

// Load reads the configuration from v into a Config struct and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}
