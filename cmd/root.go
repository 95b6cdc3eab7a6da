package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mcrl2org/besolve/internal/config"
	"github.com/mcrl2org/besolve/internal/logging"
)

// flagKeys associates command line flags with the configuration keys they override.
var flagKeys = map[string]string{
	"log-level":   "log.level",
	"log-format":  "log.format",
	"strategy":    "solver.strategy",
	"jacobi":      "solver.jacobi",
	"workers":     "solver.workers",
	"max-sweeps":  "solver.max_sweeps",
	"timeout":     "solver.timeout",
	"cross-check": "solver.cross_check",
	"format":      "output.format",
	"measures":    "output.measures",
}

// env is shared by the subcommands of a root command.
type env struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	rootCmd := &cobra.Command{
		Use:   "besolve",
		Short: "besolve - a solver for boolean equation systems",
		Long: `besolve decides the value of the initial variable of a boolean equation system,
either with small progress measures or with Gauss elimination.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load(cmd.Flags())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				_ = e.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&e.cfgFile, "config", "c", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Minimum level of log messages (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "Encoding of log messages (console, json)")

	rootCmd.AddCommand(newSolveCmd(e))
	rootCmd.AddCommand(newInfoCmd(e))
	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return newRootCmd().Execute()
}

// load reads the configuration, overridden by the flags that were set, and builds the logger.
func (e *env) load(flags *pflag.FlagSet) error {
	v, err := config.NewViper(e.cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, flags); err != nil {
		return err
	}
	if e.cfg, err = config.Load(v); err != nil {
		return err
	}
	e.logger, err = logging.New(e.cfg.Log.Level, e.cfg.Log.Format)
	return err
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}
