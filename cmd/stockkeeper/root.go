package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rl1809/stockkeeper/internal/config"
	"github.com/rl1809/stockkeeper/internal/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

// flagBindings maps config keys to root persistent flags.
var flagBindings = map[string]string{
	"data_file":  "file",
	"backend":    "backend",
	"log.level":  "log-level",
	"log.format": "log-format",
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:   "stockkeeper",
		Short: "Keep per-item stock counts in a JSON inventory file",
		Long: `stockkeeper tracks how many of each named item are in stock.

The inventory lives in a JSON file (inventory.json by default) mapping item
names to integer quantities. Redis and MySQL can be used as alternative
backends. Every command loads the inventory, applies one operation and
saves it back when something changed.

Configuration is read from --config (YAML or TOML), STOCKKEEPER_*
environment variables and flags, flags winning.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (YAML or TOML)")
	flags.StringP("file", "f", "", "inventory JSON file (default inventory.json)")
	flags.String("backend", "", "storage backend: file, redis or mysql (default file)")
	flags.StringP("log-level", "l", "", "log level: debug, info, warn, error (default info)")
	flags.String("log-format", "", "log format: console or json (default console)")

	root.AddCommand(
		newDemoCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newGetCmd(a),
		newLowCmd(a),
		newReportCmd(a),
		newServeCmd(a),
		newWatchCmd(a),
	)
	return root, a
}

// execute runs root and flushes the logger afterwards, also when the
// command failed.
func execute(ctx context.Context, root *cobra.Command, a *app) error {
	defer a.syncLogger()
	return root.ExecuteContext(ctx)
}

// syncLogger flushes buffered log entries and drops the logger. Safe to
// call when init never ran.
func (a *app) syncLogger() {
	if a.logger == nil {
		return
	}
	_ = a.logger.Sync()
	a.logger = nil
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.NewViper(a.cfgFile)
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Root()); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("command", cmd.Name()))
	return nil
}

func bindFlags(v *viper.Viper, root *cobra.Command) error {
	for key, name := range flagBindings {
		if err := v.BindPFlag(key, root.PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
