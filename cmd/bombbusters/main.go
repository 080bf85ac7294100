package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/bombbusters/bombbusters-server-go/internal/config"
	"github.com/bombbusters/bombbusters-server-go/internal/game/equipment"
	"github.com/bombbusters/bombbusters-server-go/internal/game/missions"
	"github.com/bombbusters/bombbusters-server-go/internal/game/rules"
	"github.com/bombbusters/bombbusters-server-go/internal/logging"
)

var version = "dev" // set via ldflags during build

// app carries what every command needs once configuration is loaded.
type app struct {
	v         *viper.Viper
	cfg       *config.Config
	logger    *zap.Logger
	equipment *equipment.Catalog
	missions  *missions.Catalog
	checker   *rules.Checker
	out       io.Writer
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "bombbusters",
		Short:         "Bomb Busters rules server tools",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to configuration file")
	flags.Bool("json", false, "output JSON")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("storage-driver", "sqlite", "storage driver (sqlite, postgres)")
	flags.String("storage-dsn", "bombbusters.db", "storage data source name")
	flags.String("missions", "", "mission catalog file (defaults to the built-in catalog)")
	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("json", flags.Lookup("json"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("storage.driver", flags.Lookup("storage-driver"))
	_ = a.v.BindPFlag("storage.dsn", flags.Lookup("storage-dsn"))
	_ = a.v.BindPFlag("catalog.missions", flags.Lookup("missions"))

	root.AddCommand(labelCmd(a))
	root.AddCommand(equipmentCmd(a))
	root.AddCommand(missionCmd(a))
	root.AddCommand(rulesCmd(a))
	root.AddCommand(gameCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()

	cfg, err := config.LoadWith(a.v, a.v.GetString("config"))
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	a.logger = logger

	a.equipment = equipment.DefaultCatalog()
	if cfg.Catalog.Missions != "" {
		a.missions, err = missions.LoadFile(cfg.Catalog.Missions, a.equipment)
	} else {
		a.missions, err = missions.Load(a.equipment)
	}
	if err != nil {
		return err
	}

	a.checker = rules.NewChecker(rules.DefaultRegistry(), a.equipment, logger)
	logger.Debug("configuration loaded",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("log_level", cfg.Logging.Level),
	)
	return nil
}

func (a *app) jsonOutput() bool {
	return a.v.GetBool("json")
}
