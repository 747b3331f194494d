package root

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/crucial707/watchlist/internal/config"
	"github.com/crucial707/watchlist/internal/db"
	"github.com/crucial707/watchlist/internal/logger"
)

var configPath string

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "watchlist",
	Short:         "Watchlist maintenance commands",
	Long:          "Create the schema, seed fake data and provision the admin account for the Watchlist site.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $WATCHLIST_CONFIG)")
}

// Optional helper to return the RootCmd
func GetRoot() *cobra.Command {
	return RootCmd
}

// LoadConfig reads configuration honouring --config and sets up logging.
func LoadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}
	logger.Init(cfg.LogFormat, cfg.LogLevel)
	return cfg, nil
}

// OpenDB connects to the configured database. The caller closes it with CloseDB.
func OpenDB() (*gorm.DB, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s database: %w", cfg.DBDriver, err)
	}
	return gdb, nil
}

// CloseDB releases the connection pool behind gdb.
func CloseDB(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		sqlDB.Close()
	}
}
