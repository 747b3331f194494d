package initdb

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/crucial707/watchlist/cmd/cli/root"
	"github.com/crucial707/watchlist/internal/db"
)

var migrate = db.Migrate

// ==========================
// Init initdb
// ==========================
func InitInitDB(rootCmd *cobra.Command) {
	rootCmd.AddCommand(initDBCmd())
}

func initDBCmd() *cobra.Command {
	var drop bool

	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Initialize the database",
		Long:  "Create the users and movies tables. With --drop, existing tables and their rows are removed first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := root.OpenDB()
			if err != nil {
				return err
			}
			defer root.CloseDB(gdb)
			return Run(gdb, drop, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&drop, "drop", false, "drop tables before creating them")

	return cmd
}

// Run creates the schema, dropping it first when drop is set.
func Run(gdb *gorm.DB, drop bool, out io.Writer) error {
	if err := migrate(gdb, drop); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	fmt.Fprintln(out, "Initialized database.")
	return nil
}
