package db

import (
	"fmt"

	"github.com/crucial707/watchlist/internal/models"
	"gorm.io/gorm"
)

// Tables lists every model owned by the application, in creation order.
func Tables() []interface{} {
	return []interface{}{&models.User{}, &models.Movie{}}
}

// Migrate creates any missing tables and columns. With drop set, existing tables
// are dropped first, discarding their rows.
func Migrate(gdb *gorm.DB, drop bool) error {
	if drop {
		if err := gdb.Migrator().DropTable(Tables()...); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
	}
	if err := gdb.AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
