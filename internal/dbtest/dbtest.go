// Package dbtest builds gorm handles backed by go-sqlmock for package tests.
package dbtest

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/crucial707/watchlist/internal/db"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// New returns a gorm handle speaking the MySQL dialect over a sqlmock connection.
// The mock is closed when the test ends.
func New(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := db.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}))
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return gdb, mock
}

// MovieColumns and UserColumns are the column sets returned by SELECT * on each table.
var (
	MovieColumns = []string{"id", "title", "year"}
	UserColumns  = []string{"id", "name", "username", "password_hash"}
)
