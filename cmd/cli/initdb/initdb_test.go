package initdb

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func stubMigrate(t *testing.T, err error) *bool {
	t.Helper()
	var dropped bool
	old := migrate
	migrate = func(_ *gorm.DB, drop bool) error {
		dropped = drop
		return err
	}
	t.Cleanup(func() { migrate = old })
	return &dropped
}

func TestRun(t *testing.T) {
	dropped := stubMigrate(t, nil)

	var out bytes.Buffer
	if err := Run(nil, true, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !*dropped {
		t.Error("drop flag not passed through")
	}
	if got := out.String(); got != "Initialized database.\n" {
		t.Errorf("output: got %q", got)
	}
}

func TestRun_Error(t *testing.T) {
	stubMigrate(t, errors.New("disk full"))

	var out bytes.Buffer
	err := Run(nil, false, &out)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output on failure: %q", out.String())
	}
}

func TestInitDBCmd_Flags(t *testing.T) {
	cmd := initDBCmd()
	if cmd.Flags().Lookup("drop") == nil {
		t.Fatal("missing --drop flag")
	}
	if cmd.Use != "initdb" {
		t.Errorf("Use: got %q", cmd.Use)
	}
}
