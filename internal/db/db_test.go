package db

import (
	"context"
	"errors"
	"testing"
)

func TestLifecycleBeforeOpen(t *testing.T) {
	var d *DB

	if err := d.Close(); err != nil {
		t.Fatalf("Close on unopened db: %v", err)
	}
	if err := d.Ping(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("Ping err = %v, want ErrNotConnected", err)
	}
	if err := d.SetTimezone(context.Background(), "UTC"); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("SetTimezone err = %v, want ErrNotConnected", err)
	}
	if err := d.AutoMigrate(); !errors.Is(err, ErrNotConnected) {
		t.Fatalf("AutoMigrate err = %v, want ErrNotConnected", err)
	}
}

func TestSetTimezoneEmptyIsNoop(t *testing.T) {
	var d *DB
	if err := d.SetTimezone(context.Background(), ""); err != nil {
		t.Fatalf("SetTimezone with empty tz: %v", err)
	}
}
