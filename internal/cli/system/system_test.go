package system

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/config"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/storage"
)

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

// newTestContext wraps store in a context that writes to a buffer and runs
// on a fixed clock. The store is not opened.
func newTestContext(t *testing.T, store storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx := cli.NewContext(store, config.Default(), t.TempDir())
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.In = strings.NewReader("")
	ctx.Now = func() time.Time { return testNow }
	return ctx, out
}

func setupSQLiteContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.New(filepath.Join(t.TempDir(), "elevate.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return newTestContext(t, store)
}

func addTestHabit(t *testing.T, ctx *cli.Context, in models.HabitInput) models.Habit {
	t.Helper()
	if err := ctx.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if in.Frequency == "" {
		in.Frequency = models.FrequencyDaily
	}
	if in.StartDate == "" {
		in.StartDate = "2024-03-01"
	}
	if in.Category == "" {
		in.Category = "Learning"
	}
	h, err := ctx.Habits().Add(in)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	ctx.Center.ClearAll()
	return h
}
