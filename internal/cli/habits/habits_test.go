package habits

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/config"
	errs "github.com/julianstephens/elevate/internal/errors"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/storage"
)

// Friday 2024-03-15, mid-morning.
var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local)

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "habits.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	ctx := cli.NewContext(store, config.Default(), dir)
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.In = strings.NewReader("")
	ctx.Now = func() time.Time { return testNow }
	return ctx, out
}

func addHabit(t *testing.T, ctx *cli.Context, cmd HabitAddCmd) models.Habit {
	t.Helper()
	if cmd.Frequency == "" {
		cmd.Frequency = "daily"
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("HabitAddCmd.Run(%q) error = %v", cmd.Name, err)
	}
	h, err := ctx.Habits().FindByName(cmd.Name)
	if err != nil {
		t.Fatalf("added habit %q not found: %v", cmd.Name, err)
	}
	return h
}

func TestHabitAddCmd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     HabitAddCmd
		wantErr error
	}{
		{
			name: "daily defaults to today",
			cmd:  HabitAddCmd{Name: "Read", Frequency: "daily"},
		},
		{
			name: "custom with days",
			cmd:  HabitAddCmd{Name: "Gym", Frequency: "custom", Days: "mon,wed,fri"},
		},
		{
			name:    "custom without days",
			cmd:     HabitAddCmd{Name: "Gym", Frequency: "custom"},
			wantErr: errs.ErrInvalidHabit,
		},
		{
			name:    "bad reminder time",
			cmd:     HabitAddCmd{Name: "Walk", Frequency: "daily", Reminder: "25:99"},
			wantErr: errs.ErrInvalidHabit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestContext(t)
			err := tt.cmd.Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}
				if ctx.Habits().Len() != 0 {
					t.Errorf("rejected habit was stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !strings.Contains(out.String(), "Added habit") {
				t.Errorf("output = %q, want confirmation", out.String())
			}
			h, err := ctx.Habits().FindByName(tt.cmd.Name)
			if err != nil {
				t.Fatalf("habit not stored: %v", err)
			}
			if h.StartDate != "2024-03-15" {
				t.Errorf("StartDate = %q, want 2024-03-15", h.StartDate)
			}
		})
	}
}

func TestHabitAddCmd_DuplicateName(t *testing.T) {
	ctx, _ := setupTestContext(t)
	addHabit(t, ctx, HabitAddCmd{Name: "Read"})

	cmd := HabitAddCmd{Name: "read", Frequency: "daily"}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expected duplicate name error")
	}
	if ctx.Habits().Len() != 1 {
		t.Errorf("Len() = %d, want 1", ctx.Habits().Len())
	}
}

func TestHabitEditCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)
	addHabit(t, ctx, HabitAddCmd{Name: "Read"})

	rename := "Read 20 pages"
	reminder := "21:30"
	cmd := HabitEditCmd{Name: "Read", Rename: &rename, Reminder: &reminder}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	h, err := ctx.Habits().FindByName(rename)
	if err != nil {
		t.Fatalf("renamed habit not found: %v", err)
	}
	if !h.ReminderEnabled || h.ReminderTime != "21:30" {
		t.Errorf("reminder = %v %q, want enabled 21:30", h.ReminderEnabled, h.ReminderTime)
	}

	off := ""
	if err := (&HabitEditCmd{Name: rename, Reminder: &off}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	h, _ = ctx.Habits().FindByName(rename)
	if h.ReminderEnabled {
		t.Error("empty --reminder should disable the reminder")
	}
}

func TestHabitToggleCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addHabit(t, ctx, HabitAddCmd{Name: "Read", Start: "2024-03-01"})

	cmd := HabitToggleCmd{Name: "Read"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	h, _ := ctx.Habits().FindByName("Read")
	if !h.IsCompleted("2024-03-15") || h.Streak != 1 {
		t.Fatalf("after mark: completed=%v streak=%d, want true 1", h.IsCompleted("2024-03-15"), h.Streak)
	}
	if !strings.Contains(out.String(), "Marked") {
		t.Errorf("output = %q, want mark confirmation", out.String())
	}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	h, _ = ctx.Habits().FindByName("Read")
	if h.IsCompleted("2024-03-15") || h.Streak != 0 {
		t.Errorf("after unmark: completed=%v streak=%d, want false 0", h.IsCompleted("2024-03-15"), h.Streak)
	}
}

func TestHabitToggleCmd_RejectsFutureDate(t *testing.T) {
	ctx, _ := setupTestContext(t)
	addHabit(t, ctx, HabitAddCmd{Name: "Read"})

	cmd := HabitToggleCmd{Name: "Read", Date: "2024-03-16"}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expected error for a future date")
	}
}

func TestHabitToggleCmd_NotDueNote(t *testing.T) {
	ctx, out := setupTestContext(t)
	addHabit(t, ctx, HabitAddCmd{Name: "Gym", Frequency: "custom", Days: "mon,wed", Start: "2024-03-01"})

	if err := (&HabitToggleCmd{Name: "Gym"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "not due") {
		t.Errorf("output = %q, want not-due note", out.String())
	}
}

func TestHabitDeleteCmd(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		ctx, out := setupTestContext(t)
		addHabit(t, ctx, HabitAddCmd{Name: "Read"})
		ctx.In = strings.NewReader("n\n")

		if err := (&HabitDeleteCmd{Name: "Read"}).Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if ctx.Habits().Len() != 1 {
			t.Error("habit deleted despite declined prompt")
		}
		if !strings.Contains(out.String(), "Cancelled") {
			t.Errorf("output = %q, want Cancelled", out.String())
		}
	})

	t.Run("confirmed", func(t *testing.T) {
		ctx, _ := setupTestContext(t)
		addHabit(t, ctx, HabitAddCmd{Name: "Read"})
		ctx.In = strings.NewReader("yes\n")

		if err := (&HabitDeleteCmd{Name: "Read"}).Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if ctx.Habits().Len() != 0 {
			t.Error("habit not deleted")
		}
	})

	t.Run("unknown habit", func(t *testing.T) {
		ctx, _ := setupTestContext(t)
		err := (&HabitDeleteCmd{Name: "Nope", Yes: true}).Run(ctx)
		if !errors.Is(err, errs.ErrHabitNotFound) {
			t.Errorf("Run() error = %v, want ErrHabitNotFound", err)
		}
	})
}

func TestHabitListCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&HabitListCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "No habits found") {
		t.Errorf("empty list output = %q", out.String())
	}

	addHabit(t, ctx, HabitAddCmd{Name: "Read", Category: "Learning"})
	addHabit(t, ctx, HabitAddCmd{Name: "Run", Category: "Health & Fitness"})
	out.Reset()

	if err := (&HabitListCmd{Category: "Learning"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Read") || strings.Contains(out.String(), "Run") {
		t.Errorf("category filter output = %q", out.String())
	}
}

func TestHabitShowCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addHabit(t, ctx, HabitAddCmd{Name: "Read", Start: "2024-03-01"})

	if err := (&HabitShowCmd{Name: "Read"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Read") {
		t.Errorf("output = %q, want habit name", out.String())
	}
}
