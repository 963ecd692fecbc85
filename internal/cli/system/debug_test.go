package system

import (
	"encoding/json"
	"testing"

	"github.com/julianstephens/elevate/internal/models"
)

func TestDebugDBPathCmd(t *testing.T) {
	ctx, out := setupSQLiteContext(t)

	if err := (&DebugDBPathCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got["path"] != ctx.Store.GetConfigPath() {
		t.Errorf("path = %q, want %q", got["path"], ctx.Store.GetConfigPath())
	}
	if got["backups"] != ctx.Backups().Dir() {
		t.Errorf("backups = %q, want %q", got["backups"], ctx.Backups().Dir())
	}
}

func TestDebugDumpHabitCmd(t *testing.T) {
	ctx, out := setupSQLiteContext(t)
	h := addTestHabit(t, ctx, models.HabitInput{Name: "Read"})
	if _, err := ctx.Habits().ToggleCompletion(h.ID, testNow); err != nil {
		t.Fatal(err)
	}

	for _, ref := range []string{"Read", h.ID} {
		out.Reset()
		if err := (&DebugDumpHabitCmd{Habit: ref}).Run(ctx); err != nil {
			t.Fatalf("Run(%q) error = %v", ref, err)
		}
		var got models.Habit
		if err := json.Unmarshal(out.Bytes(), &got); err != nil {
			t.Fatalf("output is not a habit: %v\n%s", err, out.String())
		}
		if got.ID != h.ID || got.Streak != 1 || !got.Completions["2024-03-15"] {
			t.Errorf("dumped habit = %+v", got)
		}
	}

	if err := (&DebugDumpHabitCmd{Habit: "missing"}).Run(ctx); err == nil {
		t.Error("expected error for unknown habit")
	}
}

func TestDebugDumpAchievementsCmd(t *testing.T) {
	ctx, out := setupSQLiteContext(t)
	addTestHabit(t, ctx, models.HabitInput{Name: "Read"})

	if err := (&DebugDumpAchievementsCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got []models.UnlockedAchievement
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(got) != 1 || got[0].ID != "first-habit" {
		t.Errorf("unlocked = %+v, want [first-habit]", got)
	}
}
