package habits

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	errs "github.com/julianstephens/elevate/internal/errors"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/storage"
	"github.com/julianstephens/elevate/internal/utils"
)

// 2026-03-10 is a Tuesday
var now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)

type recordingSink struct {
	mu    sync.Mutex
	added []models.Notification
}

func (r *recordingSink) Add(n models.Notification) models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.added = append(r.added, n)
	return n
}

func newTestStore(t *testing.T) (*Store, storage.Provider, *recordingSink) {
	t.Helper()
	p := storage.NewJSONStore(filepath.Join(t.TempDir(), "elevate.json"))
	if err := p.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	sink := &recordingSink{}
	s := NewStore(p, sink)
	s.SetClock(func() time.Time { return now })
	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, p, sink
}

func dailyInput(name string) models.HabitInput {
	return models.HabitInput{Name: name, Emoji: "📖", Frequency: models.FrequencyDaily, StartDate: "2026-03-01", Category: "learning"}
}

func TestAddAndPersist(t *testing.T) {
	s, p, _ := newTestStore(t)

	h, err := s.Add(dailyInput("Read"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if h.ID == "" || !h.CreatedAt.Equal(now) || h.Streak != 0 || len(h.Completions) != 0 {
		t.Errorf("unexpected new habit: %+v", h)
	}

	reloaded := NewStore(p, nil)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	got, err := reloaded.Get(h.ID)
	if err != nil {
		t.Fatalf("Get after reload: %v", err)
	}
	if got.Name != "Read" || got.Category != "learning" {
		t.Errorf("reloaded habit = %+v", got)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	s, _, _ := newTestStore(t)

	tests := []struct {
		name string
		in   models.HabitInput
	}{
		{"empty name", models.HabitInput{Frequency: models.FrequencyDaily, StartDate: "2026-03-01"}},
		{"custom without days", models.HabitInput{Name: "x", Frequency: models.FrequencyCustom, StartDate: "2026-03-01"}},
		{"unknown frequency", models.HabitInput{Name: "x", Frequency: "hourly", StartDate: "2026-03-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Add(tt.in); !errors.Is(err, errs.ErrInvalidHabit) {
				t.Errorf("err = %v, want ErrInvalidHabit", err)
			}
		})
	}
	if s.Len() != 0 {
		t.Errorf("invalid input was stored")
	}
}

func TestToggleRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)
	h, _ := s.Add(dailyInput("Read"))

	yesterday := utils.AddDays(now, -1)
	if _, err := s.ToggleCompletion(h.ID, yesterday); err != nil {
		t.Fatal(err)
	}
	before, _ := s.Get(h.ID)
	// Today is due and still open, so the run has not reached today yet
	if before.Streak != 0 {
		t.Fatalf("streak with today open = %d, want 0", before.Streak)
	}

	on, err := s.ToggleCompletion(h.ID, now)
	if err != nil {
		t.Fatal(err)
	}
	if on.Streak != 2 || !on.IsCompleted("2026-03-10") {
		t.Errorf("after toggle on: streak=%d completions=%v", on.Streak, on.Completions)
	}

	off, err := s.ToggleCompletion(h.ID, now)
	if err != nil {
		t.Fatal(err)
	}
	if off.Streak != before.Streak {
		t.Errorf("streak after round trip = %d, want %d", off.Streak, before.Streak)
	}
	if _, present := off.Completions["2026-03-10"]; present {
		t.Error("cleared completion should remove the key")
	}
}

func TestSnapshotsAreImmutable(t *testing.T) {
	s, _, _ := newTestStore(t)
	h, _ := s.Add(dailyInput("Read"))

	snapshot := s.All()
	if _, err := s.ToggleCompletion(h.ID, now); err != nil {
		t.Fatal(err)
	}
	if snapshot[0].IsCompleted("2026-03-10") {
		t.Error("toggle leaked into an earlier snapshot")
	}
}

func TestUpdate(t *testing.T) {
	s, _, _ := newTestStore(t)
	h, _ := s.Add(dailyInput("Read"))
	s.ToggleCompletion(h.ID, now)

	in := h.Input()
	in.Name = "Read more"
	in.Frequency = models.FrequencyCustom
	in.CustomDays = []time.Weekday{time.Monday}

	got, err := s.Update(h.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Read more" || got.ID != h.ID || !got.CreatedAt.Equal(h.CreatedAt) {
		t.Errorf("Update() = %+v", got)
	}
	if !got.IsCompleted("2026-03-10") {
		t.Error("Update must keep completions")
	}
	// Tuesday is no longer due and Monday was missed
	if got.Streak != 0 {
		t.Errorf("streak after schedule change = %d, want 0", got.Streak)
	}

	if _, err := s.Update("missing", in); !errors.Is(err, errs.ErrHabitNotFound) {
		t.Errorf("err = %v, want ErrHabitNotFound", err)
	}
}

func TestDeleteAndFind(t *testing.T) {
	s, _, _ := newTestStore(t)
	a, _ := s.Add(dailyInput("Read"))
	s.Add(dailyInput("Run"))

	found, err := s.FindByName("  read ")
	if err != nil || found.ID != a.ID {
		t.Fatalf("FindByName = %+v, %v", found, err)
	}

	if err := s.Delete(a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.FindByName("Read"); !errors.Is(err, errs.ErrHabitNotFound) {
		t.Errorf("err = %v, want ErrHabitNotFound", err)
	}
	if err := s.Delete(a.ID); !errors.Is(err, errs.ErrHabitNotFound) {
		t.Errorf("second delete err = %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestToday(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.Add(dailyInput("Read"))
	s.Add(models.HabitInput{Name: "Review", Frequency: models.FrequencyWeekly, StartDate: "2026-03-01"})
	s.Add(models.HabitInput{Name: "Gym", Frequency: models.FrequencyCustom, CustomDays: []time.Weekday{time.Tuesday}, StartDate: "2026-03-01"})

	due := s.Today(now)
	if len(due) != 2 || due[0].Name != "Read" || due[1].Name != "Gym" {
		t.Errorf("Today() = %v", due)
	}
}

func TestLoadMalformedFailsSoft(t *testing.T) {
	p := storage.NewJSONStore(filepath.Join(t.TempDir(), "elevate.json"))
	if err := p.Init(); err != nil {
		t.Fatal(err)
	}
	if err := p.PutDocument(constants.HabitsDocumentKey, []byte(`{"broken":true}`)); err != nil {
		t.Fatal(err)
	}

	sink := &recordingSink{}
	s := NewStore(p, sink)
	if err := s.Load(); err != nil {
		t.Fatalf("Load should fail soft, got %v", err)
	}
	if s.Len() != 0 {
		t.Error("expected empty list")
	}
	if len(sink.added) != 1 || sink.added[0].Type != models.NotificationWarning {
		t.Errorf("expected one warning notification, got %+v", sink.added)
	}
}

func TestReplaceAndClear(t *testing.T) {
	s, p, _ := newTestStore(t)
	s.Add(dailyInput("Old"))

	imported := []models.Habit{{
		ID:          "imported-1",
		Name:        "Stretch",
		Frequency:   models.FrequencyDaily,
		StartDate:   "2026-03-01",
		Streak:      99,
		Completions: map[string]bool{"2026-03-09": true, "2026-03-10": true},
	}}
	if err := s.Replace(imported); err != nil {
		t.Fatal(err)
	}
	all := s.All()
	if len(all) != 1 || all[0].ID != "imported-1" {
		t.Fatalf("All() = %+v", all)
	}
	if all[0].Streak != 2 {
		t.Errorf("imported streak = %d, want 2", all[0].Streak)
	}

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Error("Clear left habits behind")
	}
	if _, err := p.GetDocument(constants.HabitsDocumentKey); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("document still present: %v", err)
	}
	// Clearing twice is fine
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestOnChange(t *testing.T) {
	s, _, _ := newTestStore(t)

	var calls []int
	s.OnChange(func(habits []models.Habit) {
		calls = append(calls, len(habits))
	})

	h, _ := s.Add(dailyInput("Read"))
	s.ToggleCompletion(h.ID, now)
	s.Delete(h.ID)
	s.Add(models.HabitInput{}) // rejected, no callback

	want := []int{1, 1, 0}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls = %v, want %v", calls, want)
		}
	}
}
