package backups

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/elevate/internal/backup"
	"github.com/julianstephens/elevate/internal/cli"
	"github.com/julianstephens/elevate/internal/config"
	errs "github.com/julianstephens/elevate/internal/errors"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/storage"
)

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
	ctx.Now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.Local) }
	if err := ctx.Open(); err != nil {
		t.Fatalf("failed to open context: %v", err)
	}
	return ctx, out
}

func seed(t *testing.T, ctx *cli.Context, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := ctx.Habits().Add(models.HabitInput{
			Name:      name,
			Frequency: models.FrequencyDaily,
			StartDate: "2024-03-01",
			Category:  "Learning",
		})
		if err != nil {
			t.Fatalf("failed to add %q: %v", name, err)
		}
	}
}

func TestExportCmd_NothingToExport(t *testing.T) {
	ctx, _ := setupTestContext(t)
	out := filepath.Join(t.TempDir(), "export.json")

	err := (&ExportCmd{Out: out}).Run(ctx)
	if !errors.Is(err, backup.ErrNothingToExport) {
		t.Fatalf("Run() error = %v, want ErrNothingToExport", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("export file should not be written")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx, out := setupTestContext(t)
	seed(t, ctx, "Read", "Meditate")
	file := filepath.Join(t.TempDir(), "export.json")

	if err := (&ExportCmd{Out: file}).Run(ctx); err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(out.String(), "Exported") {
		t.Errorf("output = %q", out.String())
	}
	before := ctx.Habits().All()

	target, _ := setupTestContext(t)
	seed(t, target, "Something else")
	if err := (&ImportCmd{File: file, Yes: true}).Run(target); err != nil {
		t.Fatalf("import error = %v", err)
	}

	after := target.Habits().All()
	if len(after) != len(before) {
		t.Fatalf("imported %d habits, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].ID != before[i].ID || after[i].Name != before[i].Name {
			t.Errorf("habit %d = %s/%s, want %s/%s", i, after[i].ID, after[i].Name, before[i].ID, before[i].Name)
		}
	}

	snaps, err := target.Backups().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(snaps) != 1 {
		t.Errorf("import should snapshot the replaced data, got %d backups", len(snaps))
	}
}

func TestImportCmd_BadFileLeavesDataAlone(t *testing.T) {
	ctx, _ := setupTestContext(t)
	seed(t, ctx, "Read")

	file := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(file, []byte(`{"not":"a list"}`), 0600); err != nil {
		t.Fatal(err)
	}

	err := (&ImportCmd{File: file, Yes: true}).Run(ctx)
	if !errors.Is(err, errs.ErrImportFormat) {
		t.Fatalf("Run() error = %v, want ErrImportFormat", err)
	}
	if ctx.Habits().Len() != 1 {
		t.Errorf("Len() = %d, want 1", ctx.Habits().Len())
	}
}

func TestImportCmd_Declined(t *testing.T) {
	ctx, out := setupTestContext(t)
	seed(t, ctx, "Read")
	other, _ := setupTestContext(t)
	seed(t, other, "A", "B")
	file := filepath.Join(t.TempDir(), "export.json")
	if err := (&ExportCmd{Out: file}).Run(other); err != nil {
		t.Fatal(err)
	}

	ctx.In = strings.NewReader("n\n")
	if err := (&ImportCmd{File: file}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ctx.Habits().Len() != 1 || !strings.Contains(out.String(), "Cancelled") {
		t.Errorf("declined import changed data or printed %q", out.String())
	}
}

func TestClearCmd(t *testing.T) {
	ctx, _ := setupTestContext(t)
	seed(t, ctx, "Read", "Run")

	if err := (&ClearCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ctx.Habits().Len() != 0 {
		t.Errorf("Len() = %d after clear", ctx.Habits().Len())
	}
}

func TestBackupCommands(t *testing.T) {
	ctx, out := setupTestContext(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create error = %v", err)
	}
	if !strings.Contains(out.String(), "Nothing to back up") {
		t.Errorf("empty create output = %q", out.String())
	}

	seed(t, ctx, "Read")
	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create error = %v", err)
	}
	if !strings.Contains(out.String(), "Backup created") {
		t.Errorf("create output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total") {
		t.Errorf("list output = %q", out.String())
	}

	snaps, _ := ctx.Backups().List()
	if err := ctx.Habits().Clear(); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(snaps[0].Path), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore error = %v", err)
	}
	if ctx.Habits().Len() != 1 {
		t.Errorf("Len() = %d after restore, want 1", ctx.Habits().Len())
	}
}
