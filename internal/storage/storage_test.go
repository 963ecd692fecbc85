package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	errs "github.com/julianstephens/elevate/internal/errors"
	"github.com/julianstephens/elevate/internal/storage/sqlite"
)

type sample struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func providers(t *testing.T) map[string]Provider {
	t.Helper()
	dir := t.TempDir()

	js := NewJSONStore(filepath.Join(dir, "elevate.json"))
	if err := js.Init(); err != nil {
		t.Fatalf("json Init failed: %v", err)
	}
	sq := sqlite.NewStore(filepath.Join(dir, "elevate.db"))
	if err := sq.Init(); err != nil {
		t.Fatalf("sqlite Init failed: %v", err)
	}
	t.Cleanup(func() {
		js.Close()
		sq.Close()
	})
	return map[string]Provider{"json": js, "sqlite": sq}
}

func TestLoadSaveDocument(t *testing.T) {
	for name, p := range providers(t) {
		t.Run(name, func(t *testing.T) {
			got, found, err := LoadDocument[[]sample](p, "elevate-habits")
			if err != nil || found || got != nil {
				t.Fatalf("LoadDocument() on empty store = %v, %v, %v", got, found, err)
			}

			want := []sample{{ID: "1", Name: "Read"}, {ID: "2", Name: "Walk"}}
			if err := SaveDocument(p, "elevate-habits", want); err != nil {
				t.Fatalf("SaveDocument failed: %v", err)
			}

			got, found, err = LoadDocument[[]sample](p, "elevate-habits")
			if err != nil || !found {
				t.Fatalf("LoadDocument() = %v, %v", found, err)
			}
			if len(got) != 2 || got[1] != want[1] {
				t.Errorf("LoadDocument() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestLoadDocument_Malformed(t *testing.T) {
	p := providers(t)["sqlite"]
	if err := p.PutDocument("elevate-habits", []byte(`{"not":"a list"}`)); err != nil {
		t.Fatalf("PutDocument failed: %v", err)
	}

	got, found, err := LoadDocument[[]sample](p, "elevate-habits")
	if !errors.Is(err, errs.ErrMalformedDocument) {
		t.Fatalf("LoadDocument() error = %v, want ErrMalformedDocument", err)
	}
	if !found || got != nil {
		t.Errorf("LoadDocument() = %v, %v; want nil value and found", got, found)
	}
}

func TestJSONStore_RejectsInvalidJSON(t *testing.T) {
	p := providers(t)["json"]
	if err := p.PutDocument("k", []byte("{oops")); err == nil {
		t.Error("PutDocument should reject invalid JSON")
	}
	if _, err := p.GetDocument("k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("rejected document was stored: %v", err)
	}
}

func TestJSONStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elevate.json")

	first := NewJSONStore(path)
	if err := first.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := first.Init(); err == nil {
		t.Error("second Init should report the existing store")
	}
	if err := SaveDocument(first, "elevate-achievements", []sample{{ID: "first-habit"}}); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	second := NewJSONStore(path)
	if err := second.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	got, found, err := LoadDocument[[]sample](second, "elevate-achievements")
	if err != nil || !found || len(got) != 1 || got[0].ID != "first-habit" {
		t.Errorf("LoadDocument() after reopen = %+v, %v, %v", got, found, err)
	}

	if err := second.DeleteDocument("elevate-achievements"); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	if _, err := second.GetDocument("elevate-achievements"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetDocument() after delete = %v", err)
	}
}

func TestJSONStore_CorruptFileIsMovedAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "elevate.json")
	if err := os.WriteFile(path, []byte("this is not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	store := NewJSONStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load should recover from a corrupt file: %v", err)
	}
	if _, err := store.GetDocument("elevate-habits"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected empty store after recovery, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	moved := false
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "elevate.json.corrupt-") {
			moved = true
		}
	}
	if !moved {
		t.Error("corrupt file was not preserved")
	}
}

func TestJSONStore_LoadUninitialized(t *testing.T) {
	err := NewJSONStore(filepath.Join(t.TempDir(), "missing.json")).Load()
	if err == nil || !strings.Contains(err.Error(), "elevate init") {
		t.Errorf("Load() = %v, want an init hint", err)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		target string
		want   Kind
	}{
		{"postgres://habits@localhost/elevate", KindPostgres},
		{"postgresql://habits@localhost/elevate", KindPostgres},
		{"/home/me/.config/elevate/habits.json", KindJSON},
		{"/home/me/.config/elevate/habits.JSON", KindJSON},
		{"/home/me/.config/elevate/elevate.db", KindSQLite},
		{"elevate", KindSQLite},
	}
	for _, tt := range tests {
		if got := KindOf(tt.target); got != tt.want {
			t.Errorf("KindOf(%q) = %s, want %s", tt.target, got, tt.want)
		}
	}
}
