// Package backup moves the habit list in and out of the data store: export
// to a file, import from one, and rotating local snapshots.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/elevate/internal/constants"
	errs "github.com/julianstephens/elevate/internal/errors"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/models"
	"github.com/julianstephens/elevate/internal/storage"
	"github.com/julianstephens/elevate/internal/validation"
)

// ErrNothingToExport is returned when no habit document has been stored.
var ErrNothingToExport = errors.New("no habit data found to export")

// Replacer swaps the whole habit list.
type Replacer interface {
	Replace(habits []models.Habit) error
}

// Export writes the stored habit document to path byte for byte.
func (m *Manager) Export(path string) error {
	data, err := rawHabits(m.provider)
	if err != nil {
		return err
	}
	if data == nil {
		return ErrNothingToExport
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	logger.Info("Habits exported", "path", path)
	return nil
}

// Import reads a habit list from path and, if it is well formed, replaces the
// current list with it. The current list is snapshotted first. Nothing is
// changed when the file is rejected.
func (m *Manager) Import(path string, dst Replacer) (int, error) {
	habits, err := ReadFile(path)
	if err != nil {
		return 0, err
	}
	if _, err := m.Snapshot(); err != nil {
		return 0, fmt.Errorf("failed to back up current habits before import: %w", err)
	}
	if err := dst.Replace(habits); err != nil {
		return 0, fmt.Errorf("failed to import habits: %w", err)
	}
	logger.Info("Habits imported", "path", path, "count", len(habits))
	return len(habits), nil
}

// ReadFile loads and checks a habit list file.
func ReadFile(path string) ([]models.Habit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses an exported habit list. Anything that is not a list of
// structurally sound habits fails with ErrImportFormat.
func Decode(data []byte) ([]models.Habit, error) {
	var habits []models.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrImportFormat, err)
	}
	if habits == nil {
		return nil, fmt.Errorf("%w: expected a list of habits", errs.ErrImportFormat)
	}

	result := validation.New().ValidateHabits(habits)
	if err := result.StructuralError(); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrImportFormat, err)
	}
	for i := range habits {
		if habits[i].Completions == nil {
			habits[i].Completions = make(map[string]bool)
		}
	}
	return habits, nil
}

// rawHabits returns the stored habit document, or nil when there is none.
func rawHabits(p storage.Provider) ([]byte, error) {
	data, err := p.GetDocument(constants.HabitsDocumentKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}
	return data, nil
}
