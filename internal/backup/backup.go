package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/elevate/internal/constants"
	"github.com/julianstephens/elevate/internal/logger"
	"github.com/julianstephens/elevate/internal/storage"
)

// Info describes one snapshot file
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager keeps rotating snapshots of the habit document next to the data
// store, and handles export and import of that document.
type Manager struct {
	provider  storage.Provider
	backupDir string
	max       int
	now       func() time.Time
}

// NewManager creates a manager writing snapshots to backupDir and keeping at
// most max of them. A non-positive max means the default retention.
func NewManager(p storage.Provider, backupDir string, max int) *Manager {
	if max <= 0 {
		max = constants.MaxBackups
	}
	return &Manager{
		provider:  p,
		backupDir: backupDir,
		max:       max,
		now:       time.Now,
	}
}

// DefaultDir returns the snapshot directory under configDir.
func DefaultDir(configDir string) string {
	return filepath.Join(configDir, constants.BackupDirName)
}

func (m *Manager) Dir() string {
	return m.backupDir
}

// Snapshot copies the stored habit document into a new timestamped file and
// rotates old snapshots. It returns "" when there is nothing stored yet.
func (m *Manager) Snapshot() (string, error) {
	return m.snapshot(false)
}

// skipRotation keeps a restore from rotating away the file being restored.
func (m *Manager) snapshot(skipRotation bool) (string, error) {
	data, err := rawHabits(m.provider)
	if err != nil {
		return "", err
	}
	if data == nil {
		return "", nil
	}

	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.uniquePath()
	if err != nil {
		return "", err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Habit snapshot written", "path", path)

	if !skipRotation {
		if err := m.rotate(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return path, nil
}

// uniquePath picks a snapshot name with minute precision, falling back to
// seconds and then a counter when names collide.
func (m *Manager) uniquePath() (string, error) {
	now := m.now()
	name := func(stamp string) string {
		return filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+constants.BackupFileSuffix)
	}

	path := name(now.Format("20060102-1504"))
	if !exists(path) {
		return path, nil
	}
	stamp := now.Format("20060102-150405")
	path = name(stamp)
	for counter := 1; exists(path); counter++ {
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = name(fmt.Sprintf("%s-%d", stamp, counter))
	}
	return path, nil
}

// List returns every snapshot, newest first. Files that do not follow the
// snapshot naming scheme are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseSnapshotName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func parseSnapshotName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	// Drop a trailing collision counter: YYYYMMDD-HHMMSS-N
	if parts := strings.Split(stamp, "-"); len(parts) == 3 && isDigits(parts[2]) {
		stamp = parts[0] + "-" + parts[1]
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if ts, err := time.ParseInLocation(layout, stamp, time.Local); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := m.max; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the habit list with the contents of a snapshot. The
// current list is snapshotted first so a restore can itself be undone.
func (m *Manager) Restore(path string, dst Replacer) (int, error) {
	habits, err := ReadFile(path)
	if err != nil {
		return 0, err
	}
	if _, err := m.snapshot(true); err != nil {
		return 0, fmt.Errorf("failed to back up current habits before restore: %w", err)
	}
	if err := dst.Replace(habits); err != nil {
		return 0, fmt.Errorf("failed to restore habits: %w", err)
	}
	logger.Info("Habits restored", "path", path, "count", len(habits))
	return len(habits), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tmp, "error", removeErr)
		}
		return err
	}
	return nil
}
