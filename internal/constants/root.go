package constants

import "time"

const (
	AppName            = "elevate"
	DefaultKeyringUser = "database-connection"
	DefaultDataPath    = "~/.config/elevate/elevate.db"
	DefaultConfigFile  = "~/.config/elevate/config.yaml"
	ConnectionEnvVar   = "ELEVATE_DB_CONNECTION"
	Version            = "v1.0.0"

	// Document keys. These match the keys used by the original browser build so
	// exported files stay interchangeable.
	HabitsDocumentKey       = "elevate-habits"
	AchievementsDocumentKey = "elevate-achievements"

	// Export/backup constants
	ExportFileName   = "elevate-habits-backup.json"
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "elevate-habits-"
	BackupFileSuffix = ".json"

	// Notify constants
	NotifierLockfileName   = "elevate-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.elevate"
	NativeTagPrefix        = "habit-"
	TrayExecutable         = "elevate-tray"

	// Notification durations
	DefaultNotificationDuration     = 5 * time.Second
	AchievementNotificationDuration = 8 * time.Second
	ReminderNotificationDuration    = 10 * time.Second

	// Reminders
	DefaultReminderInterval = time.Minute
	DefaultRecommendedTime  = "09:00"
)
