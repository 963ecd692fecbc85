package models

import "time"

type NotificationType string

const (
	NotificationSuccess     NotificationType = "success"
	NotificationError       NotificationType = "error"
	NotificationWarning     NotificationType = "warning"
	NotificationInfo        NotificationType = "info"
	NotificationAchievement NotificationType = "achievement"
)

// NotificationAction is an optional single button attached to a notification
type NotificationAction struct {
	Label string
	Run   func()
}

// Notification is an ephemeral UI event. It is never persisted.
type Notification struct {
	ID        string
	Type      NotificationType
	Title     string
	Message   string
	Duration  time.Duration // zero means the default duration
	Action    *NotificationAction
	CreatedAt time.Time
}
