package components

import "time"

// NotifyLevel classifies a notification for styling.
type NotifyLevel int

const (
	NotifyInfo NotifyLevel = iota
	NotifySuccess
	NotifyError
)

// notifyTTL is how long a notification stays on screen before auto-dismissing.
const notifyTTL = 5 * time.Second

// Notification is a transient status-area message. The app keeps at most one
// live notification; a new one always replaces the old.
type Notification struct {
	Level   NotifyLevel
	Message string
	Expires time.Time
}

// NewNotification creates a notification expiring notifyTTL from now.
func NewNotification(level NotifyLevel, msg string) Notification {
	return Notification{
		Level:   level,
		Message: msg,
		Expires: time.Now().Add(notifyTTL),
	}
}

// Expired reports whether the notification should no longer be shown.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.Expires)
}
