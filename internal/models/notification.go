// internal/models/notification.go
package models

import "time"

type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelError   NotificationLevel = "error"
	LevelInfo    NotificationLevel = "info"
)

// Notification is a transient, user-facing message about a mutation.
type Notification struct {
	ID        string            `json:"id"`
	Level     NotificationLevel `json:"level"`
	Message   string            `json:"message"`
	Subject   string            `json:"subject,omitempty"` // candidate or job id
	Operation string            `json:"operation"`
	CreatedAt time.Time         `json:"createdAt"`
}
