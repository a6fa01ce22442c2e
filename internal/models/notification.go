package models

import "time"

// NotificationType labels entries in the notification log.
type NotificationType string

const (
	NotificationConfirmation NotificationType = "Confirmation"
	NotificationReminder24h  NotificationType = "24h Reminder"
	NotificationReminderDay  NotificationType = "Day-of Reminder"
	NotificationTest         NotificationType = "Test"
)

// NotificationStatus records the (simulated) outcome of a send.
type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "Sent"
	NotificationFailed NotificationStatus = "Failed"
)

// NotificationLog is a bookkeeping entry, not a delivery receipt. The ledger
// keeps the log most-recent-first and caps it at 50 entries.
type NotificationLog struct {
	ID        string             `json:"id"`
	Type      NotificationType   `json:"type"`
	Recipient string             `json:"recipient"`
	SentAt    time.Time          `json:"sent_at"`
	Status    NotificationStatus `json:"status"`
}
