package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type of a portal notification.
type Type string

const (
	TypeAttendanceMarked Type = "attendance-marked"
	TypeTeacherApproved  Type = "teacher-approved"
	TypeSystem           Type = "system"
)

// Priority of a notification.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Notification is an in-portal message for a user. Delivery by e-mail is an
// optional side channel handled by the application layer.
type Notification struct {
	ID             int64     `json:"id"`
	NotificationID uuid.UUID `json:"notificationId"`
	UserID         uuid.UUID `json:"userId"`
	Type           Type      `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Priority       Priority  `json:"priority"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

// New builds an unread notification for a user.
func New(userID uuid.UUID, typ Type, title, message string, priority Priority) *Notification {
	return &Notification{
		NotificationID: uuid.New(),
		UserID:         userID,
		Type:           typ,
		Title:          title,
		Message:        message,
		Priority:       priority,
		CreatedAt:      time.Now().UTC(),
	}
}
