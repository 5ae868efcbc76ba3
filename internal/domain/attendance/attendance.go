package attendance

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status of a single attendance record.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"
)

// Method records how the attendance was marked.
type Method string

const (
	MethodManual        Method = "manual"
	MethodQR            Method = "qr"
	MethodAdminOverride Method = "admin-override"
)

// ErrDuplicate is returned when a record already exists for the same
// (student, subject, date). This is the persistence-layer half of the
// duplicate defense; the QR session's attendee set is the other half, and the
// two can diverge across a restart.
var ErrDuplicate = errors.New("attendance already recorded for this student, subject and date")

// Record is one student's attendance for one subject on one class date.
type Record struct {
	ID         int64     `json:"id"`
	RecordID   uuid.UUID `json:"recordId"`
	StudentID  uuid.UUID `json:"studentId"`
	SubjectID  uuid.UUID `json:"subjectId"`
	ClassDate  string    `json:"classDate"`
	Status     Status    `json:"status"`
	MarkedBy   uuid.UUID `json:"markedBy"`
	MarkedAt   time.Time `json:"markedAt"`
	Method     Method    `json:"method"`
	IPAddress  *string   `json:"ipAddress,omitempty"`
	DeviceInfo *string   `json:"deviceInfo,omitempty"`
}

// Change is an audited edit to an existing record.
type Change struct {
	ID             int64     `json:"id"`
	RecordID       uuid.UUID `json:"recordId"`
	ChangedBy      uuid.UUID `json:"changedBy"`
	PreviousStatus Status    `json:"previousStatus"`
	NewStatus      Status    `json:"newStatus"`
	Reason         string    `json:"reason"`
	ChangedAt      time.Time `json:"changedAt"`
}

func ValidateStatus(s Status) error {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave:
		return nil
	default:
		return errors.New("invalid attendance status")
	}
}

// ValidateClassDate enforces the date-only YYYY-MM-DD form used everywhere a
// class date travels, including the QR payload.
func ValidateClassDate(d string) error {
	if _, err := time.Parse("2006-01-02", d); err != nil {
		return errors.New("class date must be YYYY-MM-DD")
	}
	return nil
}

// Stats aggregates one student's records for one subject.
type Stats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Leave   int `json:"leave"`
	Total   int `json:"total"`
}

func (s Stats) Percentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Present) / float64(s.Total) * 100
}
