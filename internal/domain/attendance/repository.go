package attendance

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence for attendance records. Create must enforce
// uniqueness of (student, subject, date) and report a violation as
// ErrDuplicate; ScanValidator's grant consumers rely on that guarantee.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, recordID uuid.UUID) (*Record, error)
	Exists(ctx context.Context, studentID, subjectID uuid.UUID, classDate string) (bool, error)
	UpdateStatus(ctx context.Context, recordID uuid.UUID, status Status) error
	RecordChange(ctx context.Context, ch *Change) error
	ListChanges(ctx context.Context, limit, offset int) ([]*Change, error)

	ListByStudentSubject(ctx context.Context, studentID, subjectID uuid.UUID) ([]*Record, error)
	ListByStudentRange(ctx context.Context, studentID uuid.UUID, from, to string) ([]*Record, error)
	ListRecentByMarker(ctx context.Context, markedBy uuid.UUID, limit int) ([]*Record, error)
	StatsByStudentSubject(ctx context.Context, studentID, subjectID uuid.UUID) (Stats, error)
	TrendBySubject(ctx context.Context, subjectID uuid.UUID, since time.Time) ([]TrendPoint, error)
	CountDistinctDatesByMarker(ctx context.Context, markedBy uuid.UUID) (int, error)
}

// TrendPoint is one day's aggregate for a subject.
type TrendPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Total   int    `json:"total"`
}
