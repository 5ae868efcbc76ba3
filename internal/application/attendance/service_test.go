package attendance

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainAttendance "github.com/campus-hub/campus-hub/internal/domain/attendance"
	attendanceMocks "github.com/campus-hub/campus-hub/internal/domain/attendance/mocks"
)

func TestRecordPresent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := attendanceMocks.NewMockRepository(ctrl)
	svc := NewService(repo, nil, nil, nil, nil, zerolog.Nop())

	ctx := context.Background()
	studentID := uuid.New()
	subjectID := uuid.New()
	teacherID := uuid.New()

	repo.EXPECT().
		Exists(ctx, studentID, subjectID, "2025-01-10").
		Return(false, nil)
	repo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domainAttendance.Record) error {
			assert.Equal(t, studentID, rec.StudentID)
			assert.Equal(t, subjectID, rec.SubjectID)
			assert.Equal(t, domainAttendance.StatusPresent, rec.Status)
			assert.Equal(t, domainAttendance.MethodQR, rec.Method)
			return nil
		})

	rec, err := svc.RecordPresent(ctx, studentID, subjectID, teacherID, "2025-01-10", nil, nil)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "2025-01-10", rec.ClassDate)
}

func TestRecordPresentDuplicate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := attendanceMocks.NewMockRepository(ctrl)
	svc := NewService(repo, nil, nil, nil, nil, zerolog.Nop())

	ctx := context.Background()
	repo.EXPECT().
		Exists(ctx, gomock.Any(), gomock.Any(), "2025-01-10").
		Return(true, nil)

	_, err := svc.RecordPresent(ctx, uuid.New(), uuid.New(), uuid.New(), "2025-01-10", nil, nil)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestEditRecordsChangeLog(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := attendanceMocks.NewMockRepository(ctrl)
	svc := NewService(repo, nil, nil, nil, nil, zerolog.Nop())

	ctx := context.Background()
	recordID := uuid.New()
	editor := uuid.New()
	existing := &domainAttendance.Record{
		RecordID: recordID,
		Status:   domainAttendance.StatusAbsent,
	}

	repo.EXPECT().GetByID(ctx, recordID).Return(existing, nil)
	repo.EXPECT().UpdateStatus(ctx, recordID, domainAttendance.StatusPresent).Return(nil)
	repo.EXPECT().
		RecordChange(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, ch *domainAttendance.Change) error {
			assert.Equal(t, domainAttendance.StatusAbsent, ch.PreviousStatus)
			assert.Equal(t, domainAttendance.StatusPresent, ch.NewStatus)
			assert.Equal(t, editor, ch.ChangedBy)
			assert.Equal(t, "medical certificate provided", ch.Reason)
			return nil
		})

	rec, err := svc.Edit(ctx, editor, recordID, domainAttendance.StatusPresent, "medical certificate provided")
	require.NoError(t, err)
	assert.Equal(t, domainAttendance.StatusPresent, rec.Status)
}

func TestEditUnknownRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := attendanceMocks.NewMockRepository(ctrl)
	svc := NewService(repo, nil, nil, nil, nil, zerolog.Nop())

	ctx := context.Background()
	recordID := uuid.New()
	repo.EXPECT().GetByID(ctx, recordID).Return(nil, nil)

	_, err := svc.Edit(ctx, uuid.New(), recordID, domainAttendance.StatusPresent, "x")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestEditRejectsInvalidStatus(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil, zerolog.Nop())
	_, err := svc.Edit(context.Background(), uuid.New(), uuid.New(), domainAttendance.Status("bogus"), "x")
	require.Error(t, err)
}
