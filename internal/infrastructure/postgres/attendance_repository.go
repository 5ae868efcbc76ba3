package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-hub/campus-hub/internal/domain/attendance"
)

// AttendanceRepository implements attendance.Repository. The unique index on
// (student_id, subject_id, class_date) is what makes Create the arbiter for
// duplicate marks; a 23505 violation surfaces as attendance.ErrDuplicate.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

const recordColumns = `id, record_id, student_id, subject_id, class_date, status, marked_by, marked_at, method, ip_address, device_info`

func (r *AttendanceRepository) Create(ctx context.Context, rec *attendance.Record) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO attendance_records
		(record_id, student_id, subject_id, class_date, status, marked_by, marked_at, method, ip_address, device_info)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, rec.RecordID, rec.StudentID, rec.SubjectID, rec.ClassDate, rec.Status, rec.MarkedBy, rec.MarkedAt, rec.Method, rec.IPAddress, rec.DeviceInfo)
	if isUniqueViolation(err) {
		return attendance.ErrDuplicate
	}
	return err
}

func (r *AttendanceRepository) GetByID(ctx context.Context, recordID uuid.UUID) (*attendance.Record, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+recordColumns+` FROM attendance_records WHERE record_id=$1
	`, recordID)
	return scanRecord(row)
}

func (r *AttendanceRepository) Exists(ctx context.Context, studentID, subjectID uuid.UUID, classDate string) (bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM attendance_records
			WHERE student_id=$1 AND subject_id=$2 AND class_date=$3
		)
	`, studentID, subjectID, classDate)
	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *AttendanceRepository) UpdateStatus(ctx context.Context, recordID uuid.UUID, status attendance.Status) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE attendance_records SET status=$1 WHERE record_id=$2
	`, status, recordID)
	return err
}

func (r *AttendanceRepository) RecordChange(ctx context.Context, ch *attendance.Change) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO attendance_changes
		(record_id, changed_by, previous_status, new_status, reason, changed_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, ch.RecordID, ch.ChangedBy, ch.PreviousStatus, ch.NewStatus, ch.Reason, ch.ChangedAt)
	return err
}

func (r *AttendanceRepository) ListChanges(ctx context.Context, limit, offset int) ([]*attendance.Change, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, record_id, changed_by, previous_status, new_status, reason, changed_at
		FROM attendance_changes
		ORDER BY changed_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var changes []*attendance.Change
	for rows.Next() {
		var ch attendance.Change
		if err := rows.Scan(&ch.ID, &ch.RecordID, &ch.ChangedBy, &ch.PreviousStatus, &ch.NewStatus, &ch.Reason, &ch.ChangedAt); err != nil {
			return nil, err
		}
		changes = append(changes, &ch)
	}
	return changes, rows.Err()
}

func (r *AttendanceRepository) ListByStudentSubject(ctx context.Context, studentID, subjectID uuid.UUID) ([]*attendance.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordColumns+` FROM attendance_records
		WHERE student_id=$1 AND subject_id=$2
		ORDER BY class_date DESC
	`, studentID, subjectID)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (r *AttendanceRepository) ListByStudentRange(ctx context.Context, studentID uuid.UUID, from, to string) ([]*attendance.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordColumns+` FROM attendance_records
		WHERE student_id=$1 AND class_date BETWEEN $2 AND $3
		ORDER BY class_date
	`, studentID, from, to)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (r *AttendanceRepository) ListRecentByMarker(ctx context.Context, markedBy uuid.UUID, limit int) ([]*attendance.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordColumns+` FROM attendance_records
		WHERE marked_by=$1
		ORDER BY marked_at DESC LIMIT $2
	`, markedBy, limit)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (r *AttendanceRepository) StatsByStudentSubject(ctx context.Context, studentID, subjectID uuid.UUID) (attendance.Stats, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status='present'),
			COUNT(*) FILTER (WHERE status='absent'),
			COUNT(*) FILTER (WHERE status='leave'),
			COUNT(*)
		FROM attendance_records
		WHERE student_id=$1 AND subject_id=$2
	`, studentID, subjectID)
	var stats attendance.Stats
	if err := row.Scan(&stats.Present, &stats.Absent, &stats.Leave, &stats.Total); err != nil {
		return attendance.Stats{}, err
	}
	return stats, nil
}

func (r *AttendanceRepository) TrendBySubject(ctx context.Context, subjectID uuid.UUID, since time.Time) ([]attendance.TrendPoint, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT class_date,
			COUNT(*) FILTER (WHERE status='present'),
			COUNT(*)
		FROM attendance_records
		WHERE subject_id=$1 AND class_date >= $2
		GROUP BY class_date
		ORDER BY class_date
	`, subjectID, since.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var points []attendance.TrendPoint
	for rows.Next() {
		var p attendance.TrendPoint
		if err := rows.Scan(&p.Date, &p.Present, &p.Total); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *AttendanceRepository) CountDistinctDatesByMarker(ctx context.Context, markedBy uuid.UUID) (int, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT (subject_id, class_date))
		FROM attendance_records WHERE marked_by=$1
	`, markedBy)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanRecord(row pgx.Row) (*attendance.Record, error) {
	var rec attendance.Record
	if err := row.Scan(&rec.ID, &rec.RecordID, &rec.StudentID, &rec.SubjectID, &rec.ClassDate, &rec.Status, &rec.MarkedBy, &rec.MarkedAt, &rec.Method, &rec.IPAddress, &rec.DeviceInfo); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func collectRecords(rows pgx.Rows) ([]*attendance.Record, error) {
	defer rows.Close()
	var records []*attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
