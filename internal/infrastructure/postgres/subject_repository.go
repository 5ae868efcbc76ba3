package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-hub/campus-hub/internal/domain/subject"
)

// SubjectRepository implements subject.Repository.
type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

const subjectColumns = `id, subject_id, name, code, department, semester, assigned_teacher, credits, total_lectures, created_at, updated_at`

func (r *SubjectRepository) Create(ctx context.Context, s *subject.Subject) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO subjects
		(subject_id, name, code, department, semester, assigned_teacher, credits, total_lectures, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, s.SubjectID, s.Name, s.Code, s.Department, s.Semester, s.AssignedTeacher, s.Credits, s.TotalLectures, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *SubjectRepository) GetByID(ctx context.Context, subjectID uuid.UUID) (*subject.Subject, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE subject_id=$1`, subjectID)
	return scanSubject(row)
}

func (r *SubjectRepository) GetByCode(ctx context.Context, code string) (*subject.Subject, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE code=$1`, code)
	return scanSubject(row)
}

func (r *SubjectRepository) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]*subject.Subject, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+subjectColumns+` FROM subjects
		WHERE assigned_teacher=$1
		ORDER BY code
	`, teacherID)
	if err != nil {
		return nil, err
	}
	return collectSubjects(rows)
}

func (r *SubjectRepository) ListByDepartmentSemester(ctx context.Context, department string, semester int) ([]*subject.Subject, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+subjectColumns+` FROM subjects
		WHERE department=$1 AND semester=$2
		ORDER BY code
	`, department, semester)
	if err != nil {
		return nil, err
	}
	return collectSubjects(rows)
}

func (r *SubjectRepository) List(ctx context.Context, limit, offset int) ([]*subject.Subject, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+subjectColumns+` FROM subjects
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectSubjects(rows)
}

func (r *SubjectRepository) Update(ctx context.Context, s *subject.Subject) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE subjects
		SET name=$1, code=$2, department=$3, semester=$4, assigned_teacher=$5, credits=$6, total_lectures=$7, updated_at=$8
		WHERE subject_id=$9
	`, s.Name, s.Code, s.Department, s.Semester, s.AssignedTeacher, s.Credits, s.TotalLectures, s.UpdatedAt, s.SubjectID)
	return err
}

func (r *SubjectRepository) IncrementTotalLectures(ctx context.Context, subjectID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE subjects SET total_lectures = total_lectures + 1, updated_at=NOW() WHERE subject_id=$1
	`, subjectID)
	return err
}

func (r *SubjectRepository) Delete(ctx context.Context, subjectID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE subject_id=$1`, subjectID)
	return err
}

func (r *SubjectRepository) Count(ctx context.Context) (int, error) {
	row := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM subjects`)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanSubject(row pgx.Row) (*subject.Subject, error) {
	var s subject.Subject
	var assigned *uuid.UUID
	if err := row.Scan(&s.ID, &s.SubjectID, &s.Name, &s.Code, &s.Department, &s.Semester, &assigned, &s.Credits, &s.TotalLectures, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	s.AssignedTeacher = assigned
	return &s, nil
}

func collectSubjects(rows pgx.Rows) ([]*subject.Subject, error) {
	defer rows.Close()
	var subjects []*subject.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}
