package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-hub/campus-hub/internal/domain/student"
)

// StudentRepository implements student.Repository.
type StudentRepository struct {
	pool *pgxpool.Pool
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{pool: pool}
}

const studentColumns = `id, student_id, user_id, name, roll_number, email, department, semester, enrollment_year, phone, created_at, updated_at`

func (r *StudentRepository) Create(ctx context.Context, s *student.Student) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO students
		(student_id, user_id, name, roll_number, email, department, semester, enrollment_year, phone, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`, s.StudentID, s.UserID, s.Name, s.RollNumber, s.Email, s.Department, s.Semester, s.EnrollmentYear, s.Phone, s.CreatedAt, s.UpdatedAt)
	return err
}

func (r *StudentRepository) GetByID(ctx context.Context, studentID uuid.UUID) (*student.Student, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE student_id=$1`, studentID)
	return scanStudent(row)
}

func (r *StudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*student.Student, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE user_id=$1`, userID)
	return scanStudent(row)
}

func (r *StudentRepository) GetByRollNumber(ctx context.Context, rollNumber string) (*student.Student, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+studentColumns+` FROM students WHERE roll_number=$1`, rollNumber)
	return scanStudent(row)
}

func (r *StudentRepository) ListByDepartmentSemester(ctx context.Context, department string, semester int) ([]*student.Student, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+studentColumns+` FROM students
		WHERE department=$1 AND semester=$2
		ORDER BY roll_number
	`, department, semester)
	if err != nil {
		return nil, err
	}
	return collectStudents(rows)
}

func (r *StudentRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*student.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+studentColumns+` FROM students
		WHERE student_id = ANY($1)
		ORDER BY roll_number
	`, ids)
	if err != nil {
		return nil, err
	}
	return collectStudents(rows)
}

func (r *StudentRepository) List(ctx context.Context, limit, offset int) ([]*student.Student, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+studentColumns+` FROM students
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectStudents(rows)
}

func (r *StudentRepository) Update(ctx context.Context, s *student.Student) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE students
		SET name=$1, roll_number=$2, email=$3, department=$4, semester=$5, enrollment_year=$6, phone=$7, updated_at=$8
		WHERE student_id=$9
	`, s.Name, s.RollNumber, s.Email, s.Department, s.Semester, s.EnrollmentYear, s.Phone, s.UpdatedAt, s.StudentID)
	return err
}

func (r *StudentRepository) Delete(ctx context.Context, studentID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM students WHERE student_id=$1`, studentID)
	return err
}

func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	row := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM students`)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanStudent(row pgx.Row) (*student.Student, error) {
	var s student.Student
	if err := row.Scan(&s.ID, &s.StudentID, &s.UserID, &s.Name, &s.RollNumber, &s.Email, &s.Department, &s.Semester, &s.EnrollmentYear, &s.Phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func collectStudents(rows pgx.Rows) ([]*student.Student, error) {
	defer rows.Close()
	var students []*student.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
