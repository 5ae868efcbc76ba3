package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campus-hub/campus-hub/internal/domain/teacher"
)

// TeacherRepository implements teacher.Repository.
type TeacherRepository struct {
	pool *pgxpool.Pool
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

const teacherColumns = `id, teacher_id, user_id, name, employee_id, email, department, phone, created_at, updated_at`

func (r *TeacherRepository) Create(ctx context.Context, t *teacher.Teacher) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO teachers
		(teacher_id, user_id, name, employee_id, email, department, phone, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, t.TeacherID, t.UserID, t.Name, t.EmployeeID, t.Email, t.Department, t.Phone, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *TeacherRepository) GetByID(ctx context.Context, teacherID uuid.UUID) (*teacher.Teacher, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE teacher_id=$1`, teacherID)
	return scanTeacher(row)
}

func (r *TeacherRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*teacher.Teacher, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+teacherColumns+` FROM teachers WHERE user_id=$1`, userID)
	return scanTeacher(row)
}

func (r *TeacherRepository) List(ctx context.Context, limit, offset int) ([]*teacher.Teacher, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+teacherColumns+` FROM teachers
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var teachers []*teacher.Teacher
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (r *TeacherRepository) Update(ctx context.Context, t *teacher.Teacher) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE teachers
		SET name=$1, employee_id=$2, email=$3, department=$4, phone=$5, updated_at=$6
		WHERE teacher_id=$7
	`, t.Name, t.EmployeeID, t.Email, t.Department, t.Phone, t.UpdatedAt, t.TeacherID)
	return err
}

func (r *TeacherRepository) Delete(ctx context.Context, teacherID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM teachers WHERE teacher_id=$1`, teacherID)
	return err
}

func (r *TeacherRepository) Count(ctx context.Context) (int, error) {
	row := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teachers`)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanTeacher(row pgx.Row) (*teacher.Teacher, error) {
	var t teacher.Teacher
	if err := row.Scan(&t.ID, &t.TeacherID, &t.UserID, &t.Name, &t.EmployeeID, &t.Email, &t.Department, &t.Phone, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
