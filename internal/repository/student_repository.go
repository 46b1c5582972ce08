package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/absence-api/internal/models"
)

// StudentRepository handles persistence of students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students filtered by the provided criteria.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	base := `FROM students s`
	var conditions []string
	var args []interface{}

	if filter.GroupID != 0 {
		base += ` JOIN enrollments e ON e.student_id = s.id`
		conditions = append(conditions, fmt.Sprintf("e.group_id = $%d", len(args)+1))
		args = append(args, filter.GroupID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(s.name ILIKE $%d OR s.student_number ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	allowedSorts := map[string]string{
		"name":           "s.name",
		"student_number": "s.student_number",
		"created_at":     "s.created_at",
	}
	orderBy := allowedSorts[filter.SortBy]
	if orderBy == "" {
		orderBy = "s.name"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT s.id, s.name, s.student_number, s.created_at, s.updated_at
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base+clause, orderBy, order, size, offset)

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base+clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// FindByID returns a student by its ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	const query = `SELECT id, name, student_number, created_at, updated_at FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByNumbers returns students matching any of the given student numbers.
func (r *StudentRepository) FindByNumbers(ctx context.Context, numbers []string) ([]models.Student, error) {
	if len(numbers) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(numbers))
	args := make([]interface{}, len(numbers))
	for i, number := range numbers {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = number
	}
	query := fmt.Sprintf(`SELECT id, name, student_number, created_at, updated_at
        FROM students WHERE student_number IN (%s) ORDER BY id`, strings.Join(placeholders, ","))
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("find students by numbers: %w", err)
	}
	return students, nil
}

// ListByGroup returns the students enrolled in a group.
func (r *StudentRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.Student, error) {
	const query = `SELECT s.id, s.name, s.student_number, s.created_at, s.updated_at
        FROM students s
        JOIN enrollments e ON e.student_id = s.id
        WHERE e.group_id = $1
        ORDER BY s.id`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, groupID); err != nil {
		return nil, fmt.Errorf("list group students: %w", err)
	}
	return students, nil
}

// ListEnrolledInSemester returns the distinct students enrolled in any group
// of the semester.
func (r *StudentRepository) ListEnrolledInSemester(ctx context.Context, semesterID int64) ([]models.Student, error) {
	const query = `SELECT DISTINCT s.id, s.name, s.student_number, s.created_at, s.updated_at
        FROM students s
        JOIN enrollments e ON e.student_id = s.id
        JOIN groups g ON g.id = e.group_id
        WHERE g.semester_id = $1
        ORDER BY s.id`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, semesterID); err != nil {
		return nil, fmt.Errorf("list semester students: %w", err)
	}
	return students, nil
}

// Create persists a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (name, student_number, created_at, updated_at)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.GetContext(ctx, &student.ID, query, student.Name, student.StudentNumber, student.CreatedAt, student.UpdatedAt); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// CreateWithUser persists a student together with its login account in one
// transaction.
func (r *StudentRepository) CreateWithUser(ctx context.Context, student *models.Student, user *models.User) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create student: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now
	const studentQuery = `INSERT INTO students (name, student_number, created_at, updated_at)
        VALUES ($1, $2, $3, $4) RETURNING id`
	if err = tx.GetContext(ctx, &student.ID, studentQuery, student.Name, student.StudentNumber, student.CreatedAt, student.UpdatedAt); err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	const userQuery = `INSERT INTO users (email, name, password_hash, role, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err = tx.GetContext(ctx, &user.ID, userQuery, user.Email, user.Name, user.PasswordHash, user.Role, user.Active, user.CreatedAt, user.UpdatedAt); err != nil {
		return fmt.Errorf("create student account: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create student: %w", err)
	}
	return nil
}

// Update mutates the student's administrative fields.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET name = $2, student_number = $3, updated_at = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, student.ID, student.Name, student.StudentNumber, student.UpdatedAt); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student record.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM students WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
