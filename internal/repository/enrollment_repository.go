package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/absence-api/internal/models"
)

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// ListByGroups returns the enrollments of the given groups with student and
// group context attached. Rows come back in insertion order.
func (r *EnrollmentRepository) ListByGroups(ctx context.Context, groupIDs []int64) ([]models.EnrollmentDetail, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(groupIDs))
	args := make([]interface{}, len(groupIDs))
	for i, id := range groupIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT e.id, e.student_id, e.group_id,
        s.name AS student_name, s.student_number, g.name AS group_name
        FROM enrollments e
        JOIN students s ON s.id = e.student_id
        JOIN groups g ON g.id = e.group_id
        WHERE e.group_id IN (%s)
        ORDER BY e.id`, strings.Join(placeholders, ","))

	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, fmt.Errorf("list enrollments by groups: %w", err)
	}
	return enrollments, nil
}

// ListBySemesterExcludingGroup returns every enrollment in the semester except
// those of the excluded group, in insertion order.
func (r *EnrollmentRepository) ListBySemesterExcludingGroup(ctx context.Context, semesterID, excludedGroupID int64) ([]models.EnrollmentDetail, error) {
	const query = `SELECT e.id, e.student_id, e.group_id,
        s.name AS student_name, s.student_number, g.name AS group_name
        FROM enrollments e
        JOIN students s ON s.id = e.student_id
        JOIN groups g ON g.id = e.group_id
        WHERE g.semester_id = $1 AND e.group_id <> $2
        ORDER BY e.id`
	var enrollments []models.EnrollmentDetail
	if err := r.db.SelectContext(ctx, &enrollments, query, semesterID, excludedGroupID); err != nil {
		return nil, fmt.Errorf("list semester enrollments: %w", err)
	}
	return enrollments, nil
}

// ListStudentsWithoutEnrollment returns students that hold no enrollment in
// any group of the semester.
func (r *EnrollmentRepository) ListStudentsWithoutEnrollment(ctx context.Context, semesterID int64) ([]models.Student, error) {
	const query = `SELECT s.id, s.name, s.student_number, s.created_at, s.updated_at
        FROM students s
        WHERE NOT EXISTS (
            SELECT 1 FROM enrollments e
            JOIN groups g ON g.id = e.group_id
            WHERE e.student_id = s.id AND g.semester_id = $1
        )
        ORDER BY s.id`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, semesterID); err != nil {
		return nil, fmt.Errorf("list unaffiliated students: %w", err)
	}
	return students, nil
}
