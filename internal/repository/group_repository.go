package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/absence-api/internal/models"
)

// GroupRepository handles persistence of groups.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs the repository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// FindByID returns a group with its semester attached.
func (r *GroupRepository) FindByID(ctx context.Context, id int64) (*models.GroupDetail, error) {
	const query = `SELECT g.id, g.name, g.semester_id, s.name AS semester_name
        FROM groups g
        JOIN semesters s ON s.id = g.semester_id
        WHERE g.id = $1`
	var group models.GroupDetail
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		return nil, err
	}
	return &group, nil
}

// ListBySemesterExcludingName returns the semester's groups whose name
// differs from the provided one.
func (r *GroupRepository) ListBySemesterExcludingName(ctx context.Context, semesterID int64, excludedName string) ([]models.Group, error) {
	const query = `SELECT id, name, semester_id FROM groups WHERE semester_id = $1 AND name <> $2 ORDER BY id`
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, query, semesterID, excludedName); err != nil {
		return nil, fmt.Errorf("list semester groups: %w", err)
	}
	return groups, nil
}

// ListBySemester returns all groups of a semester.
func (r *GroupRepository) ListBySemester(ctx context.Context, semesterID int64) ([]models.Group, error) {
	const query = `SELECT id, name, semester_id FROM groups WHERE semester_id = $1 ORDER BY id`
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, query, semesterID); err != nil {
		return nil, fmt.Errorf("list semester groups: %w", err)
	}
	return groups, nil
}
