package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/absence-api/internal/models"
)

// CourseMaterialRepository handles persistence of course materials.
type CourseMaterialRepository struct {
	db *sqlx.DB
}

// NewCourseMaterialRepository constructs the repository.
func NewCourseMaterialRepository(db *sqlx.DB) *CourseMaterialRepository {
	return &CourseMaterialRepository{db: db}
}

// FindByID returns a course material by its ID.
func (r *CourseMaterialRepository) FindByID(ctx context.Context, id int64) (*models.CourseMaterial, error) {
	const query = `SELECT id, name, semester_id FROM course_materials WHERE id = $1`
	var material models.CourseMaterial
	if err := r.db.GetContext(ctx, &material, query, id); err != nil {
		return nil, err
	}
	return &material, nil
}
