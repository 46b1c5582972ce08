package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PreferenceRepository persists professor course-material preferences.
type PreferenceRepository struct {
	db *sqlx.DB
}

// NewPreferenceRepository constructs the repository.
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// ListByProfessor returns the course-material ids preferred by a professor.
func (r *PreferenceRepository) ListByProfessor(ctx context.Context, professorID int64) ([]int64, error) {
	const query = `SELECT course_material_id FROM professor_preferences WHERE professor_id = $1 ORDER BY course_material_id`
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, professorID); err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	return ids, nil
}

// Replace swaps the professor's whole preference set in one transaction, so a
// concurrent reader never observes the transient empty set between the delete
// and the inserts.
func (r *PreferenceRepository) Replace(ctx context.Context, professorID int64, courseMaterialIDs []int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace preferences: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM professor_preferences WHERE professor_id = $1`, professorID); err != nil {
		return fmt.Errorf("clear preferences: %w", err)
	}
	for _, id := range courseMaterialIDs {
		if _, err = tx.ExecContext(ctx, `INSERT INTO professor_preferences (professor_id, course_material_id) VALUES ($1, $2)`, professorID, id); err != nil {
			return fmt.Errorf("insert preference: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit replace preferences: %w", err)
	}
	return nil
}

// Add inserts a single preference. Adding an existing pair is a no-op.
func (r *PreferenceRepository) Add(ctx context.Context, professorID, courseMaterialID int64) error {
	const query = `INSERT INTO professor_preferences (professor_id, course_material_id)
        VALUES ($1, $2)
        ON CONFLICT (professor_id, course_material_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, professorID, courseMaterialID); err != nil {
		return fmt.Errorf("add preference: %w", err)
	}
	return nil
}

// Remove deletes a single preference. It returns sql.ErrNoRows when the pair
// does not exist.
func (r *PreferenceRepository) Remove(ctx context.Context, professorID, courseMaterialID int64) error {
	const query = `DELETE FROM professor_preferences WHERE professor_id = $1 AND course_material_id = $2`
	result, err := r.db.ExecContext(ctx, query, professorID, courseMaterialID)
	if err != nil {
		return fmt.Errorf("remove preference: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove preference: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
