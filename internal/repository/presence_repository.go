package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campusops/absence-api/internal/models"
)

// PresenceRepository reads attendance records. Presence rows are written by
// the attendance-taking workflows; this repository only aggregates them.
type PresenceRepository struct {
	db *sqlx.DB
}

// NewPresenceRepository constructs the repository.
func NewPresenceRepository(db *sqlx.DB) *PresenceRepository {
	return &PresenceRepository{db: db}
}

// ListByCourseMaterial returns presence rows whose slot's session type belongs
// to the course material, with student, slot and session-type context eagerly
// joined. Relation hops use LEFT JOIN so an orphaned reference degrades the
// affected columns to NULL instead of dropping or failing the row.
func (r *PresenceRepository) ListByCourseMaterial(ctx context.Context, courseMaterialID int64) ([]models.PresenceJoinRow, error) {
	const query = `SELECT p.student_id, p.slot_id, p.justified,
        s.name AS student_name, s.student_number,
        sl.date AS slot_date,
        stg.name AS session_type,
        cm.name AS course_material
        FROM presences p
        JOIN slots sl ON sl.id = p.slot_id
        JOIN session_types st ON st.id = sl.session_type_id
        LEFT JOIN students s ON s.id = p.student_id
        LEFT JOIN session_type_globals stg ON stg.id = st.global_type_id
        LEFT JOIN course_materials cm ON cm.id = st.course_material_id
        WHERE st.course_material_id = $1`
	var rows []models.PresenceJoinRow
	if err := r.db.SelectContext(ctx, &rows, query, courseMaterialID); err != nil {
		return nil, fmt.Errorf("list presences by course material: %w", err)
	}
	return rows, nil
}
