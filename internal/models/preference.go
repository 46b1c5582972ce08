package models

// ProfessorPreference marks one course material as preferred by a professor.
// The (professor, course material) pair is unique.
type ProfessorPreference struct {
	ProfessorID      int64 `db:"professor_id" json:"professor_id"`
	CourseMaterialID int64 `db:"course_material_id" json:"course_material_id"`
}
