package models

import "time"

// CourseMaterial belongs to a semester and anchors attendance queries to the
// semester's group set.
type CourseMaterial struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	SemesterID int64  `db:"semester_id" json:"semester_id"`
}

// SessionTypeGlobal carries the institution-wide session category label
// (lecture, lab, ...).
type SessionTypeGlobal struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// SessionType binds a global category to a course material under a
// course-specific name.
type SessionType struct {
	ID               int64   `db:"id" json:"id"`
	Name             *string `db:"name" json:"name,omitempty"`
	CourseMaterialID int64   `db:"course_material_id" json:"course_material_id"`
	GlobalTypeID     int64   `db:"global_type_id" json:"global_type_id"`
}

// Slot is a scheduled session instance.
type Slot struct {
	ID            int64     `db:"id" json:"id"`
	Date          time.Time `db:"date" json:"date"`
	SessionTypeID int64     `db:"session_type_id" json:"session_type_id"`
}
