package models

// Semester is the top-level scoping period bounding group comparisons.
type Semester struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Group is a cohort of students sharing scheduled sessions within a semester.
type Group struct {
	ID         int64  `db:"id" json:"id"`
	Name       string `db:"name" json:"name"`
	SemesterID int64  `db:"semester_id" json:"semester_id"`
}

// GroupDetail enriches Group with its semester label.
type GroupDetail struct {
	Group
	SemesterName string `db:"semester_name" json:"semester_name"`
}
