package models

import "time"

// Student represents a learner registered in the institution.
type Student struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	StudentNumber string    `db:"student_number" json:"student_number"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	GroupID   int64
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
