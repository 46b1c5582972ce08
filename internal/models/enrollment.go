package models

// Enrollment links one student to one group. A student may hold zero, one or
// several enrollments, including across semesters.
type Enrollment struct {
	ID        int64 `db:"id" json:"id"`
	StudentID int64 `db:"student_id" json:"student_id"`
	GroupID   int64 `db:"group_id" json:"group_id"`
}

// EnrollmentDetail carries the joined student and group context used when
// building substitute pools.
type EnrollmentDetail struct {
	Enrollment
	StudentName   string `db:"student_name" json:"student_name"`
	StudentNumber string `db:"student_number" json:"student_number"`
	GroupName     string `db:"group_name" json:"group_name"`
}
