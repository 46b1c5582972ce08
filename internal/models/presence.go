package models

import (
	"database/sql"
	"time"
)

// Presence is one attendance record for one student at one scheduled slot.
type Presence struct {
	StudentID int64 `db:"student_id" json:"student_id"`
	SlotID    int64 `db:"slot_id" json:"slot_id"`
	Justified bool  `db:"justified" json:"justified"`
}

// PresenceJoinRow is the raw shape returned by the course-material attendance
// query. Relation hops are LEFT JOINed, so every joined column is nullable; a
// missing hop surfaces as an invalid Null value instead of failing the scan.
type PresenceJoinRow struct {
	StudentID      int64          `db:"student_id"`
	SlotID         int64          `db:"slot_id"`
	Justified      bool           `db:"justified"`
	StudentName    sql.NullString `db:"student_name"`
	StudentNumber  sql.NullString `db:"student_number"`
	SlotDate       sql.NullTime   `db:"slot_date"`
	SessionType    sql.NullString `db:"session_type"`
	CourseMaterial sql.NullString `db:"course_material"`
}

// AttendanceRow is the flat report-ready attendance shape.
type AttendanceRow struct {
	Name           string     `json:"name"`
	StudentNumber  string     `json:"student_number"`
	Date           *time.Time `json:"date"`
	SessionType    string     `json:"session_type"`
	CourseMaterial string     `json:"course_material"`
	Justified      bool       `json:"justified"`
	StudentID      int64      `json:"student_id"`
	SlotID         int64      `json:"slot_id"`
}
