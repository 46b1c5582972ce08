package models

// SubstituteCandidate is one student eligible to stand in for a group's
// roster. Origin fields record which group the candidacy came from; they are
// zero for students with no enrollment in the semester.
type SubstituteCandidate struct {
	StudentID       int64  `json:"student_id"`
	Name            string `json:"name"`
	StudentNumber   string `json:"student_number"`
	OriginGroupID   int64  `json:"origin_group_id,omitempty"`
	OriginGroupName string `json:"origin_group_name,omitempty"`
}
