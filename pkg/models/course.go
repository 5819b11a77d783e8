package models

// CourseDetails is the canonical view of a Docebo course, coalesced from the
// raw payload's alternate field names by docebo.NormalizeCourse.
type CourseDetails struct {
	CourseID      int    `json:"course_id"`
	Code          string `json:"code,omitempty"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Type          string `json:"type,omitempty"`
	Status        string `json:"status,omitempty"`
	Language      string `json:"language,omitempty"`
	CreationDate  string `json:"creation_date,omitempty"`
	EnrolledCount int    `json:"enrolled_count,omitempty"`
}

// LearningPlanDetails is the canonical view of a Docebo learning plan.
type LearningPlanDetails struct {
	PlanID       int    `json:"learning_plan_id"`
	Code         string `json:"code,omitempty"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	CourseCount  int    `json:"course_count,omitempty"`
	CreationDate string `json:"creation_date,omitempty"`
}
