package models

import "time"

// Course is a course the authenticated user can see.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Curator     string `json:"curator"`
}

// Assignment is a task within a course, with the caller's submission status.
type Assignment struct {
	ID       string     `json:"id"`
	CourseID string     `json:"course_id"`
	Title    string     `json:"title"`
	Status   string     `json:"status"`
	DueAt    *time.Time `json:"due_at,omitempty"`
}
