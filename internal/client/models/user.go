// Package models defines the API resource types consumed by the LMS client.
package models

// Role is the user's role within the platform.
type Role string

const (
	RoleStudent Role = "student"
	RoleCurator Role = "curator"
	RoleAdmin   Role = "admin"
)

// User is the profile returned by GET /auth/me.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
	Points   int    `json:"points"`
}
