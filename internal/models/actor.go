// internal/models/actor.go
package models

type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// Actor identifies the user performing a mutation.
type Actor struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

func (a Actor) IsZero() bool {
	return a.UserID == ""
}
