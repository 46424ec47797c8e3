// internal/models/candidate.go
package models

import "time"

// Candidate is one application joined with its applicant, as the employer sees it.
type Candidate struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	School         string   `json:"school"`
	GraduationDate string   `json:"graduationDate,omitempty"`
	Skills         []string `json:"skills"`
	Status         JobStage `json:"status"`
	Rating         float64  `json:"rating"`
	City           string   `json:"city"`
	Notes          string   `json:"notes,omitempty"`
	JobID          string   `json:"jobId"`
	JobTitle       string   `json:"jobTitle"`
	Favorite       bool     `json:"favorite"`
}

// CloneCandidates copies the slice and each candidate's skill list.
func CloneCandidates(in []Candidate) []Candidate {
	if in == nil {
		return nil
	}
	out := make([]Candidate, len(in))
	for i, c := range in {
		if c.Skills != nil {
			c.Skills = append([]string(nil), c.Skills...)
		}
		out[i] = c
	}
	return out
}

// StatusChange is the event recorded alongside a status update.
type StatusChange struct {
	EventID       string    `json:"eventId"`
	ApplicationID string    `json:"applicationId"`
	FromStatus    JobStage  `json:"fromStatus"`
	ToStatus      JobStage  `json:"toStatus"`
	ActorID       string    `json:"actorId"`
	ActorRole     Role      `json:"actorRole"`
	ChangedAt     time.Time `json:"changedAt"`
}
