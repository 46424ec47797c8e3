package updatecandidatenotes

import (
	"dental-jobs/internal/common/validation"
	"dental-jobs/internal/models"
)

type Input struct {
	OrgID       string             `json:"orgId"`
	JobID       string             `json:"jobId,omitempty"`
	Candidates  []models.Candidate `json:"candidates,omitempty"`
	CandidateID string             `json:"candidateId"`
	Notes       string             `json:"notes"`
	Actor       models.Actor       `json:"actor"`
}

type Output struct {
	Candidates    []models.Candidate    `json:"candidates"`
	Changed       bool                  `json:"changed"`
	Committed     bool                  `json:"committed"`
	RolledBack    bool                  `json:"rolledBack"`
	Notifications []models.Notification `json:"notifications"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"candidateId", "notes", "actor"},
		Properties: map[string]validation.Property{
			"orgId":       {Type: "string"},
			"jobId":       {Type: "string"},
			"candidates":  {Type: "array"},
			"candidateId": {Type: "string", MinLength: validation.IntPtr(1)},
			"notes":       {Type: "string", MaxLength: validation.IntPtr(5000)},
			"actor": {
				Type:     "object",
				Required: []string{"userId"},
				Properties: map[string]validation.Property{
					"userId": {Type: "string", MinLength: validation.IntPtr(1)},
					"role":   {Type: "string", Enum: []string{"seeker", "employer", "admin"}},
				},
			},
		},
	}
}
