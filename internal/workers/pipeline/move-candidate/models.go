package movecandidate

import (
	"dental-jobs/internal/common/validation"
	"dental-jobs/internal/models"
)

type Input struct {
	OrgID       string             `json:"orgId"`
	JobID       string             `json:"jobId,omitempty"`
	Candidates  []models.Candidate `json:"candidates,omitempty"`
	CandidateID string             `json:"candidateId"`
	NewStatus   string             `json:"newStatus"`
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
		Required: []string{"candidateId", "newStatus", "actor"},
		Properties: map[string]validation.Property{
			"orgId":       {Type: "string", Description: "Organization whose board is loaded when no candidates are passed"},
			"jobId":       {Type: "string"},
			"candidates":  {Type: "array", Description: "Client snapshot of the board"},
			"candidateId": {Type: "string", MinLength: validation.IntPtr(1)},
			"newStatus":   {Type: "string", MinLength: validation.IntPtr(1)},
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
