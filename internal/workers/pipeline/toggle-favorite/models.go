package togglefavorite

import (
	"dental-jobs/internal/common/validation"
	"dental-jobs/internal/models"
)

type Input struct {
	OrgID       string             `json:"orgId"`
	JobID       string             `json:"jobId,omitempty"`
	Candidates  []models.Candidate `json:"candidates,omitempty"`
	FavoriteIDs []string           `json:"favoriteIds,omitempty"`
	CandidateID string             `json:"candidateId"`
	Actor       models.Actor       `json:"actor"`
}

type Output struct {
	FavoriteIDs   []string              `json:"favoriteIds"`
	Favorite      bool                  `json:"favorite"`
	Changed       bool                  `json:"changed"`
	Committed     bool                  `json:"committed"`
	RolledBack    bool                  `json:"rolledBack"`
	Notifications []models.Notification `json:"notifications"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"candidateId", "actor"},
		Properties: map[string]validation.Property{
			"orgId":       {Type: "string"},
			"jobId":       {Type: "string"},
			"candidates":  {Type: "array"},
			"favoriteIds": {Type: "array", Items: &validation.Property{Type: "string"}},
			"candidateId": {Type: "string", MinLength: validation.IntPtr(1)},
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
