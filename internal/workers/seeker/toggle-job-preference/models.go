package togglejobpreference

import (
	"dental-jobs/internal/common/validation"
	"dental-jobs/internal/models"
)

type Input struct {
	Actor      models.Actor          `json:"actor"`
	JobID      string                `json:"jobId"`
	Kind       models.PreferenceKind `json:"kind"`
	CurrentIDs []string              `json:"currentIds"`
}

type Output struct {
	IDs           []string              `json:"ids"`
	Enabled       bool                  `json:"enabled"`
	Committed     bool                  `json:"committed"`
	RolledBack    bool                  `json:"rolledBack"`
	Notifications []models.Notification `json:"notifications"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"actor", "jobId", "kind"},
		Properties: map[string]validation.Property{
			"jobId":      {Type: "string", MinLength: validation.IntPtr(1)},
			"kind":       {Type: "string", Enum: []string{"saved", "hidden"}},
			"currentIds": {Type: "array", Items: &validation.Property{Type: "string"}},
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
