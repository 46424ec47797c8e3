package findsimilarjobs

import (
	"dental-jobs/internal/common/validation"
	"dental-jobs/internal/models"
)

type Input struct {
	JobID string `json:"jobId"`
	Limit *int   `json:"limit,omitempty"`
}

type Output struct {
	JobID string       `json:"jobId"`
	Jobs  []models.Job `json:"jobs"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"jobId"},
		Properties: map[string]validation.Property{
			"jobId": {Type: "string", MinLength: validation.IntPtr(1)},
			"limit": {Type: "integer", Minimum: validation.FloatPtr(0), Maximum: validation.FloatPtr(50)},
		},
	}
}
