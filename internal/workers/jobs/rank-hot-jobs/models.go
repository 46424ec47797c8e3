package rankhotjobs

import (
	"dental-jobs/internal/common/validation"
	"dental-jobs/internal/models"
)

type Input struct {
	Limit *int `json:"limit,omitempty"`
}

type Output struct {
	Jobs []models.RankedJob `json:"jobs"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"limit": {Type: "integer", Minimum: validation.FloatPtr(0), Maximum: validation.FloatPtr(50)},
		},
	}
}
