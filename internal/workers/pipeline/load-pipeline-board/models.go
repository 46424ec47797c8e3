package loadpipelineboard

import (
	"dental-jobs/internal/common/validation"
	"dental-jobs/internal/models"
	"dental-jobs/internal/pipeline"
)

type Input struct {
	OrgID         string   `json:"orgId"`
	JobID         string   `json:"jobId"`
	FavoritesOnly bool     `json:"favoritesOnly"`
	FavoriteIDs   []string `json:"favoriteIds,omitempty"`
}

// JobSummary is one entry of the board's job selector.
type JobSummary struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	ApplicationCount int    `json:"applicationCount"`
}

type Output struct {
	JobID       string                `json:"jobId"`
	Columns     []pipeline.StageGroup `json:"columns"`
	Total       int                   `json:"total"`
	Jobs        []JobSummary          `json:"jobs"`
	FavoriteIDs []string              `json:"favoriteIds"`
	Candidates  []models.Candidate    `json:"candidates"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"orgId"},
		Properties: map[string]validation.Property{
			"orgId":         {Type: "string", MinLength: validation.IntPtr(1)},
			"jobId":         {Type: "string", Description: "Empty selects the first job on the board"},
			"favoritesOnly": {Type: "boolean", Default: false},
			"favoriteIds":   {Type: "array", Items: &validation.Property{Type: "string"}},
		},
	}
}
