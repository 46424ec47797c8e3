package searchjobs

import (
	"dental-jobs/internal/common/validation"
	"dental-jobs/internal/models"
)

const (
	ModeLocal  = "local"
	ModeRemote = "remote"
)

type Input struct {
	Filters  models.JobFilterState `json:"filters"`
	SortBy   models.SortOption     `json:"sortBy" validate:"omitempty,sort_option"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
	Mode     string                `json:"mode"`
}

type Output struct {
	Jobs       []models.Job      `json:"jobs"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
	SortBy     models.SortOption `json:"sortBy"`
	Mode       string            `json:"mode"`
}

func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"filters": {
				Type: "object",
				Properties: map[string]validation.Property{
					"keyword":         {Type: "string"},
					"location":        {Type: "string"},
					"specialty":       {Type: "string"},
					"employmentType":  {Type: "string"},
					"shiftType":       {Type: "string"},
					"experienceLevel": {Type: "string"},
					"newGrad":         {Type: "boolean"},
					"training":        {Type: "boolean"},
					"internship":      {Type: "boolean"},
					"salaryMin":       {Type: "integer"},
				},
			},
			"sortBy":   {Type: "string", Enum: []string{"relevance", "newest", "salary"}},
			"page":     {Type: "integer"},
			"pageSize": {Type: "integer"},
			"mode":     {Type: "string", Enum: []string{ModeLocal, ModeRemote}},
		},
	}
}
