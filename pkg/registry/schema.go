// pkg/registry/schema.go
package registry

import "dental-jobs/internal/common/validation"

// ActivityRegistry is the published catalogue of job worker activities,
// used by process modellers to wire service tasks.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	TaskType    string                `json:"taskType"`
	DisplayName string                `json:"displayName"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	InputSchema validation.JSONSchema `json:"inputSchema"`
	ErrorCodes  []string              `json:"errorCodes"`
	Timeout     string                `json:"timeout"`
	Retries     int                   `json:"retries"`
	Tags        []string              `json:"tags,omitempty"`
}
