// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var ErrUnknownActivity = errors.New("unknown activity")

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return &reg, nil
}

// Save writes the registry with activities ordered by category, then task type.
func (r *ActivityRegistry) Save(path string) error {
	r.sort()
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func (r *ActivityRegistry) sort() {
	sort.SliceStable(r.Activities, func(i, j int) bool {
		a, b := r.Activities[i], r.Activities[j]
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.TaskType < b.TaskType
	})
}

func (r *ActivityRegistry) Find(taskType string) (*Activity, error) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownActivity, taskType)
}

// Validate reports duplicate task types and activities missing a category
// or an object input schema.
func (r *ActivityRegistry) Validate() []error {
	var errs []error
	seen := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		if seen[a.TaskType] {
			errs = append(errs, fmt.Errorf("%s: duplicate task type", a.TaskType))
		}
		seen[a.TaskType] = true

		if a.Category == "" {
			errs = append(errs, fmt.Errorf("%s: category is required", a.TaskType))
		}
		if a.InputSchema.Type != "object" {
			errs = append(errs, fmt.Errorf("%s: input schema must be an object", a.TaskType))
		}
	}
	return errs
}
