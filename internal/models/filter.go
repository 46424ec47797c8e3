// internal/models/filter.go
package models

// JobFilterState holds the seeker's current filter selections. Zero values
// mean "no constraint".
type JobFilterState struct {
	Keyword         string `json:"keyword" validate:"max=200"`
	Location        string `json:"location" validate:"max=200"`
	Specialty       string `json:"specialty"`
	EmploymentType  string `json:"employmentType" validate:"omitempty,employment_type"`
	ShiftType       string `json:"shiftType"`
	NewGrad         bool   `json:"newGrad"`
	Training        bool   `json:"training"`
	Internship      bool   `json:"internship"`
	ExperienceLevel string `json:"experienceLevel" validate:"omitempty,experience_level"`
	SalaryMin       int    `json:"salaryMin" validate:"gte=0"`
}

type SortOption string

const (
	SortRelevance SortOption = "relevance"
	SortNewest    SortOption = "newest"
	SortSalary    SortOption = "salary"
)

func (s SortOption) IsValid() bool {
	switch s {
	case SortRelevance, SortNewest, SortSalary:
		return true
	}
	return false
}

// JobQuery is the remote fetch request. Limit 0 fetches every matching job.
type JobQuery struct {
	Status   string `json:"status,omitempty"`
	Keyword  string `json:"keyword,omitempty"`
	Location string `json:"location,omitempty"`
	Page     int    `json:"page,omitempty"`
	Limit    int    `json:"limit,omitempty"`
}

// Offset returns the zero-based row offset for a 1-indexed page.
func (q JobQuery) Offset() int {
	if q.Page < 1 || q.Limit <= 0 {
		return 0
	}
	return (q.Page - 1) * q.Limit
}

type JobPage struct {
	Data  []Job `json:"data"`
	Count int   `json:"count"`
}

type PreferenceKind string

const (
	PreferenceSaved  PreferenceKind = "saved"
	PreferenceHidden PreferenceKind = "hidden"
)

func (k PreferenceKind) IsValid() bool {
	return k == PreferenceSaved || k == PreferenceHidden
}
