// internal/models/job.go
package models

import "time"

const (
	EmploymentFullTime = "Full-time"
	EmploymentPartTime = "Part-time"
	EmploymentLocum    = "Locum"
	EmploymentContract = "Contract"
)

var EmploymentTypes = []string{EmploymentFullTime, EmploymentPartTime, EmploymentLocum, EmploymentContract}

const (
	ExperienceStudent = "Student"
	ExperienceNewGrad = "New Grad"
	ExperienceJunior  = "Junior"
	ExperienceMid     = "Mid"
	ExperienceSenior  = "Senior"
)

var ExperienceLevels = []string{ExperienceStudent, ExperienceNewGrad, ExperienceJunior, ExperienceMid, ExperienceSenior}

const (
	JobStatusPublished = "published"
	JobStatusDraft     = "draft"
	JobStatusClosed    = "closed"
)

type Job struct {
	ID                  string    `json:"id"`
	Role                string    `json:"role"`
	OrganizationID      string    `json:"organizationId"`
	OrganizationName    string    `json:"organizationName"`
	City                string    `json:"city"`
	Country             string    `json:"country"`
	SpecialtyTags       []string  `json:"specialtyTags"`
	EmploymentType      string    `json:"employmentType"`
	ShiftType           string    `json:"shiftType,omitempty"`
	ExperienceLevel     string    `json:"experienceLevel"`
	SalaryRange         string    `json:"salaryRange"`
	SalaryMin           *int      `json:"salaryMin,omitempty"`
	SalaryMax           *int      `json:"salaryMax,omitempty"`
	Benefits            []string  `json:"benefits"`
	Requirements        []string  `json:"requirements"`
	PostedAt            time.Time `json:"postedAt"`
	NewGradWelcome      bool      `json:"newGradWelcome"`
	TrainingProvided    bool      `json:"trainingProvided"`
	InternshipAvailable bool      `json:"internshipAvailable"`
	Description         string    `json:"description"`
	Status              string    `json:"status,omitempty"`
}

// HasTag reports exact membership of tag in the job's specialty tags.
func (j Job) HasTag(tag string) bool {
	for _, t := range j.SpecialtyTags {
		if t == tag {
			return true
		}
	}
	return false
}

// RankedJob pairs a job with its application count.
type RankedJob struct {
	Job
	ApplicationCount int `json:"applicationCount"`
}
