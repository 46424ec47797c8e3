// Package jobsearch filters, sorts, paginates and ranks job listings held
// in memory.
package jobsearch

import (
	"sort"
	"strings"

	"dental-jobs/internal/models"
)

// ApplyFilters returns the jobs matching every active clause of f. The
// input slice is not modified.
func ApplyFilters(jobs []models.Job, f models.JobFilterState) []models.Job {
	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))
	location := strings.ToLower(strings.TrimSpace(f.Location))

	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if keyword != "" && !matchesKeyword(job, keyword) {
			continue
		}
		if location != "" &&
			!strings.Contains(strings.ToLower(job.City), location) &&
			!strings.Contains(strings.ToLower(job.Country), location) {
			continue
		}
		if f.Specialty != "" && !job.HasTag(f.Specialty) {
			continue
		}
		if f.EmploymentType != "" && job.EmploymentType != f.EmploymentType {
			continue
		}
		if f.ShiftType != "" && job.ShiftType != f.ShiftType {
			continue
		}
		if f.ExperienceLevel != "" && job.ExperienceLevel != f.ExperienceLevel {
			continue
		}
		if f.NewGrad && !job.NewGradWelcome {
			continue
		}
		if f.Training && !job.TrainingProvided {
			continue
		}
		if f.Internship && !job.InternshipAvailable {
			continue
		}
		if f.SalaryMin > 0 && EffectiveMaxSalary(job) < f.SalaryMin {
			continue
		}
		out = append(out, job)
	}
	return out
}

func matchesKeyword(job models.Job, keyword string) bool {
	if strings.Contains(strings.ToLower(job.Role), keyword) ||
		strings.Contains(strings.ToLower(job.OrganizationName), keyword) {
		return true
	}
	for _, tag := range job.SpecialtyTags {
		if strings.Contains(strings.ToLower(tag), keyword) {
			return true
		}
	}
	return false
}

// SortJobs returns a sorted copy. Relevance keeps source order; newest and
// salary sort descending and keep ties in source order.
func SortJobs(jobs []models.Job, sortBy models.SortOption) []models.Job {
	out := make([]models.Job, len(jobs))
	copy(out, jobs)

	switch sortBy {
	case models.SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PostedAt.After(out[j].PostedAt)
		})
	case models.SortSalary:
		sort.SliceStable(out, func(i, j int) bool {
			return SalarySortKey(out[i]) > SalarySortKey(out[j])
		})
	}
	return out
}

// Paginate returns jobs[(page-1)*pageSize : page*pageSize]. Pages are
// 1-indexed; an out-of-range page or non-positive size yields an empty slice.
func Paginate(jobs []models.Job, page, pageSize int) []models.Job {
	if pageSize <= 0 || page < 1 {
		return []models.Job{}
	}
	start := (page - 1) * pageSize
	if start >= len(jobs) {
		return []models.Job{}
	}
	end := start + pageSize
	if end > len(jobs) {
		end = len(jobs)
	}
	out := make([]models.Job, end-start)
	copy(out, jobs[start:end])
	return out
}

func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// ClampPage bounds page to [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// FindSimilarJobs returns up to limit other jobs sharing at least one
// specialty tag with job, in source order.
func FindSimilarJobs(job models.Job, all []models.Job, limit int) []models.Job {
	out := []models.Job{}
	if limit <= 0 {
		return out
	}

	tags := make(map[string]struct{}, len(job.SpecialtyTags))
	for _, t := range job.SpecialtyTags {
		tags[t] = struct{}{}
	}

	for _, candidate := range all {
		if candidate.ID == job.ID {
			continue
		}
		for _, t := range candidate.SpecialtyTags {
			if _, ok := tags[t]; ok {
				out = append(out, candidate)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

// RankHotJobs orders jobs by application count, highest first, keeping
// ties in source order, and returns the first limit.
func RankHotJobs(jobs []models.Job, counts map[string]int, limit int) []models.RankedJob {
	if limit <= 0 {
		return []models.RankedJob{}
	}

	ranked := make([]models.RankedJob, len(jobs))
	for i, job := range jobs {
		ranked[i] = models.RankedJob{Job: job, ApplicationCount: counts[job.ID]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ApplicationCount > ranked[j].ApplicationCount
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// SearchResult is one page of a filtered, sorted job list.
type SearchResult struct {
	Jobs       []models.Job `json:"jobs"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
}

// Search filters, sorts, clamps page and paginates.
func Search(jobs []models.Job, f models.JobFilterState, sortBy models.SortOption, page, pageSize int) SearchResult {
	sorted := SortJobs(ApplyFilters(jobs, f), sortBy)
	pages := TotalPages(len(sorted), pageSize)
	page = ClampPage(page, pages)

	return SearchResult{
		Jobs:       Paginate(sorted, page, pageSize),
		Total:      len(sorted),
		Page:       page,
		TotalPages: pages,
	}
}
