package jobsearch

import (
	"regexp"
	"strconv"
	"strings"

	"dental-jobs/internal/models"
)

var (
	digitRun  = regexp.MustCompile(`\d+`)
	nonDigit  = regexp.MustCompile(`\D`)
	sortDigit = regexp.MustCompile(`^\d{1,4}`)
)

// EffectiveMaxSalary prefers SalaryMax. Without it the display string is
// read with commas removed: the second number if there are two or more,
// else the first, else 0.
func EffectiveMaxSalary(job models.Job) int {
	if job.SalaryMax != nil {
		return *job.SalaryMax
	}

	tokens := digitRun.FindAllString(strings.ReplaceAll(job.SalaryRange, ",", ""), -1)
	switch {
	case len(tokens) >= 2:
		return atoi(tokens[1])
	case len(tokens) == 1:
		return atoi(tokens[0])
	default:
		return 0
	}
}

// SalarySortKey is the salary sort value: the first one to four digits of
// the display string once every non-digit is stripped.
func SalarySortKey(job models.Job) int {
	digits := nonDigit.ReplaceAllString(job.SalaryRange, "")
	return atoi(sortDigit.FindString(digits))
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
