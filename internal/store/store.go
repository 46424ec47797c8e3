// Package store holds the record-store clients the engines read from and
// write through.
package store

import (
	"context"
	"errors"

	"dental-jobs/internal/models"
)

var (
	ErrReadFailed    = errors.New("record store read failed")
	ErrWriteFailed   = errors.New("record store write failed")
	ErrNotFound      = errors.New("record not found")
	ErrIndexNotFound = errors.New("search index not found")
)

// CandidateFetcher loads the applications of an organization. An empty
// jobID returns every job's applications.
type CandidateFetcher interface {
	FetchCandidates(ctx context.Context, orgID, jobID string) ([]models.Candidate, error)
}

// JobFetcher runs a remote job query. A zero Limit returns every match.
type JobFetcher interface {
	FetchJobs(ctx context.Context, q models.JobQuery) (*models.JobPage, error)
}

type CountFetcher interface {
	FetchApplicationCounts(ctx context.Context) (map[string]int, error)
}
