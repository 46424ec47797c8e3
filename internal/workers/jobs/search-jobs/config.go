package searchjobs

import (
	"fmt"
	"time"

	"dental-jobs/internal/common/config"
)

type Config struct {
	Enabled         bool
	MaxJobsActive   int
	Timeout         time.Duration
	Index           string
	PublishedStatus string
	DefaultPageSize int
	MaxPageSize     int
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		MaxJobsActive:   10,
		Timeout:         15 * time.Second,
		Index:           "jobs",
		PublishedStatus: "published",
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}
}

// NewConfig merges the workers.search-jobs section with the jobs section.
func NewConfig(wc config.WorkerConfig, jc config.JobsConfig) *Config {
	c := DefaultConfig()
	c.Enabled = wc.Enabled
	if wc.MaxJobsActive > 0 {
		c.MaxJobsActive = wc.MaxJobsActive
	}
	if wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	if jc.Index != "" {
		c.Index = jc.Index
	}
	if jc.PublishedStatus != "" {
		c.PublishedStatus = jc.PublishedStatus
	}
	if jc.DefaultPageSize > 0 {
		c.DefaultPageSize = jc.DefaultPageSize
	}
	if jc.MaxPageSize > 0 {
		c.MaxPageSize = jc.MaxPageSize
	}
	return c
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.DefaultPageSize <= 0 || c.DefaultPageSize > c.MaxPageSize {
		return fmt.Errorf("default_page_size must be between 1 and %d", c.MaxPageSize)
	}
	return nil
}
