package rankhotjobs

import (
	"fmt"
	"time"

	"dental-jobs/internal/common/config"
)

type Config struct {
	Enabled         bool
	MaxJobsActive   int
	Timeout         time.Duration
	PublishedStatus string
	DefaultLimit    int
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		MaxJobsActive:   5,
		Timeout:         10 * time.Second,
		PublishedStatus: "published",
		DefaultLimit:    3,
	}
}

func NewConfig(wc config.WorkerConfig, jc config.JobsConfig) *Config {
	c := DefaultConfig()
	c.Enabled = wc.Enabled
	if wc.MaxJobsActive > 0 {
		c.MaxJobsActive = wc.MaxJobsActive
	}
	if wc.Timeout > 0 {
		c.Timeout = config.GetDuration(wc.Timeout)
	}
	if jc.PublishedStatus != "" {
		c.PublishedStatus = jc.PublishedStatus
	}
	if jc.HotLimit > 0 {
		c.DefaultLimit = jc.HotLimit
	}
	return c
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("hot_limit must be positive")
	}
	return nil
}
