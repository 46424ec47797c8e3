// internal/models/stage.go
package models

import (
	"fmt"
	"strings"
)

// JobStage is the pipeline status of an application.
type JobStage string

const (
	StageApplied     JobStage = "Applied"
	StageShortlisted JobStage = "Shortlisted"
	StageInterview   JobStage = "Interview"
	StageOffer       JobStage = "Offer"
	StageHired       JobStage = "Hired"
	StageRejected    JobStage = "Rejected"
)

// Stages lists every stage in board column order.
var Stages = []JobStage{
	StageApplied,
	StageShortlisted,
	StageInterview,
	StageOffer,
	StageHired,
	StageRejected,
}

func (s JobStage) IsValid() bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

func (s JobStage) String() string {
	return string(s)
}

// ParseStage accepts stage names case-insensitively.
func ParseStage(raw string) (JobStage, error) {
	trimmed := strings.TrimSpace(raw)
	for _, stage := range Stages {
		if strings.EqualFold(trimmed, string(stage)) {
			return stage, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", raw)
}
