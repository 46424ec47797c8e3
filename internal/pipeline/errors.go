package pipeline

import "errors"

var (
	ErrInvalidStage = errors.New("invalid pipeline stage")
	ErrRemoteWrite  = errors.New("remote write failed")
	ErrMissingActor = errors.New("acting user is required")
)
