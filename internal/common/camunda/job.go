package camunda

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"dental-jobs/internal/common/errors"
	"dental-jobs/internal/common/logger"
	"dental-jobs/internal/common/validation"
)

// DecodeVariables checks the job variables against schema and decodes them
// into out. Any failure is an INPUT_VALIDATION_FAILED error.
func DecodeVariables(job entities.Job, schema validation.JSONSchema, out interface{}) error {
	result, err := validation.ValidateVariables(job.Variables, schema)
	if err != nil {
		return errors.NewInputValidationError(err.Error())
	}
	if !result.Valid {
		return errors.NewInputValidationError(result.Error()).
			WithMetadata("validationErrors", result.GetErrorMessages())
	}

	vars := job.Variables
	if strings.TrimSpace(vars) == "" {
		vars = "{}"
	}
	if err := json.Unmarshal([]byte(vars), out); err != nil {
		return errors.NewInputValidationError(err.Error())
	}
	return nil
}

// CompleteJob completes the job with output as its variables. Send
// failures are logged; Zeebe will time the job out and redeliver it.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, log logger.Logger) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
	}
}
