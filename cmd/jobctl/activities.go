package main

import (
	"time"

	"github.com/spf13/cobra"

	"dental-jobs/internal/common/errors"
	"dental-jobs/internal/common/validation"
	findsimilarjobs "dental-jobs/internal/workers/jobs/find-similar-jobs"
	rankhotjobs "dental-jobs/internal/workers/jobs/rank-hot-jobs"
	searchjobs "dental-jobs/internal/workers/jobs/search-jobs"
	loadpipelineboard "dental-jobs/internal/workers/pipeline/load-pipeline-board"
	movecandidate "dental-jobs/internal/workers/pipeline/move-candidate"
	togglefavorite "dental-jobs/internal/workers/pipeline/toggle-favorite"
	updatecandidatenotes "dental-jobs/internal/workers/pipeline/update-candidate-notes"
	togglejobpreference "dental-jobs/internal/workers/seeker/toggle-job-preference"
	"dental-jobs/pkg/registry"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Print or write the job worker activity registry",
	RunE:  runActivities,
}

var activitiesOut string

func init() {
	activitiesCmd.Flags().StringVarP(&activitiesOut, "out", "o", "", "Write the registry to this path instead of stdout")
	rootCmd.AddCommand(activitiesCmd)
}

func activity(taskType, name, category, desc string, schema validation.JSONSchema, timeout time.Duration, codes ...errors.ErrorCode) registry.Activity {
	a := registry.Activity{
		TaskType:    taskType,
		DisplayName: name,
		Description: desc,
		Category:    category,
		InputSchema: schema,
		Timeout:     timeout.String(),
		ErrorCodes:  []string{string(errors.ErrCodeInputValidationFailed)},
	}
	for _, c := range codes {
		a.ErrorCodes = append(a.ErrorCodes, string(c))
		if r := errors.GetRetryCount(c); r > a.Retries {
			a.Retries = r
		}
	}
	return a
}

// catalogue describes every worker the worker manager can start.
func catalogue() *registry.ActivityRegistry {
	return &registry.ActivityRegistry{
		Version:     "1.0.0",
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Activities: []registry.Activity{
			activity(movecandidate.TaskType, "Move Candidate", "pipeline",
				"Moves an application to another hiring stage, rolling back if the write fails.",
				movecandidate.GetInputSchema(), movecandidate.DefaultConfig().Timeout,
				errors.ErrCodeInvalidStage, errors.ErrCodeRemoteReadFailed),
			activity(togglefavorite.TaskType, "Toggle Favorite", "pipeline",
				"Stars or unstars a candidate for the employer.",
				togglefavorite.GetInputSchema(), togglefavorite.DefaultConfig().Timeout,
				errors.ErrCodeRemoteReadFailed),
			activity(updatecandidatenotes.TaskType, "Update Candidate Notes", "pipeline",
				"Saves the employer's private notes on an application.",
				updatecandidatenotes.GetInputSchema(), updatecandidatenotes.DefaultConfig().Timeout,
				errors.ErrCodeRemoteReadFailed),
			activity(loadpipelineboard.TaskType, "Load Pipeline Board", "pipeline",
				"Groups an organization's applicants for one job into the six stage columns.",
				loadpipelineboard.GetInputSchema(), loadpipelineboard.DefaultConfig().Timeout,
				errors.ErrCodeRemoteReadFailed),
			activity(searchjobs.TaskType, "Search Jobs", "jobs",
				"Filters, sorts and paginates published job listings.",
				searchjobs.GetInputSchema(), searchjobs.DefaultConfig().Timeout,
				errors.ErrCodeInvalidFilterFormat, errors.ErrCodeSearchQueryFailed, errors.ErrCodeIndexNotFound),
			activity(findsimilarjobs.TaskType, "Find Similar Jobs", "jobs",
				"Lists published jobs sharing a specialty tag with a given job.",
				findsimilarjobs.GetInputSchema(), findsimilarjobs.DefaultConfig().Timeout,
				errors.ErrCodeJobNotFound, errors.ErrCodeRemoteReadFailed),
			activity(rankhotjobs.TaskType, "Rank Hot Jobs", "jobs",
				"Ranks published jobs by number of applications received.",
				rankhotjobs.GetInputSchema(), rankhotjobs.DefaultConfig().Timeout,
				errors.ErrCodeRemoteReadFailed),
			activity(togglejobpreference.TaskType, "Toggle Job Preference", "seeker",
				"Saves, unsaves, hides or unhides a job for a seeker.",
				togglejobpreference.GetInputSchema(), togglejobpreference.DefaultConfig().Timeout),
		},
	}
}

func runActivities(cmd *cobra.Command, _ []string) error {
	reg := catalogue()
	if activitiesOut != "" {
		return reg.Save(activitiesOut)
	}
	return printJSON(cmd, reg)
}
