package main

import (
	"github.com/spf13/cobra"

	"dental-jobs/internal/models"
	loadpipelineboard "dental-jobs/internal/workers/pipeline/load-pipeline-board"
	movecandidate "dental-jobs/internal/workers/pipeline/move-candidate"
	togglefavorite "dental-jobs/internal/workers/pipeline/toggle-favorite"
)

var (
	orgID       string
	candidateID string
	actorID     string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the hiring pipeline grouped by stage",
	RunE:  runBoard,
}

var (
	boardJob           string
	boardFavoritesOnly bool
)

var moveCmd = &cobra.Command{
	Use:   "move",
	Short: "Move a candidate to another stage",
	RunE:  runMove,
}

var moveStatus string

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Toggle a candidate's favorite flag",
	RunE:  runFavorite,
}

func init() {
	for _, c := range []*cobra.Command{boardCmd, moveCmd, favoriteCmd} {
		c.Flags().StringVar(&orgID, "org", "", "Employer organization id (required)")
		if err := c.MarkFlagRequired("org"); err != nil {
			panic(err)
		}
	}
	boardCmd.Flags().StringVar(&boardJob, "job", "", "Job id (defaults to the first job with applicants)")
	boardCmd.Flags().BoolVar(&boardFavoritesOnly, "favorites-only", false, "Only favorited candidates")

	for _, c := range []*cobra.Command{moveCmd, favoriteCmd} {
		c.Flags().StringVar(&candidateID, "id", "", "Candidate id (required)")
		c.Flags().StringVar(&actorID, "actor", "", "Acting employer user id (required)")
		for _, name := range []string{"id", "actor"} {
			if err := c.MarkFlagRequired(name); err != nil {
				panic(err)
			}
		}
	}
	moveCmd.Flags().StringVar(&moveStatus, "status", "", "Target stage (required)")
	if err := moveCmd.MarkFlagRequired("status"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(boardCmd, moveCmd, favoriteCmd)
}

func employer() models.Actor {
	return models.Actor{UserID: actorID, Role: models.RoleEmployer}
}

func runBoard(cmd *cobra.Command, _ []string) error {
	out, err := loadpipelineboard.NewHandler(loadpipelineboard.DefaultConfig(), newStore(), newLogger()).
		Execute(cmd.Context(), &loadpipelineboard.Input{
			OrgID:         orgID,
			JobID:         boardJob,
			FavoritesOnly: boardFavoritesOnly,
		})
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func runMove(cmd *cobra.Command, _ []string) error {
	out, err := movecandidate.NewHandler(movecandidate.DefaultConfig(), newStore(), nil, newLogger()).
		Execute(cmd.Context(), &movecandidate.Input{
			OrgID:       orgID,
			CandidateID: candidateID,
			NewStatus:   moveStatus,
			Actor:       employer(),
		})
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func runFavorite(cmd *cobra.Command, _ []string) error {
	out, err := togglefavorite.NewHandler(togglefavorite.DefaultConfig(), newStore(), nil, newLogger()).
		Execute(cmd.Context(), &togglefavorite.Input{
			OrgID:       orgID,
			CandidateID: candidateID,
			Actor:       employer(),
		})
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}
