package main

import (
	"github.com/spf13/cobra"

	"dental-jobs/internal/models"
	findsimilarjobs "dental-jobs/internal/workers/jobs/find-similar-jobs"
	rankhotjobs "dental-jobs/internal/workers/jobs/rank-hot-jobs"
	searchjobs "dental-jobs/internal/workers/jobs/search-jobs"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Filter, sort and paginate published jobs",
	RunE:  runSearch,
}

var (
	searchFilters  models.JobFilterState
	searchSort     string
	searchPage     int
	searchPageSize int
)

var similarCmd = &cobra.Command{
	Use:   "similar",
	Short: "List jobs sharing a specialty tag with a job",
	RunE:  runSimilar,
}

var (
	similarJob   string
	similarLimit int
)

var hotCmd = &cobra.Command{
	Use:   "hot",
	Short: "Rank jobs by application count",
	RunE:  runHot,
}

var hotLimit int

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchFilters.Keyword, "keyword", "", "Match role, organization or specialty tag")
	f.StringVar(&searchFilters.Location, "location", "", "Match city or country")
	f.StringVar(&searchFilters.Specialty, "specialty", "", "Exact specialty tag")
	f.StringVar(&searchFilters.EmploymentType, "employment-type", "", "Full-time, Part-time, Locum or Contract")
	f.StringVar(&searchFilters.ShiftType, "shift-type", "", "shift type, matched exactly")
	f.StringVar(&searchFilters.ExperienceLevel, "experience", "", "Student, New Grad, Junior, Mid or Senior")
	f.BoolVar(&searchFilters.NewGrad, "new-grad", false, "Only jobs welcoming new graduates")
	f.BoolVar(&searchFilters.Training, "training", false, "Only jobs providing training")
	f.BoolVar(&searchFilters.Internship, "internship", false, "Only jobs offering internships")
	f.IntVar(&searchFilters.SalaryMin, "salary-min", 0, "Minimum acceptable maximum salary")
	f.StringVar(&searchSort, "sort", string(models.SortRelevance), "relevance, newest or salary")
	f.IntVar(&searchPage, "page", 1, "1-indexed page")
	f.IntVar(&searchPageSize, "page-size", 0, "Page size (default from config)")

	similarCmd.Flags().StringVar(&similarJob, "job", "", "Source job id (required)")
	similarCmd.Flags().IntVar(&similarLimit, "limit", -1, "Maximum results (default 3)")
	if err := similarCmd.MarkFlagRequired("job"); err != nil {
		panic(err)
	}

	hotCmd.Flags().IntVar(&hotLimit, "limit", -1, "Maximum results (default 3)")

	rootCmd.AddCommand(searchCmd, similarCmd, hotCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	h := searchjobs.NewHandler(searchjobs.DefaultConfig(), newStore(), newLogger())
	out, err := h.Execute(cmd.Context(), &searchjobs.Input{
		Filters:  searchFilters,
		SortBy:   models.SortOption(searchSort),
		Page:     searchPage,
		PageSize: searchPageSize,
		Mode:     searchjobs.ModeLocal,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func runSimilar(cmd *cobra.Command, _ []string) error {
	input := &findsimilarjobs.Input{JobID: similarJob}
	if similarLimit >= 0 {
		input.Limit = &similarLimit
	}
	out, err := findsimilarjobs.NewHandler(findsimilarjobs.DefaultConfig(), newStore(), newLogger()).
		Execute(cmd.Context(), input)
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func runHot(cmd *cobra.Command, _ []string) error {
	input := &rankhotjobs.Input{}
	if hotLimit >= 0 {
		input.Limit = &hotLimit
	}
	out, err := rankhotjobs.NewHandler(rankhotjobs.DefaultConfig(), newStore(), newLogger()).
		Execute(cmd.Context(), input)
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}
