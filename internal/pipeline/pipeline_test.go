package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-jobs/internal/models"
)

func sampleCandidates() []models.Candidate {
	return []models.Candidate{
		{ID: "c1", Name: "Aisha Rahman", Status: models.StageApplied, JobID: "j1", JobTitle: "Dental Nurse", Skills: []string{"Ortho"}},
		{ID: "c2", Name: "Ben Tan", Status: models.StageInterview, JobID: "j1", JobTitle: "Dental Nurse"},
		{ID: "c3", Name: "Chloe Lim", Status: models.StageApplied, JobID: "j2", JobTitle: "Associate Dentist"},
		{ID: "c4", Name: "Dev Kumar", Status: models.StageHired, JobID: "j1", JobTitle: "Dental Nurse"},
		{ID: "c5", Name: "Eli Ng", Status: models.StageApplied, JobID: "j1", JobTitle: "Dental Nurse"},
	}
}

// ==========================
// MoveCandidate
// ==========================

func TestMoveCandidate(t *testing.T) {
	tests := []struct {
		name        string
		id          string
		to          models.JobStage
		wantChanged bool
		validate    func(t *testing.T, in, out []models.Candidate)
	}{
		{
			name:        "moves one candidate",
			id:          "c1",
			to:          models.StageInterview,
			wantChanged: true,
			validate: func(t *testing.T, in, out []models.Candidate) {
				assert.Equal(t, models.StageInterview, out[0].Status)
				assert.Equal(t, models.StageApplied, in[0].Status, "input must not be mutated")
				for i := 1; i < len(in); i++ {
					assert.Equal(t, in[i], out[i])
				}
			},
		},
		{
			name: "same status is a no-op",
			id:   "c2",
			to:   models.StageInterview,
			validate: func(t *testing.T, in, out []models.Candidate) {
				assert.Equal(t, in, out)
			},
		},
		{
			name: "absent id is a no-op",
			id:   "nope",
			to:   models.StageOffer,
			validate: func(t *testing.T, in, out []models.Candidate) {
				assert.Equal(t, in, out)
			},
		},
		{
			name: "invalid stage is a no-op",
			id:   "c1",
			to:   models.JobStage("Limbo"),
			validate: func(t *testing.T, in, out []models.Candidate) {
				assert.Equal(t, in, out)
			},
		},
		{
			name:        "backwards move from terminal stage is allowed",
			id:          "c4",
			to:          models.StageApplied,
			wantChanged: true,
			validate: func(t *testing.T, in, out []models.Candidate) {
				assert.Equal(t, models.StageApplied, out[3].Status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleCandidates()
			out, changed := MoveCandidate(in, tt.id, tt.to)
			assert.Equal(t, tt.wantChanged, changed)
			tt.validate(t, in, out)
		})
	}
}

func TestMoveCandidate_ScenarioA(t *testing.T) {
	in := []models.Candidate{{ID: "c1", Name: "Aisha", Status: models.StageApplied}}
	out, changed := MoveCandidate(in, "c1", models.StageInterview)

	require.True(t, changed)
	assert.Equal(t, []models.Candidate{{ID: "c1", Name: "Aisha", Status: models.StageInterview}}, out)
}

func TestMoveCandidate_DoesNotShareSkills(t *testing.T) {
	in := sampleCandidates()
	out, _ := MoveCandidate(in, "c1", models.StageOffer)
	out[0].Skills[0] = "changed"
	assert.Equal(t, "Ortho", in[0].Skills[0])
}

// ==========================
// ToggleFavorite
// ==========================

func TestToggleFavorite_IsItsOwnInverse(t *testing.T) {
	candidates := sampleCandidates()
	sets := []IDSet{
		NewIDSet(),
		NewIDSet("c1"),
		NewIDSet("c2", "c3"),
		NewIDSet("c1", "c2", "c3", "c4", "c5"),
	}

	for _, s := range sets {
		for _, c := range candidates {
			once, changed := ToggleFavorite(s, candidates, c.ID)
			require.True(t, changed)
			assert.NotEqual(t, s.Has(c.ID), once.Has(c.ID))

			twice, _ := ToggleFavorite(once, candidates, c.ID)
			assert.True(t, s.Equal(twice), "set %v id %s", s.Slice(), c.ID)
		}
	}
}

func TestToggleFavorite_UnknownIDIsNoop(t *testing.T) {
	s := NewIDSet("c1")
	out, changed := ToggleFavorite(s, sampleCandidates(), "ghost")
	assert.False(t, changed)
	assert.True(t, s.Equal(out))
}

func TestToggleFavorite_DoesNotMutateInput(t *testing.T) {
	s := NewIDSet("c1")
	_, _ = ToggleFavorite(s, sampleCandidates(), "c2")
	assert.Equal(t, []string{"c1"}, s.Slice())
}

// ==========================
// GroupByStage
// ==========================

func TestGroupByStage_SixStableBuckets(t *testing.T) {
	in := sampleCandidates()
	groups := GroupByStage(in)

	require.Len(t, groups, 6)
	for i, g := range groups {
		assert.Equal(t, models.Stages[i], g.Stage)
		assert.NotNil(t, g.Candidates)
		assert.Equal(t, len(g.Candidates), g.Count)
	}

	applied := groups[0].Candidates
	require.Len(t, applied, 3)
	assert.Equal(t, []string{"c1", "c3", "c5"}, []string{applied[0].ID, applied[1].ID, applied[2].ID})
	assert.Empty(t, groups[1].Candidates)
	assert.Empty(t, groups[3].Candidates)
	assert.Empty(t, groups[5].Candidates)

	seen := map[string]int{}
	total := 0
	for _, g := range groups {
		for _, c := range g.Candidates {
			seen[c.ID]++
			total++
		}
	}
	assert.Equal(t, len(in), total)
	for _, c := range in {
		assert.Equal(t, 1, seen[c.ID])
	}
}

func TestGroupByStage_Empty(t *testing.T) {
	groups := GroupByStage(nil)
	require.Len(t, groups, 6)
	for _, g := range groups {
		assert.Empty(t, g.Candidates)
	}
}

// ==========================
// FilterByJobAndFavorite
// ==========================

func TestFilterByJobAndFavorite(t *testing.T) {
	in := sampleCandidates()
	favs := NewIDSet("c2", "c3")

	tests := []struct {
		name          string
		jobID         string
		favoritesOnly bool
		want          []string
	}{
		{"job only", "j1", false, []string{"c1", "c2", "c4", "c5"}},
		{"job and favorites", "j1", true, []string{"c2"}},
		{"other job favorites", "j2", true, []string{"c3"}},
		{"no fallback for empty job", "", false, []string{}},
		{"unknown job", "j9", false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FilterByJobAndFavorite(in, tt.jobID, favs, tt.favoritesOnly)
			ids := []string{}
			for _, c := range out {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDistinctJobsAndFavorites(t *testing.T) {
	in := sampleCandidates()
	in[1].Favorite = true

	assert.Equal(t, []JobRef{{ID: "j1", Title: "Dental Nurse"}, {ID: "j2", Title: "Associate Dentist"}}, DistinctJobs(in))
	assert.Equal(t, []string{"c2"}, Favorites(in).Slice())
}

func TestUpdateNotes(t *testing.T) {
	in := sampleCandidates()
	out, changed := UpdateNotes(in, "c1", "Strong ortho background")
	require.True(t, changed)
	assert.Equal(t, "Strong ortho background", out[0].Notes)
	assert.Empty(t, in[0].Notes)

	_, changed = UpdateNotes(out, "c1", "Strong ortho background")
	assert.False(t, changed)
}

func TestWithFavoriteFlags(t *testing.T) {
	in := sampleCandidates()
	in[1].Favorite = true

	out := WithFavoriteFlags(in, NewIDSet("c1", "missing"))
	require.Len(t, out, len(in))
	assert.True(t, out[0].Favorite)
	assert.False(t, out[1].Favorite)
	assert.True(t, in[1].Favorite)
	assert.False(t, in[0].Favorite)
}
