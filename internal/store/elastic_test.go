package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dental-jobs/internal/models"
)

func newTestES(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticJobStore_FetchJobs(t *testing.T) {
	var gotBody map[string]interface{}
	var gotQuery map[string]string

	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/jobs/_search", r.URL.Path)
		gotQuery = map[string]string{
			"from": r.URL.Query().Get("from"),
			"size": r.URL.Query().Get("size"),
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		_, _ = w.Write([]byte(`{
			"hits": {
				"total": {"value": 7, "relation": "eq"},
				"hits": [
					{"_id": "j1", "_source": {"role": "Dental Nurse", "specialtyTags": ["Ortho"], "salaryRange": "MYR 3,000"}},
					{"_id": "ignored", "_source": {"id": "j2", "role": "Hygienist"}}
				]
			}
		}`))
	})

	s := NewElasticJobStore(client, "jobs")
	page, err := s.FetchJobs(context.Background(), models.JobQuery{
		Status: "published", Keyword: "nurse", Location: "kuala", Page: 2, Limit: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 7, page.Count)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "j1", page.Data[0].ID)
	assert.Equal(t, []string{"Ortho"}, page.Data[0].SpecialtyTags)
	assert.Equal(t, "j2", page.Data[1].ID)
	assert.Equal(t, []string{}, page.Data[1].SpecialtyTags)

	assert.Equal(t, "5", gotQuery["from"])
	assert.Equal(t, "5", gotQuery["size"])

	boolQuery := gotBody["query"].(map[string]interface{})["bool"].(map[string]interface{})
	assert.Len(t, boolQuery["must"], 2)
	assert.Len(t, boolQuery["filter"], 1)
}

func TestElasticJobStore_UnpaginatedUsesResultWindow(t *testing.T) {
	var size string
	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		size = r.URL.Query().Get("size")
		_, _ = w.Write([]byte(`{"hits":{"total":{"value":0},"hits":[]}}`))
	})

	page, err := NewElasticJobStore(client, "jobs").FetchJobs(context.Background(), models.JobQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, "10000", size)
}

func TestElasticJobStore_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"missing index", http.StatusNotFound, ErrIndexNotFound},
		{"server error", http.StatusBadRequest, ErrReadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"type":"x"}}`))
			})

			_, err := NewElasticJobStore(client, "jobs").FetchJobs(context.Background(), models.JobQuery{Limit: 10, Page: 1})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildJobQuery_NoConstraints(t *testing.T) {
	q := buildJobQuery(models.JobQuery{Keyword: "  "})
	b := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	assert.Empty(t, b["must"])
	assert.Empty(t, b["filter"])
}

func TestBuildJobQuery_SubstringClauses(t *testing.T) {
	q := buildJobQuery(models.JobQuery{Keyword: " dontic ", Location: "a*b?"})
	must := q["query"].(map[string]interface{})["bool"].(map[string]interface{})["must"].([]interface{})
	require.Len(t, must, 2)

	kw := must[0].(map[string]interface{})["bool"].(map[string]interface{})
	assert.Equal(t, 1, kw["minimum_should_match"])
	should := kw["should"].([]interface{})
	require.Len(t, should, 3)
	role := should[0].(map[string]interface{})["wildcard"].(map[string]interface{})["role.keyword"].(map[string]interface{})
	assert.Equal(t, "*dontic*", role["value"])
	assert.Equal(t, true, role["case_insensitive"])

	loc := must[1].(map[string]interface{})["bool"].(map[string]interface{})["should"].([]interface{})
	city := loc[0].(map[string]interface{})["wildcard"].(map[string]interface{})["city.keyword"].(map[string]interface{})
	assert.Equal(t, `*a\*b\?*`, city["value"])
}
