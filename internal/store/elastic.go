package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"dental-jobs/internal/models"
)

// maxResultWindow is the default index.max_result_window; an unpaginated
// query asks for this many hits.
const maxResultWindow = 10000

// ElasticJobStore serves remote job search from the jobs index.
type ElasticJobStore struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticJobStore(client *elasticsearch.Client, index string) *ElasticJobStore {
	return &ElasticJobStore{client: client, index: index}
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string     `json:"_id"`
			Source models.Job `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (s *ElasticJobStore) FetchJobs(ctx context.Context, q models.JobQuery) (*models.JobPage, error) {
	body, err := json.Marshal(buildJobQuery(q))
	if err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", ErrReadFailed, err)
	}

	from := q.Offset()
	size := q.Limit
	if size <= 0 {
		from, size = 0, maxResultWindow
	}

	req := esapi.SearchRequest{
		Index:          []string{s.index},
		Body:           bytes.NewReader(body),
		From:           &from,
		Size:           &size,
		TrackTotalHits: true,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", ErrReadFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, s.index)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: search: %s", ErrReadFailed, res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", ErrReadFailed, err)
	}

	page := &models.JobPage{Data: make([]models.Job, 0, len(parsed.Hits.Hits)), Count: parsed.Hits.Total.Value}
	for _, hit := range parsed.Hits.Hits {
		job := hit.Source
		if job.ID == "" {
			job.ID = hit.ID
		}
		if job.SpecialtyTags == nil {
			job.SpecialtyTags = []string{}
		}
		page.Data = append(page.Data, job)
	}
	return page, nil
}

func buildJobQuery(q models.JobQuery) map[string]interface{} {
	must := []interface{}{}
	filter := []interface{}{}

	if q.Status != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"status": q.Status},
		})
	}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		must = append(must, containsAny(kw, "role.keyword", "organizationName.keyword", "specialtyTags.keyword"))
	}
	if loc := strings.TrimSpace(q.Location); loc != "" {
		must = append(must, containsAny(loc, "city.keyword", "country.keyword"))
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must":   must,
				"filter": filter,
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"postedAt": map[string]interface{}{"order": "desc"}},
		},
	}
}

// containsAny matches documents where any of fields contains term, ignoring
// case.
func containsAny(term string, fields ...string) map[string]interface{} {
	pattern := "*" + wildcardEscaper.Replace(term) + "*"
	should := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		should = append(should, map[string]interface{}{
			"wildcard": map[string]interface{}{
				f: map[string]interface{}{"value": pattern, "case_insensitive": true},
			},
		})
	}
	return map[string]interface{}{
		"bool": map[string]interface{}{"should": should, "minimum_should_match": 1},
	}
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)
