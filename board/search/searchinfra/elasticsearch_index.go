package searchinfra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jobpulse/jobpulse/board/job"
	"github.com/jobpulse/jobpulse/board/search"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// ElasticsearchIndex implements search.Index on an Elasticsearch cluster
type ElasticsearchIndex struct {
	client    *elasticsearch.Client
	indexName string
}

// NewElasticsearchIndex creates a new Elasticsearch-backed index
func NewElasticsearchIndex(client *elasticsearch.Client, indexName string) *ElasticsearchIndex {
	return &ElasticsearchIndex{
		client:    client,
		indexName: indexName,
	}
}

// indexMapping defines the jobs index. Title carries a completion sub-field
// feeding the suggester.
const indexMapping = `{
	"mappings": {
		"properties": {
			"title":            {"type": "text", "fields": {"suggest": {"type": "completion"}}},
			"description":      {"type": "text"},
			"company":          {"type": "text"},
			"location":         {"type": "text"},
			"salary_min":       {"type": "integer"},
			"salary_max":       {"type": "integer"},
			"job_type":         {"type": "keyword"},
			"experience_level": {"type": "keyword"},
			"skills":           {"type": "keyword"},
			"posted_date":      {"type": "date"},
			"status":           {"type": "keyword"}
		}
	}
}`

// EnsureIndex creates the jobs index if it does not exist yet
func (e *ElasticsearchIndex) EnsureIndex(ctx context.Context) error {
	res, err := e.client.Indices.Exists(
		[]string{e.indexName},
		e.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		return nil
	}

	createRes, err := e.client.Indices.Create(
		e.indexName,
		e.client.Indices.Create.WithContext(ctx),
		e.client.Indices.Create.WithBody(bytes.NewReader([]byte(indexMapping))),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("index creation returned %s", createRes.Status())
	}

	return nil
}

// Upsert writes a document, fully replacing any previous version
func (e *ElasticsearchIndex) Upsert(ctx context.Context, id kernel.JobID, doc search.IndexDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	res, err := e.client.Index(
		e.indexName,
		bytes.NewReader(body),
		e.client.Index.WithDocumentID(id.String()),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("indexing returned %s", res.Status())
	}

	return nil
}

// Delete removes a document. An already-absent document is success.
func (e *ElasticsearchIndex) Delete(ctx context.Context, id kernel.JobID) error {
	res, err := e.client.Delete(
		e.indexName,
		id.String(),
		e.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("deletion returned %s", res.Status())
	}

	return nil
}

// buildSearchBody assembles the relevance query. Free text becomes a fuzzy
// multi_match weighted toward title; everything else is a filter clause, and
// only active documents ever match.
func buildSearchBody(query string, filters job.Filters, from, size int) map[string]any {
	must := []any{}
	if query != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^3", "description^2", "skills^2", "company"},
				"fuzziness": "AUTO",
			},
		})
	} else {
		must = append(must, map[string]any{"match_all": map[string]any{}})
	}

	filter := []any{
		map[string]any{"term": map[string]any{"status": "active"}},
	}

	if filters.Location != "" {
		filter = append(filter, map[string]any{
			"match": map[string]any{
				"location": map[string]any{
					"query":     filters.Location,
					"fuzziness": "AUTO",
				},
			},
		})
	}

	if filters.JobType != "" {
		filter = append(filter, map[string]any{
			"term": map[string]any{"job_type": string(filters.JobType)},
		})
	}

	if filters.ExperienceLevel != "" {
		filter = append(filter, map[string]any{
			"term": map[string]any{"experience_level": string(filters.ExperienceLevel)},
		})
	}

	if filters.SalaryMin != nil {
		filter = append(filter, map[string]any{
			"range": map[string]any{
				"salary_max": map[string]any{"gte": *filters.SalaryMin},
			},
		})
	}

	if len(filters.Skills) > 0 {
		filter = append(filter, map[string]any{
			"terms": map[string]any{"skills": filters.Skills},
		})
	}

	return map[string]any{
		"from": from,
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"must":   must,
				"filter": filter,
			},
		},
		"highlight": map[string]any{
			"fields": map[string]any{
				"title":       map[string]any{},
				"description": map[string]any{},
			},
		},
	}
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID        string              `json:"_id"`
			Highlight map[string][]string `json:"highlight"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs a relevance-ranked query restricted to active documents
func (e *ElasticsearchIndex) Search(ctx context.Context, query string, filters job.Filters, from, size int) (*search.Result, error) {
	body, err := json.Marshal(buildSearchBody(query, filters, from, size))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search body: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.indexName),
		e.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, search.ErrSearchUnavailable().WithCause(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, search.ErrSearchUnavailable().WithDetail("status", res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	result := &search.Result{
		RankedIDs:  make([]kernel.JobID, 0, len(parsed.Hits.Hits)),
		Total:      parsed.Hits.Total.Value,
		Highlights: make(map[kernel.JobID]search.Highlights, len(parsed.Hits.Hits)),
	}

	for _, hit := range parsed.Hits.Hits {
		id := kernel.JobID(hit.ID)
		result.RankedIDs = append(result.RankedIDs, id)
		if len(hit.Highlight) > 0 {
			result.Highlights[id] = search.Highlights(hit.Highlight)
		}
	}

	return result, nil
}

type suggestResponse struct {
	Suggest struct {
		JobSuggest []struct {
			Options []struct {
				Text string `json:"text"`
			} `json:"options"`
		} `json:"job_suggest"`
	} `json:"suggest"`
}

// Suggest returns up to size distinct title completions for a prefix
func (e *ElasticsearchIndex) Suggest(ctx context.Context, prefix string, size int) ([]string, error) {
	body, err := json.Marshal(map[string]any{
		"suggest": map[string]any{
			"job_suggest": map[string]any{
				"prefix": prefix,
				"completion": map[string]any{
					"field":           "title.suggest",
					"size":            size,
					"skip_duplicates": true,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggest body: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.indexName),
		e.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, search.ErrSearchUnavailable().WithCause(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, search.ErrSearchUnavailable().WithDetail("status", res.Status())
	}

	var parsed suggestResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode suggest response: %w", err)
	}

	suggestions := []string{}
	for _, s := range parsed.Suggest.JobSuggest {
		for _, opt := range s.Options {
			suggestions = append(suggestions, opt.Text)
		}
	}

	return suggestions, nil
}

// BulkUpsert writes many documents in one round-trip
func (e *ElasticsearchIndex) BulkUpsert(ctx context.Context, docs map[kernel.JobID]search.IndexDocument) error {
	if len(docs) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for id, doc := range docs {
		action, err := json.Marshal(map[string]any{
			"index": map[string]any{"_id": id.String()},
		})
		if err != nil {
			return fmt.Errorf("failed to marshal bulk action: %w", err)
		}
		source, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to marshal document %s: %w", id, err)
		}
		buf.Write(action)
		buf.WriteByte('\n')
		buf.Write(source)
		buf.WriteByte('\n')
	}

	res, err := e.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		e.client.Bulk.WithIndex(e.indexName),
		e.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("bulk indexing returned %s", res.Status())
	}

	return nil
}
