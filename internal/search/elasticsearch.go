package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"kinoplex/internal/config"
	"kinoplex/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchClient wraps the movie search index
type ElasticsearchClient struct {
	client *elasticsearch.Client
	config config.ElasticsearchConfig
}

// movieDoc is the indexed shape of a movie. play_dates is derived from the
// embedded showtimes at index time so the plays-on filter is a plain terms
// match instead of a nested query.
type movieDoc struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Genre       string     `json:"genre"`
	Language    string     `json:"language"`
	Rating      float32    `json:"rating"`
	ReleaseDate *time.Time `json:"release_date"`
	Overview    string     `json:"overview"`
	PosterURL   string     `json:"poster_url"`
	PlayDates   []string   `json:"play_dates"`
}

// NewElasticsearchClient creates a new Elasticsearch client and ensures the index exists
func NewElasticsearchClient(cfg config.ElasticsearchConfig) (*ElasticsearchClient, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:     []string{cfg.URL},
		Username:      cfg.Username,
		Password:      cfg.Password,
		RetryOnStatus: []int{502, 503, 504, 429},
		MaxRetries:    cfg.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	client := &ElasticsearchClient{
		client: es,
		config: cfg,
	}

	if err := client.ensureIndex(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return client, nil
}

// ensureIndex creates the movie index if it does not exist yet
func (c *ElasticsearchClient) ensureIndex(ctx context.Context) error {
	req := esapi.IndicesExistsRequest{
		Index: []string{c.config.Index},
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 200 {
		slog.Info("Elasticsearch index already exists", "index", c.config.Index)
		return nil
	}

	mapping := map[string]interface{}{
		"settings": map[string]interface{}{
			"number_of_shards":   1,
			"number_of_replicas": 0,
		},
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id": map[string]interface{}{
					"type": "long",
				},
				"title": map[string]interface{}{
					"type":     "text",
					"analyzer": "english",
				},
				"genre": map[string]interface{}{
					"type": "keyword",
				},
				"language": map[string]interface{}{
					"type": "keyword",
				},
				"rating": map[string]interface{}{
					"type": "float",
				},
				"release_date": map[string]interface{}{
					"type": "date",
				},
				"overview": map[string]interface{}{
					"type":     "text",
					"analyzer": "english",
				},
				"poster_url": map[string]interface{}{
					"type":  "keyword",
					"index": false,
				},
				"play_dates": map[string]interface{}{
					"type":   "date",
					"format": "yyyy-MM-dd",
				},
			},
		},
	}

	mappingJSON, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	createReq := esapi.IndicesCreateRequest{
		Index: c.config.Index,
		Body:  strings.NewReader(string(mappingJSON)),
	}

	createRes, err := createReq.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index: %s", createRes.String())
	}

	slog.Info("Created Elasticsearch index", "index", c.config.Index)
	return nil
}

// Search executes a filtered movie search and returns one page of results
func (c *ElasticsearchClient) Search(ctx context.Context, filter models.MovieFilter) ([]models.Movie, error) {
	searchQuery := c.buildSearchQuery(filter)

	from := 0
	if filter.Page > 0 && filter.PageSize > 0 {
		from = (filter.Page - 1) * filter.PageSize
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	searchRequest := map[string]interface{}{
		"query": searchQuery,
		"sort":  c.buildSortQuery(filter.Query),
		"from":  from,
		"size":  pageSize,
	}

	searchJSON, err := json.Marshal(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{c.config.Index},
		Body:  strings.NewReader(string(searchJSON)),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.String())
	}

	var response struct {
		Hits struct {
			Hits []struct {
				Source movieDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	movies := make([]models.Movie, len(response.Hits.Hits))
	for i, hit := range response.Hits.Hits {
		movies[i] = docToMovie(hit.Source)
	}

	return movies, nil
}

// Count returns the number of movies matching the filter
func (c *ElasticsearchClient) Count(ctx context.Context, filter models.MovieFilter) (int64, error) {
	countRequest := map[string]interface{}{
		"query": c.buildSearchQuery(filter),
	}

	countJSON, err := json.Marshal(countRequest)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal count query: %w", err)
	}

	req := esapi.CountRequest{
		Index: []string{c.config.Index},
		Body:  strings.NewReader(string(countJSON)),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return 0, fmt.Errorf("failed to execute count: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("count error: %s", res.String())
	}

	var response struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return 0, fmt.Errorf("failed to decode count response: %w", err)
	}

	return response.Count, nil
}

// buildSearchQuery assembles the bool query from the optional filter parameters
func (c *ElasticsearchClient) buildSearchQuery(filter models.MovieFilter) map[string]interface{} {
	mustQueries := []map[string]interface{}{}

	if filter.Query != "" {
		mustQueries = append(mustQueries, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  filter.Query,
				"fields": []string{"title^3", "overview"},
				"type":   "best_fields",
			},
		})
	}

	if filter.Genre != "" {
		mustQueries = append(mustQueries, map[string]interface{}{
			"term": map[string]interface{}{
				"genre": filter.Genre,
			},
		})
	}

	if filter.Language != "" {
		mustQueries = append(mustQueries, map[string]interface{}{
			"term": map[string]interface{}{
				"language": filter.Language,
			},
		})
	}

	if filter.MinRating > 0 {
		mustQueries = append(mustQueries, map[string]interface{}{
			"range": map[string]interface{}{
				"rating": map[string]interface{}{
					"gte": filter.MinRating,
				},
			},
		})
	}

	if filter.Date != "" {
		mustQueries = append(mustQueries, map[string]interface{}{
			"term": map[string]interface{}{
				"play_dates": filter.Date,
			},
		})
	}

	if len(mustQueries) == 0 {
		return map[string]interface{}{
			"match_all": map[string]interface{}{},
		}
	}

	return map[string]interface{}{
		"bool": map[string]interface{}{
			"must": mustQueries,
		},
	}
}

// buildSortQuery sorts by relevance when searching, by rating otherwise
func (c *ElasticsearchClient) buildSortQuery(query string) []map[string]interface{} {
	if query != "" {
		return []map[string]interface{}{
			{"_score": map[string]interface{}{"order": "desc"}},
			{"id": map[string]interface{}{"order": "asc"}},
		}
	}
	return []map[string]interface{}{
		{"rating": map[string]interface{}{"order": "desc"}},
		{"id": map[string]interface{}{"order": "asc"}},
	}
}

// IndexMovie writes or refreshes the search document of a movie
func (c *ElasticsearchClient) IndexMovie(ctx context.Context, movie *models.Movie) error {
	doc := movieToDoc(movie)

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal movie document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      c.config.Index,
		DocumentID: strconv.FormatInt(movie.ID, 10),
		Body:       strings.NewReader(string(docJSON)),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to index movie: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index error: %s", res.String())
	}

	return nil
}

// DeleteMovie removes a movie document from the index
func (c *ElasticsearchClient) DeleteMovie(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{
		Index:      c.config.Index,
		DocumentID: strconv.FormatInt(id, 10),
	}

	res, err := req.Do(ctx, c.client)
	if err != nil {
		return fmt.Errorf("failed to delete movie document: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("delete error: %s", res.String())
	}

	return nil
}

// HealthCheck pings the cluster
func (c *ElasticsearchClient) HealthCheck(ctx context.Context) error {
	res, err := c.client.Ping(c.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("Elasticsearch is unhealthy: %s", res.String())
	}
	return nil
}

func movieToDoc(movie *models.Movie) movieDoc {
	doc := movieDoc{
		ID:          movie.ID,
		Title:       movie.Title,
		Genre:       movie.Genre,
		Language:    movie.Language,
		Rating:      movie.Rating,
		ReleaseDate: movie.ReleaseDate,
		Overview:    movie.Overview,
		PosterURL:   movie.PosterURL,
		PlayDates:   []string{},
	}

	seen := map[string]bool{}
	for _, st := range movie.Showtimes {
		date := st.StartsAt.Format("2006-01-02")
		if !seen[date] {
			seen[date] = true
			doc.PlayDates = append(doc.PlayDates, date)
		}
	}

	return doc
}

func docToMovie(doc movieDoc) models.Movie {
	return models.Movie{
		ID:          doc.ID,
		Title:       doc.Title,
		Genre:       doc.Genre,
		Language:    doc.Language,
		Rating:      doc.Rating,
		ReleaseDate: doc.ReleaseDate,
		Overview:    doc.Overview,
		PosterURL:   doc.PosterURL,
	}
}
