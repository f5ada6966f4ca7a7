package search

import (
	"testing"
	"time"

	"kinoplex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieToDocDerivesPlayDates(t *testing.T) {
	day1 := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 18, 0, 0, 0, time.UTC)

	movie := &models.Movie{
		ID:    42,
		Title: "Interstellar",
		Showtimes: []models.Showtime{
			{StartsAt: day1},
			{StartsAt: day1.Add(6 * time.Hour)},
			{StartsAt: day2},
		},
	}

	doc := movieToDoc(movie)

	assert.Equal(t, int64(42), doc.ID)
	assert.Equal(t, []string{"2026-09-01", "2026-09-02"}, doc.PlayDates)
}

func TestMovieToDocNoShowtimes(t *testing.T) {
	doc := movieToDoc(&models.Movie{ID: 1, Title: "Solo"})

	assert.NotNil(t, doc.PlayDates)
	assert.Empty(t, doc.PlayDates)
}

func TestBuildSearchQueryMatchAll(t *testing.T) {
	c := &ElasticsearchClient{}

	query := c.buildSearchQuery(models.MovieFilter{})

	_, ok := query["match_all"]
	assert.True(t, ok)
}

func TestBuildSearchQueryFilters(t *testing.T) {
	c := &ElasticsearchClient{}

	query := c.buildSearchQuery(models.MovieFilter{
		Query:     "matrix",
		Genre:     "Action",
		MinRating: 7,
		Date:      "2026-09-01",
	})

	boolQuery, ok := query["bool"].(map[string]interface{})
	require.True(t, ok)

	must, ok := boolQuery["must"].([]map[string]interface{})
	require.True(t, ok)
	assert.Len(t, must, 4)
}

func TestBuildSortQuery(t *testing.T) {
	c := &ElasticsearchClient{}

	byScore := c.buildSortQuery("matrix")
	_, hasScore := byScore[0]["_score"]
	assert.True(t, hasScore)

	byRating := c.buildSortQuery("")
	_, hasRating := byRating[0]["rating"]
	assert.True(t, hasRating)
}
