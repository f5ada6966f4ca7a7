package repository

import (
	"testing"

	"kinoplex/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildMovieWhereEmpty(t *testing.T) {
	where, args, argIndex := buildMovieWhere(models.MovieFilter{})

	assert.Equal(t, "", where)
	assert.Empty(t, args)
	assert.Equal(t, 1, argIndex)
}

func TestBuildMovieWhereSingleFilter(t *testing.T) {
	where, args, argIndex := buildMovieWhere(models.MovieFilter{Genre: "Drama"})

	assert.Equal(t, " WHERE genre = $1", where)
	assert.Equal(t, []interface{}{"Drama"}, args)
	assert.Equal(t, 2, argIndex)
}

func TestBuildMovieWhereAllFilters(t *testing.T) {
	filter := models.MovieFilter{
		Query:     "space",
		Genre:     "Science Fiction",
		Language:  "en",
		MinRating: 7.5,
		Date:      "2026-09-01",
	}

	where, args, argIndex := buildMovieWhere(filter)

	assert.Contains(t, where, "search_vector @@ to_tsquery('english', $1)")
	assert.Contains(t, where, "genre = $2")
	assert.Contains(t, where, "language = $3")
	assert.Contains(t, where, "rating >= $4")
	assert.Contains(t, where, "DATE(s.starts_at) = $5")
	assert.Len(t, args, 5)
	assert.Equal(t, "space:*", args[0])
	assert.Equal(t, "2026-09-01", args[4])
	assert.Equal(t, 6, argIndex)
}

func TestBuildMovieWhereSkipsZeroRating(t *testing.T) {
	where, args, _ := buildMovieWhere(models.MovieFilter{MinRating: 0})

	assert.Equal(t, "", where)
	assert.Empty(t, args)
}

func TestPrepareSearchQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{"single word", "matrix", "matrix:*"},
		{"multiple words", "dark knight", "dark:* & knight:*"},
		{"surrounding spaces", "  inception  ", "inception:*"},
		{"empty", "", ""},
		{"spaces only", "   ", ""},
		{"operators passed through", "dark & knight", "dark & knight"},
		{"prefix query passed through", "mat:*", "mat:*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, prepareSearchQuery(tt.query))
		})
	}
}

func TestContainsSearchOperators(t *testing.T) {
	assert.True(t, containsSearchOperators("a & b"))
	assert.True(t, containsSearchOperators("a | b"))
	assert.True(t, containsSearchOperators("!a"))
	assert.True(t, containsSearchOperators("(a)"))
	assert.True(t, containsSearchOperators("a:*"))
	assert.False(t, containsSearchOperators("dark knight"))
}
