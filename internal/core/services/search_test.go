package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sercha-xapian/internal/core/domain"
)

func TestSearchService_SingleWord(t *testing.T) {
	env := newTestEnv(t)
	fox, _ := env.seed(t)

	results, err := env.searcher().Search(context.Background(), []string{"Foxes"}, domain.OpAnd, 0)
	require.NoError(t, err)

	assert.Equal(t, "Query((fox OR Sfox))", results.Query)
	require.Len(t, results.Hits, 1)
	hit := results.Hits[0]
	assert.Equal(t, fox, hit.Path)
	assert.Equal(t, fox, hit.Data)
	assert.Equal(t, 0, hit.Rank)
	assert.Equal(t, 100, hit.Percent)
}

func TestSearchService_Operators(t *testing.T) {
	env := newTestEnv(t)
	fox, dog := env.seed(t)

	tests := []struct {
		name  string
		words []string
		op    domain.QueryOp
		want  []string
	}{
		{"and matches both words", []string{"quick", "fox"}, domain.OpAnd, []string{fox}},
		{"and with no overlap", []string{"fox", "dog"}, domain.OpAnd, nil},
		{"or matches either", []string{"fox", "dog"}, domain.OpOr, []string{fox, dog}},
		{"and not excludes", []string{"the", "dog"}, domain.OpAndNot, []string{fox}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := env.searcher().Search(context.Background(), tt.words, tt.op, 10)
			require.NoError(t, err)

			var paths []string
			for _, hit := range results.Hits {
				paths = append(paths, hit.Path)
			}
			assert.ElementsMatch(t, tt.want, paths)
		})
	}
}

func TestSearchService_Description(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	results, err := env.searcher().Search(context.Background(), []string{"quick fox"}, domain.OpAnd, 10)
	require.NoError(t, err)
	assert.Equal(t, "Query(((quick OR Squick) AND (fox OR Sfox)))", results.Query)
}

func TestSearchService_MatchesTitle(t *testing.T) {
	env := newTestEnv(t)
	_, dog := env.seed(t)

	results, err := env.searcher().Search(context.Background(), []string{"lazy"}, domain.OpAnd, 10)
	require.NoError(t, err)
	require.Len(t, results.Hits, 1)
	assert.Equal(t, dog, results.Hits[0].Path)
}

func TestSearchService_Limit(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	results, err := env.searcher().Search(context.Background(), []string{"the"}, domain.OpOr, 1)
	require.NoError(t, err)
	assert.Len(t, results.Hits, 1)
}

func TestSearchService_InvalidInput(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	_, err := env.searcher().Search(context.Background(), nil, domain.OpAnd, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.searcher().Search(context.Background(), []string{"!!!"}, domain.OpAnd, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.searcher().Search(context.Background(), []string{"fox"}, domain.QueryOp(42), 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchService_MissingIndex(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.searcher().Search(context.Background(), []string{"fox"}, domain.OpAnd, 10)
	assert.ErrorIs(t, err, domain.ErrNativeFailure)
}

func TestSearchService_NoStemmer(t *testing.T) {
	env := newTestEnv(t)
	env.settings.Stemmer = domain.StemmerNone
	env.seed(t)

	results, err := env.searcher().Search(context.Background(), []string{"jumps"}, domain.OpAnd, 10)
	require.NoError(t, err)
	assert.Len(t, results.Hits, 1)

	results, err = env.searcher().Search(context.Background(), []string{"jump"}, domain.OpAnd, 10)
	require.NoError(t, err)
	assert.Empty(t, results.Hits)
}
