package chromem

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"testing"

	chromemgo "github.com/philippgille/chromem-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"customer-support-agent/internal/knowledge"
	"customer-support-agent/internal/knowledge/repository"
	"customer-support-agent/pkg/log"
)

// bagOfWords hashes words into a small normalized vector.
func bagOfWords(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, 64)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,?!")
		h := fnv.New32a()
		h.Write([]byte(w))
		vec[h.Sum32()%64]++
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		vec[0] = 1
		return vec, nil
	}
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
	return vec, nil
}

func newTestRepo(t *testing.T) *implRepository {
	t.Helper()
	repo, err := New(chromemgo.NewDB(), "policies", bagOfWords, log.NewNop())
	require.NoError(t, err)
	return repo
}

func TestSearch_EmptyCollection(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.Search(context.Background(), repository.SearchOptions{Query: "returns", Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_Validation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Search(ctx, repository.SearchOptions{Limit: 3})
	assert.ErrorIs(t, err, repository.ErrEmptyQuery)

	_, err = repo.Search(ctx, repository.SearchOptions{Query: "x"})
	assert.ErrorIs(t, err, repository.ErrInvalidLimit)
}

func TestUpsertAndSearch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.Upsert(ctx, repository.UpsertOptions{Passages: []knowledge.Passage{
		{ID: "returns-0", Content: "Damaged items can be returned within 30 days of delivery.", Source: "returns.md"},
		{ID: "shipping-0", Content: "Standard shipping takes five business days.", Source: "shipping.md"},
	}})
	require.NoError(t, err)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Limit above the collection size is clamped.
	got, err := repo.Search(ctx, repository.SearchOptions{Query: "can damaged items be returned", Limit: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "returns-0", got[0].ID)
	assert.Equal(t, "returns.md", got[0].Source)
	assert.GreaterOrEqual(t, got[0].Score, got[1].Score)

	// Same ID replaces.
	err = repo.Upsert(ctx, repository.UpsertOptions{Passages: []knowledge.Passage{
		{ID: "returns-0", Content: "Damaged items can be returned within 60 days.", Source: "returns.md"},
	}})
	require.NoError(t, err)
	n, _ = repo.Count(ctx)
	assert.Equal(t, 2, n)
}

func TestEmbeddingFunc(t *testing.T) {
	for _, provider := range []string{"", EmbeddingOllama, EmbeddingOpenAI} {
		f, err := EmbeddingFunc(EmbeddingConfig{Provider: provider, Model: "m", BaseURL: "http://localhost:1/v1"})
		require.NoError(t, err, provider)
		assert.NotNil(t, f)
	}

	_, err := EmbeddingFunc(EmbeddingConfig{Provider: "word2vec"})
	assert.Error(t, err)
}
