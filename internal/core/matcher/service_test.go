package matcher

import (
	"context"
	"testing"
	"time"

	"recipe-suggester/internal/core/cache"
	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatcherConfig() config.MatcherConfig {
	return config.MatcherConfig{DefaultMaxResults: 2, MaxResultsLimit: 3, SubstituteLimit: 6}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	c := cache.NewManager(config.CacheConfig{Enabled: true, MaxSize: 100, TTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	return NewService(staticProvider{idx: buildIndex(t, testData())}, c, testMatcherConfig())
}

func boolPtr(b bool) *bool { return &b }

func TestService_Suggest(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	req := SuggestRequest{Ingredients: []string{"moong dal", "rice", "turmeric"}, MaxResults: 10}
	first, err := svc.Suggest(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, int64(1), first.CatalogVersion)
	assert.Len(t, first.Suggestions, 3, "max_results is clamped to the configured limit")

	// 相同食材集合（順序與大小寫不同）命中快取
	second, err := svc.Suggest(ctx, SuggestRequest{Ingredients: []string{"Turmeric", "rice", "moong dal", "rice"}, MaxResults: 10})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Suggestions, second.Suggestions)
}

func TestService_SuggestDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	res, err := svc.Suggest(ctx, SuggestRequest{Ingredients: []string{"margarine"}})
	require.NoError(t, err)
	assert.Len(t, res.Suggestions, 2)
	assert.NotEmpty(t, res.Suggestions[0].SubstitutionPlan)

	res, err = svc.Suggest(ctx, SuggestRequest{Ingredients: []string{"margarine"}, AllowSubstitution: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, res.Cached, "allow_substitution is part of the cache key")
	for _, sg := range res.Suggestions {
		assert.Empty(t, sg.SubstitutionPlan)
	}
}

func TestService_SuggestValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.Suggest(ctx, SuggestRequest{Ingredients: make([]string, MaxPantryItems+1)})
	assert.ErrorIs(t, err, ErrInvalidPantry)

	_, err = svc.Suggest(ctx, SuggestRequest{MaxResults: -1})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_Unavailable(t *testing.T) {
	ctx := context.Background()
	svc := NewService(staticProvider{}, nil, testMatcherConfig())

	_, err := svc.Suggest(ctx, SuggestRequest{Ingredients: []string{"rice"}})
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)

	_, err = svc.Substitutes(ctx, "ghee", 3)
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)

	_, err = svc.Ingredients("")
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)

	_, err = svc.CatalogInfo()
	assert.ErrorIs(t, err, catalog.ErrCatalogUnavailable)
}

func TestService_WithoutCache(t *testing.T) {
	ctx := context.Background()
	svc := NewService(staticProvider{idx: buildIndex(t, testData())}, nil, testMatcherConfig())

	req := SuggestRequest{Ingredients: []string{"rice"}}
	for i := 0; i < 2; i++ {
		res, err := svc.Suggest(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.Cached)
	}
}

func TestService_Substitutes(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	res, err := svc.Substitutes(ctx, "Ghee", 0)
	require.NoError(t, err)
	assert.Equal(t, "ghee", res.Ingredient)
	assert.Len(t, res.Candidates, 4)

	res, err = svc.Substitutes(ctx, "ghee", 1)
	require.NoError(t, err)
	assert.Equal(t, []Candidate{{Name: "butter", Score: 0.9, Reason: ReasonDirect}}, res.Candidates)

	res, err = svc.Substitutes(ctx, "saffron", 5)
	require.NoError(t, err)
	assert.NotNil(t, res.Candidates)
	assert.Empty(t, res.Candidates)

	_, err = svc.Substitutes(ctx, " ", 5)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Substitutes(ctx, "ghee", -1)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_Ingredients(t *testing.T) {
	svc := newTestService(t)

	all, err := svc.Ingredients("")
	require.NoError(t, err)
	assert.Len(t, all, 11)

	dairy, err := svc.Ingredients("Dairy")
	require.NoError(t, err)
	names := make([]string, len(dairy))
	for i, ing := range dairy {
		names[i] = ing.Name
	}
	assert.Equal(t, []string{"ghee", "butter", "margarine", "paneer"}, names)

	none, err := svc.Ingredients("seafood")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_CatalogInfo(t *testing.T) {
	svc := newTestService(t)

	info, err := svc.CatalogInfo()
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Version)
	assert.Equal(t, 4, info.Recipes)
	assert.Equal(t, 11, info.Ingredients)
	assert.Equal(t, 4, info.Substitutions)
	assert.False(t, info.LoadedAt.IsZero())
}

func TestSuggestCacheKey(t *testing.T) {
	a := suggestCacheKey(1, []string{"rice", "Moong Dal"}, 5, true)
	assert.Equal(t, a, suggestCacheKey(1, []string{"moong dal", " rice", "rice"}, 5, true))
	assert.NotEqual(t, a, suggestCacheKey(2, []string{"rice", "moong dal"}, 5, true))
	assert.NotEqual(t, a, suggestCacheKey(1, []string{"rice", "moong dal"}, 6, true))
	assert.NotEqual(t, a, suggestCacheKey(1, []string{"rice", "moong dal"}, 5, false))
	assert.NotEqual(t, a, suggestCacheKey(1, []string{"rice"}, 5, true))
}
