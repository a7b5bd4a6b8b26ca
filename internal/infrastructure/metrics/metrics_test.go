package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSuggest(t *testing.T) {
	before := testutil.ToFloat64(SuggestRequestsTotal.WithLabelValues("true"))
	RecordSuggest(true, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(SuggestRequestsTotal.WithLabelValues("true")))

	before = testutil.ToFloat64(SuggestRequestsTotal.WithLabelValues("false"))
	RecordSuggest(false, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(SuggestRequestsTotal.WithLabelValues("false")))
}

func TestRecordCache(t *testing.T) {
	hits := testutil.ToFloat64(CacheHitsTotal)
	misses := testutil.ToFloat64(CacheMissesTotal)

	RecordCacheHit()
	RecordCacheMiss()
	RecordCacheMiss()

	assert.Equal(t, hits+1, testutil.ToFloat64(CacheHitsTotal))
	assert.Equal(t, misses+2, testutil.ToFloat64(CacheMissesTotal))
}

func TestRecordCatalogReload(t *testing.T) {
	t.Run("success updates gauges", func(t *testing.T) {
		before := testutil.ToFloat64(CatalogReloadsTotal.WithLabelValues("success"))
		RecordCatalogReload(7, 14, 58, 5*time.Millisecond, nil)

		assert.Equal(t, before+1, testutil.ToFloat64(CatalogReloadsTotal.WithLabelValues("success")))
		assert.Equal(t, 7.0, testutil.ToFloat64(CatalogVersion))
		assert.Equal(t, 14.0, testutil.ToFloat64(CatalogRecipes))
		assert.Equal(t, 58.0, testutil.ToFloat64(CatalogIngredients))
	})

	t.Run("failure keeps gauges", func(t *testing.T) {
		before := testutil.ToFloat64(CatalogReloadsTotal.WithLabelValues("failure"))
		RecordCatalogReload(0, 0, 0, time.Millisecond, errors.New("boom"))

		assert.Equal(t, before+1, testutil.ToFloat64(CatalogReloadsTotal.WithLabelValues("failure")))
		assert.Equal(t, 7.0, testutil.ToFloat64(CatalogVersion))
	})
}

func TestRecordSubstitution(t *testing.T) {
	before := testutil.ToFloat64(SubstitutionsAppliedTotal.WithLabelValues("direct"))
	RecordSubstitution("direct")
	assert.Equal(t, before+1, testutil.ToFloat64(SubstitutionsAppliedTotal.WithLabelValues("direct")))
}

func TestRecordHTTPRequest(t *testing.T) {
	RecordHTTPRequest("GET", "", 404, time.Millisecond)
	RecordHTTPRequest("POST", "/api/v1/suggest", 200, time.Millisecond)

	assert.GreaterOrEqual(t, testutil.CollectAndCount(HTTPRequestDuration), 2)
}
