package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JMDCLkr04/Cinema/internal/config"
)

func cacheCfg() config.CacheConfig {
	return config.CacheConfig{
		Enabled: true,
		Methods: map[string]bool{"GET": true},
		Prefix:  "cache",
	}
}

// Keys must derive from the resolved URL path so two reservations never
// share a cache entry even though they match the same route template.
func TestCacheKeyPerConcretePath(t *testing.T) {
	cfg := cacheCfg()
	k1 := cacheKey(cfg, "/reservas/r1/asientos", "")
	k2 := cacheKey(cfg, "/reservas/r2/asientos", "")
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, cacheKey(cfg, "/reservas/r1/asientos", ""))
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	cfg := cacheCfg()
	assert.NotEqual(t,
		cacheKey(cfg, "/reservas/r1/asientos", "page=2"),
		cacheKey(cfg, "/reservas/r1/asientos", ""))
}

// The invalidation middleware must compute the same key the cache
// middleware stores a queryless GET under, so the DEL actually lands.
func TestCacheInvalidationTargetsListingKey(t *testing.T) {
	cfg := cacheCfg()
	stored := cacheKey(cfg, "/reservas/r1/asientos", "")
	dropped := cacheKey(cfg, "/reservas/"+"r1"+"/asientos", "")
	assert.Equal(t, stored, dropped)
}

func TestCacheInvalidationNilClientPassthrough(t *testing.T) {
	mw := NewCacheInvalidation(cacheCfg(), nil, func(c echo.Context) string {
		return "/reservas/r1/asientos"
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/reservas/r1/asientos/s1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusCreated)
	})(c)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRedisCacheNilClientPassthrough(t *testing.T) {
	mw := NewRedisCache(cacheCfg(), nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/reservas/r1/asientos", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, []string{})
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
