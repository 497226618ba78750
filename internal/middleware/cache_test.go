package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/car-rental-reservation/internal/config"
    "github.com/iliyamo/car-rental-reservation/internal/utils"
)

func cacheTestConfig() config.CacheConfig {
    return config.CacheConfig{
        Enabled:     true,
        Methods:     map[string]bool{"GET": true},
        TTL:         time.Minute,
        KeyStrategy: "route_query",
        Prefix:      "cache",
    }
}

// The public listing chain is JWTOptional -> cache -> handler, and
// the handler's output can depend on who is calling (remembered
// search ranges).  A credentialed response must never be cached nor
// served to anyone else.
func TestRedisCacheBypassesAuthenticatedRequests(t *testing.T) {
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })

    const secret = "test-secret"
    e := echo.New()
    e.GET("/cars/available", func(c echo.Context) error {
        if _, ok := c.Get("user_id").(float64); ok {
            return c.String(http.StatusOK, "personal")
        }
        return c.String(http.StatusOK, "default")
    }, JWTOptional(secret), NewRedisCache(cacheTestConfig(), rdb))

    at, err := utils.NewAccessToken(secret, 7, RoleCustomer, 5)
    require.NoError(t, err)

    // Authenticated call: personalized body, cache untouched.
    req := httptest.NewRequest(http.MethodGet, "/cars/available", nil)
    req.Header.Set("Authorization", "Bearer "+at.Token)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    require.Equal(t, "personal", rec.Body.String())
    require.Empty(t, rec.Header().Get("X-Cache"))

    // A following anonymous call must not see the personalized body.
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cars/available", nil))
    require.Equal(t, "default", rec.Body.String())
    require.Equal(t, "MISS", rec.Header().Get("X-Cache"))

    // Anonymous responses are still cached normally.
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cars/available", nil))
    require.Equal(t, "default", rec.Body.String())
    require.Equal(t, "HIT", rec.Header().Get("X-Cache"))

    // And a later authenticated call bypasses the cached entry too.
    req = httptest.NewRequest(http.MethodGet, "/cars/available", nil)
    req.Header.Set("Authorization", "Bearer "+at.Token)
    rec = httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    require.Equal(t, "personal", rec.Body.String())
    require.Empty(t, rec.Header().Get("X-Cache"))
}
