package handler

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/require"
)

func getCtx(target string) echo.Context {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, target, nil)
    return e.NewContext(req, httptest.NewRecorder())
}

func TestResolveRangeExplicitParams(t *testing.T) {
    h := NewSearchHandler(nil, nil)

    start, end, err := h.resolveRange(getCtx("/v1/cars/available?start=2024-03-01&end=2024-03-05"))
    require.NoError(t, err)
    require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
    require.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), end)
}

func TestResolveRangeRejectsMalformed(t *testing.T) {
    h := NewSearchHandler(nil, nil)

    _, _, err := h.resolveRange(getCtx("/v1/cars/available?start=bogus&end=2024-03-05"))
    require.Error(t, err)

    _, _, err = h.resolveRange(getCtx("/v1/cars/available?start=2024-03-01"))
    require.Error(t, err, "a lone start still requires a parseable end")
}

func TestResolveRangeDefaults(t *testing.T) {
    h := NewSearchHandler(nil, nil)

    start, end, err := h.resolveRange(getCtx("/v1/cars/available"))
    require.NoError(t, err)

    now := time.Now().UTC()
    today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
    require.Equal(t, today, start)
    require.Equal(t, today.AddDate(0, 0, 1), end)
}

func TestResolveRangeRemembersPerUser(t *testing.T) {
    mr := miniredis.RunT(t)
    rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    t.Cleanup(func() { _ = rdb.Close() })
    h := NewSearchHandler(nil, rdb)

    stored := getCtx("/v1/cars/available")
    stored.Set("user_id", float64(7))
    h.rememberRange(context.Background(), stored,
        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
        time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC))

    // Same user, no params: the remembered window comes back.
    c := getCtx("/v1/cars/available")
    c.Set("user_id", float64(7))
    start, end, err := h.resolveRange(c)
    require.NoError(t, err)
    require.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), start)
    require.Equal(t, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC), end)

    // Explicit params always win over the remembered window.
    c = getCtx("/v1/cars/available?start=2024-07-01&end=2024-07-02")
    c.Set("user_id", float64(7))
    start, end, err = h.resolveRange(c)
    require.NoError(t, err)
    require.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), start)
    require.Equal(t, time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC), end)

    // A different user never sees someone else's window.
    c = getCtx("/v1/cars/available")
    c.Set("user_id", float64(8))
    start, end, err = h.resolveRange(c)
    require.NoError(t, err)
    require.Equal(t, 24*time.Hour, end.Sub(start))
    require.NotEqual(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), start)
}
