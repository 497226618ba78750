package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"
)

func callWithRole(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if role != nil {
        c.Set("role", role)
    }
    h := mw(func(c echo.Context) error {
        return c.NoContent(http.StatusOK)
    })
    require.NoError(t, h(c))
    return rec
}

func TestRequireRole(t *testing.T) {
    adminOnly := RequireRole(RoleAdmin)

    rec := callWithRole(t, adminOnly, RoleAdmin)
    require.Equal(t, http.StatusOK, rec.Code)

    rec = callWithRole(t, adminOnly, RoleCustomer)
    require.Equal(t, http.StatusForbidden, rec.Code)

    rec = callWithRole(t, adminOnly, nil)
    require.Equal(t, http.StatusForbidden, rec.Code)

    rec = callWithRole(t, adminOnly, 42)
    require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleMultiple(t *testing.T) {
    either := RequireRole(RoleCustomer, RoleAdmin)

    require.Equal(t, http.StatusOK, callWithRole(t, either, RoleCustomer).Code)
    require.Equal(t, http.StatusOK, callWithRole(t, either, RoleAdmin).Code)
    require.Equal(t, http.StatusForbidden, callWithRole(t, either, "MANAGER").Code)
}
