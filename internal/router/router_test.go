package router

import (
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/car-rental-reservation/internal/config"
    "github.com/iliyamo/car-rental-reservation/internal/handler"
)

func TestRegisterMountsRoutes(t *testing.T) {
    e := echo.New()
    Register(e, Deps{
        Cfg:          config.Config{JWTSecret: "test"},
        Auth:         &handler.AuthHandler{},
        Search:       &handler.SearchHandler{},
        Cars:         &handler.CarHandler{},
        Reservations: &handler.ReservationHandler{},
        Users:        &handler.UserHandler{},
    })

    mounted := map[string]bool{}
    for _, r := range e.Routes() {
        mounted[r.Method+" "+r.Path] = true
    }

    for _, want := range []string{
        "GET /healthz",
        "GET /v1/cars",
        "GET /v1/cars/:id",
        "GET /v1/cars/available",
        "POST /v1/auth/register",
        "POST /v1/auth/login",
        "POST /v1/auth/refresh",
        "POST /v1/auth/refresh-access",
        "POST /v1/auth/logout",
        "POST /v1/auth/logout-all",
        "GET /v1/me",
        "POST /v1/cars/:id/reservations",
        "GET /v1/my-reservations",
        "POST /v1/admin/cars",
        "PUT /v1/admin/cars/:id",
        "DELETE /v1/admin/cars/:id",
        "GET /v1/admin/reservations",
        "GET /v1/admin/cars/:id/reservations",
        "GET /v1/admin/users/:id/reservations",
        "POST /v1/admin/cars/:id/reservations",
        "POST /v1/admin/reservations/:id/status",
        "GET /v1/admin/users",
        "POST /v1/admin/users",
        "PUT /v1/admin/users/:id",
        "DELETE /v1/admin/users/:id",
    } {
        require.True(t, mounted[want], "missing route %s", want)
    }
}
