// Package router wires the HTTP endpoints to their handlers and
// middleware chains.
package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/car-rental-reservation/internal/config"
    "github.com/iliyamo/car-rental-reservation/internal/handler"
    "github.com/iliyamo/car-rental-reservation/internal/middleware"
)

// Deps bundles everything the route table needs.
type Deps struct {
    Cfg          config.Config
    Auth         *handler.AuthHandler
    Search       *handler.SearchHandler
    Cars         *handler.CarHandler
    Reservations *handler.ReservationHandler
    Users        *handler.UserHandler
    Cache        echo.MiddlewareFunc // response cache for public listings; may be nil
}

// Register mounts all routes on the Echo instance.
//
// Public:   health, fleet listing, availability search.
// Auth:     register / login / token management.
// Customer: booking and own-reservation listing (any signed-in role).
// Admin:    fleet CRUD, reservation views + status, user management.
func Register(e *echo.Echo, d Deps) {
    e.GET("/healthz", handler.Health)

    v1 := e.Group("/v1")

    // Public listings.  JWTOptional lets the availability search
    // remember a signed-in caller's range without requiring a token.
    public := v1.Group("", middleware.JWTOptional(d.Cfg.JWTSecret))
    if d.Cache != nil {
        public.Use(d.Cache)
    }
    public.GET("/cars", d.Search.ListCars)
    public.GET("/cars/:id", d.Search.GetCar)
    public.GET("/cars/available", d.Search.AvailableCars)

    auth := v1.Group("/auth")
    auth.POST("/register", d.Auth.Register)
    auth.POST("/login", d.Auth.Login)
    auth.POST("/refresh", d.Auth.Refresh)
    auth.POST("/refresh-access", d.Auth.RefreshAccess)
    auth.POST("/logout", d.Auth.Logout)

    // Any authenticated user.
    authed := v1.Group("", middleware.JWTAuth(d.Cfg.JWTSecret))
    authed.GET("/me", d.Auth.Me)
    authed.POST("/auth/logout-all", d.Auth.LogoutAll)

    customer := authed.Group("", middleware.RequireRole(middleware.RoleCustomer, middleware.RoleAdmin))
    customer.POST("/cars/:id/reservations", d.Reservations.Create)
    customer.GET("/my-reservations", d.Reservations.MyReservations)

    admin := v1.Group("/admin", middleware.JWTAuth(d.Cfg.JWTSecret), middleware.RequireRole(middleware.RoleAdmin))
    admin.POST("/cars", d.Cars.CreateCar)
    admin.PUT("/cars/:id", d.Cars.UpdateCar)
    admin.DELETE("/cars/:id", d.Cars.DeleteCar)

    admin.GET("/reservations", d.Reservations.ListAllReservations)
    admin.GET("/cars/:id/reservations", d.Reservations.ListReservationsByCar)
    admin.GET("/users/:id/reservations", d.Reservations.ListReservationsByUser)
    admin.POST("/cars/:id/reservations", d.Reservations.AdminCreateReservation)
    admin.POST("/reservations/:id/status", d.Reservations.UpdateReservationStatus)

    admin.GET("/users", d.Users.ListCustomers)
    admin.POST("/users", d.Users.CreateCustomer)
    admin.PUT("/users/:id", d.Users.UpdateCustomer)
    admin.DELETE("/users/:id", d.Users.DeleteCustomer)
}
