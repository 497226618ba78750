package handler

import (
    "context"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/car-rental-reservation/internal/config"
    "github.com/iliyamo/car-rental-reservation/internal/middleware"
    "github.com/iliyamo/car-rental-reservation/internal/model"
    "github.com/iliyamo/car-rental-reservation/internal/repository"
)

// UserHandler serves the back-office customer management endpoints.
type UserHandler struct {
    Cfg   config.Config
    Users *repository.UserRepo
}

func NewUserHandler(cfg config.Config, users *repository.UserRepo) *UserHandler {
    return &UserHandler{Cfg: cfg, Users: users}
}

type customerResp struct {
    ID                uint64 `json:"id"`
    Username          string `json:"username"`
    FirstName         string `json:"first_name"`
    LastName          string `json:"last_name"`
    CitizenshipNumber string `json:"citizenship_number"`
    Phone             string `json:"phone"`
    Email             string `json:"email"`
    IsActive          bool   `json:"is_active"`
}

func toCustomerResp(u model.User) customerResp {
    return customerResp{
        ID:                u.ID,
        Username:          u.Username,
        FirstName:         u.FirstName,
        LastName:          u.LastName,
        CitizenshipNumber: u.CitizenshipNumber,
        Phone:             u.Phone,
        Email:             u.Email,
        IsActive:          u.IsActive,
    }
}

// ListCustomers returns every customer account, ordered by username.
func (h *UserHandler) ListCustomers(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    users, err := h.Users.ListByRole(ctx, middleware.RoleCustomer)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
    }
    out := make([]customerResp, 0, len(users))
    for _, u := range users {
        out = append(out, toCustomerResp(u))
    }
    return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// CreateCustomer registers a customer account on behalf of an
// operator.  Same field rules as self-registration; no tokens are
// issued.
func (h *UserHandler) CreateCustomer(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if problems := validateProfile(req); len(problems) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "details": problems})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u := &model.User{
        Username:          strings.TrimSpace(req.Username),
        FirstName:         strings.TrimSpace(req.FirstName),
        LastName:          strings.TrimSpace(req.LastName),
        CitizenshipNumber: req.CitizenshipNumber,
        Phone:             strings.TrimSpace(req.Phone),
        Email:             req.Email,
        Role:              middleware.RoleCustomer,
    }
    if _, err := h.Users.Create(ctx, u, req.Password, h.Cfg.BcryptCost); err != nil {
        switch {
        case errors.Is(err, repository.ErrEmailExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
        case errors.Is(err, repository.ErrUsernameExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
        case errors.Is(err, repository.ErrCitizenshipExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "citizenship number already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }

    created, err := h.Users.GetByID(ctx, u.ID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"user": toCustomerResp(*created)})
}

type updateUserReq struct {
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
    Phone     string `json:"phone"`
    Email     string `json:"email"`
}

// UpdateCustomer edits the mutable profile fields of an account.
// Username, citizenship number and role stay fixed after creation.
func (h *UserHandler) UpdateCustomer(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }
    var req updateUserReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    problems := []string{}
    if n := len(strings.TrimSpace(req.FirstName)); n < 3 || n > 50 {
        problems = append(problems, "first_name must be between 3 and 50 characters")
    }
    if n := len(strings.TrimSpace(req.LastName)); n < 3 || n > 50 {
        problems = append(problems, "last_name must be between 3 and 50 characters")
    }
    if !strings.Contains(req.Email, "@") {
        problems = append(problems, "email is invalid")
    }
    if len(problems) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "details": problems})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u := &model.User{
        ID:        id,
        FirstName: strings.TrimSpace(req.FirstName),
        LastName:  strings.TrimSpace(req.LastName),
        Phone:     strings.TrimSpace(req.Phone),
        Email:     req.Email,
    }
    if err := h.Users.Update(ctx, u); err != nil {
        switch {
        case errors.Is(err, repository.ErrUserNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        case errors.Is(err, repository.ErrEmailExists):
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
    }

    updated, err := h.Users.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"user": toCustomerResp(*updated)})
}

// DeleteCustomer removes an account together with its reservations
// and refresh tokens.
func (h *UserHandler) DeleteCustomer(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Users.Delete(ctx, id); err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete user failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
