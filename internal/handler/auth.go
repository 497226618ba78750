package handler

import (
    "context"
    "database/sql"
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/car-rental-reservation/internal/config"
    "github.com/iliyamo/car-rental-reservation/internal/middleware"
    "github.com/iliyamo/car-rental-reservation/internal/model"
    "github.com/iliyamo/car-rental-reservation/internal/repository"
    "github.com/iliyamo/car-rental-reservation/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
    Cfg    config.Config
    Users  *repository.UserRepo
    Tokens *repository.TokenRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Users: u, Tokens: t}
}

// ----- DTOs -----

type registerReq struct {
    Username          string `json:"username"`
    FirstName         string `json:"first_name"`
    LastName          string `json:"last_name"`
    CitizenshipNumber string `json:"citizenship_number"`
    Phone             string `json:"phone"`
    Email             string `json:"email"`
    Password          string `json:"password"`
}

type loginReq struct {
    Username string `json:"username"`
    Email    string `json:"email"`
    Password string `json:"password"`
}

type refreshReq struct {
    RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}

type userPart struct {
    ID        uint64 `json:"id"`
    Username  string `json:"username"`
    FirstName string `json:"first_name"`
    LastName  string `json:"last_name"`
    Email     string `json:"email"`
    Role      string `json:"role"`
}

type authResp struct {
    User    userPart  `json:"user"`
    Access  tokenPart `json:"access"`
    Refresh tokenPart `json:"refresh"`
}

func toUserPart(u *model.User) userPart {
    return userPart{
        ID:        u.ID,
        Username:  u.Username,
        FirstName: u.FirstName,
        LastName:  u.LastName,
        Email:     u.Email,
        Role:      u.Role,
    }
}

// validateProfile enforces the account field constraints shared by
// public registration and the admin create screen: names 3–50
// characters, a 10-digit citizenship number, username and email
// present.  Returns a list of messages; empty means valid.
func validateProfile(r registerReq) []string {
    problems := []string{}
    if len(strings.TrimSpace(r.Username)) < 3 {
        problems = append(problems, "username must be at least 3 characters")
    }
    if n := len(strings.TrimSpace(r.FirstName)); n < 3 || n > 50 {
        problems = append(problems, "first_name must be between 3 and 50 characters")
    }
    if n := len(strings.TrimSpace(r.LastName)); n < 3 || n > 50 {
        problems = append(problems, "last_name must be between 3 and 50 characters")
    }
    if !citizenshipPattern.MatchString(r.CitizenshipNumber) {
        problems = append(problems, "citizenship_number must be a 10-digit number")
    }
    if !strings.Contains(r.Email, "@") {
        problems = append(problems, "email is invalid")
    }
    if len(r.Password) < 6 {
        problems = append(problems, "password must be at least 6 characters")
    }
    return problems
}

// Register creates a CUSTOMER account and returns a token pair.
func (h *AuthHandler) Register(c echo.Context) error {
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

    return h.issuePair(c, ctx, u, http.StatusCreated)
}

// Login verifies credentials and returns a new token pair.  The
// account may be identified by email or by username.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.Password == "" || (req.Email == "" && req.Username == "") {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "email or username and password required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    var (
        u   *model.User
        err error
    )
    if req.Email != "" {
        u, err = h.Users.GetByEmail(ctx, req.Email)
    } else {
        u, err = h.Users.GetByUsername(ctx, req.Username)
    }
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }
    if !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }

    return h.issuePair(c, ctx, u, http.StatusOK)
}

// issuePair signs an access token, mints + stores a refresh token
// and writes the auth response.
func (h *AuthHandler) issuePair(c echo.Context, ctx context.Context, u *model.User, status int) error {
    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
    }
    refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
    }
    if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
    }
    return c.JSON(status, authResp{
        User:    toUserPart(u),
        Access:  tokenPart{Token: access.Token, Expires: access.Exp},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw goes back to the client
    })
}

// Refresh validates a refresh token, revokes it and issues a fresh
// pair (rotation).
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    hash := utils.HashRefreshRaw(req.RefreshToken)
    userID, err := h.Tokens.ValidateRefresh(ctx, hash)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validate refresh failed"})
    }
    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
    }
    if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rotate refresh failed"})
    }
    return h.issuePair(c, ctx, u, http.StatusOK)
}

// RefreshAccess issues a new access token without rotating the
// refresh token.
func (h *AuthHandler) RefreshAccess(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    userID, err := h.Tokens.ValidateRefresh(ctx, utils.HashRefreshRaw(req.RefreshToken))
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "validate refresh failed"})
    }
    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
    }
    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "access": tokenPart{Token: access.Token, Expires: access.Exp},
    })
}

// Logout revokes the presented refresh token, ending the session.
func (h *AuthHandler) Logout(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Tokens.RevokeByHash(ctx, utils.HashRefreshRaw(req.RefreshToken)); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// LogoutAll revokes every active refresh token the authenticated
// user holds, ending all of their sessions at once.
func (h *AuthHandler) LogoutAll(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Tokens.RevokeAllForUser(ctx, userID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"user": toUserPart(u)})
}
