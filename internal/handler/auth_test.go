package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"
)

func postCtx(target, body string) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestLoginRequiresIdentifierAndPassword(t *testing.T) {
    h := &AuthHandler{}

    tests := []struct {
        name string
        body string
    }{
        {"no identifier", `{"password":"secret"}`},
        {"no password", `{"email":"a@b.c"}`},
        {"empty body", `{}`},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := postCtx("/v1/auth/login", tc.body)
            require.NoError(t, h.Login(c))
            require.Equal(t, http.StatusBadRequest, rec.Code)
        })
    }
}

func TestLogoutAllRequiresAuthenticatedUser(t *testing.T) {
    h := &AuthHandler{}

    c, rec := postCtx("/v1/auth/logout-all", "")
    require.NoError(t, h.LogoutAll(c))
    require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidateProfile(t *testing.T) {
    valid := registerReq{
        Username:          "jdoe",
        FirstName:         "John",
        LastName:          "Doe",
        CitizenshipNumber: "1234567890",
        Phone:             "5551234",
        Email:             "jdoe@example.com",
        Password:          "s3cret",
    }
    require.Empty(t, validateProfile(valid))

    short := valid
    short.FirstName = "Jo"
    require.NotEmpty(t, validateProfile(short))

    badCitizenship := valid
    badCitizenship.CitizenshipNumber = "12345"
    require.NotEmpty(t, validateProfile(badCitizenship))

    badEmail := valid
    badEmail.Email = "not-an-email"
    require.NotEmpty(t, validateProfile(badEmail))
}
