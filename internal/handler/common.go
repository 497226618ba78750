// Package handler implements the HTTP endpoints.  Handlers bind and
// validate request payloads, orchestrate repository calls (opening a
// transaction when several writes must land together) and map typed
// repository/domain errors onto HTTP status codes.  They never log;
// failures surface as JSON bodies.
package handler

import (
    "errors"
    "regexp"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/car-rental-reservation/internal/model"
)

// dateLayout is the wire format for reservation dates.  Day
// granularity only; no time-of-day is accepted or returned.
const dateLayout = "2006-01-02"

var errNoUser = errors.New("no authenticated user in context")

// getUserID extracts the authenticated user's id stored by the
// JWTAuth middleware.  The jwt library decodes numeric claims as
// float64, so both representations are handled.
func getUserID(c echo.Context) (uint64, error) {
    switch v := c.Get("user_id").(type) {
    case float64:
        if v > 0 {
            return uint64(v), nil
        }
    case string:
        if id, err := strconv.ParseUint(v, 10, 64); err == nil && id > 0 {
            return id, nil
        }
    case uint64:
        if v > 0 {
            return v, nil
        }
    }
    return 0, errNoUser
}

// parseIDParam parses a positive integer path parameter.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    return id, err == nil && id > 0
}

// parseDate parses a YYYY-MM-DD value in UTC.
func parseDate(s string) (time.Time, error) {
    return time.Parse(dateLayout, s)
}

var citizenshipPattern = regexp.MustCompile(`^\d{10}$`)

// ---- JSON projections ----
// Money is stored as cents; responses also expose the two-decimal
// amount the way the storefront displays it.

type carResp struct {
    ID                uint64  `json:"id"`
    Brand             string  `json:"brand"`
    Model             string  `json:"model"`
    EngineType        string  `json:"engine_type"`
    ImageURL          string  `json:"image_url"`
    Year              int     `json:"year"`
    PassengerCapacity int     `json:"passenger_capacity"`
    Description       string  `json:"description"`
    PriceCents        uint32  `json:"rental_price_cents"`
    Price             float64 `json:"rental_price_per_day"`
}

func toCarResp(c model.Car) carResp {
    return carResp{
        ID:                c.ID,
        Brand:             c.Brand,
        Model:             c.Model,
        EngineType:        c.EngineType,
        ImageURL:          c.ImageURL,
        Year:              c.Year,
        PassengerCapacity: c.PassengerCapacity,
        Description:       c.Description,
        PriceCents:        c.RentalPriceCents,
        Price:             float64(c.RentalPriceCents) / 100.0,
    }
}

func toCarResps(cars []model.Car) []carResp {
    out := make([]carResp, 0, len(cars))
    for _, c := range cars {
        out = append(out, toCarResp(c))
    }
    return out
}

type reservationCarPart struct {
    ID    uint64 `json:"id"`
    Brand string `json:"brand,omitempty"`
    Model string `json:"model,omitempty"`
}

type reservationUserPart struct {
    ID       uint64 `json:"id"`
    Username string `json:"username,omitempty"`
}

type reservationResp struct {
    ID             uint64              `json:"id"`
    StartDate      string              `json:"start_date"`
    EndDate        string              `json:"end_date"`
    RentalSumCents uint64              `json:"rental_sum_cents"`
    RentalSum      float64             `json:"rental_sum"`
    Status         string              `json:"status"`
    Car            reservationCarPart  `json:"car"`
    User           reservationUserPart `json:"user"`
}

func toReservationResp(r model.Reservation) reservationResp {
    resp := reservationResp{
        ID:             r.ID,
        StartDate:      r.StartDate.Format(dateLayout),
        EndDate:        r.EndDate.Format(dateLayout),
        RentalSumCents: r.RentalSumCents,
        RentalSum:      float64(r.RentalSumCents) / 100.0,
        Status:         r.Status,
        Car:            reservationCarPart{ID: r.CarID},
        User:           reservationUserPart{ID: r.UserID},
    }
    if r.Car != nil {
        resp.Car.Brand = r.Car.Brand
        resp.Car.Model = r.Car.Model
    }
    if r.User != nil {
        resp.User.Username = r.User.Username
    }
    return resp
}

func toReservationResps(rs []model.Reservation) []reservationResp {
    out := make([]reservationResp, 0, len(rs))
    for _, r := range rs {
        out = append(out, toReservationResp(r))
    }
    return out
}
