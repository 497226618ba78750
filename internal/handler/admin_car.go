package handler

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/car-rental-reservation/internal/booking"
    "github.com/iliyamo/car-rental-reservation/internal/model"
    "github.com/iliyamo/car-rental-reservation/internal/repository"
)

// Daily rate bounds, in cents.
const (
    minRateCents = 1000
    maxRateCents = 1000000
)

// CarHandler serves the back-office fleet management endpoints.
type CarHandler struct {
    Cars         *repository.CarRepo
    Reservations *repository.ReservationRepo
}

func NewCarHandler(cars *repository.CarRepo, res *repository.ReservationRepo) *CarHandler {
    return &CarHandler{Cars: cars, Reservations: res}
}

type carReq struct {
    Brand             string `json:"brand"`
    Model             string `json:"model"`
    EngineType        string `json:"engine_type"`
    ImageURL          string `json:"image_url"`
    Year              int    `json:"year"`
    PassengerCapacity int    `json:"passenger_capacity"`
    Description       string `json:"description"`
    RentalPriceCents  uint32 `json:"rental_price_cents"`
}

// validateCar checks the fleet field constraints and, on success,
// fills the model with normalized values.
func validateCar(req carReq, out *model.Car) []string {
    problems := []string{}
    if n := len(strings.TrimSpace(req.Brand)); n < 3 || n > 50 {
        problems = append(problems, "brand must be between 3 and 50 characters")
    }
    if n := len(strings.TrimSpace(req.Model)); n < 1 || n > 50 {
        problems = append(problems, "model must be between 1 and 50 characters")
    }
    engine, err := booking.ParseEngineType(req.EngineType)
    if err != nil {
        problems = append(problems, "engine_type must be one of DIESEL, PETROL, ELECTRIC, HYBRID")
    }
    if req.Year < 1900 || req.Year > 2024 {
        problems = append(problems, "year must be between 1900 and 2024")
    }
    if req.PassengerCapacity < 1 || req.PassengerCapacity > 16 {
        problems = append(problems, "passenger_capacity must be between 1 and 16")
    }
    if req.RentalPriceCents < minRateCents || req.RentalPriceCents > maxRateCents {
        problems = append(problems, fmt.Sprintf("rental_price_cents must be between %d and %d", minRateCents, maxRateCents))
    }
    if len(problems) > 0 {
        return problems
    }
    out.Brand = strings.TrimSpace(req.Brand)
    out.Model = strings.TrimSpace(req.Model)
    out.EngineType = engine
    out.ImageURL = strings.TrimSpace(req.ImageURL)
    out.Year = req.Year
    out.PassengerCapacity = req.PassengerCapacity
    out.Description = strings.TrimSpace(req.Description)
    out.RentalPriceCents = req.RentalPriceCents
    return nil
}

// CreateCar adds a car to the fleet.
func (h *CarHandler) CreateCar(c echo.Context) error {
    var req carReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    var car model.Car
    if problems := validateCar(req, &car); len(problems) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "details": problems})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Cars.Create(ctx, &car); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create car failed"})
    }
    return c.JSON(http.StatusCreated, echo.Map{"car": toCarResp(car)})
}

// UpdateCar edits a car.  When the daily rate changes, every
// reservation of the car is repriced from its own date range in the
// same transaction; either the rate and all sums move together or
// nothing changes.
func (h *CarHandler) UpdateCar(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
    }
    var req carReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    var car model.Car
    if problems := validateCar(req, &car); len(problems) > 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "details": problems})
    }
    car.ID = id

    ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
    defer cancel()

    current, err := h.Cars.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrCarNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }
    rateChanged := current.RentalPriceCents != car.RentalPriceCents

    tx, err := h.Cars.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update car failed"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    if err := h.Cars.UpdateTx(ctx, tx, &car); err != nil {
        if errors.Is(err, repository.ErrCarNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update car failed"})
    }
    if rateChanged {
        if err := h.Reservations.RepriceForCarTx(ctx, tx, id, car.RentalPriceCents); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reprice reservations failed"})
        }
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update car failed"})
    }
    committed = true

    updated, err := h.Cars.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"car": toCarResp(*updated)})
}

// DeleteCar removes a car; its reservations cascade away.
func (h *CarHandler) DeleteCar(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if err := h.Cars.Delete(ctx, id); err != nil {
        if errors.Is(err, repository.ErrCarNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete car failed"})
    }
    return c.NoContent(http.StatusNoContent)
}
