package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/car-rental-reservation/internal/booking"
    "github.com/iliyamo/car-rental-reservation/internal/model"
    "github.com/iliyamo/car-rental-reservation/internal/queue"
    "github.com/iliyamo/car-rental-reservation/internal/repository"
)

// ListAllReservations returns every reservation in the back-office
// listing order.
func (h *ReservationHandler) ListAllReservations(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    list, err := h.Reservations.ListAll(ctx)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
    }
    booking.SortAll(list)
    return c.JSON(http.StatusOK, echo.Map{"reservations": toReservationResps(list)})
}

// ListReservationsByCar returns the reservations of one car.
func (h *ReservationHandler) ListReservationsByCar(c echo.Context) error {
    carID, ok := parseIDParam(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Cars.GetByID(ctx, carID); err != nil {
        if errors.Is(err, repository.ErrCarNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }

    list, err := h.Reservations.ListByCar(ctx, carID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
    }
    booking.SortForCar(list)
    return c.JSON(http.StatusOK, echo.Map{"reservations": toReservationResps(list)})
}

// ListReservationsByUser returns the reservations made by one user.
func (h *ReservationHandler) ListReservationsByUser(c echo.Context) error {
    userID, ok := parseIDParam(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    if _, err := h.Users.GetByID(ctx, userID); err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }

    list, err := h.Reservations.ListByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
    }
    booking.SortForUser(list)
    return c.JSON(http.StatusOK, echo.Map{"reservations": toReservationResps(list)})
}

type statusReq struct {
    Status string `json:"status"`
}

// UpdateReservationStatus sets a reservation's status.  The value is
// parsed case-insensitively against the enumeration; anything else
// is a 400.  Any transition between valid statuses is accepted.
func (h *ReservationHandler) UpdateReservationStatus(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req statusReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    status, err := booking.ParseStatus(req.Status)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    res, err := h.Reservations.UpdateStatus(ctx, id, status)
    if err != nil {
        if errors.Is(err, repository.ErrReservationNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
    }

    var car *model.Car
    if loaded, err := h.Cars.GetByID(ctx, res.CarID); err == nil {
        car = loaded
    }
    h.publishEvent(queue.EventReservationStatusChanged, res, car)

    return c.JSON(http.StatusOK, echo.Map{"reservation": toReservationResp(*res)})
}

type adminCreateReservationReq struct {
    UserID    uint64 `json:"user_id"`
    StartDate string `json:"start_date"`
    EndDate   string `json:"end_date"`
}

// AdminCreateReservation books a car on behalf of a customer.  The
// back-office path never checks availability; an operator can
// double-book deliberately and resolve it via statuses.
func (h *ReservationHandler) AdminCreateReservation(c echo.Context) error {
    carID, ok := parseIDParam(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
    }
    var req adminCreateReservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.UserID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id required"})
    }
    start, err := parseDate(req.StartDate)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
    }
    end, err := parseDate(req.EndDate)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
    }
    if end.Before(start) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must not precede start_date"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    car, err := h.Cars.GetByID(ctx, carID)
    if err != nil {
        if errors.Is(err, repository.ErrCarNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }
    if _, err := h.Users.GetByID(ctx, req.UserID); err != nil {
        if errors.Is(err, repository.ErrUserNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }

    res := &model.Reservation{
        CarID:          car.ID,
        UserID:         req.UserID,
        StartDate:      start,
        EndDate:        end,
        RentalSumCents: booking.RentalSumCents(car.RentalPriceCents, start, end),
        Status:         string(booking.StatusWaiting),
    }
    if err := h.insertReservation(ctx, res); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
    }

    h.publishEvent(queue.EventReservationCreated, res, car)

    return c.JSON(http.StatusCreated, echo.Map{"reservation": toReservationResp(*res)})
}
