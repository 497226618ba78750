package handler

import (
    "context"
    "errors"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/car-rental-reservation/internal/booking"
    "github.com/iliyamo/car-rental-reservation/internal/config"
    "github.com/iliyamo/car-rental-reservation/internal/model"
    "github.com/iliyamo/car-rental-reservation/internal/queue"
    "github.com/iliyamo/car-rental-reservation/internal/repository"
    queuepub "github.com/iliyamo/car-rental-reservation/internal/service"
)

// ReservationHandler serves the customer booking endpoints and the
// admin reservation views.  Creation and status changes emit domain
// events to the broker; broker failures never fail the request.
type ReservationHandler struct {
    Cfg          config.Config
    Cars         *repository.CarRepo
    Reservations *repository.ReservationRepo
    Users        *repository.UserRepo
}

func NewReservationHandler(cfg config.Config, cars *repository.CarRepo, res *repository.ReservationRepo, users *repository.UserRepo) *ReservationHandler {
    return &ReservationHandler{Cfg: cfg, Cars: cars, Reservations: res, Users: users}
}

type createReservationReq struct {
    StartDate string `json:"start_date"`
    EndDate   string `json:"end_date"`
}

// Create books a car for the authenticated customer.  The
// reservation starts in WAITING and is priced from the car's current
// daily rate.  When the availability guard is enabled an overlapping
// active reservation turns the request away with 409.
func (h *ReservationHandler) Create(c echo.Context) error {
    carID, ok := parseIDParam(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
    }
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    var req createReservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
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

    car, err := h.Cars.GetByIDWithReservations(ctx, carID)
    if err != nil {
        if errors.Is(err, repository.ErrCarNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }

    if h.Cfg.RequireAvailability && !booking.IsAvailable(*car, start, end) {
        return c.JSON(http.StatusConflict, echo.Map{"error": "car is not available for the requested dates"})
    }

    res := &model.Reservation{
        CarID:          car.ID,
        UserID:         userID,
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

// insertReservation runs the insert inside its own transaction so
// the generated id and timestamps land atomically with the row.
func (h *ReservationHandler) insertReservation(ctx context.Context, res *model.Reservation) error {
    tx, err := h.Reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    committed = true
    return nil
}

// publishEvent emits a reservation event to the broker.  Best
// effort: the booking already committed, so a broker outage only
// costs the notification.
func (h *ReservationHandler) publishEvent(eventType string, res *model.Reservation, car *model.Car) {
    ev := queue.ReservationEvent{
        Type:           eventType,
        ReservationID:  res.ID,
        UserID:         res.UserID,
        CarID:          res.CarID,
        StartDate:      res.StartDate.Format(dateLayout),
        EndDate:        res.EndDate.Format(dateLayout),
        RentalSumCents: res.RentalSumCents,
        Status:         res.Status,
        OccurredAt:     time.Now().UTC().Format(time.RFC3339),
    }
    if car != nil {
        ev.CarBrand = car.Brand
        ev.CarModel = car.Model
    }

    ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
    defer cancel()
    if u, err := h.Users.GetByID(ctx, res.UserID); err == nil {
        ev.Username = u.Username
    }
    _ = queuepub.PublishReservationEvent(ctx, ev)
}

// MyReservations lists the authenticated caller's reservations in
// the personal listing order.
func (h *ReservationHandler) MyReservations(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    list, err := h.Reservations.ListByUser(ctx, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
    }
    booking.SortOwn(list)
    return c.JSON(http.StatusOK, echo.Map{"reservations": toReservationResps(list)})
}
