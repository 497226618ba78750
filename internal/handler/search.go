package handler

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/car-rental-reservation/internal/booking"
    "github.com/iliyamo/car-rental-reservation/internal/repository"
)

// lastRangeTTL bounds how long a remembered search range stays
// around before the defaults kick back in.
const lastRangeTTL = 24 * time.Hour

// SearchHandler serves the public fleet listing and the availability
// search.  An optional Redis client remembers the last date range a
// logged-in caller searched for, so repeat visits resume where they
// left off.
type SearchHandler struct {
    Cars *repository.CarRepo
    RDB  *redis.Client
}

func NewSearchHandler(cars *repository.CarRepo, rdb *redis.Client) *SearchHandler {
    return &SearchHandler{Cars: cars, RDB: rdb}
}

// bindSearchQuery reads the shared filter/paging params.
func bindSearchQuery(c echo.Context) repository.CarSearchQuery {
    q := repository.CarSearchQuery{
        Brand:      strings.TrimSpace(c.QueryParam("brand")),
        EngineType: strings.ToUpper(strings.TrimSpace(c.QueryParam("engine_type"))),
    }
    if v, err := strconv.Atoi(c.QueryParam("min_capacity")); err == nil {
        q.MinCapacity = v
    }
    if v, err := strconv.Atoi(c.QueryParam("page")); err == nil {
        q.Page = v
    }
    if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil {
        q.PageSize = v
    }
    return q
}

// ListCars returns a page of the fleet with filters applied.
func (h *SearchHandler) ListCars(c echo.Context) error {
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cars, total, err := h.Cars.Search(ctx, bindSearchQuery(c))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list cars failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "cars":  toCarResps(cars),
        "total": total,
    })
}

// GetCar returns a single car by id.
func (h *SearchHandler) GetCar(c echo.Context) error {
    id, ok := parseIDParam(c, "id")
    if !ok {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid car id"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    car, err := h.Cars.GetByID(ctx, id)
    if err != nil {
        if errors.Is(err, repository.ErrCarNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "car not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"car": toCarResp(*car)})
}

// AvailableCars lists cars free for a date range.  Explicit start/end
// query params win; otherwise a logged-in caller's remembered range
// is tried, and finally the default today→tomorrow window applies.
func (h *SearchHandler) AvailableCars(c echo.Context) error {
    start, end, err := h.resolveRange(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
    defer cancel()

    cars, _, err := h.Cars.Search(ctx, bindSearchQuery(c))
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
    }
    free := booking.AvailableCars(cars, start, end)

    h.rememberRange(ctx, c, start, end)

    return c.JSON(http.StatusOK, echo.Map{
        "start": start.Format(dateLayout),
        "end":   end.Format(dateLayout),
        "cars":  toCarResps(free),
        "total": len(free),
    })
}

// resolveRange determines the search window: explicit params, then
// the caller's remembered range, then today→tomorrow.
func (h *SearchHandler) resolveRange(c echo.Context) (time.Time, time.Time, error) {
    startRaw := c.QueryParam("start")
    endRaw := c.QueryParam("end")

    if startRaw != "" || endRaw != "" {
        start, err := parseDate(startRaw)
        if err != nil {
            return time.Time{}, time.Time{}, errors.New("start must be YYYY-MM-DD")
        }
        end, err := parseDate(endRaw)
        if err != nil {
            return time.Time{}, time.Time{}, errors.New("end must be YYYY-MM-DD")
        }
        return start, end, nil
    }

    if start, end, ok := h.recallRange(c); ok {
        return start, end, nil
    }

    now := time.Now().UTC()
    today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
    return today, today.AddDate(0, 0, 1), nil
}

func lastRangeKey(userID uint64) string {
    return fmt.Sprintf("search:last_range:%d", userID)
}

// rememberRange stores the searched window for the authenticated
// caller.  Best effort; anonymous callers and Redis outages are
// silently skipped.
func (h *SearchHandler) rememberRange(ctx context.Context, c echo.Context, start, end time.Time) {
    if h.RDB == nil {
        return
    }
    userID, err := getUserID(c)
    if err != nil {
        return
    }
    val := start.Format(dateLayout) + "|" + end.Format(dateLayout)
    _ = h.RDB.Set(ctx, lastRangeKey(userID), val, lastRangeTTL).Err()
}

// recallRange loads the caller's previously searched window.
func (h *SearchHandler) recallRange(c echo.Context) (time.Time, time.Time, bool) {
    if h.RDB == nil {
        return time.Time{}, time.Time{}, false
    }
    userID, err := getUserID(c)
    if err != nil {
        return time.Time{}, time.Time{}, false
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
    defer cancel()

    val, err := h.RDB.Get(ctx, lastRangeKey(userID)).Result()
    if err != nil {
        return time.Time{}, time.Time{}, false
    }
    parts := strings.SplitN(val, "|", 2)
    if len(parts) != 2 {
        return time.Time{}, time.Time{}, false
    }
    start, err1 := parseDate(parts[0])
    end, err2 := parseDate(parts[1])
    if err1 != nil || err2 != nil {
        return time.Time{}, time.Time{}, false
    }
    return start, end, true
}
