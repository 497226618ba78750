package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/car-rental-reservation/internal/booking"
    "github.com/iliyamo/car-rental-reservation/internal/model"
)

// ErrReservationNotFound is returned when a reservation lookup
// misses.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides persistence for reservations.  Listing
// queries join the owning car and user so callers receive rows
// ready for the domain sort orders; write paths that must stay
// consistent with car data (creation, repricing) run inside a
// caller-owned transaction.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given
// database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying pool for transaction orchestration.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = "id, car_id, user_id, start_date, end_date, rental_sum_cents, status, created_at, updated_at"

func scanReservation(row interface{ Scan(...any) error }, res *model.Reservation) error {
    return row.Scan(&res.ID, &res.CarID, &res.UserID, &res.StartDate, &res.EndDate,
        &res.RentalSumCents, &res.Status, &res.CreatedAt, &res.UpdatedAt)
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and populates the generated ID and timestamps on the
// provided record.  The caller must commit or roll back.  Status
// must be a valid enumeration value; the lifecycle always starts at
// WAITING and the handler sets it before calling.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const qInsert = `INSERT INTO reservations (car_id, user_id, start_date, end_date, rental_sum_cents, status)
                     VALUES (?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, qInsert, res.CarID, res.UserID, res.StartDate, res.EndDate,
        res.RentalSumCents, res.Status)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    const qSelect = "SELECT " + reservationColumns + " FROM reservations WHERE id = ?"
    return scanReservation(tx.QueryRowContext(ctx, qSelect, res.ID), res)
}

// GetByID fetches a reservation by id without joins.  Returns
// ErrReservationNotFound when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    const q = "SELECT " + reservationColumns + " FROM reservations WHERE id = ?"
    var res model.Reservation
    if err := scanReservation(r.db.QueryRowContext(ctx, q, id), &res); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrReservationNotFound
        }
        return nil, err
    }
    return &res, nil
}

// UpdateStatus persists a new status for the reservation and
// returns the updated row.  The status value must already have been
// validated against the enumeration; no business rule restricts
// which transition is applied.  The write is a single UPDATE so
// concurrent status changes serialize on the row instead of racing
// a separate read.  Returns ErrReservationNotFound when the id does
// not exist.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id uint64, status booking.Status) (*model.Reservation, error) {
    const q = "UPDATE reservations SET status = ? WHERE id = ?"
    res, err := r.db.ExecContext(ctx, q, string(status), id)
    if err != nil {
        return nil, err
    }
    // RowsAffected is zero both for a missing row and for a
    // same-status no-op, so existence is checked explicitly.
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        var exists bool
        if err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM reservations WHERE id = ?)", id).Scan(&exists); err != nil {
            return nil, err
        }
        if !exists {
            return nil, ErrReservationNotFound
        }
    }
    return r.GetByID(ctx, id)
}

// listJoined runs a joined listing query and assembles reservations
// with their eager-loaded car and user.  The domain sort orders are
// applied by the caller; rows come back in id order only to keep
// output deterministic for equal keys.
func (r *ReservationRepo) listJoined(ctx context.Context, cond string, args ...any) ([]model.Reservation, error) {
    q := `SELECT r.id, r.car_id, r.user_id, r.start_date, r.end_date, r.rental_sum_cents, r.status,
                 r.created_at, r.updated_at,
                 c.brand, c.model, c.engine_type, c.image_url, c.rental_price_cents,
                 u.username, u.first_name, u.last_name, u.email
          FROM reservations r
          JOIN cars c ON c.id = r.car_id
          JOIN users u ON u.id = r.user_id
          WHERE ` + cond + `
          ORDER BY r.id`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Reservation, 0)
    for rows.Next() {
        var res model.Reservation
        var car model.Car
        var user model.User
        if err := rows.Scan(&res.ID, &res.CarID, &res.UserID, &res.StartDate, &res.EndDate,
            &res.RentalSumCents, &res.Status, &res.CreatedAt, &res.UpdatedAt,
            &car.Brand, &car.Model, &car.EngineType, &car.ImageURL, &car.RentalPriceCents,
            &user.Username, &user.FirstName, &user.LastName, &user.Email); err != nil {
            return nil, err
        }
        car.ID = res.CarID
        user.ID = res.UserID
        res.Car = &car
        res.User = &user
        out = append(out, res)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ListAll returns every reservation with car and user attached.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
    return r.listJoined(ctx, "1=1")
}

// ListByCar returns the reservations attached to one car.
func (r *ReservationRepo) ListByCar(ctx context.Context, carID uint64) ([]model.Reservation, error) {
    return r.listJoined(ctx, "r.car_id = ?", carID)
}

// ListByUser returns the reservations made by one user.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
    return r.listJoined(ctx, "r.user_id = ?", userID)
}

// RepriceForCarTx recomputes the rental sum of every reservation
// attached to the car using the new daily rate, inside the same
// transaction that updates the car's price.  The rows are locked
// FOR UPDATE so concurrent edits serialize; if any statement fails
// the caller rolls back and neither the rate nor any sum changes.
func (r *ReservationRepo) RepriceForCarTx(ctx context.Context, tx *sql.Tx, carID uint64, newRateCents uint32) error {
    const qSelect = `SELECT id, start_date, end_date, rental_sum_cents
                     FROM reservations WHERE car_id = ? FOR UPDATE`
    rows, err := tx.QueryContext(ctx, qSelect, carID)
    if err != nil {
        return err
    }
    reservations := make([]model.Reservation, 0)
    for rows.Next() {
        var res model.Reservation
        if err := rows.Scan(&res.ID, &res.StartDate, &res.EndDate, &res.RentalSumCents); err != nil {
            rows.Close()
            return err
        }
        reservations = append(reservations, res)
    }
    if err := rows.Err(); err != nil {
        rows.Close()
        return err
    }
    rows.Close()

    booking.Reprice(reservations, newRateCents)

    const qUpdate = "UPDATE reservations SET rental_sum_cents = ? WHERE id = ?"
    for _, res := range reservations {
        if _, err := tx.ExecContext(ctx, qUpdate, res.RentalSumCents, res.ID); err != nil {
            return err
        }
    }
    return nil
}
