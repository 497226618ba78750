package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/iliyamo/car-rental-reservation/internal/model"
)

// ErrCarNotFound is returned when a car cannot be found in the DB.
var ErrCarNotFound = errors.New("car not found")

// CarRepo encapsulates all database queries related to the rental
// fleet.  Cars are created, edited and deleted by administrators;
// customers only read them.  Reservations referencing a car are
// removed by the ON DELETE CASCADE foreign key when the car is
// deleted.
type CarRepo struct {
    db *sql.DB
}

// NewCarRepo constructs a CarRepo with the provided DB handle.
func NewCarRepo(db *sql.DB) *CarRepo { return &CarRepo{db: db} }

// DB exposes the underlying pool so handlers can open transactions
// spanning multiple repositories (car edit + reservation repricing).
func (r *CarRepo) DB() *sql.DB { return r.db }

const carColumns = "id, brand, model, engine_type, image_url, year, passenger_capacity, description, rental_price_cents, created_at, updated_at"

func scanCar(row interface{ Scan(...any) error }, c *model.Car) error {
    return row.Scan(&c.ID, &c.Brand, &c.Model, &c.EngineType, &c.ImageURL,
        &c.Year, &c.PassengerCapacity, &c.Description, &c.RentalPriceCents,
        &c.CreatedAt, &c.UpdatedAt)
}

// Create inserts a new car.  On success the ID and timestamp fields
// of the provided struct are populated from the stored row.
func (r *CarRepo) Create(ctx context.Context, c *model.Car) error {
    const qInsert = `INSERT INTO cars (brand, model, engine_type, image_url, year, passenger_capacity, description, rental_price_cents)
                     VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, qInsert, c.Brand, c.Model, c.EngineType, c.ImageURL,
        c.Year, c.PassengerCapacity, c.Description, c.RentalPriceCents)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    const qSelect = "SELECT " + carColumns + " FROM cars WHERE id = ?"
    return scanCar(r.db.QueryRowContext(ctx, qSelect, c.ID), c)
}

// GetByID fetches a car by its ID.  It returns ErrCarNotFound when
// no row exists.  The Reservations slice is left empty; use
// GetByIDWithReservations when availability needs to be evaluated.
func (r *CarRepo) GetByID(ctx context.Context, id uint64) (*model.Car, error) {
    const q = "SELECT " + carColumns + " FROM cars WHERE id = ?"
    var c model.Car
    if err := scanCar(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrCarNotFound
        }
        return nil, err
    }
    return &c, nil
}

// GetByIDWithReservations loads a car together with every
// reservation attached to it.  The availability check needs the
// full set: denied reservations are filtered out by the domain
// logic, not by the query.
func (r *CarRepo) GetByIDWithReservations(ctx context.Context, id uint64) (*model.Car, error) {
    c, err := r.GetByID(ctx, id)
    if err != nil {
        return nil, err
    }
    const q = `SELECT id, car_id, user_id, start_date, end_date, rental_sum_cents, status, created_at, updated_at
               FROM reservations WHERE car_id = ?`
    rows, err := r.db.QueryContext(ctx, q, id)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var res model.Reservation
        if err := rows.Scan(&res.ID, &res.CarID, &res.UserID, &res.StartDate, &res.EndDate,
            &res.RentalSumCents, &res.Status, &res.CreatedAt, &res.UpdatedAt); err != nil {
            return nil, err
        }
        c.Reservations = append(c.Reservations, res)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return c, nil
}

// ListAll returns the whole fleet without reservations, ordered by
// id for deterministic output.
func (r *CarRepo) ListAll(ctx context.Context) ([]model.Car, error) {
    const q = "SELECT " + carColumns + " FROM cars ORDER BY id"
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    cars := make([]model.Car, 0)
    for rows.Next() {
        var c model.Car
        if err := scanCar(rows, &c); err != nil {
            return nil, err
        }
        cars = append(cars, c)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return cars, nil
}

// UpdateTx updates a car's editable fields within a caller-owned
// transaction.  When the daily rate changed, the caller must invoke
// ReservationRepo.RepriceForCarTx on the same transaction before
// committing, so the rate and the reservation sums move together.
// Returns ErrCarNotFound when the car no longer exists.
func (r *CarRepo) UpdateTx(ctx context.Context, tx *sql.Tx, c *model.Car) error {
    const q = `UPDATE cars
               SET brand = ?, model = ?, engine_type = ?, image_url = ?, year = ?,
                   passenger_capacity = ?, description = ?, rental_price_cents = ?
               WHERE id = ?`
    res, err := tx.ExecContext(ctx, q, c.Brand, c.Model, c.EngineType, c.ImageURL,
        c.Year, c.PassengerCapacity, c.Description, c.RentalPriceCents, c.ID)
    if err != nil {
        return err
    }
    // RowsAffected is zero both for a missing row and for a no-op
    // update, so existence is checked explicitly.
    if n, err := res.RowsAffected(); err == nil && n == 0 {
        var exists bool
        if err := tx.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM cars WHERE id = ?)", c.ID).Scan(&exists); err != nil {
            return err
        }
        if !exists {
            return ErrCarNotFound
        }
    }
    return nil
}

// Delete removes a car.  Reservations referencing it are cascaded
// away by the foreign key.  Returns ErrCarNotFound when no row was
// deleted.
func (r *CarRepo) Delete(ctx context.Context, id uint64) error {
    res, err := r.db.ExecContext(ctx, "DELETE FROM cars WHERE id = ?", id)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrCarNotFound
    }
    return nil
}
