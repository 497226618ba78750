package repository

import (
    "context"
    "strings"

    "github.com/iliyamo/car-rental-reservation/internal/model"
)

// CarSearchQuery defines optional filters and pagination for the
// availability search.  The date range itself is not part of the
// SQL: availability is decided by the domain logic over the loaded
// reservations, exactly once, so the overlap rule lives in a single
// place.
type CarSearchQuery struct {
    Brand       string
    EngineType  string
    MinCapacity int
    Page        int
    PageSize    int
}

// Search returns a page of cars matching the filters, each with its
// full reservation set attached, plus the total match count before
// paging.  Reservations are bulk-loaded with one IN (...) query.
func (r *CarRepo) Search(ctx context.Context, q CarSearchQuery) ([]model.Car, int64, error) {
    where := []string{}
    args := []any{}

    if q.Brand != "" {
        where = append(where, "LOWER(brand) LIKE ?")
        args = append(args, "%"+strings.ToLower(q.Brand)+"%")
    }
    if q.EngineType != "" {
        where = append(where, "engine_type = ?")
        args = append(args, q.EngineType)
    }
    if q.MinCapacity > 0 {
        where = append(where, "passenger_capacity >= ?")
        args = append(args, q.MinCapacity)
    }

    cond := "1=1"
    if len(where) > 0 {
        cond = strings.Join(where, " AND ")
    }

    var total int64
    countSQL := "SELECT COUNT(*) FROM cars WHERE " + cond
    if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
        return nil, 0, err
    }

    if q.Page < 1 {
        q.Page = 1
    }
    if q.PageSize < 1 {
        q.PageSize = 50
    }
    limit := q.PageSize
    offset := (q.Page - 1) * q.PageSize

    dataSQL := "SELECT " + carColumns + " FROM cars WHERE " + cond + " ORDER BY id LIMIT ? OFFSET ?"
    argsData := append(append([]any{}, args...), limit, offset)

    rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    cars := make([]model.Car, 0, limit)
    index := make(map[uint64]int)
    for rows.Next() {
        var c model.Car
        if err := scanCar(rows, &c); err != nil {
            return nil, 0, err
        }
        index[c.ID] = len(cars)
        cars = append(cars, c)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    if len(cars) == 0 {
        return cars, total, nil
    }

    // Attach reservations for the whole page in one query.
    ids := make([]any, 0, len(cars))
    placeholders := make([]string, 0, len(cars))
    for _, c := range cars {
        ids = append(ids, c.ID)
        placeholders = append(placeholders, "?")
    }
    resSQL := `SELECT id, car_id, user_id, start_date, end_date, rental_sum_cents, status, created_at, updated_at
               FROM reservations
               WHERE car_id IN (` + strings.Join(placeholders, ",") + `)`
    rrows, err := r.db.QueryContext(ctx, resSQL, ids...)
    if err != nil {
        return nil, 0, err
    }
    defer rrows.Close()
    for rrows.Next() {
        var res model.Reservation
        if err := rrows.Scan(&res.ID, &res.CarID, &res.UserID, &res.StartDate, &res.EndDate,
            &res.RentalSumCents, &res.Status, &res.CreatedAt, &res.UpdatedAt); err != nil {
            return nil, 0, err
        }
        if idx, ok := index[res.CarID]; ok {
            cars[idx].Reservations = append(cars[idx].Reservations, res)
        }
    }
    if err := rrows.Err(); err != nil {
        return nil, 0, err
    }
    return cars, total, nil
}
