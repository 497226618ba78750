package booking

import (
    "sort"

    "github.com/iliyamo/car-rental-reservation/internal/model"
)

// The listing endpoints each present reservations in a fixed order.
// Sorting happens here, over eager-loaded rows, so the orders are
// the same regardless of which repository query produced the slice.
// All sorts are stable; Car/User references may be nil for rows
// loaded without joins, in which case the brand/model/username keys
// are treated as empty strings.

func carBrand(r model.Reservation) string {
    if r.Car == nil {
        return ""
    }
    return r.Car.Brand
}

func carModel(r model.Reservation) string {
    if r.Car == nil {
        return ""
    }
    return r.Car.Model
}

func username(r model.Reservation) string {
    if r.User == nil {
        return ""
    }
    return r.User.Username
}

// SortAll orders the admin-wide listing: start date, then end date,
// then car brand (lexical), all ascending.
func SortAll(reservations []model.Reservation) {
    sort.SliceStable(reservations, func(i, j int) bool {
        a, b := reservations[i], reservations[j]
        if !a.StartDate.Equal(b.StartDate) {
            return a.StartDate.Before(b.StartDate)
        }
        if !a.EndDate.Equal(b.EndDate) {
            return a.EndDate.Before(b.EndDate)
        }
        return carBrand(a) < carBrand(b)
    })
}

// SortForCar orders the per-car admin listing: start date, then the
// reserving user's username.
func SortForCar(reservations []model.Reservation) {
    sort.SliceStable(reservations, func(i, j int) bool {
        a, b := reservations[i], reservations[j]
        if !a.StartDate.Equal(b.StartDate) {
            return a.StartDate.Before(b.StartDate)
        }
        return username(a) < username(b)
    })
}

// SortForUser orders the per-user admin listing: start date, then
// car brand, then car model.
func SortForUser(reservations []model.Reservation) {
    sort.SliceStable(reservations, func(i, j int) bool {
        a, b := reservations[i], reservations[j]
        if !a.StartDate.Equal(b.StartDate) {
            return a.StartDate.Before(b.StartDate)
        }
        if carBrand(a) != carBrand(b) {
            return carBrand(a) < carBrand(b)
        }
        return carModel(a) < carModel(b)
    })
}

// SortOwn orders a customer's self-service listing: start date,
// then car brand.
func SortOwn(reservations []model.Reservation) {
    sort.SliceStable(reservations, func(i, j int) bool {
        a, b := reservations[i], reservations[j]
        if !a.StartDate.Equal(b.StartDate) {
            return a.StartDate.Before(b.StartDate)
        }
        return carBrand(a) < carBrand(b)
    })
}
