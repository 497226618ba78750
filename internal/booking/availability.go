package booking

import (
    "time"

    "github.com/iliyamo/car-rental-reservation/internal/model"
)

// day truncates a timestamp to its UTC calendar date.  Reservations
// operate at day granularity; whatever time-of-day a caller passes
// in is irrelevant to overlap and duration arithmetic.
func day(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two inclusive date ranges intersect.
// Closed-interval test: a reservation ending on the search's start
// day still conflicts.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
    return !day(aStart).After(day(bEnd)) && !day(aEnd).Before(day(bStart))
}

// IsAvailable reports whether the car is free for the inclusive
// range [start, end].  A car is free iff no attached reservation
// with a status other than DENIED overlaps the range.  The car's
// Reservations slice must have been loaded by the caller; a car
// with zero reservations is available for any valid range.  An
// inverted range (end before start) is treated as invalid and the
// car is reported unavailable.
func IsAvailable(car model.Car, start, end time.Time) bool {
    if day(end).Before(day(start)) {
        return false
    }
    for _, r := range car.Reservations {
        if !Status(r.Status).Occupies() {
            continue
        }
        if Overlaps(r.StartDate, r.EndDate, start, end) {
            return false
        }
    }
    return true
}

// AvailableCars filters the fleet down to cars with no conflicting
// reservation in [start, end].  The input order is preserved; the
// result is never nil.  An inverted range yields an empty result.
func AvailableCars(cars []model.Car, start, end time.Time) []model.Car {
    out := make([]model.Car, 0, len(cars))
    if day(end).Before(day(start)) {
        return out
    }
    for _, c := range cars {
        if IsAvailable(c, start, end) {
            out = append(out, c)
        }
    }
    return out
}
