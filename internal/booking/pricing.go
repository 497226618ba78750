package booking

import (
    "time"

    "github.com/iliyamo/car-rental-reservation/internal/model"
)

// RentalDays returns the whole-day duration of [start, end] at day
// granularity.  There is no partial-day proration: a same-day
// reservation spans zero days.  Inverted ranges yield a negative
// count; callers validate ranges before pricing.
func RentalDays(start, end time.Time) int {
    return int(day(end).Sub(day(start)) / (24 * time.Hour))
}

// RentalSumCents prices a rental: daily rate times whole days.
// A same-day reservation therefore prices at zero, mirroring the
// historical behavior of the booking flow.
func RentalSumCents(dailyRateCents uint32, start, end time.Time) uint64 {
    days := RentalDays(start, end)
    if days <= 0 {
        return 0
    }
    return uint64(dailyRateCents) * uint64(days)
}

// Reprice recomputes the rental sum of every reservation using the
// new daily rate and each reservation's own date range.  It mutates
// the slice in place and returns it.  The repository wraps this in
// the same transaction as the car-price update so rate and sums can
// never diverge.
func Reprice(reservations []model.Reservation, newRateCents uint32) []model.Reservation {
    for i := range reservations {
        reservations[i].RentalSumCents = RentalSumCents(newRateCents, reservations[i].StartDate, reservations[i].EndDate)
    }
    return reservations
}
