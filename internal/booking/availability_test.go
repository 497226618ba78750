package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/iliyamo/car-rental-reservation/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func carWith(id uint64, reservations ...model.Reservation) model.Car {
    return model.Car{ID: id, Brand: "Toyota", Model: "Corolla", Reservations: reservations}
}

func TestAvailableCars_NoReservations(t *testing.T) {
    fleet := []model.Car{carWith(1), carWith(2), carWith(3)}

    got := AvailableCars(fleet, date(2024, 1, 1), date(2024, 12, 31))
    require.Len(t, got, 3, "cars with zero reservations are always available")
}

func TestAvailableCars_OverlapExclusion(t *testing.T) {
    booked := model.Reservation{
        StartDate: date(2024, 1, 10),
        EndDate:   date(2024, 1, 15),
        Status:    string(StatusWaiting),
    }
    fleet := []model.Car{carWith(1, booked)}

    tests := []struct {
        name      string
        start     time.Time
        end       time.Time
        available bool
    }{
        {"inside range conflicts", date(2024, 1, 12), date(2024, 1, 20), false},
        {"starting after the last day is free", date(2024, 1, 16), date(2024, 1, 20), true},
        {"ending on the first day conflicts", date(2024, 1, 5), date(2024, 1, 10), false},
        {"search starting on the last day conflicts", date(2024, 1, 15), date(2024, 1, 20), false},
        {"fully before is free", date(2024, 1, 1), date(2024, 1, 9), true},
        {"enclosing range conflicts", date(2024, 1, 1), date(2024, 1, 31), false},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            got := AvailableCars(fleet, tc.start, tc.end)
            if tc.available {
                require.Len(t, got, 1)
            } else {
                require.Empty(t, got)
            }
        })
    }
}

func TestAvailableCars_DeniedReservationsIgnored(t *testing.T) {
    denied := model.Reservation{
        StartDate: date(2024, 1, 10),
        EndDate:   date(2024, 1, 15),
        Status:    string(StatusDenied),
    }
    fleet := []model.Car{carWith(1, denied)}

    got := AvailableCars(fleet, date(2024, 1, 12), date(2024, 1, 20))
    require.Len(t, got, 1, "a denied reservation does not occupy the car")
}

func TestAvailableCars_ConfirmedBlocksLikeWaiting(t *testing.T) {
    confirmed := model.Reservation{
        StartDate: date(2024, 3, 1),
        EndDate:   date(2024, 3, 5),
        Status:    string(StatusConfirmed),
    }
    got := AvailableCars([]model.Car{carWith(1, confirmed)}, date(2024, 3, 5), date(2024, 3, 8))
    require.Empty(t, got)
}

func TestAvailableCars_InvalidRange(t *testing.T) {
    fleet := []model.Car{carWith(1)}

    got := AvailableCars(fleet, date(2024, 1, 20), date(2024, 1, 10))
    require.Empty(t, got, "an inverted range yields no cars")
}

func TestAvailableCars_FiltersPerCar(t *testing.T) {
    booked := model.Reservation{
        StartDate: date(2024, 5, 1),
        EndDate:   date(2024, 5, 3),
        Status:    string(StatusWaiting),
    }
    fleet := []model.Car{carWith(1, booked), carWith(2)}

    got := AvailableCars(fleet, date(2024, 5, 2), date(2024, 5, 4))
    require.Len(t, got, 1)
    require.Equal(t, uint64(2), got[0].ID)
}

func TestOverlaps_DayGranularity(t *testing.T) {
    // Time-of-day must not influence the overlap decision.
    aStart := time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)
    aEnd := time.Date(2024, 1, 15, 0, 1, 0, 0, time.UTC)
    require.True(t, Overlaps(aStart, aEnd, date(2024, 1, 15), date(2024, 1, 20)))
    require.False(t, Overlaps(aStart, aEnd, date(2024, 1, 16), date(2024, 1, 20)))
}
