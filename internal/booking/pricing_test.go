package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/iliyamo/car-rental-reservation/internal/model"
)

func TestRentalSumCents(t *testing.T) {
    tests := []struct {
        name      string
        rateCents uint32
        start     time.Time
        end       time.Time
        want      uint64
    }{
        // 20.50/day for three whole days = 61.50
        {"three days", 2050, date(2024, 1, 1), date(2024, 1, 4), 6150},
        {"single day", 2050, date(2024, 1, 1), date(2024, 1, 2), 2050},
        {"same-day reservation prices at zero", 2050, date(2024, 1, 1), date(2024, 1, 1), 0},
        {"week at flat rate", 10000, date(2024, 6, 1), date(2024, 6, 8), 70000},
        {"inverted range prices at zero", 2050, date(2024, 1, 4), date(2024, 1, 1), 0},
    }
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            require.Equal(t, tc.want, RentalSumCents(tc.rateCents, tc.start, tc.end))
        })
    }
}

func TestRentalDays_IgnoresTimeOfDay(t *testing.T) {
    start := time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)
    end := time.Date(2024, 1, 4, 1, 0, 0, 0, time.UTC)
    require.Equal(t, 3, RentalDays(start, end))
}

func TestReprice(t *testing.T) {
    reservations := []model.Reservation{
        {ID: 1, StartDate: date(2024, 2, 1), EndDate: date(2024, 2, 3), RentalSumCents: 4000},  // 2 days
        {ID: 2, StartDate: date(2024, 2, 10), EndDate: date(2024, 2, 15), RentalSumCents: 10000}, // 5 days
    }

    got := Reprice(reservations, 3000)

    require.Equal(t, uint64(6000), got[0].RentalSumCents)
    require.Equal(t, uint64(15000), got[1].RentalSumCents)
    // mutation happens in place so the repository can persist the slice it loaded
    require.Equal(t, uint64(6000), reservations[0].RentalSumCents)
}

func TestReprice_Empty(t *testing.T) {
    require.Empty(t, Reprice([]model.Reservation{}, 3000))
}
