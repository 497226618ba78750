package booking

import (
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/iliyamo/car-rental-reservation/internal/model"
)

func res(id uint64, start time.Time, brand, mdl, user string) model.Reservation {
    return model.Reservation{
        ID:        id,
        StartDate: start,
        EndDate:   start.AddDate(0, 0, 1),
        Car:       &model.Car{Brand: brand, Model: mdl},
        User:      &model.User{Username: user},
    }
}

func ids(rs []model.Reservation) []uint64 {
    out := make([]uint64, 0, len(rs))
    for _, r := range rs {
        out = append(out, r.ID)
    }
    return out
}

func TestSortAll(t *testing.T) {
    list := []model.Reservation{
        res(1, date(2024, 2, 1), "A", "M1", "u1"),
        res(2, date(2024, 1, 1), "B", "M1", "u2"),
        res(3, date(2024, 1, 1), "A", "M2", "u3"),
    }

    SortAll(list)

    // start date ascending, then brand: (Jan 1, A), (Jan 1, B), (Feb 1, A)
    require.Equal(t, []uint64{3, 2, 1}, ids(list))
}

func TestSortAll_EndDateBreaksTies(t *testing.T) {
    a := res(1, date(2024, 1, 1), "A", "M", "u")
    a.EndDate = date(2024, 1, 9)
    b := res(2, date(2024, 1, 1), "A", "M", "u")
    b.EndDate = date(2024, 1, 5)
    list := []model.Reservation{a, b}

    SortAll(list)

    require.Equal(t, []uint64{2, 1}, ids(list))
}

func TestSortForCar(t *testing.T) {
    list := []model.Reservation{
        res(1, date(2024, 1, 5), "A", "M", "zoe"),
        res(2, date(2024, 1, 5), "A", "M", "adam"),
        res(3, date(2024, 1, 1), "A", "M", "zoe"),
    }

    SortForCar(list)

    require.Equal(t, []uint64{3, 2, 1}, ids(list))
}

func TestSortForUser(t *testing.T) {
    list := []model.Reservation{
        res(1, date(2024, 1, 1), "BMW", "X5", "u"),
        res(2, date(2024, 1, 1), "Audi", "Q7", "u"),
        res(3, date(2024, 1, 1), "Audi", "A3", "u"),
    }

    SortForUser(list)

    require.Equal(t, []uint64{3, 2, 1}, ids(list))
}

func TestSortOwn(t *testing.T) {
    list := []model.Reservation{
        res(1, date(2024, 3, 1), "BMW", "X5", "u"),
        res(2, date(2024, 2, 1), "Skoda", "Fabia", "u"),
        res(3, date(2024, 2, 1), "Audi", "A3", "u"),
    }

    SortOwn(list)

    require.Equal(t, []uint64{3, 2, 1}, ids(list))
}

func TestSort_NilCarTolerated(t *testing.T) {
    bare := model.Reservation{ID: 1, StartDate: date(2024, 1, 1)}
    list := []model.Reservation{bare, res(2, date(2024, 1, 1), "A", "M", "u")}

    require.NotPanics(t, func() { SortAll(list) })
    require.Equal(t, []uint64{1, 2}, ids(list))
}
