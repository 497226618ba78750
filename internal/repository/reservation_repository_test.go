package repository

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/car-rental-reservation/internal/booking"
)

var reservationRows = []string{
    "id", "car_id", "user_id", "start_date", "end_date",
    "rental_sum_cents", "status", "created_at", "updated_at",
}

func TestUpdateStatusSingleWrite(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewReservationRepo(db)

    now := time.Now().UTC()
    mock.ExpectExec("UPDATE reservations SET status").
        WithArgs("CONFIRMED", 5).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
        WithArgs(5).
        WillReturnRows(sqlmock.NewRows(reservationRows).
            AddRow(5, 1, 2, now, now.Add(24*time.Hour), 4000, "CONFIRMED", now, now))

    res, err := repo.UpdateStatus(context.Background(), 5, booking.StatusConfirmed)
    require.NoError(t, err)
    require.Equal(t, "CONFIRMED", res.Status)
    require.NoError(t, mock.ExpectationsWereMet(), "status change must be one UPDATE plus the read-back")
}

func TestUpdateStatusMissingReservation(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewReservationRepo(db)

    mock.ExpectExec("UPDATE reservations SET status").
        WithArgs("DENIED", 99).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectQuery("SELECT EXISTS").
        WithArgs(99).
        WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

    _, err = repo.UpdateStatus(context.Background(), 99, booking.StatusDenied)
    require.ErrorIs(t, err, ErrReservationNotFound)
    require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusSameValueNoOp(t *testing.T) {
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    defer db.Close()
    repo := NewReservationRepo(db)

    now := time.Now().UTC()
    // MySQL reports zero affected rows when the value is unchanged;
    // the row still exists and must be returned, not 404'd.
    mock.ExpectExec("UPDATE reservations SET status").
        WithArgs("WAITING", 5).
        WillReturnResult(sqlmock.NewResult(0, 0))
    mock.ExpectQuery("SELECT EXISTS").
        WithArgs(5).
        WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
    mock.ExpectQuery("SELECT (.+) FROM reservations WHERE id").
        WithArgs(5).
        WillReturnRows(sqlmock.NewRows(reservationRows).
            AddRow(5, 1, 2, now, now.Add(24*time.Hour), 4000, "WAITING", now, now))

    res, err := repo.UpdateStatus(context.Background(), 5, booking.StatusWaiting)
    require.NoError(t, err)
    require.Equal(t, "WAITING", res.Status)
    require.NoError(t, mock.ExpectationsWereMet())
}
