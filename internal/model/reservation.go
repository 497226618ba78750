package model

import "time"

// Reservation records a customer's booking of one car for an
// inclusive date range.  The rental sum is computed from the car's
// daily rate and the whole-day duration and is recomputed whenever
// the car's rate changes.  Start and end are DATE columns; no
// time-of-day semantics apply.
//
// Fields:
//  ID             – primary key identifier.
//  CarID          – car being reserved (required).
//  UserID         – customer who made the reservation (required).
//  StartDate      – first day of the rental (inclusive).
//  EndDate        – last day of the rental (inclusive, >= StartDate).
//  RentalSumCents – total price in cents, rate × whole days.
//  Status         – state of the reservation (WAITING, CONFIRMED,
//                   DENIED).
//  Car            – eager-loaded car (nil unless the query joins it).
//  User           – eager-loaded user (nil unless the query joins it).
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Reservation struct {
    ID             uint64    // reservations.id
    CarID          uint64    // reservations.car_id
    UserID         uint64    // reservations.user_id
    StartDate      time.Time // reservations.start_date
    EndDate        time.Time // reservations.end_date
    RentalSumCents uint64    // reservations.rental_sum_cents
    Status         string    // reservations.status
    Car            *Car      // joined from cars when listed
    User           *User     // joined from users when listed
    CreatedAt      time.Time // reservations.created_at
    UpdatedAt      time.Time // reservations.updated_at
}
