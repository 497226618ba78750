// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// Event types carried on the reservation.events queue.
const (
    EventReservationCreated       = "reservation.created"
    EventReservationStatusChanged = "reservation.status_changed"
)

// ReservationEvent is published whenever a reservation is created or
// an administrator changes its status.  It carries enough context
// for downstream consumers to notify or log without querying the
// primary database.
type ReservationEvent struct {
    Type           string `json:"type"`
    ReservationID  uint64 `json:"reservation_id"`
    UserID         uint64 `json:"user_id"`
    Username       string `json:"username,omitempty"`
    CarID          uint64 `json:"car_id"`
    CarBrand       string `json:"car_brand,omitempty"`
    CarModel       string `json:"car_model,omitempty"`
    StartDate      string `json:"start_date"`
    EndDate        string `json:"end_date"`
    RentalSumCents uint64 `json:"rental_sum_cents"`
    Status         string `json:"status"`
    OccurredAt     string `json:"occurred_at"`
}
