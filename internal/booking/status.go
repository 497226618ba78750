// Package booking contains the reservation domain logic: availability
// over date ranges, rental pricing, status handling and the sort
// orders used by the listing endpoints.  Everything in this package
// is a pure function of its inputs; persistence lives in the
// repository layer and transport in the handlers.
package booking

import (
    "errors"
    "strings"
)

// Status enumerates the lifecycle states of a reservation.  A new
// reservation always starts in StatusWaiting; an administrator moves
// it to StatusConfirmed or StatusDenied.  No transition is blocked
// structurally: the stored value is replaced with whatever valid
// status the administrator submits.
type Status string

const (
    // StatusWaiting marks a reservation pending an admin decision.
    StatusWaiting Status = "WAITING"
    // StatusConfirmed marks an approved reservation.
    StatusConfirmed Status = "CONFIRMED"
    // StatusDenied marks a rejected reservation.  Denied reservations
    // do not occupy the car for availability purposes.
    StatusDenied Status = "DENIED"
)

// ErrUnknownStatus is returned by ParseStatus when the submitted
// value does not name any reservation status.
var ErrUnknownStatus = errors.New("unknown reservation status")

// ParseStatus converts a client-supplied string into a Status.
// Matching is case-insensitive so both "Confirmed" and "CONFIRMED"
// are accepted; anything else yields ErrUnknownStatus.
func ParseStatus(s string) (Status, error) {
    switch strings.ToUpper(strings.TrimSpace(s)) {
    case string(StatusWaiting):
        return StatusWaiting, nil
    case string(StatusConfirmed):
        return StatusConfirmed, nil
    case string(StatusDenied):
        return StatusDenied, nil
    }
    return "", ErrUnknownStatus
}

// Occupies reports whether a reservation in this status blocks the
// car for overlapping date ranges.  Only denied reservations free
// the car; waiting and confirmed both count as occupying.
func (s Status) Occupies() bool {
    return s != StatusDenied
}

// EngineType values accepted for cars.  Stored as text in the
// cars.engine_type column.
const (
    EngineDiesel   = "DIESEL"
    EnginePetrol   = "PETROL"
    EngineElectric = "ELECTRIC"
    EngineHybrid   = "HYBRID"
)

// ErrUnknownEngineType is returned by ParseEngineType for values
// outside the engine enumeration.
var ErrUnknownEngineType = errors.New("unknown engine type")

// ParseEngineType normalizes a client-supplied engine type.  Like
// ParseStatus it is case-insensitive.
func ParseEngineType(s string) (string, error) {
    switch strings.ToUpper(strings.TrimSpace(s)) {
    case EngineDiesel:
        return EngineDiesel, nil
    case EnginePetrol:
        return EnginePetrol, nil
    case EngineElectric:
        return EngineElectric, nil
    case EngineHybrid:
        return EngineHybrid, nil
    }
    return "", ErrUnknownEngineType
}
