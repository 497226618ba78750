package model

import "time"

// Car represents a vehicle in the rental fleet as stored in the
// `cars` table.  A car owns a collection of reservations; the
// Reservations slice is only populated when a repository method
// loads them eagerly (availability checks need the full set).
//
// Fields:
//  ID                – primary key identifier.
//  Brand             – manufacturer name (3–50 characters).
//  Model             – model name.
//  EngineType        – engine enumeration (DIESEL, PETROL, ELECTRIC,
//                      HYBRID).
//  ImageURL          – URL of the car photo on the media host.
//  Year              – manufacture year (1900–2024).
//  PassengerCapacity – number of passengers (1–16).
//  Description       – free-text description shown to customers.
//  RentalPriceCents  – daily rental price in cents (1000–1000000,
//                      i.e. 10.00–10000.00).
//  Reservations      – reservations attached to this car (eager).
//  CreatedAt         – creation timestamp.
//  UpdatedAt         – last update timestamp.
type Car struct {
    ID                uint64        // cars.id
    Brand             string        // cars.brand
    Model             string        // cars.model
    EngineType        string        // cars.engine_type
    ImageURL          string        // cars.image_url
    Year              int           // cars.year
    PassengerCapacity int           // cars.passenger_capacity
    Description       string        // cars.description
    RentalPriceCents  uint32        // cars.rental_price_cents
    Reservations      []Reservation // loaded from reservations.car_id
    CreatedAt         time.Time     // cars.created_at
    UpdatedAt         time.Time     // cars.updated_at
}
