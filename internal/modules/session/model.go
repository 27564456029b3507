// README: Booking session aggregate persisted across widget pages.
package session

import (
	"time"

	"wheels/internal/modules/fare"
	"wheels/internal/modules/trip"
	"wheels/internal/types"
)

// Vehicle is the cab selected on a listing page.
type Vehicle struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Seats        int         `json:"seats"`
	FuelType     string      `json:"fuel_type"`
	Availability string      `json:"availability"`
	ImageURL     string      `json:"image_url"`
	Features     []string    `json:"features"`
	Price        types.Money `json:"price"`
}

// BookingSession is the in-progress booking snapshot. It is written when a
// vehicle is selected, read on every page of the flow, and cleared only once
// the booking is confirmed. A newer selection silently overwrites it.
type BookingSession struct {
	Trip       trip.Configuration `json:"trip"`
	Vehicle    Vehicle            `json:"vehicle"`
	DistanceKm float64            `json:"distance_km"`
	Quote      fare.Quote         `json:"quote"`
	UpdatedAt  time.Time          `json:"updated_at"`
}
