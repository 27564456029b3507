// README: Shared request payloads and binding helpers.
package handlers

import (
	"errors"
	"time"

	"wheels/internal/modules/session"
	"wheels/internal/modules/trip"
	"wheels/internal/types"
)

type tripPayload struct {
	TripType       string `json:"trip_type"`
	PickupLocation string `json:"pickup_location"`
	DropLocation   string `json:"drop_location"`
	PickupDate     string `json:"pickup_date"`
	ReturnDate     string `json:"return_date"`
	PickupTime     string `json:"pickup_time"`
}

// toConfiguration builds a trip through its setters so the date invariants
// hold; malformed dates are a binding error, everything else is left to
// Validate.
func (p tripPayload) toConfiguration() (trip.Configuration, error) {
	var c trip.Configuration
	if t, ok := trip.ParseType(p.TripType); ok {
		c.SetTripType(t)
	} else {
		c.SetTripType(trip.Type(p.TripType))
	}
	c.SetPickupLocation(p.PickupLocation)
	c.SetDropLocation(p.DropLocation)
	if p.PickupDate != "" {
		d, err := time.Parse(trip.DateLayout, p.PickupDate)
		if err != nil {
			return c, errors.New("pickup_date must be YYYY-MM-DD")
		}
		c.SetPickupDate(d)
	}
	if p.ReturnDate != "" {
		d, err := time.Parse(trip.DateLayout, p.ReturnDate)
		if err != nil {
			return c, errors.New("return_date must be YYYY-MM-DD")
		}
		c.SetReturnDate(d)
	}
	c.SetPickupTime(p.PickupTime)
	return c, nil
}

type vehiclePayload struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Seats        int      `json:"seats"`
	FuelType     string   `json:"fuel_type"`
	Availability string   `json:"availability"`
	ImageURL     string   `json:"image_url"`
	Features     []string `json:"features"`
	Price        int64    `json:"price"`
}

func (p vehiclePayload) toVehicle() session.Vehicle {
	return session.Vehicle{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Seats:        p.Seats,
		FuelType:     p.FuelType,
		Availability: p.Availability,
		ImageURL:     p.ImageURL,
		Features:     p.Features,
		Price:        types.INR(p.Price),
	}
}
