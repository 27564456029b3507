// README: Trip configuration, field invariants, and validation.
package trip

import (
	"strings"
	"time"

	"wheels/internal/types"
)

type Type string

const (
	OneWay     Type = "oneway"
	RoundTrip  Type = "roundtrip"
	RentalTrip Type = "rental"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func ParseType(s string) (Type, bool) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case OneWay:
		return OneWay, true
	case RoundTrip:
		return RoundTrip, true
	case RentalTrip:
		return RentalTrip, true
	}
	return "", false
}

// Configuration holds the raw trip parameters entered in the booking widget.
// Mutate it through the setters so the date invariants hold at all times;
// once distance resolution starts it is read-only.
type Configuration struct {
	TripType       Type      `json:"trip_type"`
	PickupLocation string    `json:"pickup_location"`
	DropLocation   string    `json:"drop_location"`
	PickupDate     time.Time `json:"pickup_date"`
	ReturnDate     time.Time `json:"return_date"`
	PickupTime     string    `json:"pickup_time"`
}

func (c *Configuration) SetTripType(t Type) {
	// ReturnDate is retained when switching away from RoundTrip so the
	// value is still there if the user switches back.
	c.TripType = t
}

func (c *Configuration) SetPickupLocation(s string) {
	c.PickupLocation = strings.TrimSpace(s)
}

func (c *Configuration) SetDropLocation(s string) {
	c.DropLocation = strings.TrimSpace(s)
}

func (c *Configuration) SetPickupDate(d time.Time) {
	c.PickupDate = dateOnly(d)
	if !c.ReturnDate.IsZero() && c.ReturnDate.Before(c.PickupDate) {
		c.ReturnDate = c.PickupDate
	}
}

func (c *Configuration) SetReturnDate(d time.Time) {
	d = dateOnly(d)
	if !c.PickupDate.IsZero() && d.Before(c.PickupDate) {
		d = c.PickupDate
	}
	c.ReturnDate = d
}

func (c *Configuration) SetPickupTime(s string) {
	c.PickupTime = strings.TrimSpace(s)
}

// Validate reports field-level problems; an empty slice means ready to submit.
func (c *Configuration) Validate() []types.FieldError {
	return c.ValidateAt(time.Now())
}

func (c *Configuration) ValidateAt(now time.Time) []types.FieldError {
	var errs []types.FieldError
	if _, ok := ParseType(string(c.TripType)); !ok {
		errs = append(errs, types.FieldError{Field: "trip_type", Message: "unknown trip type"})
	}
	if c.PickupLocation == "" {
		errs = append(errs, types.FieldError{Field: "pickup_location", Message: "pickup location is required"})
	}
	if c.DropLocation == "" {
		errs = append(errs, types.FieldError{Field: "drop_location", Message: "drop location is required"})
	}
	if c.PickupDate.IsZero() {
		errs = append(errs, types.FieldError{Field: "pickup_date", Message: "pickup date is required"})
	} else if c.PickupDate.Before(dateOnly(now)) {
		errs = append(errs, types.FieldError{Field: "pickup_date", Message: "pickup date cannot be in the past"})
	}
	if c.PickupTime == "" {
		errs = append(errs, types.FieldError{Field: "pickup_time", Message: "pickup time is required"})
	} else if _, err := time.Parse(TimeLayout, c.PickupTime); err != nil {
		errs = append(errs, types.FieldError{Field: "pickup_time", Message: "pickup time must be HH:MM"})
	}
	// ReturnDate only matters for round trips; an unset value falls back to
	// the pickup date at submission time.
	if c.TripType == RoundTrip && !c.ReturnDate.IsZero() && c.ReturnDate.Before(c.PickupDate) {
		errs = append(errs, types.FieldError{Field: "return_date", Message: "return date cannot be before pickup date"})
	}
	return errs
}

// ReturnOrPickupDate is the return date sent on round-trip payloads,
// falling back to the pickup date when none was entered.
func (c *Configuration) ReturnOrPickupDate() time.Time {
	if c.ReturnDate.IsZero() {
		return c.PickupDate
	}
	return c.ReturnDate
}

// Days is the billable day count used by the pricing payload.
func (c *Configuration) Days() int {
	if c.TripType != RoundTrip || c.PickupDate.IsZero() {
		return 1
	}
	ret := c.ReturnOrPickupDate()
	return int(ret.Sub(c.PickupDate).Hours()/24) + 1
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
