package trip

import (
	"testing"
	"time"
)

var now = time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func validConfig() Configuration {
	var c Configuration
	c.SetTripType(OneWay)
	c.SetPickupLocation("Pune")
	c.SetDropLocation("Mumbai")
	c.SetPickupDate(day(1))
	c.SetPickupTime("10:00")
	return c
}

func TestValidateAt(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Configuration)
		wantErr string // offending field, "" for valid
	}{
		{"valid one way", func(c *Configuration) {}, ""},
		{"empty pickup", func(c *Configuration) { c.PickupLocation = "" }, "pickup_location"},
		{"empty drop", func(c *Configuration) { c.DropLocation = "" }, "drop_location"},
		{"blank pickup after trim", func(c *Configuration) { c.SetPickupLocation("   ") }, "pickup_location"},
		{"unknown trip type", func(c *Configuration) { c.TripType = "charter" }, "trip_type"},
		{"past pickup date", func(c *Configuration) { c.PickupDate = day(-1) }, "pickup_date"},
		{"pickup today is fine", func(c *Configuration) { c.PickupDate = day(0) }, ""},
		{"missing pickup date", func(c *Configuration) { c.PickupDate = time.Time{} }, "pickup_date"},
		{"missing pickup time", func(c *Configuration) { c.PickupTime = "" }, "pickup_time"},
		{"malformed pickup time", func(c *Configuration) { c.PickupTime = "ten am" }, "pickup_time"},
		{"round trip without return date", func(c *Configuration) { c.TripType = RoundTrip }, ""},
		{"round trip return before pickup", func(c *Configuration) {
			c.TripType = RoundTrip
			c.ReturnDate = day(-2) // bypass setter to simulate stale state
		}, "return_date"},
		{"rental ignores stale return date", func(c *Configuration) {
			c.TripType = RentalTrip
			c.ReturnDate = day(-2)
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			errs := c.ValidateAt(now)
			if tt.wantErr == "" {
				if len(errs) != 0 {
					t.Fatalf("expected no errors, got %v", errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("expected error on %s, got none", tt.wantErr)
			}
			found := false
			for _, e := range errs {
				if e.Field == tt.wantErr {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected error on %s, got %v", tt.wantErr, errs)
			}
		})
	}
}

func TestSetPickupDatePushesReturnDate(t *testing.T) {
	c := validConfig()
	c.SetTripType(RoundTrip)
	c.SetReturnDate(day(2))
	c.SetPickupDate(day(5))
	if !c.ReturnDate.Equal(day(5)) {
		t.Errorf("return date not pushed forward: got %v", c.ReturnDate)
	}
}

func TestSetReturnDateClampedToPickup(t *testing.T) {
	c := validConfig()
	c.SetTripType(RoundTrip)
	c.SetReturnDate(day(-3))
	if !c.ReturnDate.Equal(c.PickupDate) {
		t.Errorf("return date not clamped: got %v", c.ReturnDate)
	}
}

func TestSwitchingTripTypeRetainsReturnDate(t *testing.T) {
	c := validConfig()
	c.SetTripType(RoundTrip)
	c.SetReturnDate(day(4))
	c.SetTripType(OneWay)
	if c.ReturnDate.IsZero() {
		t.Fatal("return date was cleared on trip type switch")
	}
	if errs := c.ValidateAt(now); len(errs) != 0 {
		t.Errorf("one way with stale return date should validate, got %v", errs)
	}
}

func TestDays(t *testing.T) {
	c := validConfig()
	if got := c.Days(); got != 1 {
		t.Errorf("one way days = %d, want 1", got)
	}
	c.SetTripType(RoundTrip)
	c.SetReturnDate(day(3))
	if got := c.Days(); got != 3 {
		t.Errorf("round trip days = %d, want 3", got)
	}
	c.ReturnDate = time.Time{}
	if got := c.Days(); got != 1 {
		t.Errorf("round trip without return date days = %d, want 1", got)
	}
}

func TestReturnOrPickupDate(t *testing.T) {
	c := validConfig()
	c.SetTripType(RoundTrip)
	if !c.ReturnOrPickupDate().Equal(c.PickupDate) {
		t.Error("expected pickup date fallback")
	}
	c.SetReturnDate(day(2))
	if !c.ReturnOrPickupDate().Equal(day(2)) {
		t.Error("expected explicit return date")
	}
}
