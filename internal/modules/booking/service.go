// README: Booking submitter: validates contact details and posts the reservation.
package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"wheels/internal/modules/fare"
	"wheels/internal/modules/session"
	"wheels/internal/modules/trip"
)

var (
	ErrNoSession          = errors.New("no active booking session")
	ErrSubmissionInFlight = errors.New("submission already in progress")
)

type ServiceDeps struct {
	Sessions       session.Store
	Events         *Store // optional; submission works without the event log
	ReservationURL string
	Client         *http.Client
	Logger         *slog.Logger
}

type Service struct {
	sessions session.Store
	events   *Store
	url      string
	client   *http.Client
	logger   *slog.Logger
	inflight sync.Map
}

func NewService(deps ServiceDeps) *Service {
	client := deps.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessions: deps.Sessions,
		events:   deps.Events,
		url:      deps.ReservationURL,
		client:   client,
		logger:   logger,
	}
}

type reservationResponse struct {
	Status    string `json:"status"`
	BookingID string `json:"bookingId"`
	Error     string `json:"error"`
}

// Submit runs the full Draft -> Validating -> Submitting -> terminal flow for
// the profile's active session. Validation failures return to Draft with
// field errors. A Failed outcome keeps the session so the user can fix the
// contact details and resubmit; Confirmed clears it. The reservation request
// is posted exactly once, with no automatic retry.
func (s *Service) Submit(ctx context.Context, profileID string, contact Contact) (Result, error) {
	if _, busy := s.inflight.LoadOrStore(profileID, struct{}{}); busy {
		return Result{}, ErrSubmissionInFlight
	}
	defer s.inflight.Delete(profileID)

	sess, err := s.sessions.Load(ctx, profileID)
	if err != nil {
		return Result{}, err
	}
	if sess == nil {
		return Result{}, ErrNoSession
	}

	s.transition(ctx, profileID, StatusDraft, StatusValidating, "")

	contact.Phone = ScrubPhone(contact.Phone)
	if fieldErrs := contact.Validate(); len(fieldErrs) > 0 {
		s.transition(ctx, profileID, StatusValidating, StatusDraft, "contact validation failed")
		return Result{Status: StatusDraft, FieldErrors: fieldErrs}, nil
	}

	s.transition(ctx, profileID, StatusValidating, StatusSubmitting, "")

	// A quote from the pricing service is authoritative and goes out as-is;
	// otherwise the provisional breakdown is recomputed from the base price
	// so the total can never drift from it.
	quote := sess.Quote
	if !quote.Calculated {
		quote = fare.Estimate(sess.Vehicle.Price)
	}

	outcome, err := s.post(ctx, sess, contact, quote)
	if err != nil {
		s.logger.Error("booking: reservation request failed", "profile", profileID, "err", err)
		s.transition(ctx, profileID, StatusSubmitting, StatusFailed, err.Error())
		return Result{Status: StatusFailed, Message: "booking could not be completed, please try again"}, nil
	}

	if outcome.Status != "success" || outcome.BookingID == "" {
		detail := outcome.Error
		if detail == "" {
			detail = "reservation rejected"
		}
		s.logger.Warn("booking: reservation rejected", "profile", profileID, "detail", detail)
		s.transition(ctx, profileID, StatusSubmitting, StatusFailed, detail)
		return Result{Status: StatusFailed, Message: detail}, nil
	}

	// Only a confirmed booking discards the session; failures keep it so the
	// trip does not have to be re-entered.
	if err := s.sessions.Clear(ctx, profileID); err != nil {
		s.logger.Error("booking: clearing confirmed session failed", "profile", profileID, "err", err)
	}
	s.logEvent(ctx, &Event{
		ProfileID:  profileID,
		FromStatus: StatusSubmitting,
		ToStatus:   StatusConfirmed,
		BookingID:  &outcome.BookingID,
		CreatedAt:  time.Now(),
	})
	s.logger.Info("booking: confirmed", "profile", profileID, "booking_id", outcome.BookingID)
	return Result{Status: StatusConfirmed, BookingID: outcome.BookingID}, nil
}

// post sends the reservation request once and normalizes transport problems,
// non-OK statuses, and unparseable bodies into a single error path.
func (s *Service) post(ctx context.Context, sess *session.BookingSession, contact Contact, quote fare.Quote) (reservationResponse, error) {
	form := payload(sess, contact, quote)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, strings.NewReader(form.Encode()))
	if err != nil {
		return reservationResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return reservationResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return reservationResponse{}, fmt.Errorf("reservation endpoint status %d", resp.StatusCode)
	}

	var body reservationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return reservationResponse{}, fmt.Errorf("unparseable reservation response: %w", err)
	}
	return body, nil
}

func payload(sess *session.BookingSession, contact Contact, quote fare.Quote) url.Values {
	t := sess.Trip
	form := url.Values{}
	form.Set("cabId", sess.Vehicle.ID)
	form.Set("modelName", sess.Vehicle.Name)
	form.Set("modelType", sess.Vehicle.Category)
	form.Set("seats", strconv.Itoa(sess.Vehicle.Seats))
	form.Set("fuelType", sess.Vehicle.FuelType)
	form.Set("availability", sess.Vehicle.Availability)
	form.Set("price", strconv.FormatInt(sess.Vehicle.Price.Amount, 10))
	form.Set("pickupLocation", t.PickupLocation)
	form.Set("dropLocation", t.DropLocation)
	form.Set("date", t.PickupDate.Format(trip.DateLayout))
	if t.TripType == trip.RoundTrip {
		form.Set("returndate", t.ReturnOrPickupDate().Format(trip.DateLayout))
	}
	form.Set("time", t.PickupTime)
	form.Set("tripType", string(t.TripType))
	form.Set("distance", strconv.FormatFloat(sess.DistanceKm, 'f', -1, 64))
	form.Set("days", strconv.Itoa(t.Days()))
	form.Set("name", contact.Name)
	form.Set("email", contact.Email)
	form.Set("phone", contact.Phone)
	form.Set("service", strconv.FormatInt(quote.ServiceCharge.Amount, 10))
	form.Set("gst", strconv.FormatInt(quote.Tax.Amount, 10))
	form.Set("total", strconv.FormatInt(quote.Total.Amount, 10))
	form.Set("driverrate", strconv.FormatInt(quote.DriverAllowance.Amount, 10))
	return form
}

func (s *Service) transition(ctx context.Context, profileID string, from, to Status, detail string) {
	if !CanTransition(from, to) {
		// Transitions are driven by the flow above; a mismatch is a bug.
		s.logger.Error("booking: illegal state transition", "from", from, "to", to)
		return
	}
	s.logEvent(ctx, &Event{
		ProfileID:  profileID,
		FromStatus: from,
		ToStatus:   to,
		Detail:     detail,
		CreatedAt:  time.Now(),
	})
}

func (s *Service) logEvent(ctx context.Context, e *Event) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendEvent(ctx, e); err != nil {
		s.logger.Warn("booking: event log write failed", "err", err)
	}
}
