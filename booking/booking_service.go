package booking

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/arch1tect/dj-booking-backend/notify"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type BookingRepository interface {
	GetBookings(ctx context.Context) ([]Booking, error)
	GetBookingByID(ctx context.Context, id string) (Booking, error)
	// InsertBooking atomically reserves the booking's date and persists it,
	// returning ErrDateAlreadyBooked when an active booking holds the date.
	InsertBooking(ctx context.Context, booking Booking) (Booking, error)
	SetBookingStatus(ctx context.Context, id string, status string) error
}

const bookedDatesKey = "bookedDates"

type Service struct {
	repo     BookingRepository
	notifier notify.Notifier
	dates    *cache.Cache
	logger   *slog.Logger
}

func NewService(repo BookingRepository, notifier notify.Notifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		dates:    cache.New(30*time.Second, 5*time.Minute),
		logger:   slog.Default().With("component", "booking"),
	}
}

// ListBookings returns every stored booking in insertion order. A storage
// read failure is logged and yields an empty list, the caller is not failed.
func (s *Service) ListBookings(ctx context.Context) []Booking {
	bookings, err := s.repo.GetBookings(ctx)

	if err != nil {
		s.logger.Error("failed to read bookings", "err", err)
		return []Booking{}
	}

	if bookings == nil {
		return []Booking{}
	}

	return bookings
}

// ListBookedDates returns the dates held by pending or confirmed bookings,
// for the calendar widget to mark unavailable. Results are cached briefly
// and the cache is flushed on every write.
func (s *Service) ListBookedDates(ctx context.Context) []string {
	if cached, found := s.dates.Get(bookedDatesKey); found {
		return cached.([]string)
	}

	dates := []string{}

	for _, b := range s.ListBookings(ctx) {
		if b.Active() {
			dates = append(dates, b.Date)
		}
	}

	s.dates.Set(bookedDatesKey, dates, cache.DefaultExpiration)

	return dates
}

func (s *Service) CreateBooking(ctx context.Context, candidate Booking) (Booking, error) {
	if err := Validate(candidate); err != nil {
		return Booking{}, err
	}

	candidate.ID = uuid.NewString()
	candidate.Status = StatusPending
	candidate.CreatedAt = time.Now().UTC()

	inserted, err := s.repo.InsertBooking(ctx, candidate)

	if err != nil {
		return Booking{}, err
	}

	s.dates.Flush()
	s.sendNotification(ctx, inserted, "New Booking Request :calendar:")

	return inserted, nil
}

func (s *Service) ConfirmBooking(ctx context.Context, id string) error {
	booking, err := s.repo.GetBookingByID(ctx, id)

	if err != nil {
		return err
	}

	if booking.Status != StatusPending {
		return ErrInvalidBookingState
	}

	err = s.repo.SetBookingStatus(ctx, id, StatusConfirmed)

	if err == nil {
		s.dates.Flush()
		booking.Status = StatusConfirmed
		s.sendNotification(ctx, booking, "Booking Confirmed :white_check_mark:")
	}

	return err
}

func (s *Service) CancelBooking(ctx context.Context, id string) error {
	booking, err := s.repo.GetBookingByID(ctx, id)

	if err != nil {
		return err
	}

	if booking.Status == StatusCancelled {
		return ErrInvalidBookingState
	}

	err = s.repo.SetBookingStatus(ctx, id, StatusCancelled)

	if err == nil {
		s.dates.Flush()
		booking.Status = StatusCancelled
		s.sendNotification(ctx, booking, "Booking Cancelled :no_entry:")
	}

	return err
}

func (s *Service) sendNotification(ctx context.Context, booking Booking, title string) {
	if s.notifier == nil {
		return
	}

	venue := booking.Venue

	if len(booking.City) != 0 {
		venue = venue + ", " + booking.City
	}

	event := notify.Event{
		Title: title,
		Fields: []notify.Field{
			{Name: "Date", Value: booking.Date},
			{Name: "Name", Value: booking.Name},
			{Name: "Email", Value: booking.Email},
			{Name: "Event Type", Value: booking.EventType},
			{Name: "Venue", Value: venue},
			{Name: "Guests", Value: strconv.Itoa(booking.Guests)},
		},
	}

	if err := s.notifier.Send(ctx, event); err != nil {
		s.logger.Warn("failed to send booking notification", "err", err, "booking", booking.ID)
	}
}
