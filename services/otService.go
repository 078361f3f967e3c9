package services

import (
	"context"
	"errors"
	"fmt"

	"GautamiHMS/models"
)

var ErrBookingNotFound = errors.New("OT booking not found")

type OTStore interface {
	Create(ctx context.Context, booking *models.OTBooking) error
	GetByID(ctx context.Context, id string) (*models.OTBooking, error)
	ListByDate(ctx context.Context, dateKey string) ([]models.OTBooking, error)
	Update(ctx context.Context, booking *models.OTBooking) error
	SetStatus(ctx context.Context, id, status string) error
}

type OTCounter interface {
	AdjustOT(ctx context.Context, dateKey string, delta int64) error
}

// OTService manages operation-theatre bookings. The OT counter moves
// exactly once when a booking is created and once when it is
// cancelled; edits to an existing booking never touch it.
type OTService struct {
	bookings OTStore
	counter  OTCounter
}

func NewOTService(bookings OTStore, counter OTCounter) *OTService {
	return &OTService{bookings: bookings, counter: counter}
}

func (s *OTService) Create(ctx context.Context, booking *models.OTBooking) error {
	booking.DateKey = dayOf(booking.DateKey)
	if err := s.bookings.Create(ctx, booking); err != nil {
		return err
	}
	if err := s.counter.AdjustOT(ctx, booking.DateKey, 1); err != nil {
		return fmt.Errorf("booking created but counter not adjusted: %w", err)
	}
	return nil
}

func (s *OTService) GetByID(ctx context.Context, id string) (*models.OTBooking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *OTService) ListByDate(ctx context.Context, dateKey string) ([]models.OTBooking, error) {
	return s.bookings.ListByDate(ctx, dayOf(dateKey))
}

// Update rewrites the booking details. The counter already accounts
// for this record, so no adjustment happens here.
func (s *OTService) Update(ctx context.Context, booking *models.OTBooking) error {
	existing, err := s.bookings.GetByID(ctx, booking.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrBookingNotFound
	}
	booking.DateKey = existing.DateKey
	return s.bookings.Update(ctx, booking)
}

// Cancel marks the booking cancelled and takes it back out of the
// day's counter, clamped at zero on the summary side.
func (s *OTService) Cancel(ctx context.Context, id string) error {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.Status == models.OTCancelled {
		return nil
	}
	if err := s.bookings.SetStatus(ctx, id, models.OTCancelled); err != nil {
		return err
	}
	if err := s.counter.AdjustOT(ctx, booking.DateKey, -1); err != nil {
		return fmt.Errorf("booking cancelled but counter not adjusted: %w", err)
	}
	return nil
}
