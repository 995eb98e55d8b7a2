package service

import (
	"errors"
	"fmt"

	"willowmoon/internal/credentials"
	"willowmoon/internal/models"
	"willowmoon/internal/repository"
	"willowmoon/internal/sanitize"
	"willowmoon/internal/validation"
)

var ErrFullyBooked = errors.New("no remaining capacity for this date")

// BookingService turns validated booking and contact submissions into stored
// records: free-text fields are sanitized, the total price and a booking
// reference are derived server-side, and the status starts at pending.
type BookingService struct {
	bookingRepo *repository.BookingRepository
	eventRepo   *repository.EventRepository
	ritualRepo  *repository.RitualRepository
}

// NewBookingService creates a new booking service
func NewBookingService(bookingRepo *repository.BookingRepository, eventRepo *repository.EventRepository, ritualRepo *repository.RitualRepository) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		eventRepo:   eventRepo,
		ritualRepo:  ritualRepo,
	}
}

// CreateBooking stores a validated booking request
func (s *BookingService) CreateBooking(req *validation.Booking) (*models.Booking, error) {
	unitPrice, capacity, err := s.lookupService(req.Service)
	if err != nil {
		return nil, err
	}

	if capacity > 0 {
		booked, err := s.bookingRepo.CountBookedParticipants(req.Service, req.Date)
		if err != nil {
			return nil, err
		}
		if booked+req.Participants > capacity {
			return nil, ErrFullyBooked
		}
	}

	reference, err := uniqueBookingReference(func(ref string) (bool, error) {
		existing, err := s.bookingRepo.GetBookingByReference(ref)
		if err != nil {
			return false, err
		}
		return existing != nil, nil
	})
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Reference:    reference,
		Service:      req.Service,
		Date:         req.Date,
		Time:         req.Time,
		Participants: req.Participants,
		Name:         sanitize.Text(req.Name),
		Email:        req.Email,
		Phone:        req.Phone,
		Notes:        sanitize.Text(req.Notes),
		Status:       models.BookingStatusPending,
		TotalPrice:   unitPrice * float64(req.Participants),
	}

	return s.bookingRepo.CreateBooking(booking)
}

const maxReferenceAttempts = 10

// uniqueBookingReference draws references until taken reports one free. The
// reference space is small enough that repeats show up at realistic booking
// volumes, so a collision is retried rather than surfaced as a storage error.
func uniqueBookingReference(taken func(string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference, err := credentials.GenerateBookingReference()
		if err != nil {
			return "", fmt.Errorf("failed to generate booking reference: %w", err)
		}
		exists, err := taken(reference)
		if err != nil {
			return "", err
		}
		if !exists {
			return reference, nil
		}
	}
	return "", errors.New("could not allocate a unique booking reference")
}

// CreateContactMessage stores a validated contact submission
func (s *BookingService) CreateContactMessage(req *validation.Contact) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:       sanitize.Text(req.Name),
		Email:      req.Email,
		Phone:      req.Phone,
		Subject:    sanitize.Text(req.Subject),
		Message:    sanitize.Text(req.Message),
		Newsletter: req.Newsletter,
	}
	return s.bookingRepo.CreateContactMessage(msg)
}

// ConfirmBooking transitions a booking to confirmed
func (s *BookingService) ConfirmBooking(id int64) (*models.Booking, error) {
	return s.setStatus(id, models.BookingStatusConfirmed)
}

// CancelBooking transitions a booking to cancelled
func (s *BookingService) CancelBooking(id int64) (*models.Booking, error) {
	return s.setStatus(id, models.BookingStatusCancelled)
}

// ListBookings retrieves bookings, optionally filtered by status
func (s *BookingService) ListBookings(status string) ([]models.Booking, error) {
	return s.bookingRepo.ListBookings(status)
}

// GetBooking retrieves a booking by ID, returning nil when not found
func (s *BookingService) GetBooking(id int64) (*models.Booking, error) {
	return s.bookingRepo.GetBookingByID(id)
}

func (s *BookingService) setStatus(id int64, status string) (*models.Booking, error) {
	updated, err := s.bookingRepo.UpdateBookingStatus(id, status)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, nil
	}
	return s.bookingRepo.GetBookingByID(id)
}

// lookupService resolves a service name to its unit price and capacity.
// Bookings may reference an event slug or a ritual slug; unknown services
// book at price zero with no capacity limit, and the studio follows up
// manually.
func (s *BookingService) lookupService(service string) (price float64, capacity int, err error) {
	event, err := s.eventRepo.GetEventBySlug(service)
	if err != nil {
		return 0, 0, err
	}
	if event != nil {
		return event.Price, event.Capacity, nil
	}

	ritual, err := s.ritualRepo.GetRitualBySlug(service)
	if err != nil {
		return 0, 0, err
	}
	if ritual != nil {
		return ritual.Price, 0, nil
	}

	return 0, 0, nil
}
