package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"willowmoon/internal/repository"
	"willowmoon/internal/service"
	"willowmoon/internal/validation"
)

// SubmissionHandler serves the public form endpoints: contact, booking and
// newsletter. Each request runs the same pipeline: CSRF verification
// (middleware, before this handler runs), schema validation collecting all
// field errors, sanitization of flagged free-text fields, then exactly one
// storage mutation.
type SubmissionHandler struct {
	bookingService *service.BookingService
	subscriberRepo *repository.SubscriberRepository
	emailService   *service.EmailService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(bookingService *service.BookingService, subscriberRepo *repository.SubscriberRepository, emailService *service.EmailService) *SubmissionHandler {
	return &SubmissionHandler{
		bookingService: bookingService,
		subscriberRepo: subscriberRepo,
		emailService:   emailService,
	}
}

// Contact handles POST /api/contact
func (h *SubmissionHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var input validation.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, errs := validation.ParseContact(input)
	if errs != nil {
		respondValidationFailed(w, errs)
		return
	}

	msg, err := h.bookingService.CreateContactMessage(record)
	if err != nil {
		respondServerError(w, "Error storing contact message", err)
		return
	}

	if record.Newsletter {
		if _, _, err := h.subscriberRepo.Subscribe(record.Email); err != nil {
			// The message itself is stored; don't fail the submission
			log.Printf("Error subscribing %s from contact form: %v", record.Email, err)
		}
	}

	if err := h.emailService.SendContactNotification(r.Context(), msg); err != nil {
		log.Printf("Error sending contact notification: %v", err)
	}

	respondSuccess(w, "Thank you for your message. We'll be in touch soon.")
}

// Booking handles POST /api/bookings
func (h *SubmissionHandler) Booking(w http.ResponseWriter, r *http.Request) {
	var input validation.BookingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, errs := validation.ParseBooking(input)
	if errs != nil {
		respondValidationFailed(w, errs)
		return
	}

	booking, err := h.bookingService.CreateBooking(record)
	if err != nil {
		if errors.Is(err, service.ErrFullyBooked) {
			respondValidationFailed(w, validation.Errors{
				{Field: "date", Message: "no remaining capacity for this date"},
			})
			return
		}
		respondServerError(w, "Error storing booking", err)
		return
	}

	if err := h.emailService.SendBookingReceived(r.Context(), booking); err != nil {
		log.Printf("Error sending booking email for %s: %v", booking.Reference, err)
	}

	respondSuccess(w, "Booking request received. Your reference is "+booking.Reference+".")
}

// Newsletter handles POST /api/newsletter
func (h *SubmissionHandler) Newsletter(w http.ResponseWriter, r *http.Request) {
	var input validation.NewsletterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, errs := validation.ParseNewsletter(input)
	if errs != nil {
		respondValidationFailed(w, errs)
		return
	}

	_, created, err := h.subscriberRepo.Subscribe(record.Email)
	if err != nil {
		respondServerError(w, "Error storing subscriber", err)
		return
	}

	if created {
		if err := h.emailService.SendNewsletterWelcome(r.Context(), record.Email); err != nil {
			log.Printf("Error sending newsletter welcome to %s: %v", record.Email, err)
		}
	}

	respondSuccess(w, "You're subscribed. Welcome!")
}

// Unsubscribe handles POST /api/newsletter/unsubscribe. The response doesn't
// reveal whether the address was subscribed.
func (h *SubmissionHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var input validation.NewsletterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, errs := validation.ParseNewsletter(input)
	if errs != nil {
		respondValidationFailed(w, errs)
		return
	}

	if _, err := h.subscriberRepo.Unsubscribe(record.Email); err != nil {
		respondServerError(w, "Error unsubscribing", err)
		return
	}

	respondSuccess(w, "You've been unsubscribed.")
}
