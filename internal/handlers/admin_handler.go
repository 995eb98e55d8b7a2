package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"willowmoon/internal/models"
	"willowmoon/internal/repository"
	"willowmoon/internal/sanitize"
	"willowmoon/internal/service"
	"willowmoon/internal/validation"
)

// AdminHandler serves the back-office CRUD API. Every route is mounted behind
// RequireAdmin and CSRFProtect.
type AdminHandler struct {
	eventRepo      *repository.EventRepository
	ritualRepo     *repository.RitualRepository
	journalRepo    *repository.JournalRepository
	pageRepo       *repository.PageRepository
	subscriberRepo *repository.SubscriberRepository
	bookingService *service.BookingService
	emailService   *service.EmailService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	eventRepo *repository.EventRepository,
	ritualRepo *repository.RitualRepository,
	journalRepo *repository.JournalRepository,
	pageRepo *repository.PageRepository,
	subscriberRepo *repository.SubscriberRepository,
	bookingService *service.BookingService,
	emailService *service.EmailService,
) *AdminHandler {
	return &AdminHandler{
		eventRepo:      eventRepo,
		ritualRepo:     ritualRepo,
		journalRepo:    journalRepo,
		pageRepo:       pageRepo,
		subscriberRepo: subscriberRepo,
		bookingService: bookingService,
		emailService:   emailService,
	}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// --- Events ---

// ListEvents handles GET /api/admin/events, including unpublished entries
func (h *AdminHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventRepo.ListEvents(false)
	if err != nil {
		respondServerError(w, "Error listing events", err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// CreateEvent handles POST /api/admin/events
func (h *AdminHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	record, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}

	event, err := h.eventRepo.CreateEvent(record)
	if err != nil {
		respondServerError(w, "Error creating event", err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// UpdateEvent handles PUT /api/admin/events/{id}
func (h *AdminHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	record, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}

	event, err := h.eventRepo.UpdateEvent(id, record)
	if err != nil {
		respondServerError(w, "Error updating event", err)
		return
	}
	if event == nil {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /api/admin/events/{id}
func (h *AdminHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	deleted, err := h.eventRepo.DeleteEvent(id)
	if err != nil {
		respondServerError(w, "Error deleting event", err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}
	respondSuccess(w, "Event deleted")
}

func (h *AdminHandler) decodeEvent(w http.ResponseWriter, r *http.Request) (*models.Event, bool) {
	var input validation.EventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	record, errs := validation.ParseEvent(input)
	if errs != nil {
		respondValidationFailed(w, errs)
		return nil, false
	}

	return &models.Event{
		Title:       sanitize.Text(record.Title),
		Slug:        record.Slug,
		Description: sanitize.Text(record.Description),
		Date:        record.Date,
		Time:        record.Time,
		Location:    sanitize.Text(record.Location),
		ImageURL:    record.Image,
		Price:       record.Price,
		Capacity:    record.Capacity,
		Published:   record.Published,
	}, true
}

// --- Rituals ---

// ListRituals handles GET /api/admin/rituals, including unpublished entries
func (h *AdminHandler) ListRituals(w http.ResponseWriter, r *http.Request) {
	rituals, err := h.ritualRepo.ListRituals(false)
	if err != nil {
		respondServerError(w, "Error listing rituals", err)
		return
	}
	writeJSON(w, http.StatusOK, rituals)
}

// CreateRitual handles POST /api/admin/rituals
func (h *AdminHandler) CreateRitual(w http.ResponseWriter, r *http.Request) {
	record, ok := h.decodeRitual(w, r)
	if !ok {
		return
	}

	ritual, err := h.ritualRepo.CreateRitual(record)
	if err != nil {
		respondServerError(w, "Error creating ritual", err)
		return
	}
	writeJSON(w, http.StatusCreated, ritual)
}

// UpdateRitual handles PUT /api/admin/rituals/{id}
func (h *AdminHandler) UpdateRitual(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid ritual ID")
		return
	}

	record, ok := h.decodeRitual(w, r)
	if !ok {
		return
	}

	ritual, err := h.ritualRepo.UpdateRitual(id, record)
	if err != nil {
		respondServerError(w, "Error updating ritual", err)
		return
	}
	if ritual == nil {
		respondError(w, http.StatusNotFound, "Ritual not found")
		return
	}
	writeJSON(w, http.StatusOK, ritual)
}

// DeleteRitual handles DELETE /api/admin/rituals/{id}
func (h *AdminHandler) DeleteRitual(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid ritual ID")
		return
	}

	deleted, err := h.ritualRepo.DeleteRitual(id)
	if err != nil {
		respondServerError(w, "Error deleting ritual", err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Ritual not found")
		return
	}
	respondSuccess(w, "Ritual deleted")
}

func (h *AdminHandler) decodeRitual(w http.ResponseWriter, r *http.Request) (*models.Ritual, bool) {
	var input validation.RitualInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	record, errs := validation.ParseRitual(input)
	if errs != nil {
		respondValidationFailed(w, errs)
		return nil, false
	}

	return &models.Ritual{
		Title:       sanitize.Text(record.Title),
		Slug:        record.Slug,
		Description: sanitize.Text(record.Description),
		Duration:    record.Duration,
		ImageURL:    record.Image,
		Price:       record.Price,
		Published:   record.Published,
	}, true
}

// --- Journal ---

// ListJournal handles GET /api/admin/journal, including unpublished posts
func (h *AdminHandler) ListJournal(w http.ResponseWriter, r *http.Request) {
	posts, err := h.journalRepo.ListPosts(false)
	if err != nil {
		respondServerError(w, "Error listing journal posts", err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// CreateJournalPost handles POST /api/admin/journal
func (h *AdminHandler) CreateJournalPost(w http.ResponseWriter, r *http.Request) {
	record, ok := h.decodeJournalPost(w, r)
	if !ok {
		return
	}

	post, err := h.journalRepo.CreatePost(record)
	if err != nil {
		respondServerError(w, "Error creating journal post", err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// UpdateJournalPost handles PUT /api/admin/journal/{id}
func (h *AdminHandler) UpdateJournalPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	record, ok := h.decodeJournalPost(w, r)
	if !ok {
		return
	}

	post, err := h.journalRepo.UpdatePost(id, record)
	if err != nil {
		respondServerError(w, "Error updating journal post", err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// DeleteJournalPost handles DELETE /api/admin/journal/{id}
func (h *AdminHandler) DeleteJournalPost(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	deleted, err := h.journalRepo.DeletePost(id)
	if err != nil {
		respondServerError(w, "Error deleting journal post", err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	respondSuccess(w, "Post deleted")
}

func (h *AdminHandler) decodeJournalPost(w http.ResponseWriter, r *http.Request) (*models.JournalPost, bool) {
	var input validation.JournalPostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	record, errs := validation.ParseJournalPost(input)
	if errs != nil {
		respondValidationFailed(w, errs)
		return nil, false
	}

	// The body is markdown; it is sanitized at render time, not here
	return &models.JournalPost{
		Title:     sanitize.Text(record.Title),
		Slug:      record.Slug,
		Excerpt:   sanitize.Text(record.Excerpt),
		Body:      record.Body,
		ImageURL:  record.Image,
		Published: record.Published,
	}, true
}

// --- Standalone pages ---

// ListPages handles GET /api/admin/pages, including unpublished pages
func (h *AdminHandler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.pageRepo.ListPages(false)
	if err != nil {
		respondServerError(w, "Error listing pages", err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

// CreatePage handles POST /api/admin/pages
func (h *AdminHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	record, ok := h.decodePage(w, r)
	if !ok {
		return
	}

	page, err := h.pageRepo.CreatePage(record)
	if err != nil {
		respondServerError(w, "Error creating page", err)
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

// UpdatePage handles PUT /api/admin/pages/{id}
func (h *AdminHandler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid page ID")
		return
	}

	record, ok := h.decodePage(w, r)
	if !ok {
		return
	}

	page, err := h.pageRepo.UpdatePage(id, record)
	if err != nil {
		respondServerError(w, "Error updating page", err)
		return
	}
	if page == nil {
		respondError(w, http.StatusNotFound, "Page not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// DeletePage handles DELETE /api/admin/pages/{id}
func (h *AdminHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid page ID")
		return
	}

	deleted, err := h.pageRepo.DeletePage(id)
	if err != nil {
		respondServerError(w, "Error deleting page", err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Page not found")
		return
	}
	respondSuccess(w, "Page deleted")
}

func (h *AdminHandler) decodePage(w http.ResponseWriter, r *http.Request) (*models.StandalonePage, bool) {
	var input validation.StandalonePageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}

	record, errs := validation.ParseStandalonePage(input)
	if errs != nil {
		respondValidationFailed(w, errs)
		return nil, false
	}

	// The body is markdown; it is sanitized at render time, not here
	return &models.StandalonePage{
		Title:     sanitize.Text(record.Title),
		Slug:      record.Slug,
		Body:      record.Body,
		Published: record.Published,
	}, true
}

// --- Page content ---

// GetPageContent handles GET /api/admin/page-content/{key}
func (h *AdminHandler) GetPageContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.pageRepo.GetPageContent(r.PathValue("key"))
	if err != nil {
		respondServerError(w, "Error getting page content", err)
		return
	}
	if content == nil {
		respondError(w, http.StatusNotFound, "Page content not found")
		return
	}
	writeJSON(w, http.StatusOK, content)
}

// UpsertPageContent handles PUT /api/admin/page-content/{key}
func (h *AdminHandler) UpsertPageContent(w http.ResponseWriter, r *http.Request) {
	var input validation.PageContentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, errs := validation.ParsePageContent(input)
	if errs != nil {
		respondValidationFailed(w, errs)
		return
	}

	blocks := make([]models.ContentBlock, len(record.Blocks))
	for i, block := range record.Blocks {
		blocks[i] = models.ContentBlock{Name: block.Name, Content: block.Content}
	}

	content, err := h.pageRepo.UpsertPageContent(r.PathValue("key"), record.Content, blocks)
	if err != nil {
		respondServerError(w, "Error saving page content", err)
		return
	}
	writeJSON(w, http.StatusOK, content)
}

// --- Bookings ---

// ListBookings handles GET /api/admin/bookings with an optional ?status filter
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	switch status {
	case "", models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled:
	default:
		respondError(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	bookings, err := h.bookingService.ListBookings(status)
	if err != nil {
		respondServerError(w, "Error listing bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// ConfirmBooking handles POST /api/admin/bookings/{id}/confirm
func (h *AdminHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.ConfirmBooking(id)
	if err != nil {
		respondServerError(w, "Error confirming booking", err)
		return
	}
	if booking == nil {
		respondError(w, http.StatusNotFound, "Booking not found")
		return
	}

	if err := h.emailService.SendBookingConfirmed(r.Context(), booking); err != nil {
		log.Printf("Error sending confirmation email for %s: %v", booking.Reference, err)
	}

	writeJSON(w, http.StatusOK, booking)
}

// CancelBooking handles POST /api/admin/bookings/{id}/cancel
func (h *AdminHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.CancelBooking(id)
	if err != nil {
		respondServerError(w, "Error cancelling booking", err)
		return
	}
	if booking == nil {
		respondError(w, http.StatusNotFound, "Booking not found")
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// --- Subscribers ---

// ListSubscribers handles GET /api/admin/subscribers
func (h *AdminHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.subscriberRepo.ListActive()
	if err != nil {
		respondServerError(w, "Error listing subscribers", err)
		return
	}
	writeJSON(w, http.StatusOK, subscribers)
}
