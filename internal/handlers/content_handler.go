package handlers

import (
	"net/http"

	"willowmoon/internal/repository"
	"willowmoon/internal/service"
)

// ContentHandler serves the public, read-only content API
type ContentHandler struct {
	contentService *service.ContentService
	eventRepo      *repository.EventRepository
	ritualRepo     *repository.RitualRepository
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *service.ContentService, eventRepo *repository.EventRepository, ritualRepo *repository.RitualRepository) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		eventRepo:      eventRepo,
		ritualRepo:     ritualRepo,
	}
}

// ListEvents handles GET /api/events
func (h *ContentHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventRepo.ListEvents(true)
	if err != nil {
		respondServerError(w, "Error listing events", err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/events/{slug}
func (h *ContentHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventRepo.GetEventBySlug(r.PathValue("slug"))
	if err != nil {
		respondServerError(w, "Error getting event", err)
		return
	}
	if event == nil || !event.Published {
		respondError(w, http.StatusNotFound, "Event not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// ListRituals handles GET /api/rituals
func (h *ContentHandler) ListRituals(w http.ResponseWriter, r *http.Request) {
	rituals, err := h.ritualRepo.ListRituals(true)
	if err != nil {
		respondServerError(w, "Error listing rituals", err)
		return
	}
	writeJSON(w, http.StatusOK, rituals)
}

// GetRitual handles GET /api/rituals/{slug}
func (h *ContentHandler) GetRitual(w http.ResponseWriter, r *http.Request) {
	ritual, err := h.ritualRepo.GetRitualBySlug(r.PathValue("slug"))
	if err != nil {
		respondServerError(w, "Error getting ritual", err)
		return
	}
	if ritual == nil || !ritual.Published {
		respondError(w, http.StatusNotFound, "Ritual not found")
		return
	}
	writeJSON(w, http.StatusOK, ritual)
}

// ListJournal handles GET /api/journal
func (h *ContentHandler) ListJournal(w http.ResponseWriter, r *http.Request) {
	posts, err := h.contentService.ListPublishedPosts()
	if err != nil {
		respondServerError(w, "Error listing journal posts", err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// GetJournalPost handles GET /api/journal/{slug}
func (h *ContentHandler) GetJournalPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.contentService.GetPublishedPost(r.PathValue("slug"))
	if err != nil {
		respondServerError(w, "Error getting journal post", err)
		return
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// GetPage handles GET /api/pages/{slug}
func (h *ContentHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.contentService.GetPublishedPage(r.PathValue("slug"))
	if err != nil {
		respondServerError(w, "Error getting page", err)
		return
	}
	if page == nil {
		respondError(w, http.StatusNotFound, "Page not found")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetPageContent handles GET /api/page-content/{key}
func (h *ContentHandler) GetPageContent(w http.ResponseWriter, r *http.Request) {
	content, err := h.contentService.GetPageContent(r.PathValue("key"))
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
