package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"willowmoon/internal/database"
	"willowmoon/internal/models"
	"willowmoon/internal/repository"
)

// BackupData is the complete studio dataset as exported to JSON
type BackupData struct {
	Version     string                  `json:"version"`
	ExportedAt  time.Time               `json:"exported_at"`
	Events      []models.Event          `json:"events"`
	Rituals     []models.Ritual         `json:"rituals"`
	Posts       []models.JournalPost    `json:"journal_posts"`
	Pages       []models.StandalonePage `json:"standalone_pages"`
	Bookings    []models.Booking        `json:"bookings"`
	Subscribers []models.Subscriber     `json:"newsletter_subscribers"`
}

// BackupService exports and imports the studio's content and bookings
type BackupService struct {
	db          *database.DB
	eventRepo   *repository.EventRepository
	ritualRepo  *repository.RitualRepository
	journalRepo *repository.JournalRepository
	pageRepo    *repository.PageRepository
	bookingRepo *repository.BookingRepository
	subRepo     *repository.SubscriberRepository
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{
		db:          db,
		eventRepo:   repository.NewEventRepository(db),
		ritualRepo:  repository.NewRitualRepository(db),
		journalRepo: repository.NewJournalRepository(db),
		pageRepo:    repository.NewPageRepository(db),
		bookingRepo: repository.NewBookingRepository(db),
		subRepo:     repository.NewSubscriberRepository(db),
	}
}

// Export writes the full dataset as JSON
func (s *BackupService) Export(w io.Writer) error {
	data := BackupData{
		Version:    "1",
		ExportedAt: time.Now().UTC(),
	}

	var err error
	if data.Events, err = s.eventRepo.ListEvents(false); err != nil {
		return fmt.Errorf("failed to export events: %w", err)
	}
	if data.Rituals, err = s.ritualRepo.ListRituals(false); err != nil {
		return fmt.Errorf("failed to export rituals: %w", err)
	}
	if data.Posts, err = s.journalRepo.ListPosts(false); err != nil {
		return fmt.Errorf("failed to export journal posts: %w", err)
	}
	if data.Pages, err = s.pageRepo.ListPages(false); err != nil {
		return fmt.Errorf("failed to export pages: %w", err)
	}
	if data.Bookings, err = s.bookingRepo.ListBookings(""); err != nil {
		return fmt.Errorf("failed to export bookings: %w", err)
	}
	if data.Subscribers, err = s.subRepo.ListActive(); err != nil {
		return fmt.Errorf("failed to export subscribers: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportToFile writes the full dataset to a JSON file
func (s *BackupService) ExportToFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()
	return s.Export(file)
}

// Import reads a JSON backup and inserts its records. Existing rows are left
// in place; slugs and references that collide are skipped with a count.
func (s *BackupService) Import(r io.Reader) (int, error) {
	var data BackupData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return 0, fmt.Errorf("failed to decode backup: %w", err)
	}

	imported := 0

	for i := range data.Events {
		existing, err := s.eventRepo.GetEventBySlug(data.Events[i].Slug)
		if err != nil {
			return imported, err
		}
		if existing != nil {
			continue
		}
		if _, err := s.eventRepo.CreateEvent(&data.Events[i]); err != nil {
			return imported, err
		}
		imported++
	}

	for i := range data.Rituals {
		existing, err := s.ritualRepo.GetRitualBySlug(data.Rituals[i].Slug)
		if err != nil {
			return imported, err
		}
		if existing != nil {
			continue
		}
		if _, err := s.ritualRepo.CreateRitual(&data.Rituals[i]); err != nil {
			return imported, err
		}
		imported++
	}

	for i := range data.Posts {
		existing, err := s.journalRepo.GetPostBySlug(data.Posts[i].Slug)
		if err != nil {
			return imported, err
		}
		if existing != nil {
			continue
		}
		if _, err := s.journalRepo.CreatePost(&data.Posts[i]); err != nil {
			return imported, err
		}
		imported++
	}

	for i := range data.Pages {
		existing, err := s.pageRepo.GetPageBySlug(data.Pages[i].Slug)
		if err != nil {
			return imported, err
		}
		if existing != nil {
			continue
		}
		if _, err := s.pageRepo.CreatePage(&data.Pages[i]); err != nil {
			return imported, err
		}
		imported++
	}

	for i := range data.Bookings {
		existing, err := s.bookingRepo.GetBookingByReference(data.Bookings[i].Reference)
		if err != nil {
			return imported, err
		}
		if existing != nil {
			continue
		}
		if _, err := s.bookingRepo.CreateBooking(&data.Bookings[i]); err != nil {
			return imported, err
		}
		imported++
	}

	for i := range data.Subscribers {
		if _, _, err := s.subRepo.Subscribe(data.Subscribers[i].Email); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

// ImportFromFile reads a JSON backup file and inserts its records
func (s *BackupService) ImportFromFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()
	return s.Import(file)
}
