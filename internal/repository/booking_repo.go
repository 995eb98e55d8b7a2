package repository

import (
	"database/sql"
	"fmt"

	"willowmoon/internal/database"
	"willowmoon/internal/models"
)

// BookingRepository handles database operations for bookings and
// contact messages
type BookingRepository struct {
	db *database.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *database.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = "id, reference, service, booking_date, booking_time, participants, name, email, phone, notes, status, total_price, created_at, updated_at"

// CreateBooking inserts a new booking and returns it with its assigned ID
func (r *BookingRepository) CreateBooking(booking *models.Booking) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (reference, service, booking_date, booking_time, participants, name, email, phone, notes, status, total_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		booking.Reference, booking.Service, booking.Date, booking.Time,
		booking.Participants, booking.Name, booking.Email, booking.Phone,
		booking.Notes, booking.Status, booking.TotalPrice,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return r.GetBookingByID(id)
}

// GetBookingByID retrieves a booking by ID, returning nil when not found
func (r *BookingRepository) GetBookingByID(id int64) (*models.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings WHERE id = ?"
	booking := &models.Booking{}
	err := r.db.QueryRow(query, id).Scan(
		&booking.ID, &booking.Reference, &booking.Service, &booking.Date,
		&booking.Time, &booking.Participants, &booking.Name, &booking.Email,
		&booking.Phone, &booking.Notes, &booking.Status, &booking.TotalPrice,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// GetBookingByReference retrieves a booking by its reference, returning nil
// when not found
func (r *BookingRepository) GetBookingByReference(reference string) (*models.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings WHERE reference = ?"
	booking := &models.Booking{}
	err := r.db.QueryRow(query, reference).Scan(
		&booking.ID, &booking.Reference, &booking.Service, &booking.Date,
		&booking.Time, &booking.Participants, &booking.Name, &booking.Email,
		&booking.Phone, &booking.Notes, &booking.Status, &booking.TotalPrice,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// ListBookings retrieves bookings, newest first, optionally filtered by status
func (r *BookingRepository) ListBookings(status string) ([]models.Booking, error) {
	query := "SELECT " + bookingColumns + " FROM bookings"
	var args []interface{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var booking models.Booking
		if err := rows.Scan(
			&booking.ID, &booking.Reference, &booking.Service, &booking.Date,
			&booking.Time, &booking.Participants, &booking.Name, &booking.Email,
			&booking.Phone, &booking.Notes, &booking.Status, &booking.TotalPrice,
			&booking.CreatedAt, &booking.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}

// UpdateBookingStatus transitions a booking to a new status, reporting
// whether the booking existed
func (r *BookingRepository) UpdateBookingStatus(id int64, status string) (bool, error) {
	query := "UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	result, err := r.db.Exec(query, status, id)
	if err != nil {
		return false, fmt.Errorf("failed to update booking status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check update result: %w", err)
	}
	return affected > 0, nil
}

// CountBookedParticipants sums participants across non-cancelled bookings
// for a service on a given date, for capacity checks
func (r *BookingRepository) CountBookedParticipants(service, date string) (int, error) {
	query := `
		SELECT COALESCE(SUM(participants), 0)
		FROM bookings
		WHERE service = ? AND booking_date = ? AND status != ?
	`
	var total int
	err := r.db.QueryRow(query, service, date, models.BookingStatusCancelled).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count booked participants: %w", err)
	}
	return total, nil
}

// CreateContactMessage stores a contact form submission
func (r *BookingRepository) CreateContactMessage(msg *models.ContactMessage) (*models.ContactMessage, error) {
	query := `
		INSERT INTO contact_messages (name, email, phone, subject, message, newsletter)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message, msg.Newsletter,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact message: %w", err)
	}

	query = "SELECT id, name, email, phone, subject, message, newsletter, created_at FROM contact_messages WHERE id = ?"
	stored := &models.ContactMessage{}
	err = r.db.QueryRow(query, id).Scan(
		&stored.ID, &stored.Name, &stored.Email, &stored.Phone,
		&stored.Subject, &stored.Message, &stored.Newsletter, &stored.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact message: %w", err)
	}
	return stored, nil
}
