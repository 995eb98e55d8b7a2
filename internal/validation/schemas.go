package validation

import (
	"strconv"
	"strings"
	"time"
)

// Each public form has a raw input struct (the untyped payload as decoded
// from JSON) and a Parse function producing either a fully normalized record
// or the complete list of field errors. Parses are pure: no side effects, and
// identical input yields identical output.

// ContactInput is the raw contact form payload
type ContactInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
	Newsletter bool   `json:"newsletter"`
}

// Contact is a validated, normalized contact submission
type Contact struct {
	Name       string
	Email      string
	Phone      string
	Subject    string
	Message    string
	Newsletter bool
}

// ParseContact validates a contact form payload
func ParseContact(in ContactInput) (*Contact, Errors) {
	var errs Errors

	name := strings.TrimSpace(in.Name)
	if errs.checkLength("name", name, 2, 100) && !nameRegex.MatchString(name) {
		errs.add("name", "name may only contain letters, spaces, hyphens and apostrophes")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	errs.checkEmail("email", email)

	phone := strings.TrimSpace(in.Phone)
	if phone != "" && !phoneRegex.MatchString(phone) {
		errs.add("phone", "phone may only contain digits, spaces and + - ( )")
	}

	subject := strings.TrimSpace(in.Subject)
	errs.checkLength("subject", subject, 5, 200)

	message := strings.TrimSpace(in.Message)
	errs.checkLength("message", message, 10, 5000)

	if len(errs) > 0 {
		return nil, errs
	}

	return &Contact{
		Name:       name,
		Email:      email,
		Phone:      phone,
		Subject:    subject,
		Message:    message,
		Newsletter: in.Newsletter,
	}, nil
}

// BookingInput is the raw booking form payload
type BookingInput struct {
	Service      string `json:"service"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Participants int    `json:"participants"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`
}

// Booking is a validated, normalized booking request
type Booking struct {
	Service      string
	Date         string
	Time         string
	Participants int
	Name         string
	Email        string
	Phone        string
	Notes        string
}

// ParseBooking validates a booking payload. The date must be today or later,
// evaluated against the server clock, never a client-supplied "today".
func ParseBooking(in BookingInput) (*Booking, Errors) {
	var errs Errors

	service := strings.TrimSpace(in.Service)
	errs.checkLength("service", service, 1, 100)

	date := strings.TrimSpace(in.Date)
	if errs.checkDate("date", date) {
		// ISO dates compare correctly as strings
		if date < time.Now().Format("2006-01-02") {
			errs.add("date", "date must not be in the past")
		}
	}

	errs.checkTime("time", strings.TrimSpace(in.Time))

	if in.Participants < 1 || in.Participants > 20 {
		errs.add("participants", "participants must be between 1 and 20")
	}

	name := strings.TrimSpace(in.Name)
	if errs.checkLength("name", name, 2, 100) && !nameRegex.MatchString(name) {
		errs.add("name", "name may only contain letters, spaces, hyphens and apostrophes")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	errs.checkEmail("email", email)

	phone := strings.TrimSpace(in.Phone)
	if phone != "" && !phoneRegex.MatchString(phone) {
		errs.add("phone", "phone may only contain digits, spaces and + - ( )")
	}

	notes := strings.TrimSpace(in.Notes)
	if len([]rune(notes)) > 1000 {
		errs.add("notes", "notes must be at most 1000 characters")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Booking{
		Service:      service,
		Date:         date,
		Time:         strings.TrimSpace(in.Time),
		Participants: in.Participants,
		Name:         name,
		Email:        email,
		Phone:        phone,
		Notes:        notes,
	}, nil
}

// NewsletterInput is the raw newsletter signup payload
type NewsletterInput struct {
	Email string `json:"email"`
}

// Newsletter is a validated newsletter signup
type Newsletter struct {
	Email string
}

// ParseNewsletter validates a newsletter signup payload
func ParseNewsletter(in NewsletterInput) (*Newsletter, Errors) {
	var errs Errors

	email := strings.ToLower(strings.TrimSpace(in.Email))
	errs.checkEmail("email", email)

	if len(errs) > 0 {
		return nil, errs
	}
	return &Newsletter{Email: email}, nil
}

// AdminLoginInput is the raw admin login payload
type AdminLoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin is a validated admin login request
type AdminLogin struct {
	Email    string
	Password string
}

// ParseAdminLogin validates an admin login payload. Password policy is
// length-only; anything stricter belongs to the identity provider.
func ParseAdminLogin(in AdminLoginInput) (*AdminLogin, Errors) {
	var errs Errors

	email := strings.ToLower(strings.TrimSpace(in.Email))
	errs.checkEmail("email", email)

	if n := len(in.Password); n < 8 || n > 100 {
		errs.add("password", "password must be between 8 and 100 characters")
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &AdminLogin{Email: email, Password: in.Password}, nil
}

// EventInput is the raw event payload used by the admin CRUD endpoints
type EventInput struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Capacity    int     `json:"capacity"`
	Published   bool    `json:"published"`
}

// Event is a validated, normalized event record
type Event struct {
	Title       string
	Slug        string
	Description string
	Date        string
	Time        string
	Location    string
	Image       string
	Price       float64
	Capacity    int
	Published   bool
}

// ParseEvent validates an event payload
func ParseEvent(in EventInput) (*Event, Errors) {
	var errs Errors

	title := strings.TrimSpace(in.Title)
	errs.checkLength("title", title, 3, 200)

	slug := strings.TrimSpace(in.Slug)
	if errs.checkLength("slug", slug, 3, 200) && !slugRegex.MatchString(slug) {
		errs.add("slug", "slug may only contain lowercase letters, digits and hyphens")
	}

	description := strings.TrimSpace(in.Description)
	errs.checkLength("description", description, 10, 5000)

	errs.checkDate("date", strings.TrimSpace(in.Date))
	errs.checkTime("time", strings.TrimSpace(in.Time))

	location := strings.TrimSpace(in.Location)
	errs.checkLength("location", location, 3, 200)

	image := strings.TrimSpace(in.Image)
	if image != "" {
		errs.checkURL("image", image)
	}

	if in.Price < 0 || in.Price > 10000 {
		errs.add("price", "price must be between 0 and 10000")
	}
	if in.Capacity < 1 || in.Capacity > 1000 {
		errs.add("capacity", "capacity must be between 1 and 1000")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Event{
		Title:       title,
		Slug:        slug,
		Description: description,
		Date:        strings.TrimSpace(in.Date),
		Time:        strings.TrimSpace(in.Time),
		Location:    location,
		Image:       image,
		Price:       in.Price,
		Capacity:    in.Capacity,
		Published:   in.Published,
	}, nil
}

// RitualInput is the raw ritual payload used by the admin CRUD endpoints
type RitualInput struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Duration    string  `json:"duration"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
	Published   bool    `json:"published"`
}

// Ritual is a validated, normalized ritual record
type Ritual struct {
	Title       string
	Slug        string
	Description string
	Duration    string
	Image       string
	Price       float64
	Published   bool
}

// ParseRitual validates a ritual payload
func ParseRitual(in RitualInput) (*Ritual, Errors) {
	var errs Errors

	title := strings.TrimSpace(in.Title)
	errs.checkLength("title", title, 3, 200)

	slug := strings.TrimSpace(in.Slug)
	if errs.checkLength("slug", slug, 3, 200) && !slugRegex.MatchString(slug) {
		errs.add("slug", "slug may only contain lowercase letters, digits and hyphens")
	}

	description := strings.TrimSpace(in.Description)
	errs.checkLength("description", description, 10, 5000)

	duration := strings.TrimSpace(in.Duration)
	errs.checkLength("duration", duration, 1, 50)

	image := strings.TrimSpace(in.Image)
	if image != "" {
		errs.checkURL("image", image)
	}

	if in.Price < 0 || in.Price > 10000 {
		errs.add("price", "price must be between 0 and 10000")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &Ritual{
		Title:       title,
		Slug:        slug,
		Description: description,
		Duration:    duration,
		Image:       image,
		Price:       in.Price,
		Published:   in.Published,
	}, nil
}

// JournalPostInput is the raw journal post payload
type JournalPostInput struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	Body      string `json:"body"`
	Image     string `json:"image"`
	Published bool   `json:"published"`
}

// JournalPost is a validated, normalized journal post record
type JournalPost struct {
	Title     string
	Slug      string
	Excerpt   string
	Body      string
	Image     string
	Published bool
}

// ParseJournalPost validates a journal post payload. The body is markdown and
// passes through untouched; it is sanitized when rendered, not when stored.
func ParseJournalPost(in JournalPostInput) (*JournalPost, Errors) {
	var errs Errors

	title := strings.TrimSpace(in.Title)
	errs.checkLength("title", title, 3, 200)

	slug := strings.TrimSpace(in.Slug)
	if errs.checkLength("slug", slug, 3, 200) && !slugRegex.MatchString(slug) {
		errs.add("slug", "slug may only contain lowercase letters, digits and hyphens")
	}

	excerpt := strings.TrimSpace(in.Excerpt)
	if len([]rune(excerpt)) > 500 {
		errs.add("excerpt", "excerpt must be at most 500 characters")
	}

	if n := len([]rune(in.Body)); n < 10 || n > 50000 {
		errs.add("body", "body must be between 10 and 50000 characters")
	}

	image := strings.TrimSpace(in.Image)
	if image != "" {
		errs.checkURL("image", image)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &JournalPost{
		Title:     title,
		Slug:      slug,
		Excerpt:   excerpt,
		Body:      in.Body,
		Image:     image,
		Published: in.Published,
	}, nil
}

// StandalonePageInput is the raw standalone page payload
type StandalonePageInput struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

// StandalonePage is a validated, normalized standalone page record
type StandalonePage struct {
	Title     string
	Slug      string
	Body      string
	Published bool
}

// ParseStandalonePage validates a standalone page payload. The body is
// markdown and passes through untouched; it is sanitized when rendered.
func ParseStandalonePage(in StandalonePageInput) (*StandalonePage, Errors) {
	var errs Errors

	title := strings.TrimSpace(in.Title)
	errs.checkLength("title", title, 3, 200)

	slug := strings.TrimSpace(in.Slug)
	if errs.checkLength("slug", slug, 3, 200) && !slugRegex.MatchString(slug) {
		errs.add("slug", "slug may only contain lowercase letters, digits and hyphens")
	}

	if n := len([]rune(in.Body)); n < 10 || n > 50000 {
		errs.add("body", "body must be between 10 and 50000 characters")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &StandalonePage{
		Title:     title,
		Slug:      slug,
		Body:      in.Body,
		Published: in.Published,
	}, nil
}

// PageContentInput is the raw page-content payload
type PageContentInput struct {
	Content string              `json:"content"`
	Blocks  []ContentBlockInput `json:"blocks"`
}

// ContentBlockInput is a raw named content block
type ContentBlockInput struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// PageContent is a validated page-content record
type PageContent struct {
	Content string
	Blocks  []ContentBlock
}

// ContentBlock is a validated named content block
type ContentBlock struct {
	Name    string
	Content string
}

// ParsePageContent validates a page-content payload
func ParsePageContent(in PageContentInput) (*PageContent, Errors) {
	var errs Errors

	if len([]rune(in.Content)) > 50000 {
		errs.add("content", "content must be at most 50000 characters")
	}

	blocks := make([]ContentBlock, 0, len(in.Blocks))
	for i, block := range in.Blocks {
		name := strings.TrimSpace(block.Name)
		field := "blocks[" + strconv.Itoa(i) + "]"
		if name == "" {
			errs.add(field+".name", "block name is required")
		}
		if len([]rune(block.Content)) > 10000 {
			errs.add(field+".content", "block content must be at most 10000 characters")
		}
		blocks = append(blocks, ContentBlock{Name: name, Content: block.Content})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &PageContent{Content: in.Content, Blocks: blocks}, nil
}
