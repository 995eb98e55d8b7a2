package validation

import (
	"strings"
	"testing"
	"time"
)

func validContactInput() ContactInput {
	return ContactInput{
		Name:    "Jane O'Brien",
		Email:   "Jane@Example.COM",
		Phone:   "+44 (0)20 7946 0958",
		Subject: "Question about rituals",
		Message: "I'd love to know more about your evening sessions.",
	}
}

func TestParseContactValid(t *testing.T) {
	record, errs := ParseContact(validContactInput())
	if errs != nil {
		t.Fatalf("ParseContact() errors = %v, want none", errs)
	}
	if record.Email != "jane@example.com" {
		t.Errorf("email = %q, want lowercased %q", record.Email, "jane@example.com")
	}
	if record.Name != "Jane O'Brien" {
		t.Errorf("name = %q, want %q", record.Name, "Jane O'Brien")
	}
}

func TestParseContactFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ContactInput)
		wantField string
	}{
		{
			name:      "name too short",
			mutate:    func(in *ContactInput) { in.Name = "J" },
			wantField: "name",
		},
		{
			name:      "name with digits",
			mutate:    func(in *ContactInput) { in.Name = "John123" },
			wantField: "name",
		},
		{
			name:      "invalid email",
			mutate:    func(in *ContactInput) { in.Email = "not-an-email" },
			wantField: "email",
		},
		{
			name:      "invalid phone",
			mutate:    func(in *ContactInput) { in.Phone = "call me" },
			wantField: "phone",
		},
		{
			name:      "subject too short",
			mutate:    func(in *ContactInput) { in.Subject = "Hi" },
			wantField: "subject",
		},
		{
			name:      "subject too long",
			mutate:    func(in *ContactInput) { in.Subject = strings.Repeat("a", 201) },
			wantField: "subject",
		},
		{
			name:      "message too short",
			mutate:    func(in *ContactInput) { in.Message = "Too short" },
			wantField: "message",
		},
		{
			name:      "message too long",
			mutate:    func(in *ContactInput) { in.Message = strings.Repeat("a", 5001) },
			wantField: "message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validContactInput()
			tt.mutate(&in)

			record, errs := ParseContact(in)
			if record != nil {
				t.Fatal("ParseContact() returned a record despite the invalid field")
			}
			if !hasField(errs, tt.wantField) {
				t.Errorf("errors = %v, want one for field %q", errs, tt.wantField)
			}
		})
	}
}

func TestParseContactCollectsAllErrors(t *testing.T) {
	in := ContactInput{
		Name:    "J",
		Email:   "not-an-email",
		Subject: "Hi",
		Message: "short",
	}

	_, errs := ParseContact(in)
	if len(errs) != 4 {
		t.Fatalf("ParseContact() collected %d errors, want 4: %v", len(errs), errs)
	}

	// Same input, same errors in the same order
	_, again := ParseContact(in)
	for i := range errs {
		if errs[i] != again[i] {
			t.Errorf("error %d differs between runs: %v vs %v", i, errs[i], again[i])
		}
	}
}

func TestParseContactOptionalPhone(t *testing.T) {
	in := validContactInput()
	in.Phone = ""

	if _, errs := ParseContact(in); errs != nil {
		t.Errorf("ParseContact() with empty phone errors = %v, want none", errs)
	}
}

func validBookingInput() BookingInput {
	return BookingInput{
		Service:      "moonlight-yoga",
		Date:         time.Now().AddDate(0, 0, 7).Format("2006-01-02"),
		Time:         "18:30",
		Participants: 2,
		Name:         "Jane O'Brien",
		Email:        "jane@example.com",
		Notes:        "First visit",
	}
}

func TestParseBookingValid(t *testing.T) {
	if _, errs := ParseBooking(validBookingInput()); errs != nil {
		t.Fatalf("ParseBooking() errors = %v, want none", errs)
	}
}

func TestParseBookingDates(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "today", date: time.Now().Format("2006-01-02"), wantErr: false},
		{name: "tomorrow", date: time.Now().AddDate(0, 0, 1).Format("2006-01-02"), wantErr: false},
		{name: "yesterday", date: time.Now().AddDate(0, 0, -1).Format("2006-01-02"), wantErr: true},
		{name: "malformed", date: "07/03/2026", wantErr: true},
		{name: "impossible day", date: "2030-02-31", wantErr: true},
		{name: "non-leap february 29th", date: "2029-02-29", wantErr: true},
		{name: "month out of range", date: "2030-13-01", wantErr: true},
		{name: "empty", date: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validBookingInput()
			in.Date = tt.date

			_, errs := ParseBooking(in)
			if tt.wantErr != hasField(errs, "date") {
				t.Errorf("ParseBooking(date=%q) date error = %v, wantErr %v", tt.date, errs, tt.wantErr)
			}
		})
	}
}

func TestParseBookingParticipants(t *testing.T) {
	tests := []struct {
		participants int
		wantErr      bool
	}{
		{participants: 0, wantErr: true},
		{participants: 1, wantErr: false},
		{participants: 20, wantErr: false},
		{participants: 21, wantErr: true},
	}

	for _, tt := range tests {
		in := validBookingInput()
		in.Participants = tt.participants

		_, errs := ParseBooking(in)
		if tt.wantErr != hasField(errs, "participants") {
			t.Errorf("ParseBooking(participants=%d) error = %v, wantErr %v", tt.participants, errs, tt.wantErr)
		}
	}
}

func TestParseBookingTime(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{value: "00:00", wantErr: false},
		{value: "23:59", wantErr: false},
		{value: "24:00", wantErr: true},
		{value: "9:00", wantErr: true},
		{value: "18:60", wantErr: true},
	}

	for _, tt := range tests {
		in := validBookingInput()
		in.Time = tt.value

		_, errs := ParseBooking(in)
		if tt.wantErr != hasField(errs, "time") {
			t.Errorf("ParseBooking(time=%q) error = %v, wantErr %v", tt.value, errs, tt.wantErr)
		}
	}
}

func TestParseNewsletter(t *testing.T) {
	record, errs := ParseNewsletter(NewsletterInput{Email: "  Jane@Example.com "})
	if errs != nil {
		t.Fatalf("ParseNewsletter() errors = %v, want none", errs)
	}
	if record.Email != "jane@example.com" {
		t.Errorf("email = %q, want trimmed lowercase", record.Email)
	}

	if _, errs := ParseNewsletter(NewsletterInput{Email: "nope"}); !hasField(errs, "email") {
		t.Errorf("ParseNewsletter(invalid) errors = %v, want email error", errs)
	}
}

func TestParseAdminLoginPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "too short", password: "seven77", wantErr: true},
		{name: "minimum length", password: "eight888", wantErr: false},
		{name: "no complexity requirement", password: "alllowercase", wantErr: false},
		{name: "maximum length", password: strings.Repeat("a", 100), wantErr: false},
		{name: "too long", password: strings.Repeat("a", 101), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := ParseAdminLogin(AdminLoginInput{Email: "admin@example.com", Password: tt.password})
			if tt.wantErr != hasField(errs, "password") {
				t.Errorf("ParseAdminLogin() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

func validEventInput() EventInput {
	return EventInput{
		Title:       "Winter Solstice Gathering",
		Slug:        "winter-solstice-2026",
		Description: "An evening of candlelit practice and tea.",
		Date:        "2026-12-21",
		Time:        "19:00",
		Location:    "Main studio",
		Price:       35,
		Capacity:    18,
		Published:   true,
	}
}

func TestParseEventSlugs(t *testing.T) {
	tests := []struct {
		slug    string
		wantErr bool
	}{
		{slug: "my-event-2024", wantErr: false},
		{slug: "My Event!", wantErr: true},
		{slug: "UPPER-case", wantErr: true},
		{slug: "under_score", wantErr: true},
	}

	for _, tt := range tests {
		in := validEventInput()
		in.Slug = tt.slug

		_, errs := ParseEvent(in)
		if tt.wantErr != hasField(errs, "slug") {
			t.Errorf("ParseEvent(slug=%q) errors = %v, wantErr %v", tt.slug, errs, tt.wantErr)
		}
	}
}

func TestParseEventBounds(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*EventInput)
		wantField string
	}{
		{name: "negative price", mutate: func(in *EventInput) { in.Price = -1 }, wantField: "price"},
		{name: "price too high", mutate: func(in *EventInput) { in.Price = 10001 }, wantField: "price"},
		{name: "zero capacity", mutate: func(in *EventInput) { in.Capacity = 0 }, wantField: "capacity"},
		{name: "capacity too high", mutate: func(in *EventInput) { in.Capacity = 1001 }, wantField: "capacity"},
		{name: "relative image URL", mutate: func(in *EventInput) { in.Image = "/img/a.png" }, wantField: "image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validEventInput()
			tt.mutate(&in)

			_, errs := ParseEvent(in)
			if !hasField(errs, tt.wantField) {
				t.Errorf("errors = %v, want one for field %q", errs, tt.wantField)
			}
		})
	}
}

func TestParseRitual(t *testing.T) {
	in := RitualInput{
		Title:       "Forest Bathing",
		Slug:        "forest-bathing",
		Description: "A slow guided walk through the woods.",
		Duration:    "90 min",
		Price:       45,
	}
	if _, errs := ParseRitual(in); errs != nil {
		t.Fatalf("ParseRitual() errors = %v, want none", errs)
	}

	in.Duration = ""
	if _, errs := ParseRitual(in); !hasField(errs, "duration") {
		t.Errorf("ParseRitual(empty duration) errors = %v, want duration error", errs)
	}
}

func TestParseJournalPost(t *testing.T) {
	in := JournalPostInput{
		Title:   "Notes from the studio",
		Slug:    "notes-from-the-studio",
		Excerpt: "A short update.",
		Body:    "This month we repainted the back room and planted herbs.",
	}
	if _, errs := ParseJournalPost(in); errs != nil {
		t.Fatalf("ParseJournalPost() errors = %v, want none", errs)
	}

	in.Body = "short"
	if _, errs := ParseJournalPost(in); !hasField(errs, "body") {
		t.Errorf("ParseJournalPost(short body) errors = %v, want body error", errs)
	}
}

func TestParseStandalonePage(t *testing.T) {
	in := StandalonePageInput{
		Title: "Our Story",
		Slug:  "our-story",
		Body:  "The studio opened its doors in a converted mill house.",
	}
	if _, errs := ParseStandalonePage(in); errs != nil {
		t.Fatalf("ParseStandalonePage() errors = %v, want none", errs)
	}

	in.Slug = "Our Story!"
	if _, errs := ParseStandalonePage(in); !hasField(errs, "slug") {
		t.Errorf("ParseStandalonePage(bad slug) errors = %v, want slug error", errs)
	}

	in.Slug = "our-story"
	in.Body = "short"
	if _, errs := ParseStandalonePage(in); !hasField(errs, "body") {
		t.Errorf("ParseStandalonePage(short body) errors = %v, want body error", errs)
	}
}

func TestParsePageContent(t *testing.T) {
	in := PageContentInput{
		Content: "Welcome to the studio.",
		Blocks: []ContentBlockInput{
			{Name: "hero", Content: "Find your stillness."},
			{Name: "footer", Content: "Open daily."},
		},
	}
	record, errs := ParsePageContent(in)
	if errs != nil {
		t.Fatalf("ParsePageContent() errors = %v, want none", errs)
	}
	if len(record.Blocks) != 2 {
		t.Errorf("blocks = %d, want 2", len(record.Blocks))
	}
}

func TestParsePageContentErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     PageContentInput
		wantField string
	}{
		{
			name:      "content too long",
			input:     PageContentInput{Content: strings.Repeat("a", 50001)},
			wantField: "content",
		},
		{
			name: "unnamed block",
			input: PageContentInput{
				Blocks: []ContentBlockInput{{Name: "  ", Content: "x"}},
			},
			wantField: "blocks[0].name",
		},
		{
			name: "block content too long",
			input: PageContentInput{
				Blocks: []ContentBlockInput{
					{Name: "hero", Content: "fine"},
					{Name: "body", Content: strings.Repeat("a", 10001)},
				},
			},
			wantField: "blocks[1].content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := ParsePageContent(tt.input)
			if !hasField(errs, tt.wantField) {
				t.Errorf("errors = %v, want one for field %q", errs, tt.wantField)
			}
		})
	}
}

func hasField(errs Errors, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}
