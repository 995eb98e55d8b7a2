package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"willowmoon/internal/models"
)

// EmailService sends transactional email via Amazon SES. When no from
// address is configured the service is disabled and every send becomes a
// logged no-op, so local development needs no AWS credentials.
type EmailService struct {
	client      *sesv2.Client
	fromEmail   string
	fromName    string
	studioInbox string
	appBaseURL  string
	enabled     bool
}

// NewEmailService creates a new email service
func NewEmailService(ctx context.Context, awsRegion, fromEmail, fromName, studioInbox, appBaseURL string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:      sesv2.NewFromConfig(cfg),
		fromEmail:   fromEmail,
		fromName:    fromName,
		studioInbox: studioInbox,
		appBaseURL:  appBaseURL,
		enabled:     true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendBookingReceived emails the customer that their booking request arrived
func (s *EmailService) SendBookingReceived(ctx context.Context, booking *models.Booking) error {
	subject := fmt.Sprintf("We received your booking request (%s)", booking.Reference)
	htmlBody := fmt.Sprintf(`
<p>Hi %s,</p>
<p>Thank you for your booking request. Your reference is <strong>%s</strong>.</p>
<p>%s on %s at %s, for %d. We'll confirm availability shortly.</p>
<p>Warmly,<br>%s</p>`,
		booking.Name, booking.Reference, booking.Service, booking.Date,
		booking.Time, booking.Participants, s.fromName)

	return s.send(ctx, booking.Email, subject, htmlBody)
}

// SendBookingConfirmed emails the customer that their booking is confirmed
func (s *EmailService) SendBookingConfirmed(ctx context.Context, booking *models.Booking) error {
	subject := fmt.Sprintf("Your booking is confirmed (%s)", booking.Reference)
	htmlBody := fmt.Sprintf(`
<p>Hi %s,</p>
<p>Your booking <strong>%s</strong> is confirmed: %s on %s at %s.</p>
<p>Total: %.2f. See you soon!</p>
<p>Warmly,<br>%s</p>`,
		booking.Name, booking.Reference, booking.Service, booking.Date,
		booking.Time, booking.TotalPrice, s.fromName)

	return s.send(ctx, booking.Email, subject, htmlBody)
}

// SendContactNotification forwards a contact submission to the studio inbox
func (s *EmailService) SendContactNotification(ctx context.Context, msg *models.ContactMessage) error {
	if s.studioInbox == "" {
		return nil
	}

	subject := fmt.Sprintf("Contact form: %s", msg.Subject)
	htmlBody := fmt.Sprintf(`
<p><strong>From:</strong> %s &lt;%s&gt; %s</p>
<p>%s</p>`,
		msg.Name, msg.Email, msg.Phone, msg.Message)

	return s.send(ctx, s.studioInbox, subject, htmlBody)
}

// SendNewsletterWelcome emails a new subscriber
func (s *EmailService) SendNewsletterWelcome(ctx context.Context, email string) error {
	subject := "Welcome to the Willowmoon newsletter"
	htmlBody := fmt.Sprintf(`
<p>Thank you for subscribing.</p>
<p>Expect an occasional note about upcoming events and new rituals.
You can unsubscribe any time at %s/newsletter/unsubscribe.</p>`, s.appBaseURL)

	return s.send(ctx, email, subject, htmlBody)
}

func (s *EmailService) send(ctx context.Context, to, subject, htmlBody string) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): %q to %s", subject, to)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Html: &types.Content{Data: aws.String(htmlBody)},
				},
			},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email %q to %s: %w", subject, to, err)
	}
	return nil
}
