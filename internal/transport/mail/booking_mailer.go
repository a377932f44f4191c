package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/njprem/TripPlanner_APP_BackEnd/internal/domain"
)

// BookingMailer sends booking confirmations over SMTP.
type BookingMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewBookingMailer(host string, port int, username, password, from string) *BookingMailer {
	return &BookingMailer{
		dialer: gomail.NewDialer(strings.TrimSpace(host), port, username, password),
		from:   strings.TrimSpace(from),
	}
}

func (m *BookingMailer) SendBookingConfirmation(ctx context.Context, booking *domain.Booking, items []domain.TripItem) error {
	if m == nil || m.dialer == nil {
		return errors.New("mailer not configured")
	}
	if m.dialer.Host == "" || m.from == "" {
		return errors.New("mailer missing configuration")
	}
	if booking == nil {
		return errors.New("booking is required")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return m.dialer.DialAndSend(buildConfirmation(m.from, booking, items))
}

func buildConfirmation(from string, booking *domain.Booking, items []domain.TripItem) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", booking.ContactEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Booking confirmed: %s", booking.TripName))
	msg.SetBody("text/plain", confirmationBody(booking, items))
	return msg
}

func confirmationBody(booking *domain.Booking, items []domain.TripItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your booking for %q is confirmed.\n\n", booking.TripName)
	fmt.Fprintf(&b, "Booking reference: %s\n", booking.ID)
	fmt.Fprintf(&b, "Travelers: %d\n", booking.Travelers)
	fmt.Fprintf(&b, "Estimated total: %s %s\n", formatAmount(booking.TotalCost), booking.Currency)

	if len(items) > 0 {
		b.WriteString("\nDestinations:\n")
		for i, item := range items {
			fmt.Fprintf(&b, "  %d. %s", i+1, item.DestinationName)
			if item.Duration != nil && *item.Duration != "" {
				fmt.Fprintf(&b, " (%s)", *item.Duration)
			}
			b.WriteString("\n")
		}
	}
	if booking.Notes != nil && strings.TrimSpace(*booking.Notes) != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", strings.TrimSpace(*booking.Notes))
	}
	b.WriteString("\nHave a great trip!\n")
	return b.String()
}

func formatAmount(v float64) string {
	raw := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(raw, "-")
	raw = strings.TrimPrefix(raw, "-")

	var out []byte
	for i := range raw {
		if i > 0 && (len(raw)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, raw[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
