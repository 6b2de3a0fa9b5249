package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// BookingEmailData carries everything the confirmation template needs.
type BookingEmailData struct {
	GuestName     string
	ReferenceCode string
	PropertyName  string
	CheckIn       string
	CheckOut      string
	Nights        int
	TotalAmount   float64
}

// SendBookingConfirmationEmail sends the booking confirmation email. When SMTP env
// vars are not configured it logs a mock line and reports success so local
// development works without a mail server.
func SendBookingConfirmationEmail(recipientEmail string, data BookingEmailData) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] confirmation to:%s ref:%s property:%s", recipientEmail, data.ReferenceCode, data.PropertyName)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}

	guestName := safe(data.GuestName)
	propertyName := safe(data.PropertyName)

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := fmt.Sprintf("Booking confirmed — %s (%s)", propertyName, data.ReferenceCode)
	boundary := "----=_BOOKING_EMAIL_BOUNDARY"

	plainBody := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your stay at %s is confirmed.\n\n"+
			"Reference: %s\n"+
			"Check-in: %s\n"+
			"Check-out: %s\n"+
			"Nights: %d\n"+
			"Total: %.2f\n\n"+
			"We look forward to hosting you.\n",
		guestName, propertyName, data.ReferenceCode, data.CheckIn, data.CheckOut, data.Nights, data.TotalAmount,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Booking confirmed</title>
<style>
body { background:#f5f7fb; font-family:Arial, Helvetica, sans-serif; color:#222; }
.container { max-width:640px; margin:20px auto; }
.card { background:#fff; border:1px solid #e6eef6; padding:24px; border-radius:8px; }
.row { margin:6px 0; }
.label { color:#777; }
</style>
</head>
<body>
<div class="container">
  <div class="card">
    <h2>Your stay is confirmed</h2>
    <p>Hi %s,</p>
    <p>Your booking at <strong>%s</strong> is confirmed.</p>
    <div class="row"><span class="label">Reference:</span> <strong>%s</strong></div>
    <div class="row"><span class="label">Check-in:</span> %s</div>
    <div class="row"><span class="label">Check-out:</span> %s</div>
    <div class="row"><span class="label">Nights:</span> %d</div>
    <div class="row"><span class="label">Total:</span> %.2f</div>
    <p>We look forward to hosting you.</p>
  </div>
</div>
</body>
</html>`,
		guestName, propertyName, data.ReferenceCode, data.CheckIn, data.CheckOut, data.Nights, data.TotalAmount,
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("Failed to send confirmation email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("Confirmation email sent to %s (ref %s)", recipientEmail, data.ReferenceCode)
	return nil
}
