package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// SendBookingConfirmationEmail sends a plain-text confirmation for a new
// booking. When SMTP env vars are absent (dev), the send is mocked to the log
// so booking creation works without a mail server.
func SendBookingConfirmationEmail(recipient, bookingID, roomName, guestName, checkIn, checkOut string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := EnvOrDefault("SMTP_FROM_NAME", "Zatoka Getaway")

	if smtpHost == "" || smtpPort == "" || smtpUser == "" || smtpPass == "" {
		log.Printf("[MOCK EMAIL] to:%s booking:%s room:%s %s..%s",
			MaskEmail(recipient), bookingID, roomName, checkIn, checkOut)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	guestName = safe(guestName)
	roomName = safe(roomName)

	subject := fmt.Sprintf("Booking Confirmation — %s", bookingID)
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Thank you for booking with us! Here are your booking details:\n\n"+
			"Booking Reference: %s\n"+
			"Room: %s\n"+
			"Check-In: %s\n"+
			"Check-Out: %s\n\n"+
			"If you have any questions, feel free to contact us.\n\n"+
			"Best regards,\n%s",
		guestName, bookingID, roomName, checkIn, checkOut, fromName,
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s <%s>\r\n", fromName, smtpUser))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body + "\r\n")

	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)
	if err := smtp.SendMail(addr, auth, smtpUser, []string{recipient}, []byte(sb.String())); err != nil {
		return err
	}

	log.Printf("📨 Confirmation email sent to %s (booking %s)", MaskEmail(recipient), bookingID)
	return nil
}
