package utils

import (
	"crypto/rand"
	"fmt"
	"net/smtp"

	"github.com/sasikumar272004/ConnecTree-sub000/config"
)

// GenerateOTP generates a numeric OTP of n digits (cryptographically random)
func GenerateOTP(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("otp entropy: %w", err)
	}
	otp := make([]byte, n)
	for i := 0; i < n; i++ {
		otp[i] = '0' + (bytes[i] % 10)
	}
	return string(otp), nil
}

// SendMail sends a plain-text email using the configured SMTP account.
func SendMail(to, subject, body string) error {
	s := config.App
	if s.SMTPHost == "" || s.SMTPPort == "" || s.SMTPUser == "" || s.SMTPPass == "" {
		return fmt.Errorf("smtp not configured")
	}

	addr := s.SMTPHost + ":" + s.SMTPPort
	from := s.SMTPUser

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
		body + "\r\n"

	auth := smtp.PlainAuth("", s.SMTPUser, s.SMTPPass, s.SMTPHost)
	return smtp.SendMail(addr, auth, from, []string{to}, []byte(msg))
}
