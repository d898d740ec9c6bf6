package service

import (
	"context"
	"fmt"

	"carrental-backoffice/internal/config"
	"carrental-backoffice/internal/logger"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) EmailService {
	return &emailService{cfg: cfg}
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name, carLabel string, totalCost float64) error {
	subject := "Your booking is confirmed"
	body := fmt.Sprintf("Hello %s,\n\nYour booking for %s has been confirmed.\nTotal cost: %.2f.\n\nBest regards,\nThe Rental Team", name, carLabel, totalCost)
	return s.send(email, subject, body)
}

func (s *emailService) SendBookingCancellation(ctx context.Context, email, name, carLabel string) error {
	subject := "Your booking was cancelled"
	body := fmt.Sprintf("Hello %s,\n\nYour booking for %s has been cancelled.\n\nBest regards,\nThe Rental Team", name, carLabel)
	return s.send(email, subject, body)
}

func (s *emailService) send(to, subject, body string) error {
	if !s.cfg.Enabled {
		logger.Debug("Email sending disabled, skipping", "to", to, "subject", subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.User, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
