package notification

import (
	"context"
	"fmt"
	"log/slog"

	"freight-booking/internal/models"
	"freight-booking/pkg/mailer"
)

// PrincipalDirectory resolves principal records for mail addressing.
type PrincipalDirectory interface {
	FindByID(ctx context.Context, id string) (*models.Principal, error)
}

// ServiceInterface defines the contract for the notification service.
type ServiceInterface interface {
	BookingUpdated(ctx context.Context, b *models.Booking)
	ListForUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) (*models.Notification, error)
}

// Service turns booking lifecycle events into in-app notifications and, for
// deliveries, a confirmation email. It never propagates failures back into
// the booking workflow.
type Service struct {
	repo      RepositoryInterface
	directory PrincipalDirectory
	mail      mailer.Mailer
	log       *slog.Logger
}

func NewService(repo RepositoryInterface, directory PrincipalDirectory, mail mailer.Mailer, log *slog.Logger) *Service {
	return &Service{repo: repo, directory: directory, mail: mail, log: log}
}

// BookingUpdated records a notification for the booking's consumer.
func (s *Service) BookingUpdated(ctx context.Context, b *models.Booking) {
	title, message := compose(b)

	if _, err := s.repo.Append(ctx, &models.Notification{
		UserID:    b.ConsumerID,
		BookingID: b.ID,
		Title:     title,
		Message:   message,
	}); err != nil {
		s.log.Error("notification_append_failed", "booking_id", b.ID, "error", err)
		return
	}

	if b.Status == models.StatusDelivered {
		s.sendDeliveryMail(ctx, b, title, message)
	}
}

func (s *Service) sendDeliveryMail(ctx context.Context, b *models.Booking, subject, body string) {
	consumer, err := s.directory.FindByID(ctx, b.ConsumerID)
	if err != nil {
		s.log.Error("notification_mail_skipped", "booking_id", b.ID, "error", err)
		return
	}
	if err := s.mail.Send(ctx, consumer.Email, subject, body); err != nil {
		s.log.Error("notification_mail_failed", "booking_id", b.ID, "to", consumer.Email, "error", err)
	}
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, notificationID, userID string) (*models.Notification, error) {
	return s.repo.MarkRead(ctx, notificationID, userID)
}

func compose(b *models.Booking) (title, message string) {
	switch b.Status {
	case models.StatusPending:
		return "Booking Created", fmt.Sprintf("Your booking %s has been created and is awaiting assignment.", b.ID)
	case models.StatusAssigned:
		return "Truck Assigned", fmt.Sprintf("A %s has been assigned to your booking %s.", b.TruckType, b.ID)
	case models.StatusInTransit:
		return "Shipment In Transit", fmt.Sprintf("Your booking %s is on its way from %s to %s.", b.ID, b.PickupAddress.City, b.DeliveryAddress.City)
	case models.StatusDelivered:
		return "Shipment Delivered", fmt.Sprintf("Your booking %s has been delivered. Thank you for shipping with us.", b.ID)
	case models.StatusCancelled:
		return "Booking Cancelled", fmt.Sprintf("Your booking %s has been cancelled.", b.ID)
	default:
		return "Booking Updated", fmt.Sprintf("Your booking %s was updated.", b.ID)
	}
}
