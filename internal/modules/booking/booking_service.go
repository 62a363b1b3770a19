package booking

import (
	"context"
	"errors"
	"fmt"

	"freight-booking/internal/models"
)

// FleetServiceInterface is the slice of the fleet module the booking module
// depends on for assignments and quoting.
type FleetServiceInterface interface {
	Estimate(ctx context.Context, truckType string, weightKg float64) (float64, error)
	Reserve(ctx context.Context, truckID, driverID string) error
	Release(ctx context.Context, truckID, driverID string, completed bool) error
}

// Notifier records booking lifecycle events for the affected consumer. It
// must never fail the booking operation; delivery problems are its own
// concern.
type Notifier interface {
	BookingUpdated(ctx context.Context, b *models.Booking)
}

// PrincipalDirectory resolves principal records. The identity repository
// satisfies it.
type PrincipalDirectory interface {
	FindByID(ctx context.Context, id string) (*models.Principal, error)
}

// ServiceInterface defines the contract for the booking service.
type ServiceInterface interface {
	CreateBooking(ctx context.Context, consumerID string, req models.CreateBookingRequest) (*models.Booking, error)
	GetBookingDetails(ctx context.Context, bookingID, userID, role string) (*models.Booking, error)
	ListConsumerBookings(ctx context.Context, consumerID string) ([]*models.Booking, error)
	ListAllBookings(ctx context.Context, status models.BookingStatus) ([]*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, next models.BookingStatus) (*models.Booking, error)
	Assign(ctx context.Context, bookingID, truckID, driverID string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, consumerID string) (*models.Booking, error)
	GetQuote(ctx context.Context, req models.QuoteRequest) (*models.Quote, error)
	Stats(ctx context.Context) (*models.BookingStats, error)
	Earnings(ctx context.Context) (*models.EarningsReport, error)
	ReportTracking(ctx context.Context, bookingID string, req models.TrackingUpdateRequest) (*models.TrackingSnapshot, error)
	GetTracking(ctx context.Context, bookingID, userID, role string) (*models.TrackingSnapshot, error)
}

// Service implements the booking workflow: creation, the status state
// machine, assignment against the fleet, cancellation and the derived
// reporting views.
type Service struct {
	repo      RepositoryInterface
	fleet     FleetServiceInterface
	directory PrincipalDirectory
	notifier  Notifier
}

func NewService(repo RepositoryInterface, fleet FleetServiceInterface, directory PrincipalDirectory, notifier Notifier) *Service {
	return &Service{repo: repo, fleet: fleet, directory: directory, notifier: notifier}
}

// CreateBooking validates the truck type against the catalog and stores a
// new pending booking owned by the calling consumer. The consumer's display
// name is resolved server-side, never taken from the body.
func (s *Service) CreateBooking(ctx context.Context, consumerID string, req models.CreateBookingRequest) (*models.Booking, error) {
	if _, err := s.fleet.Estimate(ctx, req.TruckType, req.Goods.WeightKg); err != nil {
		return nil, err
	}

	consumer, err := s.directory.FindByID(ctx, consumerID)
	if err != nil {
		return nil, fmt.Errorf("service.CreateBooking: resolve consumer: %w", err)
	}

	b, err := s.repo.Create(ctx, &models.Booking{
		ConsumerID:      consumerID,
		ConsumerName:    consumer.Name,
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		TruckType:       req.TruckType,
		Goods:           req.Goods,
		PickupDate:      req.PickupDate,
		PickupTime:      req.PickupTime,
		PriceEstimate:   req.PriceEstimate,
	})
	if err != nil {
		return nil, fmt.Errorf("service.CreateBooking: %w", err)
	}

	s.notifier.BookingUpdated(ctx, b)
	return b, nil
}

// GetBookingDetails retrieves a single booking. Consumers may only see
// their own bookings; an agent sees any. Ownership failures report
// not-found so existence is not leaked.
func (s *Service) GetBookingDetails(ctx context.Context, bookingID, userID, role string) (*models.Booking, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if role != string(models.RoleAgent) && b.ConsumerID != userID {
		return nil, models.ErrNotFound
	}
	return b, nil
}

// ListConsumerBookings returns the consumer's bookings newest-first.
func (s *Service) ListConsumerBookings(ctx context.Context, consumerID string) ([]*models.Booking, error) {
	return s.repo.ListByConsumer(ctx, consumerID)
}

// ListAllBookings returns every booking newest-first, optionally filtered
// by status.
func (s *Service) ListAllBookings(ctx context.Context, status models.BookingStatus) ([]*models.Booking, error) {
	if status != "" && !status.Valid() {
		return nil, models.ErrInvalidTransition
	}
	return s.repo.ListAll(ctx, status)
}

// UpdateStatus advances a booking along assigned -> in-transit ->
// delivered. Entering assigned or cancelled this way is rejected; those
// states are reachable only through Assign and Cancel.
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, next models.BookingStatus) (*models.Booking, error) {
	if next == models.StatusAssigned || next == models.StatusCancelled {
		return nil, models.ErrInvalidTransition
	}

	b, err := s.repo.UpdateStatus(ctx, bookingID, next)
	if err != nil {
		return nil, err
	}

	if next == models.StatusDelivered && b.TruckID != nil && b.DriverID != nil {
		if err := s.fleet.Release(ctx, *b.TruckID, *b.DriverID, true); err != nil {
			return nil, fmt.Errorf("service.UpdateStatus: release resources: %w", err)
		}
	}

	s.notifier.BookingUpdated(ctx, b)
	return b, nil
}

// Assign binds an available truck and driver to a pending booking. The
// reservation and the booking update are compensated as a pair: if the
// booking can no longer be assigned the reservation is rolled back.
func (s *Service) Assign(ctx context.Context, bookingID, truckID, driverID string) (*models.Booking, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusPending {
		return nil, models.ErrInvalidTransition
	}

	if err := s.fleet.Reserve(ctx, truckID, driverID); err != nil {
		return nil, err
	}

	assigned, err := s.repo.Assign(ctx, bookingID, truckID, driverID)
	if err != nil {
		// Another caller won the race for this booking; free the pair.
		if relErr := s.fleet.Release(ctx, truckID, driverID, false); relErr != nil {
			return nil, fmt.Errorf("service.Assign: rollback reservation: %w", relErr)
		}
		return nil, err
	}

	s.notifier.BookingUpdated(ctx, assigned)
	return assigned, nil
}

// Cancel lets the owning consumer abort a booking that has not entered
// transit. A booking cancelled after assignment releases its truck and
// driver without crediting a trip.
func (s *Service) Cancel(ctx context.Context, bookingID, consumerID string) (*models.Booking, error) {
	b, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.ConsumerID != consumerID {
		return nil, models.ErrNotFound
	}

	cancelled, err := s.repo.UpdateStatus(ctx, bookingID, models.StatusCancelled)
	if err != nil {
		if errors.Is(err, models.ErrInvalidTransition) {
			return nil, models.ErrBookingNotCancellable
		}
		return nil, err
	}

	if cancelled.TruckID != nil && cancelled.DriverID != nil {
		if err := s.fleet.Release(ctx, *cancelled.TruckID, *cancelled.DriverID, false); err != nil {
			return nil, fmt.Errorf("service.Cancel: release resources: %w", err)
		}
	}

	s.notifier.BookingUpdated(ctx, cancelled)
	return cancelled, nil
}

// GetQuote computes a non-binding price estimate from the truck-type
// catalog.
func (s *Service) GetQuote(ctx context.Context, req models.QuoteRequest) (*models.Quote, error) {
	price, err := s.fleet.Estimate(ctx, req.TruckType, req.WeightKg)
	if err != nil {
		return nil, err
	}
	return &models.Quote{TruckType: req.TruckType, WeightKg: req.WeightKg, PriceEstimate: price}, nil
}

// Stats returns the dashboard counters.
func (s *Service) Stats(ctx context.Context) (*models.BookingStats, error) {
	return s.repo.Stats(ctx)
}

// Earnings sums delivered bookings for the agent's earnings view.
func (s *Service) Earnings(ctx context.Context) (*models.EarningsReport, error) {
	all, err := s.repo.ListAll(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("service.Earnings: %w", err)
	}

	report := &models.EarningsReport{}
	for _, b := range all {
		switch {
		case b.Status == models.StatusDelivered:
			report.TotalEarnings += b.PriceEstimate
			report.Deliveries++
		case b.Status.IsActive():
			report.PendingEstimate += b.PriceEstimate
		}
	}
	if report.Deliveries > 0 {
		report.AveragePerTrip = report.TotalEarnings / float64(report.Deliveries)
	}
	return report, nil
}

// ReportTracking overwrites the latest-wins location snapshot for a
// booking.
func (s *Service) ReportTracking(ctx context.Context, bookingID string, req models.TrackingUpdateRequest) (*models.TrackingSnapshot, error) {
	return s.repo.UpsertTracking(ctx, bookingID, req.Lat, req.Lng)
}

// GetTracking returns the latest snapshot for a booking the caller may
// see.
func (s *Service) GetTracking(ctx context.Context, bookingID, userID, role string) (*models.TrackingSnapshot, error) {
	if _, err := s.GetBookingDetails(ctx, bookingID, userID, role); err != nil {
		return nil, err
	}
	return s.repo.GetTracking(ctx, bookingID)
}
