package fleet

import (
	"context"
	"fmt"
	"math"
	"strings"

	"freight-booking/internal/models"
)

// truckTypes is the quoting catalog. Base prices feed the estimate formula
// basePrice + weightKg * perKgRate.
var truckTypes = []models.TruckType{
	{ID: "mini", Name: "Mini Truck", CapacityKg: 750, BasePrice: 500},
	{ID: "pickup", Name: "Pickup Truck", CapacityKg: 1500, BasePrice: 800},
	{ID: "container", Name: "Container Truck", CapacityKg: 5000, BasePrice: 1500},
	{ID: "trailer", Name: "Trailer", CapacityKg: 12000, BasePrice: 2500},
}

const perKgRate = 0.5

// ServiceInterface defines the fleet operations exposed to handlers and to
// the booking module.
type ServiceInterface interface {
	AddTruck(ctx context.Context, req models.AddTruckRequest) (*models.Truck, error)
	AddDriver(ctx context.Context, req models.AddDriverRequest) (*models.Driver, error)
	ListTrucks(ctx context.Context, availableOnly bool) ([]*models.Truck, error)
	ListDrivers(ctx context.Context, availableOnly bool) ([]*models.Driver, error)
	TruckTypes(ctx context.Context) []models.TruckType
	Estimate(ctx context.Context, truckType string, weightKg float64) (float64, error)
	Reserve(ctx context.Context, truckID, driverID string) error
	Release(ctx context.Context, truckID, driverID string, completed bool) error
}

// Service implements the fleet logic.
type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// AddTruck registers a truck. Availability defaults to true unless the
// request supplies it.
func (s *Service) AddTruck(ctx context.Context, req models.AddTruckRequest) (*models.Truck, error) {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	t, err := s.repo.AddTruck(ctx, &models.Truck{
		Number:       req.Number,
		Type:         req.Type,
		CapacityKg:   req.CapacityKg,
		LicensePlate: req.LicensePlate,
		Available:    available,
	})
	if err != nil {
		return nil, fmt.Errorf("service.AddTruck: %w", err)
	}
	return t, nil
}

// AddDriver registers a driver with a fresh trip counter.
func (s *Service) AddDriver(ctx context.Context, req models.AddDriverRequest) (*models.Driver, error) {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	d, err := s.repo.AddDriver(ctx, &models.Driver{
		Name:      req.Name,
		Phone:     req.Phone,
		Rating:    req.Rating,
		Trips:     0,
		Available: available,
	})
	if err != nil {
		return nil, fmt.Errorf("service.AddDriver: %w", err)
	}
	return d, nil
}

func (s *Service) ListTrucks(ctx context.Context, availableOnly bool) ([]*models.Truck, error) {
	return s.repo.ListTrucks(ctx, availableOnly)
}

func (s *Service) ListDrivers(ctx context.Context, availableOnly bool) ([]*models.Driver, error) {
	return s.repo.ListDrivers(ctx, availableOnly)
}

// TruckTypes returns the quoting catalog.
func (s *Service) TruckTypes(ctx context.Context) []models.TruckType {
	out := make([]models.TruckType, len(truckTypes))
	copy(out, truckTypes)
	return out
}

// Estimate computes a price estimate for a truck type and cargo weight,
// rounded to two decimals.
func (s *Service) Estimate(ctx context.Context, truckType string, weightKg float64) (float64, error) {
	for _, tt := range truckTypes {
		if strings.EqualFold(tt.Name, truckType) || strings.EqualFold(tt.ID, truckType) {
			price := tt.BasePrice + weightKg*perKgRate
			return math.Round(price*100) / 100, nil
		}
	}
	return 0, models.ErrUnknownTruckType
}

// Reserve marks the pair unavailable for the lifetime of an assignment.
func (s *Service) Reserve(ctx context.Context, truckID, driverID string) error {
	return s.repo.Reserve(ctx, truckID, driverID)
}

// Release returns the pair to the pool once a booking completes or is
// cancelled after assignment.
func (s *Service) Release(ctx context.Context, truckID, driverID string, completed bool) error {
	return s.repo.Release(ctx, truckID, driverID, completed)
}
