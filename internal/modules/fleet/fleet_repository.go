package fleet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"freight-booking/internal/models"
)

// RepositoryInterface defines the contract for the fleet repository.
type RepositoryInterface interface {
	// ===== Trucks =====
	AddTruck(ctx context.Context, t *models.Truck) (*models.Truck, error)
	FindTruckByID(ctx context.Context, id string) (*models.Truck, error)
	ListTrucks(ctx context.Context, availableOnly bool) ([]*models.Truck, error)

	// ===== Drivers =====
	AddDriver(ctx context.Context, d *models.Driver) (*models.Driver, error)
	FindDriverByID(ctx context.Context, id string) (*models.Driver, error)
	ListDrivers(ctx context.Context, availableOnly bool) ([]*models.Driver, error)

	// ===== Assignment =====
	// Reserve marks the truck and driver unavailable in one atomic step.
	// Fails with ErrResourceUnavailable if either is unknown or in use,
	// leaving both untouched.
	Reserve(ctx context.Context, truckID, driverID string) error
	// Release returns the pair to the available pool. When completed is
	// true the driver's trip counter is credited.
	Release(ctx context.Context, truckID, driverID string, completed bool) error
}

// Repository is the in-memory fleet store. Trucks and drivers live behind a
// single lock so a reservation can flip both flags atomically.
type Repository struct {
	mu      sync.RWMutex
	trucks  map[string]*models.Truck
	drivers map[string]*models.Driver

	truckOrder  []string
	driverOrder []string
}

func NewRepository() *Repository {
	return &Repository{
		trucks:  make(map[string]*models.Truck),
		drivers: make(map[string]*models.Driver),
	}
}

// nextID allocates a prefixed time-derived identifier, bumping on a
// same-millisecond collision. Caller must hold the write lock.
func (r *Repository) nextID(prefix string, taken func(string) bool) string {
	ms := time.Now().UnixMilli()
	for {
		id := fmt.Sprintf("%s%d", prefix, ms)
		if !taken(id) {
			return id
		}
		ms++
	}
}

func (r *Repository) AddTruck(ctx context.Context, t *models.Truck) (*models.Truck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *t
	stored.ID = r.nextID("TRK", func(id string) bool { _, ok := r.trucks[id]; return ok })
	stored.CreatedAt = time.Now()
	r.trucks[stored.ID] = &stored
	r.truckOrder = append(r.truckOrder, stored.ID)

	out := stored
	return &out, nil
}

func (r *Repository) FindTruckByID(ctx context.Context, id string) (*models.Truck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trucks[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (r *Repository) ListTrucks(ctx context.Context, availableOnly bool) ([]*models.Truck, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Truck, 0, len(r.truckOrder))
	for _, id := range r.truckOrder {
		t := r.trucks[id]
		if availableOnly && !t.Available {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Repository) AddDriver(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *d
	stored.ID = r.nextID("DRV", func(id string) bool { _, ok := r.drivers[id]; return ok })
	stored.CreatedAt = time.Now()
	r.drivers[stored.ID] = &stored
	r.driverOrder = append(r.driverOrder, stored.ID)

	out := stored
	return &out, nil
}

func (r *Repository) FindDriverByID(ctx context.Context, id string) (*models.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.drivers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *d
	return &out, nil
}

func (r *Repository) ListDrivers(ctx context.Context, availableOnly bool) ([]*models.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Driver, 0, len(r.driverOrder))
	for _, id := range r.driverOrder {
		d := r.drivers[id]
		if availableOnly && !d.Available {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Repository) Reserve(ctx context.Context, truckID, driverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.trucks[truckID]
	if !ok || !t.Available {
		return models.ErrResourceUnavailable
	}
	d, ok := r.drivers[driverID]
	if !ok || !d.Available {
		return models.ErrResourceUnavailable
	}

	t.Available = false
	d.Available = false
	return nil
}

func (r *Repository) Release(ctx context.Context, truckID, driverID string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.trucks[truckID]; ok {
		t.Available = true
	}
	if d, ok := r.drivers[driverID]; ok {
		d.Available = true
		if completed {
			d.Trips++
		}
	}
	return nil
}
