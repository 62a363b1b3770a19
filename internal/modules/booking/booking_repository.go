package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"freight-booking/internal/models"
)

// RepositoryInterface defines the contract for the booking ledger.
type RepositoryInterface interface {
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	FindByID(ctx context.Context, bookingID string) (*models.Booking, error)
	ListByConsumer(ctx context.Context, consumerID string) ([]*models.Booking, error)
	// ListAll returns every booking newest-first, optionally filtered by
	// status ("" means no filter).
	ListAll(ctx context.Context, status models.BookingStatus) ([]*models.Booking, error)
	// UpdateStatus applies the transition table under the ledger lock and
	// fails with ErrInvalidTransition on an illegal move.
	UpdateStatus(ctx context.Context, bookingID string, next models.BookingStatus) (*models.Booking, error)
	// Assign sets truck, driver and the assigned status in one atomic
	// update, only from pending.
	Assign(ctx context.Context, bookingID, truckID, driverID string) (*models.Booking, error)
	Stats(ctx context.Context) (*models.BookingStats, error)

	// ===== Tracking =====
	UpsertTracking(ctx context.Context, bookingID string, lat, lng float64) (*models.TrackingSnapshot, error)
	GetTracking(ctx context.Context, bookingID string) (*models.TrackingSnapshot, error)
}

// Repository is the in-memory booking ledger. Bookings are never deleted;
// terminal states are retained for history and reporting. The order slice
// is kept newest-first, which list operations expose as a contract.
type Repository struct {
	mu       sync.RWMutex
	byID     map[string]*models.Booking
	order    []string // newest first
	tracking map[string]*models.TrackingSnapshot
}

func NewRepository() *Repository {
	return &Repository{
		byID:     make(map[string]*models.Booking),
		tracking: make(map[string]*models.TrackingSnapshot),
	}
}

// nextID allocates a "BK"-prefixed time-derived identifier, bumping on a
// same-millisecond collision. Caller must hold the write lock.
func (r *Repository) nextID() string {
	ms := time.Now().UnixMilli()
	for {
		id := fmt.Sprintf("BK%d", ms)
		if _, taken := r.byID[id]; !taken {
			return id
		}
		ms++
	}
}

// Create stores a new booking in state pending and prepends it to the
// ledger order.
func (r *Repository) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	stored := *b
	stored.ID = r.nextID()
	stored.Status = models.StatusPending
	stored.Version = 1
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.byID[stored.ID] = &stored
	r.order = append([]string{stored.ID}, r.order...)

	out := stored
	return &out, nil
}

func (r *Repository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byID[bookingID]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *b
	return &out, nil
}

func (r *Repository) ListByConsumer(ctx context.Context, consumerID string) ([]*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Booking
	for _, id := range r.order {
		b := r.byID[id]
		if b.ConsumerID != consumerID {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Repository) ListAll(ctx context.Context, status models.BookingStatus) ([]*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Booking
	for _, id := range r.order {
		b := r.byID[id]
		if status != "" && b.Status != status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, bookingID string, next models.BookingStatus) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[bookingID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if !b.Status.CanTransitionTo(next) {
		return nil, models.ErrInvalidTransition
	}

	b.Status = next
	b.Version++
	b.UpdatedAt = time.Now()

	out := *b
	return &out, nil
}

func (r *Repository) Assign(ctx context.Context, bookingID, truckID, driverID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[bookingID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if b.Status != models.StatusPending {
		return nil, models.ErrInvalidTransition
	}

	b.TruckID = &truckID
	b.DriverID = &driverID
	b.Status = models.StatusAssigned
	b.Version++
	b.UpdatedAt = time.Now()

	out := *b
	return &out, nil
}

// Stats counts the derived dashboard groupings at read time.
func (r *Repository) Stats(ctx context.Context) (*models.BookingStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.BookingStats{Total: len(r.order)}
	for _, b := range r.byID {
		switch {
		case b.Status == models.StatusPending:
			stats.Pending++
		case b.Status.IsActive():
			stats.Active++
		case b.Status == models.StatusDelivered:
			stats.Completed++
		case b.Status == models.StatusCancelled:
			stats.Cancelled++
		}
	}
	return stats, nil
}

// UpsertTracking overwrites the snapshot for a booking, latest-wins. An
// unknown booking is a hard NotFound rather than a silent upsert.
func (r *Repository) UpsertTracking(ctx context.Context, bookingID string, lat, lng float64) (*models.TrackingSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[bookingID]; !ok {
		return nil, models.ErrNotFound
	}

	snap := &models.TrackingSnapshot{
		BookingID: bookingID,
		Lat:       lat,
		Lng:       lng,
		Timestamp: time.Now(),
	}
	r.tracking[bookingID] = snap

	out := *snap
	return &out, nil
}

func (r *Repository) GetTracking(ctx context.Context, bookingID string) (*models.TrackingSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.byID[bookingID]; !ok {
		return nil, models.ErrNotFound
	}
	snap, ok := r.tracking[bookingID]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *snap
	return &out, nil
}
