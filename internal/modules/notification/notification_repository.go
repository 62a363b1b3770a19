package notification

import (
	"context"
	"sync"
	"time"

	"freight-booking/internal/models"

	"github.com/google/uuid"
)

// RepositoryInterface defines the contract for the notification store.
type RepositoryInterface interface {
	Append(ctx context.Context, n *models.Notification) (*models.Notification, error)
	ListForUser(ctx context.Context, userID string) ([]*models.Notification, error)
	// MarkRead flips the read flag; the notification must belong to the
	// given user.
	MarkRead(ctx context.Context, notificationID, userID string) (*models.Notification, error)
}

// Repository keeps notifications in memory, newest-first per user.
type Repository struct {
	mu     sync.RWMutex
	byID   map[string]*models.Notification
	byUser map[string][]string // newest first
}

func NewRepository() *Repository {
	return &Repository{
		byID:   make(map[string]*models.Notification),
		byUser: make(map[string][]string),
	}
}

func (r *Repository) Append(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *n
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now()
	r.byID[stored.ID] = &stored
	r.byUser[stored.UserID] = append([]string{stored.ID}, r.byUser[stored.UserID]...)

	out := stored
	return &out, nil
}

func (r *Repository) ListForUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byUser[userID]
	out := make([]*models.Notification, 0, len(ids))
	for _, id := range ids {
		cp := *r.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *Repository) MarkRead(ctx context.Context, notificationID, userID string) (*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.byID[notificationID]
	if !ok || n.UserID != userID {
		return nil, models.ErrNotFound
	}
	n.Read = true

	out := *n
	return &out, nil
}
