package identity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"freight-booking/internal/models"
)

// RepositoryInterface defines the contract for the identity repository.
type RepositoryInterface interface {
	Create(ctx context.Context, p *models.Principal) (*models.Principal, error)
	FindByEmail(ctx context.Context, email string) (*models.Principal, error)
	FindByID(ctx context.Context, id string) (*models.Principal, error)
	Update(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.Principal, error)
}

// Repository is the in-memory principal store. The service layer is the
// only mutator; all access goes through the lock.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]*models.Principal
	byEmail map[string]*models.Principal
}

func NewRepository() *Repository {
	return &Repository{
		byID:    make(map[string]*models.Principal),
		byEmail: make(map[string]*models.Principal),
	}
}

// rolePrefix gives principals role-namespaced identifiers: C... for
// consumers, A... for agents.
func rolePrefix(role models.Role) string {
	if role == models.RoleAgent {
		return "A"
	}
	return "C"
}

// nextID allocates a time-derived identifier, bumping the suffix on the
// rare same-millisecond collision. Caller must hold the write lock.
func (r *Repository) nextID(role models.Role) string {
	ms := time.Now().UnixMilli()
	for {
		id := fmt.Sprintf("%s%d", rolePrefix(role), ms)
		if _, taken := r.byID[id]; !taken {
			return id
		}
		ms++
	}
}

// Create stores a new principal, allocating its identifier. Email must be
// unique across both roles.
func (r *Repository) Create(ctx context.Context, p *models.Principal) (*models.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(p.Email)
	if _, exists := r.byEmail[email]; exists {
		return nil, models.ErrConflict
	}

	stored := *p
	stored.ID = r.nextID(p.Role)
	stored.Email = email
	stored.CreatedAt = time.Now()
	r.byID[stored.ID] = &stored
	r.byEmail[email] = &stored

	out := stored
	return &out, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *p
	return &out, nil
}

// Update merges the allowed profile fields into the stored record. Role is
// never touched. All-or-nothing: an email collision leaves the record as it
// was.
func (r *Repository) Update(ctx context.Context, id string, req models.UpdateProfileRequest) (*models.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}

	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if other, exists := r.byEmail[email]; exists && other.ID != id {
			return nil, models.ErrConflict
		}
		if email != p.Email {
			delete(r.byEmail, p.Email)
			p.Email = email
			r.byEmail[email] = p
		}
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}

	out := *p
	return &out, nil
}
