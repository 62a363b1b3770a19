package identity

import (
	"context"
	"errors"
	"fmt"

	"freight-booking/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs session tokens for authenticated principals.
type TokenIssuer interface {
	Generate(p *models.Principal) (string, error)
}

// ServiceInterface defines the contract for the identity service.
type ServiceInterface interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Profile(ctx context.Context, userID string) (*models.Principal, error)
	UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.Principal, error)
}

// Service implements the identity logic: account creation, credential
// verification and profile maintenance.
type Service struct {
	repo   RepositoryInterface
	tokens TokenIssuer
}

func NewService(repo RepositoryInterface, tokens TokenIssuer) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a new principal and returns it with a session token.
// A duplicate email fails with ErrConflict and mutates nothing.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("service.Register: hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &models.Principal{
		Email:        req.Email,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		return nil, fmt.Errorf("service.Register: %w", err)
	}

	tok, err := s.tokens.Generate(created)
	if err != nil {
		return nil, fmt.Errorf("service.Register: sign token: %w", err)
	}
	return &models.AuthResponse{User: created, Token: tok}, nil
}

// Login verifies email, password and role. Every mismatch reports the same
// ErrInvalidCredentials so callers cannot probe which part was wrong, and
// nothing is mutated on failure.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	p, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("service.Login: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(req.Password)) != nil {
		return nil, models.ErrInvalidCredentials
	}
	if p.Role != req.Role {
		return nil, models.ErrInvalidCredentials
	}

	tok, err := s.tokens.Generate(p)
	if err != nil {
		return nil, fmt.Errorf("service.Login: sign token: %w", err)
	}
	return &models.AuthResponse{User: p, Token: tok}, nil
}

// Profile returns the principal behind a session.
func (s *Service) Profile(ctx context.Context, userID string) (*models.Principal, error) {
	p, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProfile merges the supplied fields into the active principal.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (*models.Principal, error) {
	p, err := s.repo.Update(ctx, userID, req)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("service.UpdateProfile: %w", err)
	}
	return p, nil
}
