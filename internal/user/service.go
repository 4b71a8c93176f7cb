package user

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frahmantamala/loanlink/internal"
	userDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/user"
)

// Repository defines the data access methods for user records
type Repository interface {
	GetByEmail(email string) (*userDatamodel.User, error)
	Create(u *userDatamodel.User) error
	TouchLogin(email string, at time.Time) error
	ListExcept(email string) ([]*userDatamodel.User, error)
	UpdateRole(email, role string) (int64, error)
}

// Service handles user upsert and role management
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Upsert records a login. First sight of an email creates the record with
// the default role; every later call only moves last_logged_in. Role and
// created_at are never touched here.
func (s *Service) Upsert(dto UpsertDTO) (*userDatamodel.User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user upsert validation failed", "error", err)
		return nil, err
	}

	now := time.Now().UTC()

	existing, err := s.repo.GetByEmail(dto.Email)
	if err == nil {
		if err := s.repo.TouchLogin(dto.Email, now); err != nil {
			s.logger.Error("failed to touch login", "error", err, "email", dto.Email)
			return nil, internal.NewInternalError("failed to update user", err)
		}
		existing.LastLoggedIn = now
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to look up user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to look up user", err)
	}

	role := dto.Role
	if role == "" {
		role = userDatamodel.DefaultRole
	}

	u := &userDatamodel.User{
		ID:           uuid.NewString(),
		Email:        dto.Email,
		Name:         dto.Name,
		Role:         role,
		Status:       userDatamodel.StatusActive,
		CreatedAt:    now,
		LastLoggedIn: now,
	}

	if err := s.repo.Create(u); err != nil {
		// two first-logins can race on the unique email index; the loser
		// degrades to a login touch
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if terr := s.repo.TouchLogin(dto.Email, now); terr != nil {
				return nil, internal.NewInternalError("failed to update user", terr)
			}
			return s.repo.GetByEmail(dto.Email)
		}
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "email", u.Email, "role", u.Role)

	return u, nil
}

// GetRoleByEmail satisfies the auth role lookup.
func (s *Service) GetRoleByEmail(email string) (string, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

// ListExcept returns every user other than the caller, for the admin view.
func (s *Service) ListExcept(email string) ([]*userDatamodel.User, error) {
	users, err := s.repo.ListExcept(email)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}

// UpdateRole sets the role of exactly one user.
func (s *Service) UpdateRole(dto UpdateRoleDTO) error {
	if err := dto.Validate(); err != nil {
		s.logger.Error("role update validation failed", "error", err)
		return err
	}

	affected, err := s.repo.UpdateRole(dto.Email, dto.Role)
	if err != nil {
		s.logger.Error("failed to update role", "error", err, "email", dto.Email)
		return internal.NewInternalError("failed to update role", err)
	}
	if affected == 0 {
		return internal.ErrUserNotFound
	}

	s.logger.Info("user role updated", "email", dto.Email, "role", dto.Role)

	return nil
}
