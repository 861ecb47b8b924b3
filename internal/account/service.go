package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"loyalty-system/internal/domain"
)

// retryAttempts bounds the load-mutate-save loop when another session wins
// the version race.
const retryAttempts = 3

type ServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (domain.Customer, error)
	Authenticate(ctx context.Context, email, password string) (domain.Customer, error)
}

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// Register appends a new customer unless the email is already taken.
// Email comparison is case-sensitive exact match.
func (s *Service) Register(ctx context.Context, name, email, password string) (domain.Customer, error) {
	if name == "" || email == "" || password == "" {
		return domain.Customer{}, domain.ErrMissingRequiredField
	}

	customer := domain.Customer{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Password:     password,
		RegisteredAt: time.Now().UTC(),
	}

	for attempt := 0; attempt < retryAttempts; attempt++ {
		customers, version, err := s.repo.All(ctx)
		if err != nil {
			return domain.Customer{}, fmt.Errorf("register: %w", err)
		}
		for _, c := range customers {
			if c.Email == email {
				return domain.Customer{}, domain.ErrDuplicateEmail
			}
		}
		err = s.repo.Save(ctx, append(customers, customer), version)
		if err == nil {
			return customer, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return domain.Customer{}, fmt.Errorf("register: %w", err)
		}
	}
	return domain.Customer{}, fmt.Errorf("register: %w", domain.ErrVersionConflict)
}

// Authenticate scans for an exact match on both email and password.
func (s *Service) Authenticate(ctx context.Context, email, password string) (domain.Customer, error) {
	customers, _, err := s.repo.All(ctx)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("authenticate: %w", err)
	}
	for _, c := range customers {
		if c.Email == email && c.Password == password {
			return c, nil
		}
	}
	return domain.Customer{}, domain.ErrInvalidCredentials
}
