package service

import (
	"context"
	"errors"
	"fmt"

	"minhas-financas/internal/domain"
	"minhas-financas/internal/repository"
)

// UserService holds the registration and authentication rules.
type UserService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	RegisterUser(ctx context.Context, candidate *domain.User) (*domain.User, error)
	ValidateEmail(ctx context.Context, email string) error
	// FindByID reports absence through the bool; the error is reserved for store failures.
	FindByID(ctx context.Context, id int64) (*domain.User, bool, error)
}

type userService struct {
	users     repository.UserRepository
	passwords PasswordEncoder
}

func NewUserService(users repository.UserRepository, passwords PasswordEncoder) UserService {
	if passwords == nil {
		passwords = PlainPasswordEncoder{}
	}
	return &userService{
		users:     users,
		passwords: passwords,
	}
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, authError(msgUserNotFound)
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	if !s.passwords.Matches(password, user.Password) {
		return nil, authError(msgInvalidPassword)
	}

	return user, nil
}

func (s *userService) RegisterUser(ctx context.Context, candidate *domain.User) (*domain.User, error) {
	if candidate == nil {
		return nil, ruleError("user is required")
	}
	if err := s.ValidateEmail(ctx, candidate.Email); err != nil {
		return nil, err
	}

	encoded, err := s.passwords.Encode(candidate.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     candidate.Name,
		Email:    candidate.Email,
		Password: encoded,
	}
	if err := s.users.Save(ctx, user); err != nil {
		// lost the race against a concurrent registration
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ruleError(msgEmailAlreadyExists)
		}
		return nil, err
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("save user %s: no id assigned", user.Email)
	}

	return user, nil
}

func (s *userService) ValidateEmail(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("validate email: %w", err)
	}
	if exists {
		return ruleError(msgEmailAlreadyExists)
	}
	return nil
}

func (s *userService) FindByID(ctx context.Context, id int64) (*domain.User, bool, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}
