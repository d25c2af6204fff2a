package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zamirguliyev/e-commerce-api/internal/domain"
	"github.com/zamirguliyev/e-commerce-api/internal/repository"
	apperrors "github.com/zamirguliyev/e-commerce-api/pkg/errors"
)

// UserService implements account administration and profile management.
type UserService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// UpdateProfileInput holds the parameters for updating a user's own profile.
type UpdateProfileInput struct {
	Name         *string
	Surname      *string
	Username     *string
	Email        *string
	ProfileImage *string
}

// List returns a paginated page of users filtered by keyword, newest first.
// Admin only; enforcement happens at the HTTP layer.
func (s *UserService) List(ctx context.Context, keyword string, limit, offset int) ([]domain.User, int, error) {
	users, total, err := s.userRepo.List(ctx, keyword, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// UpdateProfile updates the caller's own profile fields. Changing email or
// username re-checks uniqueness.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user for update: %w", err)
	}

	checkEmail := user.Email
	checkUsername := user.Username

	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperrors.InvalidInput("name must not be empty")
		}
		user.Name = *input.Name
	}
	if input.Surname != nil {
		if *input.Surname == "" {
			return nil, apperrors.InvalidInput("surname must not be empty")
		}
		user.Surname = *input.Surname
	}
	if input.Username != nil {
		if *input.Username == "" {
			return nil, apperrors.InvalidInput("username must not be empty")
		}
		checkUsername = *input.Username
	}
	if input.Email != nil {
		if *input.Email == "" {
			return nil, apperrors.InvalidInput("email must not be empty")
		}
		checkEmail = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.ProfileImage != nil {
		user.ProfileImage = *input.ProfileImage
	}

	// Re-check uniqueness only when the identifying fields actually change.
	if checkEmail != user.Email || checkUsername != user.Username {
		exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, pickChanged(checkEmail, user.Email), pickChanged(checkUsername, user.Username))
		if err != nil {
			return nil, fmt.Errorf("check existing user: %w", err)
		}
		if exists {
			return nil, apperrors.Conflict("User already exists")
		}
		user.Email = checkEmail
		user.Username = checkUsername
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.InfoContext(ctx, "user profile updated",
		slog.String("user_id", user.ID),
	)

	return user, nil
}

// UpdateStatus sets the status of a user. Admin only; enforcement happens
// at the HTTP layer.
func (s *UserService) UpdateStatus(ctx context.Context, userID, status string) error {
	if !domain.IsValidStatus(status) {
		return apperrors.InvalidInput("status must be one of: " + strings.Join(domain.ValidStatuses(), ", "))
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, status); err != nil {
		return fmt.Errorf("update user status: %w", err)
	}

	s.logger.InfoContext(ctx, "user status updated",
		slog.String("user_id", userID),
		slog.String("status", status),
	)

	return nil
}

// pickChanged returns the candidate value when it differs from current,
// otherwise a value that cannot collide (the current one belongs to the
// caller and must not trip the uniqueness check).
func pickChanged(candidate, current string) string {
	if candidate == current {
		return ""
	}
	return candidate
}
