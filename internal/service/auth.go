package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zamirguliyev/e-commerce-api/internal/auth"
	"github.com/zamirguliyev/e-commerce-api/internal/domain"
	"github.com/zamirguliyev/e-commerce-api/internal/notifier"
	"github.com/zamirguliyev/e-commerce-api/internal/repository"
	apperrors "github.com/zamirguliyev/e-commerce-api/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 12

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// resetCodeTTL is how long a password reset code stays valid.
const resetCodeTTL = 10 * time.Minute

// AuthService implements the account lifecycle: registration, login, token
// rotation, logout, and the password reset flow.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	notifier notifier.Notifier
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *auth.TokenManager,
	n notifier.Notifier,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		notifier: n,
		logger:   logger,
	}
}

// RegisterInput holds the parameters for registering a new account.
type RegisterInput struct {
	Name     string
	Surname  string
	Username string
	Email    string
	Password string
}

// LoginInput holds the parameters for login.
type LoginInput struct {
	Email    string
	Password string
}

// Register creates a new account, hashes the password, and returns the
// public user together with a fresh token pair. The refresh token hash is
// persisted on the account row as part of the insert.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.TokenPair, error) {
	if input.Name == "" {
		return nil, nil, apperrors.InvalidInput("name is required")
	}
	if input.Surname == "" {
		return nil, nil, apperrors.InvalidInput("surname is required")
	}
	if input.Username == "" {
		return nil, nil, apperrors.InvalidInput("username is required")
	}
	if input.Email == "" {
		return nil, nil, apperrors.InvalidInput("email is required")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, email, input.Username)
	if err != nil {
		return nil, nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, nil, apperrors.Conflict("User already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Surname:      input.Surname,
		Username:     input.Username,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	accessToken, refreshToken, err := s.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("generate tokens: %w", err)
	}
	user.RefreshTokenHash = hashToken(refreshToken)

	// The unique indexes on email and username backstop the pre-check above
	// against concurrent registrations.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("create user: %w", err)
	}

	// Welcome notification is best-effort; a delivery failure never rolls
	// back the account.
	if err := s.notifier.SendWelcome(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to send welcome notification",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, &domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Login authenticates a user with email and password. Unknown email and
// wrong password return the identical error so callers cannot probe for
// account existence.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.User, *domain.TokenPair, error) {
	if input.Email == "" {
		return nil, nil, apperrors.InvalidInput("email is required")
	}
	if input.Password == "" {
		return nil, nil, apperrors.InvalidInput("password is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.InvalidCredentials()
		}
		return nil, nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, nil, apperrors.InvalidCredentials()
	}

	if user.Status == domain.StatusBanned {
		return nil, nil, apperrors.Forbidden("Account is banned")
	}

	tokens, err := s.rotateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
	)

	return user, tokens, nil
}

// Refresh validates a refresh token against both its signature and the hash
// stored on the account, then issues a new pair. The stored-hash comparison
// rejects replay of a token that has already been rotated out.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.User, *domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, nil, apperrors.Unauthenticated("refresh token is required")
	}

	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, apperrors.Unauthenticated("invalid or expired refresh token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.Unauthenticated("invalid or expired refresh token")
		}
		return nil, nil, fmt.Errorf("look up user: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenHash != hashToken(refreshToken) {
		return nil, nil, apperrors.Unauthenticated("invalid or expired refresh token")
	}

	tokens, err := s.rotateTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.logger.InfoContext(ctx, "tokens refreshed",
		slog.String("user_id", user.ID),
	)

	return user, tokens, nil
}

// Logout clears the stored refresh token for the user. Calling it again is
// a no-op.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshTokenHash(ctx, userID, ""); err != nil {
		return fmt.Errorf("clear refresh token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged out",
		slog.String("user_id", userID),
	)

	return nil
}

// Me retrieves the account for the given user ID.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ForgotPassword generates a 6-digit reset code valid for ten minutes,
// stores it on the account (overwriting any prior code), and dispatches it
// via the notifier.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperrors.InvalidInput("email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound("user", email)
		}
		return fmt.Errorf("look up user: %w", err)
	}

	code, err := generateResetCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	expiresAt := time.Now().UTC().Add(resetCodeTTL)
	if err := s.userRepo.SetResetCode(ctx, user.ID, code, expiresAt); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	if err := s.notifier.SendPasswordReset(ctx, user, code); err != nil {
		s.logger.ErrorContext(ctx, "failed to send password reset notification",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "password reset requested",
		slog.String("user_id", user.ID),
	)

	return nil
}

// ResetPassword consumes a reset code: the account must exist, the stored
// code must match, and the expiry must not have passed. On success the new
// password is stored, the code is cleared, and the stored refresh token is
// revoked so existing sessions must log in again.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return apperrors.InvalidOrExpired("Invalid or expired reset code")
	}

	if user.ResetCode == "" || user.ResetCode != code {
		return apperrors.InvalidOrExpired("Invalid or expired reset code")
	}
	if user.ResetCodeExpiresAt == nil || !time.Now().UTC().Before(*user.ResetCodeExpiresAt) {
		return apperrors.InvalidOrExpired("Invalid or expired reset code")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	if err := s.userRepo.CompletePasswordReset(ctx, user.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("complete password reset: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset completed",
		slog.String("user_id", user.ID),
	)

	return nil
}

// ChangePassword verifies the current password and stores a new one. The
// stored refresh token is revoked so other sessions must log in again.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" {
		return apperrors.InvalidInput("current password is required")
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	if currentPassword == newPassword {
		return apperrors.InvalidInput("new password must be different from current password")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user for password change: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.InvalidCredentials()
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.userRepo.UpdateRefreshTokenHash(ctx, userID, ""); err != nil {
		s.logger.ErrorContext(ctx, "failed to revoke refresh token after password change",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "password changed",
		slog.String("user_id", userID),
	)

	return nil
}

// rotateTokens issues a new token pair and overwrites the stored refresh
// token hash, invalidating the previous refresh token.
func (s *AuthService) rotateTokens(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessToken, refreshToken, err := s.tokens.GeneratePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	if err := s.userRepo.UpdateRefreshTokenHash(ctx, user.ID, hashToken(refreshToken)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// hashToken returns the SHA256 hex digest of the given token string.
func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// generateResetCode returns a random 6-digit numeric code.
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// validatePassword checks that the password meets minimum complexity requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	var hasUpper, hasLower, hasDigit bool
	for _, ch := range password {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit {
		return apperrors.InvalidInput("password must contain at least one uppercase letter, one lowercase letter, and one digit")
	}

	return nil
}
