package service

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/errors"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/storefront-checkout/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// SessionStore keeps the signed-in user of each device.
type SessionStore interface {
	Save(ctx context.Context, deviceID string, user *models.User) error
	Current(ctx context.Context, deviceID string) (*models.User, error)
	Clear(ctx context.Context, deviceID string) error
}

type LoginLimiter interface {
	Allow(ctx context.Context, email string) (allowed bool, remaining int64, retryAfter time.Duration, err error)
	Reset(ctx context.Context, email string) error
}

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, deviceID string, req *models.LoginRequest) (*models.User, error)
	Logout(ctx context.Context, deviceID string) error
	Current(ctx context.Context, deviceID string) (*models.User, error)
}

type userService struct {
	repo     repository.UserRepository
	sessions SessionStore
	limiter  LoginLimiter
	logger   *slog.Logger
}

func NewUserService(repo repository.UserRepository, sessions SessionStore, limiter LoginLimiter, logger *slog.Logger) UserService {
	return &userService{
		repo:     repo,
		sessions: sessions,
		limiter:  limiter,
		logger:   logger,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	existingUser, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, errors.DuplicateEntryError("Email already registered")
	}
	if err != nil && !stdErrors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.ThirdPartyError("Failed to check email").WithError(err)
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.ThirdPartyError("Failed to create user").WithError(err)
	}

	return user, nil
}

// Login checks the credentials and binds the user to deviceID.
func (s *userService) Login(ctx context.Context, deviceID string, req *models.LoginRequest) (*models.User, error) {

	allowed, remaining, retryAfter, err := s.limiter.Allow(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return nil, errors.TooManyRequestsError("Too many login attempts. Please try again later.").
			WithDetail(fmt.Sprintf("retry_after=%d", int64(math.Ceil(retryAfter.Seconds()))))
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil && !stdErrors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.ThirdPartyError("Failed to look up user").WithError(err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, errors.UnauthorizedError("Invalid email or password").
			WithDetail(fmt.Sprintf("remaining_attempts=%d", remaining))
	}

	if err := s.sessions.Save(ctx, deviceID, user); err != nil {
		return nil, errors.ThirdPartyError("Failed to start session").WithError(err)
	}

	if err := s.limiter.Reset(ctx, req.Email); err != nil {
		s.logger.Warn("Failed to reset login attempts", slog.Any("error", err))
	}

	return user, nil
}

func (s *userService) Logout(ctx context.Context, deviceID string) error {

	if err := s.sessions.Clear(ctx, deviceID); err != nil {
		return errors.ThirdPartyError("Failed to end session").WithError(err)
	}

	return nil
}

// Current returns the signed-in user of deviceID or NOT_AUTHENTICATED.
func (s *userService) Current(ctx context.Context, deviceID string) (*models.User, error) {

	user, err := s.sessions.Current(ctx, deviceID)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to read session").WithError(err)
	}

	if user == nil {
		return nil, errors.NotAuthenticatedError()
	}

	return user, nil
}
