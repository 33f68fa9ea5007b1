package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"foodpedia/internal/auth"
	"foodpedia/internal/model"
	"foodpedia/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	minNameLength     = 2
	maxNameLength     = 255
	maxEmailLength    = 255
	minPasswordLength = 6
	maxPasswordBytes  = 72 // bcrypt input limit
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenIssuer
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService creates a new account service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenIssuer, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "auth").Logger(),
		now:      time.Now,
	}
}

// Register creates an account and signs the user in.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("register request is nil")
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)

	switch {
	case name == "":
		return nil, model.NewValidationError("Name is required.")
	case utf8.RuneCountInString(name) < minNameLength:
		return nil, model.NewValidationError("Name must be at least 2 characters.")
	case utf8.RuneCountInString(name) > maxNameLength:
		return nil, model.NewValidationError("Name must be at most 255 characters.")
	case email == "":
		return nil, model.NewValidationError("Email is required.")
	case len(email) > maxEmailLength:
		return nil, model.NewValidationError("Email must be at most 255 characters.")
	case !emailPattern.MatchString(email):
		return nil, model.NewValidationError("Enter a valid email.")
	case len(req.Password) < minPasswordLength:
		return nil, model.NewValidationError("Password must be at least 6 characters.")
	case len(req.Password) > maxPasswordBytes:
		return nil, model.NewValidationError("Password must be at most 72 bytes.")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		JoinedDate:   s.now().UTC().Truncate(24 * time.Hour),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			s.logger.Debug().Msg("registration with existing email rejected")
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")

	return s.signIn(user)
}

// Login verifies credentials and signs the user in.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("login request is nil")
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Msg("invalid credentials")
		return nil, model.ErrInvalidCredentials
	}

	return s.signIn(user)
}

// Me retrieves the profile of the signed-in user.
func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to get user")
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *authService) signIn(user *model.User) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &model.AuthResponse{User: user, Token: token}, nil
}
