package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/profile"
	"github.com/ayursutra/ayursutra/pkg/auth"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const minPasswordLength = 8

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type SignUpCommand struct {
	Email            string
	Password         string
	ClinicName       string
	PractitionerName string
}

type AuthService struct {
	userRepo    UserRepository
	profileRepo profile.Repository
	jwtManager  *auth.JWTManager
	log         *zap.Logger
}

func NewAuthService(userRepo UserRepository, profileRepo profile.Repository, jwtManager *auth.JWTManager, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtManager:  jwtManager,
		log:         log,
	}
}

// SignUp registers a practitioner account and its clinic profile in one
// step, then signs the new user in.
func (s *AuthService) SignUp(ctx context.Context, cmd *SignUpCommand) (*domain.TokenPair, error) {
	if err := validateSignUp(cmd); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	p := &profile.Profile{
		UserID:           u.ID,
		ClinicName:       strings.TrimSpace(cmd.ClinicName),
		PractitionerName: strings.TrimSpace(cmd.PractitionerName),
		Email:            email,
	}
	if err := s.profileRepo.Create(ctx, p); err != nil {
		s.log.Error("failed to create profile for new user",
			zap.String("user_id", u.ID.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("creating profile: %w", err)
	}

	s.log.Info("user signed up", zap.String("user_id", u.ID.String()))

	return s.jwtManager.GenerateTokenPair(&domain.Claims{UserID: u.ID, Email: u.Email})
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Burn a hash anyway so response time does not reveal whether the
		// email exists.
		_, _ = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn("failed login attempt", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	s.log.Info("user signed in", zap.String("user_id", user.ID.String()))

	return s.jwtManager.GenerateTokenPair(&domain.Claims{UserID: user.ID, Email: user.Email})
}

// RefreshToken issues a new token pair given a valid refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	// The account may have been removed since the token was minted.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.jwtManager.GenerateTokenPair(&domain.Claims{UserID: user.ID, Email: user.Email})
}

func validateSignUp(cmd *SignUpCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.Email) == "" {
		errs = append(errs, "email is required")
	} else if !strings.Contains(cmd.Email, "@") {
		errs = append(errs, "email is invalid")
	}
	if len(cmd.Password) < minPasswordLength {
		errs = append(errs, "password must be at least 8 characters")
	}
	if strings.TrimSpace(cmd.ClinicName) == "" {
		errs = append(errs, "clinic_name is required")
	}
	if len(strings.TrimSpace(cmd.PractitionerName)) < 2 {
		errs = append(errs, "practitioner_name must be at least 2 characters")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
