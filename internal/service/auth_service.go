// Package service holds the business rules of the application, between the
// HTTP handlers and the repositories.
package service

import (
	"context"

	"warbler/internal/middleware"
	"warbler/internal/models"
	"warbler/internal/repository"
	"warbler/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when a username lookup misses, so the
// unknown-user and wrong-password paths cost the same.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements signup and authentication.
type AuthService struct {
	users  repository.UserRepository
	secret string
}

// SignupInput carries the fields of a signup request.
type SignupInput struct {
	Username string
	Email    string
	Password string
	ImageURL string
}

// NewAuthService returns a new AuthService.
func NewAuthService(users repository.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{users: users, secret: jwtSecret}
}

// Signup validates the input, hashes the password and persists a new user.
// Validation failures surface before any write; duplicate username or email
// is only detectable at commit and comes back as a conflict error from the
// repository, with the write rolled back.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := models.NewUser(in.Username, in.Email, string(hashed), in.ImageURL)
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	middleware.SignupsTotal.Inc()
	return user, nil
}

// Authenticate looks up the user by username and verifies the password.
// Returns (nil, nil) for unknown username and wrong password alike.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if user == nil {
		// Burn a comparison anyway.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil
	}

	return user, nil
}

// IssueToken returns a signed bearer token for the user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	return middleware.GenerateToken(s.secret, user.ID, user.Username)
}
