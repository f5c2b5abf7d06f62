package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/stridewear/storefront/internal/events"
	"github.com/stridewear/storefront/internal/hash"
	"github.com/stridewear/storefront/internal/logging"
	"github.com/stridewear/storefront/internal/models"
	"github.com/stridewear/storefront/internal/repo"
	"github.com/stridewear/storefront/internal/tokens"
)

const minPasswordLen = 6

type AuthService struct {
	repo       *repo.GormRepo
	producer   *events.Producer
	jwtSecret  []byte
	adminEmail string
}

func NewAuthService(r *repo.GormRepo, p *events.Producer, jwtSecret []byte, adminEmail string) *AuthService {
	return &AuthService{repo: r, producer: p, jwtSecret: jwtSecret, adminEmail: strings.ToLower(adminEmail)}
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	v := newValidationError()
	if strings.TrimSpace(in.Name) == "" {
		v.add("name", "is required")
	}
	if in.Email == "" {
		v.add("email", "is required")
	}
	if len(in.Password) < minPasswordLen {
		v.add("password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
	}
	if in.Email == s.adminEmail {
		v.add("email", "is reserved")
	}
	if !v.ok() {
		return nil, v
	}

	taken, err := s.repo.EmailTaken(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: pwHash,
		Phone:        strings.TrimSpace(in.Phone),
		Preferences: models.Preferences{
			EmailNotifications: true,
			OrderUpdates:       true,
			PromotionalEmails:  true,
			Newsletter:         true,
		},
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publishUserEvent(ctx, "user_registered", user.ID)
	return s.issueToken(user)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates storefront customers only. Admin accounts,
// including the bootstrapped one, must use AdminLogin.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		v := newValidationError()
		if in.Email == "" {
			v.add("email", "is required")
		}
		if in.Password == "" {
			v.add("password", "is required")
		}
		return nil, v
	}
	if in.Email == s.adminEmail {
		return nil, fmt.Errorf("%w: use the admin login", ErrInvalidCredential)
	}

	user, err := s.repo.UserByEmail(ctx, in.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: unknown email or wrong password", ErrInvalidCredential)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user.IsAdmin || !hash.CheckPassword(user.PasswordHash, in.Password) {
		return nil, fmt.Errorf("%w: unknown email or wrong password", ErrInvalidCredential)
	}
	return s.issueToken(user)
}

// AdminLogin accepts either the configured bootstrap credentials or a
// stored admin account.
func (s *AuthService) AdminLogin(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: invalid admin credentials", ErrInvalidCredential)
	}

	user, err := s.repo.UserByEmail(ctx, in.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid admin credentials", ErrInvalidCredential)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !user.IsAdmin || !hash.CheckPassword(user.PasswordHash, in.Password) {
		return nil, fmt.Errorf("%w: invalid admin credentials", ErrInvalidCredential)
	}
	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*AuthResult, error) {
	role := tokens.RoleUser
	if user.IsAdmin {
		role = tokens.RoleAdmin
	}
	token, err := tokens.SignAccessToken(user.ID, role, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) publishUserEvent(ctx context.Context, eventType string, userID uint) {
	err := s.producer.Publish(ctx, events.TopicUserEvents, fmt.Sprint(userID), eventType, map[string]any{"user_id": userID})
	if err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "type", eventType, "error", err)
	}
}
