package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/stridewear/storefront/internal/hash"
	"github.com/stridewear/storefront/internal/models"
	"github.com/stridewear/storefront/internal/repo"
	"github.com/stridewear/storefront/internal/util"
)

// AccountService covers everything a signed-in customer does to their
// own record: cart, wishlist, profile, password, preferences.
type AccountService struct {
	repo *repo.GormRepo
}

func NewAccountService(r *repo.GormRepo) *AccountService {
	return &AccountService{repo: r}
}

type AddToCartInput struct {
	ProductID uint   `json:"product_id"`
	Quantity  uint   `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (s *AccountService) AddToCart(ctx context.Context, userID uint, in AddToCartInput) error {
	v := newValidationError()
	if in.ProductID == 0 {
		v.add("product_id", "is required")
	}
	if in.Quantity < 1 {
		v.add("quantity", "must be at least 1")
	}
	if !v.ok() {
		return v
	}

	if _, err := s.repo.ProductByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, in.ProductID)
		}
		return fmt.Errorf("lookup product: %w", err)
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Size:      in.Size,
		Color:     in.Color,
	}
	if err := s.repo.AddCartItem(ctx, item); err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	return nil
}

func (s *AccountService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	items, err := s.repo.CartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return items, nil
}

// RemoveFromCart is idempotent: removing an absent line succeeds.
func (s *AccountService) RemoveFromCart(ctx context.Context, userID, itemID uint) error {
	err := s.repo.RemoveCartItem(ctx, userID, itemID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("remove cart item: %w", err)
	}
	return nil
}

func (s *AccountService) AddToWishlist(ctx context.Context, userID, productID uint) error {
	if productID == 0 {
		v := newValidationError()
		v.add("product_id", "is required")
		return v
	}
	if _, err := s.repo.ProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return fmt.Errorf("lookup product: %w", err)
	}
	if err := s.repo.AddWishlistItem(ctx, userID, productID); err != nil {
		return fmt.Errorf("add wishlist item: %w", err)
	}
	return nil
}

func (s *AccountService) GetWishlist(ctx context.Context, userID uint) ([]models.WishlistItem, error) {
	items, err := s.repo.WishlistItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	return items, nil
}

func (s *AccountService) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	err := s.repo.RemoveWishlistItem(ctx, userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	return nil
}

func (s *AccountService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.UserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}

type UpdateProfileInput struct {
	Name    *string         `json:"name"`
	Email   *string         `json:"email"`
	Phone   *string         `json:"phone"`
	Address *models.Address `json:"address"`
}

// UpdateProfile applies only the fields present in the request.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			v := newValidationError()
			v.add("email", "must not be empty")
			return nil, v
		}
		if email != user.Email {
			taken, err := s.repo.EmailTaken(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("check email: %w", err)
			}
			if taken {
				return nil, fmt.Errorf("%w: email already registered", ErrConflict)
			}
			user.Email = email
		}
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		user.Address = *in.Address
	}

	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return user, nil
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (s *AccountService) ChangePassword(ctx context.Context, userID uint, in ChangePasswordInput) error {
	if len(in.NewPassword) < minPasswordLen {
		v := newValidationError()
		v.add("new_password", fmt.Sprintf("must be at least %d characters", minPasswordLen))
		return v
	}
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !hash.CheckPassword(user.PasswordHash, in.CurrentPassword) {
		return fmt.Errorf("%w: current password does not match", ErrInvalidCredential)
	}
	newHash, err := hash.HashPassword(in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

type UpdatePreferencesInput struct {
	EmailNotifications *bool `json:"email_notifications"`
	SMSNotifications   *bool `json:"sms_notifications"`
	OrderUpdates       *bool `json:"order_updates"`
	PromotionalEmails  *bool `json:"promotional_emails"`
	Newsletter         *bool `json:"newsletter"`
}

func (s *AccountService) UpdatePreferences(ctx context.Context, userID uint, in UpdatePreferencesInput) (*models.Preferences, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.EmailNotifications != nil {
		user.Preferences.EmailNotifications = *in.EmailNotifications
	}
	if in.SMSNotifications != nil {
		user.Preferences.SMSNotifications = *in.SMSNotifications
	}
	if in.OrderUpdates != nil {
		user.Preferences.OrderUpdates = *in.OrderUpdates
	}
	if in.PromotionalEmails != nil {
		user.Preferences.PromotionalEmails = *in.PromotionalEmails
	}
	if in.Newsletter != nil {
		user.Preferences.Newsletter = *in.Newsletter
	}
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	return &user.Preferences, nil
}

// DeleteAccount removes the user with cart and wishlist. Orders stay.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	err := s.repo.DeleteUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

type UserPage struct {
	Users []models.User `json:"users"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
	Total int64         `json:"total"`
}

func (s *AccountService) ListUsers(ctx context.Context, page, size int) (*UserPage, error) {
	offset, limit := util.Calculate(page, size)
	users, total, err := s.repo.ListUsers(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if page < 1 {
		page = 1
	}
	return &UserPage{Users: users, Page: page, Size: limit, Total: total}, nil
}
