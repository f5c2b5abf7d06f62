package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/stridewear/storefront/internal/models"
)

// AddWishlistItem is idempotent: adding a product twice leaves a
// single entry and reports no error.
func (r *GormRepo) AddWishlistItem(ctx context.Context, userID, productID uint) error {
	item := models.WishlistItem{UserID: userID, ProductID: productID}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		FirstOrCreate(&item).Error
}

func (r *GormRepo) WishlistItems(ctx context.Context, userID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

// RemoveWishlistItem deletes by product id, not row id, matching how
// the storefront toggles the heart icon.
func (r *GormRepo) RemoveWishlistItem(ctx context.Context, userID, productID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
