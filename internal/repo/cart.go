package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/stridewear/storefront/internal/models"
)

// AddCartItem upserts one cart line. An existing (product, size,
// color) line gets its quantity bumped atomically; otherwise a new
// line is inserted. Runs in a transaction so the check-then-insert
// cannot race with itself.
func (r *GormRepo) AddCartItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
				item.UserID, item.ProductID, item.Size, item.Color).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}
		return tx.Create(item).Error
	})
}

func (r *GormRepo) CartItems(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, userID, itemID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
