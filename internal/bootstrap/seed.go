package bootstrap

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/stridewear/storefront/internal/models"
)

// sampleProducts is the dev/demo catalog. Seeding only runs against an
// empty products table, so it never clobbers real data.
var sampleProducts = []models.Product{
	{
		Name:        "Boys Athletic T-Shirt",
		Description: "Comfortable moisture-wicking athletic t-shirt perfect for sports and casual wear",
		Price:       25.99,
		Category:    models.CategoryTShirts,
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"Blue", "Red", "Black", "White"},
		Image:       "https://via.placeholder.com/400x400/0080ff/ffffff?text=Athletic+T-Shirt",
		Stock:       50,
		Brand:       "SportMax",
		IsActive:    true,
	},
	{
		Name:        "Boys Basketball Shorts",
		Description: "Lightweight basketball shorts with elastic waistband and side pockets",
		Price:       19.99,
		Category:    models.CategoryShorts,
		Sizes:       []string{"XS", "S", "M", "L", "XL"},
		Colors:      []string{"Black", "Navy", "Gray"},
		Image:       "https://via.placeholder.com/400x400/333333/ffffff?text=Basketball+Shorts",
		Stock:       40,
		Brand:       "CourtKing",
		IsActive:    true,
	},
	{
		Name:        "Boys Running Tracksuit",
		Description: "Complete tracksuit set with jacket and pants, perfect for training",
		Price:       65.99,
		Category:    models.CategoryTracksuits,
		Sizes:       []string{"S", "M", "L", "XL", "XXL"},
		Colors:      []string{"Navy/White", "Black/Red", "Gray/Blue"},
		Image:       "https://via.placeholder.com/400x400/000080/ffffff?text=Running+Tracksuit",
		Stock:       25,
		Brand:       "RunFast",
		IsActive:    true,
	},
	{
		Name:        "Boys Soccer Cleats",
		Description: "Professional soccer cleats with excellent grip and comfort",
		Price:       89.99,
		Category:    models.CategoryShoes,
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"Black/White", "Blue/Yellow", "Red/Black"},
		Image:       "https://via.placeholder.com/400x400/228B22/ffffff?text=Soccer+Cleats",
		Stock:       30,
		Brand:       "KickPro",
		IsActive:    true,
	},
	{
		Name:        "Boys Sports Water Bottle",
		Description: "BPA-free sports water bottle with easy-grip design",
		Price:       12.99,
		Category:    models.CategoryAccessories,
		Sizes:       []string{"M"},
		Colors:      []string{"Blue", "Green", "Red", "Black"},
		Image:       "https://via.placeholder.com/400x400/87CEEB/000000?text=Water+Bottle",
		Stock:       100,
		Brand:       "HydroSport",
		IsActive:    true,
	},
	{
		Name:        "Boys Training Hoodie",
		Description: "Warm and comfortable hoodie perfect for training and casual wear",
		Price:       39.99,
		Category:    models.CategoryTShirts,
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"Gray", "Black", "Navy", "Maroon"},
		Image:       "https://via.placeholder.com/400x400/696969/ffffff?text=Training+Hoodie",
		Stock:       35,
		Brand:       "SportMax",
		IsActive:    true,
	},
}

// SeedCatalog fills an empty catalog with the sample products. A
// non-empty table makes it a no-op, so repeated startups are safe.
func SeedCatalog(db *gorm.DB, log *slog.Logger) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}
	products := make([]models.Product, len(sampleProducts))
	copy(products, sampleProducts)
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	log.Info("catalog_seeded", "products", len(products))
	return nil
}
