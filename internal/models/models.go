package models

import "time"

// Address is embedded both on the user profile and as the shipping
// snapshot on an order, so editing a profile never rewrites history.
type Address struct {
	Street  string `gorm:"not null;default:''" json:"street"`
	City    string `gorm:"not null;default:''" json:"city"`
	State   string `gorm:"not null;default:''" json:"state"`
	ZipCode string `gorm:"not null;default:''" json:"zip_code"`
	Country string `gorm:"not null;default:''" json:"country"`
}

type Preferences struct {
	EmailNotifications bool `gorm:"default:true"  json:"email_notifications"`
	SMSNotifications   bool `gorm:"default:false" json:"sms_notifications"`
	OrderUpdates       bool `gorm:"default:true"  json:"order_updates"`
	PromotionalEmails  bool `gorm:"default:true"  json:"promotional_emails"`
	Newsletter         bool `gorm:"default:true"  json:"newsletter"`
}

type User struct {
	ID           uint        `gorm:"primaryKey;autoIncrement"           json:"id"`
	Name         string      `gorm:"not null"                           json:"name"`
	Email        string      `gorm:"uniqueIndex;not null"               json:"email"`
	PasswordHash string      `gorm:"not null"                           json:"-"`
	Phone        string      `json:"phone"`
	IsAdmin      bool        `gorm:"not null;default:false"             json:"is_admin"`
	Address      Address     `gorm:"embedded;embeddedPrefix:address_"   json:"address"`
	Preferences  Preferences `gorm:"embedded;embeddedPrefix:pref_"      json:"preferences"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// CartItem is one cart line. The unique index over
// (user, product, size, color) is what makes the add operation an
// increment instead of a duplicate insert.
type CartItem struct {
	ID        uint     `gorm:"primaryKey"                              json:"id"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_cart_line"      json:"user_id"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_cart_line"      json:"product_id"`
	Size      string   `gorm:"not null;uniqueIndex:idx_cart_line"      json:"size"`
	Color     string   `gorm:"not null;uniqueIndex:idx_cart_line"      json:"color"`
	Quantity  uint     `gorm:"default:1;check:quantity>0"              json:"quantity"`
	Product   *Product `gorm:"foreignKey:ProductID"                    json:"product,omitempty"`
}

type WishlistItem struct {
	ID        uint     `gorm:"primaryKey"                              json:"id"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_wishlist_entry" json:"user_id"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_wishlist_entry" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID"                    json:"product,omitempty"`
}

const (
	CategoryTShirts     = "T-Shirts"
	CategoryShorts      = "Shorts"
	CategoryTracksuits  = "Tracksuits"
	CategoryShoes       = "Shoes"
	CategoryAccessories = "Accessories"
)

func Categories() []string {
	return []string{CategoryTShirts, CategoryShorts, CategoryTracksuits, CategoryShoes, CategoryAccessories}
}

func Sizes() []string {
	return []string{"XS", "S", "M", "L", "XL", "XXL"}
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description string    `gorm:"not null"                 json:"description"`
	Price       float64   `gorm:"not null"                 json:"price"`
	Category    string    `gorm:"not null;index"           json:"category"`
	Sizes       []string  `gorm:"serializer:json"          json:"sizes"`
	Colors      []string  `gorm:"serializer:json"          json:"colors"`
	Image       string    `gorm:"not null"                 json:"image"`
	Stock       uint      `gorm:"not null;default:0"       json:"stock"`
	Brand       string    `json:"brand"`
	IsActive    bool      `gorm:"not null"                 json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

func OrderStatuses() []string {
	return []string{OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled}
}

// OrderItem is the immutable snapshot of a cart line at order time;
// UnitPrice is the product price when the order was placed, not now.
type OrderItem struct {
	ID        uint     `gorm:"primaryKey"            json:"id"`
	OrderID   uint     `gorm:"index;not null"        json:"order_id"`
	ProductID uint     `gorm:"not null"              json:"product_id"`
	Quantity  uint     `gorm:"check:quantity>0"      json:"quantity"`
	Size      string   `json:"size"`
	Color     string   `json:"color"`
	UnitPrice float64  `gorm:"not null"              json:"unit_price"`
	Product   *Product `gorm:"foreignKey:ProductID"  json:"product,omitempty"`
}

type Order struct {
	ID              uint        `gorm:"primaryKey"                        json:"id"`
	Number          string      `gorm:"uniqueIndex;not null"              json:"number"`
	UserID          uint        `gorm:"index;not null"                    json:"user_id"`
	OrderedAt       time.Time   `gorm:"not null;index"                    json:"ordered_at"`
	Status          string      `gorm:"not null"                          json:"status"`
	TotalAmount     float64     `gorm:"not null"                          json:"total_amount"`
	ShippingAddress Address     `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod   string      `gorm:"not null"                          json:"payment_method"`
	Notes           string      `json:"notes"`
	Discount        float64     `json:"discount"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"                json:"items"`
	User            *User       `gorm:"foreignKey:UserID"                 json:"user,omitempty"`
}
