// ABOUTME: Transport-level types shared by the storefront API endpoints
// ABOUTME: Mirrors the backend's JSON shapes, no client-side behavior

package client

import "time"

// User roles as reported by the backend.
const (
	RoleCustomer   = "customer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// User is the authenticated identity returned by the who-am-I endpoint.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Paginated is the uniform envelope every list endpoint returns.
type Paginated[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// Product is a catalog item.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	IsFeatured  bool      `json:"is_featured"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category is a catalog grouping.
type Category struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"product_count"`
}

// Request (order) statuses. Zorel uses a request-before-purchase model:
// a customer submits a request and staff approve it before payment.
const (
	OrderStatusPending  = "pending"
	OrderStatusApproved = "approved"
	OrderStatusRejected = "rejected"
	OrderStatusPaid     = "paid"
	OrderStatusShipped  = "shipped"
)

// OrderItem is a single line of a request.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price,omitempty"`
}

// Order is a customer request for one or more items.
type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"order_number"`
	UserID          string      `json:"user_id"`
	Status          string      `json:"status"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Currency        string      `json:"currency"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// CreateOrderRequest is the payload for submitting a new request.
type CreateOrderRequest struct {
	Items           []OrderItem `json:"items"`
	ShippingAddress string      `json:"shipping_address,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	CouponCode      string      `json:"coupon_code,omitempty"`
}

// WishlistItem is one saved product.
type WishlistItem struct {
	ProductID string    `json:"product_id"`
	Product   *Product  `json:"product,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// Coupon is a discount code.
type Coupon struct {
	Code            string     `json:"code"`
	Description     string     `json:"description,omitempty"`
	DiscountPercent float64    `json:"discount_percent"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

// CouponValidation is the result of validating a coupon code.
type CouponValidation struct {
	Valid           bool    `json:"valid"`
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
	Reason          string  `json:"reason,omitempty"`
}

// Review is a customer product review.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UploadResponse is returned by file upload endpoints.
type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Purpose  string `json:"purpose"`
}

// AdminRequest is a pending request for admin dashboard access.
type AdminRequest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Reason      string    `json:"reason,omitempty"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}

// PaymentIntent is a payment authorization for an approved request.
type PaymentIntent struct {
	ID           string  `json:"id"`
	OrderID      string  `json:"order_id"`
	ClientSecret string  `json:"client_secret"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	Status       string  `json:"status"`
}
