// ABOUTME: Declarative route table for the mock storefront API
// ABOUTME: Per-route middleware picks the auth level each endpoint needs

package mockapi

import "net/http"

// route defines one endpoint with its method, path pattern, and handler.
type route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
	Admin   bool // requires a staff role
	Auth    bool // requires any authenticated caller
}

// routes returns the full endpoint table for registration.
func (s *Server) routes() []route {
	return []route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: s.handleHealth},

		// Auth
		{Method: http.MethodPost, Path: "/api/v1/auth/login", Handler: s.handleLogin},
		{Method: http.MethodPost, Path: "/api/v1/auth/register", Handler: s.handleRegister},
		{Method: http.MethodPost, Path: "/api/v1/auth/admin/login", Handler: s.handleAdminLogin},
		{Method: http.MethodGet, Path: "/api/v1/auth/me", Handler: s.handleMe, Auth: true},

		// Catalog
		{Method: http.MethodGet, Path: "/api/v1/products", Handler: s.handleProducts},
		{Method: http.MethodGet, Path: "/api/v1/products/categories", Handler: s.handleCategories},
		{Method: http.MethodGet, Path: "/api/v1/products/slug/{slug}", Handler: s.handleProductBySlug},
		{Method: http.MethodGet, Path: "/api/v1/products/{id}", Handler: s.handleProduct},

		// Search
		{Method: http.MethodGet, Path: "/api/v1/search", Handler: s.handleSearch},
		{Method: http.MethodGet, Path: "/api/v1/search/suggestions", Handler: s.handleSuggestions},

		// Wishlist
		{Method: http.MethodGet, Path: "/api/v1/wishlist", Handler: s.handleWishlist, Auth: true},
		{Method: http.MethodPost, Path: "/api/v1/wishlist", Handler: s.handleAddToWishlist, Auth: true},
		{Method: http.MethodDelete, Path: "/api/v1/wishlist/{id}", Handler: s.handleRemoveFromWishlist, Auth: true},

		// Requests
		{Method: http.MethodPost, Path: "/api/v1/orders", Handler: s.handleCreateOrder, Auth: true},
		{Method: http.MethodGet, Path: "/api/v1/orders", Handler: s.handleOrders, Auth: true},
		{Method: http.MethodGet, Path: "/api/v1/orders/{id}", Handler: s.handleOrder, Auth: true},

		// Coupons
		{Method: http.MethodGet, Path: "/api/v1/coupons", Handler: s.handleCoupons},
		{Method: http.MethodGet, Path: "/api/v1/coupons/validate/{code}", Handler: s.handleValidateCoupon},

		// Reviews
		{Method: http.MethodGet, Path: "/api/v1/products/{id}/reviews", Handler: s.handleReviews},
		{Method: http.MethodPost, Path: "/api/v1/products/{id}/reviews", Handler: s.handleCreateReview, Auth: true},

		// Uploads
		{Method: http.MethodPost, Path: "/api/v1/uploads", Handler: s.handleUpload, Auth: true},

		// Payments
		{Method: http.MethodPost, Path: "/api/v1/payments/intent", Handler: s.handleCreatePaymentIntent, Auth: true},
		{Method: http.MethodPost, Path: "/api/v1/payments/{id}/confirm", Handler: s.handleConfirmPayment, Auth: true},

		// Admin: catalog management and request triage
		{Method: http.MethodPost, Path: "/api/v1/admin/products", Handler: s.handleCreateProduct, Admin: true},
		{Method: http.MethodPut, Path: "/api/v1/admin/products/{id}", Handler: s.handleUpdateProduct, Admin: true},
		{Method: http.MethodDelete, Path: "/api/v1/admin/products/{id}", Handler: s.handleDeleteProduct, Admin: true},
		{Method: http.MethodGet, Path: "/api/v1/admin/requests", Handler: s.handlePendingRequests, Admin: true},
		{Method: http.MethodPut, Path: "/api/v1/admin/requests/{id}/status", Handler: s.handleUpdateRequestStatus, Admin: true},

		// Admin access applications
		{Method: http.MethodPost, Path: "/api/v1/admin/access-requests", Handler: s.handleCreateAdminRequest},
		{Method: http.MethodGet, Path: "/api/v1/admin/access-requests", Handler: s.handleAdminRequests, Admin: true},
		{Method: http.MethodPost, Path: "/api/v1/admin/access-requests/{id}/approve", Handler: s.handleApproveAdminRequest, Admin: true},
		{Method: http.MethodPost, Path: "/api/v1/admin/access-requests/{id}/reject", Handler: s.handleRejectAdminRequest, Admin: true},
	}
}
