// ABOUTME: In-memory data store backing the mock storefront API
// ABOUTME: Seeded with a small leather-goods catalog and demo accounts

package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lazybrownass/zorel-leather/internal/client"
	"golang.org/x/crypto/bcrypt"
)

// account is a stored user with its password hash.
type account struct {
	client.User
	PasswordHash []byte
	Deactivated  bool
}

// Store holds all mock backend state. Safe for concurrent handlers.
type Store struct {
	mu            sync.RWMutex
	users         map[string]*account // by email
	products      []client.Product
	orders        []client.Order
	wishlists     map[string][]client.WishlistItem // by user ID
	coupons       map[string]client.Coupon         // by code
	reviews       map[string][]client.Review       // by product ID
	adminRequests []client.AdminRequest
	intents       map[string]*client.PaymentIntent // by intent ID
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:     map[string]*account{},
		wishlists: map[string][]client.WishlistItem{},
		coupons:   map[string]client.Coupon{},
		reviews:   map[string][]client.Review{},
		intents:   map[string]*client.PaymentIntent{},
	}
}

// Seed populates the store with demo accounts, catalog, and coupons.
func (s *Store) Seed() {
	s.AddUser("ada@example.com", "customer-pass", "Ada Lovelace", client.RoleCustomer)
	s.AddUser("grace@zorel.example", "admin-pass", "Grace Hopper", client.RoleAdmin)
	s.AddUser("margaret@zorel.example", "super-pass", "Margaret Hamilton", client.RoleSuperAdmin)

	now := time.Now().UTC()
	s.mu.Lock()
	s.products = []client.Product{
		{ID: uuid.NewString(), Name: "Heritage Briefcase", Slug: "heritage-briefcase", Description: "Full-grain leather briefcase with brass hardware.", Price: 1250, Currency: "USD", Category: "bags", Images: []string{"/images/heritage-briefcase.jpg"}, IsFeatured: true, InStock: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Voyager Duffel", Slug: "voyager-duffel", Description: "Weekend duffel in oiled saddle leather.", Price: 1480, Currency: "USD", Category: "bags", Images: []string{"/images/voyager-duffel.jpg"}, IsFeatured: true, InStock: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Cardholder No. 4", Slug: "cardholder-no-4", Description: "Slim six-slot cardholder, hand-burnished edges.", Price: 185, Currency: "USD", Category: "small-goods", IsFeatured: true, InStock: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Meridian Belt", Slug: "meridian-belt", Description: "Bridle leather belt with solid brass buckle.", Price: 240, Currency: "USD", Category: "accessories", IsFeatured: true, InStock: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Atlas Portfolio", Slug: "atlas-portfolio", Description: "A4 document portfolio with suede lining.", Price: 620, Currency: "USD", Category: "small-goods", InStock: true, CreatedAt: now},
		{ID: uuid.NewString(), Name: "Sovereign Tote", Slug: "sovereign-tote", Description: "Structured tote in pebbled calfskin.", Price: 980, Currency: "USD", Category: "bags", InStock: false, CreatedAt: now},
	}
	s.coupons["WELCOME10"] = client.Coupon{Code: "WELCOME10", Description: "10% off a first request", DiscountPercent: 10}
	s.coupons["ATELIER20"] = client.Coupon{Code: "ATELIER20", Description: "20% off atelier pieces", DiscountPercent: 20}
	s.mu.Unlock()
}

// AddUser registers an account with a bcrypt-hashed password and returns it.
func (s *Store) AddUser(email, password, name, role string) *client.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	acct := &account{
		User: client.User{
			ID:        uuid.NewString(),
			Name:      name,
			Email:     email,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		},
		PasswordHash: hash,
	}

	s.mu.Lock()
	s.users[strings.ToLower(email)] = acct
	s.mu.Unlock()
	u := acct.User
	return &u
}

// Authenticate checks credentials and returns the account's user on match.
func (s *Store) Authenticate(email, password string) (*client.User, bool, bool) {
	s.mu.RLock()
	acct, ok := s.users[strings.ToLower(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, false, false
	}
	if bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)) != nil {
		return nil, false, false
	}
	u := acct.User
	return &u, true, acct.Deactivated
}

// UserByID looks a user up by ID.
func (s *Store) UserByID(id string) (*client.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, acct := range s.users {
		if acct.ID == id {
			u := acct.User
			return &u, true
		}
	}
	return nil, false
}

// UserByEmail looks a user up by email.
func (s *Store) UserByEmail(email string) (*client.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if acct, ok := s.users[strings.ToLower(email)]; ok {
		u := acct.User
		return &u, true
	}
	return nil, false
}

// SetRole changes a user's role, for admin-access approvals.
func (s *Store) SetRole(email, role string) {
	s.mu.Lock()
	if acct, ok := s.users[strings.ToLower(email)]; ok {
		acct.Role = role
	}
	s.mu.Unlock()
}

// productFilter narrows a product listing.
type productFilter struct {
	Category string
	Search   string
	Featured *bool
	MinPrice *float64
	MaxPrice *float64
}

// FilterProducts returns products matching f, newest first ordering kept.
func (s *Store) FilterProducts(f productFilter) []client.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []client.Product
	for _, p := range s.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Featured != nil && p.IsFeatured != *f.Featured {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if f.Search != "" {
			hay := strings.ToLower(p.Name + " " + p.Description)
			if !strings.Contains(hay, strings.ToLower(f.Search)) {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// ProductByID returns a product by ID.
func (s *Store) ProductByID(id string) (*client.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			cp := p
			return &cp, true
		}
	}
	return nil, false
}

// ProductBySlug returns a product by slug.
func (s *Store) ProductBySlug(slug string) (*client.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Slug == slug {
			cp := p
			return &cp, true
		}
	}
	return nil, false
}

// Categories derives the category list with product counts.
func (s *Store) Categories() []client.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{}
	for _, p := range s.products {
		counts[p.Category]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]client.Category, 0, len(names))
	for _, name := range names {
		out = append(out, client.Category{Name: name, Slug: name, ProductCount: counts[name]})
	}
	return out
}

// AddProduct inserts a product and returns it with generated fields set.
func (s *Store) AddProduct(p client.Product) client.Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Slug == "" {
		p.Slug = strings.ReplaceAll(strings.ToLower(p.Name), " ", "-")
	}
	p.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.products = append(s.products, p)
	s.mu.Unlock()
	return p
}

// UpdateProduct replaces a product by ID.
func (s *Store) UpdateProduct(id string, p client.Product) (*client.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p.ID = id
			p.CreatedAt = s.products[i].CreatedAt
			s.products[i] = p
			cp := p
			return &cp, true
		}
	}
	return nil, false
}

// DeleteProduct removes a product by ID.
func (s *Store) DeleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true
		}
	}
	return false
}

// AddOrder stores a new request for a user.
func (s *Store) AddOrder(userID string, req client.CreateOrderRequest, total float64) client.Order {
	order := client.Order{
		ID:              uuid.NewString(),
		OrderNumber:     "ZL-" + strings.ToUpper(uuid.NewString()[:8]),
		UserID:          userID,
		Status:          client.OrderStatusPending,
		Items:           req.Items,
		Total:           total,
		Currency:        "USD",
		ShippingAddress: req.ShippingAddress,
		Notes:           req.Notes,
		CreatedAt:       time.Now().UTC(),
	}

	s.mu.Lock()
	s.orders = append(s.orders, order)
	s.mu.Unlock()
	return order
}

// OrdersForUser lists a user's requests, optionally filtered by status.
func (s *Store) OrdersForUser(userID, status string) []client.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []client.Order
	for _, o := range s.orders {
		if o.UserID != userID {
			continue
		}
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// OrdersByStatus lists all requests with the given status (admin view).
func (s *Store) OrdersByStatus(status string) []client.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []client.Order
	for _, o := range s.orders {
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, o)
	}
	return out
}

// OrderByID returns a request by ID.
func (s *Store) OrderByID(id string) (*client.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			cp := o
			return &cp, true
		}
	}
	return nil, false
}

// SetOrderStatus transitions a request.
func (s *Store) SetOrderStatus(id, status string) (*client.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].Status = status
			cp := s.orders[i]
			return &cp, true
		}
	}
	return nil, false
}

// Wishlist returns a user's saved products.
func (s *Store) Wishlist(userID string) []client.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]client.WishlistItem(nil), s.wishlists[userID]...)
}

// AddWishlistItem saves a product for a user. Returns false on duplicate.
func (s *Store) AddWishlistItem(userID string, product client.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.wishlists[userID] {
		if item.ProductID == product.ID {
			return false
		}
	}
	s.wishlists[userID] = append(s.wishlists[userID], client.WishlistItem{
		ProductID: product.ID,
		Product:   &product,
		AddedAt:   time.Now().UTC(),
	})
	return true
}

// RemoveWishlistItem removes a saved product. Returns false when absent.
func (s *Store) RemoveWishlistItem(userID, productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.wishlists[userID]
	for i, item := range items {
		if item.ProductID == productID {
			s.wishlists[userID] = append(items[:i], items[i+1:]...)
			return true
		}
	}
	return false
}

// Coupons lists all coupons.
func (s *Store) Coupons() []client.Coupon {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := make([]string, 0, len(s.coupons))
	for code := range s.coupons {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]client.Coupon, 0, len(codes))
	for _, code := range codes {
		out = append(out, s.coupons[code])
	}
	return out
}

// CouponByCode looks a coupon up.
func (s *Store) CouponByCode(code string) (client.Coupon, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.coupons[strings.ToUpper(code)]
	return c, ok
}

// Reviews lists reviews for a product.
func (s *Store) Reviews(productID string) []client.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]client.Review(nil), s.reviews[productID]...)
}

// AddReview stores a review.
func (s *Store) AddReview(productID, author string, rating int, comment string, images []string) client.Review {
	review := client.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		Author:    author,
		Rating:    rating,
		Comment:   comment,
		Images:    images,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.reviews[productID] = append(s.reviews[productID], review)
	s.mu.Unlock()
	return review
}

// AddAdminRequest stores an admin-access application.
func (s *Store) AddAdminRequest(name, email, reason string) client.AdminRequest {
	req := client.AdminRequest{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       email,
		Reason:      reason,
		Status:      "pending",
		RequestedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.adminRequests = append(s.adminRequests, req)
	s.mu.Unlock()
	return req
}

// AdminRequests lists admin-access applications, optionally by status.
func (s *Store) AdminRequests(status string) []client.AdminRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []client.AdminRequest
	for _, r := range s.adminRequests {
		if status != "" && r.Status != status {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SetAdminRequestStatus transitions an admin-access application.
func (s *Store) SetAdminRequestStatus(id, status string) (*client.AdminRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.adminRequests {
		if s.adminRequests[i].ID == id {
			s.adminRequests[i].Status = status
			cp := s.adminRequests[i]
			return &cp, true
		}
	}
	return nil, false
}

// AddIntent stores a payment intent.
func (s *Store) AddIntent(orderID string, amount float64) *client.PaymentIntent {
	intent := &client.PaymentIntent{
		ID:           uuid.NewString(),
		OrderID:      orderID,
		ClientSecret: uuid.NewString(),
		Amount:       amount,
		Currency:     "USD",
		Status:       "requires_confirmation",
	}

	s.mu.Lock()
	s.intents[intent.ID] = intent
	s.mu.Unlock()
	cp := *intent
	return &cp
}

// ConfirmIntent marks a payment intent succeeded.
func (s *Store) ConfirmIntent(id string) (*client.PaymentIntent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	intent, ok := s.intents[id]
	if !ok {
		return nil, false
	}
	intent.Status = "succeeded"
	cp := *intent
	return &cp, true
}
