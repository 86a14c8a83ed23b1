// ABOUTME: HTTP handlers for the mock storefront API
// ABOUTME: Implements auth, catalog, requests, wishlist, coupons, reviews, admin

package mockapi

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/lazybrownass/zorel-leather/internal/client"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// paginate slices items into the uniform list envelope.
func paginate[T any](items []T, page, limit int) client.Paginated[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	data := items[start:end]
	if data == nil {
		data = []T{}
	}
	return client.Paginated[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}

func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// --- auth ---

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.login(w, r, "")
}

// handleAdminLogin issues an admin-scoped token; non-staff accounts are
// rejected even with valid credentials.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	s.login(w, r, "admin")
}

func (s *Server) login(w http.ResponseWriter, r *http.Request, scope string) {
	var creds client.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeValidationError(w, fieldIssue{Msg: "invalid JSON body", Loc: []any{"body"}})
		return
	}
	var issues []fieldIssue
	if creds.Email == "" {
		issues = append(issues, requireIssue("email"))
	}
	if creds.Password == "" {
		issues = append(issues, requireIssue("password"))
	}
	if len(issues) > 0 {
		writeValidationError(w, issues...)
		return
	}

	user, ok, deactivated := s.store.Authenticate(creds.Email, creds.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, "Invalid email or password", nil)
		return
	}
	if deactivated {
		writeError(w, http.StatusForbidden, codeAccountDeactivated, "Your account has been deactivated", nil)
		return
	}
	if scope == "admin" && user.Role != client.RoleAdmin && user.Role != client.RoleSuperAdmin {
		writeError(w, http.StatusForbidden, codeInvalidCredentials, "Admin access required", nil)
		return
	}

	token, err := issueToken(s.secret, user.ID, user.Role, scope)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, client.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req client.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, fieldIssue{Msg: "invalid JSON body", Loc: []any{"body"}})
		return
	}
	var issues []fieldIssue
	if req.Name == "" {
		issues = append(issues, requireIssue("name"))
	}
	if req.Email == "" {
		issues = append(issues, requireIssue("email"))
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		issues = append(issues, fieldIssue{Msg: "value is not a valid email address", Loc: []any{"body", "email"}})
	}
	if len(req.Password) < 8 {
		issues = append(issues, fieldIssue{Msg: "ensure this value has at least 8 characters", Loc: []any{"body", "password"}})
	}
	if len(issues) > 0 {
		writeValidationError(w, issues...)
		return
	}

	if _, exists := s.store.UserByEmail(req.Email); exists {
		writeError(w, http.StatusConflict, codeDuplicateEmail, "An account with this email already exists", nil)
		return
	}

	user := s.store.AddUser(req.Email, req.Password, req.Name, client.RoleCustomer)
	token, err := issueToken(s.secret, user.ID, user.Role, "")
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}
	writeJSON(w, http.StatusCreated, client.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, callerFrom(r).User)
}

// --- catalog ---

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := productFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if v := q.Get("is_featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			writeValidationError(w, fieldIssue{Msg: "value could not be parsed to a boolean", Loc: []any{"query", "is_featured"}})
			return
		}
		filter.Featured = &featured
	}
	if v := q.Get("min_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeValidationError(w, fieldIssue{Msg: "value is not a valid float", Loc: []any{"query", "min_price"}})
			return
		}
		filter.MinPrice = &price
	}
	if v := q.Get("max_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeValidationError(w, fieldIssue{Msg: "value is not a valid float", Loc: []any{"query", "max_price"}})
			return
		}
		filter.MaxPrice = &price
	}

	page, limit := pageParams(r)
	writeJSON(w, http.StatusOK, paginate(s.store.FilterProducts(filter), page, limit))
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.ProductByID(r.PathValue("id"))
	if !ok {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleProductBySlug(w http.ResponseWriter, r *http.Request) {
	p, ok := s.store.ProductBySlug(r.PathValue("slug"))
	if !ok {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Categories())
}

// --- search ---

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeValidationError(w, fieldIssue{Msg: "field required", Loc: []any{"query", "q"}, Type: "missing"})
		return
	}
	page, limit := pageParams(r)
	writeJSON(w, http.StatusOK, paginate(s.store.FilterProducts(productFilter{Search: q}), page, limit))
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))
	suggestions := []string{}
	if q != "" {
		for _, p := range s.store.FilterProducts(productFilter{}) {
			if strings.Contains(strings.ToLower(p.Name), q) {
				suggestions = append(suggestions, p.Name)
			}
		}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

// --- wishlist ---

func (s *Server) handleWishlist(w http.ResponseWriter, r *http.Request) {
	items := s.store.Wishlist(callerFrom(r).User.ID)
	if items == nil {
		items = []client.WishlistItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddToWishlist(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == "" {
		writeValidationError(w, requireIssue("product_id"))
		return
	}

	product, ok := s.store.ProductByID(body.ProductID)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	if !s.store.AddWishlistItem(callerFrom(r).User.ID, *product) {
		writeError(w, http.StatusConflict, codeDuplicateItem, "Product is already in your wishlist", nil)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	if !s.store.RemoveWishlistItem(callerFrom(r).User.ID, r.PathValue("id")) {
		writeDetail(w, http.StatusNotFound, "Item not in wishlist")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- orders (requests) ---

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req client.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, fieldIssue{Msg: "invalid JSON body", Loc: []any{"body"}})
		return
	}
	if len(req.Items) == 0 {
		writeValidationError(w, requireIssue("items"))
		return
	}

	var total float64
	for i, item := range req.Items {
		if item.Quantity < 1 {
			writeValidationError(w, fieldIssue{Msg: "ensure this value is greater than 0", Loc: []any{"body", "items", i, "quantity"}})
			return
		}
		product, ok := s.store.ProductByID(item.ProductID)
		if !ok {
			writeDetail(w, http.StatusNotFound, "Product not found: "+item.ProductID)
			return
		}
		req.Items[i].Name = product.Name
		req.Items[i].UnitPrice = product.Price
		total += product.Price * float64(item.Quantity)
	}

	if req.CouponCode != "" {
		coupon, ok := s.store.CouponByCode(req.CouponCode)
		if !ok {
			writeValidationError(w, fieldIssue{Msg: "unknown coupon code", Loc: []any{"body", "coupon_code"}})
			return
		}
		total *= 1 - coupon.DiscountPercent/100
	}

	order := s.store.AddOrder(callerFrom(r).User.ID, req, total)
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	orders := s.store.OrdersForUser(callerFrom(r).User.ID, r.URL.Query().Get("status"))
	page, limit := pageParams(r)
	writeJSON(w, http.StatusOK, paginate(orders, page, limit))
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := s.store.OrderByID(r.PathValue("id"))
	if !ok {
		writeDetail(w, http.StatusNotFound, "Request not found")
		return
	}
	c := callerFrom(r)
	if order.UserID != c.User.ID && c.User.Role == client.RoleCustomer {
		writeDetail(w, http.StatusForbidden, "Not your request")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// --- coupons ---

func (s *Server) handleCoupons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Coupons())
}

// handleValidateCoupon reports validity as data; an unknown code is a
// negative result, not an HTTP error.
func (s *Server) handleValidateCoupon(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	coupon, ok := s.store.CouponByCode(code)
	if !ok {
		writeJSON(w, http.StatusOK, client.CouponValidation{
			Valid:  false,
			Code:   strings.ToUpper(code),
			Reason: "Unknown or expired coupon code",
		})
		return
	}
	writeJSON(w, http.StatusOK, client.CouponValidation{
		Valid:           true,
		Code:            coupon.Code,
		DiscountPercent: coupon.DiscountPercent,
	})
}

// --- reviews ---

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.store.ProductByID(r.PathValue("id")); !ok {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	page, limit := pageParams(r)
	writeJSON(w, http.StatusOK, paginate(s.store.Reviews(r.PathValue("id")), page, limit))
}

// handleCreateReview accepts a multipart form so reviews can carry images.
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if _, ok := s.store.ProductByID(productID); !ok {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeValidationError(w, fieldIssue{Msg: "invalid multipart form", Loc: []any{"body"}})
		return
	}

	rating, err := strconv.Atoi(r.FormValue("rating"))
	if err != nil || rating < 1 || rating > 5 {
		writeValidationError(w, fieldIssue{Msg: "ensure this value is between 1 and 5", Loc: []any{"body", "rating"}})
		return
	}
	comment := r.FormValue("comment")
	if comment == "" {
		writeValidationError(w, requireIssue("comment"))
		return
	}

	var images []string
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			images = append(images, "/uploads/review/"+uuid.NewString()+"-"+fh.Filename)
		}
	}

	review := s.store.AddReview(productID, callerFrom(r).User.Name, rating, comment, images)
	writeJSON(w, http.StatusCreated, review)
}

// --- uploads ---

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		writeValidationError(w, fieldIssue{Msg: "invalid multipart form", Loc: []any{"body"}})
		return
	}
	purpose := r.FormValue("purpose")
	switch purpose {
	case client.UploadPurposeProduct, client.UploadPurposeReview, client.UploadPurposeAvatar:
	default:
		writeValidationError(w, fieldIssue{Msg: "unknown upload purpose", Loc: []any{"body", "purpose"}})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeValidationError(w, requireIssue("file"))
		return
	}
	file.Close()

	writeJSON(w, http.StatusCreated, client.UploadResponse{
		URL:      "/uploads/" + purpose + "/" + uuid.NewString() + "-" + header.Filename,
		Filename: header.Filename,
		Purpose:  purpose,
	})
}

// --- payments ---

func (s *Server) handleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OrderID string `json:"order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.OrderID == "" {
		writeValidationError(w, requireIssue("order_id"))
		return
	}

	order, ok := s.store.OrderByID(body.OrderID)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Request not found")
		return
	}
	if order.UserID != callerFrom(r).User.ID {
		writeDetail(w, http.StatusForbidden, "Not your request")
		return
	}
	if order.Status != client.OrderStatusApproved {
		writeError(w, http.StatusConflict, "REQUEST_NOT_APPROVED", "Request must be approved before payment", nil)
		return
	}
	writeJSON(w, http.StatusCreated, s.store.AddIntent(order.ID, order.Total))
}

func (s *Server) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	intent, ok := s.store.ConfirmIntent(r.PathValue("id"))
	if !ok {
		writeDetail(w, http.StatusNotFound, "Payment intent not found")
		return
	}
	s.store.SetOrderStatus(intent.OrderID, client.OrderStatusPaid)
	writeJSON(w, http.StatusOK, intent)
}

// --- admin ---

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeProductInput(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, s.store.AddProduct(productFromInput(input)))
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeProductInput(w, r)
	if !ok {
		return
	}
	p, found := s.store.UpdateProduct(r.PathValue("id"), productFromInput(input))
	if !found {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteProduct(r.PathValue("id")) {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeProductInput(w http.ResponseWriter, r *http.Request) (client.ProductInput, bool) {
	var input client.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationError(w, fieldIssue{Msg: "invalid JSON body", Loc: []any{"body"}})
		return input, false
	}
	var issues []fieldIssue
	if input.Name == "" {
		issues = append(issues, requireIssue("name"))
	}
	if input.Price <= 0 {
		issues = append(issues, fieldIssue{Msg: "ensure this value is greater than 0", Loc: []any{"body", "price"}})
	}
	if input.Category == "" {
		issues = append(issues, requireIssue("category"))
	}
	if len(issues) > 0 {
		writeValidationError(w, issues...)
		return input, false
	}
	return input, true
}

func productFromInput(input client.ProductInput) client.Product {
	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}
	return client.Product{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Price:       input.Price,
		Currency:    currency,
		Category:    input.Category,
		Images:      input.Images,
		IsFeatured:  input.IsFeatured,
		InStock:     input.InStock,
	}
}

var orderTransitions = map[string]bool{
	client.OrderStatusApproved: true,
	client.OrderStatusRejected: true,
	client.OrderStatusShipped:  true,
}

func (s *Server) handlePendingRequests(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = client.OrderStatusPending
	}
	page, limit := pageParams(r)
	writeJSON(w, http.StatusOK, paginate(s.store.OrdersByStatus(status), page, limit))
}

func (s *Server) handleUpdateRequestStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeValidationError(w, fieldIssue{Msg: "invalid JSON body", Loc: []any{"body"}})
		return
	}
	if !orderTransitions[body.Status] {
		writeValidationError(w, fieldIssue{Msg: "status must be approved, rejected, or shipped", Loc: []any{"body", "status"}})
		return
	}

	order, ok := s.store.SetOrderStatus(r.PathValue("id"), body.Status)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Request not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleCreateAdminRequest(w http.ResponseWriter, r *http.Request) {
	var input client.AdminRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeValidationError(w, fieldIssue{Msg: "invalid JSON body", Loc: []any{"body"}})
		return
	}
	var issues []fieldIssue
	if input.Name == "" {
		issues = append(issues, requireIssue("name"))
	}
	if input.Email == "" {
		issues = append(issues, requireIssue("email"))
	}
	if len(issues) > 0 {
		writeValidationError(w, issues...)
		return
	}
	writeJSON(w, http.StatusCreated, s.store.AddAdminRequest(input.Name, input.Email, input.Reason))
}

func (s *Server) handleAdminRequests(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	writeJSON(w, http.StatusOK, paginate(s.store.AdminRequests(r.URL.Query().Get("status")), page, limit))
}

// handleApproveAdminRequest grants the application and promotes the account
// if one exists for the applicant's email.
func (s *Server) handleApproveAdminRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := s.store.SetAdminRequestStatus(r.PathValue("id"), "approved")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Access request not found")
		return
	}
	s.store.SetRole(req.Email, client.RoleAdmin)
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleRejectAdminRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := s.store.SetAdminRequestStatus(r.PathValue("id"), "rejected")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Access request not found")
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// --- health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
