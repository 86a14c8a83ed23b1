// ABOUTME: Tests for the mock storefront API handlers
// ABOUTME: Exercises auth flows, catalog filters, request triage, and error shapes

package mockapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lazybrownass/zorel-leather/internal/client"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func doJSON(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func login(t *testing.T, baseURL, email, password string) string {
	t.Helper()
	resp := doJSON(t, "POST", baseURL+"/api/v1/auth/login", "", client.Credentials{Email: email, Password: password})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}
	return decode[client.AuthResponse](t, resp).AccessToken
}

func adminLogin(t *testing.T, baseURL string) string {
	t.Helper()
	resp := doJSON(t, "POST", baseURL+"/api/v1/auth/admin/login", "", client.Credentials{Email: "grace@zorel.example", Password: "admin-pass"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin login failed with status %d", resp.StatusCode)
	}
	return decode[client.AuthResponse](t, resp).AccessToken
}

func TestLogin_InvalidCredentials(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "POST", ts.URL+"/api/v1/auth/login", "", client.Credentials{Email: "ada@example.com", Password: "wrong"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	body := decode[map[string]map[string]string](t, resp)
	if body["error"]["code"] != "INVALID_CREDENTIALS" {
		t.Errorf("expected INVALID_CREDENTIALS code, got %q", body["error"]["code"])
	}
	if body["error"]["message"] != "Invalid email or password" {
		t.Errorf("unexpected message %q", body["error"]["message"])
	}
}

func TestLogin_MissingFields(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "POST", ts.URL+"/api/v1/auth/login", "", map[string]string{"email": "ada@example.com"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	var body struct {
		Detail []struct {
			Msg string `json:"msg"`
			Loc []any  `json:"loc"`
		} `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Detail) != 1 || body.Detail[0].Msg != "field required" {
		t.Fatalf("unexpected detail: %+v", body.Detail)
	}
	if body.Detail[0].Loc[1] != "password" {
		t.Errorf("expected loc to point at password, got %v", body.Detail[0].Loc)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "POST", ts.URL+"/api/v1/auth/register", "", client.RegisterRequest{
		Name: "Ada Again", Email: "ada@example.com", Password: "long-enough",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	body := decode[map[string]map[string]string](t, resp)
	if body["error"]["code"] != "DUPLICATE_EMAIL" {
		t.Errorf("expected DUPLICATE_EMAIL, got %q", body["error"]["code"])
	}
}

func TestRegister_IssuesWorkingToken(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "POST", ts.URL+"/api/v1/auth/register", "", client.RegisterRequest{
		Name: "New Customer", Email: "new@example.com", Password: "long-enough",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	auth := decode[client.AuthResponse](t, resp)

	me := doJSON(t, "GET", ts.URL+"/api/v1/auth/me", auth.AccessToken, nil)
	if me.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from /auth/me, got %d", me.StatusCode)
	}
	user := decode[client.User](t, me)
	if user.Email != "new@example.com" || user.Role != client.RoleCustomer {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestAdminLogin_RejectsCustomers(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "POST", ts.URL+"/api/v1/auth/admin/login", "", client.Credentials{Email: "ada@example.com", Password: "customer-pass"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestMe_RequiresToken(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "GET", ts.URL+"/api/v1/auth/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	resp = doJSON(t, "GET", ts.URL+"/api/v1/auth/me", "not-a-jwt", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for garbage token, got %d", resp.StatusCode)
	}
}

func TestProducts_FeaturedFilterAndLimit(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "GET", ts.URL+"/api/v1/products?is_featured=true&limit=4", "", nil)
	page := decode[client.Paginated[client.Product]](t, resp)
	if len(page.Data) != 4 {
		t.Fatalf("expected 4 featured products, got %d", len(page.Data))
	}
	for _, p := range page.Data {
		if !p.IsFeatured {
			t.Errorf("product %s not featured", p.Name)
		}
	}
}

func TestProducts_Pagination(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "GET", ts.URL+"/api/v1/products?page=2&limit=4", "", nil)
	page := decode[client.Paginated[client.Product]](t, resp)
	if page.Page != 2 || page.Limit != 4 {
		t.Errorf("envelope mismatch: %+v", page)
	}
	if page.Total != 6 || page.TotalPages != 2 {
		t.Errorf("expected 6 total over 2 pages, got %d over %d", page.Total, page.TotalPages)
	}
	if len(page.Data) != 2 {
		t.Errorf("expected 2 items on page 2, got %d", len(page.Data))
	}
}

func TestProductBySlug(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "GET", ts.URL+"/api/v1/products/slug/heritage-briefcase", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	p := decode[client.Product](t, resp)
	if p.Name != "Heritage Briefcase" {
		t.Errorf("unexpected product %q", p.Name)
	}

	missing := doJSON(t, "GET", ts.URL+"/api/v1/products/slug/nope", "", nil)
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missing.StatusCode)
	}
}

func TestCategories_CountsProducts(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "GET", ts.URL+"/api/v1/products/categories", "", nil)
	cats := decode[[]client.Category](t, resp)
	counts := map[string]int{}
	for _, c := range cats {
		counts[c.Name] = c.ProductCount
	}
	if counts["bags"] != 3 || counts["small-goods"] != 2 || counts["accessories"] != 1 {
		t.Errorf("unexpected category counts: %v", counts)
	}
}

func TestSearch_RequiresQuery(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "GET", ts.URL+"/api/v1/search", "", nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	hit := doJSON(t, "GET", ts.URL+"/api/v1/search?q=duffel", "", nil)
	page := decode[client.Paginated[client.Product]](t, hit)
	if page.Total != 1 || page.Data[0].Slug != "voyager-duffel" {
		t.Errorf("unexpected search result: %+v", page)
	}
}

func TestWishlist_RoundTripAndDuplicate(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts.URL, "ada@example.com", "customer-pass")
	product := srv.Store().FilterProducts(productFilter{})[0]

	add := doJSON(t, "POST", ts.URL+"/api/v1/wishlist", token, map[string]string{"product_id": product.ID})
	if add.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", add.StatusCode)
	}

	dup := doJSON(t, "POST", ts.URL+"/api/v1/wishlist", token, map[string]string{"product_id": product.ID})
	if dup.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", dup.StatusCode)
	}

	list := doJSON(t, "GET", ts.URL+"/api/v1/wishlist", token, nil)
	items := decode[[]client.WishlistItem](t, list)
	if len(items) != 1 || items[0].ProductID != product.ID {
		t.Fatalf("unexpected wishlist: %+v", items)
	}

	del := doJSON(t, "DELETE", ts.URL+"/api/v1/wishlist/"+product.ID, token, nil)
	if del.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", del.StatusCode)
	}
}

func TestCreateOrder_PricesFromCatalog(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts.URL, "ada@example.com", "customer-pass")
	product := srv.Store().FilterProducts(productFilter{Search: "Cardholder"})[0]

	resp := doJSON(t, "POST", ts.URL+"/api/v1/orders", token, client.CreateOrderRequest{
		Items: []client.OrderItem{{ProductID: product.ID, Quantity: 2}},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	order := decode[client.Order](t, resp)
	if order.Status != client.OrderStatusPending {
		t.Errorf("expected pending status, got %q", order.Status)
	}
	if order.Total != product.Price*2 {
		t.Errorf("expected total %v, got %v", product.Price*2, order.Total)
	}
	if !strings.HasPrefix(order.OrderNumber, "ZL-") {
		t.Errorf("unexpected order number %q", order.OrderNumber)
	}
}

func TestCreateOrder_CouponDiscount(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts.URL, "ada@example.com", "customer-pass")
	product := srv.Store().FilterProducts(productFilter{Search: "Cardholder"})[0]

	resp := doJSON(t, "POST", ts.URL+"/api/v1/orders", token, client.CreateOrderRequest{
		Items:      []client.OrderItem{{ProductID: product.ID, Quantity: 1}},
		CouponCode: "WELCOME10",
	})
	order := decode[client.Order](t, resp)
	want := product.Price * 0.9
	if order.Total != want {
		t.Errorf("expected discounted total %v, got %v", want, order.Total)
	}
}

func TestOrderTriage_AdminApprovesThenCustomerPays(t *testing.T) {
	srv, ts := newTestServer(t)
	customerToken := login(t, ts.URL, "ada@example.com", "customer-pass")
	adminToken := adminLogin(t, ts.URL)
	product := srv.Store().FilterProducts(productFilter{})[0]

	created := doJSON(t, "POST", ts.URL+"/api/v1/orders", customerToken, client.CreateOrderRequest{
		Items: []client.OrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	order := decode[client.Order](t, created)

	// Payment before approval is a conflict.
	early := doJSON(t, "POST", ts.URL+"/api/v1/payments/intent", customerToken, map[string]string{"order_id": order.ID})
	if early.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 before approval, got %d", early.StatusCode)
	}

	pending := doJSON(t, "GET", ts.URL+"/api/v1/admin/requests", adminToken, nil)
	page := decode[client.Paginated[client.Order]](t, pending)
	if page.Total != 1 {
		t.Fatalf("expected 1 pending request, got %d", page.Total)
	}

	approved := doJSON(t, "PUT", ts.URL+"/api/v1/admin/requests/"+order.ID+"/status", adminToken,
		map[string]string{"status": "approved"})
	if decode[client.Order](t, approved).Status != client.OrderStatusApproved {
		t.Fatal("expected approved status")
	}

	intentResp := doJSON(t, "POST", ts.URL+"/api/v1/payments/intent", customerToken, map[string]string{"order_id": order.ID})
	if intentResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", intentResp.StatusCode)
	}
	intent := decode[client.PaymentIntent](t, intentResp)

	confirmed := doJSON(t, "POST", ts.URL+"/api/v1/payments/"+intent.ID+"/confirm", customerToken, nil)
	if decode[client.PaymentIntent](t, confirmed).Status != "succeeded" {
		t.Fatal("expected succeeded intent")
	}

	final, _ := srv.Store().OrderByID(order.ID)
	if final.Status != client.OrderStatusPaid {
		t.Errorf("expected paid order, got %q", final.Status)
	}
}

func TestAdminRoutes_RejectCustomers(t *testing.T) {
	_, ts := newTestServer(t)
	token := login(t, ts.URL, "ada@example.com", "customer-pass")

	resp := doJSON(t, "GET", ts.URL+"/api/v1/admin/requests", token, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	anon := doJSON(t, "GET", ts.URL+"/api/v1/admin/requests", "", nil)
	if anon.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", anon.StatusCode)
	}
}

func TestAdminProductCRUD(t *testing.T) {
	_, ts := newTestServer(t)
	adminToken := adminLogin(t, ts.URL)

	created := doJSON(t, "POST", ts.URL+"/api/v1/admin/products", adminToken, client.ProductInput{
		Name: "Lined Gloves", Price: 310, Category: "accessories", InStock: true,
	})
	if created.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", created.StatusCode)
	}
	p := decode[client.Product](t, created)
	if p.Slug != "lined-gloves" || p.Currency != "USD" {
		t.Errorf("expected generated slug and default currency, got %+v", p)
	}

	updated := doJSON(t, "PUT", ts.URL+"/api/v1/admin/products/"+p.ID, adminToken, client.ProductInput{
		Name: "Lined Gloves", Price: 290, Category: "accessories", InStock: true,
	})
	if decode[client.Product](t, updated).Price != 290 {
		t.Error("expected price update")
	}

	deleted := doJSON(t, "DELETE", ts.URL+"/api/v1/admin/products/"+p.ID, adminToken, nil)
	if deleted.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", deleted.StatusCode)
	}

	gone := doJSON(t, "GET", ts.URL+"/api/v1/products/"+p.ID, "", nil)
	if gone.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", gone.StatusCode)
	}
}

func TestAdminProduct_ValidationIssues(t *testing.T) {
	_, ts := newTestServer(t)
	adminToken := adminLogin(t, ts.URL)

	resp := doJSON(t, "POST", ts.URL+"/api/v1/admin/products", adminToken, client.ProductInput{})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	var body struct {
		Detail []fieldIssue `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Detail) != 3 {
		t.Errorf("expected 3 issues (name, price, category), got %d", len(body.Detail))
	}
}

func TestAdminAccessRequest_ApprovePromotesAccount(t *testing.T) {
	srv, ts := newTestServer(t)
	adminToken := adminLogin(t, ts.URL)

	created := doJSON(t, "POST", ts.URL+"/api/v1/admin/access-requests", "", client.AdminRequestInput{
		Name: "Ada Lovelace", Email: "ada@example.com", Reason: "Runs the atelier",
	})
	if created.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", created.StatusCode)
	}
	req := decode[client.AdminRequest](t, created)

	approved := doJSON(t, "POST", ts.URL+"/api/v1/admin/access-requests/"+req.ID+"/approve", adminToken, nil)
	if decode[client.AdminRequest](t, approved).Status != "approved" {
		t.Fatal("expected approved status")
	}

	user, _ := srv.Store().UserByEmail("ada@example.com")
	if user.Role != client.RoleAdmin {
		t.Errorf("expected promoted role, got %q", user.Role)
	}
}

func TestCouponValidate_UnknownCodeIsData(t *testing.T) {
	_, ts := newTestServer(t)

	resp := doJSON(t, "GET", ts.URL+"/api/v1/coupons/validate/NOPE", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	v := decode[client.CouponValidation](t, resp)
	if v.Valid || v.Reason == "" {
		t.Errorf("expected invalid result with reason, got %+v", v)
	}

	known := doJSON(t, "GET", ts.URL+"/api/v1/coupons/validate/welcome10", "", nil)
	kv := decode[client.CouponValidation](t, known)
	if !kv.Valid || kv.DiscountPercent != 10 {
		t.Errorf("expected valid 10%% coupon, got %+v", kv)
	}
}

func TestReviews_MultipartCreate(t *testing.T) {
	srv, ts := newTestServer(t)
	token := login(t, ts.URL, "ada@example.com", "customer-pass")
	product := srv.Store().FilterProducts(productFilter{})[0]

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("rating", "5")
	mw.WriteField("comment", "Beautiful stitching")
	part, _ := mw.CreateFormFile("images", "front.jpg")
	fmt.Fprint(part, "jpegbytes")
	mw.Close()

	req, _ := http.NewRequest("POST", ts.URL+"/api/v1/products/"+product.ID+"/reviews", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	review := decode[client.Review](t, resp)
	if review.Rating != 5 || review.Author != "Ada Lovelace" || len(review.Images) != 1 {
		t.Errorf("unexpected review %+v", review)
	}

	list := doJSON(t, "GET", ts.URL+"/api/v1/products/"+product.ID+"/reviews", "", nil)
	page := decode[client.Paginated[client.Review]](t, list)
	if page.Total != 1 {
		t.Errorf("expected 1 review listed, got %d", page.Total)
	}
}

func TestUpload_RejectsUnknownPurpose(t *testing.T) {
	_, ts := newTestServer(t)
	token := login(t, ts.URL, "ada@example.com", "customer-pass")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("purpose", "malware")
	part, _ := mw.CreateFormFile("file", "x.bin")
	fmt.Fprint(part, "data")
	mw.Close()

	req, _ := http.NewRequest("POST", ts.URL+"/api/v1/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}
