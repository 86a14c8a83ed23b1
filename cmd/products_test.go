// ABOUTME: Tests for catalog commands
// ABOUTME: Verifies listing, filters, lookup, and output formatting

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lazybrownass/zorel-leather/internal/client"
)

func TestProductsCommand_List(t *testing.T) {
	setupBackend(t)
	api, _ := newSession()

	var buf bytes.Buffer
	if code := runProducts(context.Background(), &buf, api); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	for _, want := range []string{"Heritage Briefcase", "Voyager Duffel", "6 products"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "out of stock") {
		t.Error("expected out-of-stock marker for the tote")
	}
}

func TestProductsCommand_FeaturedFilter(t *testing.T) {
	setupBackend(t)
	productsFeatured = true
	defer func() { productsFeatured = false }()

	api, _ := newSession()
	var buf bytes.Buffer
	if code := runProducts(context.Background(), &buf, api); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "4 products") {
		t.Errorf("expected 4 featured products, got:\n%s", buf.String())
	}
}

func TestProductsCommand_JSONOutput(t *testing.T) {
	setupBackend(t)
	jsonOutput = true
	defer func() { jsonOutput = false }()

	api, _ := newSession()
	var buf bytes.Buffer
	if code := runProducts(context.Background(), &buf, api); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	var page client.Paginated[client.Product]
	if err := json.Unmarshal(buf.Bytes(), &page); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if page.Total != 6 {
		t.Errorf("expected 6 products in JSON, got %d", page.Total)
	}
}

func TestProductCommand_BySlug(t *testing.T) {
	setupBackend(t)
	productBySlug = true
	defer func() { productBySlug = false }()

	api, _ := newSession()
	var buf bytes.Buffer
	if code := runProduct(context.Background(), &buf, api, "meridian-belt"); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if !strings.Contains(buf.String(), "Meridian Belt") {
		t.Errorf("expected product name, got:\n%s", buf.String())
	}
}

func TestProductCommand_NotFound(t *testing.T) {
	setupBackend(t)
	api, _ := newSession()

	var buf bytes.Buffer
	code := runProduct(context.Background(), &buf, api, "missing-id")
	if code != 1 {
		t.Errorf("expected exit 1 for missing product, got %d", code)
	}
	if !strings.Contains(buf.String(), "could not be found") {
		t.Errorf("expected not-found copy, got:\n%s", buf.String())
	}
}

func TestSearchCommand(t *testing.T) {
	setupBackend(t)
	api, _ := newSession()

	var buf bytes.Buffer
	if code := runSearch(context.Background(), &buf, api, "duffel"); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "Voyager Duffel") {
		t.Errorf("expected search hit, got:\n%s", buf.String())
	}
}

func TestCategoriesCommand(t *testing.T) {
	setupBackend(t)
	api, _ := newSession()

	var buf bytes.Buffer
	if code := runCategories(context.Background(), &buf, api); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(buf.String(), "bags") {
		t.Errorf("expected categories, got:\n%s", buf.String())
	}
}

func TestFormatProductsHuman_Empty(t *testing.T) {
	page := &client.Paginated[client.Product]{Data: []client.Product{}}
	if got := formatProductsHuman(page); got != "No products found." {
		t.Errorf("unexpected empty-list output %q", got)
	}
}

func TestFormatProductHuman(t *testing.T) {
	p := &client.Product{
		Name: "Atlas Portfolio", Description: "A4 portfolio.", Price: 620,
		Currency: "USD", Category: "small-goods", Slug: "atlas-portfolio",
		InStock: true, CreatedAt: time.Now(),
	}
	out := formatProductHuman(p)
	for _, want := range []string{"Atlas Portfolio", "620.00 USD", "in stock", "atlas-portfolio"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}
