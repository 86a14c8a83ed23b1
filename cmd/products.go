// ABOUTME: Catalog commands: product listing, lookup, categories, and search
// ABOUTME: Read-only calls retry transient failures with backoff

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lazybrownass/zorel-leather/internal/client"
	"github.com/spf13/cobra"
)

var (
	productsCategory string
	productsSearch   string
	productsFeatured bool
	productsPage     int
	productsLimit    int
	productBySlug    bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List catalog products",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runProducts(ctx, os.Stdout, api); code != 0 {
			os.Exit(code)
		}
	},
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runProduct(ctx, os.Stdout, api, args[0]); code != 0 {
			os.Exit(code)
		}
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List catalog categories",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runCategories(ctx, os.Stdout, api); code != 0 {
			os.Exit(code)
		}
	},
}

var searchSuggest bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the catalog",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runSearch(ctx, os.Stdout, api, strings.Join(args, " ")); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	productsCmd.Flags().StringVar(&productsCategory, "category", "", "Filter by category")
	productsCmd.Flags().StringVar(&productsSearch, "search", "", "Filter by name or description")
	productsCmd.Flags().BoolVar(&productsFeatured, "featured", false, "Only featured products")
	productsCmd.Flags().IntVar(&productsPage, "page", 0, "Page number")
	productsCmd.Flags().IntVar(&productsLimit, "limit", 0, "Page size")
	productCmd.Flags().BoolVar(&productBySlug, "slug", false, "Look up by slug instead of ID")
	searchCmd.Flags().BoolVar(&searchSuggest, "suggest", false, "Show typeahead suggestions instead of results")
	rootCmd.AddCommand(productsCmd, productCmd, categoriesCmd, searchCmd)
}

func runProducts(ctx context.Context, w io.Writer, api *client.Client) int {
	params := client.ProductParams{
		Page:     productsPage,
		Limit:    productsLimit,
		Category: productsCategory,
		Search:   productsSearch,
	}
	if productsFeatured {
		featured := true
		params.IsFeatured = &featured
	}

	var page *client.Paginated[client.Product]
	err := withRetry(ctx, func() error {
		var err error
		page, err = api.Products(ctx, params)
		return err
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, page)
	} else {
		fmt.Fprintln(w, formatProductsHuman(page))
	}
	return 0
}

func runProduct(ctx context.Context, w io.Writer, api *client.Client, ref string) int {
	var p *client.Product
	err := withRetry(ctx, func() error {
		var err error
		if productBySlug {
			p, err = api.ProductBySlug(ctx, ref)
		} else {
			p, err = api.Product(ctx, ref)
		}
		return err
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, p)
	} else {
		fmt.Fprintln(w, formatProductHuman(p))
	}
	return 0
}

func runCategories(ctx context.Context, w io.Writer, api *client.Client) int {
	var cats []client.Category
	err := withRetry(ctx, func() error {
		var err error
		cats, err = api.Categories(ctx)
		return err
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, cats)
		return 0
	}
	for _, c := range cats {
		fmt.Fprintf(w, "%-16s %d products\n", c.Name, c.ProductCount)
	}
	return 0
}

func runSearch(ctx context.Context, w io.Writer, api *client.Client, query string) int {
	if searchSuggest {
		var suggestions []string
		err := withRetry(ctx, func() error {
			var err error
			suggestions, err = api.Suggestions(ctx, query)
			return err
		})
		if err != nil {
			return fail(w, err)
		}
		if IsJSONOutput() {
			printJSON(w, suggestions)
			return 0
		}
		for _, s := range suggestions {
			fmt.Fprintln(w, s)
		}
		return 0
	}

	var page *client.Paginated[client.Product]
	err := withRetry(ctx, func() error {
		var err error
		page, err = api.Search(ctx, query, productsPage, productsLimit)
		return err
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, page)
	} else {
		fmt.Fprintln(w, formatProductsHuman(page))
	}
	return 0
}

func formatProductsHuman(page *client.Paginated[client.Product]) string {
	if page.Total == 0 {
		return "No products found."
	}

	var sb strings.Builder
	for _, p := range page.Data {
		stock := ""
		if !p.InStock {
			stock = "  [out of stock]"
		}
		fmt.Fprintf(&sb, "%-24s %-14s %8.2f %s%s\n", p.Name, p.Category, p.Price, p.Currency, stock)
	}
	fmt.Fprintf(&sb, "\nPage %d of %d (%d products)", page.Page, page.TotalPages, page.Total)
	return sb.String()
}

func formatProductHuman(p *client.Product) string {
	stock := "in stock"
	if !p.InStock {
		stock = "out of stock"
	}
	return fmt.Sprintf(`%s
%s

Price:     %.2f %s
Category:  %s
Status:    %s
Slug:      %s`, p.Name, p.Description, p.Price, p.Currency, p.Category, stock, p.Slug)
}
