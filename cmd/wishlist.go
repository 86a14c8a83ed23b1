// ABOUTME: Wishlist commands: list, add, and remove saved products
// ABOUTME: All wishlist endpoints require a signed-in customer

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lazybrownass/zorel-leather/internal/client"
	"github.com/spf13/cobra"
)

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage your saved products",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runWishlist(ctx, os.Stdout, api); code != 0 {
			os.Exit(code)
		}
	},
}

var wishlistAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Save a product to your wishlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runWishlistAdd(ctx, os.Stdout, api, args[0]); code != 0 {
			os.Exit(code)
		}
	},
}

var wishlistRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a product from your wishlist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runWishlistRemove(ctx, os.Stdout, api, args[0]); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	wishlistCmd.AddCommand(wishlistAddCmd, wishlistRemoveCmd)
	rootCmd.AddCommand(wishlistCmd)
}

func runWishlist(ctx context.Context, w io.Writer, api *client.Client) int {
	var items []client.WishlistItem
	err := withRetry(ctx, func() error {
		var err error
		items, err = api.Wishlist(ctx)
		return err
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, items)
		return 0
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "Your wishlist is empty.")
		return 0
	}
	for _, item := range items {
		if item.Product != nil {
			fmt.Fprintf(w, "%-24s %8.2f %s  (added %s)\n",
				item.Product.Name, item.Product.Price, item.Product.Currency,
				item.AddedAt.Format("2006-01-02"))
		} else {
			fmt.Fprintln(w, item.ProductID)
		}
	}
	return 0
}

func runWishlistAdd(ctx context.Context, w io.Writer, api *client.Client, productID string) int {
	if err := api.AddToWishlist(ctx, productID); err != nil {
		return fail(w, err)
	}
	fmt.Fprintln(w, "Saved to wishlist.")
	return 0
}

func runWishlistRemove(ctx context.Context, w io.Writer, api *client.Client, productID string) int {
	if err := api.RemoveFromWishlist(ctx, productID); err != nil {
		return fail(w, err)
	}
	fmt.Fprintln(w, "Removed from wishlist.")
	return 0
}
