// ABOUTME: Item request commands for the request-before-purchase flow
// ABOUTME: Covers creating, listing, showing, and paying for requests

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/lazybrownass/zorel-leather/internal/client"
	"github.com/spf13/cobra"
)

var (
	requestItems   []string
	requestAddress string
	requestNotes   string
	requestCoupon  string
	requestsStatus string
	requestsPage   int
	requestsLimit  int
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List your item requests",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runRequests(ctx, os.Stdout, api); code != 0 {
			os.Exit(code)
		}
	},
}

var requestShowCmd = &cobra.Command{
	Use:   "show <request-id>",
	Short: "Show one request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runRequestShow(ctx, os.Stdout, api, args[0]); code != 0 {
			os.Exit(code)
		}
	},
}

var requestCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new item request",
	Long: `Submit a new item request.

Items are given as --item <product-id>=<quantity>, repeatable:
  zorel requests create --item 3f1c...=1 --item 9a2b...=2`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runRequestCreate(ctx, os.Stdout, api); code != 0 {
			os.Exit(code)
		}
	},
}

var requestPayCmd = &cobra.Command{
	Use:   "pay <request-id>",
	Short: "Pay for an approved request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runRequestPay(ctx, os.Stdout, api, args[0]); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	requestsCmd.Flags().StringVar(&requestsStatus, "status", "", "Filter by status (pending, approved, rejected, paid, shipped)")
	requestsCmd.Flags().IntVar(&requestsPage, "page", 0, "Page number")
	requestsCmd.Flags().IntVar(&requestsLimit, "limit", 0, "Page size")
	requestCreateCmd.Flags().StringArrayVar(&requestItems, "item", nil, "Product and quantity as <product-id>=<qty> (repeatable)")
	requestCreateCmd.Flags().StringVar(&requestAddress, "address", "", "Shipping address")
	requestCreateCmd.Flags().StringVar(&requestNotes, "notes", "", "Notes for the atelier")
	requestCreateCmd.Flags().StringVar(&requestCoupon, "coupon", "", "Coupon code")
	requestsCmd.AddCommand(requestShowCmd, requestCreateCmd, requestPayCmd)
	rootCmd.AddCommand(requestsCmd)
}

func runRequests(ctx context.Context, w io.Writer, api *client.Client) int {
	var page *client.Paginated[client.Order]
	err := withRetry(ctx, func() error {
		var err error
		page, err = api.Orders(ctx, client.OrderParams{Page: requestsPage, Limit: requestsLimit, Status: requestsStatus})
		return err
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, page)
	} else {
		fmt.Fprintln(w, formatOrdersHuman(page))
	}
	return 0
}

func runRequestShow(ctx context.Context, w io.Writer, api *client.Client, id string) int {
	var order *client.Order
	err := withRetry(ctx, func() error {
		var err error
		order, err = api.Order(ctx, id)
		return err
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, order)
	} else {
		fmt.Fprintln(w, formatOrderHuman(order))
	}
	return 0
}

func runRequestCreate(ctx context.Context, w io.Writer, api *client.Client) int {
	items, err := parseItems(requestItems)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	order, err := api.CreateOrder(ctx, client.CreateOrderRequest{
		Items:           items,
		ShippingAddress: requestAddress,
		Notes:           requestNotes,
		CouponCode:      requestCoupon,
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, order)
	} else {
		fmt.Fprintf(w, "Request %s submitted (%.2f %s). Staff will review it shortly.\n",
			order.OrderNumber, order.Total, order.Currency)
	}
	return 0
}

func runRequestPay(ctx context.Context, w io.Writer, api *client.Client, orderID string) int {
	intent, err := api.CreatePaymentIntent(ctx, orderID)
	if err != nil {
		return fail(w, err)
	}
	confirmed, err := api.ConfirmPayment(ctx, intent.ID)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, confirmed)
	} else {
		fmt.Fprintf(w, "Payment %s: %.2f %s %s\n", confirmed.ID, confirmed.Amount, confirmed.Currency, confirmed.Status)
	}
	return 0
}

// parseItems converts repeated <product-id>=<qty> flags into order items.
func parseItems(specs []string) ([]client.OrderItem, error) {
	if len(specs) == 0 {
		return nil, fmt.Errorf("at least one --item is required")
	}
	items := make([]client.OrderItem, 0, len(specs))
	for _, spec := range specs {
		id, qtyStr, found := strings.Cut(spec, "=")
		qty := 1
		if found {
			n, err := strconv.Atoi(qtyStr)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid quantity in %q", spec)
			}
			qty = n
		}
		if id == "" {
			return nil, fmt.Errorf("missing product ID in %q", spec)
		}
		items = append(items, client.OrderItem{ProductID: id, Quantity: qty})
	}
	return items, nil
}

func formatOrdersHuman(page *client.Paginated[client.Order]) string {
	if page.Total == 0 {
		return "No requests found."
	}

	var sb strings.Builder
	for _, o := range page.Data {
		fmt.Fprintf(&sb, "%-14s %-10s %8.2f %s  %s\n",
			o.OrderNumber, o.Status, o.Total, o.Currency, o.CreatedAt.Format("2006-01-02"))
	}
	fmt.Fprintf(&sb, "\nPage %d of %d (%d requests)", page.Page, page.TotalPages, page.Total)
	return sb.String()
}

func formatOrderHuman(o *client.Order) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Request %s [%s]\n", o.OrderNumber, o.Status)
	for _, item := range o.Items {
		fmt.Fprintf(&sb, "  %dx %-24s %8.2f\n", item.Quantity, item.Name, item.UnitPrice)
	}
	fmt.Fprintf(&sb, "Total: %.2f %s", o.Total, o.Currency)
	if o.Notes != "" {
		fmt.Fprintf(&sb, "\nNotes: %s", o.Notes)
	}
	return sb.String()
}
