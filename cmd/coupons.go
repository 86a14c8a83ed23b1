// ABOUTME: Coupon commands: listing and code validation
// ABOUTME: Validation exits nonzero for invalid codes so scripts can branch

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

var couponsCmd = &cobra.Command{
	Use:   "coupons",
	Short: "List available coupons",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runCoupons(ctx, os.Stdout, api); code != 0 {
			os.Exit(code)
		}
	},
}

var couponValidateCmd = &cobra.Command{
	Use:   "validate <code>",
	Short: "Check whether a coupon code is valid",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runCouponValidate(ctx, os.Stdout, api, args[0]); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	couponsCmd.AddCommand(couponValidateCmd)
	rootCmd.AddCommand(couponsCmd)
}

func runCoupons(ctx context.Context, w io.Writer, api *client.Client) int {
	var coupons []client.Coupon
	err := withRetry(ctx, func() error {
		var err error
		coupons, err = api.Coupons(ctx)
		return err
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, coupons)
		return 0
	}
	if len(coupons) == 0 {
		fmt.Fprintln(w, "No coupons available.")
		return 0
	}
	for _, c := range coupons {
		fmt.Fprintf(w, "%-12s %3.0f%%  %s\n", c.Code, c.DiscountPercent, c.Description)
	}
	return 0
}

// runCouponValidate exits 0 for a valid code and 1 for an invalid one, so
// scripts can branch on the result.
func runCouponValidate(ctx context.Context, w io.Writer, api *client.Client, code string) int {
	var result *client.CouponValidation
	err := withRetry(ctx, func() error {
		var err error
		result, err = api.ValidateCoupon(ctx, code)
		return err
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, result)
	} else if result.Valid {
		fmt.Fprintf(w, "%s is valid: %.0f%% off\n", result.Code, result.DiscountPercent)
	} else {
		fmt.Fprintf(w, "%s is not valid: %s\n", result.Code, result.Reason)
	}

	if !result.Valid {
		return 1
	}
	return 0
}
