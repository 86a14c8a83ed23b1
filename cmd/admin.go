// ABOUTME: Staff commands: admin sign-in, catalog management, request triage
// ABOUTME: Also covers admin-access applications (apply, approve, reject)

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
	"github.com/lazybrownass/zorel-leather/internal/session"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Staff commands for catalog and request management",
}

var (
	adminLoginEmail    string
	adminLoginPassword string
)

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with staff credentials",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if adminLoginEmail == "" || adminLoginPassword == "" {
			if err := promptCredentials(&adminLoginEmail, &adminLoginPassword); err != nil {
				os.Exit(1)
			}
		}

		_, sess := newSession()
		if code := runAdminLogin(ctx, os.Stdout, sess, adminLoginEmail, adminLoginPassword); code != 0 {
			os.Exit(code)
		}
	},
}

var (
	adminProductName     string
	adminProductPrice    float64
	adminProductCategory string
	adminProductDesc     string
	adminProductFeatured bool
	adminProductInStock  bool
)

var adminProductAddCmd = &cobra.Command{
	Use:   "product-add",
	Short: "Add a catalog product",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runAdminProductAdd(ctx, os.Stdout, api); code != 0 {
			os.Exit(code)
		}
	},
}

var adminProductDeleteCmd = &cobra.Command{
	Use:   "product-delete <product-id>",
	Short: "Remove a catalog product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runAdminProductDelete(ctx, os.Stdout, api, args[0]); code != 0 {
			os.Exit(code)
		}
	},
}

var triageStatus string

var adminRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List customer requests awaiting triage",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runAdminRequests(ctx, os.Stdout, api); code != 0 {
			os.Exit(code)
		}
	},
}

var triageNote string

var adminTriageCmd = &cobra.Command{
	Use:   "triage <request-id> <approved|rejected|shipped>",
	Short: "Transition a customer request",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runAdminTriage(ctx, os.Stdout, api, args[0], args[1]); code != 0 {
			os.Exit(code)
		}
	},
}

var (
	accessName   string
	accessEmail  string
	accessReason string
)

var adminAccessCmd = &cobra.Command{
	Use:   "access",
	Short: "List admin-access applications",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runAdminAccess(ctx, os.Stdout, api); code != 0 {
			os.Exit(code)
		}
	},
}

var adminAccessApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply for admin dashboard access",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runAdminAccessApply(ctx, os.Stdout, api); code != 0 {
			os.Exit(code)
		}
	},
}

var accessRejectReason string

var adminAccessApproveCmd = &cobra.Command{
	Use:   "approve <application-id>",
	Short: "Grant an admin-access application",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runAdminAccessDecide(ctx, os.Stdout, api, args[0], true); code != 0 {
			os.Exit(code)
		}
	},
}

var adminAccessRejectCmd = &cobra.Command{
	Use:   "reject <application-id>",
	Short: "Decline an admin-access application",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runAdminAccessDecide(ctx, os.Stdout, api, args[0], false); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	adminLoginCmd.Flags().StringVar(&adminLoginEmail, "email", "", "Staff email")
	adminLoginCmd.Flags().StringVar(&adminLoginPassword, "password", "", "Staff password (prompted when omitted)")

	adminProductAddCmd.Flags().StringVar(&adminProductName, "name", "", "Product name")
	adminProductAddCmd.Flags().Float64Var(&adminProductPrice, "price", 0, "Price")
	adminProductAddCmd.Flags().StringVar(&adminProductCategory, "category", "", "Category")
	adminProductAddCmd.Flags().StringVar(&adminProductDesc, "description", "", "Description")
	adminProductAddCmd.Flags().BoolVar(&adminProductFeatured, "featured", false, "Mark as featured")
	adminProductAddCmd.Flags().BoolVar(&adminProductInStock, "in-stock", true, "Mark as in stock")

	adminRequestsCmd.Flags().StringVar(&triageStatus, "status", "", "Filter by status (default: pending)")
	adminTriageCmd.Flags().StringVar(&triageNote, "note", "", "Note for the customer")

	adminAccessApplyCmd.Flags().StringVar(&accessName, "name", "", "Applicant name")
	adminAccessApplyCmd.Flags().StringVar(&accessEmail, "email", "", "Applicant email")
	adminAccessApplyCmd.Flags().StringVar(&accessReason, "reason", "", "Why access is needed")
	adminAccessRejectCmd.Flags().StringVar(&accessRejectReason, "reason", "", "Why the application was declined")

	adminAccessCmd.AddCommand(adminAccessApplyCmd, adminAccessApproveCmd, adminAccessRejectCmd)
	adminCmd.AddCommand(adminLoginCmd, adminProductAddCmd, adminProductDeleteCmd, adminRequestsCmd, adminTriageCmd, adminAccessCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminLogin(ctx context.Context, w io.Writer, sess *session.Session, email, password string) int {
	user, err := sess.AdminLogin(ctx, email, password)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, user)
	} else {
		fmt.Fprintf(w, "Signed in as %s (%s)\n", user.Name, user.Role)
	}
	return 0
}

func runAdminProductAdd(ctx context.Context, w io.Writer, api *client.Client) int {
	p, err := api.CreateProduct(ctx, client.ProductInput{
		Name:        adminProductName,
		Description: adminProductDesc,
		Price:       adminProductPrice,
		Category:    adminProductCategory,
		IsFeatured:  adminProductFeatured,
		InStock:     adminProductInStock,
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, p)
	} else {
		fmt.Fprintf(w, "Created %s (%s)\n", p.Name, p.ID)
	}
	return 0
}

func runAdminProductDelete(ctx context.Context, w io.Writer, api *client.Client, id string) int {
	if err := api.DeleteProduct(ctx, id); err != nil {
		return fail(w, err)
	}
	fmt.Fprintln(w, "Product removed.")
	return 0
}

func runAdminRequests(ctx context.Context, w io.Writer, api *client.Client) int {
	var page *client.Paginated[client.Order]
	err := withRetry(ctx, func() error {
		var err error
		page, err = api.PendingRequests(ctx, client.OrderParams{Status: triageStatus})
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

func runAdminTriage(ctx context.Context, w io.Writer, api *client.Client, id, status string) int {
	order, err := api.UpdateRequestStatus(ctx, id, status, triageNote)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, order)
	} else {
		fmt.Fprintf(w, "Request %s is now %s.\n", order.OrderNumber, order.Status)
	}
	return 0
}

func runAdminAccess(ctx context.Context, w io.Writer, api *client.Client) int {
	var page *client.Paginated[client.AdminRequest]
	err := withRetry(ctx, func() error {
		var err error
		page, err = api.AdminRequests(ctx, client.OrderParams{})
		return err
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, page)
		return 0
	}
	if page.Total == 0 {
		fmt.Fprintln(w, "No applications.")
		return 0
	}
	var sb strings.Builder
	for _, r := range page.Data {
		fmt.Fprintf(&sb, "%-36s %-10s %s <%s>\n", r.ID, r.Status, r.Name, r.Email)
	}
	fmt.Fprint(w, sb.String())
	return 0
}

func runAdminAccessApply(ctx context.Context, w io.Writer, api *client.Client) int {
	req, err := api.CreateAdminRequest(ctx, client.AdminRequestInput{
		Name:   accessName,
		Email:  accessEmail,
		Reason: accessReason,
	})
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, req)
	} else {
		fmt.Fprintf(w, "Application %s submitted.\n", req.ID)
	}
	return 0
}

func runAdminAccessDecide(ctx context.Context, w io.Writer, api *client.Client, id string, approve bool) int {
	var (
		req *client.AdminRequest
		err error
	)
	if approve {
		req, err = api.ApproveAdminRequest(ctx, id)
	} else {
		req, err = api.RejectAdminRequest(ctx, id, accessRejectReason)
	}
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, req)
	} else {
		fmt.Fprintf(w, "Application %s %s.\n", req.ID, req.Status)
	}
	return 0
}
