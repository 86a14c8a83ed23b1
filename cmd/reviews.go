// ABOUTME: Review commands: listing product reviews and posting new ones
// ABOUTME: Review images ride along as multipart attachments

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/lazybrownass/zorel-leather/internal/client"
	"github.com/spf13/cobra"
)

var (
	reviewRating int
	reviewText   string
	reviewImages []string
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews <product-id>",
	Short: "List reviews for a product",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runReviews(ctx, os.Stdout, api, args[0]); code != 0 {
			os.Exit(code)
		}
	},
}

var reviewAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Post a review",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		api, _ := newSession()
		if code := runReviewAdd(ctx, os.Stdout, api, args[0]); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	reviewAddCmd.Flags().IntVar(&reviewRating, "rating", 5, "Rating from 1 to 5")
	reviewAddCmd.Flags().StringVar(&reviewText, "comment", "", "Review text")
	reviewAddCmd.Flags().StringArrayVar(&reviewImages, "image", nil, "Image file to attach (repeatable)")
	reviewsCmd.AddCommand(reviewAddCmd)
	rootCmd.AddCommand(reviewsCmd)
}

func runReviews(ctx context.Context, w io.Writer, api *client.Client, productID string) int {
	var page *client.Paginated[client.Review]
	err := withRetry(ctx, func() error {
		var err error
		page, err = api.Reviews(ctx, productID, 0, 0)
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
		fmt.Fprintln(w, "No reviews yet.")
		return 0
	}
	for _, r := range page.Data {
		fmt.Fprintf(w, "%s %s (%s)\n  %s\n", strings.Repeat("★", r.Rating), r.Author,
			r.CreatedAt.Format("2006-01-02"), r.Comment)
	}
	return 0
}

func runReviewAdd(ctx context.Context, w io.Writer, api *client.Client, productID string) int {
	input := client.ReviewInput{Rating: reviewRating, Comment: reviewText}

	var open []*os.File
	defer func() {
		for _, f := range open {
			f.Close()
		}
	}()
	for _, path := range reviewImages {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(w, "Error: cannot read image %s: %v\n", path, err)
			return 1
		}
		open = append(open, f)
		input.Images = append(input.Images, client.FileUpload{Filename: filepath.Base(path), Content: f})
	}

	review, err := api.CreateReview(ctx, productID, input)
	if err != nil {
		return fail(w, err)
	}

	if IsJSONOutput() {
		printJSON(w, review)
	} else {
		fmt.Fprintln(w, "Review posted. Thank you.")
	}
	return 0
}
