// ABOUTME: Root command for the zorel CLI
// ABOUTME: Handles global flags, environment config, and shared constructors

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/lazybrownass/zorel-leather/internal/client"
	"github.com/lazybrownass/zorel-leather/internal/logger"
	"github.com/lazybrownass/zorel-leather/internal/session"
	"github.com/lazybrownass/zorel-leather/internal/store"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
)

const defaultAPIURL = "http://localhost:8000"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "zorel",
	Short: "CLI for the Zorel Leather storefront",
	Long: `zorel is a command-line client for the Zorel Leather storefront.

Browse the catalog, manage your wishlist, submit item requests, and (for
staff) triage requests and manage the catalog.

Environment Variables:
  ZOREL_API_URL  Backend API URL (default: http://localhost:8000)
  ZOREL_HOME     Directory for stored tokens (default: ~/.zorel)`,
}

// Execute runs the root command
func Execute() error {
	// A local .env is optional; missing files are fine.
	godotenv.Load()
	logger.Init()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides ZOREL_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("ZOREL_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// tokenStore opens the durable token store, degrading to an in-memory
// no-op when the home directory is unavailable.
func tokenStore() store.Store {
	fs, err := store.NewFileStore()
	if err != nil {
		return &store.Null{}
	}
	return fs
}

// newClient builds an API client over the durable token store.
func newClient(tokens store.Store) *client.Client {
	return client.New(client.Config{
		BaseURL: GetAPIURL(),
		Tokens:  tokens,
		Logger:  logger.New(os.Stderr),
	})
}

// newSession builds the client and session pair most commands need.
func newSession() (*client.Client, *session.Session) {
	tokens := tokenStore()
	api := newClient(tokens)
	return api, session.New(api, tokens)
}
