// ABOUTME: Tests for root command configuration
// ABOUTME: Verifies API URL resolution precedence

package cmd

import "testing"

func TestGetAPIURL_FlagTakesPrecedence(t *testing.T) {
	apiURL = "http://flag.example"
	defer func() { apiURL = "" }()
	t.Setenv("ZOREL_API_URL", "http://env.example")

	if got := GetAPIURL(); got != "http://flag.example" {
		t.Errorf("expected flag value, got %s", got)
	}
}

func TestGetAPIURL_EnvFallback(t *testing.T) {
	apiURL = ""
	t.Setenv("ZOREL_API_URL", "http://env.example")

	if got := GetAPIURL(); got != "http://env.example" {
		t.Errorf("expected env value, got %s", got)
	}
}

func TestGetAPIURL_Default(t *testing.T) {
	apiURL = ""
	t.Setenv("ZOREL_API_URL", "")

	if got := GetAPIURL(); got != defaultAPIURL {
		t.Errorf("expected default, got %s", got)
	}
}
