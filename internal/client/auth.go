// ABOUTME: Authentication endpoints: login, registration, who-am-I
// ABOUTME: Token persistence is the session layer's job, not done here

package client

import "context"

// Credentials is the login payload for both customer and admin sign-in.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for creating a customer account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the bearer token issued on login or registration.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user,omitempty"`
}

// Login exchanges customer credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, "POST", "/auth/login", nil, Credentials{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a customer account and returns its bearer token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, "POST", "/auth/register", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminLogin exchanges staff credentials for an admin-scoped bearer token.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, "POST", "/auth/admin/login", nil, Credentials{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser resolves the identity behind the stored token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, "GET", "/auth/me", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
