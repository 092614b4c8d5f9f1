package client

import (
	"context"
	"net/http"

	"github.com/prolearn/prolearn-go/internal/dto"
)

// Health checks backend availability.
func (c *Client) Health(ctx context.Context) (dto.Health, error) {
	return get[dto.Health](ctx, c, "/api/health", "/api/health")
}

// Register creates an account and returns a session token.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	return do[dto.AuthResponse](ctx, c, http.MethodPost, "/api/auth/register", "/api/auth/register", req)
}

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	return do[dto.AuthResponse](ctx, c, http.MethodPost, "/api/auth/login", "/api/auth/login", req)
}

// ChangePassword rotates the password and returns a fresh session.
func (c *Client) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (dto.AuthResponse, error) {
	return do[dto.AuthResponse](ctx, c, http.MethodPost, "/api/auth/change-password", "/api/auth/change-password", req)
}

// ForgotPassword requests a password reset. Demo deployments return the reset
// token directly instead of emailing it.
func (c *Client) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) (dto.ForgotPasswordResponse, error) {
	return do[dto.ForgotPasswordResponse](ctx, c, http.MethodPost, "/api/auth/forgot-password", "/api/auth/forgot-password", req)
}

// ResetPassword completes a password reset with a token from ForgotPassword.
func (c *Client) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	_, err := do[struct{}](ctx, c, http.MethodPost, "/api/auth/reset-password", "/api/auth/reset-password", req)
	return err
}
