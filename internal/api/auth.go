package api

import (
	"context"
	"fmt"

	"github.com/quickserve/quickserve_bot/internal/model"
)

// SignupRequest регистрация. ADMIN бэкенд не принимает.
type SignupRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse бэкенд отдаёт только токен, claims расшифровываются локально
type TokenResponse struct {
	Token string `json:"token"`
}

// Signup регистрирует пользователя и возвращает JWT
func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	var resp TokenResponse
	if err := c.post(ctx, "/auth/signup", nil, req, &resp); err != nil {
		return "", fmt.Errorf("signup: %w", err)
	}
	return resp.Token, nil
}

// Login логинит пользователя и возвращает JWT
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp TokenResponse
	if err := c.post(ctx, "/auth/login", nil, LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return resp.Token, nil
}
