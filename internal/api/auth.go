package api

import (
	"context"
	"fmt"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

type AuthService struct {
	c   *Client
	log *zap.Logger
}

func NewAuthService(c *Client, log *zap.Logger) *AuthService {
	return &AuthService{
		c:   c,
		log: log.With(zap.String("service", "auth")),
	}
}

// Login authenticates and stores the token under the namespace matching
// the account's role: back-office accounts under admin, the rest under
// customer.
func (s *AuthService) Login(ctx context.Context, email, password string) (*response.AuthResponse, error) {
	req := &request.LoginRequest{Email: email, Password: password}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var auth response.AuthResponse
	if err := s.c.post(ctx, "/auth/login", req, &auth); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	role := RoleCustomer
	if auth.User.IsBackOffice() {
		role = RoleAdmin
	}
	s.c.Credentials().Set(role, auth.Token)

	s.log.Info("Logged in",
		zap.String("user_id", auth.User.ID),
		zap.String("role", auth.User.Role),
		zap.String("namespace", string(role)))

	return &auth, nil
}

// Logout tells the backend, then drops the active namespace's token
// even when the call failed.
func (s *AuthService) Logout(ctx context.Context) error {
	err := s.c.post(ctx, "/auth/logout", nil, nil)
	s.c.Credentials().Clear(s.c.Role())
	if err != nil {
		s.log.Warn("Logout request failed, credential cleared anyway", zap.Error(err))
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (s *AuthService) Register(ctx context.Context, req *request.RegisterRequest) (*response.User, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var user response.User
	if err := s.c.post(ctx, "/users/register", req, &user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &user, nil
}

func (s *AuthService) Profile(ctx context.Context) (*response.User, error) {
	var user response.User
	if err := s.c.get(ctx, "/users/profile", &user); err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, req *request.UpdateProfileRequest) (*response.User, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var user response.User
	if err := s.c.put(ctx, "/users/profile", req, &user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &user, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	req := &request.ForgotPasswordRequest{Email: email}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := s.c.post(ctx, "/auth/forgot-password", req, nil); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}
