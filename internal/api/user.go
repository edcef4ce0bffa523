package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

// UserService is the admin-area customer management wrapper.
type UserService struct {
	c   *Client
	log *zap.Logger
}

func NewUserService(c *Client, log *zap.Logger) *UserService {
	return &UserService{
		c:   c,
		log: log.With(zap.String("service", "user")),
	}
}

func (s *UserService) Users(ctx context.Context, filter request.UserFilter) ([]response.User, error) {
	params := url.Values{}
	if filter.Role != "" {
		params.Set("role", filter.Role)
	}
	if filter.Status != "" {
		params.Set("status", filter.Status)
	}
	if filter.Search != "" {
		params.Set("search", filter.Search)
	}
	if filter.Page > 0 {
		params.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}

	path := "/users"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var users []response.User
	if err := s.c.get(ctx, path, &users); err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

func (s *UserService) User(ctx context.Context, id string) (*response.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	var user response.User
	if err := s.c.get(ctx, "/users/"+id, &user); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &user, nil
}

// CreateClient registers a customer account from the back office.
func (s *UserService) CreateClient(ctx context.Context, req *request.RegisterRequest) (*response.User, error) {
	req.Role = "cliente"
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var user response.User
	if err := s.c.post(ctx, "/users/register", req, &user); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.log.Info("Client created", zap.String("user_id", user.ID))
	return &user, nil
}

func (s *UserService) Update(ctx context.Context, id string, req *request.UserUpdateRequest) (*response.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var user response.User
	if err := s.c.put(ctx, "/users/"+id, req, &user); err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	return &user, nil
}

func (s *UserService) UpdateStatus(ctx context.Context, id, status string) (*response.User, error) {
	if id == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	req := &request.UserStatusRequest{Status: status}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var user response.User
	if err := s.c.patch(ctx, "/users/"+id+"/status", req, &user); err != nil {
		return nil, fmt.Errorf("update user %s status: %w", id, err)
	}
	return &user, nil
}
