package stub

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	store *Store
	cfg   utils.StubConfig
	log   *zap.Logger
}

func NewAuthHandler(store *Store, cfg utils.StubConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		store: store,
		cfg:   cfg,
		log:   log,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.store.Authenticate(req.Email, req.Password)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	ttl := time.Duration(h.cfg.JWTExpiryHours) * time.Hour
	token, expiresAt, err := issueToken(h.cfg.JWTSecret, user.ID.String(), user.Role, ttl)
	if err != nil {
		h.log.Error("Failed to issue token", zap.Error(err))
		utils.ResponseInternalError(w, "Could not create session")
		return
	}

	utils.ResponseSuccess(w, "Login successful", response.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserResponse(user),
	})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so this
// only acknowledges; the client drops its copy.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Logout successful", nil)
}

// ForgotPassword handles POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgotPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	// Always answers the same way so addresses cannot be probed
	h.log.Info("Password reset requested", zap.String("email", req.Email))
	utils.ResponseSuccess(w, "If the account exists, a reset email was sent", nil)
}

// Register handles POST /api/users/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.store.CreateUser(req.Name, req.Email, req.Password, req.Role, req.Phone)
	if err != nil {
		h.handleServiceError(w, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", toUserResponse(user))
}

// Profile handles GET /api/users/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	user, found := h.store.UserByID(userID)
	if !found {
		utils.ResponseNotFound(w, "user not found")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", toUserResponse(user))
}

// UpdateProfile handles PUT /api/users/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.store.UpdateUser(userID, req.Name, nil, req.Phone)
	if err != nil {
		h.handleServiceError(w, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated", toUserResponse(user))
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already registered"):
		h.log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid credentials"):
		h.log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "inactive"):
		h.log.Warn(operation+" failed - account inactive", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	default:
		h.log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "An unexpected error occurred")
	}
}

func toUserResponse(u *User) response.User {
	return response.User{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
