package stub

import (
	"encoding/json"
	"net/http"
	"strings"

	"cinevers-client/internal/dto/request"
	"cinevers-client/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler covers the back-office surface: catalog management,
// rooms, employees, customer accounts and sales reports.
type AdminHandler struct {
	store *Store
	log   *zap.Logger
}

func NewAdminHandler(store *Store, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		store: store,
		log:   log,
	}
}

// ==================== MOVIES ====================

// Movies handles GET /api/movies (public)
func (h *AdminHandler) Movies(w http.ResponseWriter, r *http.Request) {
	filter := request.MovieFilter{
		Genre:          r.URL.Query().Get("genre"),
		Classification: r.URL.Query().Get("classification"),
		Status:         r.URL.Query().Get("status"),
	}
	utils.ResponseSuccess(w, "Movies retrieved", h.store.Movies(filter))
}

// Movie handles GET /api/movies/{id} (public)
func (h *AdminHandler) Movie(w http.ResponseWriter, r *http.Request) {
	movie, err := h.store.MovieResponse(chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, err, "get movie")
		return
	}
	utils.ResponseSuccess(w, "Movie retrieved", movie)
}

// CreateMovie handles POST /api/movies
func (h *AdminHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie := h.store.CreateMovie(req)
	h.log.Info("Movie created", zap.String("movie_id", movie.ID), zap.String("title", movie.Title))
	utils.ResponseCreated(w, "Movie created", movie)
}

// UpdateMovie handles PUT /api/movies/{id}
func (h *AdminHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie, err := h.store.UpdateMovie(chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleServiceError(w, err, "update movie")
		return
	}
	utils.ResponseSuccess(w, "Movie updated", movie)
}

// DeleteMovie handles DELETE /api/movies/{id} (soft delete)
func (h *AdminHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeactivateMovie(chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete movie")
		return
	}
	utils.ResponseSuccess(w, "Movie deactivated", nil)
}

// ==================== ROOMS ====================

// Rooms handles GET /api/rooms
func (h *AdminHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	filter := request.RoomFilter{
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
	}
	utils.ResponseSuccess(w, "Rooms retrieved", h.store.Rooms(filter))
}

// CreateRoom handles POST /api/rooms
func (h *AdminHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	room := h.store.CreateRoom(req)
	h.log.Info("Room created", zap.String("room_id", room.ID), zap.String("name", room.Name))
	utils.ResponseCreated(w, "Room created", room)
}

// UpdateRoom handles PUT /api/rooms/{id}
func (h *AdminHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req request.RoomUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	room, err := h.store.UpdateRoom(chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleServiceError(w, err, "update room")
		return
	}
	utils.ResponseSuccess(w, "Room updated", room)
}

// DeleteRoom handles DELETE /api/rooms/{id} (soft delete)
func (h *AdminHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.SetRoomStatus(chi.URLParam(r, "id"), "inactive"); err != nil {
		h.handleServiceError(w, err, "delete room")
		return
	}
	utils.ResponseSuccess(w, "Room deactivated", nil)
}

// ReactivateRoom handles POST /api/rooms/{id}/reactivate
func (h *AdminHandler) ReactivateRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.store.SetRoomStatus(chi.URLParam(r, "id"), "active")
	if err != nil {
		h.handleServiceError(w, err, "reactivate room")
		return
	}
	utils.ResponseSuccess(w, "Room reactivated", room)
}

// ==================== EMPLOYEES ====================

// Employees handles GET /api/employees
func (h *AdminHandler) Employees(w http.ResponseWriter, r *http.Request) {
	filter := request.EmployeeFilter{
		Role:   r.URL.Query().Get("role"),
		Status: r.URL.Query().Get("status"),
	}
	utils.ResponseSuccess(w, "Employees retrieved", h.store.Employees(filter))
}

// CreateEmployee handles POST /api/employees
func (h *AdminHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req request.EmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	employee, err := h.store.CreateEmployee(req)
	if err != nil {
		h.handleServiceError(w, err, "create employee")
		return
	}
	utils.ResponseCreated(w, "Employee created", employee)
}

// UpdateEmployee handles PUT /api/employees/{id}
func (h *AdminHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req request.EmployeeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	employee, err := h.store.UpdateEmployee(chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleServiceError(w, err, "update employee")
		return
	}
	utils.ResponseSuccess(w, "Employee updated", employee)
}

// DeleteEmployee handles DELETE /api/employees/{id} (soft delete)
func (h *AdminHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.SetEmployeeStatus(chi.URLParam(r, "id"), "inactive"); err != nil {
		h.handleServiceError(w, err, "delete employee")
		return
	}
	utils.ResponseSuccess(w, "Employee deactivated", nil)
}

// ReactivateEmployee handles POST /api/employees/{id}/reactivate
func (h *AdminHandler) ReactivateEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.store.SetEmployeeStatus(chi.URLParam(r, "id"), "active")
	if err != nil {
		h.handleServiceError(w, err, "reactivate employee")
		return
	}
	utils.ResponseSuccess(w, "Employee reactivated", employee)
}

// ==================== USERS ====================

// Users handles GET /api/users
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users := h.store.Users(
		r.URL.Query().Get("role"),
		r.URL.Query().Get("status"),
		r.URL.Query().Get("search"),
	)

	out := make([]any, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	utils.ResponseSuccess(w, "Users retrieved", out)
}

// User handles GET /api/users/{id}
func (h *AdminHandler) User(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseNotFound(w, "user not found")
		return
	}

	user, ok := h.store.UserByID(userID)
	if !ok {
		utils.ResponseNotFound(w, "user not found")
		return
	}
	utils.ResponseSuccess(w, "User retrieved", toUserResponse(user))
}

// UpdateUser handles PUT /api/users/{id}
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseNotFound(w, "user not found")
		return
	}

	var req request.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.store.UpdateUser(userID, req.Name, req.Email, req.Phone)
	if err != nil {
		h.handleServiceError(w, err, "update user")
		return
	}
	utils.ResponseSuccess(w, "User updated", toUserResponse(user))
}

// UpdateUserStatus handles PATCH /api/users/{id}/status
func (h *AdminHandler) UpdateUserStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseNotFound(w, "user not found")
		return
	}

	var req request.UserStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.store.UpdateUserStatus(userID, req.Status)
	if err != nil {
		h.handleServiceError(w, err, "update user status")
		return
	}

	h.log.Info("User status changed",
		zap.String("user_id", user.ID.String()),
		zap.String("status", user.Status))
	utils.ResponseSuccess(w, "User status updated", toUserResponse(user))
}

// ==================== REPORTS ====================

// SalesSummary handles GET /api/reports/sales
func (h *AdminHandler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	filter := reportFilterFromQuery(r)
	utils.ResponseSuccess(w, "Sales summary", h.store.SalesSummary(filter))
}

// GenerateReport handles GET /api/reports/generate
func (h *AdminHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	filter := reportFilterFromQuery(r)
	utils.ResponseSuccess(w, "Report generated", h.store.SalesLines(filter))
}

// TopMovies handles GET /api/reports/top-movies
func (h *AdminHandler) TopMovies(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), 10)
	utils.ResponseSuccess(w, "Top movies", h.store.TopMovies(limit))
}

func reportFilterFromQuery(r *http.Request) request.ReportFilter {
	return request.ReportFilter{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
		Type:      r.URL.Query().Get("type"),
		Movie:     r.URL.Query().Get("movie"),
	}
}

func (h *AdminHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "already registered"):
		h.log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "An unexpected error occurred")
	}
}
