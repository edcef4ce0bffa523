package stub

import (
	"encoding/json"
	"net/http"
	"strings"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	store *Store
	log   *zap.Logger
}

func NewBookingHandler(store *Store, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		store: store,
		log:   log,
	}
}

// Movies handles GET /api/bookings/movies
func (h *BookingHandler) Movies(w http.ResponseWriter, r *http.Request) {
	movies := h.store.MoviesWithSchedules()
	utils.ResponseSuccess(w, "Movies retrieved", movies)
}

// Schedules handles GET /api/bookings/schedules/{movieId}
func (h *BookingHandler) Schedules(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieId")

	schedules, err := h.store.SchedulesForMovie(movieID)
	if err != nil {
		h.handleServiceError(w, err, "get schedules")
		return
	}

	utils.ResponseSuccess(w, "Schedules retrieved", schedules)
}

// Seats handles GET /api/bookings/seats/{movieId}/{scheduleId}
func (h *BookingHandler) Seats(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "movieId")
	scheduleID := chi.URLParam(r, "scheduleId")

	seatMap, err := h.store.SeatMapFor(movieID, scheduleID)
	if err != nil {
		h.handleServiceError(w, err, "get seats")
		return
	}

	utils.ResponseSuccess(w, "Seats retrieved", seatMap)
}

// SelectSeats handles POST /api/bookings/select-seats. First commit
// wins: losing requests get a 409 listing the taken seats.
func (h *BookingHandler) SelectSeats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SelectSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid schedule ID", nil)
		return
	}

	held, taken, err := h.store.SelectSeats(userID, scheduleID, req.SeatIDs)
	if err != nil {
		if len(taken) > 0 {
			h.log.Info("Seat conflict",
				zap.String("schedule_id", req.ScheduleID),
				zap.Strings("taken_seats", taken))
			utils.ResponseConflict(w, "Some seats are no longer available",
				response.ConflictDetails{TakenSeats: taken})
			return
		}
		h.handleServiceError(w, err, "select seats")
		return
	}

	utils.ResponseSuccess(w, "Seats held", response.Hold{
		HoldToken: held.Token,
		SeatIDs:   held.SeatIDs,
		ExpiresAt: held.ExpiresAt,
	})
}

// Summary handles POST /api/bookings/summary: a priced order preview
// without committing anything.
func (h *BookingHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var req request.SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	seatMap, err := h.store.SeatMapFor(req.MovieID, req.ScheduleID)
	if err != nil {
		h.handleServiceError(w, err, "order summary")
		return
	}

	byID := make(map[string]response.Seat, len(seatMap.Seats))
	for _, s := range seatMap.Seats {
		byID[s.ID] = s
	}

	var subtotal float64
	regular, vip := 0, 0
	for _, id := range req.SeatIDs {
		seat, ok := byID[id]
		if !ok {
			utils.ResponseNotFound(w, "seat "+id+" not found")
			return
		}
		if seat.Type == response.SeatTypeVIP {
			vip++
			subtotal += seatMap.Schedule.VIPPrice
		} else {
			regular++
			subtotal += seatMap.Schedule.Price
		}
	}

	utils.ResponseSuccess(w, "Summary calculated", response.OrderSummary{
		Movie:         seatMap.Movie,
		Schedule:      seatMap.Schedule,
		SeatIDs:       req.SeatIDs,
		RegularSeats:  regular,
		VIPSeats:      vip,
		Subtotal:      subtotal,
		ServiceCharge: serviceCharge,
		Total:         subtotal + serviceCharge,
	})
}

// Purchase handles POST /api/bookings/purchase
func (h *BookingHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	scheduleID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid schedule ID", nil)
		return
	}

	purchased, err := h.store.Purchase(userID, scheduleID, req.SeatIDs, req.PaymentMethodID)
	if err != nil {
		h.handleServiceError(w, err, "purchase")
		return
	}

	h.store.mu.Lock()
	resp := h.store.bookingResponse(purchased)
	h.store.mu.Unlock()

	utils.ResponseCreated(w, "Purchase completed", resp)
}

// MyBookings handles GET /api/bookings/my-bookings
func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookings := h.store.BookingResponses(userID)
	utils.ResponseSuccess(w, "Bookings retrieved", bookings)
}

// Cancel handles DELETE /api/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	bookingID := chi.URLParam(r, "id")
	if err := h.store.CancelBooking(userID, bookingID); err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", nil)
}

// ==================== PAYMENT METHODS ====================

// SaveCard handles POST /api/payments/cards
func (h *BookingHandler) SaveCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.SaveCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	saved := h.store.SaveCard(userID, req.CardNumber, req.HolderName)
	utils.ResponseCreated(w, "Card saved", response.PaymentMethod{
		ID:         saved.ID.String(),
		CardBrand:  saved.Brand,
		Last4:      saved.Last4,
		HolderName: saved.HolderName,
	})
}

// Cards handles GET /api/payments/cards
func (h *BookingHandler) Cards(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var out []response.PaymentMethod
	for _, c := range h.store.Cards(userID) {
		out = append(out, response.PaymentMethod{
			ID:         c.ID.String(),
			CardBrand:  c.Brand,
			Last4:      c.Last4,
			HolderName: c.HolderName,
		})
	}
	utils.ResponseSuccess(w, "Cards retrieved", out)
}

// DeleteCard handles DELETE /api/payments/cards/{id}
func (h *BookingHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.store.DeleteCard(userID, chi.URLParam(r, "id")); err != nil {
		h.handleServiceError(w, err, "delete card")
		return
	}

	utils.ResponseSuccess(w, "Card deleted", nil)
}

func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "not held"),
		strings.Contains(errMsg, "already cancelled"):
		h.log.Warn(operation+" failed - bad state", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "unauthorized"):
		h.log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	default:
		h.log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "An unexpected error occurred")
	}
}
