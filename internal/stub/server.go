package stub

import (
	"net/http"
	"time"

	"cinevers-client/pkg/middleware"
	"cinevers-client/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Server bundles the stub backend behind one http.Handler, ready for
// httptest or a real listener.
type Server struct {
	store  *Store
	router *chi.Mux
}

func NewServer(cfg utils.StubConfig, log *zap.Logger) (*Server, error) {
	store := NewStore(time.Duration(cfg.HoldTTLMinutes) * time.Minute)
	if err := store.Seed(cfg); err != nil {
		return nil, err
	}

	s := &Server{
		store:  store,
		router: chi.NewRouter(),
	}
	s.wire(cfg, log)
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Store exposes the backing state for tests.
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) wire(cfg utils.StubConfig, log *zap.Logger) {
	authHandler := NewAuthHandler(s.store, cfg, log)
	bookingHandler := NewBookingHandler(s.store, log)
	adminHandler := NewAdminHandler(s.store, log)

	r := s.router
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS())

	auth := middleware.JWTAuth(cfg.JWTSecret, log)
	admin := middleware.Admin(log)

	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/forgot-password", authHandler.ForgotPassword)
	r.Post("/api/users/register", authHandler.Register)
	r.Get("/api/movies", adminHandler.Movies)
	r.Get("/api/movies/{id}", adminHandler.Movie)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Post("/api/auth/logout", authHandler.Logout)
		r.Get("/api/users/profile", authHandler.Profile)
		r.Put("/api/users/profile", authHandler.UpdateProfile)

		// Booking flow
		r.Get("/api/bookings/movies", bookingHandler.Movies)
		r.Get("/api/bookings/schedules/{movieId}", bookingHandler.Schedules)
		r.Get("/api/bookings/seats/{movieId}/{scheduleId}", bookingHandler.Seats)
		r.Post("/api/bookings/select-seats", bookingHandler.SelectSeats)
		r.Post("/api/bookings/summary", bookingHandler.Summary)
		r.Post("/api/bookings/purchase", bookingHandler.Purchase)
		r.Get("/api/bookings/my-bookings", bookingHandler.MyBookings)
		r.Delete("/api/bookings/{id}/cancel", bookingHandler.Cancel)

		// Payment methods
		r.Post("/api/payments/cards", bookingHandler.SaveCard)
		r.Get("/api/payments/cards", bookingHandler.Cards)
		r.Delete("/api/payments/cards/{id}", bookingHandler.DeleteCard)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(admin)

		// Catalog management
		r.Post("/api/movies", adminHandler.CreateMovie)
		r.Put("/api/movies/{id}", adminHandler.UpdateMovie)
		r.Delete("/api/movies/{id}", adminHandler.DeleteMovie)

		// Rooms
		r.Get("/api/rooms", adminHandler.Rooms)
		r.Post("/api/rooms", adminHandler.CreateRoom)
		r.Put("/api/rooms/{id}", adminHandler.UpdateRoom)
		r.Delete("/api/rooms/{id}", adminHandler.DeleteRoom)
		r.Post("/api/rooms/{id}/reactivate", adminHandler.ReactivateRoom)

		// Employees
		r.Get("/api/employees", adminHandler.Employees)
		r.Post("/api/employees", adminHandler.CreateEmployee)
		r.Put("/api/employees/{id}", adminHandler.UpdateEmployee)
		r.Delete("/api/employees/{id}", adminHandler.DeleteEmployee)
		r.Post("/api/employees/{id}/reactivate", adminHandler.ReactivateEmployee)

		// Customer accounts
		r.Get("/api/users", adminHandler.Users)
		r.Get("/api/users/{id}", adminHandler.User)
		r.Put("/api/users/{id}", adminHandler.UpdateUser)
		r.Patch("/api/users/{id}/status", adminHandler.UpdateUserStatus)

		// Reports
		r.Get("/api/reports/sales", adminHandler.SalesSummary)
		r.Get("/api/reports/generate", adminHandler.GenerateReport)
		r.Get("/api/reports/top-movies", adminHandler.TopMovies)
	})
}
