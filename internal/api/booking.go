package api

import (
	"context"
	"fmt"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

type BookingService struct {
	c   *Client
	log *zap.Logger
}

func NewBookingService(c *Client, log *zap.Logger) *BookingService {
	return &BookingService{
		c:   c,
		log: log.With(zap.String("service", "booking")),
	}
}

// MoviesWithSchedules lists the catalog: movies in theaters plus their
// schedule summaries.
func (s *BookingService) MoviesWithSchedules(ctx context.Context) ([]response.MovieWithSchedules, error) {
	var movies []response.MovieWithSchedules
	if err := s.c.get(ctx, "/bookings/movies", &movies); err != nil {
		return nil, fmt.Errorf("get movies with schedules: %w", err)
	}
	return movies, nil
}

// Schedules returns one movie with its schedules grouped by room.
func (s *BookingService) Schedules(ctx context.Context, movieID string) (*response.MovieSchedules, error) {
	if movieID == "" {
		return nil, fmt.Errorf("movie ID is required")
	}

	var schedules response.MovieSchedules
	if err := s.c.get(ctx, "/bookings/schedules/"+movieID, &schedules); err != nil {
		return nil, fmt.Errorf("get schedules for movie %s: %w", movieID, err)
	}
	return &schedules, nil
}

// Seats fetches the live seat layout for a schedule.
func (s *BookingService) Seats(ctx context.Context, movieID, scheduleID string) (*response.SeatMap, error) {
	if movieID == "" || scheduleID == "" {
		return nil, fmt.Errorf("movie ID and schedule ID are required")
	}

	var seatMap response.SeatMap
	if err := s.c.get(ctx, "/bookings/seats/"+movieID+"/"+scheduleID, &seatMap); err != nil {
		return nil, fmt.Errorf("get seats for schedule %s: %w", scheduleID, err)
	}
	return &seatMap, nil
}

// SelectSeats asks the backend for a short-lived hold on the given
// seats. Arbitration is server-side: a *ConflictError comes back when
// another user got there first.
func (s *BookingService) SelectSeats(ctx context.Context, req *request.SelectSeatsRequest) (*response.Hold, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var hold response.Hold
	if err := s.c.post(ctx, "/bookings/select-seats", req, &hold); err != nil {
		return nil, fmt.Errorf("select seats: %w", err)
	}

	s.log.Info("Seats held",
		zap.String("schedule_id", req.ScheduleID),
		zap.Int("seat_count", len(req.SeatIDs)),
		zap.Time("expires_at", hold.ExpiresAt))

	return &hold, nil
}

// Summary prices a seat selection without holding or committing
// anything.
func (s *BookingService) Summary(ctx context.Context, req *request.SummaryRequest) (*response.OrderSummary, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var summary response.OrderSummary
	if err := s.c.post(ctx, "/bookings/summary", req, &summary); err != nil {
		return nil, fmt.Errorf("get order summary: %w", err)
	}
	return &summary, nil
}

// Purchase finalizes a held selection into a booking.
func (s *BookingService) Purchase(ctx context.Context, req *request.PurchaseRequest) (*response.Booking, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var booking response.Booking
	if err := s.c.post(ctx, "/bookings/purchase", req, &booking); err != nil {
		return nil, fmt.Errorf("purchase: %w", err)
	}

	s.log.Info("Purchase completed",
		zap.String("booking_id", booking.ID),
		zap.String("order_id", booking.OrderID),
		zap.Float64("total", booking.Total))

	return &booking, nil
}

func (s *BookingService) MyBookings(ctx context.Context) ([]response.Booking, error) {
	var bookings []response.Booking
	if err := s.c.get(ctx, "/bookings/my-bookings", &bookings); err != nil {
		return nil, fmt.Errorf("get my bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingService) Cancel(ctx context.Context, bookingID string) error {
	if bookingID == "" {
		return fmt.Errorf("booking ID is required")
	}

	if err := s.c.delete(ctx, "/bookings/"+bookingID+"/cancel", nil); err != nil {
		return fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	return nil
}
