package flow

import (
	"context"
	"fmt"

	"cinevers-client/internal/api"
	"cinevers-client/internal/dto/response"

	"go.uber.org/zap"
)

// SeatMap is the resolved seat layout for one schedule, seats in
// row-then-number order with an index by seat ID.
//
// Each seat carries both its stored type and its row letter. The
// stored type is the pricing source of truth; the row is layout only.
type SeatMap struct {
	Movie    response.Movie
	Schedule response.Schedule

	seats []response.Seat
	index map[string]response.Seat
}

func newSeatMap(raw *response.SeatMap) *SeatMap {
	seats := make([]response.Seat, len(raw.Seats))
	copy(seats, raw.Seats)
	sortSeats(seats)

	index := make(map[string]response.Seat, len(seats))
	for _, seat := range seats {
		index[seat.ID] = seat
	}

	return &SeatMap{
		Movie:    raw.Movie,
		Schedule: raw.Schedule,
		seats:    seats,
		index:    index,
	}
}

func (m *SeatMap) Seats() []response.Seat {
	return m.seats
}

func (m *SeatMap) Seat(id string) (response.Seat, bool) {
	seat, ok := m.index[id]
	return seat, ok
}

// Selectable reports whether a seat exists and is still available.
func (m *SeatMap) Selectable(id string) bool {
	seat, ok := m.index[id]
	return ok && seat.Status == response.SeatStatusAvailable
}

// Resolver loads seat maps. One instance per seat page; loads are
// cancelable through the page's context so an abandoned fetch cannot
// write into a torn-down view.
type Resolver struct {
	bookings *api.BookingService
	log      *zap.Logger
}

func NewResolver(bookings *api.BookingService, log *zap.Logger) *Resolver {
	return &Resolver{
		bookings: bookings,
		log:      log.With(zap.String("step", "seatmap")),
	}
}

func (r *Resolver) Load(ctx context.Context, movieID, scheduleID string) (*SeatMap, error) {
	if movieID == "" || scheduleID == "" {
		return nil, fmt.Errorf("movie ID and schedule ID are required")
	}

	raw, err := r.bookings.Seats(ctx, movieID, scheduleID)
	if err != nil {
		r.log.Warn("Seat map load failed",
			zap.String("movie_id", movieID),
			zap.String("schedule_id", scheduleID),
			zap.Error(err))
		return nil, err
	}

	return newSeatMap(raw), nil
}
