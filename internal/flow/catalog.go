package flow

import (
	"context"
	"fmt"
	"sort"

	"cinevers-client/internal/api"
	"cinevers-client/internal/dto/response"

	"go.uber.org/zap"
)

// Catalog is the first flow step: movies in theaters and, per movie,
// its showtimes grouped by room. Failures are retryable by calling
// again; there is no automatic retry.
type Catalog struct {
	bookings *api.BookingService
	log      *zap.Logger
}

func NewCatalog(bookings *api.BookingService, log *zap.Logger) *Catalog {
	return &Catalog{
		bookings: bookings,
		log:      log.With(zap.String("step", "catalog")),
	}
}

func (c *Catalog) Movies(ctx context.Context) ([]response.MovieWithSchedules, error) {
	movies, err := c.bookings.MoviesWithSchedules(ctx)
	if err != nil {
		c.log.Warn("Catalog load failed", zap.Error(err))
		return nil, err
	}

	c.log.Debug("Catalog loaded", zap.Int("movies", len(movies)))
	return movies, nil
}

// MovieSchedules loads one movie's schedules grouped by room, rooms in
// stable name order.
func (c *Catalog) MovieSchedules(ctx context.Context, movieID string) (*response.MovieSchedules, error) {
	if movieID == "" {
		return nil, fmt.Errorf("movie ID is required")
	}

	schedules, err := c.bookings.Schedules(ctx, movieID)
	if err != nil {
		c.log.Warn("Schedule load failed", zap.String("movie_id", movieID), zap.Error(err))
		return nil, err
	}

	sort.Slice(schedules.Rooms, func(i, j int) bool {
		return schedules.Rooms[i].RoomName < schedules.Rooms[j].RoomName
	})
	for i := range schedules.Rooms {
		room := &schedules.Rooms[i]
		sort.Slice(room.Schedules, func(a, b int) bool {
			if room.Schedules[a].Date != room.Schedules[b].Date {
				return room.Schedules[a].Date < room.Schedules[b].Date
			}
			return room.Schedules[a].Time < room.Schedules[b].Time
		})
	}

	return schedules, nil
}
