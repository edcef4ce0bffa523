package flow

import (
	"context"
	"errors"
	"time"

	"cinevers-client/internal/api"
	"cinevers-client/internal/dto/request"

	"go.uber.org/zap"
)

// Committer turns a selection into a server-side hold. Selection is
// optimistic: seats look free until the backend arbitrates the commit.
// On rejection the seat map is re-fetched and the taken seats are
// dropped from the selection, leaving the user on the seat page with a
// reconciled view.
type Committer struct {
	bookings *api.BookingService
	resolver *Resolver
	store    *Store
	log      *zap.Logger
}

func NewCommitter(bookings *api.BookingService, resolver *Resolver, store *Store, log *zap.Logger) *Committer {
	return &Committer{
		bookings: bookings,
		resolver: resolver,
		store:    store,
		log:      log.With(zap.String("step", "reservation")),
	}
}

// Commit requests the hold and, on success, writes the session
// snapshot the next steps resume from.
func (c *Committer) Commit(ctx context.Context, seatMap *SeatMap, sel *Selection) (*Session, error) {
	if sel.Empty() {
		return nil, ErrEmptySelection
	}

	req := &request.SelectSeatsRequest{
		MovieID:    seatMap.Movie.ID,
		ScheduleID: seatMap.Schedule.ID,
		SeatIDs:    sel.SeatIDs(),
	}

	hold, err := c.bookings.SelectSeats(ctx, req)
	if err != nil {
		var conflict *api.ConflictError
		if errors.As(err, &conflict) {
			return nil, c.reconcile(ctx, seatMap, sel, conflict)
		}
		return nil, err
	}

	sess := Session{
		MovieID:       seatMap.Movie.ID,
		ScheduleID:    seatMap.Schedule.ID,
		Movie:         seatMap.Movie,
		Schedule:      seatMap.Schedule,
		Seats:         sel.Seats(),
		HoldToken:     hold.HoldToken,
		HoldExpiresAt: hold.ExpiresAt,
		CreatedAt:     time.Now(),
	}
	c.store.Put(sess)

	c.log.Info("Hold acquired",
		zap.String("schedule_id", sess.ScheduleID),
		zap.Strings("seats", sel.SeatIDs()),
		zap.Time("expires_at", hold.ExpiresAt))

	return &sess, nil
}

// reconcile re-fetches the seat map after a rejected hold so the now
// taken seats render unselectable, and drops them from the selection.
func (c *Committer) reconcile(ctx context.Context, seatMap *SeatMap, sel *Selection, conflict *api.ConflictError) error {
	refreshed, loadErr := c.resolver.Load(ctx, seatMap.Movie.ID, seatMap.Schedule.ID)
	if loadErr != nil {
		c.log.Warn("Reconciliation re-fetch failed", zap.Error(loadErr))
		return loadErr
	}

	taken := conflict.TakenSeats
	if len(taken) == 0 {
		// Backend did not say which seats; derive them from the fresh map
		for _, seat := range sel.Seats() {
			if !refreshed.Selectable(seat.ID) {
				taken = append(taken, seat.ID)
			}
		}
	}
	sel.Drop(taken)

	c.log.Warn("Hold rejected, selection reconciled",
		zap.String("schedule_id", seatMap.Schedule.ID),
		zap.Strings("taken", taken))

	return &HoldConflictError{TakenSeats: taken, Refreshed: refreshed}
}
