package flow

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"cinevers-client/internal/api"
	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func testSeatMapPayload(taken ...string) response.SeatMap {
	isTaken := make(map[string]bool, len(taken))
	for _, id := range taken {
		isTaken[id] = true
	}

	seats := []response.Seat{
		seat("A1", "A", 1, response.SeatStatusAvailable, response.SeatTypeRegular),
		seat("A4", "A", 4, response.SeatStatusAvailable, response.SeatTypeRegular),
		seat("B5", "B", 5, response.SeatStatusAvailable, response.SeatTypeVIP),
	}
	for i := range seats {
		if isTaken[seats[i].ID] {
			seats[i].Status = response.SeatStatusOccupied
		}
	}

	return response.SeatMap{
		Movie:    response.Movie{ID: "11111111-1111-4111-8111-111111111111", Title: "Acción Extrema"},
		Schedule: response.Schedule{ID: "22222222-2222-4222-8222-222222222222", MovieID: "11111111-1111-4111-8111-111111111111", Price: 250, VIPPrice: 350},
		Seats:    seats,
	}
}

func newCommitter(t *testing.T, handler http.Handler) (*Committer, *Resolver, *Store) {
	t.Helper()

	services := newTestServices(t, handler)
	store := NewStore()
	resolver := NewResolver(services.Booking, zap.NewNop())
	return NewCommitter(services.Booking, resolver, store, zap.NewNop()), resolver, store
}

func loadedSelection(t *testing.T, seatMap *SeatMap, ids ...string) *Selection {
	t.Helper()

	sel := NewSelection(seatMap.Schedule)
	for _, id := range ids {
		s, ok := seatMap.Seat(id)
		if !ok {
			t.Fatalf("seat %s missing from map", id)
		}
		if !sel.Toggle(s) {
			t.Fatalf("seat %s not selectable", id)
		}
	}
	return sel
}

func TestCommitEmptySelection(t *testing.T) {
	var hits atomic.Int64
	r := chi.NewRouter()
	r.Post("/bookings/select-seats", func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
	})

	committer, _, _ := newCommitter(t, r)
	seatMap := newSeatMap(ptr(testSeatMapPayload()))

	_, err := committer.Commit(context.Background(), seatMap, NewSelection(seatMap.Schedule))
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("Commit() error = %v, want ErrEmptySelection", err)
	}
	if hits.Load() != 0 {
		t.Errorf("backend hit %d times for an empty selection", hits.Load())
	}
}

func TestCommitSuccessWritesSession(t *testing.T) {
	schedID := "22222222-2222-4222-8222-222222222222"
	expires := time.Now().Add(15 * time.Minute).UTC().Truncate(time.Second)

	r := chi.NewRouter()
	r.Get("/bookings/seats/{movieId}/{scheduleId}", func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseSuccess(w, "Seats retrieved", testSeatMapPayload())
	})
	r.Post("/bookings/select-seats", func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseSuccess(w, "Seats held", response.Hold{
			HoldToken: "hold-1",
			SeatIDs:   []string{"A1", "B5"},
			ExpiresAt: expires,
		})
	})

	committer, resolver, store := newCommitter(t, r)

	seatMap, err := resolver.Load(context.Background(), "11111111-1111-4111-8111-111111111111", schedID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	sel := loadedSelection(t, seatMap, "A1", "B5")

	sess, err := committer.Commit(context.Background(), seatMap, sel)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if sess.HoldToken != "hold-1" {
		t.Errorf("HoldToken = %q, want hold-1", sess.HoldToken)
	}
	if !sess.HoldExpiresAt.Equal(expires) {
		t.Errorf("HoldExpiresAt = %v, want %v", sess.HoldExpiresAt, expires)
	}
	if len(sess.Seats) != 2 {
		t.Errorf("len(Seats) = %d, want 2", len(sess.Seats))
	}

	stored, ok := store.Get()
	if !ok || !stored.Complete() {
		t.Fatal("Commit should leave a complete session in the store")
	}
	if stored.ScheduleID != schedID {
		t.Errorf("stored.ScheduleID = %q, want %q", stored.ScheduleID, schedID)
	}
}

func TestCommitConflictReconciles(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/bookings/seats/{movieId}/{scheduleId}", func(w http.ResponseWriter, req *http.Request) {
		// The refreshed map shows A4 sold
		utils.ResponseSuccess(w, "Seats retrieved", testSeatMapPayload("A4"))
	})
	r.Post("/bookings/select-seats", func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseConflict(w, "Some seats are no longer available",
			response.ConflictDetails{TakenSeats: []string{"A4"}})
	})

	committer, _, store := newCommitter(t, r)

	seatMap := newSeatMap(ptr(testSeatMapPayload()))
	sel := loadedSelection(t, seatMap, "A1", "A4")

	_, err := committer.Commit(context.Background(), seatMap, sel)

	var conflict *HoldConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Commit() error = %v, want *HoldConflictError", err)
	}
	if !errors.Is(err, api.ErrConflict) {
		t.Error("conflict should match api.ErrConflict")
	}
	if len(conflict.TakenSeats) != 1 || conflict.TakenSeats[0] != "A4" {
		t.Errorf("TakenSeats = %v, want [A4]", conflict.TakenSeats)
	}

	// Taken seat dropped, surviving seat kept
	if sel.Contains("A4") {
		t.Error("A4 should be dropped from the selection")
	}
	if !sel.Contains("A1") {
		t.Error("A1 should survive the reconciliation")
	}

	// Refreshed map renders the seat unselectable
	if conflict.Refreshed == nil {
		t.Fatal("conflict should carry the refreshed seat map")
	}
	if conflict.Refreshed.Selectable("A4") {
		t.Error("A4 should not be selectable on the refreshed map")
	}

	// No session until a hold succeeds
	if _, ok := store.Get(); ok {
		t.Error("rejected hold must not write a session")
	}

}

func TestCommitConflictWithoutSeatListDerivesFromMap(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/bookings/seats/{movieId}/{scheduleId}", func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseSuccess(w, "Seats retrieved", testSeatMapPayload("B5"))
	})
	r.Post("/bookings/select-seats", func(w http.ResponseWriter, req *http.Request) {
		// 409 without a taken_seats payload
		utils.ResponseConflict(w, "Some seats are no longer available", nil)
	})

	committer, _, _ := newCommitter(t, r)

	seatMap := newSeatMap(ptr(testSeatMapPayload()))
	sel := loadedSelection(t, seatMap, "A1", "B5")

	_, err := committer.Commit(context.Background(), seatMap, sel)

	var conflict *HoldConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Commit() error = %v, want *HoldConflictError", err)
	}
	if len(conflict.TakenSeats) != 1 || conflict.TakenSeats[0] != "B5" {
		t.Errorf("TakenSeats = %v, want [B5] derived from the fresh map", conflict.TakenSeats)
	}
	if sel.Contains("B5") {
		t.Error("B5 should be dropped from the selection")
	}
}

func ptr[T any](v T) *T {
	return &v
}
