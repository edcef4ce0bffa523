package flow

import (
	"errors"
	"testing"
	"time"

	"cinevers-client/internal/dto/response"

	"go.uber.org/zap"
)

func completeSession() Session {
	return Session{
		MovieID:    "11111111-1111-4111-8111-111111111111",
		ScheduleID: "22222222-2222-4222-8222-222222222222",
		Movie:      response.Movie{ID: "11111111-1111-4111-8111-111111111111", Title: "Acción Extrema"},
		Schedule:   response.Schedule{ID: "22222222-2222-4222-8222-222222222222", Price: 250, VIPPrice: 350, RoomName: "Sala 1"},
		Seats: []response.Seat{
			seat("A1", "A", 1, response.SeatStatusReserved, response.SeatTypeRegular),
			seat("A4", "A", 4, response.SeatStatusReserved, response.SeatTypeRegular),
			seat("B5", "B", 5, response.SeatStatusReserved, response.SeatTypeVIP),
		},
		HoldToken:     "hold-1",
		HoldExpiresAt: time.Now().Add(15 * time.Minute),
		CreatedAt:     time.Now(),
	}
}

func TestCheckoutLoadWithoutSession(t *testing.T) {
	store := NewStore()
	checkout := NewCheckout(store, zap.NewNop())

	if _, err := checkout.Load(); !errors.Is(err, ErrFlowExpired) {
		t.Errorf("Load() error = %v, want ErrFlowExpired", err)
	}
}

func TestCheckoutLoadAfterClear(t *testing.T) {
	store := NewStore()
	store.Put(completeSession())
	store.Clear()

	checkout := NewCheckout(store, zap.NewNop())
	if _, err := checkout.Load(); !errors.Is(err, ErrFlowExpired) {
		t.Errorf("Load() error = %v, want ErrFlowExpired", err)
	}
}

func TestCheckoutLoadIncompleteSession(t *testing.T) {
	store := NewStore()
	sess := completeSession()
	sess.Seats = nil
	store.Put(sess)

	checkout := NewCheckout(store, zap.NewNop())
	if _, err := checkout.Load(); !errors.Is(err, ErrFlowExpired) {
		t.Errorf("Load() error = %v, want ErrFlowExpired", err)
	}
}

func TestCheckoutOrderTotals(t *testing.T) {
	store := NewStore()
	store.Put(completeSession())

	order, err := NewCheckout(store, zap.NewNop()).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(order.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(order.Items))
	}
	if order.Items[0].Description != "2 x Boleto Regular" {
		t.Errorf("Items[0].Description = %q, want %q", order.Items[0].Description, "2 x Boleto Regular")
	}
	if order.Items[0].Amount != 500 {
		t.Errorf("Items[0].Amount = %v, want 500", order.Items[0].Amount)
	}
	if order.Items[1].Description != "1 x Boleto VIP" {
		t.Errorf("Items[1].Description = %q, want %q", order.Items[1].Description, "1 x Boleto VIP")
	}
	if order.Items[1].Amount != 350 {
		t.Errorf("Items[1].Amount = %v, want 350", order.Items[1].Amount)
	}

	if order.Subtotal != 850 {
		t.Errorf("Subtotal = %v, want 850", order.Subtotal)
	}
	if order.ServiceCharge != ServiceCharge {
		t.Errorf("ServiceCharge = %v, want %v", order.ServiceCharge, ServiceCharge)
	}
	if order.Total != 850+ServiceCharge {
		t.Errorf("Total = %v, want %v", order.Total, 850+ServiceCharge)
	}
}

func TestCheckoutPromoIsNoOp(t *testing.T) {
	store := NewStore()
	store.Put(completeSession())

	checkout := NewCheckout(store, zap.NewNop())
	order, err := checkout.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	before := order.Total
	if err := checkout.ApplyPromo(order, "CINE50"); err != nil {
		t.Fatalf("ApplyPromo() error = %v", err)
	}
	if order.Total != before {
		t.Errorf("Total changed from %v to %v, promo must not discount", before, order.Total)
	}

	if err := checkout.ApplyPromo(order, ""); err == nil {
		t.Error("ApplyPromo with empty code should fail")
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewStore()

	if _, ok := store.Get(); ok {
		t.Fatal("empty store should not return a session")
	}

	store.Put(completeSession())
	sess, ok := store.Get()
	if !ok {
		t.Fatal("Get() after Put() should return the session")
	}
	if !sess.Complete() {
		t.Error("stored session should be complete")
	}

	// Mutating the returned copy must not affect the stored snapshot
	sess.MovieID = "tampered"
	again, _ := store.Get()
	if again.MovieID != "11111111-1111-4111-8111-111111111111" {
		t.Errorf("stored session mutated through the returned copy: %s", again.MovieID)
	}
}

func TestLastBookingIDIsTakenOnce(t *testing.T) {
	store := NewStore()
	store.SetLastBookingID("booking-9")

	id, ok := store.TakeLastBookingID()
	if !ok || id != "booking-9" {
		t.Fatalf("TakeLastBookingID() = %q, %v; want booking-9, true", id, ok)
	}
	if _, ok := store.TakeLastBookingID(); ok {
		t.Error("second take should come back empty")
	}
}
