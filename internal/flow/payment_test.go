package flow

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"cinevers-client/internal/api"
	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newTestServices points a real client at a fake backend handler.
func newTestServices(t *testing.T, handler http.Handler) *api.Services {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	creds := api.NewCredentials(filepath.Join(t.TempDir(), "session"))
	client := api.NewClient(utils.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5}, creds, zap.NewNop())
	return api.NewServices(client, zap.NewNop())
}

// paymentBackend accepts every card and purchase, counting requests.
func paymentBackend(hits *atomic.Int64) http.Handler {
	r := chi.NewRouter()
	r.Post("/payments/cards", func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		utils.ResponseCreated(w, "Card saved", response.PaymentMethod{
			ID:         "11111111-1111-4111-8111-111111111111",
			CardBrand:  "Visa",
			Last4:      "4242",
			HolderName: "Cliente Demo",
		})
	})
	r.Post("/bookings/purchase", func(w http.ResponseWriter, req *http.Request) {
		hits.Add(1)
		utils.ResponseCreated(w, "Purchase completed", response.Booking{
			ID:      "booking-1",
			OrderID: "CV-20260830-120000-0001",
			SeatIDs: []string{"A1", "A4", "B5"},
			Total:   850 + ServiceCharge,
			Status:  response.BookingStatusConfirmed,
		})
	})
	return r
}

func validCard() Card {
	return Card{
		Number:     "4242424242424242",
		Expiry:     "12/27",
		CVV:        "123",
		HolderName: "Cliente Demo",
	}
}

func newSubmitterWithSession(t *testing.T, handler http.Handler) (*Submitter, *Store) {
	t.Helper()

	services := newTestServices(t, handler)
	store := NewStore()
	store.Put(completeSession())
	return NewSubmitter(services.Payment, services.Booking, store, zap.NewNop()), store
}

func TestSubmitRejectsBadExpiryBeforeNetwork(t *testing.T) {
	tests := []struct {
		name   string
		expiry string
	}{
		{"month out of range", "13/25"},
		{"single digit month", "1/25"},
		{"wrong separator", "12-27"},
		{"alphabetic", "ab/cd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int64
			submitter, _ := newSubmitterWithSession(t, paymentBackend(&hits))

			card := validCard()
			card.Expiry = tt.expiry

			_, err := submitter.Submit(context.Background(), card, true)

			var validationErr *CardValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Submit() error = %v, want *CardValidationError", err)
			}
			if _, ok := validationErr.Fields["Expiry"]; !ok {
				t.Errorf("Fields = %v, want an Expiry entry", validationErr.Fields)
			}
			if hits.Load() != 0 {
				t.Errorf("backend hit %d times, validation must stay local", hits.Load())
			}
			if submitter.State() != StateError {
				t.Errorf("State() = %s, want %s", submitter.State(), StateError)
			}
		})
	}
}

func TestSubmitRequiresTerms(t *testing.T) {
	var hits atomic.Int64
	submitter, _ := newSubmitterWithSession(t, paymentBackend(&hits))

	_, err := submitter.Submit(context.Background(), validCard(), false)
	if !errors.Is(err, ErrTermsNotAccepted) {
		t.Fatalf("Submit() error = %v, want ErrTermsNotAccepted", err)
	}
	if hits.Load() != 0 {
		t.Errorf("backend hit %d times, terms gate must stay local", hits.Load())
	}
}

func TestSubmitWithoutSession(t *testing.T) {
	var hits atomic.Int64
	services := newTestServices(t, paymentBackend(&hits))
	submitter := NewSubmitter(services.Payment, services.Booking, NewStore(), zap.NewNop())

	_, err := submitter.Submit(context.Background(), validCard(), true)
	if !errors.Is(err, ErrFlowExpired) {
		t.Fatalf("Submit() error = %v, want ErrFlowExpired", err)
	}
	if hits.Load() != 0 {
		t.Errorf("backend hit %d times before session check", hits.Load())
	}
}

func TestSubmitSuccess(t *testing.T) {
	var hits atomic.Int64
	submitter, store := newSubmitterWithSession(t, paymentBackend(&hits))

	confirmation, err := submitter.Submit(context.Background(), validCard(), true)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if confirmation.OrderID == "" || confirmation.BookingID != "booking-1" {
		t.Errorf("Confirmation = %+v, want booking-1 with an order ID", confirmation)
	}
	if confirmation.Total != 850+ServiceCharge {
		t.Errorf("Total = %v, want %v", confirmation.Total, 850+ServiceCharge)
	}
	if hits.Load() != 2 {
		t.Errorf("backend hit %d times, want card + purchase", hits.Load())
	}
	if submitter.State() != StateSuccess {
		t.Errorf("State() = %s, want %s", submitter.State(), StateSuccess)
	}

	// Session is consumed, only the booking ID survives for the
	// confirmation view
	if _, ok := store.Get(); ok {
		t.Error("session should be cleared after purchase")
	}
	if id, ok := store.TakeLastBookingID(); !ok || id != "booking-1" {
		t.Errorf("TakeLastBookingID() = %q, %v; want booking-1, true", id, ok)
	}
}

func TestSubmitRecoversFromError(t *testing.T) {
	var hits atomic.Int64
	submitter, _ := newSubmitterWithSession(t, paymentBackend(&hits))

	bad := validCard()
	bad.CVV = "xx"
	if _, err := submitter.Submit(context.Background(), bad, true); err == nil {
		t.Fatal("bad CVV should fail validation")
	}
	if submitter.State() != StateError {
		t.Fatalf("State() = %s after failure, want %s", submitter.State(), StateError)
	}

	// error state accepts a corrected resubmission
	if _, err := submitter.Submit(context.Background(), validCard(), true); err != nil {
		t.Fatalf("resubmit after error failed: %v", err)
	}
	if submitter.State() != StateSuccess {
		t.Errorf("State() = %s, want %s", submitter.State(), StateSuccess)
	}
}

func TestSubmitFailedPurchaseKeepsSession(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/payments/cards", func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseCreated(w, "Card saved", response.PaymentMethod{ID: "22222222-2222-4222-8222-222222222222"})
	})
	r.Post("/bookings/purchase", func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseInternalError(w, "payment processor down")
	})

	submitter, store := newSubmitterWithSession(t, r)

	_, err := submitter.Submit(context.Background(), validCard(), true)
	if err == nil {
		t.Fatal("Submit() should surface the purchase failure")
	}
	if submitter.State() != StateError {
		t.Errorf("State() = %s, want %s", submitter.State(), StateError)
	}

	// The hold's fate belongs to the server; the local session stays so
	// the user can retry
	sess, ok := store.Get()
	if !ok || !sess.Complete() {
		t.Error("session should survive a failed purchase")
	}
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	inFlight := make(chan struct{})
	release := make(chan struct{})

	r := chi.NewRouter()
	r.Post("/payments/cards", func(w http.ResponseWriter, req *http.Request) {
		close(inFlight)
		<-release
		utils.ResponseCreated(w, "Card saved", response.PaymentMethod{ID: "33333333-3333-4333-8333-333333333333"})
	})
	r.Post("/bookings/purchase", func(w http.ResponseWriter, req *http.Request) {
		utils.ResponseCreated(w, "Purchase completed", response.Booking{ID: "booking-2", OrderID: "CV-1"})
	})

	submitter, _ := newSubmitterWithSession(t, r)

	done := make(chan error, 1)
	go func() {
		_, err := submitter.Submit(context.Background(), validCard(), true)
		done <- err
	}()

	select {
	case <-inFlight:
	case <-time.After(5 * time.Second):
		t.Fatal("first submission never reached the backend")
	}

	if _, err := submitter.Submit(context.Background(), validCard(), true); !errors.Is(err, ErrSubmitInProgress) {
		t.Errorf("second Submit() error = %v, want ErrSubmitInProgress", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	if submitter.State() != StateSuccess {
		t.Errorf("State() = %s, want %s", submitter.State(), StateSuccess)
	}
}
