package flow

import (
	"context"
	"sync"

	"cinevers-client/internal/api"
	"cinevers-client/internal/dto/request"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

type SubmitState string

const (
	StateIdle               SubmitState = "idle"
	StateValidating         SubmitState = "validating"
	StateSubmittingCard     SubmitState = "submittingCard"
	StateSubmittingPurchase SubmitState = "submittingPurchase"
	StateSuccess            SubmitState = "success"
	StateError              SubmitState = "error"
)

// Card is what the user types on the payment form.
type Card struct {
	Number     string
	Expiry     string // MM/YY
	CVV        string
	HolderName string
}

// Confirmation is what the confirmation view renders.
type Confirmation struct {
	BookingID string
	OrderID   string
	Seats     []string
	Total     float64
}

// Submitter finalizes the purchase. The state runs from idle through
// validating, submittingCard and submittingPurchase to success or
// error. error returns to idle on the next Submit, so the user can fix the
// form and resubmit. Nothing mid-submit is persisted; a fresh process
// resumes from the session, not from a half-finished submission.
type Submitter struct {
	payments *api.PaymentService
	bookings *api.BookingService
	store    *Store
	log      *zap.Logger

	mu    sync.Mutex
	state SubmitState
}

func NewSubmitter(payments *api.PaymentService, bookings *api.BookingService, store *Store, log *zap.Logger) *Submitter {
	return &Submitter{
		payments: payments,
		bookings: bookings,
		store:    store,
		state:    StateIdle,
		log:      log.With(zap.String("step", "payment")),
	}
}

func (s *Submitter) State() SubmitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Submitter) setState(state SubmitState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// begin moves error back to idle and claims the submitter.
func (s *Submitter) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateIdle, StateError:
		s.state = StateValidating
		return nil
	default:
		return ErrSubmitInProgress
	}
}

func (s *Submitter) fail(err error) error {
	s.setState(StateError)
	return err
}

// Submit validates locally, registers the card, then finalizes the
// purchase. Validation failures never reach the network. On success
// the session is cleared and the booking ID kept transiently for the
// confirmation view. The fate of the hold on failure is left to the
// server's expiry.
func (s *Submitter) Submit(ctx context.Context, card Card, acceptTerms bool) (*Confirmation, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	if !acceptTerms {
		return nil, s.fail(ErrTermsNotAccepted)
	}

	cardReq := &request.SaveCardRequest{
		CardNumber: card.Number,
		Expiry:     card.Expiry,
		CVV:        card.CVV,
		HolderName: card.HolderName,
	}
	if errs := utils.ValidateStruct(cardReq); len(errs) > 0 {
		s.log.Warn("Card validation failed", zap.Any("errors", errs))
		return nil, s.fail(&CardValidationError{Fields: errs})
	}

	sess, ok := s.store.Get()
	if !ok || !sess.Complete() {
		return nil, s.fail(ErrFlowExpired)
	}

	seatIDs := make([]string, len(sess.Seats))
	for i, seat := range sess.Seats {
		seatIDs[i] = seat.ID
	}

	s.setState(StateSubmittingCard)
	method, err := s.payments.SaveCard(ctx, cardReq)
	if err != nil {
		s.log.Warn("Card registration failed", zap.Error(err))
		return nil, s.fail(err)
	}

	s.setState(StateSubmittingPurchase)
	booking, err := s.bookings.Purchase(ctx, &request.PurchaseRequest{
		MovieID:         sess.MovieID,
		ScheduleID:      sess.ScheduleID,
		SeatIDs:         seatIDs,
		PaymentMethodID: method.ID,
		Type:            "online",
	})
	if err != nil {
		s.log.Warn("Purchase failed", zap.Error(err))
		return nil, s.fail(err)
	}

	s.store.Clear()
	s.store.SetLastBookingID(booking.ID)
	s.setState(StateSuccess)

	s.log.Info("Purchase confirmed",
		zap.String("booking_id", booking.ID),
		zap.String("order_id", booking.OrderID))

	return &Confirmation{
		BookingID: booking.ID,
		OrderID:   booking.OrderID,
		Seats:     booking.SeatIDs,
		Total:     booking.Total,
	}, nil
}
