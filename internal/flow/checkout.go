package flow

import (
	"fmt"
	"time"

	"cinevers-client/internal/dto/response"

	"go.uber.org/zap"
)

type OrderItem struct {
	Description string
	Amount      float64
}

// Order is the derived purchase summary shown on the checkout page.
// It exists only as long as the session does.
type Order struct {
	Movie         response.Movie
	Schedule      response.Schedule
	Seats         []response.Seat
	Items         []OrderItem
	Subtotal      float64
	ServiceCharge float64
	Total         float64
	HoldExpiresAt time.Time
}

// Checkout assembles the order from the session written by Commit.
// No server round-trip happens at this step.
type Checkout struct {
	store *Store
	log   *zap.Logger
}

func NewCheckout(store *Store, log *zap.Logger) *Checkout {
	return &Checkout{
		store: store,
		log:   log.With(zap.String("step", "checkout")),
	}
}

// Load reads the session. A missing or incomplete session means the
// user entered the flow sideways (direct load, completed purchase,
// abandoned flow): ErrFlowExpired, and the caller goes back to the
// catalog instead of rendering a blank order.
func (c *Checkout) Load() (*Order, error) {
	sess, ok := c.store.Get()
	if !ok || !sess.Complete() {
		c.log.Warn("Checkout entered without a booking session")
		return nil, ErrFlowExpired
	}

	var regular, vip int
	for _, seat := range sess.Seats {
		if seat.Type == response.SeatTypeVIP {
			vip++
		} else {
			regular++
		}
	}

	var items []OrderItem
	if regular > 0 {
		items = append(items, OrderItem{
			Description: fmt.Sprintf("%d x Boleto Regular", regular),
			Amount:      float64(regular) * sess.Schedule.Price,
		})
	}
	if vip > 0 {
		items = append(items, OrderItem{
			Description: fmt.Sprintf("%d x Boleto VIP", vip),
			Amount:      float64(vip) * sess.Schedule.VIPPrice,
		})
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Amount
	}

	return &Order{
		Movie:         sess.Movie,
		Schedule:      sess.Schedule,
		Seats:         sess.Seats,
		Items:         items,
		Subtotal:      subtotal,
		ServiceCharge: ServiceCharge,
		Total:         subtotal + ServiceCharge,
		HoldExpiresAt: sess.HoldExpiresAt,
	}, nil
}

// ApplyPromo accepts a code but changes nothing.
// TODO: wire to the backend discount endpoint once it exists.
func (c *Checkout) ApplyPromo(order *Order, code string) error {
	if code == "" {
		return fmt.Errorf("promo code is required")
	}

	c.log.Info("Promo code ignored, discounts not available", zap.String("code", code))
	return nil
}
