package api

import (
	"context"
	"fmt"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

type PaymentService struct {
	c   *Client
	log *zap.Logger
}

func NewPaymentService(c *Client, log *zap.Logger) *PaymentService {
	return &PaymentService{
		c:   c,
		log: log.With(zap.String("service", "payment")),
	}
}

// SaveCard registers the card with the backend and returns the payment
// method used to finalize the purchase. Card fields are validated
// before any network call.
func (s *PaymentService) SaveCard(ctx context.Context, req *request.SaveCardRequest) (*response.PaymentMethod, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var method response.PaymentMethod
	if err := s.c.post(ctx, "/payments/cards", req, &method); err != nil {
		return nil, fmt.Errorf("save card: %w", err)
	}

	s.log.Info("Card registered", zap.String("payment_method_id", method.ID))
	return &method, nil
}

func (s *PaymentService) Cards(ctx context.Context) ([]response.PaymentMethod, error) {
	var cards []response.PaymentMethod
	if err := s.c.get(ctx, "/payments/cards", &cards); err != nil {
		return nil, fmt.Errorf("get cards: %w", err)
	}
	return cards, nil
}

func (s *PaymentService) DeleteCard(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("card ID is required")
	}

	if err := s.c.delete(ctx, "/payments/cards/"+id, nil); err != nil {
		return fmt.Errorf("delete card %s: %w", id, err)
	}
	return nil
}
