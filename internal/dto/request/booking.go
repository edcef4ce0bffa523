package request

type SelectSeatsRequest struct {
	MovieID    string   `json:"movie_id" validate:"required,uuid4"`
	ScheduleID string   `json:"schedule_id" validate:"required,uuid4"`
	SeatIDs    []string `json:"seat_ids" validate:"required,min=1,dive,required"`
}

type SummaryRequest struct {
	MovieID    string   `json:"movie_id" validate:"required,uuid4"`
	ScheduleID string   `json:"schedule_id" validate:"required,uuid4"`
	SeatIDs    []string `json:"seat_ids" validate:"required,min=1,dive,required"`
	PromoCode  string   `json:"promo_code,omitempty"`
}

type PurchaseRequest struct {
	MovieID         string   `json:"movie_id" validate:"required,uuid4"`
	ScheduleID      string   `json:"schedule_id" validate:"required,uuid4"`
	SeatIDs         []string `json:"seat_ids" validate:"required,min=1,dive,required"`
	PaymentMethodID string   `json:"payment_method_id" validate:"required,uuid4"`
	// Type distinguishes online card purchases from box-office sales
	Type string `json:"type" validate:"required,oneof=online taquilla"`
}
