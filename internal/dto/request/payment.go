package request

// SaveCardRequest registers a card and yields a payment method ID.
// Expiry is MM/YY, both segments exactly two digits.
type SaveCardRequest struct {
	CardNumber string `json:"card_number" validate:"required,numeric,min=13,max=19"`
	Expiry     string `json:"expiry" validate:"required,len=5,expiry"`
	CVV        string `json:"cvv" validate:"required,numeric,min=3,max=4"`
	HolderName string `json:"holder_name" validate:"required,min=3,max=100"`
}
