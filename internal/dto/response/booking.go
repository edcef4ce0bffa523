package response

import "time"

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusReserved  SeatStatus = "reserved"
	SeatStatusOccupied  SeatStatus = "occupied"
)

type SeatType string

const (
	SeatTypeRegular SeatType = "regular"
	SeatTypeVIP     SeatType = "vip"
)

type Schedule struct {
	ID             string  `json:"id"`
	MovieID        string  `json:"movie_id"`
	RoomID         string  `json:"room_id"`
	RoomName       string  `json:"room_name"`
	RoomType       string  `json:"room_type"`
	Date           string  `json:"date"` // 2006-01-02
	Time           string  `json:"time"` // 15:04
	Price          float64 `json:"price"`
	VIPPrice       float64 `json:"vip_price"`
	AvailableSeats int     `json:"available_seats"`
}

// Seat carries both its stored type and its row letter; the type field
// is the source of truth for VIP pricing.
type Seat struct {
	ID     string     `json:"id"` // A1, B7, ...
	Row    string     `json:"row"`
	Number int        `json:"number"`
	Status SeatStatus `json:"status"`
	Type   SeatType   `json:"type"`
}

// SeatMap is the live seat layout for one schedule.
type SeatMap struct {
	Movie    Movie    `json:"movie"`
	Schedule Schedule `json:"schedule"`
	Seats    []Seat   `json:"seats"`
}

// MovieSchedules groups a movie's schedules by room.
type MovieSchedules struct {
	Movie Movie           `json:"movie"`
	Rooms []RoomSchedules `json:"rooms"`
}

type RoomSchedules struct {
	RoomID    string     `json:"room_id"`
	RoomName  string     `json:"room_name"`
	RoomType  string     `json:"room_type"`
	Schedules []Schedule `json:"schedules"`
}

// Hold is a short-lived server-side lock on seats pending payment.
// ExpiresAt is informational; the server owns the real expiry.
type Hold struct {
	HoldToken string    `json:"hold_token"`
	SeatIDs   []string  `json:"seat_ids"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OrderSummary is the priced preview for a seat selection, nothing is
// held or committed by requesting it.
type OrderSummary struct {
	Movie         Movie    `json:"movie"`
	Schedule      Schedule `json:"schedule"`
	SeatIDs       []string `json:"seat_ids"`
	RegularSeats  int      `json:"regular_seats"`
	VIPSeats      int      `json:"vip_seats"`
	Subtotal      float64  `json:"subtotal"`
	ServiceCharge float64  `json:"service_charge"`
	Total         float64  `json:"total"`
}

// ConflictDetails is the 409 payload when a hold is rejected.
type ConflictDetails struct {
	TakenSeats []string `json:"taken_seats"`
}

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID         string        `json:"id"`
	OrderID    string        `json:"order_id"`
	MovieTitle string        `json:"movie_title"`
	RoomName   string        `json:"room_name"`
	Date       string        `json:"date"`
	Time       string        `json:"time"`
	SeatIDs    []string      `json:"seat_ids"`
	Total      float64       `json:"total"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

type PaymentMethod struct {
	ID         string `json:"id"`
	CardBrand  string `json:"card_brand"`
	Last4      string `json:"last4"`
	HolderName string `json:"holder_name"`
}
