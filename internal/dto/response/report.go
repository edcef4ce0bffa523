package response

type SalesSummary struct {
	TotalSales   float64 `json:"total_sales"`
	TicketsSold  int     `json:"tickets_sold"`
	BookingCount int     `json:"booking_count"`
	StartDate    string  `json:"start_date,omitempty"`
	EndDate      string  `json:"end_date,omitempty"`
}

type SalesLine struct {
	OrderID    string  `json:"order_id"`
	MovieTitle string  `json:"movie_title"`
	RoomName   string  `json:"room_name"`
	Date       string  `json:"date"`
	Seats      int     `json:"seats"`
	Total      float64 `json:"total"`
}

type TopMovie struct {
	MovieID     string  `json:"movie_id"`
	Title       string  `json:"title"`
	TicketsSold int     `json:"tickets_sold"`
	Revenue     float64 `json:"revenue"`
}
