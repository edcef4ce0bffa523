package api

import "go.uber.org/zap"

// Services groups the typed wrappers over the shared client, mirroring
// the backend's resource split.
type Services struct {
	Auth     *AuthService
	Booking  *BookingService
	Payment  *PaymentService
	Movie    *MovieService
	Room     *RoomService
	Employee *EmployeeService
	User     *UserService
	Report   *ReportService
}

func NewServices(client *Client, log *zap.Logger) *Services {
	return &Services{
		Auth:     NewAuthService(client, log),
		Booking:  NewBookingService(client, log),
		Payment:  NewPaymentService(client, log),
		Movie:    NewMovieService(client, log),
		Room:     NewRoomService(client, log),
		Employee: NewEmployeeService(client, log),
		User:     NewUserService(client, log),
		Report:   NewReportService(client, log),
	}
}
