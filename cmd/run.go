package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"cinevers-client/internal/api"
	"cinevers-client/internal/dto/response"
	"cinevers-client/internal/flow"
	"cinevers-client/internal/stub"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

// Options come from the command line.
type Options struct {
	Local      bool
	Email      string
	Password   string
	Admin      bool
	MovieID    string
	ScheduleID string
	Seats      []string
	Bookings   bool
}

// Run walks the whole booking flow once: login, catalog, seat
// selection, hold, checkout, payment, confirmation.
func Run(ctx context.Context, config *utils.Config, logger *zap.Logger, opts Options) error {
	if opts.Local {
		if err := startLocalBackend(config, logger); err != nil {
			return fmt.Errorf("start local backend: %w", err)
		}
	}

	creds := api.NewCredentials(config.Auth.CredentialFile)
	if err := creds.Load(); err != nil {
		logger.Warn("Could not load saved session", zap.Error(err))
	}

	client := api.NewClient(config.API, creds, logger)
	client.OnSessionExpired(func(role api.Role) {
		fmt.Printf("Session expired for %s, please log in again\n", role)
	})
	if opts.Admin {
		client = client.WithRole(api.RoleAdmin)
	}

	services := api.NewServices(client, logger)
	f := flow.New(services, logger)

	// ==================== LOGIN ====================
	email, password := opts.Email, opts.Password
	if email == "" {
		email, password = config.Stub.SeedClientEmail, config.Stub.SeedClientPass
		if opts.Admin {
			email, password = config.Stub.SeedAdminEmail, config.Stub.SeedAdminPass
		}
	}

	auth, err := services.Auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	fmt.Printf("Logged in as %s (%s)\n", auth.User.Name, auth.User.Role)

	defer func() {
		if err := creds.Save(); err != nil {
			logger.Warn("Could not persist session", zap.Error(err))
		}
	}()

	if opts.Bookings {
		return printBookings(ctx, services)
	}

	// ==================== CATALOG ====================
	movies, err := f.Catalog.Movies(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if len(movies) == 0 {
		return fmt.Errorf("no movies in theaters")
	}

	fmt.Println("\nEn cartelera:")
	for _, m := range movies {
		fmt.Printf("  %s  %s (%s, %d min)\n", m.ID, m.Title, m.Genre, m.DurationMinutes)
	}

	movieID := opts.MovieID
	if movieID == "" {
		for _, m := range movies {
			if len(m.Schedules) > 0 {
				movieID = m.ID
				break
			}
		}
	}
	if movieID == "" {
		return fmt.Errorf("no movie with schedules available")
	}

	schedules, err := f.Catalog.MovieSchedules(ctx, movieID)
	if err != nil {
		return fmt.Errorf("load schedules: %w", err)
	}

	scheduleID := opts.ScheduleID
	if scheduleID == "" && len(schedules.Rooms) > 0 && len(schedules.Rooms[0].Schedules) > 0 {
		scheduleID = schedules.Rooms[0].Schedules[0].ID
	}
	if scheduleID == "" {
		return fmt.Errorf("no schedule available for movie %s", movieID)
	}

	// ==================== SEATS ====================
	seatMap, err := f.Resolver.Load(ctx, movieID, scheduleID)
	if err != nil {
		return fmt.Errorf("load seats: %w", err)
	}

	fmt.Printf("\n%s - %s %s, %s\n", seatMap.Movie.Title,
		seatMap.Schedule.RoomName, seatMap.Schedule.Date, seatMap.Schedule.Time)
	printSeatGrid(seatMap.Seats())

	sel := flow.NewSelection(seatMap.Schedule)
	wanted := opts.Seats
	if len(wanted) == 0 {
		for _, seat := range seatMap.Seats() {
			if seatMap.Selectable(seat.ID) {
				wanted = append(wanted, seat.ID)
			}
			if len(wanted) == 2 {
				break
			}
		}
	}
	for _, id := range wanted {
		seat, ok := seatMap.Seat(id)
		if !ok {
			return fmt.Errorf("seat %s does not exist", id)
		}
		if !sel.Toggle(seat) {
			fmt.Printf("Seat %s is not available, skipping\n", id)
		}
	}
	if sel.Empty() {
		return fmt.Errorf("none of the requested seats are available")
	}

	fmt.Printf("\nSelected: %s  Total: $%.2f\n",
		strings.Join(sel.SeatIDs(), ", "), sel.Total())

	// ==================== HOLD ====================
	if _, err := f.Committer.Commit(ctx, seatMap, sel); err != nil {
		var conflict *flow.HoldConflictError
		if errors.As(err, &conflict) {
			fmt.Printf("Seats taken meanwhile: %s\n", strings.Join(conflict.TakenSeats, ", "))
			return fmt.Errorf("seat hold rejected, pick different seats")
		}
		return fmt.Errorf("hold seats: %w", err)
	}

	// ==================== CHECKOUT ====================
	order, err := f.Checkout.Load()
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	fmt.Println("\nResumen de compra:")
	for _, item := range order.Items {
		fmt.Printf("  %-24s $%.2f\n", item.Description, item.Amount)
	}
	fmt.Printf("  %-24s $%.2f\n", "Cargo por servicio", order.ServiceCharge)
	fmt.Printf("  %-24s $%.2f\n", "Total", order.Total)

	// ==================== PAYMENT ====================
	// Demo card accepted by the local backend
	card := flow.Card{
		Number:     "4242424242424242",
		Expiry:     "12/27",
		CVV:        "123",
		HolderName: auth.User.Name,
	}

	confirmation, err := f.Submitter.Submit(ctx, card, true)
	if err != nil {
		return fmt.Errorf("payment: %w", err)
	}

	fmt.Printf("\nCompra confirmada\n")
	fmt.Printf("  Orden:    %s\n", confirmation.OrderID)
	fmt.Printf("  Asientos: %s\n", strings.Join(confirmation.Seats, ", "))
	fmt.Printf("  Total:    $%.2f\n", confirmation.Total)

	return nil
}

// startLocalBackend binds the embedded backend and points the client
// at it. The listener is bound synchronously so the first request
// cannot race the startup.
func startLocalBackend(config *utils.Config, logger *zap.Logger) error {
	srv, err := stub.NewServer(config.Stub, logger)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", ":"+config.Stub.Port)
	if err != nil {
		return err
	}

	go func() {
		if err := http.Serve(ln, srv.Handler()); err != nil {
			logger.Error("Local backend stopped", zap.Error(err))
		}
	}()

	config.API.BaseURL = fmt.Sprintf("http://localhost:%s/api", config.Stub.Port)
	fmt.Printf("Local backend running on %s\n", config.API.BaseURL)
	return nil
}

func printBookings(ctx context.Context, services *api.Services) error {
	bookings, err := services.Booking.MyBookings(ctx)
	if err != nil {
		return fmt.Errorf("get bookings: %w", err)
	}

	if len(bookings) == 0 {
		fmt.Println("No bookings yet")
		return nil
	}

	fmt.Println("\nMis compras:")
	for _, b := range bookings {
		fmt.Printf("  %s  %s  %s %s  %s  $%.2f  [%s]\n",
			b.OrderID, b.MovieTitle, b.Date, b.Time,
			strings.Join(b.SeatIDs, ","), b.Total, b.Status)
	}
	return nil
}

// printSeatGrid draws the room the way the seat page does: one line
// per row, X for sold, o for held, seat ID otherwise.
func printSeatGrid(seats []response.Seat) {
	var row string
	for _, seat := range seats {
		if seat.Row != row {
			if row != "" {
				fmt.Println()
			}
			row = seat.Row
			fmt.Printf("  %s: ", row)
		}
		switch seat.Status {
		case response.SeatStatusOccupied:
			fmt.Print(" X ")
		case response.SeatStatusReserved:
			fmt.Print(" o ")
		default:
			if seat.Type == response.SeatTypeVIP {
				fmt.Printf("*%d ", seat.Number)
			} else {
				fmt.Printf("%2d ", seat.Number)
			}
		}
	}
	fmt.Println()
}
