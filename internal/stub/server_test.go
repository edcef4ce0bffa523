package stub

import (
	"context"
	"errors"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"cinevers-client/internal/api"
	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"
	"cinevers-client/internal/flow"
	"cinevers-client/pkg/utils"

	"go.uber.org/zap"
)

func testStubConfig() utils.StubConfig {
	return utils.StubConfig{
		JWTSecret:       "test-secret",
		JWTExpiryHours:  1,
		HoldTTLMinutes:  15,
		SeedAdminEmail:  "gerente@cinevers.mx",
		SeedAdminPass:   "gerente123",
		SeedClientEmail: "cliente@cinevers.mx",
		SeedClientPass:  "cliente123",
	}
}

type env struct {
	client   *api.Client
	services *api.Services
	flow     *flow.Flow
	cfg      utils.StubConfig
}

// newEnv spins up the backend and one client against it.
func newEnv(t *testing.T) *env {
	t.Helper()

	cfg := testStubConfig()
	srv, err := NewServer(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	creds := api.NewCredentials(filepath.Join(t.TempDir(), "session"))
	client := api.NewClient(utils.APIConfig{BaseURL: ts.URL + "/api", TimeoutSeconds: 5}, creds, zap.NewNop())
	services := api.NewServices(client, zap.NewNop())
	return &env{
		client:   client,
		services: services,
		flow:     flow.New(services, zap.NewNop()),
		cfg:      cfg,
	}
}

// admin returns services bound to the back-office credential namespace.
func (e *env) admin() *api.Services {
	return api.NewServices(e.client.WithRole(api.RoleAdmin), zap.NewNop())
}

func login(t *testing.T, services *api.Services, email, password string) *response.AuthResponse {
	t.Helper()

	auth, err := services.Auth.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("Login(%s) error = %v", email, err)
	}
	return auth
}

func TestFullPurchaseFlow(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	services, f := e.services, e.flow

	auth := login(t, services, e.cfg.SeedClientEmail, e.cfg.SeedClientPass)
	if auth.User.Role != "cliente" {
		t.Fatalf("seed user role = %s, want cliente", auth.User.Role)
	}

	// Catalog
	movies, err := f.Catalog.Movies(ctx)
	if err != nil {
		t.Fatalf("Movies() error = %v", err)
	}
	var movieID string
	for _, m := range movies {
		if len(m.Schedules) > 0 {
			movieID = m.ID
			break
		}
	}
	if movieID == "" {
		t.Fatal("seeded catalog has no movie with schedules")
	}

	schedules, err := f.Catalog.MovieSchedules(ctx, movieID)
	if err != nil {
		t.Fatalf("MovieSchedules() error = %v", err)
	}
	scheduleID := schedules.Rooms[0].Schedules[0].ID

	// Seat map: seeded sold seats render occupied, center block is VIP
	seatMap, err := f.Resolver.Load(ctx, movieID, scheduleID)
	if err != nil {
		t.Fatalf("Resolver.Load() error = %v", err)
	}
	if a2, _ := seatMap.Seat("A2"); a2.Status != response.SeatStatusOccupied {
		t.Errorf("A2 status = %s, want occupied", a2.Status)
	}
	if b5, _ := seatMap.Seat("B5"); b5.Type != response.SeatTypeVIP {
		t.Errorf("B5 type = %s, want vip", b5.Type)
	}
	if a1, _ := seatMap.Seat("A1"); a1.Type != response.SeatTypeRegular {
		t.Errorf("A1 type = %s, want regular", a1.Type)
	}

	// Selection: one regular, one VIP
	sel := flow.NewSelection(seatMap.Schedule)
	for _, id := range []string{"A1", "B5"} {
		s, _ := seatMap.Seat(id)
		if !sel.Toggle(s) {
			t.Fatalf("seat %s should be selectable", id)
		}
	}
	wantTotal := 250 + 350 + flow.ServiceCharge
	if sel.Total() != wantTotal {
		t.Fatalf("Total() = %v, want %v", sel.Total(), wantTotal)
	}

	// Hold
	sess, err := f.Committer.Commit(ctx, seatMap, sel)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if sess.HoldToken == "" {
		t.Error("hold token should be set")
	}

	// Held seats are reserved for everyone else
	reloaded, err := f.Resolver.Load(ctx, movieID, scheduleID)
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if a1, _ := reloaded.Seat("A1"); a1.Status != response.SeatStatusReserved {
		t.Errorf("A1 status after hold = %s, want reserved", a1.Status)
	}

	// Checkout
	order, err := f.Checkout.Load()
	if err != nil {
		t.Fatalf("Checkout.Load() error = %v", err)
	}
	if order.Total != wantTotal {
		t.Errorf("order total = %v, want %v", order.Total, wantTotal)
	}

	// Payment
	confirmation, err := f.Submitter.Submit(ctx, flow.Card{
		Number:     "4242424242424242",
		Expiry:     "12/27",
		CVV:        "123",
		HolderName: "Cliente Demo",
	}, true)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if confirmation.Total != wantTotal {
		t.Errorf("confirmation total = %v, want %v", confirmation.Total, wantTotal)
	}

	// Purchased seats are sold now
	final, err := f.Resolver.Load(ctx, movieID, scheduleID)
	if err != nil {
		t.Fatalf("final reload error = %v", err)
	}
	for _, id := range []string{"A1", "B5"} {
		if s, _ := final.Seat(id); s.Status != response.SeatStatusOccupied {
			t.Errorf("%s status after purchase = %s, want occupied", id, s.Status)
		}
	}

	// And the booking shows up in the history
	bookings, err := services.Booking.MyBookings(ctx)
	if err != nil {
		t.Fatalf("MyBookings() error = %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("len(bookings) = %d, want 1", len(bookings))
	}
	if bookings[0].Total != wantTotal {
		t.Errorf("booking total = %v, want %v", bookings[0].Total, wantTotal)
	}
	if bookings[0].OrderID == "" {
		t.Error("booking should carry an order ID")
	}
}

func TestSeatRaceFirstCommitWins(t *testing.T) {
	ctx := context.Background()

	e := newEnv(t)
	flowA := e.flow
	login(t, e.services, e.cfg.SeedClientEmail, e.cfg.SeedClientPass)

	movies, err := flowA.Catalog.Movies(ctx)
	if err != nil {
		t.Fatalf("Movies() error = %v", err)
	}
	var movieID string
	for _, m := range movies {
		if len(m.Schedules) > 0 {
			movieID = m.ID
			break
		}
	}
	schedules, err := flowA.Catalog.MovieSchedules(ctx, movieID)
	if err != nil {
		t.Fatalf("MovieSchedules() error = %v", err)
	}
	scheduleID := schedules.Rooms[0].Schedules[0].ID

	seatMap, err := flowA.Resolver.Load(ctx, movieID, scheduleID)
	if err != nil {
		t.Fatalf("Resolver.Load() error = %v", err)
	}

	// Both users want A1 from the same stale view
	selA := flow.NewSelection(seatMap.Schedule)
	a1, _ := seatMap.Seat("A1")
	selA.Toggle(a1)

	if _, err := flowA.Committer.Commit(ctx, seatMap, selA); err != nil {
		t.Fatalf("first Commit() error = %v", err)
	}

	// Loser: same seat, stale map, fresh session store
	selB := flow.NewSelection(seatMap.Schedule)
	selB.Toggle(a1)

	_, err = flowA.Committer.Commit(ctx, seatMap, selB)
	var conflict *flow.HoldConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("second Commit() error = %v, want *HoldConflictError", err)
	}
	if len(conflict.TakenSeats) != 1 || conflict.TakenSeats[0] != "A1" {
		t.Errorf("TakenSeats = %v, want [A1]", conflict.TakenSeats)
	}
	if selB.Contains("A1") {
		t.Error("losing selection should drop A1")
	}
	if conflict.Refreshed.Selectable("A1") {
		t.Error("A1 should be reserved on the refreshed map")
	}
}

func TestOrderSummaryPricesWithoutHolding(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	login(t, e.services, e.cfg.SeedClientEmail, e.cfg.SeedClientPass)

	movies, err := e.flow.Catalog.Movies(ctx)
	if err != nil {
		t.Fatalf("Movies() error = %v", err)
	}
	var movieID string
	for _, m := range movies {
		if len(m.Schedules) > 0 {
			movieID = m.ID
			break
		}
	}
	schedules, err := e.flow.Catalog.MovieSchedules(ctx, movieID)
	if err != nil {
		t.Fatalf("MovieSchedules() error = %v", err)
	}
	scheduleID := schedules.Rooms[0].Schedules[0].ID

	// A1 regular, B5 VIP
	summary, err := e.services.Booking.Summary(ctx, &request.SummaryRequest{
		MovieID:    movieID,
		ScheduleID: scheduleID,
		SeatIDs:    []string{"A1", "B5"},
	})
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.RegularSeats != 1 || summary.VIPSeats != 1 {
		t.Errorf("seat counts = %d regular, %d vip, want 1 and 1",
			summary.RegularSeats, summary.VIPSeats)
	}
	if summary.Subtotal != 600 {
		t.Errorf("Subtotal = %v, want 600", summary.Subtotal)
	}
	if summary.ServiceCharge != 50 {
		t.Errorf("ServiceCharge = %v, want 50", summary.ServiceCharge)
	}
	if summary.Total != 650 {
		t.Errorf("Total = %v, want 650", summary.Total)
	}

	// The preview must not hold anything
	seatMap, err := e.flow.Resolver.Load(ctx, movieID, scheduleID)
	if err != nil {
		t.Fatalf("Resolver.Load() error = %v", err)
	}
	for _, id := range []string{"A1", "B5"} {
		if !seatMap.Selectable(id) {
			t.Errorf("seat %s no longer selectable after summary", id)
		}
	}

	// Unknown seats are rejected
	if _, err := e.services.Booking.Summary(ctx, &request.SummaryRequest{
		MovieID:    movieID,
		ScheduleID: scheduleID,
		SeatIDs:    []string{"Z99"},
	}); !errors.Is(err, api.ErrNotFound) {
		t.Errorf("Summary(Z99) error = %v, want ErrNotFound", err)
	}
}

func TestAdminSurfaceNeedsBackOfficeRole(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	adminServices := e.admin()

	movieReq := &request.MovieRequest{
		Title:           "Nueva Película",
		Genre:           "Comedia",
		DurationMinutes: 95,
		Classification:  "A",
		Status:          "upcoming",
	}

	// No token in the admin namespace yet
	if _, err := adminServices.Movie.Create(ctx, movieReq); !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("Create() without login = %v, want ErrUnauthorized", err)
	}

	// A customer token on an admin route passes auth but not the role
	// guard
	login(t, e.services, e.cfg.SeedClientEmail, e.cfg.SeedClientPass)
	if _, err := e.services.Movie.Create(ctx, movieReq); !errors.Is(err, api.ErrForbidden) {
		t.Fatalf("Create() as cliente = %v, want ErrForbidden", err)
	}

	login(t, adminServices, e.cfg.SeedAdminEmail, e.cfg.SeedAdminPass)

	created, err := adminServices.Movie.Create(ctx, movieReq)
	if err != nil {
		t.Fatalf("Create() as gerente error = %v", err)
	}
	if created.Title != "Nueva Película" {
		t.Errorf("created title = %q", created.Title)
	}

	// The new title is visible on the public listing
	listed, err := e.services.Movie.Movies(ctx, request.MovieFilter{Status: "upcoming"})
	if err != nil {
		t.Fatalf("Movies() error = %v", err)
	}
	found := false
	for _, m := range listed {
		if m.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Error("created movie missing from the listing")
	}
}

func TestWorkerRoleFailsAdminGuard(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	if _, err := e.services.Auth.Register(ctx, &request.RegisterRequest{
		Name:     "Trabajador Uno",
		Email:    "trabajador@cinevers.mx",
		Password: "trabajador123",
		Role:     "trabajador",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	auth := login(t, e.services, "trabajador@cinevers.mx", "trabajador123")
	if auth.User.IsBackOffice() {
		t.Fatal("trabajador must not be a back-office role")
	}

	// Valid staff token, insufficient role
	if _, err := e.services.Room.Rooms(ctx, request.RoomFilter{}); !errors.Is(err, api.ErrForbidden) {
		t.Fatalf("Rooms() as trabajador = %v, want ErrForbidden", err)
	}
}

func TestMyBookingsRequiresAuth(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	if _, err := e.services.Booking.MyBookings(ctx); !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("MyBookings() without login = %v, want ErrUnauthorized", err)
	}
}
