// Package stub is an in-memory stand-in for the CineVers backend. It
// implements the API surface the client talks to, with real seat
// arbitration and hold expiry, so the flow can run end to end without
// any external service. Deliberately not a production server.
package stub

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// serviceCharge matches the fixed per-order fee the client shows.
const serviceCharge = 50.0

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash []byte
	Phone        *string
	Role         string // cliente, trabajador, gerente
	Status       string // active, inactive
	CreatedAt    time.Time
}

type Movie struct {
	ID              uuid.UUID
	Title           string
	Genre           string
	DurationMinutes int
	Classification  string
	Status          response.MovieStatus
	Synopsis        *string
	PosterURL       *string
}

type Room struct {
	ID       uuid.UUID
	Name     string
	Type     string
	Rows     int
	Columns  int
	Status   string
	Features string
}

type Schedule struct {
	ID       uuid.UUID
	MovieID  uuid.UUID
	RoomID   uuid.UUID
	Date     string // 2006-01-02
	Time     string // 15:04
	Price    float64
	VIPPrice float64
}

type seat struct {
	ID          string
	Row         string
	Number      int
	Status      response.SeatStatus
	Type        response.SeatType
	heldBy      uuid.UUID
	holdExpires time.Time
}

type hold struct {
	Token      string
	UserID     uuid.UUID
	ScheduleID uuid.UUID
	SeatIDs    []string
	ExpiresAt  time.Time
}

type card struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Brand      string
	Last4      string
	HolderName string
}

type booking struct {
	ID         uuid.UUID
	OrderID    string
	UserID     uuid.UUID
	ScheduleID uuid.UUID
	SeatIDs    []string
	Total      float64
	Status     response.BookingStatus
	CreatedAt  time.Time
}

// Store is the whole backend state behind one mutex. Concurrency here
// is real: two clients racing for the same seats go through the same
// critical section the way the real backend's transaction would.
type Store struct {
	mu      sync.Mutex
	holdTTL time.Duration

	users     map[uuid.UUID]*User
	byEmail   map[string]*User
	movies    []*Movie
	rooms     []*Room
	schedules []*Schedule
	seats     map[uuid.UUID]map[string]*seat
	holds     map[string]*hold
	cards     map[uuid.UUID][]*card
	bookings  []*booking
}

func NewStore(holdTTL time.Duration) *Store {
	if holdTTL <= 0 {
		holdTTL = 15 * time.Minute
	}

	st := &Store{
		holdTTL: holdTTL,
		users:   make(map[uuid.UUID]*User),
		byEmail: make(map[string]*User),
		seats:   make(map[uuid.UUID]map[string]*seat),
		holds:   make(map[string]*hold),
		cards:   make(map[uuid.UUID][]*card),
	}
	return st
}

// ==================== USERS ====================

func (st *Store) CreateUser(name, email, password, role string, phone *string) (*User, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	key := strings.ToLower(email)
	if _, exists := st.byEmail[key]; exists {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if role == "" {
		role = "cliente"
	}

	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Role:         role,
		Status:       "active",
		CreatedAt:    time.Now(),
	}
	st.users[user.ID] = user
	st.byEmail[key] = user
	return user, nil
}

// Authenticate checks email + password against the user table.
func (st *Store) Authenticate(email, password string) (*User, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	user, ok := st.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("invalid credentials")
	}
	if user.Status != "active" {
		return nil, fmt.Errorf("account is inactive")
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

func (st *Store) UserByID(id uuid.UUID) (*User, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	user, ok := st.users[id]
	return user, ok
}

func (st *Store) Users(role, status, search string) []*User {
	st.mu.Lock()
	defer st.mu.Unlock()

	var out []*User
	for _, user := range st.users {
		if role != "" && user.Role != role {
			continue
		}
		if status != "" && user.Status != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(user.Name), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(user.Email), strings.ToLower(search)) {
			continue
		}
		out = append(out, user)
	}
	return out
}

func (st *Store) UpdateUser(id uuid.UUID, name, email, phone *string) (*User, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	user, ok := st.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	if name != nil {
		user.Name = *name
	}
	if email != nil {
		delete(st.byEmail, strings.ToLower(user.Email))
		user.Email = *email
		st.byEmail[strings.ToLower(user.Email)] = user
	}
	if phone != nil {
		user.Phone = phone
	}
	return user, nil
}

func (st *Store) UpdateUserStatus(id uuid.UUID, status string) (*User, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	user, ok := st.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	user.Status = status
	return user, nil
}

// ==================== CARDS ====================

func (st *Store) SaveCard(userID uuid.UUID, number, holder string) *card {
	st.mu.Lock()
	defer st.mu.Unlock()

	c := &card{
		ID:         uuid.New(),
		UserID:     userID,
		Brand:      cardBrand(number),
		Last4:      number[len(number)-4:],
		HolderName: holder,
	}
	st.cards[userID] = append(st.cards[userID], c)
	return c
}

func (st *Store) Cards(userID uuid.UUID) []*card {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.cards[userID]
}

func (st *Store) DeleteCard(userID uuid.UUID, cardID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	cards := st.cards[userID]
	for i, c := range cards {
		if c.ID.String() == cardID {
			st.cards[userID] = append(cards[:i], cards[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("card not found")
}

func (st *Store) cardByID(userID uuid.UUID, cardID string) (*card, bool) {
	for _, c := range st.cards[userID] {
		if c.ID.String() == cardID {
			return c, true
		}
	}
	return nil, false
}

func cardBrand(number string) string {
	switch {
	case strings.HasPrefix(number, "4"):
		return "Visa"
	case strings.HasPrefix(number, "5"):
		return "Mastercard"
	case strings.HasPrefix(number, "3"):
		return "American Express"
	default:
		return "Tarjeta"
	}
}

// ==================== BOOKING FLOW ====================

var errSeatsTaken = fmt.Errorf("seats no longer available")

// releaseExpired frees seats whose hold lapsed. Callers hold the lock.
func (st *Store) releaseExpired(scheduleID uuid.UUID, now time.Time) {
	for token, h := range st.holds {
		if h.ScheduleID != scheduleID || h.ExpiresAt.After(now) {
			continue
		}
		for _, seatID := range h.SeatIDs {
			if s, ok := st.seats[scheduleID][seatID]; ok && s.Status == response.SeatStatusReserved {
				s.Status = response.SeatStatusAvailable
				s.heldBy = uuid.Nil
			}
		}
		delete(st.holds, token)
	}
}

// SelectSeats arbitrates a hold request. First commit wins: when any
// requested seat is not available the whole request is rejected and
// the taken seats are reported back.
func (st *Store) SelectSeats(userID, scheduleID uuid.UUID, seatIDs []string) (*hold, []string, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	seats, ok := st.seats[scheduleID]
	if !ok {
		return nil, nil, fmt.Errorf("schedule not found")
	}

	now := time.Now()
	st.releaseExpired(scheduleID, now)

	var taken []string
	for _, id := range seatIDs {
		s, ok := seats[id]
		if !ok {
			return nil, nil, fmt.Errorf("seat %s not found", id)
		}
		if s.Status != response.SeatStatusAvailable {
			taken = append(taken, id)
		}
	}
	if len(taken) > 0 {
		return nil, taken, errSeatsTaken
	}

	h := &hold{
		Token:      uuid.NewString(),
		UserID:     userID,
		ScheduleID: scheduleID,
		SeatIDs:    append([]string(nil), seatIDs...),
		ExpiresAt:  now.Add(st.holdTTL),
	}
	for _, id := range seatIDs {
		seats[id].Status = response.SeatStatusReserved
		seats[id].heldBy = userID
		seats[id].holdExpires = h.ExpiresAt
	}
	st.holds[h.Token] = h

	return h, nil, nil
}

// Purchase finalizes a hold: the user's reserved seats become occupied
// and a booking is written.
func (st *Store) Purchase(userID, scheduleID uuid.UUID, seatIDs []string, paymentMethodID string) (*booking, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	seats, ok := st.seats[scheduleID]
	if !ok {
		return nil, fmt.Errorf("schedule not found")
	}
	schedule := st.scheduleByID(scheduleID)
	if schedule == nil {
		return nil, fmt.Errorf("schedule not found")
	}

	if _, ok := st.cardByID(userID, paymentMethodID); !ok {
		return nil, fmt.Errorf("payment method not found")
	}

	now := time.Now()
	st.releaseExpired(scheduleID, now)

	var total float64
	for _, id := range seatIDs {
		s, ok := seats[id]
		if !ok {
			return nil, fmt.Errorf("seat %s not found", id)
		}
		if s.Status != response.SeatStatusReserved || s.heldBy != userID {
			return nil, fmt.Errorf("seat %s is not held by this user", id)
		}
		if s.Type == response.SeatTypeVIP {
			total += schedule.VIPPrice
		} else {
			total += schedule.Price
		}
	}
	total += serviceCharge

	for _, id := range seatIDs {
		seats[id].Status = response.SeatStatusOccupied
		seats[id].heldBy = uuid.Nil
	}
	// Drop the hold that covered these seats
	for token, h := range st.holds {
		if h.UserID == userID && h.ScheduleID == scheduleID {
			delete(st.holds, token)
		}
	}

	b := &booking{
		ID:         uuid.New(),
		OrderID:    utils.GenerateOrderID(),
		UserID:     userID,
		ScheduleID: scheduleID,
		SeatIDs:    append([]string(nil), seatIDs...),
		Total:      total,
		Status:     response.BookingStatusConfirmed,
		CreatedAt:  now,
	}
	st.bookings = append(st.bookings, b)
	return b, nil
}

func (st *Store) BookingsByUser(userID uuid.UUID) []*booking {
	st.mu.Lock()
	defer st.mu.Unlock()

	var out []*booking
	for _, b := range st.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

func (st *Store) CancelBooking(userID uuid.UUID, bookingID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, b := range st.bookings {
		if b.ID.String() != bookingID {
			continue
		}
		if b.UserID != userID {
			return fmt.Errorf("unauthorized to cancel this booking")
		}
		if b.Status == response.BookingStatusCancelled {
			return fmt.Errorf("booking already cancelled")
		}
		b.Status = response.BookingStatusCancelled
		if seats, ok := st.seats[b.ScheduleID]; ok {
			for _, id := range b.SeatIDs {
				if s, ok := seats[id]; ok {
					s.Status = response.SeatStatusAvailable
				}
			}
		}
		return nil
	}
	return fmt.Errorf("booking not found")
}

func (st *Store) scheduleByID(id uuid.UUID) *Schedule {
	for _, sch := range st.schedules {
		if sch.ID == id {
			return sch
		}
	}
	return nil
}

func (st *Store) roomByID(id uuid.UUID) *Room {
	for _, room := range st.rooms {
		if room.ID == id {
			return room
		}
	}
	return nil
}

func (st *Store) movieByID(id uuid.UUID) *Movie {
	for _, movie := range st.movies {
		if movie.ID == id {
			return movie
		}
	}
	return nil
}
