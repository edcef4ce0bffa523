package flow

import (
	"sync"
	"time"

	"cinevers-client/internal/dto/response"
)

// Session is the typed cross-step snapshot written when a hold is
// acquired and read by checkout and payment. It replaces the old
// string-keyed browser storage with an explicit schema and an explicit
// clear contract: Clear runs on completed purchase or when the user
// starts over from the catalog.
type Session struct {
	MovieID       string
	ScheduleID    string
	Movie         response.Movie
	Schedule      response.Schedule
	Seats         []response.Seat
	HoldToken     string
	HoldExpiresAt time.Time // informational; the server owns the real expiry
	CreatedAt     time.Time
}

// Complete reports whether the snapshot has everything checkout needs.
func (s *Session) Complete() bool {
	return s != nil && s.MovieID != "" && s.ScheduleID != "" && len(s.Seats) > 0
}

// Store holds at most one in-progress booking session plus the last
// finished booking ID (kept only long enough to show the confirmation).
type Store struct {
	mu            sync.Mutex
	current       *Session
	lastBookingID string
}

func NewStore() *Store {
	return &Store{}
}

func (st *Store) Put(sess Session) {
	seats := make([]response.Seat, len(sess.Seats))
	copy(seats, sess.Seats)
	sess.Seats = seats

	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = &sess
}

func (st *Store) Get() (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.current == nil {
		return nil, false
	}
	sess := *st.current
	return &sess, true
}

func (st *Store) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = nil
}

func (st *Store) SetLastBookingID(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.lastBookingID = id
}

// TakeLastBookingID returns and forgets the stored booking ID.
func (st *Store) TakeLastBookingID() (string, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	id := st.lastBookingID
	st.lastBookingID = ""
	return id, id != ""
}
