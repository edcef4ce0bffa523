package flow

import (
	"sort"

	"cinevers-client/internal/dto/response"
)

// ServiceCharge is the fixed per-order fee, charged once per purchase
// on top of the per-seat prices.
const ServiceCharge = 50.0

// Selection is the set of seats the user has picked on the seat page.
// It lives only in memory for the current step; nothing is persisted
// until the hold is committed.
type Selection struct {
	seats        map[string]response.Seat
	regularPrice float64
	vipPrice     float64
}

// NewSelection prices regular seats at the schedule price and VIP seats
// at the schedule's VIP price.
func NewSelection(schedule response.Schedule) *Selection {
	return &Selection{
		seats:        make(map[string]response.Seat),
		regularPrice: schedule.Price,
		vipPrice:     schedule.VIPPrice,
	}
}

// Toggle adds or removes a seat. Occupied and reserved seats are not
// selectable: toggling them is a no-op. Reports whether the seat is
// selected afterwards.
func (s *Selection) Toggle(seat response.Seat) bool {
	if seat.Status == response.SeatStatusOccupied || seat.Status == response.SeatStatusReserved {
		return s.Contains(seat.ID)
	}

	if _, ok := s.seats[seat.ID]; ok {
		delete(s.seats, seat.ID)
		return false
	}
	s.seats[seat.ID] = seat
	return true
}

func (s *Selection) Contains(seatID string) bool {
	_, ok := s.seats[seatID]
	return ok
}

// Drop removes the given seats, used when a hold rejection reveals
// they were taken by someone else.
func (s *Selection) Drop(seatIDs []string) {
	for _, id := range seatIDs {
		delete(s.seats, id)
	}
}

func (s *Selection) Count() int {
	return len(s.seats)
}

func (s *Selection) Empty() bool {
	return len(s.seats) == 0
}

// Seats returns the selection in row-then-number order for summary
// rendering.
func (s *Selection) Seats() []response.Seat {
	seats := make([]response.Seat, 0, len(s.seats))
	for _, seat := range s.seats {
		seats = append(seats, seat)
	}
	sortSeats(seats)
	return seats
}

func (s *Selection) SeatIDs() []string {
	seats := s.Seats()
	ids := make([]string, len(seats))
	for i, seat := range seats {
		ids[i] = seat.ID
	}
	return ids
}

func (s *Selection) counts() (regular, vip int) {
	for _, seat := range s.seats {
		if seat.Type == response.SeatTypeVIP {
			vip++
		} else {
			regular++
		}
	}
	return regular, vip
}

// Total is regular seats at the regular price plus VIP seats at the
// VIP price plus the service charge. An empty selection owes nothing.
func (s *Selection) Total() float64 {
	if s.Empty() {
		return 0
	}

	regular, vip := s.counts()
	return float64(regular)*s.regularPrice + float64(vip)*s.vipPrice + ServiceCharge
}

func sortSeats(seats []response.Seat) {
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].Row != seats[j].Row {
			return seats[i].Row < seats[j].Row
		}
		return seats[i].Number < seats[j].Number
	})
}
