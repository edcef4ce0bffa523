package flow

import (
	"testing"

	"cinevers-client/internal/dto/response"
)

func testSchedule() response.Schedule {
	return response.Schedule{
		ID:       "sch-1",
		Price:    250,
		VIPPrice: 350,
	}
}

func seat(id, row string, number int, status response.SeatStatus, typ response.SeatType) response.Seat {
	return response.Seat{ID: id, Row: row, Number: number, Status: status, Type: typ}
}

func TestSelectionToggle(t *testing.T) {
	tests := []struct {
		name         string
		seat         response.Seat
		wantSelected bool
	}{
		{
			name:         "available seat gets selected",
			seat:         seat("A1", "A", 1, response.SeatStatusAvailable, response.SeatTypeRegular),
			wantSelected: true,
		},
		{
			name:         "occupied seat is a no-op",
			seat:         seat("A2", "A", 2, response.SeatStatusOccupied, response.SeatTypeRegular),
			wantSelected: false,
		},
		{
			name:         "reserved seat is a no-op",
			seat:         seat("B7", "B", 7, response.SeatStatusReserved, response.SeatTypeVIP),
			wantSelected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelection(testSchedule())

			got := sel.Toggle(tt.seat)
			if got != tt.wantSelected {
				t.Errorf("Toggle() = %v, want %v", got, tt.wantSelected)
			}
			if sel.Contains(tt.seat.ID) != tt.wantSelected {
				t.Errorf("Contains(%s) = %v, want %v", tt.seat.ID, sel.Contains(tt.seat.ID), tt.wantSelected)
			}
		})
	}
}

func TestSelectionTogglePairIsIdempotent(t *testing.T) {
	sel := NewSelection(testSchedule())
	s := seat("C3", "C", 3, response.SeatStatusAvailable, response.SeatTypeRegular)

	if !sel.Toggle(s) {
		t.Fatal("first toggle should select")
	}
	if sel.Toggle(s) {
		t.Fatal("second toggle should deselect")
	}
	if sel.Count() != 0 {
		t.Errorf("Count() = %d after toggle pair, want 0", sel.Count())
	}
	if sel.Total() != 0 {
		t.Errorf("Total() = %v after toggle pair, want 0", sel.Total())
	}
}

func TestSelectionNoDuplicates(t *testing.T) {
	sel := NewSelection(testSchedule())
	s := seat("D4", "D", 4, response.SeatStatusAvailable, response.SeatTypeRegular)

	sel.Toggle(s)
	sel.Toggle(s)
	sel.Toggle(s)

	if sel.Count() != 1 {
		t.Errorf("Count() = %d, want 1", sel.Count())
	}
	if ids := sel.SeatIDs(); len(ids) != 1 || ids[0] != "D4" {
		t.Errorf("SeatIDs() = %v, want [D4]", ids)
	}
}

func TestSelectionTotal(t *testing.T) {
	tests := []struct {
		name  string
		seats []response.Seat
		want  float64
	}{
		{
			name: "two regular seats",
			seats: []response.Seat{
				seat("A1", "A", 1, response.SeatStatusAvailable, response.SeatTypeRegular),
				seat("A4", "A", 4, response.SeatStatusAvailable, response.SeatTypeRegular),
			},
			want: 2*250 + ServiceCharge,
		},
		{
			name: "regular plus vip",
			seats: []response.Seat{
				seat("A1", "A", 1, response.SeatStatusAvailable, response.SeatTypeRegular),
				seat("B5", "B", 5, response.SeatStatusAvailable, response.SeatTypeVIP),
			},
			want: 250 + 350 + ServiceCharge,
		},
		{
			name:  "empty selection has no service charge",
			seats: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := NewSelection(testSchedule())
			for _, s := range tt.seats {
				sel.Toggle(s)
			}

			if got := sel.Total(); got != tt.want {
				t.Errorf("Total() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectionSeatsSorted(t *testing.T) {
	sel := NewSelection(testSchedule())
	sel.Toggle(seat("B10", "B", 10, response.SeatStatusAvailable, response.SeatTypeRegular))
	sel.Toggle(seat("A12", "A", 12, response.SeatStatusAvailable, response.SeatTypeRegular))
	sel.Toggle(seat("B2", "B", 2, response.SeatStatusAvailable, response.SeatTypeRegular))

	want := []string{"A12", "B2", "B10"}
	got := sel.SeatIDs()
	if len(got) != len(want) {
		t.Fatalf("SeatIDs() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SeatIDs()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSelectionDrop(t *testing.T) {
	sel := NewSelection(testSchedule())
	sel.Toggle(seat("A1", "A", 1, response.SeatStatusAvailable, response.SeatTypeRegular))
	sel.Toggle(seat("A4", "A", 4, response.SeatStatusAvailable, response.SeatTypeRegular))
	sel.Toggle(seat("B5", "B", 5, response.SeatStatusAvailable, response.SeatTypeVIP))

	sel.Drop([]string{"A4", "B5", "Z9"})

	if sel.Count() != 1 {
		t.Fatalf("Count() = %d after drop, want 1", sel.Count())
	}
	if !sel.Contains("A1") {
		t.Error("A1 should survive the drop")
	}
	if got := sel.Total(); got != 250+ServiceCharge {
		t.Errorf("Total() = %v after drop, want %v", got, 250+ServiceCharge)
	}
}
