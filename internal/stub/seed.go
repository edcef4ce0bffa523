package stub

import (
	"fmt"
	"time"

	"cinevers-client/internal/dto/response"
	"cinevers-client/pkg/utils"

	"github.com/google/uuid"
)

// Seed loads the demo catalog: three movies across three rooms, two
// days of schedules, plus one back-office and one customer account.
func (st *Store) Seed(cfg utils.StubConfig) error {
	if _, err := st.CreateUser("Gerente General", cfg.SeedAdminEmail, cfg.SeedAdminPass, "gerente", nil); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if _, err := st.CreateUser("Cliente Demo", cfg.SeedClientEmail, cfg.SeedClientPass, "cliente", nil); err != nil {
		return fmt.Errorf("seed client: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	sinopsis1 := "Un agente retirado vuelve a la acción para salvar la ciudad."
	sinopsis2 := "Dos desconocidos se encuentran en la noche más larga del año."
	sinopsis3 := "La inteligencia artificial decide el destino de la humanidad."

	movies := []*Movie{
		{ID: uuid.New(), Title: "Acción Extrema", Genre: "Acción", DurationMinutes: 120, Classification: "B", Status: response.MovieStatusInTheaters, Synopsis: &sinopsis1},
		{ID: uuid.New(), Title: "Lovine Drame", Genre: "Drama", DurationMinutes: 105, Classification: "A", Status: response.MovieStatusInTheaters, Synopsis: &sinopsis2},
		{ID: uuid.New(), Title: "Futuro Inteligente", Genre: "Ciencia Ficción", DurationMinutes: 130, Classification: "B15", Status: response.MovieStatusUpcoming, Synopsis: &sinopsis3},
	}
	st.movies = movies

	rooms := []*Room{
		{ID: uuid.New(), Name: "Sala 1", Type: "regular", Rows: 5, Columns: 12, Status: "active", Features: "Sonido envolvente"},
		{ID: uuid.New(), Name: "Sala 2", Type: "premium", Rows: 5, Columns: 12, Status: "active", Features: "Asientos reclinables"},
		{ID: uuid.New(), Name: "Sala 3", Type: "vip", Rows: 5, Columns: 12, Status: "active", Features: "Servicio a la butaca"},
	}
	st.rooms = rooms

	today := time.Now()
	days := []string{
		today.AddDate(0, 0, 1).Format("2006-01-02"),
		today.AddDate(0, 0, 2).Format("2006-01-02"),
	}
	times := []string{"16:00", "19:00", "21:30"}

	// Upcoming titles do not get schedules yet
	for i, movie := range movies {
		if movie.Status != response.MovieStatusInTheaters {
			continue
		}
		room := rooms[i%len(rooms)]
		for _, day := range days {
			for _, hour := range times {
				sch := &Schedule{
					ID:       uuid.New(),
					MovieID:  movie.ID,
					RoomID:   room.ID,
					Date:     day,
					Time:     hour,
					Price:    250,
					VIPPrice: 350,
				}
				st.schedules = append(st.schedules, sch)
				st.seats[sch.ID] = buildSeatGrid(room)
			}
		}
	}

	return nil
}

// seedOccupied marks seats sold before the demo starts.
var seedOccupied = map[string]bool{
	"A2": true, "A3": true, "B7": true, "C4": true, "C9": true,
}

// buildSeatGrid lays out a room's seats for one schedule. The middle
// rows' center block is VIP, everything else regular.
func buildSeatGrid(room *Room) map[string]*seat {
	grid := make(map[string]*seat, room.Rows*room.Columns)
	for r := 0; r < room.Rows; r++ {
		row := string(rune('A' + r))
		for n := 1; n <= room.Columns; n++ {
			id := fmt.Sprintf("%s%d", row, n)
			s := &seat{
				ID:     id,
				Row:    row,
				Number: n,
				Status: response.SeatStatusAvailable,
				Type:   response.SeatTypeRegular,
			}
			if row >= "B" && row <= "D" && n >= 5 && n <= 8 {
				s.Type = response.SeatTypeVIP
			}
			if seedOccupied[id] {
				s.Status = response.SeatStatusOccupied
			}
			grid[id] = s
		}
	}
	return grid
}
