package stub

import (
	"fmt"
	"sort"
	"time"

	"cinevers-client/internal/dto/request"
	"cinevers-client/internal/dto/response"

	"github.com/google/uuid"
)

// ==================== MOVIES ====================

func (st *Store) Movies(filter request.MovieFilter) []response.Movie {
	st.mu.Lock()
	defer st.mu.Unlock()

	var out []response.Movie
	for _, movie := range st.movies {
		if filter.Genre != "" && movie.Genre != filter.Genre {
			continue
		}
		if filter.Classification != "" && movie.Classification != filter.Classification {
			continue
		}
		if filter.Status != "" {
			if string(movie.Status) != filter.Status {
				continue
			}
		} else if movie.Status == response.MovieStatusInactive {
			continue
		}
		out = append(out, toMovieResponse(movie))
	}
	return out
}

func (st *Store) MovieResponse(id string) (*response.Movie, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	movieID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("movie not found")
	}
	movie := st.movieByID(movieID)
	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}
	resp := toMovieResponse(movie)
	return &resp, nil
}

func (st *Store) CreateMovie(req request.MovieRequest) response.Movie {
	st.mu.Lock()
	defer st.mu.Unlock()

	movie := &Movie{
		ID:              uuid.New(),
		Title:           req.Title,
		Genre:           req.Genre,
		DurationMinutes: req.DurationMinutes,
		Classification:  req.Classification,
		Status:          response.MovieStatus(req.Status),
		Synopsis:        req.Synopsis,
		PosterURL:       req.PosterURL,
	}
	st.movies = append(st.movies, movie)
	return toMovieResponse(movie)
}

func (st *Store) UpdateMovie(id string, req request.MovieUpdateRequest) (*response.Movie, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	movieID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("movie not found")
	}
	movie := st.movieByID(movieID)
	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.DurationMinutes != nil {
		movie.DurationMinutes = *req.DurationMinutes
	}
	if req.Classification != nil {
		movie.Classification = *req.Classification
	}
	if req.Status != nil {
		movie.Status = response.MovieStatus(*req.Status)
	}
	if req.Synopsis != nil {
		movie.Synopsis = req.Synopsis
	}
	if req.PosterURL != nil {
		movie.PosterURL = req.PosterURL
	}

	resp := toMovieResponse(movie)
	return &resp, nil
}

// DeactivateMovie is a soft delete: the title stays for reporting.
func (st *Store) DeactivateMovie(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	movieID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("movie not found")
	}
	movie := st.movieByID(movieID)
	if movie == nil {
		return fmt.Errorf("movie not found")
	}
	movie.Status = response.MovieStatusInactive
	return nil
}

func toMovieResponse(m *Movie) response.Movie {
	return response.Movie{
		ID:              m.ID.String(),
		Title:           m.Title,
		Genre:           m.Genre,
		DurationMinutes: m.DurationMinutes,
		Classification:  m.Classification,
		Status:          m.Status,
		Synopsis:        m.Synopsis,
		PosterURL:       m.PosterURL,
	}
}

// ==================== ROOMS ====================

func (st *Store) Rooms(filter request.RoomFilter) []response.Room {
	st.mu.Lock()
	defer st.mu.Unlock()

	var out []response.Room
	for _, room := range st.rooms {
		if filter.Type != "" && room.Type != filter.Type {
			continue
		}
		if filter.Status != "" && room.Status != filter.Status {
			continue
		}
		out = append(out, toRoomResponse(room))
	}
	return out
}

func (st *Store) CreateRoom(req request.RoomRequest) response.Room {
	st.mu.Lock()
	defer st.mu.Unlock()

	room := &Room{
		ID:       uuid.New(),
		Name:     req.Name,
		Type:     req.Type,
		Rows:     req.Rows,
		Columns:  req.Columns,
		Status:   req.Status,
		Features: req.Features,
	}
	st.rooms = append(st.rooms, room)
	return toRoomResponse(room)
}

func (st *Store) UpdateRoom(id string, req request.RoomUpdateRequest) (*response.Room, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	room, err := st.lookupRoom(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Type != nil {
		room.Type = *req.Type
	}
	if req.Status != nil {
		room.Status = *req.Status
	}
	if req.Features != nil {
		room.Features = *req.Features
	}

	resp := toRoomResponse(room)
	return &resp, nil
}

func (st *Store) SetRoomStatus(id, status string) (*response.Room, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	room, err := st.lookupRoom(id)
	if err != nil {
		return nil, err
	}
	room.Status = status
	resp := toRoomResponse(room)
	return &resp, nil
}

func (st *Store) lookupRoom(id string) (*Room, error) {
	roomID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("room not found")
	}
	room := st.roomByID(roomID)
	if room == nil {
		return nil, fmt.Errorf("room not found")
	}
	return room, nil
}

func toRoomResponse(r *Room) response.Room {
	return response.Room{
		ID:       r.ID.String(),
		Name:     r.Name,
		Type:     r.Type,
		Rows:     r.Rows,
		Columns:  r.Columns,
		Capacity: r.Rows * r.Columns,
		Status:   r.Status,
		Features: r.Features,
	}
}

// ==================== SCHEDULES / SEAT MAP ====================

// MoviesWithSchedules is the public listing: active movies with their
// upcoming schedule summaries attached.
func (st *Store) MoviesWithSchedules() []response.MovieWithSchedules {
	st.mu.Lock()
	defer st.mu.Unlock()

	var out []response.MovieWithSchedules
	for _, movie := range st.movies {
		if movie.Status == response.MovieStatusInactive {
			continue
		}
		entry := response.MovieWithSchedules{Movie: toMovieResponse(movie)}
		for _, sch := range st.schedules {
			if sch.MovieID == movie.ID {
				entry.Schedules = append(entry.Schedules, st.toScheduleResponse(sch))
			}
		}
		out = append(out, entry)
	}
	return out
}

// SchedulesForMovie groups a movie's schedules by room.
func (st *Store) SchedulesForMovie(movieID string) (*response.MovieSchedules, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("movie not found")
	}
	movie := st.movieByID(id)
	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	byRoom := make(map[uuid.UUID]*response.RoomSchedules)
	var order []uuid.UUID
	for _, sch := range st.schedules {
		if sch.MovieID != id {
			continue
		}
		group, ok := byRoom[sch.RoomID]
		if !ok {
			room := st.roomByID(sch.RoomID)
			group = &response.RoomSchedules{
				RoomID:   sch.RoomID.String(),
				RoomName: room.Name,
				RoomType: room.Type,
			}
			byRoom[sch.RoomID] = group
			order = append(order, sch.RoomID)
		}
		group.Schedules = append(group.Schedules, st.toScheduleResponse(sch))
	}

	result := &response.MovieSchedules{Movie: toMovieResponse(movie)}
	for _, roomID := range order {
		result.Rooms = append(result.Rooms, *byRoom[roomID])
	}
	return result, nil
}

// SeatMapFor returns the live seat layout for one schedule.
func (st *Store) SeatMapFor(movieID, scheduleID string) (*response.SeatMap, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	mID, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("movie not found")
	}
	movie := st.movieByID(mID)
	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	sID, err := uuid.Parse(scheduleID)
	if err != nil {
		return nil, fmt.Errorf("schedule not found")
	}
	sch := st.scheduleByID(sID)
	if sch == nil || sch.MovieID != mID {
		return nil, fmt.Errorf("schedule not found")
	}

	st.releaseExpired(sID, time.Now())

	seatMap := &response.SeatMap{
		Movie:    toMovieResponse(movie),
		Schedule: st.toScheduleResponse(sch),
	}
	for _, s := range st.seats[sID] {
		seatMap.Seats = append(seatMap.Seats, response.Seat{
			ID:     s.ID,
			Row:    s.Row,
			Number: s.Number,
			Status: s.Status,
			Type:   s.Type,
		})
	}
	sort.Slice(seatMap.Seats, func(i, j int) bool {
		a, b := seatMap.Seats[i], seatMap.Seats[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Number < b.Number
	})
	return seatMap, nil
}

// toScheduleResponse assumes the caller holds the lock.
func (st *Store) toScheduleResponse(sch *Schedule) response.Schedule {
	room := st.roomByID(sch.RoomID)

	available := 0
	for _, s := range st.seats[sch.ID] {
		if s.Status == response.SeatStatusAvailable {
			available++
		}
	}

	resp := response.Schedule{
		ID:             sch.ID.String(),
		MovieID:        sch.MovieID.String(),
		RoomID:         sch.RoomID.String(),
		Date:           sch.Date,
		Time:           sch.Time,
		Price:          sch.Price,
		VIPPrice:       sch.VIPPrice,
		AvailableSeats: available,
	}
	if room != nil {
		resp.RoomName = room.Name
		resp.RoomType = room.Type
	}
	return resp
}

// BookingResponse denormalizes a booking with its movie and room names.
func (st *Store) bookingResponse(b *booking) response.Booking {
	resp := response.Booking{
		ID:        b.ID.String(),
		OrderID:   b.OrderID,
		SeatIDs:   b.SeatIDs,
		Total:     b.Total,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
	}
	if sch := st.scheduleByID(b.ScheduleID); sch != nil {
		resp.Date = sch.Date
		resp.Time = sch.Time
		if movie := st.movieByID(sch.MovieID); movie != nil {
			resp.MovieTitle = movie.Title
		}
		if room := st.roomByID(sch.RoomID); room != nil {
			resp.RoomName = room.Name
		}
	}
	return resp
}

func (st *Store) BookingResponses(userID uuid.UUID) []response.Booking {
	st.mu.Lock()
	defer st.mu.Unlock()

	var out []response.Booking
	for _, b := range st.bookings {
		if b.UserID == userID {
			out = append(out, st.bookingResponse(b))
		}
	}
	return out
}

// ==================== REPORTS ====================

func (st *Store) SalesSummary(filter request.ReportFilter) response.SalesSummary {
	st.mu.Lock()
	defer st.mu.Unlock()

	summary := response.SalesSummary{StartDate: filter.StartDate, EndDate: filter.EndDate}
	for _, b := range st.bookings {
		if b.Status != response.BookingStatusConfirmed {
			continue
		}
		if !inDateRange(b.CreatedAt, filter.StartDate, filter.EndDate) {
			continue
		}
		summary.TotalSales += b.Total
		summary.TicketsSold += len(b.SeatIDs)
		summary.BookingCount++
	}
	return summary
}

func (st *Store) SalesLines(filter request.ReportFilter) []response.SalesLine {
	st.mu.Lock()
	defer st.mu.Unlock()

	var out []response.SalesLine
	for _, b := range st.bookings {
		if b.Status != response.BookingStatusConfirmed {
			continue
		}
		if !inDateRange(b.CreatedAt, filter.StartDate, filter.EndDate) {
			continue
		}
		full := st.bookingResponse(b)
		if filter.Movie != "" && full.MovieTitle != filter.Movie {
			continue
		}
		out = append(out, response.SalesLine{
			OrderID:    full.OrderID,
			MovieTitle: full.MovieTitle,
			RoomName:   full.RoomName,
			Date:       full.Date,
			Seats:      len(full.SeatIDs),
			Total:      full.Total,
		})
	}
	return out
}

func (st *Store) TopMovies(limit int) []response.TopMovie {
	st.mu.Lock()
	defer st.mu.Unlock()

	byMovie := make(map[uuid.UUID]*response.TopMovie)
	for _, b := range st.bookings {
		if b.Status != response.BookingStatusConfirmed {
			continue
		}
		sch := st.scheduleByID(b.ScheduleID)
		if sch == nil {
			continue
		}
		entry, ok := byMovie[sch.MovieID]
		if !ok {
			movie := st.movieByID(sch.MovieID)
			if movie == nil {
				continue
			}
			entry = &response.TopMovie{MovieID: movie.ID.String(), Title: movie.Title}
			byMovie[sch.MovieID] = entry
		}
		entry.TicketsSold += len(b.SeatIDs)
		entry.Revenue += b.Total
	}

	out := make([]response.TopMovie, 0, len(byMovie))
	for _, entry := range byMovie {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TicketsSold > out[j].TicketsSold })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func inDateRange(t time.Time, start, end string) bool {
	day := t.Format("2006-01-02")
	if start != "" && day < start {
		return false
	}
	if end != "" && day > end {
		return false
	}
	return true
}
