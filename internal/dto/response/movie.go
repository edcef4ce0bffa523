package response

type MovieStatus string

const (
	MovieStatusInTheaters MovieStatus = "in_theaters"
	MovieStatusUpcoming   MovieStatus = "upcoming"
	MovieStatusInactive   MovieStatus = "inactive"
)

type Movie struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Genre           string      `json:"genre"`
	DurationMinutes int         `json:"duration_minutes"`
	Classification  string      `json:"classification"`
	Status          MovieStatus `json:"status"`
	Synopsis        *string     `json:"synopsis,omitempty"`
	PosterURL       *string     `json:"poster_url,omitempty"`
}

// MovieWithSchedules is the catalog listing entry: a movie plus its
// upcoming schedule summaries.
type MovieWithSchedules struct {
	Movie
	Schedules []Schedule `json:"schedules"`
}
