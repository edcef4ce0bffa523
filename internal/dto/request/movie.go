package request

type MovieRequest struct {
	Title           string  `json:"title" validate:"required,min=1,max=200"`
	Genre           string  `json:"genre" validate:"required,min=1,max=50"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,min=1,max=999"`
	Classification  string  `json:"classification" validate:"required,oneof=AA A B B15 C"`
	Status          string  `json:"status" validate:"required,oneof=in_theaters upcoming inactive"`
	Synopsis        *string `json:"synopsis,omitempty"`
	PosterURL       *string `json:"poster_url,omitempty"`
}

type MovieUpdateRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Genre           *string `json:"genre,omitempty" validate:"omitempty,min=1,max=50"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=999"`
	Classification  *string `json:"classification,omitempty" validate:"omitempty,oneof=AA A B B15 C"`
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=in_theaters upcoming inactive"`
	Synopsis        *string `json:"synopsis,omitempty"`
	PosterURL       *string `json:"poster_url,omitempty"`
}

// MovieFilter narrows the public movie listing.
type MovieFilter struct {
	Genre          string
	Classification string
	Status         string
}
