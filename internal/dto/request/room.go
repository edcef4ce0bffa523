package request

type RoomRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Type     string `json:"type" validate:"required,oneof=regular premium vip"`
	Rows     int    `json:"rows" validate:"required,min=1,max=26"`
	Columns  int    `json:"columns" validate:"required,min=1,max=50"`
	Status   string `json:"status" validate:"required,oneof=active inactive maintenance"`
	Features string `json:"features,omitempty"`
}

type RoomUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Type     *string `json:"type,omitempty" validate:"omitempty,oneof=regular premium vip"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive maintenance"`
	Features *string `json:"features,omitempty"`
}

type RoomFilter struct {
	Type   string
	Status string
	Page   int
	Limit  int
}
