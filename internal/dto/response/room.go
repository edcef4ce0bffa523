package response

type Room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Rows     int    `json:"rows"`
	Columns  int    `json:"columns"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
	Features string `json:"features,omitempty"`
}

type Employee struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}
