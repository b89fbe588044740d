package model

// Response is the shared envelope for every API payload. Success responses
// carry Data and an optional user-facing Message; error responses carry
// Error and, for validation failures, field-level Details.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// Pagination describes an offset-paginated listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// MessagePage is the data member of the admin message listing.
type MessagePage struct {
	Messages   []ContactMessage `json:"messages"`
	Pagination Pagination       `json:"pagination"`
}
