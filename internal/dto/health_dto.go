package dto

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ErrorResponse is the FastAPI-compatible error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
