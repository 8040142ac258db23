package dto

type HealthResponse struct {
	Service string `json:"service"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
