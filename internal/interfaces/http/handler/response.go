package handler

import "github.com/abstratium/partner/internal/interfaces/http/dto"

// Swagger-only envelope shapes. Handlers write dto.Response; these types
// give the generator a typed data field per operation.

// APIResponse is the success envelope carrying data of type T
// @Description Success envelope; data holds the operation result
type APIResponse[T any] struct {
	Success bool           `json:"success" example:"true"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// ErrorResponse is the failure envelope
// @Description Failure envelope; error.code is one of the ERR_* or domain codes
type ErrorResponse struct {
	Success bool          `json:"success" example:"false"`
	Error   dto.ErrorInfo `json:"error"`
}
