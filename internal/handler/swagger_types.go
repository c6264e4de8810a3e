package handler

import (
	"time"

	"github.com/cpeacock1649-gif/layer-builder/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// AccountRequest represents the create/rename/clone account request body.
type AccountRequest struct {
	Name string `json:"name" binding:"required" example:"Acme Holdings"`
}

// CarrierRequest represents the add carrier request body.
type CarrierRequest struct {
	CarrierName string `json:"carrier_name" binding:"required" example:"Zurich Insurance Company"`
}

// SaveProgramRequest represents the replace program request body.
type SaveProgramRequest struct {
	Layers []domain.Layer `json:"layers" binding:"required"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2026-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// ProgramWithWarnings represents a saved program with validation warnings.
type ProgramWithWarnings struct {
	Program  domain.Program `json:"program"`
	Warnings []string       `json:"warnings" example:"layer 2: carrier shares sum to 80.00%, expected ~100%"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
