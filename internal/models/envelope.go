package models

import "encoding/json"

// Envelope is the response wrapper every backend endpoint uses.
// Data is left raw so callers can decode it into the expected type after
// checking Success.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Pagination accompanies list endpoints.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// PaginatedEnvelope is the list-endpoint variant of Envelope.
type PaginatedEnvelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// AuthData is the payload of successful login/signup responses.
type AuthData struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshData is the payload of a successful token refresh. The backend
// does not rotate the refresh token.
type RefreshData struct {
	AccessToken string `json:"accessToken"`
}
