package api

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	contentHandler contentHandler
	intakeHandler  intakeHandler
	hashHandler    hashHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error  string            `json:"error" example:"validation failed"`
	Status string            `json:"status" example:"error"`
	Field  string            `json:"field,omitempty" example:"email"`
	Fields map[string]string `json:"fields,omitempty"`
}
