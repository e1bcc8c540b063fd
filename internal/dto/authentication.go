package dto

// Authentication is the caller identity resolved from a bearer token.
// Handlers receive nil when the request is anonymous.
type Authentication struct {
	LoginID string
	Token   string
}
