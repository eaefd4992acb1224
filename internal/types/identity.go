package types

// Identity is the authenticated caller as reported by the auth service
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}
