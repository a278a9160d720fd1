package domain

// Identity is the authenticated coach using the live coaching flow
type Identity struct {
	Email  string
	UserID string
}
