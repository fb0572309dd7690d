package domain

// User is the authenticated buyer as resolved by the upstream auth layer.
type User struct {
	ID    string
	Email string
}
