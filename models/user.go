package models

// User is the authenticated caller attached to a request by the
// authentication middleware. Only the identifier is known at this layer.
type User struct {
	// ID is the user identifier taken from the token subject.
	ID int64 `json:"id"`
}
