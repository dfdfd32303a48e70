package identity

import "time"

// User is a registered identity. PasswordHash never leaves this package's
// callers through an HTTP response.
type User struct {
	ID                 string
	Name               string
	Email              string
	PasswordHash       []byte
	FinancialCondition string
	CreatedAt          time.Time
}

// Registration carries the fields accepted at sign-up.
type Registration struct {
	Name               string
	Email              string
	Password           string
	FinancialCondition string
}

// Credentials request structure.
type Credentials struct {
	Email    string
	Password string
}
