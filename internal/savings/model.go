package savings

import "time"

// Goal is a savings target owned by one identity.
type Goal struct {
	ID        string
	UserID    string
	Name      string
	Amount    float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UpdateInput is a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Name   *string
	Amount *float64
}
