package expense

import "time"

// Expense is a single spending record.
type Expense struct {
	ID          string
	UserID      string
	Amount      float64
	Category    string
	Description string
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateInput holds the fields accepted when recording an expense. A zero
// Date means now.
type CreateInput struct {
	Amount      float64
	Category    string
	Description string
	Date        time.Time
}

// UpdateInput is a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Amount      *float64
	Category    *string
	Description *string
	Date        *time.Time
}
