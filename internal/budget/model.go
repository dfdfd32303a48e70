package budget

import "time"

// Budget is a monthly spending plan owned by one identity.
type Budget struct {
	ID             string
	UserID         string
	Income         float64
	Rent           float64
	Food           float64
	Entertainment  float64
	Utilities      float64
	Transportation float64
	Month          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateInput holds the fields accepted when creating a budget.
type CreateInput struct {
	Income         float64
	Rent           float64
	Food           float64
	Entertainment  float64
	Utilities      float64
	Transportation float64
	Month          string
}

// UpdateInput is a partial update. Nil fields are left unchanged; there is
// no way to change the owner.
type UpdateInput struct {
	Income         *float64
	Rent           *float64
	Food           *float64
	Entertainment  *float64
	Utilities      *float64
	Transportation *float64
	Month          *string
}

func (in UpdateInput) apply(b *Budget) {
	setFloat(&b.Income, in.Income)
	setFloat(&b.Rent, in.Rent)
	setFloat(&b.Food, in.Food)
	setFloat(&b.Entertainment, in.Entertainment)
	setFloat(&b.Utilities, in.Utilities)
	setFloat(&b.Transportation, in.Transportation)
	if in.Month != nil {
		b.Month = *in.Month
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
