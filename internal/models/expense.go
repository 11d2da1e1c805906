package models

// Expense represents money fronted by one member on behalf of the group.
// The cost is split equally across the group's current roster, including
// members who joined after the expense was logged.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// PayerID is the member who fronted the money.
	PayerID string

	// Description is a short note on what was bought (e.g., "Groceries").
	Description string

	// Amount is the positive expense total in major currency units.
	Amount float64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// CreatedBy is the user ID who recorded this expense.
	CreatedBy string
}
