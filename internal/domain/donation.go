package domain

// Donation represents a supporter contribution waiting to be, or already, allocated.
type Donation struct {
	Fundable
	UserID  string
	Comment *string
}

// Validate checks the fields a donor supplies.
func (d Donation) Validate() error {
	if d.UserID == "" {
		return invalid("user_id", "must identify the donor")
	}
	if d.FullAmount <= 0 {
		return invalid("full_amount", "must be positive")
	}
	return nil
}
