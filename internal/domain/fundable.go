package domain

import "time"

// Fundable holds the allocation state shared by projects and donations.
type Fundable struct {
	ID             int64
	FullAmount     int64
	InvestedAmount int64
	FullyInvested  bool
	CreateDate     time.Time
	CloseDate      *time.Time
}

// Remaining returns the amount still unallocated.
func (f Fundable) Remaining() int64 {
	return f.FullAmount - f.InvestedAmount
}

// Open reports whether the record can still take part in a reconciliation run.
func (f Fundable) Open() bool {
	return !f.FullyInvested
}

// Close marks the record fully invested and stamps the close date.
func (f *Fundable) Close(at time.Time) {
	f.InvestedAmount = f.FullAmount
	f.FullyInvested = true
	closed := at
	f.CloseDate = &closed
}

// Check validates the per-record invariants.
func (f Fundable) Check() error {
	switch {
	case f.FullAmount <= 0:
		return invariantf("record %d: full_amount %d must be positive", f.ID, f.FullAmount)
	case f.InvestedAmount < 0:
		return invariantf("record %d: invested_amount %d is negative", f.ID, f.InvestedAmount)
	case f.InvestedAmount > f.FullAmount:
		return invariantf("record %d: invested_amount %d exceeds full_amount %d", f.ID, f.InvestedAmount, f.FullAmount)
	case f.FullyInvested != (f.InvestedAmount == f.FullAmount):
		return invariantf("record %d: fully_invested=%t with invested %d of %d", f.ID, f.FullyInvested, f.InvestedAmount, f.FullAmount)
	case f.FullyInvested != (f.CloseDate != nil):
		return invariantf("record %d: fully_invested=%t but close_date set=%t", f.ID, f.FullyInvested, f.CloseDate != nil)
	}
	return nil
}
