package domain

// Transfer records money moved from one donation into one project.
type Transfer struct {
	DonationID int64
	ProjectID  int64
	Amount     int64
}

// Allocation is the outcome of a reconciliation run. Before holds the
// invested amounts observed when the open sets were read, keyed by record id,
// so stores can detect concurrent writers on commit.
type Allocation struct {
	Donations []Fundable
	Projects  []Fundable
	Transfers []Transfer

	DonationsBefore map[int64]int64
	ProjectsBefore  map[int64]int64
}

// Empty reports whether the run changed nothing.
func (a Allocation) Empty() bool {
	return len(a.Donations) == 0 && len(a.Projects) == 0
}

// Total returns the amount moved by the run.
func (a Allocation) Total() int64 {
	var total int64
	for _, t := range a.Transfers {
		total += t.Amount
	}
	return total
}
