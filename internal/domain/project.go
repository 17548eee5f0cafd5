package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxProjectNameLength bounds CharityProject.Name.
const MaxProjectNameLength = 100

// CharityProject is a named fundraising target.
type CharityProject struct {
	Fundable
	Name        string
	Description string
}

// Validate checks the fields a caller supplies when creating a project.
func (p CharityProject) Validate() error {
	if err := ValidateProjectName(p.Name); err != nil {
		return err
	}
	if strings.TrimSpace(p.Description) == "" {
		return invalid("description", "must not be empty")
	}
	if p.FullAmount <= 0 {
		return invalid("full_amount", "must be positive")
	}
	return nil
}

// ValidateProjectName checks length and emptiness. Uniqueness is the store's concern.
func ValidateProjectName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return invalid("name", "must not be empty")
	case utf8.RuneCountInString(name) > MaxProjectNameLength:
		return invalid("name", fmt.Sprintf("must be at most %d characters", MaxProjectNameLength))
	}
	return nil
}

// ProjectUpdate carries the optional fields of a partial project update.
type ProjectUpdate struct {
	Name        *string
	Description *string
	FullAmount  *int64
}

// Validate checks the supplied fields in isolation.
func (u ProjectUpdate) Validate() error {
	if u.Name != nil {
		if err := ValidateProjectName(*u.Name); err != nil {
			return err
		}
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		return invalid("description", "must not be empty")
	}
	if u.FullAmount != nil && *u.FullAmount <= 0 {
		return invalid("full_amount", "must be positive")
	}
	return nil
}

// Apply writes the update onto p. Closed projects are immutable. A target equal
// to the invested amount closes the project at now; grew reports whether the
// target was raised, which leaves room for waiting donations.
func (u ProjectUpdate) Apply(p *CharityProject, now time.Time) (grew bool, err error) {
	if p.FullyInvested {
		return false, ErrProjectClosed
	}
	if u.FullAmount != nil && *u.FullAmount < p.InvestedAmount {
		return false, ErrAmountBelowInvested
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.FullAmount != nil {
		grew = *u.FullAmount > p.FullAmount
		p.FullAmount = *u.FullAmount
		if p.FullAmount == p.InvestedAmount {
			p.Close(now)
		}
	}
	return grew, nil
}
