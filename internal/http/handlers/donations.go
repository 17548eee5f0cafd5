package handlers

import (
	"net/http"
	"time"

	"charityfund/internal/domain"
)

type donationRequest struct {
	FullAmount int64   `json:"full_amount"`
	Comment    *string `json:"comment"`
}

// donationResponse is what a donor sees about their own donations.
type donationResponse struct {
	ID         int64     `json:"id"`
	FullAmount int64     `json:"full_amount"`
	Comment    *string   `json:"comment,omitempty"`
	CreateDate time.Time `json:"create_date"`
}

// donationAdminResponse adds the owner and allocation state.
type donationAdminResponse struct {
	donationResponse
	UserID         string     `json:"user_id"`
	InvestedAmount int64      `json:"invested_amount"`
	FullyInvested  bool       `json:"fully_invested"`
	CloseDate      *time.Time `json:"close_date,omitempty"`
}

func toDonationResponse(d domain.Donation) donationResponse {
	return donationResponse{
		ID:         d.ID,
		FullAmount: d.FullAmount,
		Comment:    d.Comment,
		CreateDate: d.CreateDate,
	}
}

func toDonationAdminResponse(d domain.Donation) donationAdminResponse {
	return donationAdminResponse{
		donationResponse: toDonationResponse(d),
		UserID:           d.UserID,
		InvestedAmount:   d.InvestedAmount,
		FullyInvested:    d.FullyInvested,
		CloseDate:        d.CloseDate,
	}
}

// DonationsCreate records a donation for the caller and allocates it to open projects.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.fail(w, r, domain.ErrUnauthorized)
		return
	}
	var req donationRequest
	if !a.decode(w, r, &req) {
		return
	}

	donation := &domain.Donation{
		UserID:   userID,
		Comment:  req.Comment,
		Fundable: domain.Fundable{FullAmount: req.FullAmount},
	}
	if err := donation.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Store.CreateDonation(r.Context(), donation); err != nil {
		a.fail(w, r, err)
		return
	}
	funded, err := a.Reconciler.OnDonationCreated(r.Context(), donation.ID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toDonationResponse(*funded))
}

// DonationsList returns every donation with its allocation state.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	donations, err := a.Store.ListDonations(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]donationAdminResponse, 0, len(donations))
	for _, d := range donations {
		items = append(items, toDonationAdminResponse(d))
	}
	a.json(w, http.StatusOK, items)
}

// DonationsMine returns the caller's donations.
func (a *App) DonationsMine(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.fail(w, r, domain.ErrUnauthorized)
		return
	}
	donations, err := a.Store.ListDonationsByUser(r.Context(), userID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]donationResponse, 0, len(donations))
	for _, d := range donations {
		items = append(items, toDonationResponse(d))
	}
	a.json(w, http.StatusOK, items)
}
