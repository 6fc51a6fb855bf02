package handlers

import (
	"net/http"

	"crowdfund/internal/domain"
)

type donationRequest struct {
	Amount domain.Amount `json:"amount"`
}

type donationResponse struct {
	Offered   domain.Amount `json:"offered"`
	Accepted  domain.Amount `json:"accepted"`
	Refunded  domain.Amount `json:"refunded"`
	Completed bool          `json:"completed"`
	Project   projectView   `json:"project"`
}

func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	donor, ok := a.caller(w, r)
	if !ok {
		return
	}
	id, ok := a.projectID(w, r)
	if !ok {
		return
	}
	var req donationRequest
	if !a.decode(w, r, &req) {
		return
	}
	receipt, err := a.Engine.Donate(r.Context(), id, donor, req.Amount)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	p, err := a.Engine.Project(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, donationResponse{
		Offered:   receipt.Offered,
		Accepted:  receipt.Accepted,
		Refunded:  receipt.Refunded,
		Completed: receipt.Completed,
		Project:   viewOf(p),
	})
}
