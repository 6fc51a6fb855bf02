package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"crowdfund/internal/domain"
	"crowdfund/internal/i18n"
)

type projectView struct {
	domain.Project
	Status domain.ProjectStatus `json:"status"`
	Room   domain.Amount        `json:"room"`
}

func viewOf(p domain.Project) projectView {
	return projectView{Project: p, Status: p.Status(), Room: p.Room()}
}

type createProjectRequest struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	FundGoal     domain.Amount `json:"fund_goal"`
	DurationDays uint32        `json:"duration_days"`
}

func (a *App) ProjectsList(w http.ResponseWriter, r *http.Request) {
	projects := a.Engine.Projects()
	items := make([]projectView, 0, len(projects))
	for _, p := range projects {
		items = append(items, viewOf(p))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) ProjectsCreate(w http.ResponseWriter, r *http.Request) {
	owner, ok := a.caller(w, r)
	if !ok {
		return
	}
	var req createProjectRequest
	if !a.decode(w, r, &req) {
		return
	}
	id, err := a.Engine.CreateProject(r.Context(), owner, req.Name, req.Description, req.FundGoal, req.DurationDays)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	p, err := a.Engine.Project(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, viewOf(p))
}

func (a *App) ProjectGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.projectID(w, r)
	if !ok {
		return
	}
	p, err := a.Engine.Project(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, viewOf(p))
}

func (a *App) ProjectDonors(w http.ResponseWriter, r *http.Request) {
	id, ok := a.projectID(w, r)
	if !ok {
		return
	}
	donors, err := a.Engine.Donors(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if donors == nil {
		donors = []domain.Principal{}
	}
	a.json(w, http.StatusOK, map[string]any{"project_id": id, "donors": donors})
}

func (a *App) ProjectContribution(w http.ResponseWriter, r *http.Request) {
	id, ok := a.projectID(w, r)
	if !ok {
		return
	}
	donor := domain.Principal(chi.URLParam(r, "donor"))
	if donor == "" {
		a.error(w, r, http.StatusBadRequest, i18n.CodeInvalidPrincipal)
		return
	}
	amount, err := a.Engine.Contribution(id, donor)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"project_id": id, "donor": donor, "amount": amount})
}

// ProjectClose is open to any authenticated caller.
func (a *App) ProjectClose(w http.ResponseWriter, r *http.Request) {
	id, ok := a.projectID(w, r)
	if !ok {
		return
	}
	if err := a.Engine.CloseProject(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return
	}
	a.respondProject(w, r, id, http.StatusOK, nil)
}

func (a *App) ProjectWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	id, ok := a.projectID(w, r)
	if !ok {
		return
	}
	amount, err := a.Engine.Withdraw(r.Context(), id, caller)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respondProject(w, r, id, http.StatusOK, map[string]any{"withdrawn": amount})
}

func (a *App) ProjectRefund(w http.ResponseWriter, r *http.Request) {
	caller, ok := a.caller(w, r)
	if !ok {
		return
	}
	id, ok := a.projectID(w, r)
	if !ok {
		return
	}
	amount, err := a.Engine.Refund(r.Context(), id, caller)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.respondProject(w, r, id, http.StatusOK, map[string]any{"refunded": amount})
}

// respondProject writes extra merged with the project's current snapshot.
func (a *App) respondProject(w http.ResponseWriter, r *http.Request, id uint64, status int, extra map[string]any) {
	p, err := a.Engine.Project(id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	body := map[string]any{"project": viewOf(p)}
	for k, v := range extra {
		body[k] = v
	}
	a.json(w, status, body)
}
