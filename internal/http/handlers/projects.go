package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"charityfund/internal/domain"
)

type projectCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	FullAmount  int64  `json:"full_amount"`
}

type projectUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	FullAmount  *int64  `json:"full_amount"`
}

type projectResponse struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	FullAmount     int64      `json:"full_amount"`
	InvestedAmount int64      `json:"invested_amount"`
	FullyInvested  bool       `json:"fully_invested"`
	CreateDate     time.Time  `json:"create_date"`
	CloseDate      *time.Time `json:"close_date,omitempty"`
}

func toProjectResponse(p domain.CharityProject) projectResponse {
	return projectResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		FullAmount:     p.FullAmount,
		InvestedAmount: p.InvestedAmount,
		FullyInvested:  p.FullyInvested,
		CreateDate:     p.CreateDate,
		CloseDate:      p.CloseDate,
	}
}

// ProjectsCreate creates a project and immediately funds it from open donations.
func (a *App) ProjectsCreate(w http.ResponseWriter, r *http.Request) {
	var req projectCreateRequest
	if !a.decode(w, r, &req) {
		return
	}
	project := &domain.CharityProject{
		Name:        req.Name,
		Description: req.Description,
		Fundable:    domain.Fundable{FullAmount: req.FullAmount},
	}
	if err := project.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.checkNameDuplicate(r.Context(), req.Name, 0); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Store.CreateProject(r.Context(), project); err != nil {
		a.fail(w, r, err)
		return
	}
	funded, err := a.Reconciler.OnProjectCreated(r.Context(), project.ID)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toProjectResponse(*funded))
}

// ProjectsList returns every project, oldest first.
func (a *App) ProjectsList(w http.ResponseWriter, r *http.Request) {
	projects, err := a.Store.ListProjects(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, toProjectResponse(p))
	}
	a.json(w, http.StatusOK, items)
}

// ProjectsUpdate edits an open project. Lowering full_amount to the invested
// amount closes the project; raising it reconciles the new capacity.
func (a *App) ProjectsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.projectID(w, r)
	if !ok {
		return
	}
	var req projectUpdateRequest
	if !a.decode(w, r, &req) {
		return
	}
	update := domain.ProjectUpdate{Name: req.Name, Description: req.Description, FullAmount: req.FullAmount}
	if err := update.Validate(); err != nil {
		a.fail(w, r, err)
		return
	}

	var (
		updated domain.CharityProject
		grew    bool
	)
	err := a.Reconciler.Exclusive(r.Context(), func(ctx context.Context) error {
		project, err := a.Store.GetProject(ctx, id)
		if err != nil {
			return err
		}
		if project.FullyInvested {
			return domain.ErrProjectClosed
		}
		if req.Name != nil {
			if err := a.checkNameDuplicate(ctx, *req.Name, project.ID); err != nil {
				return err
			}
		}
		if grew, err = update.Apply(project, a.Now()); err != nil {
			return err
		}
		if err := a.Store.UpdateProject(ctx, project); err != nil {
			return err
		}
		updated = *project
		return nil
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}

	if grew {
		if _, err := a.Reconciler.Run(r.Context()); err != nil {
			a.fail(w, r, err)
			return
		}
		refreshed, err := a.Store.GetProject(r.Context(), id)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		updated = *refreshed
	}
	a.json(w, http.StatusOK, toProjectResponse(updated))
}

// ProjectsDelete removes a project nobody has funded yet.
func (a *App) ProjectsDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.projectID(w, r)
	if !ok {
		return
	}
	var deleted domain.CharityProject
	err := a.Reconciler.Exclusive(r.Context(), func(ctx context.Context) error {
		project, err := a.Store.GetProject(ctx, id)
		if err != nil {
			return err
		}
		if project.FullyInvested || project.InvestedAmount > 0 {
			return domain.ErrProjectInvested
		}
		if err := a.Store.DeleteProject(ctx, id); err != nil {
			return err
		}
		deleted = *project
		return nil
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toProjectResponse(deleted))
}

func (a *App) projectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil || id <= 0 {
		a.error(w, http.StatusNotFound, "not_found", "project not found")
		return 0, false
	}
	return id, true
}

// checkNameDuplicate fails when a project other than self already uses name.
func (a *App) checkNameDuplicate(ctx context.Context, name string, self int64) error {
	id, found, err := a.Store.GetProjectIDByName(ctx, name)
	if err != nil {
		return err
	}
	if found && id != self {
		return domain.ErrDuplicateName
	}
	return nil
}
