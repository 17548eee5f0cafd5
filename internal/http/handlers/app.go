package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"charityfund/internal/domain"
	"charityfund/internal/middleware"
)

// Reconciler is the allocation entry point the handlers call after creating
// or resizing records.
type Reconciler interface {
	OnDonationCreated(ctx context.Context, donationID int64) (*domain.Donation, error)
	OnProjectCreated(ctx context.Context, projectID int64) (*domain.CharityProject, error)
	Run(ctx context.Context) (domain.Allocation, error)
	Exclusive(ctx context.Context, fn func(ctx context.Context) error) error
}

type App struct {
	Store      domain.Store
	Reconciler Reconciler
	Logger     zerolog.Logger
	Title      string
	Auth       AuthConfig
	Now        func() time.Time
}

func NewApp(store domain.Store, reconciler Reconciler, logger zerolog.Logger, title string) *App {
	return &App{
		Store:      store,
		Reconciler: reconciler,
		Logger:     logger,
		Title:      title,
		Now:        func() time.Time { return time.Now().UTC() },
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}

// fail maps domain errors onto HTTP responses.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	var invalid *domain.ValidationError
	switch {
	case errors.As(err, &invalid):
		a.error(w, http.StatusUnprocessableEntity, "validation_error", invalid.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		a.error(w, http.StatusForbidden, "forbidden", "superuser required")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "record not found")
	case errors.Is(err, domain.ErrDuplicateName):
		a.error(w, http.StatusBadRequest, "duplicate_name", "a project with this name already exists")
	case errors.Is(err, domain.ErrProjectClosed):
		a.error(w, http.StatusBadRequest, "project_closed", "a closed project cannot be edited")
	case errors.Is(err, domain.ErrProjectInvested):
		a.error(w, http.StatusBadRequest, "project_invested", "funds were invested into the project, it cannot be deleted")
	case errors.Is(err, domain.ErrAmountBelowInvested):
		a.error(w, http.StatusUnprocessableEntity, "amount_below_invested", "full_amount cannot be lower than the invested amount")
	case errors.Is(err, domain.ErrConflict):
		a.error(w, http.StatusConflict, "conflict", "the ledger changed concurrently, retry the request")
	default:
		a.logger(r).Error().Err(err).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// maxBodyBytes caps request payloads.
const maxBodyBytes = 64 << 10

// decode reads exactly one JSON value into dst. Unknown fields, trailing
// data and oversized bodies are rejected.
func (a *App) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	err := dec.Decode(dst)
	if err == nil {
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = errors.New("trailing data after payload")
			if extra != nil {
				err = extra
			}
		}
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "payload_too_large", "payload too large")
			return false
		}
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) logger(r *http.Request) *zerolog.Logger {
	l := zerolog.Ctx(r.Context())
	if l.GetLevel() == zerolog.Disabled {
		return &a.Logger
	}
	return l
}
