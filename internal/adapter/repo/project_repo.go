package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"charityfund/internal/domain"
	"charityfund/internal/infra"
	"charityfund/internal/sqlinline"
)

const uniqueViolation = "23505"

// ProjectRepositoryPG implements domain.ProjectRepository using PostgreSQL.
type ProjectRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewProjectRepository creates a new project repo.
func NewProjectRepository(sql infra.SQLExecutor) *ProjectRepositoryPG {
	return &ProjectRepositoryPG{sql: sql}
}

// CreateProject inserts an open project and fills in its id and create date.
func (r *ProjectRepositoryPG) CreateProject(ctx context.Context, project *domain.CharityProject) error {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertProject, project.Name, project.Description, project.FullAmount)
	if err := row.Scan(&project.ID, &project.CreateDate); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert project: %w", err)
	}
	project.InvestedAmount = 0
	project.FullyInvested = false
	project.CloseDate = nil
	return nil
}

func (r *ProjectRepositoryPG) GetProject(ctx context.Context, id int64) (*domain.CharityProject, error) {
	p, err := scanProject(r.sql.QueryRow(ctx, sqlinline.QGetProject, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project %d: %w", id, err)
	}
	return p, nil
}

func (r *ProjectRepositoryPG) GetProjectIDByName(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := r.sql.QueryRow(ctx, sqlinline.QGetProjectIDByName, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("lookup project name: %w", err)
	}
	return id, true, nil
}

func (r *ProjectRepositoryPG) ListProjects(ctx context.Context) ([]domain.CharityProject, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListProjects)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return collectProjects(rows)
}

// UpdateProject writes the editable fields of an open project. Allocation
// fields are owned by the ledger commit and are not touched here.
func (r *ProjectRepositoryPG) UpdateProject(ctx context.Context, project *domain.CharityProject) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateProject,
		project.ID,
		project.Name,
		project.Description,
		project.FullAmount,
		project.FullyInvested,
		project.CloseDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update project %d: %w", project.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.explainMissedUpdate(ctx, project.ID)
	}
	return nil
}

func (r *ProjectRepositoryPG) DeleteProject(ctx context.Context, id int64) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QDeleteProject, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetProject(ctx, id); err != nil {
			return err
		}
		return domain.ErrProjectInvested
	}
	return nil
}

func (r *ProjectRepositoryPG) explainMissedUpdate(ctx context.Context, id int64) error {
	current, err := r.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if current.FullyInvested {
		return domain.ErrProjectClosed
	}
	return domain.ErrConflict
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

var _ domain.ProjectRepository = (*ProjectRepositoryPG)(nil)
