package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/nimbusdesk/nimbusdesk/modules/core/domain/entities/workspace"
	"github.com/nimbusdesk/nimbusdesk/modules/core/infrastructure/persistence/models"
	"github.com/nimbusdesk/nimbusdesk/pkg/composables"
)

var (
	ErrWorkspaceNotFound = fmt.Errorf("workspace not found")
)

const (
	workspaceFindQuery = `SELECT id, name, subdomain, custom_domain, is_custom_domain_enabled, is_active, created_at, updated_at FROM workspaces`
)

type WorkspaceRepository struct{}

func NewWorkspaceRepository() workspace.Repository {
	return &WorkspaceRepository{}
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*workspace.Workspace, error) {
	query := workspaceFindQuery + " WHERE id = $1"
	workspaces, err := r.queryWorkspaces(ctx, query, id.String())
	if err != nil {
		return nil, err
	}

	if len(workspaces) == 0 {
		return nil, ErrWorkspaceNotFound
	}

	return workspaces[0], nil
}

func (r *WorkspaceRepository) GetBySubdomain(ctx context.Context, subdomain string) (*workspace.Workspace, error) {
	query := workspaceFindQuery + " WHERE subdomain = $1"
	workspaces, err := r.queryWorkspaces(ctx, query, strings.ToLower(strings.TrimSpace(subdomain)))
	if err != nil {
		return nil, err
	}

	if len(workspaces) == 0 {
		return nil, ErrWorkspaceNotFound
	}

	return workspaces[0], nil
}

func (r *WorkspaceRepository) GetByCustomDomain(ctx context.Context, domain string) (*workspace.Workspace, error) {
	query := workspaceFindQuery + " WHERE custom_domain = $1"
	workspaces, err := r.queryWorkspaces(ctx, query, domain)
	if err != nil {
		return nil, err
	}

	if len(workspaces) == 0 {
		return nil, ErrWorkspaceNotFound
	}

	return workspaces[0], nil
}

func (r *WorkspaceRepository) GetAll(ctx context.Context) ([]*workspace.Workspace, error) {
	return r.queryWorkspaces(ctx, workspaceFindQuery+" ORDER BY created_at DESC")
}

func (r *WorkspaceRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get transaction")
	}

	var count int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM workspaces`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count workspaces")
	}
	return count, nil
}

func (r *WorkspaceRepository) Create(ctx context.Context, w *workspace.Workspace) (*workspace.Workspace, error) {
	query := `
		INSERT INTO workspaces (id, name, subdomain, custom_domain, is_custom_domain_enabled, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		w.ID().String(),
		w.Name(),
		strings.ToLower(strings.TrimSpace(w.Subdomain())),
		nullableString(w.CustomDomain()),
		w.IsCustomDomainEnabled(),
		w.IsActive(),
		w.CreatedAt(),
		w.UpdatedAt(),
	).Scan(&idStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *WorkspaceRepository) Update(ctx context.Context, w *workspace.Workspace) (*workspace.Workspace, error) {
	query := `
		UPDATE workspaces
		SET name = $1, subdomain = $2, custom_domain = $3, is_custom_domain_enabled = $4, is_active = $5, updated_at = $6
		WHERE id = $7
		RETURNING id
	`
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		w.Name(),
		strings.ToLower(strings.TrimSpace(w.Subdomain())),
		nullableString(w.CustomDomain()),
		w.IsCustomDomainEnabled(),
		w.IsActive(),
		w.UpdatedAt(),
		w.ID().String(),
	).Scan(&idStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM workspaces WHERE id = $1`
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, query, id.String())
	return err
}

func (r *WorkspaceRepository) queryWorkspaces(ctx context.Context, query string, args ...interface{}) ([]*workspace.Workspace, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var workspaces []*workspace.Workspace
	for rows.Next() {
		var w models.Workspace
		if err := rows.Scan(
			&w.ID,
			&w.Name,
			&w.Subdomain,
			&w.CustomDomain,
			&w.IsCustomDomainEnabled,
			&w.IsActive,
			&w.CreatedAt,
			&w.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan workspace row")
		}
		workspaces = append(workspaces, toDomainWorkspace(&w))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return workspaces, nil
}

func toDomainWorkspace(w *models.Workspace) *workspace.Workspace {
	id, err := uuid.Parse(w.ID)
	if err != nil {
		id = uuid.Nil
	}

	return workspace.New(
		w.Name,
		w.Subdomain,
		workspace.WithID(id),
		workspace.WithCustomDomain(w.CustomDomain.String),
		workspace.WithCustomDomainEnabled(w.IsCustomDomainEnabled),
		workspace.WithIsActive(w.IsActive),
		workspace.WithCreatedAt(w.CreatedAt),
		workspace.WithUpdatedAt(w.UpdatedAt),
	)
}

func nullableString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
