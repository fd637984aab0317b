// Package project implements the Project catalog repository using PostgreSQL.
package project

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/timesheets-backend/internal/adapter/postgres"
	"github.com/heartmarshall/timesheets-backend/internal/domain"
)

var columns = []string{"id", "name", "project_type", "visibility", "department_ids", "employee_ids", "is_active", "created_at"}

// Repo provides read access to projects.
type Repo struct {
	db postgres.Querier
}

// New creates a new project repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByIDs returns the projects with the given ids keyed by id. Unknown ids
// are simply absent from the map.
func (r *Repo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Project, error) {
	out := make(map[uuid.UUID]*domain.Project, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	sql, args, err := postgres.Builder().Select(columns...).From("projects").
		Where(squirrel.Expr("id = ANY(?)", ids)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build project query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "project", uuid.Nil)
	}
	projects, err := pgx.CollectRows(rows, scanProject)
	if err != nil {
		return nil, postgres.MapError(err, "project", uuid.Nil)
	}

	for i := range projects {
		out[projects[i].ID] = &projects[i]
	}
	return out, nil
}

func scanProject(row pgx.CollectableRow) (domain.Project, error) {
	var (
		p                       domain.Project
		projectType, visibility string
	)
	err := row.Scan(&p.ID, &p.Name, &projectType, &visibility, &p.DepartmentIDs, &p.EmployeeIDs, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return domain.Project{}, err
	}
	p.ProjectType = domain.ProjectType(projectType)
	p.Visibility = domain.ProjectVisibility(visibility)
	return p, nil
}
