package sqldb

import (
	"context"
	"database/sql"
	"strings"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
)

const projectColumns = `p.id, p.owner_id, p.name, p.description, p.track, p.format, p.conference,
	p.deadline, p.paper_url, p.status, p.research_step, p.created_at, p.updated_at`

type projectsRepo struct {
	q DBTX
	d Dialect
}

func scanProject(row rowScanner, extra ...any) (domain.Project, error) {
	var (
		p        domain.Project
		deadline sql.NullTime
		status   string
		step     string
	)
	dest := append([]any{
		&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Track, &p.Format, &p.Conference,
		&deadline, &p.PaperURL, &status, &step, &p.CreatedAt, &p.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.Project{}, err
	}
	p.Deadline = mapNullTimePtr(deadline)
	p.Status = domain.Status(status)
	p.ResearchStep = domain.ResearchStep(step)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	_, err := r.q.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO projects (id, owner_id, name, description, track, format, conference,
			deadline, paper_url, status, research_step, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.OwnerID, p.Name, p.Description, p.Track, p.Format, p.Conference,
		mapOptionalTime(p.Deadline), p.PaperURL, string(p.Status), string(p.ResearchStep),
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(),
	)
	if err != nil {
		if r.d.IsUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return r.insertCollaborators(ctx, p.ID, p.Collaborators)
}

func (r *projectsRepo) insertCollaborators(ctx context.Context, projectID string, cs []domain.Collaborator) error {
	if len(cs) == 0 {
		return nil
	}

	rows := make([]string, 0, len(cs))
	args := make([]any, 0, len(cs)*8)
	for i, c := range cs {
		rows = append(rows, "("+placeholders(8)+")")
		args = append(args, projectID, i, c.Name, c.Email, string(c.Role),
			c.RegistrationNumber, c.Organization, c.Country)
	}

	_, err := r.q.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO project_collaborators (project_id, position, name, email, role,
			registration_number, organization, country)
		VALUES `+strings.Join(rows, ", ")), args...)
	return err
}

// loadCollaborators fills the collaborator lists of ps with one query.
func (r *projectsRepo) loadCollaborators(ctx context.Context, ps []domain.Project) error {
	if len(ps) == 0 {
		return nil
	}

	ids := make([]any, len(ps))
	byID := make(map[string]int, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
		byID[p.ID] = i
	}

	rows, err := r.q.QueryContext(ctx, r.d.Rebind(`
		SELECT project_id, name, email, role, registration_number, organization, country
		FROM project_collaborators
		WHERE project_id IN (`+placeholders(len(ids))+`)
		ORDER BY project_id, position`), ids...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			projectID string
			role      string
			c         domain.Collaborator
		)
		if err := rows.Scan(&projectID, &c.Name, &c.Email, &role,
			&c.RegistrationNumber, &c.Organization, &c.Country); err != nil {
			return err
		}
		c.Role = domain.Role(role)
		i := byID[projectID]
		ps[i].Collaborators = append(ps[i].Collaborators, c)
	}
	return rows.Err()
}

func (r *projectsRepo) GetProject(ctx context.Context, id string) (domain.Project, error) {
	var ownerName, ownerEmail sql.NullString

	row := r.q.QueryRowContext(ctx, r.d.Rebind(`
		SELECT `+projectColumns+`, u.name, u.email
		FROM projects p
		LEFT JOIN users u ON u.id = p.owner_id
		WHERE p.id = ?`), id)
	p, err := scanProject(row, &ownerName, &ownerEmail)
	if err != nil {
		return domain.Project{}, mapNotFound(err)
	}

	if ownerName.Valid {
		p.Owner = &domain.UserRef{
			ID:    p.OwnerID,
			Name:  mapNullString(ownerName),
			Email: mapNullString(ownerEmail),
		}
	}

	ps := []domain.Project{p}
	if err := r.loadCollaborators(ctx, ps); err != nil {
		return domain.Project{}, err
	}
	return ps[0], nil
}

func (r *projectsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Project, error) {
	rows, err := r.q.QueryContext(ctx, r.d.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadCollaborators(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *projectsRepo) ListVisible(ctx context.Context, userID, email string) ([]domain.Project, error) {
	if email == "" {
		return r.list(ctx, `
			SELECT `+projectColumns+`
			FROM projects p
			WHERE p.owner_id = ?
			ORDER BY p.created_at DESC, p.id DESC`, userID)
	}

	return r.list(ctx, `
		SELECT `+projectColumns+`
		FROM projects p
		WHERE p.owner_id = ?
		   OR p.id IN (
			SELECT c.project_id FROM project_collaborators c
			WHERE LOWER(c.email) = LOWER(?)
		   )
		ORDER BY p.created_at DESC, p.id DESC`, userID, email)
}

func (r *projectsRepo) ListAll(ctx context.Context) ([]domain.Project, error) {
	return r.list(ctx, `
		SELECT `+projectColumns+`
		FROM projects p
		ORDER BY p.created_at DESC, p.id DESC`)
}

func (r *projectsRepo) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) error {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Track != nil {
		set("track", *patch.Track)
	}
	if patch.Format != nil {
		set("format", *patch.Format)
	}
	if patch.Conference != nil {
		set("conference", *patch.Conference)
	}
	switch {
	case patch.Deadline != nil:
		set("deadline", mapOptionalTime(patch.Deadline))
	case patch.ClearDeadline:
		set("deadline", sql.NullTime{})
	}
	if patch.PaperURL != nil {
		set("paper_url", *patch.PaperURL)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.ResearchStep != nil {
		set("research_step", string(*patch.ResearchStep))
	}
	set("updated_at", now())
	args = append(args, id)

	res, err := r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE projects SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}

	if patch.Collaborators == nil {
		return nil
	}
	if _, err := r.q.ExecContext(ctx,
		r.d.Rebind(`DELETE FROM project_collaborators WHERE project_id = ?`), id); err != nil {
		return err
	}
	return r.insertCollaborators(ctx, id, *patch.Collaborators)
}

func (r *projectsRepo) DeleteProject(ctx context.Context, id string) error {
	// Collaborators cascade, but sqlite only honours that with foreign keys
	// enabled on the connection.
	if _, err := r.q.ExecContext(ctx,
		r.d.Rebind(`DELETE FROM project_collaborators WHERE project_id = ?`), id); err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, r.d.Rebind(`DELETE FROM projects WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
