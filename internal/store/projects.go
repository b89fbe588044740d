package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aria-creative/vitrine/internal/model"
)

// projectRow maps 1:1 to the projects table. The technologies list is stored
// as a JSON array, so model.Project can't be scanned directly.
type projectRow struct {
	ID           string    `db:"id"`
	Title        string    `db:"title"`
	Description  string    `db:"description"`
	Technologies string    `db:"technologies"`
	Client       string    `db:"client"`
	Duration     string    `db:"duration"`
	Status       string    `db:"status"`
	ImageURL     string    `db:"image_url"`
	Date         string    `db:"date"`
	URL          string    `db:"url"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func projectRowFromModel(p *model.Project) (projectRow, error) {
	techs, err := json.Marshal(p.Technologies)
	if err != nil {
		return projectRow{}, fmt.Errorf("encode technologies: %w", err)
	}
	return projectRow{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Technologies: string(techs),
		Client:       p.Client,
		Duration:     p.Duration,
		Status:       string(p.Status),
		ImageURL:     p.ImageURL,
		Date:         p.Date,
		URL:          p.URL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}, nil
}

func (r projectRow) toModel() (model.Project, error) {
	var techs []string
	if err := json.Unmarshal([]byte(r.Technologies), &techs); err != nil {
		return model.Project{}, fmt.Errorf("decode technologies for project %s: %w", r.ID, err)
	}
	return model.Project{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Technologies: techs,
		Client:       r.Client,
		Duration:     r.Duration,
		Status:       model.ProjectStatus(r.Status),
		ImageURL:     r.ImageURL,
		Date:         r.Date,
		URL:          r.URL,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}, nil
}

const projectColumns = `id, title, description, technologies, client, duration,
	status, image_url, date, url, created_at, updated_at`

// CreateProject inserts a new project. A fresh uuid and timestamps are
// assigned on p before the insert.
func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	row, err := projectRowFromModel(p)
	if err != nil {
		return err
	}

	const q = `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = s.db.ExecContext(ctx, s.rebind(q),
		row.ID, row.Title, row.Description, row.Technologies, row.Client,
		row.Duration, row.Status, row.ImageURL, row.Date, row.URL,
		row.CreatedAt, row.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// GetProject returns a single project by id, or ErrNotFound.
func (s *Store) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var row projectRow
	err := s.db.GetContext(ctx, &row, s.rebind("SELECT * FROM projects WHERE id = ?"), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	p, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProjects returns every project, newest-first.
func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.selectProjects(ctx, "SELECT * FROM projects ORDER BY created_at DESC")
}

// ListPublicProjects returns only TERMINE projects, newest-first. This is
// the publication gate: anything else stays admin-only.
func (s *Store) ListPublicProjects(ctx context.Context) ([]model.Project, error) {
	return s.selectProjects(ctx,
		s.rebind("SELECT * FROM projects WHERE status = ? ORDER BY created_at DESC"),
		model.ProjectTermine)
}

func (s *Store) selectProjects(ctx context.Context, query string, args ...interface{}) ([]model.Project, error) {
	var rows []projectRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects := make([]model.Project, 0, len(rows))
	for _, row := range rows {
		p, err := row.toModel()
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// UpdateProject replaces every content field of an existing project. Callers
// send the complete representation; there is no partial update.
func (s *Store) UpdateProject(ctx context.Context, id string, p *model.Project) (*model.Project, error) {
	p.ID = id
	p.UpdatedAt = time.Now().UTC()

	row, err := projectRowFromModel(p)
	if err != nil {
		return nil, err
	}

	const q = `UPDATE projects SET
		title = ?, description = ?, technologies = ?, client = ?, duration = ?,
		status = ?, image_url = ?, date = ?, url = ?, updated_at = ?
		WHERE id = ?`

	res, err := s.db.ExecContext(ctx, s.rebind(q),
		row.Title, row.Description, row.Technologies, row.Client, row.Duration,
		row.Status, row.ImageURL, row.Date, row.URL, row.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return s.GetProject(ctx, id)
}

// SetProjectStatus changes only the publication status of a project.
func (s *Store) SetProjectStatus(ctx context.Context, id string, status model.ProjectStatus) (*model.Project, error) {
	res, err := s.db.ExecContext(ctx,
		s.rebind("UPDATE projects SET status = ?, updated_at = ? WHERE id = ?"),
		status, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update project status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrNotFound
	}
	return s.GetProject(ctx, id)
}

// DeleteProject removes a project permanently.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM projects WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountProjects returns the number of stored projects, used by the startup
// database report.
func (s *Store) CountProjects(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM projects"); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

// CountMessages returns the number of stored messages.
func (s *Store) CountMessages(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM messages"); err != nil {
		return 0, fmt.Errorf("count messages: %w", err)
	}
	return n, nil
}

// SeedProjects inserts the given projects if and only if the table is empty.
// Used by the db seed command for first-run installs.
func (s *Store) SeedProjects(ctx context.Context, projects []model.Project) (int, error) {
	n, err := s.CountProjects(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for i := range projects {
		if err := s.CreateProject(ctx, &projects[i]); err != nil {
			return i, err
		}
	}
	return len(projects), nil
}
