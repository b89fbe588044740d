package store

import (
	"context"
	"errors"
	"testing"

	"github.com/aria-creative/vitrine/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", "") // in-memory
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testMessage() *model.ContactMessage {
	return &model.ContactMessage{
		Name:    "Jean Dupont",
		Email:   "jean@example.com",
		Subject: "Partenariat",
		Message: "Bonjour, intéressé par un partenariat.",
	}
}

func testProject(status model.ProjectStatus) *model.Project {
	return &model.Project{
		Title:        "Site vitrine",
		Description:  "Refonte complète du site institutionnel",
		Technologies: []string{"React", "Node.js"},
		Client:       "Client SA",
		Duration:     "2 mois",
		Status:       status,
		Date:         "01/02/2024",
	}
}

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

func TestCreateMessageStartsAtNouveau(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	msg := testMessage()
	if err := s.CreateMessage(ctx, msg); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if msg.ID == "" {
		t.Fatal("expected a generated id")
	}
	if msg.Status != model.StatusNouveau {
		t.Errorf("status = %q, want %q", msg.Status, model.StatusNouveau)
	}

	got, err := s.GetMessage(ctx, msg.ID)
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if got.Name != msg.Name || got.Email != msg.Email || got.Subject != msg.Subject {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if got.Status != model.StatusNouveau {
		t.Errorf("persisted status = %q, want NOUVEAU", got.Status)
	}
}

func TestGetMessageNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetMessage(context.Background(), "no-such-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetMessageStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	msg := testMessage()
	if err := s.CreateMessage(ctx, msg); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	updated, err := s.SetMessageStatus(ctx, msg.ID, model.StatusLu)
	if err != nil {
		t.Fatalf("SetMessageStatus: %v", err)
	}
	if updated.Status != model.StatusLu {
		t.Errorf("status = %q, want LU", updated.Status)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Errorf("updated_at %v should not precede created_at %v", updated.UpdatedAt, updated.CreatedAt)
	}

	// No transition graph: ARCHIVE back to NOUVEAU is legal.
	if _, err := s.SetMessageStatus(ctx, msg.ID, model.StatusArchive); err != nil {
		t.Fatalf("SetMessageStatus to ARCHIVE: %v", err)
	}
	back, err := s.SetMessageStatus(ctx, msg.ID, model.StatusNouveau)
	if err != nil {
		t.Fatalf("SetMessageStatus back to NOUVEAU: %v", err)
	}
	if back.Status != model.StatusNouveau {
		t.Errorf("status = %q, want NOUVEAU", back.Status)
	}

	if _, err := s.SetMessageStatus(ctx, "missing", model.StatusLu); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDeleteMessageTwice(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	msg := testMessage()
	if err := s.CreateMessage(ctx, msg); err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}

	before, _ := s.CountMessages(ctx)
	if err := s.DeleteMessage(ctx, msg.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	after, _ := s.CountMessages(ctx)
	if before-after != 1 {
		t.Errorf("count went from %d to %d, want a decrease of exactly 1", before, after)
	}

	if err := s.DeleteMessage(ctx, msg.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestListMessagesPaginationAndFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		msg := testMessage()
		if err := s.CreateMessage(ctx, msg); err != nil {
			t.Fatalf("CreateMessage %d: %v", i, err)
		}
		if i < 3 {
			if _, err := s.SetMessageStatus(ctx, msg.ID, model.StatusTraite); err != nil {
				t.Fatalf("SetMessageStatus %d: %v", i, err)
			}
		}
	}

	all, total, err := s.ListMessages(ctx, "", 1, 5)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if total != 7 {
		t.Errorf("total = %d, want 7", total)
	}
	if len(all) != 5 {
		t.Errorf("page size = %d, want 5", len(all))
	}

	rest, _, err := s.ListMessages(ctx, "", 2, 5)
	if err != nil {
		t.Fatalf("ListMessages page 2: %v", err)
	}
	if len(rest) != 2 {
		t.Errorf("page 2 size = %d, want 2", len(rest))
	}

	traite, totalTraite, err := s.ListMessages(ctx, model.StatusTraite, 1, 10)
	if err != nil {
		t.Fatalf("ListMessages filtered: %v", err)
	}
	if totalTraite != 3 || len(traite) != 3 {
		t.Errorf("filtered total = %d len = %d, want 3/3", totalTraite, len(traite))
	}
	for _, m := range traite {
		if m.Status != model.StatusTraite {
			t.Errorf("filtered listing contains status %q", m.Status)
		}
	}
}

func TestMessageStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		msg := testMessage()
		if err := s.CreateMessage(ctx, msg); err != nil {
			t.Fatalf("CreateMessage: %v", err)
		}
		if i == 0 {
			s.SetMessageStatus(ctx, msg.ID, model.StatusArchive)
		}
	}

	stats, err := s.MessageStats(ctx)
	if err != nil {
		t.Fatalf("MessageStats: %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("total = %d, want 4", stats.Total)
	}
	if stats.ByStatus[model.StatusNouveau] != 3 {
		t.Errorf("NOUVEAU = %d, want 3", stats.ByStatus[model.StatusNouveau])
	}
	if stats.ByStatus[model.StatusArchive] != 1 {
		t.Errorf("ARCHIVE = %d, want 1", stats.ByStatus[model.StatusArchive])
	}
	// Unused statuses are present with a zero count.
	if got, ok := stats.ByStatus[model.StatusLu]; !ok || got != 0 {
		t.Errorf("LU = %d (present=%t), want 0 present", got, ok)
	}
}

// ---------------------------------------------------------------------------
// Projects
// ---------------------------------------------------------------------------

func TestProjectRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testProject(model.ProjectTermine)
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected a generated id")
	}

	got, err := s.GetProject(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProject: %v", err)
	}
	if got.Title != p.Title || got.Client != p.Client || got.Status != model.ProjectTermine {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if len(got.Technologies) != 2 || got.Technologies[0] != "React" {
		t.Errorf("technologies = %v, want [React Node.js]", got.Technologies)
	}
}

func TestPublicListingIsTermineOnly(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	statuses := []model.ProjectStatus{
		model.ProjectTermine, model.ProjectEnCours,
		model.ProjectEnAttente, model.ProjectTermine,
	}
	for _, st := range statuses {
		if err := s.CreateProject(ctx, testProject(st)); err != nil {
			t.Fatalf("CreateProject: %v", err)
		}
	}

	public, err := s.ListPublicProjects(ctx)
	if err != nil {
		t.Fatalf("ListPublicProjects: %v", err)
	}
	all, err := s.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}

	if len(all) != 4 {
		t.Errorf("admin listing has %d projects, want 4", len(all))
	}
	if len(public) != 2 {
		t.Errorf("public listing has %d projects, want 2", len(public))
	}
	// Strict subset: every public entry is TERMINE and present in all.
	ids := make(map[string]bool, len(all))
	for _, p := range all {
		ids[p.ID] = true
	}
	for _, p := range public {
		if p.Status != model.ProjectTermine {
			t.Errorf("public listing contains status %q", p.Status)
		}
		if !ids[p.ID] {
			t.Errorf("public project %s missing from admin listing", p.ID)
		}
	}
}

func TestUpdateProjectReplacesAllFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testProject(model.ProjectEnCours)
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	repl := testProject(model.ProjectTermine)
	repl.Title = "Nouveau titre"
	repl.Technologies = []string{"Go"}

	updated, err := s.UpdateProject(ctx, p.ID, repl)
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}
	if updated.Title != "Nouveau titre" || updated.Status != model.ProjectTermine {
		t.Errorf("update not applied: %+v", updated)
	}
	if len(updated.Technologies) != 1 || updated.Technologies[0] != "Go" {
		t.Errorf("technologies = %v, want [Go]", updated.Technologies)
	}
	if updated.CreatedAt.IsZero() || updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Errorf("timestamps inconsistent: created=%v updated=%v", updated.CreatedAt, updated.UpdatedAt)
	}

	if _, err := s.UpdateProject(ctx, "missing", repl); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestProjectStatusGatesVisibility(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testProject(model.ProjectTermine)
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	public, _ := s.ListPublicProjects(ctx)
	if len(public) != 1 {
		t.Fatalf("expected 1 public project, got %d", len(public))
	}

	if _, err := s.SetProjectStatus(ctx, p.ID, model.ProjectEnCours); err != nil {
		t.Fatalf("SetProjectStatus: %v", err)
	}

	public, _ = s.ListPublicProjects(ctx)
	if len(public) != 0 {
		t.Errorf("expected project to leave the public listing, got %d entries", len(public))
	}
	all, _ := s.ListProjects(ctx)
	if len(all) != 1 {
		t.Errorf("expected project to remain in the admin listing, got %d entries", len(all))
	}
}

func TestDeleteProjectTwice(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := testProject(model.ProjectEnAttente)
	if err := s.CreateProject(ctx, p); err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if err := s.DeleteProject(ctx, p.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := s.DeleteProject(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestSeedProjectsOnlyOnEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed := []model.Project{*testProject(model.ProjectTermine), *testProject(model.ProjectEnCours)}
	n, err := s.SeedProjects(ctx, seed)
	if err != nil {
		t.Fatalf("SeedProjects: %v", err)
	}
	if n != 2 {
		t.Errorf("seeded %d, want 2", n)
	}

	n, err = s.SeedProjects(ctx, seed)
	if err != nil {
		t.Fatalf("second SeedProjects: %v", err)
	}
	if n != 0 {
		t.Errorf("second seed inserted %d, want 0", n)
	}
}
