package model

import (
	"net/url"
	"time"
)

// ProjectStatus is the publication state of a portfolio project. Only
// TERMINE projects appear in the public listing.
type ProjectStatus string

const (
	ProjectEnAttente ProjectStatus = "EN_ATTENTE"
	ProjectEnCours   ProjectStatus = "EN_COURS"
	ProjectTermine   ProjectStatus = "TERMINE"
)

// ProjectStatuses lists every valid project status.
var ProjectStatuses = []ProjectStatus{ProjectEnAttente, ProjectEnCours, ProjectTermine}

// Valid reports whether s is one of the enumerated project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectEnAttente, ProjectEnCours, ProjectTermine:
		return true
	}
	return false
}

// Project is a portfolio entry managed by the admin. ImageURL is stored as
// an opaque path; file uploads are handled outside this service.
type Project struct {
	ID           string        `json:"id" db:"id"`
	Title        string        `json:"title" db:"title"`
	Description  string        `json:"description" db:"description"`
	Technologies []string      `json:"technologies" db:"-"`
	Client       string        `json:"client" db:"client"`
	Duration     string        `json:"duration" db:"duration"`
	Status       ProjectStatus `json:"status" db:"status"`
	ImageURL     string        `json:"imageUrl,omitempty" db:"image_url"`
	Date         string        `json:"date" db:"date"`
	URL          string        `json:"url,omitempty" db:"url"`
	CreatedAt    time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time     `json:"updatedAt" db:"updated_at"`
}

// ProjectRequest is the payload of POST /api/projects and PUT
// /api/projects/{id}. Updates resend the complete representation; there is
// no partial update.
type ProjectRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Client       string   `json:"client"`
	Duration     string   `json:"duration"`
	Status       string   `json:"status"`
	ImageURL     string   `json:"imageUrl"`
	Date         string   `json:"date"`
	URL          string   `json:"url"`
}

// Validate checks every field. Date is optional (defaults to the creation
// date); URL is optional but must be well-formed when present.
func (r *ProjectRequest) Validate() FieldErrors {
	errs := FieldErrors{}
	checkLength(errs, "title", r.Title, 2, 200)
	checkLength(errs, "description", r.Description, 10, 1000)
	if len(r.Technologies) == 0 {
		errs["technologies"] = "au moins une technologie est requise"
	}
	checkLength(errs, "client", r.Client, 2, 100)
	checkLength(errs, "duration", r.Duration, 2, 50)
	if !ProjectStatus(r.Status).Valid() {
		errs["status"] = "statut invalide"
	}
	if r.URL != "" {
		if u, err := url.Parse(r.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs["url"] = "URL invalide"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
