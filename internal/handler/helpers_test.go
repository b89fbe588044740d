package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aria-creative/vitrine/internal/model"
)

func TestWriteSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	writeSuccess(rr, http.StatusCreated, "créé", map[string]string{"id": "abc"})

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var resp model.Response
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Message != "créé" {
		t.Errorf("envelope = %+v", resp)
	}
}

func TestWriteErrorWithDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	writeValidationError(rr, model.FieldErrors{"email": "Email invalide"})

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}

	var resp struct {
		Success bool              `json:"success"`
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("envelope = %+v", resp)
	}
	if resp.Details["email"] != "Email invalide" {
		t.Errorf("details = %v", resp.Details)
	}
}

func TestWriteErrorOmitsEmptyDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	writeError(rr, http.StatusNotFound, "Message non trouvé")

	if strings.Contains(rr.Body.String(), "details") {
		t.Errorf("unexpected details key: %s", rr.Body.String())
	}
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"status":"LU","typo":"x"}`))

	var body struct {
		Status string `json:"status"`
	}
	if err := readJSON(req, &body); err == nil {
		t.Error("expected an error for an unknown field")
	}
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"page=3", 3},
		{"page=", 1},
		{"page=abc", 1},
		{"", 1},
		{"page=-2", -2},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/?"+tt.query, nil)
		if got := queryInt(req, "page", 1); got != tt.want {
			t.Errorf("queryInt(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 1, 100, 5},
		{0, 1, 100, 1},
		{250, 1, 100, 100},
	}
	for _, tt := range tests {
		if got := clampInt(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("clampInt(%d, %d, %d) = %d, want %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}
