package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aria-creative/vitrine/internal/model"
)

// writeJSON serializes v and writes it with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeSuccess writes a success envelope with optional data and message.
func writeSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, model.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// writeError writes an error envelope. details is optional and carries
// field-level validation information.
func writeError(w http.ResponseWriter, status int, message string, details ...interface{}) {
	resp := model.Response{Success: false, Error: message}
	if len(details) > 0 {
		resp.Details = details[0]
	}
	writeJSON(w, status, resp)
}

// writeValidationError writes a 400 with the field-level details map.
func writeValidationError(w http.ResponseWriter, errs model.FieldErrors) {
	writeError(w, http.StatusBadRequest, "Données invalides", errs)
}

// writeInternal logs the underlying error with its operation and answers
// with a generic message; the detail is only echoed to the client in dev
// mode.
func writeInternal(w http.ResponseWriter, logger *slog.Logger, dev bool, op string, err error) {
	logger.Error(op, "error", err)
	if dev {
		writeError(w, http.StatusInternalServerError, "Erreur interne du serveur", err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "Erreur interne du serveur")
}

// readJSON decodes the request body as JSON into v, rejecting unknown
// fields so typos surface as validation errors instead of zero values.
func readJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// queryInt extracts an integer query parameter, falling back to defaultVal
// when missing or unparsable.
func queryInt(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// clampInt constrains val to [min, max].
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
