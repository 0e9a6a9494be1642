package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"tableside/internal/domain"
)

func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteProblem emits the shared error envelope (simplified problem+json).
func WriteProblem(w http.ResponseWriter, code int, typ, detail string) {
	WriteJSON(w, code, map[string]any{
		"type":   typ,
		"title":  http.StatusText(code),
		"status": code,
		"detail": detail,
	})
}

// WriteError maps the domain error taxonomy onto HTTP statuses. Store
// internals are never echoed to clients.
func WriteError(w http.ResponseWriter, err error) {
	var (
		ve *domain.ValidationError
		nf *domain.NotFoundError
		pe *domain.PersistenceError
	)
	switch {
	case errors.As(err, &ve):
		WriteProblem(w, http.StatusBadRequest, "validation_error", ve.Error())
	case errors.As(err, &nf):
		WriteProblem(w, http.StatusNotFound, "not_found", nf.Error())
	case errors.As(err, &pe):
		WriteProblem(w, http.StatusInternalServerError, "persistence_error", "store operation failed")
	default:
		WriteProblem(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
