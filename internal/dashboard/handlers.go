package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tableside/internal/common/httpx"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(s ServiceInterface) *Handler {
	return &Handler{service: s}
}

func (h *Handler) Earnings(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.Earnings(r.Context(), chi.URLParam(r, "restaurantID"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, e)
}
