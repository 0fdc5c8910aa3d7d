package http

import (
	"log/slog"
	"net/http"

	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/handler/http/response"
)

type EscalaHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Roster(w http.ResponseWriter, r *http.Request)
}

type escalaHandlerImpl struct {
	escalaService escala.EscalaService
}

func NewEscalaHandler(escalaService escala.EscalaService) EscalaHandler {
	return &escalaHandlerImpl{escalaService: escalaService}
}

// List implements EscalaHandler.
func (h *escalaHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	escalas, err := h.escalaService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, escalas)
}

// Roster implements EscalaHandler.
func (h *escalaHandlerImpl) Roster(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	roster, err := h.escalaService.Roster(r.Context(), date)
	if err != nil {
		slog.Error("Failed to build roster", "date", date, "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, roster)
}
