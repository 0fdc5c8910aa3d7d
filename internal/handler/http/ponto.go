package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/hcfisio/ponto-backend-go/internal/domain/ponto"
	"github.com/hcfisio/ponto-backend-go/internal/handler/http/response"
)

type PontoHandler interface {
	Dataset(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Dates(w http.ResponseWriter, r *http.Request)
}

type pontoHandlerImpl struct {
	pontoService ponto.PontoService
}

func NewPontoHandler(pontoService ponto.PontoService) PontoHandler {
	return &pontoHandlerImpl{pontoService: pontoService}
}

// Dataset implements PontoHandler.
func (h *pontoHandlerImpl) Dataset(w http.ResponseWriter, r *http.Request) {
	req := ponto.DatasetRequest{
		Date:   r.URL.Query().Get("date"),
		Escala: r.URL.Query().Get("escala"),
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	dataset, err := h.pontoService.Dataset(r.Context(), req)
	if err != nil {
		slog.Error("Failed to build attendance dataset", "date", req.Date, "escala", req.Escala, "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, dataset)
}

// Refresh implements PontoHandler.
func (h *pontoHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	// An empty body means "refresh today, all escalas".
	var req ponto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.pontoService.Refresh(r.Context(), req); err != nil {
		slog.Error("Failed to refresh attendance", "date", req.Date, "escala", req.Escala, "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance refreshed", nil)
}

// Dates implements PontoHandler.
func (h *pontoHandlerImpl) Dates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.pontoService.Dates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, dates)
}
