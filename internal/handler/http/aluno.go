package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hcfisio/ponto-backend-go/internal/domain/aluno"
	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/handler/http/response"
)

type AlunoHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Escalas(w http.ResponseWriter, r *http.Request)
	HourBank(w http.ResponseWriter, r *http.Request)
	Grades(w http.ResponseWriter, r *http.Request)
	Absences(w http.ResponseWriter, r *http.Request)
	RecentAbsences(w http.ResponseWriter, r *http.Request)
}

type alunoHandlerImpl struct {
	alunoService  aluno.AlunoService
	escalaService escala.EscalaService
}

func NewAlunoHandler(alunoService aluno.AlunoService, escalaService escala.EscalaService) AlunoHandler {
	return &alunoHandlerImpl{
		alunoService:  alunoService,
		escalaService: escalaService,
	}
}

// List implements AlunoHandler.
func (h *alunoHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.alunoService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, list)
}

// Get implements AlunoHandler.
func (h *alunoHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	student, err := h.alunoService.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, student)
}

// Escalas implements AlunoHandler.
func (h *alunoHandlerImpl) Escalas(w http.ResponseWriter, r *http.Request) {
	escalas, err := h.escalaService.ForStudent(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, escalas)
}

// HourBank implements AlunoHandler.
func (h *alunoHandlerImpl) HourBank(w http.ResponseWriter, r *http.Request) {
	bank, err := h.escalaService.HourBank(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, bank)
}

// Grades implements AlunoHandler.
func (h *alunoHandlerImpl) Grades(w http.ResponseWriter, r *http.Request) {
	grades, err := h.alunoService.Grades(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, grades)
}

// Absences implements AlunoHandler.
func (h *alunoHandlerImpl) Absences(w http.ResponseWriter, r *http.Request) {
	absences, err := h.alunoService.Absences(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, absences)
}

// RecentAbsences implements AlunoHandler.
func (h *alunoHandlerImpl) RecentAbsences(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	absences, err := h.alunoService.RecentAbsences(r.Context(), limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, absences)
}
