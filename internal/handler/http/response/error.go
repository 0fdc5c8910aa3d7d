package response

import (
	"errors"
	"net/http"

	"github.com/hcfisio/ponto-backend-go/internal/domain/aluno"
	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/domain/ponto"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	switch {
	// Ponto domain errors
	case errors.Is(err, ponto.ErrInvalidDate):
		BadRequest(w, "Date is not in a recognized format")
	case errors.Is(err, ponto.ErrFetchFailed):
		BadGateway(w, "Attendance data source is unavailable")
	case errors.Is(err, ponto.ErrNoDataForDate):
		NotFound(w, "No attendance data recorded for this date")

	// Escala domain errors
	case errors.Is(err, escala.ErrInvalidDate):
		BadRequest(w, "Date is not in a recognized format")
	case errors.Is(err, escala.ErrStudentNotFound):
		NotFound(w, "Student not listed on any escala")

	// Aluno domain errors
	case errors.Is(err, aluno.ErrAlunoNotFound):
		NotFound(w, "Student not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
