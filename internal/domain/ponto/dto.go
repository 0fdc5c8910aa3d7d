package ponto

import "github.com/hcfisio/ponto-backend-go/internal/pkg/validator"

// ========================================
// PONTO DTOs
// ========================================

// DatasetRequest selects the date and duty group to reconcile.
// Escala defaults to "all"; Date defaults to today.
type DatasetRequest struct {
	Date   string `json:"date"`
	Escala string `json:"escala"`
}

func (r *DatasetRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.Date) {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY",
			})
		}
	}
	if len(r.Escala) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "escala",
			Message: "escala must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Summary carries the headcount verdicts for one reconciled dataset.
// Present includes late arrivals, matching how the program reads the
// board: late people are on site.
type Summary struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
}

// DatasetResponse is one reconciled per-person, per-day view: everyone
// scheduled, shown with their real swipe when one exists.
type DatasetResponse struct {
	Date        string  `json:"date"`
	Escala      string  `json:"escala"`
	Rows        []Row   `json:"rows"`
	RosterSize  int     `json:"roster_size"`
	Summary     Summary `json:"summary"`
	LastUpdated string  `json:"last_updated,omitempty"`
}

// RefreshRequest forces a re-fetch of one date/group partition.
type RefreshRequest struct {
	Date   string `json:"date"`
	Escala string `json:"escala"`
	Force  bool   `json:"force"`
}

func (r *RefreshRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsEmpty(r.Date) {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be YYYY-MM-DD, DD/MM/YYYY or DD-MM-YYYY",
			})
		}
	}
	if len(r.Escala) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "escala",
			Message: "escala must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DatesResponse lists the dates with known attendance data and the
// duty groups seen on each of them.
type DatesResponse struct {
	Dates         []string            `json:"dates"`
	EscalasByDate map[string][]string `json:"escalas_by_date"`
	LastUpdated   string              `json:"last_updated,omitempty"`
}
