package escala

import "github.com/hcfisio/ponto-backend-go/internal/pkg/normalize"

// Escala is one published duty schedule: an ordered list of day
// headers (DD/MM text), the people listed on it and the free-text cell
// each person/day carries. Immutable for the session; reloaded only
// when the snapshot is reloaded.
type Escala struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name,omitempty"`
	PeriodLabel string `json:"period_label,omitempty"`
	SheetURL    string `json:"sheet_url,omitempty"`
	PDFURL      string `json:"pdf_url,omitempty"`

	// Days holds the schedule's day headers normalized to DD/MM, in
	// published order.
	Days []string `json:"days"`

	People []Person `json:"people"`
}

// Person is one row of a duty schedule: identity fields plus the
// free-text content of each day column, keyed by normalized DD/MM.
type Person struct {
	Name       string            `json:"name"`
	Email      string            `json:"email,omitempty"`
	Serial     string            `json:"serial,omitempty"`
	Modalidade string            `json:"modalidade,omitempty"`
	Cells      map[string]string `json:"cells,omitempty"`
}

// RosterEntry is a scheduled person for one date. Lives only for the
// duration of one roster query.
type RosterEntry struct {
	Identity   normalize.Identity `json:"-"`
	Name       string             `json:"name"`
	Email      string             `json:"email,omitempty"`
	Serial     string             `json:"serial,omitempty"`
	Modalidade string             `json:"modalidade,omitempty"`
	EscalaName string             `json:"escala"`
	Headers    []string           `json:"-"`
}

// AbsenceMakeup records one absence and, when compensated, the makeup
// session performed for it. Either date may be empty.
type AbsenceMakeup struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Serial     string `json:"serial,omitempty"`
	AbsenceISO string `json:"absence_date,omitempty"`
	MakeupISO  string `json:"makeup_date,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Location   string `json:"location,omitempty"`
}

// Pending reports whether the absence still lacks a makeup session.
func (a AbsenceMakeup) Pending() bool {
	return a.AbsenceISO != "" && a.MakeupISO == ""
}

// CellStatus classifies the free text of one schedule day cell.
type CellStatus string

const (
	CellPresence CellStatus = "presenca"
	CellOnCall   CellStatus = "plantao"
	CellClass    CellStatus = "aula"
	CellAbsence  CellStatus = "ausencia"
	CellMakeup   CellStatus = "reposicao"
	CellOff      CellStatus = "folga"
	CellNone     CellStatus = "none"
)

// CellHours is the shift duration parsed out of a day cell's text.
type CellHours struct {
	Hours  float64 `json:"hours"`
	Start  string  `json:"start,omitempty"`
	End    string  `json:"end,omitempty"`
	OnCall bool    `json:"on_call,omitempty"`
}

// HourBank reconciles hours owed against hours actually worked after
// absence/makeup adjustments.
type HourBank struct {
	HoursWorked float64 `json:"hours_worked"`
	HoursOwed   float64 `json:"hours_owed"`
}

// Add accumulates another bank into this one.
func (b *HourBank) Add(other HourBank) {
	b.HoursWorked += other.HoursWorked
	b.HoursOwed += other.HoursOwed
}
