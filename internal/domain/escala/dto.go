package escala

// ========================================
// ESCALA DTOs
// ========================================

// DayCell is one schedule day resolved for a student: the inferred
// calendar date, the classified cell status after date-level
// absence/makeup overrides, and the parsed shift hours.
type DayCell struct {
	DayMonth string     `json:"day"`
	ISODate  string     `json:"date"`
	RawText  string     `json:"text,omitempty"`
	Status   CellStatus `json:"status"`
	Hours    CellHours  `json:"hours"`
}

// StudentEscala is one schedule seen from a single student's row.
type StudentEscala struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name,omitempty"`
	PeriodLabel string    `json:"period_label,omitempty"`
	Cells       []DayCell `json:"cells"`
	Bank        HourBank  `json:"bank"`
}

// StudentEscalasResponse carries every schedule a student appears in
// plus the total hour bank across all of them.
type StudentEscalasResponse struct {
	Escalas []StudentEscala `json:"escalas"`
	Total   HourBank        `json:"total"`
}

// RosterResponse lists the people scheduled for one date.
type RosterResponse struct {
	Date    string        `json:"date"`
	Entries []RosterEntry `json:"entries"`
}
