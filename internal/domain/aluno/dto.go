package aluno

// ========================================
// ALUNO DTOs
// ========================================

// AbsenceEntry is one absence/makeup record joined back to a student.
type AbsenceEntry struct {
	StudentName string `json:"student_name"`
	AbsenceISO  string `json:"absence_date,omitempty"`
	MakeupISO   string `json:"makeup_date,omitempty"`
	Pending     bool   `json:"pending"`
	Reason      string `json:"reason,omitempty"`
	Location    string `json:"location,omitempty"`
}

// ListResponse groups the roster by course, the way the program reads it.
type ListResponse struct {
	Alunos []Aluno `json:"alunos"`
	Total  int     `json:"total"`
}

// PracticeGradeEntry is one practice module's final grade in a
// student's grade report.
type PracticeGradeEntry struct {
	Module string  `json:"module"`
	Final  float64 `json:"final"`
}

// GradesResponse is a student's full grade report. Averages skip the
// sheet's own precomputed average columns and zero-valued cells.
type GradesResponse struct {
	StudentName     string               `json:"student_name"`
	Theory          map[string]float64   `json:"theory,omitempty"`
	TheoryAverage   float64              `json:"theory_average"`
	Practices       []PracticeGradeEntry `json:"practices,omitempty"`
	PracticeAverage float64              `json:"practice_average"`
}
