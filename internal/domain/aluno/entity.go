package aluno

// Aluno is one student profile from the program roster. Loaded once
// per session snapshot from the external data source.
type Aluno struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Serial    string `json:"serial,omitempty"`
	Course    string `json:"course,omitempty"`
	Status    string `json:"status,omitempty"`
	BirthDate string `json:"birth_date,omitempty"`
	Crefito   string `json:"crefito,omitempty"`
}

// TheoryGrades is one student's row from the theory-grades sheet:
// every non-identity column becomes a subject keyed by its header.
type TheoryGrades struct {
	Name     string
	Email    string
	Serial   string
	Subjects map[string]float64
}

// PracticeGrade is one student's final grade in a practice module.
// Each module lives on its own sheet; only the final-average column
// carries a usable value.
type PracticeGrade struct {
	Module string
	Name   string
	Email  string
	Serial string
	Final  float64
}
