package aluno

import "context"

// AlunoService defines business logic for student profiles
type AlunoService interface {
	// List returns every student in the session snapshot.
	List(ctx context.Context) (ListResponse, error)

	// Get resolves a student by any identity alias (name, email or
	// badge serial, accent- and case-insensitive).
	Get(ctx context.Context, key string) (Aluno, error)

	// Grades returns a student's theory subjects and practice-module
	// finals with their averages.
	Grades(ctx context.Context, key string) (GradesResponse, error)

	// Absences returns a student's absence/makeup history, newest first.
	Absences(ctx context.Context, key string) ([]AbsenceEntry, error)

	// RecentAbsences returns the latest absence/makeup records across
	// the whole roster, newest first, capped at limit.
	RecentAbsences(ctx context.Context, limit int) ([]AbsenceEntry, error)
}
