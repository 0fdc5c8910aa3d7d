package escala

import "context"

// EscalaService defines business logic for duty schedules
type EscalaService interface {
	// List returns every schedule definition in the session snapshot.
	List(ctx context.Context) ([]Escala, error)

	// Roster derives the people scheduled to work on a date. An empty
	// roster is a normal state, not an error.
	Roster(ctx context.Context, date string) (RosterResponse, error)

	// ForStudent resolves the schedules a student appears in, with
	// per-day cells and hour-bank totals. key may be any identity
	// alias (name, email or badge serial).
	ForStudent(ctx context.Context, key string) (StudentEscalasResponse, error)

	// HourBank computes the total owed/worked balance for a student.
	HourBank(ctx context.Context, key string) (HourBank, error)
}
