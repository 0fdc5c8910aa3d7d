package escala

import (
	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/pkg/normalize"
)

// buildRoster derives who is scheduled to work on a date: every
// schedule with a day header matching the date's DD/MM contributes its
// listed people. The first occurrence of a canonical identity wins;
// schedules are not expected to double-list a person for one date, but
// the same person can appear on two schedules under different group
// names. An empty roster is a normal state.
func buildRoster(escalas []escala.Escala, isoDate string) []escala.RosterEntry {
	target := normalize.ISOToDayMonth(isoDate)
	if target == "" {
		return nil
	}

	seen := map[string]bool{}
	var roster []escala.RosterEntry
	for _, def := range escalas {
		if !coversDay(def, target) {
			continue
		}
		for _, person := range def.People {
			identity, ok := normalize.NewIdentity(person.Name, person.Email, person.Serial)
			if !ok {
				continue
			}
			if seen[identity.Canonical] {
				continue
			}
			seen[identity.Canonical] = true
			roster = append(roster, escala.RosterEntry{
				Identity:   identity,
				Name:       person.Name,
				Email:      person.Email,
				Serial:     person.Serial,
				Modalidade: person.Modalidade,
				EscalaName: def.Name,
				Headers:    def.Days,
			})
		}
	}
	return roster
}

func coversDay(def escala.Escala, target string) bool {
	for _, day := range def.Days {
		if normalize.NormalizeDayMonth(day) == target {
			return true
		}
	}
	return false
}
