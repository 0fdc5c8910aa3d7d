package escala

import (
	"context"
	"fmt"
	"time"

	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/domain/ponto"
	"github.com/hcfisio/ponto-backend-go/internal/pkg/normalize"
	"github.com/hcfisio/ponto-backend-go/internal/service/session"
)

// liveRecords supplies the cached attendance rows for a (date, group)
// pair, used to overlay a student's real swipe on today's schedule cell.
type liveRecords interface {
	Get(date, escalaKey string) []ponto.Record
}

type EscalaServiceImpl struct {
	session *session.Session
	live    liveRecords

	// now is swappable in tests; year inference and the "today" cell
	// both depend on the reference date.
	now func() time.Time
}

func NewEscalaService(sess *session.Session, live liveRecords) *EscalaServiceImpl {
	return &EscalaServiceImpl{
		session: sess,
		live:    live,
		now:     time.Now,
	}
}

// List implements escala.EscalaService.
func (s *EscalaServiceImpl) List(ctx context.Context) ([]escala.Escala, error) {
	return s.session.Escalas(), nil
}

// Roster implements escala.EscalaService.
func (s *EscalaServiceImpl) Roster(ctx context.Context, date string) (escala.RosterResponse, error) {
	iso := normalize.NormalizeDate(date)
	if iso == "" {
		return escala.RosterResponse{}, fmt.Errorf("%w: %q", escala.ErrInvalidDate, date)
	}
	return escala.RosterResponse{
		Date:    iso,
		Entries: buildRoster(s.session.Escalas(), iso),
	}, nil
}

// ForStudent implements escala.EscalaService.
func (s *EscalaServiceImpl) ForStudent(ctx context.Context, key string) (escala.StudentEscalasResponse, error) {
	identity, ok := s.resolveIdentity(key)
	if !ok {
		return escala.StudentEscalasResponse{}, escala.ErrStudentNotFound
	}

	absent, makeup := s.ledgerFor(identity)
	ref := s.now()
	todayISO := normalize.FormatISO(ref)

	var response escala.StudentEscalasResponse
	for _, def := range s.session.Escalas() {
		person, found := findPerson(def, identity)
		if !found {
			continue
		}
		cells := buildDayCells(def.Days, person.Cells, absent, makeup, ref)
		s.overlayToday(cells, identity, todayISO)
		bank := computeBank(def.Days, person.Cells, absent, makeup, ref)
		response.Escalas = append(response.Escalas, escala.StudentEscala{
			Name:        def.Name,
			DisplayName: def.DisplayName,
			PeriodLabel: periodLabel(def.PeriodLabel, cells),
			Cells:       cells,
			Bank:        bank,
		})
		response.Total.Add(bank)
	}
	if len(response.Escalas) == 0 {
		return escala.StudentEscalasResponse{}, escala.ErrStudentNotFound
	}
	return response, nil
}

// HourBank implements escala.EscalaService.
func (s *EscalaServiceImpl) HourBank(ctx context.Context, key string) (escala.HourBank, error) {
	response, err := s.ForStudent(ctx, key)
	if err != nil {
		return escala.HourBank{}, err
	}
	return response.Total, nil
}

// resolveIdentity widens a lookup key into the student's full alias
// set when the roster knows them, so a name lookup still matches
// ledger rows keyed only by email.
func (s *EscalaServiceImpl) resolveIdentity(key string) (normalize.Identity, bool) {
	for _, student := range s.session.Alunos() {
		identity, ok := normalize.NewIdentity(student.Name, student.Email, student.Serial)
		if ok && identity.Matches(key) {
			return identity, true
		}
	}
	return normalize.NewIdentity(key, key, key)
}

// ledgerFor collects the student's recorded absence and makeup dates.
func (s *EscalaServiceImpl) ledgerFor(identity normalize.Identity) (absent, makeup map[string]bool) {
	absent = map[string]bool{}
	makeup = map[string]bool{}
	for _, record := range s.session.Ausencias() {
		if !matchesLedger(record, identity) {
			continue
		}
		if record.AbsenceISO != "" {
			absent[record.AbsenceISO] = true
		}
		if record.MakeupISO != "" {
			makeup[record.MakeupISO] = true
		}
	}
	return absent, makeup
}

func matchesLedger(record escala.AbsenceMakeup, identity normalize.Identity) bool {
	return identity.Matches(record.Email) || identity.Matches(record.Name) || identity.Matches(record.Serial)
}

// overlayToday replaces today's scheduled cell with the student's real
// swipe when one is cached, unless the ledger already overrode the day.
func (s *EscalaServiceImpl) overlayToday(cells []escala.DayCell, identity normalize.Identity, todayISO string) {
	for i := range cells {
		if cells[i].ISODate != todayISO {
			continue
		}
		if cells[i].Status == escala.CellAbsence || cells[i].Status == escala.CellMakeup {
			return
		}
		for _, record := range s.live.Get(todayISO, ponto.EscalaKeyAll) {
			if !record.HasEntry() {
				continue
			}
			if !identity.Matches(record.Name) && !identity.Matches(record.Email) && !identity.Matches(record.RawSerial) {
				continue
			}
			if cells[i].Status != escala.CellOnCall && cells[i].Status != escala.CellClass {
				cells[i].Status = escala.CellPresence
			}
			cells[i].RawText = "Presente (" + record.Entrada + ")"
			return
		}
		return
	}
}

func findPerson(def escala.Escala, identity normalize.Identity) (escala.Person, bool) {
	for _, person := range def.People {
		if identity.Matches(person.Name) || identity.Matches(person.Email) || identity.Matches(person.Serial) {
			return person, true
		}
	}
	return escala.Person{}, false
}

// periodLabel prefers the published label and falls back to the span
// of resolved day cells.
func periodLabel(published string, cells []escala.DayCell) string {
	if published != "" {
		return published
	}
	if len(cells) == 0 {
		return ""
	}
	return cells[0].ISODate + " a " + cells[len(cells)-1].ISODate
}
