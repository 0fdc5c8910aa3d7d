package aluno

import (
	"context"
	"sort"
	"strings"

	"github.com/hcfisio/ponto-backend-go/internal/domain/aluno"
	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/pkg/normalize"
	"github.com/hcfisio/ponto-backend-go/internal/service/session"
)

type AlunoServiceImpl struct {
	session *session.Session
}

func NewAlunoService(sess *session.Session) *AlunoServiceImpl {
	return &AlunoServiceImpl{session: sess}
}

// List implements aluno.AlunoService.
func (s *AlunoServiceImpl) List(ctx context.Context) (aluno.ListResponse, error) {
	alunos := s.session.Alunos()
	sorted := append([]aluno.Aluno(nil), alunos...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Course != sorted[j].Course {
			return sorted[i].Course < sorted[j].Course
		}
		return normalize.Fold(sorted[i].Name) < normalize.Fold(sorted[j].Name)
	})
	return aluno.ListResponse{Alunos: sorted, Total: len(sorted)}, nil
}

// Get implements aluno.AlunoService.
func (s *AlunoServiceImpl) Get(ctx context.Context, key string) (aluno.Aluno, error) {
	student, _, err := s.find(key)
	return student, err
}

// Grades implements aluno.AlunoService.
func (s *AlunoServiceImpl) Grades(ctx context.Context, key string) (aluno.GradesResponse, error) {
	student, identity, err := s.find(key)
	if err != nil {
		return aluno.GradesResponse{}, err
	}

	report := aluno.GradesResponse{StudentName: student.Name}
	for _, row := range s.session.NotasTeoricas() {
		if !matchesGrades(identity, row.Name, row.Email, row.Serial) {
			continue
		}
		report.Theory = row.Subjects
		break
	}
	report.TheoryAverage = averageSubjects(report.Theory)

	sum, count := 0.0, 0
	for _, grade := range s.session.NotasPraticas() {
		if !matchesGrades(identity, grade.Name, grade.Email, grade.Serial) {
			continue
		}
		report.Practices = append(report.Practices, aluno.PracticeGradeEntry{
			Module: grade.Module,
			Final:  grade.Final,
		})
		sum += grade.Final
		count++
	}
	if count > 0 {
		report.PracticeAverage = sum / float64(count)
	}
	return report, nil
}

// averageSubjects means the subject grades, skipping the sheet's own
// precomputed average columns so they don't count twice.
func averageSubjects(subjects map[string]float64) float64 {
	sum, count := 0.0, 0
	for subject, grade := range subjects {
		if strings.Contains(normalize.Fold(subject), "media") {
			continue
		}
		sum += grade
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func matchesGrades(identity normalize.Identity, name, email, serial string) bool {
	return identity.Matches(email) || identity.Matches(name) || identity.Matches(serial)
}

// Absences implements aluno.AlunoService.
func (s *AlunoServiceImpl) Absences(ctx context.Context, key string) ([]aluno.AbsenceEntry, error) {
	student, identity, err := s.find(key)
	if err != nil {
		return nil, err
	}
	var entries []aluno.AbsenceEntry
	for _, record := range s.session.Ausencias() {
		if !matchesRecord(record, identity) {
			continue
		}
		entries = append(entries, toEntry(record, student.Name))
	}
	sortNewestFirst(entries)
	return entries, nil
}

// RecentAbsences implements aluno.AlunoService.
func (s *AlunoServiceImpl) RecentAbsences(ctx context.Context, limit int) ([]aluno.AbsenceEntry, error) {
	var entries []aluno.AbsenceEntry
	for _, record := range s.session.Ausencias() {
		entries = append(entries, toEntry(record, s.displayName(record)))
	}
	sortNewestFirst(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *AlunoServiceImpl) find(key string) (aluno.Aluno, normalize.Identity, error) {
	for _, student := range s.session.Alunos() {
		identity, ok := normalize.NewIdentity(student.Name, student.Email, student.Serial)
		if ok && identity.Matches(key) {
			return student, identity, nil
		}
	}
	return aluno.Aluno{}, normalize.Identity{}, aluno.ErrAlunoNotFound
}

// displayName joins a ledger record back to the roster for its proper
// name, falling back to whatever identity field the record carries.
func (s *AlunoServiceImpl) displayName(record escala.AbsenceMakeup) string {
	for _, student := range s.session.Alunos() {
		identity, ok := normalize.NewIdentity(student.Name, student.Email, student.Serial)
		if ok && matchesRecord(record, identity) {
			return student.Name
		}
	}
	if record.Name != "" {
		return record.Name
	}
	return record.Email
}

func matchesRecord(record escala.AbsenceMakeup, identity normalize.Identity) bool {
	return identity.Matches(record.Email) || identity.Matches(record.Name) || identity.Matches(record.Serial)
}

func toEntry(record escala.AbsenceMakeup, name string) aluno.AbsenceEntry {
	return aluno.AbsenceEntry{
		StudentName: name,
		AbsenceISO:  record.AbsenceISO,
		MakeupISO:   record.MakeupISO,
		Pending:     record.Pending(),
		Reason:      record.Reason,
		Location:    record.Location,
	}
}

// sortNewestFirst orders by the makeup date when present, the absence
// date otherwise; dateless records sink to the end.
func sortNewestFirst(entries []aluno.AbsenceEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entryDate(entries[i]) > entryDate(entries[j])
	})
}

func entryDate(entry aluno.AbsenceEntry) string {
	if entry.MakeupISO != "" {
		return entry.MakeupISO
	}
	return entry.AbsenceISO
}
