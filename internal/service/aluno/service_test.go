package aluno

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcfisio/ponto-backend-go/internal/domain/aluno"
	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/repository/sheets"
	"github.com/hcfisio/ponto-backend-go/internal/service/session"
)

type fakeSheetsClient struct {
	snapshot sheets.Snapshot
}

func (f *fakeSheetsClient) FetchAll(ctx context.Context) (sheets.Snapshot, error) {
	return f.snapshot, nil
}

func (f *fakeSheetsClient) FetchToday(ctx context.Context) (sheets.DayPayload, error) {
	return sheets.DayPayload{}, nil
}

func (f *fakeSheetsClient) FetchDay(ctx context.Context, date, escala string) (sheets.DayPayload, error) {
	return sheets.DayPayload{}, nil
}

func newTestService(t *testing.T, snapshot sheets.Snapshot) *AlunoServiceImpl {
	sess := session.New(&fakeSheetsClient{snapshot: snapshot})
	require.NoError(t, sess.Load(context.Background()))
	return NewAlunoService(sess)
}

func rosterSnapshot() sheets.Snapshot {
	return sheets.Snapshot{
		Alunos: []aluno.Aluno{
			{Name: "Bia Lima", Email: "bia@hcfisio.com.br", Course: "Fisioterapia"},
			{Name: "Ana Souza", Email: "ana@hcfisio.com.br", Serial: "1234", Course: "Fisioterapia"},
			{Name: "Caio Reis", Email: "caio@hcfisio.com.br", Course: "Educação Física"},
		},
		Ausencias: []escala.AbsenceMakeup{
			{Email: "ana@hcfisio.com.br", AbsenceISO: "2026-01-05", MakeupISO: "2026-01-12", Reason: "atestado"},
			{Name: "Bia Lima", AbsenceISO: "2026-01-08"},
			{Email: "ana@hcfisio.com.br", AbsenceISO: "2026-01-02"},
		},
	}
}

func TestAlunoService_List_SortedByCourseThenName(t *testing.T) {
	svc := newTestService(t, rosterSnapshot())

	list, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, "Caio Reis", list.Alunos[0].Name)
	assert.Equal(t, "Ana Souza", list.Alunos[1].Name)
	assert.Equal(t, "Bia Lima", list.Alunos[2].Name)
}

func TestAlunoService_Get_AnyAliasResolves(t *testing.T) {
	svc := newTestService(t, rosterSnapshot())

	byName, err := svc.Get(context.Background(), "ANA SOUZA")
	require.NoError(t, err)
	bySerial, err := svc.Get(context.Background(), "1234")
	require.NoError(t, err)
	byEmail, err := svc.Get(context.Background(), "ana@hcfisio.com.br")
	require.NoError(t, err)

	assert.Equal(t, byName, bySerial)
	assert.Equal(t, byName, byEmail)
}

func TestAlunoService_Get_Unknown(t *testing.T) {
	svc := newTestService(t, rosterSnapshot())

	_, err := svc.Get(context.Background(), "ninguem")

	assert.ErrorIs(t, err, aluno.ErrAlunoNotFound)
}

func TestAlunoService_Absences_NameLookupSeesEmailKeyedRows(t *testing.T) {
	svc := newTestService(t, rosterSnapshot())

	entries, err := svc.Absences(context.Background(), "Ana Souza")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first: the makeup date outranks the bare absence date
	assert.Equal(t, "2026-01-12", entries[0].MakeupISO)
	assert.False(t, entries[0].Pending)
	assert.Equal(t, "2026-01-02", entries[1].AbsenceISO)
	assert.True(t, entries[1].Pending)
}

func TestAlunoService_Grades_JoinsTheoryAndPracticeByAnyAlias(t *testing.T) {
	snapshot := rosterSnapshot()
	snapshot.NotasTeoricas = []aluno.TheoryGrades{
		{Email: "ana@hcfisio.com.br", Subjects: map[string]float64{
			"Cardiologia": 8.0,
			"Neurologia":  6.0,
			"MÉDIA FINAL": 7.0,
		}},
		{Name: "Bia Lima", Subjects: map[string]float64{"Cardiologia": 9.5}},
	}
	snapshot.NotasPraticas = []aluno.PracticeGrade{
		{Module: "NP UTI", Serial: "1234", Final: 9.0},
		{Module: "NP Enfermaria", Email: "ana@hcfisio.com.br", Final: 7.0},
		{Module: "NP UTI", Email: "bia@hcfisio.com.br", Final: 5.0},
	}
	svc := newTestService(t, snapshot)

	report, err := svc.Grades(context.Background(), "Ana Souza")

	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", report.StudentName)
	assert.Equal(t, 8.0, report.Theory["Cardiologia"])
	// The sheet's own precomputed average column is excluded from ours
	assert.InDelta(t, 7.0, report.TheoryAverage, 0.001)
	require.Len(t, report.Practices, 2)
	assert.InDelta(t, 8.0, report.PracticeAverage, 0.001)
}

func TestAlunoService_Grades_UnknownStudent(t *testing.T) {
	svc := newTestService(t, rosterSnapshot())

	_, err := svc.Grades(context.Background(), "ninguem")

	assert.ErrorIs(t, err, aluno.ErrAlunoNotFound)
}

func TestAlunoService_Grades_NoGradeRows(t *testing.T) {
	svc := newTestService(t, rosterSnapshot())

	report, err := svc.Grades(context.Background(), "Caio Reis")

	require.NoError(t, err)
	assert.Empty(t, report.Theory)
	assert.Empty(t, report.Practices)
	assert.Zero(t, report.TheoryAverage)
	assert.Zero(t, report.PracticeAverage)
}

func TestAlunoService_RecentAbsences_JoinsRosterNamesAndLimits(t *testing.T) {
	svc := newTestService(t, rosterSnapshot())

	entries, err := svc.RecentAbsences(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ana Souza", entries[0].StudentName, "email-keyed ledger row joins back to the roster name")
	assert.Equal(t, "2026-01-12", entries[0].MakeupISO)
	assert.Equal(t, "Bia Lima", entries[1].StudentName)
}
