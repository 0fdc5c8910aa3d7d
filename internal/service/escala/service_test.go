package escala

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcfisio/ponto-backend-go/internal/domain/aluno"
	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/domain/ponto"
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

type fakeLive struct {
	rows []ponto.Record
}

func (f *fakeLive) Get(date, escalaKey string) []ponto.Record {
	return f.rows
}

func testSession(t *testing.T, snapshot sheets.Snapshot) *session.Session {
	sess := session.New(&fakeSheetsClient{snapshot: snapshot})
	require.NoError(t, sess.Load(context.Background()))
	return sess
}

func studentSnapshot() sheets.Snapshot {
	return sheets.Snapshot{
		Alunos: []aluno.Aluno{
			{Name: "Ana Souza", Email: "ana@hcfisio.com.br", Serial: "1234"},
		},
		Escalas: []escala.Escala{
			{
				Name: "Escala1",
				Days: []string{"05/01", "06/01", "07/01"},
				People: []escala.Person{
					{
						Name: "Ana Souza",
						Cells: map[string]string{
							"05/01": "07h-13h",
							"06/01": "07h-13h",
							"07/01": "Folga",
						},
					},
				},
			},
		},
		Ausencias: []escala.AbsenceMakeup{
			// Ledger rows carry only the email alias
			{Email: "ana@hcfisio.com.br", AbsenceISO: "2026-01-05"},
		},
	}
}

func newTestService(t *testing.T, snapshot sheets.Snapshot, live liveRecords, ref time.Time) *EscalaServiceImpl {
	svc := NewEscalaService(testSession(t, snapshot), live)
	svc.now = func() time.Time { return ref }
	return svc
}

func TestEscalaService_ForStudent_NameLookupSeesEmailKeyedLedger(t *testing.T) {
	ref := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, studentSnapshot(), &fakeLive{}, ref)

	response, err := svc.ForStudent(context.Background(), "Ana Souza")

	require.NoError(t, err)
	require.Len(t, response.Escalas, 1)
	cells := response.Escalas[0].Cells
	require.Len(t, cells, 3)
	assert.Equal(t, escala.CellAbsence, cells[0].Status, "ledger absence must override the cell text")
	assert.Equal(t, escala.CellPresence, cells[1].Status)
	assert.Equal(t, escala.CellOff, cells[2].Status)

	// 12 owed, 6 worked: the 05/01 absence has no recorded makeup
	assert.InDelta(t, 12, response.Total.HoursOwed, 0.001)
	assert.InDelta(t, 6, response.Total.HoursWorked, 0.001)
}

func TestEscalaService_ForStudent_UnknownStudent(t *testing.T) {
	ref := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, studentSnapshot(), &fakeLive{}, ref)

	_, err := svc.ForStudent(context.Background(), "ninguem")

	assert.ErrorIs(t, err, escala.ErrStudentNotFound)
}

func TestEscalaService_ForStudent_TodaySwipeOverlaysCell(t *testing.T) {
	// Reference date falls on a scheduled day
	ref := time.Date(2026, 1, 6, 12, 0, 0, 0, time.UTC)
	live := &fakeLive{rows: []ponto.Record{{
		Name:           "Ana Souza",
		NameKey:        "ana souza",
		ISODate:        "2026-01-06",
		Entrada:        "07:02",
		EntradaMinutes: 422,
	}}}
	svc := newTestService(t, studentSnapshot(), live, ref)

	response, err := svc.ForStudent(context.Background(), "ana@hcfisio.com.br")

	require.NoError(t, err)
	cells := response.Escalas[0].Cells
	assert.Equal(t, escala.CellPresence, cells[1].Status)
	assert.Equal(t, "Presente (07:02)", cells[1].RawText)
	// Other days keep their scheduled text
	assert.Equal(t, "Folga", cells[2].RawText)
}

func TestEscalaService_ForStudent_LedgerBeatsTodaySwipe(t *testing.T) {
	// Today is the recorded absence day; the swipe must not repaint it
	ref := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
	live := &fakeLive{rows: []ponto.Record{{
		Name:           "Ana Souza",
		ISODate:        "2026-01-05",
		Entrada:        "07:02",
		EntradaMinutes: 422,
	}}}
	svc := newTestService(t, studentSnapshot(), live, ref)

	response, err := svc.ForStudent(context.Background(), "Ana Souza")

	require.NoError(t, err)
	cells := response.Escalas[0].Cells
	assert.Equal(t, escala.CellAbsence, cells[0].Status)
	assert.Equal(t, "07h-13h", cells[0].RawText)
}

func TestEscalaService_HourBank_TotalsAcrossSchedules(t *testing.T) {
	snapshot := studentSnapshot()
	snapshot.Escalas = append(snapshot.Escalas, escala.Escala{
		Name: "Escala2",
		Days: []string{"08/01"},
		People: []escala.Person{
			{Name: "ana souza", Cells: map[string]string{"08/01": "13h-19h"}},
		},
	})
	ref := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, snapshot, &fakeLive{}, ref)

	bank, err := svc.HourBank(context.Background(), "Ana Souza")

	require.NoError(t, err)
	assert.InDelta(t, 18, bank.HoursOwed, 0.001)
	assert.InDelta(t, 12, bank.HoursWorked, 0.001)
}

func TestEscalaService_Roster_InvalidDate(t *testing.T) {
	ref := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, studentSnapshot(), &fakeLive{}, ref)

	_, err := svc.Roster(context.Background(), "amanhã")

	assert.ErrorIs(t, err, escala.ErrInvalidDate)
}

func TestEscalaService_Roster_AcceptsBrazilianDateSpelling(t *testing.T) {
	ref := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc := newTestService(t, studentSnapshot(), &fakeLive{}, ref)

	roster, err := svc.Roster(context.Background(), "05/01/2026")

	require.NoError(t, err)
	assert.Equal(t, "2026-01-05", roster.Date)
	require.Len(t, roster.Entries, 1)
	assert.Equal(t, "Ana Souza", roster.Entries[0].Name)
}
