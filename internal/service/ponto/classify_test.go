package ponto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hcfisio/ponto-backend-go/internal/domain/ponto"
)

func TestClassifyRows_BaselineIsEarliestArrival(t *testing.T) {
	date := "2026-01-05"
	records := []ponto.Record{
		record("ana", date, "escala1", "08:00"),
		record("bia", date, "escala1", "08:05"),
		record("caio", date, "escala1", "08:30"),
	}

	rows := classifyRows(records, 10)

	require.Len(t, rows, 3)
	assert.Equal(t, ponto.StatusPresent, rows[0].Status)
	assert.Equal(t, 0, rows[0].DelayMinutes)
	assert.Equal(t, ponto.StatusPresent, rows[1].Status)
	assert.Equal(t, 5, rows[1].DelayMinutes)
	assert.Equal(t, ponto.StatusLate, rows[2].Status)
	assert.Equal(t, 30, rows[2].DelayMinutes)
}

func TestClassifyRows_BaselinePerGroup(t *testing.T) {
	date := "2026-01-05"
	records := []ponto.Record{
		record("ana", date, "escala1", "07:00"),
		// Afternoon group starts hours later; its own baseline applies
		record("bia", date, "escala2", "13:00"),
		record("caio", date, "escala2", "13:08"),
	}

	rows := classifyRows(records, 10)

	require.Len(t, rows, 3)
	assert.Equal(t, ponto.StatusPresent, rows[1].Status)
	assert.Equal(t, 0, rows[1].DelayMinutes)
	assert.Equal(t, ponto.StatusPresent, rows[2].Status)
	assert.Equal(t, 8, rows[2].DelayMinutes)
}

func TestClassifyRows_NoEntryIsAbsent(t *testing.T) {
	date := "2026-01-05"
	records := []ponto.Record{
		record("ana", date, "escala1", "08:00"),
		record("bia", date, "escala1", ""),
	}

	rows := classifyRows(records, 10)

	require.Len(t, rows, 2)
	assert.Equal(t, ponto.StatusAbsent, rows[1].Status)
	assert.Equal(t, 0, rows[1].DelayMinutes)
}

func TestClassifyRows_ExactThresholdIsNotLate(t *testing.T) {
	date := "2026-01-05"
	records := []ponto.Record{
		record("ana", date, "escala1", "08:00"),
		record("bia", date, "escala1", "08:10"),
	}

	rows := classifyRows(records, 10)

	assert.Equal(t, ponto.StatusPresent, rows[1].Status)
	assert.Equal(t, 10, rows[1].DelayMinutes)
}

func TestSummarize_PresentIncludesLate(t *testing.T) {
	date := "2026-01-05"
	rows := classifyRows([]ponto.Record{
		record("ana", date, "escala1", "08:00"),
		record("bia", date, "escala1", "08:30"),
		record("caio", date, "escala1", ""),
	}, 10)

	summary := summarize(rows, 0, 0)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.Absent)
}

func TestSummarize_TotalFloorsAtRosterAndHeadcount(t *testing.T) {
	date := "2026-01-05"
	rows := classifyRows([]ponto.Record{
		record("ana", date, "escala1", "08:00"),
	}, 10)

	assert.Equal(t, 3, summarize(rows, 3, 0).Total, "roster size floors the total")
	assert.Equal(t, 25, summarize(rows, 3, 25).Total, "expected headcount floors the total")
	assert.Equal(t, 1, summarize(rows, 0, 0).Total)
}
