package ponto

import "github.com/hcfisio/ponto-backend-go/internal/domain/ponto"

// classifyRows computes a per-duty-group baseline and annotates each
// row with its presence verdict. The baseline is the earliest recorded
// clock-in within the group: published duty start times are
// unreliable, the group's actual first arrival is not. A row later
// than the baseline by more than threshold minutes is late.
func classifyRows(records []ponto.Record, threshold int) []ponto.Row {
	baselines := map[string]int{}
	for _, record := range records {
		if !record.HasEntry() {
			continue
		}
		current, found := baselines[record.EscalaKey]
		if !found || record.EntradaMinutes < current {
			baselines[record.EscalaKey] = record.EntradaMinutes
		}
	}

	rows := make([]ponto.Row, 0, len(records))
	for _, record := range records {
		row := ponto.Row{Record: record, Status: ponto.StatusAbsent}
		if record.HasEntry() {
			// The earliest arrival defines the baseline, so its own
			// delay is zero: a row cannot be late relative to itself.
			delay := record.EntradaMinutes - baselines[record.EscalaKey]
			if delay < 0 {
				delay = 0
			}
			row.DelayMinutes = delay
			if delay > threshold {
				row.Status = ponto.StatusLate
			} else {
				row.Status = ponto.StatusPresent
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// summarize counts verdicts for the dashboard KPIs. Present includes
// late arrivals; total never drops below the roster size or the
// configured expected headcount.
func summarize(rows []ponto.Row, rosterSize, expectedHeadcount int) ponto.Summary {
	summary := ponto.Summary{}
	for _, row := range rows {
		switch row.Status {
		case ponto.StatusLate:
			summary.Late++
			summary.Present++
		case ponto.StatusPresent:
			summary.Present++
		case ponto.StatusAbsent:
			summary.Absent++
		}
	}
	summary.Total = len(rows)
	if rosterSize > summary.Total {
		summary.Total = rosterSize
	}
	if expectedHeadcount > summary.Total {
		summary.Total = expectedHeadcount
	}
	return summary
}
