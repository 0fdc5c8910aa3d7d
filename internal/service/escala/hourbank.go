package escala

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/pkg/normalize"
)

var (
	hourSuffixRegex = regexp.MustCompile(`(\d{1,2})h(\d{2})?`)
	timeRangeRegex  = regexp.MustCompile(`(\d{1,2}):?(\d{0,2})\s*(?:-|às|as|a)\s*(\d{1,2}):?(\d{0,2})`)
)

// parseCellHours extracts a shift duration from a day cell's free
// text. Accepts H or H:MM on both sides of a dash or "às" ("07h-19h",
// "7:30 às 12", "19h-07h"); an end before the start wraps past
// midnight. Shifts spanning 11 to 13 hours are on-call duty (plantão).
func parseCellHours(rawText string) escala.CellHours {
	if strings.TrimSpace(rawText) == "" {
		return escala.CellHours{}
	}
	// "07h30" → "07:30", "07h" → "07:", stray "h" → ":00".
	normalized := strings.ToLower(rawText)
	normalized = hourSuffixRegex.ReplaceAllString(normalized, "${1}:${2}")
	normalized = strings.ReplaceAll(normalized, "h", ":00")

	match := timeRangeRegex.FindStringSubmatch(normalized)
	if match == nil {
		return escala.CellHours{}
	}

	startHour, err1 := strconv.Atoi(match[1])
	endHour, err2 := strconv.Atoi(match[3])
	if err1 != nil || err2 != nil {
		return escala.CellHours{}
	}
	startMin := minutesOrZero(match[2])
	endMin := minutesOrZero(match[4])

	diff := float64(endHour*60+endMin-startHour*60-startMin) / 60
	if diff < 0 {
		diff += 24
	}

	return escala.CellHours{
		Hours:  diff,
		Start:  fmt.Sprintf("%02d:%02d", startHour, startMin),
		End:    fmt.Sprintf("%02d:%02d", endHour, endMin),
		OnCall: diff >= 11 && diff <= 13,
	}
}

func minutesOrZero(s string) int {
	if s == "" {
		return 0
	}
	minutes, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return minutes
}

// classifyCell maps a day cell's text to a status key. Keyword checks
// run before the hour-based ones: an explicit absence or makeup note
// beats whatever time range the cell also carries.
func classifyCell(rawText string, hours escala.CellHours) escala.CellStatus {
	folded := normalize.Fold(rawText)
	if folded == "" {
		return escala.CellNone
	}
	switch {
	case strings.Contains(folded, "ausencia") || strings.Contains(folded, "falta"):
		return escala.CellAbsence
	case strings.Contains(folded, "reposi"):
		return escala.CellMakeup
	case strings.Contains(folded, "folga") || strings.Contains(folded, "descanso"):
		return escala.CellOff
	case strings.Contains(folded, "aula"):
		return escala.CellClass
	case hours.OnCall:
		return escala.CellOnCall
	default:
		// Any remaining non-empty text counts as generic presence,
		// with or without a parseable time range.
		return escala.CellPresence
	}
}

// computeBank walks one schedule's day cells and accumulates owed
// versus worked hours. Owed hours accumulate for every cell that is
// not off-duty or empty. Worked hours accumulate for the same cells
// unless the date is independently recorded as an absence without a
// matching makeup; a makeup performed on an originally-off day still
// credits that day's hours. The absence/makeup ledger overrides the
// cell's own text.
func computeBank(days []string, cells map[string]string, absent, makeup map[string]bool, ref time.Time) escala.HourBank {
	var bank escala.HourBank
	for _, day := range days {
		header := normalize.NormalizeDayMonth(day)
		date, ok := normalize.InferYear(header, ref)
		if !ok {
			continue
		}
		iso := normalize.FormatISO(date)

		rawText := cells[header]
		hours := parseCellHours(rawText)
		status := classifyCell(rawText, hours)
		if hours.Hours == 0 {
			continue
		}

		if status != escala.CellOff && status != escala.CellNone {
			bank.HoursOwed += hours.Hours
			if !absent[iso] || makeup[iso] {
				bank.HoursWorked += hours.Hours
			}
		} else if status == escala.CellOff && makeup[iso] {
			bank.HoursWorked += hours.Hours
		}
	}
	return bank
}

// buildDayCells resolves one schedule's day cells for presentation:
// inferred dates, classified statuses and the date-level ledger
// overrides (a recorded makeup beats a recorded absence beats the
// cell text).
func buildDayCells(days []string, cells map[string]string, absent, makeup map[string]bool, ref time.Time) []escala.DayCell {
	var out []escala.DayCell
	for _, day := range days {
		header := normalize.NormalizeDayMonth(day)
		date, ok := normalize.InferYear(header, ref)
		if !ok {
			continue
		}
		iso := normalize.FormatISO(date)

		rawText := cells[header]
		hours := parseCellHours(rawText)
		status := classifyCell(rawText, hours)
		switch {
		case makeup[iso]:
			status = escala.CellMakeup
		case absent[iso]:
			status = escala.CellAbsence
		}

		out = append(out, escala.DayCell{
			DayMonth: header,
			ISODate:  iso,
			RawText:  rawText,
			Status:   status,
			Hours:    hours,
		})
	}
	return out
}
