package ponto

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/domain/ponto"
	"github.com/hcfisio/ponto-backend-go/internal/pkg/normalize"
	"github.com/hcfisio/ponto-backend-go/internal/repository/sheets"
)

type PontoServiceImpl struct {
	cache     *Cache
	client    sheets.Client
	escalaSvc escala.EscalaService

	lateThreshold     int
	expectedHeadcount int

	// inFlight is advisory only: overlapping refresh cycles log a
	// warning and proceed, last writer wins.
	inFlight atomic.Bool

	mu          sync.Mutex
	knownDates  map[string]bool
	lastUpdated string
}

func NewPontoService(cache *Cache, client sheets.Client, escalaSvc escala.EscalaService, lateThreshold, expectedHeadcount int) *PontoServiceImpl {
	return &PontoServiceImpl{
		cache:             cache,
		client:            client,
		escalaSvc:         escalaSvc,
		lateThreshold:     lateThreshold,
		expectedHeadcount: expectedHeadcount,
		knownDates:        map[string]bool{},
	}
}

// Seed preloads the cache with attendance rows from the bulk snapshot,
// partitioned by their own dates.
func (s *PontoServiceImpl) Seed(records []ponto.Record) {
	byDate := map[string][]ponto.Record{}
	for _, record := range records {
		byDate[record.ISODate] = append(byDate[record.ISODate], record)
	}
	for date, rows := range byDate {
		s.cache.Put(date, ponto.EscalaKeyAll, rows, Merge)
		s.noteDate(date)
	}
}

// Dataset implements ponto.PontoService. It is the core fusion step:
// everyone scheduled for the date, shown with their real swipe when
// one exists, shown absent otherwise.
func (s *PontoServiceImpl) Dataset(ctx context.Context, req ponto.DatasetRequest) (ponto.DatasetResponse, error) {
	date, escalaLabel, escalaKey, err := resolveSelection(req.Date, req.Escala)
	if err != nil {
		return ponto.DatasetResponse{}, err
	}

	if !s.cache.Has(date, escalaKey) {
		if err := s.fetchInto(ctx, date, escalaLabel, escalaKey, Merge); err != nil {
			return ponto.DatasetResponse{}, err
		}
	}
	cached := s.cache.Get(date, escalaKey)

	roster, err := s.escalaSvc.Roster(ctx, date)
	if err != nil {
		return ponto.DatasetResponse{}, fmt.Errorf("failed to build roster for %s: %w", date, err)
	}
	shells := rosterShells(roster.Entries, date, escalaKey)

	// Precedence rule: real attendance data overrides the synthetic
	// roster shell on a key collision. Shells go first, cached rows
	// second; the merge keeps the latest write per key.
	merged := mergeRecords(shells, cached)
	if len(merged) == 0 {
		return ponto.DatasetResponse{}, fmt.Errorf("%w: %s", ponto.ErrNoDataForDate, date)
	}
	rows := classifyRows(merged, s.lateThreshold)

	return ponto.DatasetResponse{
		Date:        date,
		Escala:      escalaLabel,
		Rows:        rows,
		RosterSize:  len(roster.Entries),
		Summary:     summarize(rows, len(roster.Entries), s.expectedHeadcount),
		LastUpdated: s.LastUpdated(),
	}, nil
}

// Refresh implements ponto.PontoService.
func (s *PontoServiceImpl) Refresh(ctx context.Context, req ponto.RefreshRequest) error {
	date, escalaLabel, escalaKey, err := resolveSelection(req.Date, req.Escala)
	if err != nil {
		return err
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		slog.Warn("Overlapping attendance refresh, proceeding anyway (last writer wins)",
			"date", date, "escala", escalaLabel)
	} else {
		defer s.inFlight.Store(false)
	}

	mode := Merge
	if req.Force {
		mode = Replace
	}
	return s.fetchInto(ctx, date, escalaLabel, escalaKey, mode)
}

// RefreshToday implements ponto.PontoService.
func (s *PontoServiceImpl) RefreshToday(ctx context.Context) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		slog.Warn("Overlapping attendance refresh, proceeding anyway (last writer wins)")
	} else {
		defer s.inFlight.Store(false)
	}

	payload, err := s.client.FetchToday(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch today's attendance: %w", err)
	}
	date := payload.SelectedDate
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	s.absorb(date, ponto.EscalaKeyAll, payload, Merge)
	slog.Info("Refreshed today's attendance", "cycle_id", uuid.NewString()[:8], "date", date, "rows", len(payload.Records))
	return nil
}

// Dates implements ponto.PontoService.
func (s *PontoServiceImpl) Dates(ctx context.Context) (ponto.DatesResponse, error) {
	seen := map[string]bool{}
	var dates []string
	for _, date := range s.cache.Dates() {
		if !seen[date] {
			seen[date] = true
			dates = append(dates, date)
		}
	}
	s.mu.Lock()
	for date := range s.knownDates {
		if !seen[date] {
			seen[date] = true
			dates = append(dates, date)
		}
	}
	s.mu.Unlock()
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	byDate := map[string][]string{}
	for _, date := range dates {
		if escalas := s.cache.EscalasFor(date); len(escalas) > 0 {
			byDate[date] = escalas
		}
	}
	return ponto.DatesResponse{
		Dates:         dates,
		EscalasByDate: byDate,
		LastUpdated:   s.LastUpdated(),
	}, nil
}

// LastUpdated returns the most recent data-source timestamp seen.
func (s *PontoServiceImpl) LastUpdated() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUpdated
}

func (s *PontoServiceImpl) fetchInto(ctx context.Context, date, escalaLabel, escalaKey string, mode PutMode) error {
	payload, err := s.client.FetchDay(ctx, date, escalaLabel)
	if err != nil {
		return fmt.Errorf("failed to fetch attendance for %s: %w", date, err)
	}
	s.absorb(date, escalaKey, payload, mode)
	return nil
}

// absorb folds a day payload into the cache and the envelope-derived
// bookkeeping (known dates, last-updated timestamp).
func (s *PontoServiceImpl) absorb(date, escalaKey string, payload sheets.DayPayload, mode PutMode) {
	s.cache.Put(date, escalaKey, payload.Records, mode)
	s.noteDate(date)

	s.mu.Lock()
	for _, known := range payload.Dates {
		s.knownDates[known] = true
	}
	if payload.LastUpdated != "" {
		s.lastUpdated = payload.LastUpdated
	}
	s.mu.Unlock()
}

func (s *PontoServiceImpl) noteDate(date string) {
	s.mu.Lock()
	s.knownDates[date] = true
	s.mu.Unlock()
}

// rosterShells converts roster entries into synthetic attendance
// records with no clock readings, filtered by the requested group.
func rosterShells(entries []escala.RosterEntry, date, escalaKey string) []ponto.Record {
	var shells []ponto.Record
	for _, entry := range entries {
		entryKey := escalaKeyOf(entry.EscalaName)
		if escalaKey != ponto.EscalaKeyAll && entryKey != escalaKey {
			continue
		}
		shells = append(shells, ponto.Record{
			ID:             entry.Identity.Canonical,
			Name:           entry.Name,
			NameKey:        normalize.Fold(entry.Name),
			RawSerial:      entry.Serial,
			SerialKey:      normalize.Fold(entry.Serial),
			Email:          entry.Email,
			EmailKey:       normalize.Fold(entry.Email),
			ISODate:        date,
			Escala:         entry.EscalaName,
			EscalaKey:      entryKey,
			Modalidade:     entry.Modalidade,
			EntradaMinutes: ponto.NoEntry,
			Synthetic:      true,
		})
	}
	return shells
}

func escalaKeyOf(label string) string {
	if label == "" || label == ponto.EscalaKeyAll {
		return ponto.EscalaKeyAll
	}
	folded := normalize.Fold(label)
	if folded == "" {
		return ponto.EscalaKeyAll
	}
	return folded
}

// resolveSelection normalizes the requested date and duty group. An
// empty date means today; an empty group means every escala.
func resolveSelection(date, escalaLabel string) (iso, label, key string, err error) {
	if date == "" {
		iso = time.Now().Format("2006-01-02")
	} else {
		iso = normalize.NormalizeDate(date)
		if iso == "" {
			return "", "", "", fmt.Errorf("%w: %q", ponto.ErrInvalidDate, date)
		}
	}
	label = escalaLabel
	if label == "" {
		label = ponto.EscalaKeyAll
	}
	return iso, label, escalaKeyOf(label), nil
}
