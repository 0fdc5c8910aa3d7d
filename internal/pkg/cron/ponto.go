package cron

import (
	"context"
	"time"

	"github.com/hcfisio/ponto-backend-go/internal/domain/ponto"
	"github.com/hcfisio/ponto-backend-go/internal/service/session"
)

// PontoJobs contains attendance-related cron jobs
type PontoJobs struct {
	pontoService    ponto.PontoService
	session         *session.Session
	refreshInterval time.Duration
}

// NewPontoJobs creates attendance cron jobs
func NewPontoJobs(pontoService ponto.PontoService, sess *session.Session, refreshInterval time.Duration) *PontoJobs {
	return &PontoJobs{
		pontoService:    pontoService,
		session:         sess,
		refreshInterval: refreshInterval,
	}
}

// RegisterJobs registers all attendance-related cron jobs
func (j *PontoJobs) RegisterJobs(scheduler *Scheduler) {
	// Keep today's swipes fresh without waiting for a request
	scheduler.AddJob(
		"refresh_today_attendance",
		j.refreshInterval,
		j.RefreshToday,
	)

	// Reload the full sheet snapshot (rosters, ledgers, profiles) daily
	scheduler.AddJob(
		"reload_sheet_snapshot",
		24*time.Hour,
		j.ReloadSnapshot,
	)
}

// RefreshToday pulls the current day's swipe records from the sheet
func (j *PontoJobs) RefreshToday(ctx context.Context) error {
	return j.pontoService.RefreshToday(ctx)
}

// ReloadSnapshot re-fetches the whole workbook export
func (j *PontoJobs) ReloadSnapshot(ctx context.Context) error {
	return j.session.Reload(ctx)
}
