package ponto

import "context"

// PontoService defines business logic for attendance reconciliation
type PontoService interface {
	// Dataset reconciles the roster with the recorded swipes for one
	// date and duty group and classifies every resulting row.
	Dataset(ctx context.Context, req DatasetRequest) (DatasetResponse, error)

	// Refresh re-fetches one date/group partition from the data source.
	// With Force set, the partition is rebuilt instead of merged.
	Refresh(ctx context.Context, req RefreshRequest) error

	// RefreshToday pulls the live snapshot for the current date. Used
	// by the background scheduler.
	RefreshToday(ctx context.Context) error

	// Dates lists the dates with cached attendance data.
	Dates(ctx context.Context) (DatesResponse, error)
}
