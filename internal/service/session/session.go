package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hcfisio/ponto-backend-go/internal/domain/aluno"
	"github.com/hcfisio/ponto-backend-go/internal/domain/escala"
	"github.com/hcfisio/ponto-backend-go/internal/repository/sheets"
)

// Session owns the bulk snapshot for one server run: the student
// roster, the schedule definitions and the absence/makeup ledger.
// Loaded once at startup, replaced wholesale on Reload. Every service
// reads through it instead of holding ambient package state.
type Session struct {
	mu       sync.RWMutex
	client   sheets.Client
	snapshot sheets.Snapshot
	loadedAt time.Time
}

func New(client sheets.Client) *Session {
	return &Session{client: client}
}

// Load fetches the bulk payload and replaces the current snapshot.
// A fetch failure leaves the previous snapshot untouched.
func (s *Session) Load(ctx context.Context) error {
	snapshot, err := s.client.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session snapshot: %w", err)
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.loadedAt = time.Now()
	s.mu.Unlock()

	slog.Info("Session snapshot loaded",
		"snapshot_id", snapshot.ID,
		"alunos", len(snapshot.Alunos),
		"escalas", len(snapshot.Escalas),
		"ausencias", len(snapshot.Ausencias),
		"ponto_rows", len(snapshot.Ponto))
	return nil
}

// Reload is Load under its lifecycle name: invoked on forced refresh.
func (s *Session) Reload(ctx context.Context) error {
	return s.Load(ctx)
}

// Snapshot returns the current snapshot. The contents are immutable by
// convention; callers must not mutate the returned slices.
func (s *Session) Snapshot() sheets.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Session) Alunos() []aluno.Aluno {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Alunos
}

func (s *Session) Escalas() []escala.Escala {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Escalas
}

func (s *Session) Ausencias() []escala.AbsenceMakeup {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Ausencias
}

func (s *Session) NotasTeoricas() []aluno.TheoryGrades {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.NotasTeoricas
}

func (s *Session) NotasPraticas() []aluno.PracticeGrade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.NotasPraticas
}

func (s *Session) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
