package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type stubSweeperRepo struct {
	mu        sync.Mutex
	expiradas int64
	calls     int
	err       error
}

func (s *stubSweeperRepo) DeleteExpiradas(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	removed := s.expiradas
	s.expiradas = 0
	return removed, nil
}

func (s *stubSweeperRepo) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestRunOnceIdempotente(t *testing.T) {
	repo := &stubSweeperRepo{expiradas: 3}
	sw := NewSweeper(repo, time.Hour, zerolog.Nop())

	if err := sw.RunOnce(context.Background()); err != nil {
		t.Fatalf("primeira varredura: %v", err)
	}

	// segunda varredura imediata: nada a remover, nenhum erro
	if err := sw.RunOnce(context.Background()); err != nil {
		t.Fatalf("segunda varredura: %v", err)
	}
	if got := repo.callCount(); got != 2 {
		t.Fatalf("chamadas = %d, esperado 2", got)
	}
}

func TestRunOncePropagatesError(t *testing.T) {
	repo := &stubSweeperRepo{err: errors.New("mongo fora do ar")}
	sw := NewSweeper(repo, time.Hour, zerolog.Nop())

	if err := sw.RunOnce(context.Background()); err == nil {
		t.Fatal("falha do armazenamento deveria ser reportada ao loop")
	}
}

func TestStartIsOnceAndStops(t *testing.T) {
	repo := &stubSweeperRepo{}
	sw := NewSweeper(repo, 5*time.Millisecond, zerolog.Nop())

	ctx := context.Background()
	sw.Start(ctx)
	sw.Start(ctx) // segundo start é no-op

	deadline := time.After(time.Second)
	for repo.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("loop não varreu dentro do prazo")
		case <-time.After(time.Millisecond):
		}
	}

	sw.Stop()
	afterStop := repo.callCount()
	time.Sleep(30 * time.Millisecond)
	// tolera uma varredura já em voo no momento do cancelamento
	if repo.callCount() > afterStop+1 {
		t.Fatalf("loop continuou após Stop: %d > %d", repo.callCount(), afterStop+1)
	}
}

func TestLoopSurvivesFailures(t *testing.T) {
	repo := &stubSweeperRepo{err: errors.New("indisponível")}
	sw := NewSweeper(repo, 5*time.Millisecond, zerolog.Nop())

	sw.Start(context.Background())
	defer sw.Stop()

	deadline := time.After(time.Second)
	for repo.callCount() < 2 {
		select {
		case <-deadline:
			t.Fatal("varredura com falha deveria continuar agendada")
		case <-time.After(time.Millisecond):
		}
	}
}
