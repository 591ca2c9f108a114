package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type sessaoSweeperRepo interface {
	DeleteExpiradas(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper remove periodicamente as sessões expiradas. Roda desacoplado do
// atendimento de requisições: falhas são logadas e suprimidas, uma varredura
// que falhou não impede a próxima.
type Sweeper struct {
	sessoes  sessaoSweeperRepo
	interval time.Duration
	logger   zerolog.Logger

	once   sync.Once
	cancel context.CancelFunc
}

// NewSweeper cria o varredor com o intervalo configurado.
func NewSweeper(sessoes sessaoSweeperRepo, interval time.Duration, logger zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{sessoes: sessoes, interval: interval, logger: logger}
}

// Start inicia o loop periódico. Chamadas repetidas são no-op.
func (s *Sweeper) Start(parent context.Context) {
	s.once.Do(func() {
		ctx, cancel := context.WithCancel(parent)
		s.cancel = cancel
		go s.runLoop(ctx)
	})
}

// Stop encerra o loop periódico.
func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Sweeper) runLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("sweeper: loop iniciado")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("sweeper: loop encerrado")
			return
		case <-ticker.C:
			if err := s.RunOnce(ctx); err != nil {
				s.logger.Error().Err(err).Msg("sweeper: varredura falhou")
			}
		}
	}
}

// RunOnce executa uma varredura imediata e loga quantas sessões caíram.
// Rodar duas vezes seguidas é seguro: a segunda só não remove nada.
func (s *Sweeper) RunOnce(ctx context.Context) error {
	removed, err := s.sessoes.DeleteExpiradas(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	s.logger.Info().Int64("removed", removed).Msg("sweeper: sessões expiradas removidas")
	return nil
}
