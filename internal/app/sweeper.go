package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// unpaidCanceler é o use case CancelUnpaid.
type unpaidCanceler interface {
	Execute(ctx context.Context) (int, error)
}

// Sweeper cancela periodicamente reservas não pagas. Roda uma vez ao subir e
// depois a cada intervalo até o contexto acabar.
type Sweeper struct {
	cancelUnpaid unpaidCanceler
	interval     time.Duration
	runTimeout   time.Duration
	log          *zap.Logger
}

func NewSweeper(cancelUnpaid unpaidCanceler, interval time.Duration, log *zap.Logger) *Sweeper {
	if log == nil {
		log = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		cancelUnpaid: cancelUnpaid,
		interval:     interval,
		runTimeout:   20 * time.Second,
		log:          log,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	s.log.Info("unpaid sweep started", zap.Duration("interval", s.interval))

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("unpaid sweep stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce devolve quantas reservas foram canceladas; erros só vão para o log.
func (s *Sweeper) RunOnce(ctx context.Context) int {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	start := time.Now()
	n, err := s.cancelUnpaid.Execute(runCtx)
	if err != nil {
		s.log.Error("unpaid sweep failed", zap.Error(err))
		return 0
	}

	if n > 0 {
		s.log.Info("unpaid sweep", zap.Int("canceled", n), zap.Duration("took", time.Since(start)))
	}
	return n
}
