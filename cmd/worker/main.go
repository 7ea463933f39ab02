package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/pro-scheduler/internal/app"
	"github.com/BruksfildServices01/pro-scheduler/internal/config"
	"github.com/BruksfildServices01/pro-scheduler/internal/logger"
	"github.com/BruksfildServices01/pro-scheduler/internal/notify"
	ucAppointment "github.com/BruksfildServices01/pro-scheduler/internal/usecase/appointment"
)

// worker roda fora da API: varredura de reservas não pagas e consumo da fila
// de notificações.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Env).Named("worker")
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// notificações geradas pela varredura saem direto, sem voltar para a fila
	in, err := app.NewInfra(ctx, cfg, log, false)
	if err != nil {
		log.Fatal("worker init", zap.Error(err))
	}
	defer in.Close()

	cancelUnpaid := ucAppointment.NewCancelUnpaid(
		in.Repo,
		in.Notifier,
		in.Audit,
		log.Named("sweep"),
		cfg.UnpaidBookingTTL,
	)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.NewSweeper(cancelUnpaid, cfg.SweepInterval, log.Named("sweep")).Run(ctx)
	}()

	if cfg.AMQPUrl != "" {
		deliverer, err := app.NewDeliverer(cfg, in.Repo, log)
		if err != nil {
			log.Fatal("telegram init", zap.Error(err))
		}

		if deliverer == nil {
			log.Warn("AMQP_URL set without TELEGRAM_BOT_TOKEN: queue will not be consumed")
		} else {
			wg.Add(1)
			go func() {
				defer wg.Done()
				consumer := notify.NewConsumer(deliverer, log.Named("consumer"))
				if err := consumer.Run(ctx, cfg.AMQPUrl, cfg.NotificationQueue); err != nil {
					log.Error("notification consumer stopped", zap.Error(err))
				}
			}()
		}
	}

	wg.Wait()
	log.Info("worker stopped")
}
