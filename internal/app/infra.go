package app

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	"github.com/BruksfildServices01/pro-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/pro-scheduler/internal/db"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/pro-scheduler/internal/infra/payment"
	"github.com/BruksfildServices01/pro-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/pro-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/pro-scheduler/internal/notify"
)

const webhookPath = "/api/webhooks/mercadopago"

// Infra reúne as dependências compartilhadas pela API e pelo worker.
// Campos opcionais ficam nil quando a configuração não os liga.
type Infra struct {
	DB       *gorm.DB
	Repo     *repository.AppointmentGormRepository
	Redis    *redis.Client
	Locker   domain.Locker
	Gateway  domain.PaymentGateway
	Store    storage.ObjectStore
	Notifier *notify.Dispatcher
	Audit    *audit.Dispatcher

	closers []func()
}

// NewInfra conecta banco e Redis, aplica migrações e monta os colaboradores.
// publishToQueue=false força entrega direta mesmo com AMQP configurado (worker).
func NewInfra(ctx context.Context, cfg *config.Config, log *zap.Logger, publishToQueue bool) (*Infra, error) {
	db, err := dbpkg.NewDB(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	in := &Infra{
		DB:   db,
		Repo: repository.NewAppointmentGormRepository(db),
	}
	in.onClose(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	// --------------------------------------------------
	// Lock de reserva
	// --------------------------------------------------
	if cfg.RedisAddr != "" {
		rdb, err := lock.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			in.Close()
			return nil, err
		}
		in.Redis = rdb
		in.Locker = lock.NewRedisLocker(rdb, cfg.LockTTL, log)
		in.onClose(func() { _ = rdb.Close() })
		log.Info("booking lock: redis", zap.String("addr", cfg.RedisAddr))
	} else {
		in.Locker = lock.NewMemoryLocker(cfg.LockTTL)
		log.Info("booking lock: in-process")
	}

	// --------------------------------------------------
	// Gateway de pagamento
	// --------------------------------------------------
	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoAccessToken, cfg.PublicBaseURL+webhookPath)
		if err != nil {
			in.Close()
			return nil, err
		}
		in.Gateway = mp
	} else {
		log.Info("mercadopago disabled: online payments use static pix")
	}

	// --------------------------------------------------
	// Uploads
	// --------------------------------------------------
	if cfg.S3Bucket != "" {
		in.Store = storage.NewS3Store(storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
	}

	// --------------------------------------------------
	// Auditoria + notificações
	// --------------------------------------------------
	in.Audit = audit.NewDispatcher(audit.New(db), log.Named("audit"))

	publisher, closePublisher, err := newPublisher(cfg, in.Repo, log, publishToQueue)
	if err != nil {
		in.Audit.Close()
		in.Close()
		return nil, err
	}
	in.Notifier = notify.NewDispatcher(publisher, log.Named("notify"))

	// ordem de fechamento: drena filas antes de soltar conexões
	in.closers = append([]func(){
		in.Notifier.Close,
		closePublisher,
		in.Audit.Close,
	}, in.closers...)

	return in, nil
}

// NewDeliverer monta a entrega via Telegram; nil quando não há token.
func NewDeliverer(cfg *config.Config, repo *repository.AppointmentGormRepository, log *zap.Logger) (*notify.Deliverer, error) {
	if cfg.TelegramBotToken == "" {
		return nil, nil
	}
	sender, err := notify.NewTelegramSender(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return notify.NewDeliverer(repo, sender, log.Named("telegram")), nil
}

func newPublisher(
	cfg *config.Config,
	repo *repository.AppointmentGormRepository,
	log *zap.Logger,
	publishToQueue bool,
) (notify.Publisher, func(), error) {

	if publishToQueue && cfg.AMQPUrl != "" {
		pub, err := notify.NewAMQPPublisher(cfg.AMQPUrl, cfg.NotificationQueue)
		if err != nil {
			return nil, nil, err
		}
		log.Info("notifications: amqp", zap.String("queue", cfg.NotificationQueue))
		return pub, func() { _ = pub.Close() }, nil
	}

	deliverer, err := NewDeliverer(cfg, repo, log)
	if err != nil {
		return nil, nil, err
	}
	if deliverer != nil {
		log.Info("notifications: telegram direct")
		return notify.NewDirectPublisher(deliverer), func() {}, nil
	}

	log.Info("notifications: log only")
	return notify.NewLogPublisher(log.Named("notify")), func() {}, nil
}

func (in *Infra) onClose(fn func()) {
	in.closers = append(in.closers, fn)
}

// Close libera tudo na ordem de registro.
func (in *Infra) Close() {
	for _, fn := range in.closers {
		fn()
	}
	in.closers = nil
}
