package main

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/pro-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/pro-scheduler/internal/db"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/pro-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/pro-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/pro-scheduler/internal/logger"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/pro-scheduler/internal/usecase/appointment"
)

const (
	demoEmail    = "demo@pro-scheduler.local"
	demoPassword = "demo123"
	clientCount  = 30
	bookingDays  = 14
)

var demoServices = []struct {
	name     string
	price    string
	duration int
}{
	{"Corte", "45.00", 30},
	{"Barba", "30.00", 30},
	{"Corte + Barba", "70.00", 60},
	{"Sobrancelha", "20.00", 15},
}

// seed cria um profissional de demonstração com serviços, expediente,
// clientes e reservas feitas pelo mesmo fluxo da API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Env).Named("seed")
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpkg.NewDB(ctx, cfg, log)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}

	gofakeit.Seed(time.Now().UnixNano())

	prof, err := seedProfessional(ctx, db)
	if err != nil {
		log.Fatal("seed professional", zap.Error(err))
	}
	log.Info("professional ready", zap.Uint("id", prof.ID), zap.String("email", demoEmail))

	services, err := seedServices(ctx, db, prof.ID)
	if err != nil {
		log.Fatal("seed services", zap.Error(err))
	}

	if err := seedWeeklyRules(ctx, db, prof.ID); err != nil {
		log.Fatal("seed weekly rules", zap.Error(err))
	}

	clients, err := seedClients(ctx, db, prof.ID, clientCount)
	if err != nil {
		log.Fatal("seed clients", zap.Error(err))
	}

	booked := seedBookings(ctx, db, log, prof, services, clients)
	log.Info("seed complete",
		zap.Int("services", len(services)),
		zap.Int("clients", len(clients)),
		zap.Int("appointments", booked),
	)
}

func seedProfessional(ctx context.Context, db *gorm.DB) (*models.Professional, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	prof := models.Professional{
		Name:         gofakeit.Name(),
		BusinessName: "Studio Demo",
		Email:        demoEmail,
		PasswordHash: string(hash),
		City:         "São Paulo",
		Timezone:     timezone.DefaultTimezone,
	}

	err = db.WithContext(ctx).
		Where(models.Professional{Email: demoEmail}).
		FirstOrCreate(&prof).Error
	return &prof, err
}

func seedServices(ctx context.Context, db *gorm.DB, professionalID uint) ([]models.Service, error) {
	out := make([]models.Service, 0, len(demoServices))
	for _, s := range demoServices {
		svc := models.Service{
			ProfessionalID: professionalID,
			Name:           s.name,
			Price:          decimal.RequireFromString(s.price),
			DurationMin:    s.duration,
			Active:         true,
		}
		err := db.WithContext(ctx).
			Where(models.Service{ProfessionalID: professionalID, Name: s.name}).
			FirstOrCreate(&svc).Error
		if err != nil {
			return nil, err
		}
		out = append(out, svc)
	}
	return out, nil
}

// Segunda a sexta 09:00-18:00, sábado 09:00-13:00.
func seedWeeklyRules(ctx context.Context, db *gorm.DB, professionalID uint) error {
	rules := make([]models.WeeklyRule, 0, 6)
	for wd := time.Monday; wd <= time.Friday; wd++ {
		rules = append(rules, models.WeeklyRule{
			ProfessionalID: professionalID,
			Weekday:        int(wd),
			StartTime:      "09:00",
			EndTime:        "18:00",
		})
	}
	rules = append(rules, models.WeeklyRule{
		ProfessionalID: professionalID,
		Weekday:        int(time.Saturday),
		StartTime:      "09:00",
		EndTime:        "13:00",
	})

	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "professional_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "updated_at"}),
		}).
		Create(&rules).Error
}

func seedClients(ctx context.Context, db *gorm.DB, professionalID uint, n int) ([]models.Client, error) {
	clients := make([]models.Client, 0, n)
	for i := 0; i < n; i++ {
		clients = append(clients, models.Client{
			ProfessionalID: professionalID,
			Name:           gofakeit.Name(),
			Email:          fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Phone:          fmt.Sprintf("55119%08d", gofakeit.Number(0, 99999999)),
		})
	}
	if err := db.WithContext(ctx).CreateInBatches(&clients, 100).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// seedBookings passa pelo CreateBooking: horário ocupado ou fora do expediente
// é simplesmente pulado.
func seedBookings(
	ctx context.Context,
	db *gorm.DB,
	log *zap.Logger,
	prof *models.Professional,
	services []models.Service,
	clients []models.Client,
) int {
	repo := repository.NewAppointmentGormRepository(db)
	create := ucAppointment.NewCreateBooking(repo, lock.NewMemoryLocker(time.Second), nil, nil, nil, log)

	who := identity.Identity{ProfessionalID: prof.ID, Role: "owner"}
	loc := timezone.Location(prof.Timezone)
	today := time.Now().In(loc)

	booked := 0
	for day := 1; day <= bookingDays; day++ {
		date := today.AddDate(0, 0, day)
		for i := 0; i < gofakeit.Number(2, 6); i++ {
			hour := gofakeit.Number(9, 17)
			minute := []int{0, 30}[gofakeit.Number(0, 1)]

			_, err := create.Execute(ctx, ucAppointment.CreateBookingInput{
				ProfessionalID: prof.ID,
				ClientID:       clients[gofakeit.Number(0, len(clients)-1)].ID,
				ServiceID:      services[gofakeit.Number(0, len(services)-1)].ID,
				StartTime:      fmt.Sprintf("%s %02d:%02d", date.Format("2006-01-02"), hour, minute),
				PaymentOption:  "in_person",
				Actor:          &who,
			})
			if err != nil {
				log.Debug("booking skipped", zap.Error(err))
				continue
			}
			booked++
		}
	}
	return booked
}
