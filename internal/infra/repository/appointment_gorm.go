package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// Nenhum serviço passa de um dia; agendamentos iniciados até 24h antes podem invadir a janela.
const maxServiceSpan = 24 * time.Hour

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &AppointmentGormRepository{db: tx})
	})
}

// LockProfessional usa advisory lock de transação; é liberado no commit/rollback.
func (r *AppointmentGormRepository) LockProfessional(
	ctx context.Context,
	professionalID uint,
) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?)", int64(professionalID)).
		Error
}

// --------------------------------------------------
// Professional
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	id uint,
) (*models.Professional, error) {

	var p models.Professional
	if err := r.db.WithContext(ctx).Preload("Plan").First(&p, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	professionalID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", serviceID, professionalID).
		First(&svc).Error; err != nil {
		return nil, notFound(err)
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) ListActiveServices(
	ctx context.Context,
	professionalID uint,
) ([]models.Service, error) {

	var out []models.Service
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND active = ?", professionalID, true).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) UpsertClientByEmail(
	ctx context.Context,
	professionalID uint,
	name string,
	email string,
	phone string,
) (*models.Client, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND lower(email) = ?", professionalID, email).
		First(&client).Error

	if err == nil {
		updates := map[string]any{}
		if name != "" && name != client.Name {
			updates["name"] = name
		}
		if phone != "" && phone != client.Phone {
			updates["phone"] = phone
		}
		if len(updates) > 0 {
			if err := r.db.WithContext(ctx).Model(&client).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		return &client, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		ProfessionalID: professionalID,
		Name:           name,
		Email:          email,
		Phone:          phone,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	professionalID uint,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", clientID, professionalID).
		First(&client).Error; err != nil {
		return nil, notFound(err)
	}
	return &client, nil
}

// --------------------------------------------------
// Pix
// --------------------------------------------------

func (r *AppointmentGormRepository) GetPixConfig(
	ctx context.Context,
	professionalID uint,
) (*models.PixConfig, error) {

	var cfg models.PixConfig
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CountAppointments(
	ctx context.Context,
	professionalID uint,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("professional_id = ?", professionalID).
		Count(&count).Error
	return count, err
}

// CreateAppointment traduz a violação do índice de início ativo em conflito de horário.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
	if httperr.IsUniqueViolation(err) || httperr.IsExclusionConflict(err) {
		return httperr.SlotConflictErr("time_conflict")
	}
	return err
}

func (r *AppointmentGormRepository) ListBlockingAppointments(
	ctx context.Context,
	professionalID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where(
			"professional_id = ? AND status IN ? AND start_time >= ? AND start_time < ?",
			professionalID,
			domain.BlockingStatusStrings(),
			start.Add(-maxServiceSpan),
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	out := apps[:0]
	for _, ap := range apps {
		if ap.EndTime().After(start) {
			out = append(out, ap)
		}
	}
	return out, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND professional_id = ?", appointmentID, professionalID).
		First(&ap).Error; err != nil {
		return nil, notFound(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&ap, appointmentID).Error; err != nil {
		return nil, notFound(err)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
	if httperr.IsUniqueViolation(err) || httperr.IsExclusionConflict(err) {
		return httperr.SlotConflictErr("time_conflict")
	}
	return err
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	professionalID uint,
	appointmentID uint,
) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", appointmentID, professionalID).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) CancelUnpaidBefore(
	ctx context.Context,
	cutoff time.Time,
	now time.Time,
) ([]models.Appointment, error) {

	unpaid := []string{
		string(domain.PaymentPending),
		string(domain.PaymentAwaitingPayment),
	}

	var ids []uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where(
				"status = ? AND payment_status IN ? AND created_at < ?",
				string(domain.StatusPending), unpaid, cutoff,
			).
			Pluck("id", &ids).Error; err != nil {
			return err
		}

		if len(ids) == 0 {
			return nil
		}

		return tx.
			Model(&models.Appointment{}).
			Where("id IN ? AND status = ?", ids, string(domain.StatusPending)).
			Updates(map[string]any{
				"status":      string(domain.StatusCanceled),
				"canceled_at": now,
			}).Error
	})
	if err != nil || len(ids) == 0 {
		return nil, err
	}

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id IN ?", ids).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	professionalID uint,
	f domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("professional_id = ?", professionalID)

	if f.From != nil {
		q = q.Where("start_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_time < ?", *f.To)
	}
	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.ServiceID != 0 {
		q = q.Where("service_id = ?", f.ServiceID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
