package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// --------------------------------------------------
// Weekly rules
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWeeklyRule(
	ctx context.Context,
	professionalID uint,
	weekday int,
) (*models.WeeklyRule, error) {

	var rule models.WeeklyRule
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND weekday = ?", professionalID, weekday).
		First(&rule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *AppointmentGormRepository) ListWeeklyRules(
	ctx context.Context,
	professionalID uint,
) ([]models.WeeklyRule, error) {

	var rules []models.WeeklyRule
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("weekday ASC").
		Find(&rules).Error
	return rules, err
}

func (r *AppointmentGormRepository) ReplaceWeeklyRules(
	ctx context.Context,
	professionalID uint,
	rules []models.WeeklyRule,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("professional_id = ?", professionalID).
			Delete(&models.WeeklyRule{}).Error; err != nil {
			return err
		}

		if len(rules) == 0 {
			return nil
		}

		for i := range rules {
			rules[i].ID = 0
			rules[i].ProfessionalID = professionalID
		}
		return tx.Create(&rules).Error
	})
}

// --------------------------------------------------
// Exceptions
// --------------------------------------------------

// GetException devolve a exceção mais recente da data.
func (r *AppointmentGormRepository) GetException(
	ctx context.Context,
	professionalID uint,
	date string,
) (*models.ScheduleException, error) {

	var ex models.ScheduleException
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND date = ?", professionalID, date).
		Order("id DESC").
		First(&ex).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ex, nil
}

func (r *AppointmentGormRepository) ListExceptions(
	ctx context.Context,
	professionalID uint,
	from string,
	to string,
) ([]models.ScheduleException, error) {

	q := r.db.WithContext(ctx).Where("professional_id = ?", professionalID)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var out []models.ScheduleException
	err := q.Order("date DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *AppointmentGormRepository) CreateException(
	ctx context.Context,
	ex *models.ScheduleException,
) error {
	return r.db.WithContext(ctx).Create(ex).Error
}

func (r *AppointmentGormRepository) GetExceptionByID(
	ctx context.Context,
	id uint,
) (*models.ScheduleException, error) {

	var ex models.ScheduleException
	if err := r.db.WithContext(ctx).First(&ex, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &ex, nil
}

func (r *AppointmentGormRepository) DeleteException(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.ScheduleException{}, id).Error
}

var _ calendar.Store = (*AppointmentGormRepository)(nil)
