package calendar

import (
	"context"

	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

// Store dá ao gerador de horários uma consulta uniforme sobre regras e exceções.
// As buscas devolvem (nil, nil) quando não há registro.
type Store interface {
	GetWeeklyRule(
		ctx context.Context,
		professionalID uint,
		weekday int,
	) (*models.WeeklyRule, error)

	ListWeeklyRules(
		ctx context.Context,
		professionalID uint,
	) ([]models.WeeklyRule, error)

	// ReplaceWeeklyRules apaga todas as regras e grava a lista nova, atomicamente.
	ReplaceWeeklyRules(
		ctx context.Context,
		professionalID uint,
		rules []models.WeeklyRule,
	) error

	GetException(
		ctx context.Context,
		professionalID uint,
		date string,
	) (*models.ScheduleException, error)

	ListExceptions(
		ctx context.Context,
		professionalID uint,
		from string,
		to string,
	) ([]models.ScheduleException, error)

	CreateException(
		ctx context.Context,
		ex *models.ScheduleException,
	) error

	GetExceptionByID(
		ctx context.Context,
		id uint,
	) (*models.ScheduleException, error)

	DeleteException(
		ctx context.Context,
		id uint,
	) error
}
