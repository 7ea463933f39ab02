package appointment

import (
	"context"

	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/dto"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	who identity.Identity,
	date string,
) ([]dto.AppointmentListDTO, error) {

	_, loc, err := loadProfessional(ctx, uc.repo, who.ProfessionalID)
	if err != nil {
		return nil, err
	}

	start, err := calendar.ParseDate(date, loc)
	if err != nil {
		return nil, httperr.ValidationErr("invalid_date_or_time")
	}
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointments(ctx, who.ProfessionalID, domain.ListFilter{
		From: &start,
		To:   &end,
	})
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments, loc), nil
}
