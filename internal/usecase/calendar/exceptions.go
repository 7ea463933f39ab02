package calendar

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

type ExceptionInput struct {
	Date      string  `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Reason    string  `json:"reason"`
}

type CreateException struct {
	store calendar.Store
	audit *audit.Dispatcher
}

func NewCreateException(store calendar.Store, audit *audit.Dispatcher) *CreateException {
	return &CreateException{store: store, audit: audit}
}

func (uc *CreateException) Execute(
	ctx context.Context,
	who identity.Identity,
	in ExceptionInput,
) (*models.ScheduleException, error) {

	ex := &models.ScheduleException{
		ProfessionalID: who.ProfessionalID,
		Date:           strings.TrimSpace(in.Date),
		StartTime:      in.StartTime,
		EndTime:        in.EndTime,
		Reason:         strings.TrimSpace(in.Reason),
	}

	if err := calendar.ValidateException(ex); err != nil {
		return nil, err
	}

	if !ex.BlocksWholeDay() {
		start, _ := calendar.ParseClock(*ex.StartTime)
		end, _ := calendar.ParseClock(*ex.EndTime)
		s, e := start.String(), end.String()
		ex.StartTime, ex.EndTime = &s, &e
	}

	if err := uc.store.CreateException(ctx, ex); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: who.ProfessionalID,
		ActorID:        who.ActorID(),
		Action:         audit.ActionExceptionCreated,
		Entity:         "schedule_exception",
		EntityID:       &ex.ID,
		Metadata:       map[string]any{"date": ex.Date, "blocks_day": ex.BlocksWholeDay()},
	})

	return ex, nil
}

type ListExceptions struct {
	store calendar.Store
}

func NewListExceptions(store calendar.Store) *ListExceptions {
	return &ListExceptions{store: store}
}

// Execute lista da data mais recente para a mais antiga; from/to são opcionais.
func (uc *ListExceptions) Execute(
	ctx context.Context,
	who identity.Identity,
	from string,
	to string,
) ([]models.ScheduleException, error) {

	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(calendar.DateLayout, d); err != nil {
			return nil, httperr.ValidationErr("invalid_date_or_time")
		}
	}

	out, err := uc.store.ListExceptions(ctx, who.ProfessionalID, from, to)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.ScheduleException{}
	}
	return out, nil
}

type DeleteException struct {
	store calendar.Store
	audit *audit.Dispatcher
}

func NewDeleteException(store calendar.Store, audit *audit.Dispatcher) *DeleteException {
	return &DeleteException{store: store, audit: audit}
}

// Execute só remove exceção do próprio profissional.
func (uc *DeleteException) Execute(
	ctx context.Context,
	who identity.Identity,
	id uint,
) error {

	ex, err := uc.store.GetExceptionByID(ctx, id)
	if errors.Is(err, calendar.ErrNotFound) {
		return httperr.NotFoundErr("exception_not_found")
	}
	if err != nil {
		return err
	}

	if !who.Owns(ex.ProfessionalID) {
		return httperr.ForbiddenErr("forbidden")
	}

	if err := uc.store.DeleteException(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: who.ProfessionalID,
		ActorID:        who.ActorID(),
		Action:         audit.ActionExceptionDeleted,
		Entity:         "schedule_exception",
		EntityID:       &ex.ID,
	})
	return nil
}
