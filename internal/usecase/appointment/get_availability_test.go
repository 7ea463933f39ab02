package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
)

func newAvailability(t *testing.T, r *fakeRepo) *GetAvailability {
	uc := NewGetAvailability(r)
	uc.now = fixedNow(t)
	return uc
}

func TestGetAvailability_FullGrid(t *testing.T) {
	r := seededRepo(t)

	out, err := newAvailability(t, r).Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: profID, ServiceID: serviceID, Date: "2030-03-11",
	})
	require.NoError(t, err)

	assert.Equal(t, "2030-03-11", out.Date)
	assert.Equal(t, "Studio João", out.ProfessionalName)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, out.Slots)
}

func TestGetAvailability_ActiveAppointmentsBlock(t *testing.T) {
	r := seededRepo(t)
	loc := saoPaulo(t)
	addAppointment(r, time.Date(2030, 3, 11, 9, 30, 0, 0, loc), domain.StatusPending)
	addAppointment(r, time.Date(2030, 3, 11, 10, 30, 0, 0, loc), domain.StatusConfirmed)
	addAppointment(r, time.Date(2030, 3, 11, 11, 0, 0, 0, loc), domain.StatusCanceled)

	out, err := newAvailability(t, r).Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: profID, ServiceID: serviceID, Date: "2030-03-11",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00", "11:00", "11:30"}, out.Slots)
}

func TestGetAvailability_ExceptionBlocksDay(t *testing.T) {
	r := seededRepo(t)
	r.exceptions = append(r.exceptions, models.ScheduleException{ID: 5, ProfessionalID: profID, Date: "2030-03-11"})

	out, err := newAvailability(t, r).Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: profID, ServiceID: serviceID, Date: "2030-03-11",
	})
	require.NoError(t, err)
	assert.Empty(t, out.Slots)
	assert.NotNil(t, out.Slots)
}

func TestGetAvailability_ExceptionReplacesWindow(t *testing.T) {
	r := seededRepo(t)
	// sábado sem regra semanal, aberto só pela exceção
	r.exceptions = append(r.exceptions, models.ScheduleException{
		ID: 5, ProfessionalID: profID, Date: "2030-03-16",
		StartTime: strp("14:00"), EndTime: strp("15:15"),
	})

	out, err := newAvailability(t, r).Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: profID, ServiceID: serviceID, Date: "2030-03-16",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"14:00", "14:30"}, out.Slots)
}

func TestGetAvailability_NoRuleIsClosed(t *testing.T) {
	r := seededRepo(t)

	out, err := newAvailability(t, r).Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: profID, ServiceID: serviceID, Date: "2030-03-12",
	})
	require.NoError(t, err)
	assert.Empty(t, out.Slots)
}

func TestGetAvailability_SkipsPastAndMinAdvance(t *testing.T) {
	r := seededRepo(t)
	r.professionals[profID].MinAdvanceMinutes = 60
	uc := NewGetAvailability(r)
	loc := saoPaulo(t)
	uc.now = func() time.Time { return time.Date(2030, 3, 11, 9, 10, 0, 0, loc) }

	out, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ProfessionalID: profID, ServiceID: serviceID, Date: "2030-03-11",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30", "11:00", "11:30"}, out.Slots)
}

func TestGetAvailability_Errors(t *testing.T) {
	r := seededRepo(t)
	uc := newAvailability(t, r)
	ctx := context.Background()

	_, err := uc.Execute(ctx, domain.AvailabilityInput{ProfessionalID: 99, ServiceID: serviceID, Date: "2030-03-11"})
	assert.True(t, httperr.IsBusiness(err, "professional_not_found"))

	_, err = uc.Execute(ctx, domain.AvailabilityInput{ProfessionalID: profID, ServiceID: 77, Date: "2030-03-11"})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	r.services[serviceID].Active = false
	_, err = uc.Execute(ctx, domain.AvailabilityInput{ProfessionalID: profID, ServiceID: serviceID, Date: "2030-03-11"})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	r.services[serviceID].Active = true
	_, err = uc.Execute(ctx, domain.AvailabilityInput{ProfessionalID: profID, ServiceID: serviceID, Date: "11/03/2030"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestGetMonthlyAvailability(t *testing.T) {
	r := seededRepo(t)
	loc := saoPaulo(t)

	// 18/03 bloqueado; 25/03 reduzido a um horário que já está ocupado
	r.exceptions = append(r.exceptions,
		models.ScheduleException{ID: 5, ProfessionalID: profID, Date: "2030-03-18"},
		models.ScheduleException{ID: 6, ProfessionalID: profID, Date: "2030-03-25", StartTime: strp("10:00"), EndTime: strp("10:30")},
	)
	addAppointment(r, time.Date(2030, 3, 25, 10, 0, 0, 0, loc), domain.StatusConfirmed)

	uc := NewGetMonthlyAvailability(r)
	uc.now = fixedNow(t)

	out, err := uc.Execute(context.Background(), domain.MonthAvailabilityInput{
		ProfessionalID: profID, ServiceID: serviceID, Year: 2030, Month: 3,
	})
	require.NoError(t, err)

	// 04/03 já passou
	assert.Equal(t, []string{"2030-03-11"}, out.Dates)
}

func TestGetMonthlyAvailability_InvalidMonth(t *testing.T) {
	uc := NewGetMonthlyAvailability(seededRepo(t))
	_, err := uc.Execute(context.Background(), domain.MonthAvailabilityInput{
		ProfessionalID: profID, ServiceID: serviceID, Year: 2030, Month: 13,
	})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}
