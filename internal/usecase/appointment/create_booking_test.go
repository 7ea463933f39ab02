package appointment

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/pix"
)

func newBooking(t *testing.T, r *fakeRepo, gw domain.PaymentGateway, n domain.Notifier) *CreateBooking {
	uc := NewCreateBooking(r, lock.NewMemoryLocker(time.Second), gw, n, nil, nil)
	uc.now = fixedNow(t)
	return uc
}

func publicInput(start string) CreateBookingInput {
	return CreateBookingInput{
		ProfessionalID: profID,
		ClientName:     "Maria",
		ClientEmail:    "maria@example.com",
		ClientPhone:    "11999990000",
		ServiceID:      serviceID,
		StartTime:      start,
	}
}

func TestCreateBooking_InPerson(t *testing.T) {
	r := seededRepo(t)
	n := &recordingNotifier{}

	res, err := newBooking(t, r, nil, n).Execute(context.Background(), publicInput("2030-03-11 10:00"))
	require.NoError(t, err)

	ap := res.Appointment
	assert.NotZero(t, ap.ID)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, string(domain.PaymentPending), ap.PaymentStatus)
	assert.Equal(t, string(domain.PaymentInPerson), ap.PaymentOption)
	assert.Equal(t, "20", ap.PaymentAmount.String())
	assert.Equal(t, "maria@example.com", ap.Client.Email)
	assert.Equal(t, 10, ap.StartTime.Hour())
	assert.Equal(t, time.Date(2030, 3, 11, 10, 30, 0, 0, saoPaulo(t)).Unix(), ap.EndTime().Unix())
	assert.Nil(t, res.Pix)
	assert.Equal(t, 1, n.count())
	assert.Len(t, r.appointments, 1)
}

func TestCreateBooking_OnlineStaticPix(t *testing.T) {
	r := seededRepo(t)
	r.pixConfigs[profID] = &models.PixConfig{ProfessionalID: profID, PixKey: "joao@example.com", PixKeyType: "email"}

	in := publicInput("2030-03-11 09:00")
	in.PaymentOption = "online"

	res, err := newBooking(t, r, nil, nil).Execute(context.Background(), in)
	require.NoError(t, err)

	ap := res.Appointment
	assert.Equal(t, string(domain.PaymentAwaitingPayment), ap.PaymentStatus)
	require.NotNil(t, res.Pix)
	assert.True(t, strings.HasPrefix(ap.PixTxID, "AGD"))
	assert.LessOrEqual(t, len(ap.PixTxID), pix.MaxTxID)

	payload := res.Pix.CopyPaste
	assert.True(t, strings.HasPrefix(payload, "000201"))
	assert.Contains(t, payload, "joao@example.com")
	assert.Contains(t, payload, "540520.00")
	body, crc := payload[:len(payload)-4], payload[len(payload)-4:]
	assert.Equal(t, fmt.Sprintf("%04X", pix.CRC16([]byte(body))), crc)
	assert.True(t, strings.HasPrefix(res.Pix.QRCodeURL, qrChartURL))
}

func TestCreateBooking_OnlineWithoutPixConfig(t *testing.T) {
	r := seededRepo(t)
	in := publicInput("2030-03-11 09:00")
	in.PaymentOption = "online"

	res, err := newBooking(t, r, nil, nil).Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, res.Pix)
	assert.Empty(t, res.Appointment.PixCopyPaste)
	assert.Equal(t, "pix_not_configured", res.PaymentWarning)
}

func TestCreateBooking_StaticPixLongServiceName(t *testing.T) {
	r := seededRepo(t)
	r.services[serviceID].Name = "Corte masculino com barba e sobrancelha"
	r.pixConfigs[profID] = &models.PixConfig{ProfessionalID: profID, PixKey: "profissional@exemplo.com.br", PixKeyType: "email"}

	in := publicInput("2030-03-11 09:00")
	in.PaymentOption = "online"

	res, err := newBooking(t, r, nil, nil).Execute(context.Background(), in)
	require.NoError(t, err)

	require.NotNil(t, res.Pix)
	assert.Empty(t, res.PaymentWarning)
	assert.Contains(t, res.Pix.CopyPaste, "profissional@exemplo.com.br")
	assert.Contains(t, res.Pix.CopyPaste, "Agendamento de servico Corte masculino")
	assert.Equal(t, res.Pix.CopyPaste, res.Appointment.PixCopyPaste)
}

func TestCreateBooking_StaticPixKeyTooLong(t *testing.T) {
	r := seededRepo(t)
	r.pixConfigs[profID] = &models.PixConfig{ProfessionalID: profID, PixKey: strings.Repeat("k", 80), PixKeyType: "random"}

	in := publicInput("2030-03-11 09:00")
	in.PaymentOption = "online"

	res, err := newBooking(t, r, nil, nil).Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Nil(t, res.Pix)
	assert.Equal(t, "pix_payload_failed", res.PaymentWarning)
	assert.Len(t, r.appointments, 1)
}

func TestCreateBooking_Gateway(t *testing.T) {
	r := seededRepo(t)
	gw := &fakeGateway{}
	in := publicInput("2030-03-11 09:00")
	in.PaymentOption = "online"

	res, err := newBooking(t, r, gw, nil).Execute(context.Background(), in)
	require.NoError(t, err)

	require.NotNil(t, res.Pix)
	assert.Equal(t, "987654", res.Pix.ExternalID)
	assert.Empty(t, res.PaymentWarning)

	require.Len(t, gw.requests, 1)
	req := gw.requests[0]
	assert.Equal(t, "20", req.Amount.String())
	assert.Equal(t, "maria@example.com", req.PayerEmail)
	assert.Equal(t, fmt.Sprint(res.Appointment.ID), req.ExternalReference)

	stored := r.appointments[res.Appointment.ID]
	assert.Equal(t, "987654", stored.PaymentExternalID)
	assert.Equal(t, "000201-gateway", stored.PixCopyPaste)
}

func TestCreateBooking_GatewayFailureKeepsBooking(t *testing.T) {
	r := seededRepo(t)
	in := publicInput("2030-03-11 09:00")
	in.PaymentOption = "online"

	res, err := newBooking(t, r, &fakeGateway{fail: true}, nil).Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Nil(t, res.Pix)
	assert.Equal(t, "payment_gateway_failed", res.PaymentWarning)
	assert.Len(t, r.appointments, 1)
}

func TestCreateBooking_QuotaExceeded(t *testing.T) {
	r := seededRepo(t)
	r.professionals[profID].Plan = &models.Plan{ID: 1, Name: "Free", MaxAppointments: intp(2)}
	loc := saoPaulo(t)
	addAppointment(r, time.Date(2030, 3, 4, 9, 0, 0, 0, loc), domain.StatusConfirmed)
	addAppointment(r, time.Date(2030, 3, 4, 10, 0, 0, 0, loc), domain.StatusCanceled)

	_, err := newBooking(t, r, nil, nil).Execute(context.Background(), publicInput("2030-03-11 10:00"))

	assert.True(t, httperr.IsKind(err, httperr.KindQuotaExceeded))
	assert.Len(t, r.appointments, 2)
}

func TestCreateBooking_QuotaCheckedBeforeAdvance(t *testing.T) {
	r := seededRepo(t)
	r.professionals[profID].Plan = &models.Plan{ID: 1, Name: "Free", MaxAppointments: intp(0)}

	// 04/03 já passou em relação ao relógio fixo
	_, err := newBooking(t, r, nil, nil).Execute(context.Background(), publicInput("2030-03-04 10:00"))

	assert.True(t, httperr.IsKind(err, httperr.KindQuotaExceeded))
	assert.Empty(t, r.appointments)
}

func TestCreateBooking_ScheduleChecks(t *testing.T) {
	cases := []struct {
		name  string
		start string
		setup func(r *fakeRepo)
		code  string
	}{
		{name: "fim passa do expediente", start: "2030-03-11 11:31", code: "outside_working_hours"},
		{name: "fim passa um segundo", start: "2030-03-11 11:30:01", code: "outside_working_hours"},
		{name: "antes de abrir", start: "2030-03-11 08:45", code: "outside_working_hours"},
		{name: "dia sem regra", start: "2030-03-12 10:00", code: "day_not_available"},
		{
			name:  "dia bloqueado",
			start: "2030-03-11 10:00",
			setup: func(r *fakeRepo) {
				r.exceptions = append(r.exceptions, models.ScheduleException{ID: 7, ProfessionalID: profID, Date: "2030-03-11"})
			},
			code: "day_blocked",
		},
		{
			name:  "exceção reduz a janela",
			start: "2030-03-11 09:00",
			setup: func(r *fakeRepo) {
				r.exceptions = append(r.exceptions, models.ScheduleException{
					ID: 7, ProfessionalID: profID, Date: "2030-03-11",
					StartTime: strp("10:00"), EndTime: strp("11:00"),
				})
			},
			code: "outside_working_hours",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := seededRepo(t)
			if tc.setup != nil {
				tc.setup(r)
			}

			_, err := newBooking(t, r, nil, nil).Execute(context.Background(), publicInput(tc.start))

			require.Error(t, err)
			assert.True(t, httperr.IsKind(err, httperr.KindScheduleUnavailable))
			assert.True(t, httperr.IsBusiness(err, tc.code), err.Error())
			assert.Empty(t, r.appointments)
		})
	}
}

func TestCreateBooking_ExceptionOpensClosedDay(t *testing.T) {
	r := seededRepo(t)
	r.exceptions = append(r.exceptions, models.ScheduleException{
		ID: 7, ProfessionalID: profID, Date: "2030-03-16",
		StartTime: strp("14:00"), EndTime: strp("16:00"),
	})

	res, err := newBooking(t, r, nil, nil).Execute(context.Background(), publicInput("2030-03-16 15:30"))
	require.NoError(t, err)
	assert.Equal(t, 15, res.Appointment.StartTime.Hour())
}

func TestCreateBooking_Overlap(t *testing.T) {
	r := seededRepo(t)
	addAppointment(r, time.Date(2030, 3, 11, 10, 0, 0, 0, saoPaulo(t)), domain.StatusRescheduled)
	uc := newBooking(t, r, nil, nil)

	_, err := uc.Execute(context.Background(), publicInput("2030-03-11 10:15"))
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))

	// encostado no fim não conflita
	_, err = uc.Execute(context.Background(), publicInput("2030-03-11 10:30"))
	assert.NoError(t, err)
}

func TestCreateBooking_CanceledDoesNotBlock(t *testing.T) {
	r := seededRepo(t)
	addAppointment(r, time.Date(2030, 3, 11, 10, 0, 0, 0, saoPaulo(t)), domain.StatusCanceled)

	_, err := newBooking(t, r, nil, nil).Execute(context.Background(), publicInput("2030-03-11 10:00"))
	assert.NoError(t, err)
}

func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	r := seededRepo(t)
	uc := newBooking(t, r, nil, nil)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		ok        int
		conflicts int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := publicInput("2030-03-11 09:30")
			in.ClientEmail = fmt.Sprintf("cliente%d@example.com", i)

			_, err := uc.Execute(context.Background(), in)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case httperr.IsKind(err, httperr.KindSlotConflict):
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, conflicts)
}

func TestCreateBooking_TooSoon(t *testing.T) {
	r := seededRepo(t)
	r.professionals[profID].MinAdvanceMinutes = 120
	uc := newBooking(t, r, nil, nil)
	uc.now = func() time.Time { return time.Date(2030, 3, 11, 8, 30, 0, 0, saoPaulo(t)) }

	_, err := uc.Execute(context.Background(), publicInput("2030-03-11 10:00"))
	assert.True(t, httperr.IsBusiness(err, "too_soon"))

	_, err = uc.Execute(context.Background(), publicInput("2030-03-11 10:30"))
	assert.NoError(t, err)
}

func TestCreateBooking_InputErrors(t *testing.T) {
	r := seededRepo(t)
	uc := newBooking(t, r, nil, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, publicInput("amanhã"))
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))

	in := publicInput("2030-03-11 10:00")
	in.ClientEmail = ""
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_request"))

	in = publicInput("2030-03-11 10:00")
	in.PaymentOption = "boleto"
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	in = publicInput("2030-03-11 10:00")
	in.ServiceID = 999
	_, err = uc.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))

	assert.Empty(t, r.appointments)
}

func TestCreateBooking_PrivateFlow(t *testing.T) {
	r := seededRepo(t)
	r.clients[50] = &models.Client{ID: 50, ProfessionalID: profID, Name: "Ana", Email: "ana@example.com"}
	uc := newBooking(t, r, nil, nil)

	in := CreateBookingInput{
		ProfessionalID: profID,
		ClientID:       50,
		ServiceID:      serviceID,
		StartTime:      "2030-03-11T11:00",
		Actor:          &identity.Identity{ProfessionalID: profID, Role: "owner"},
	}
	res, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, uint(50), res.Appointment.ClientID)

	in.Actor = &identity.Identity{ProfessionalID: 2}
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsKind(err, httperr.KindForbidden))

	in.Actor = &identity.Identity{ProfessionalID: profID}
	in.ClientID = 404
	in.StartTime = "2030-03-11 09:00"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestCreateBooking_ReusesClientByEmail(t *testing.T) {
	r := seededRepo(t)
	uc := newBooking(t, r, nil, nil)

	first, err := uc.Execute(context.Background(), publicInput("2030-03-11 09:00"))
	require.NoError(t, err)

	in := publicInput("2030-03-11 10:00")
	in.ClientEmail = "  MARIA@example.com "
	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.Appointment.ClientID, second.Appointment.ClientID)
	assert.Len(t, r.clients, 1)
}
