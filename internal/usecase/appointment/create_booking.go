package appointment

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pro-scheduler/internal/audit"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/pro-scheduler/internal/domain/identity"
	domain "github.com/BruksfildServices01/pro-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/pro-scheduler/internal/httperr"
	"github.com/BruksfildServices01/pro-scheduler/internal/models"
	"github.com/BruksfildServices01/pro-scheduler/internal/pix"
)

const (
	qrChartURL      = "https://chart.googleapis.com/chart?chs=300x300&cht=qr&chl="
	defaultPixCity  = "BRASIL"
	txIDPrefix      = "AGD"
	pixDescription  = "Agendamento de servico "
	gatewayFailCode = "payment_gateway_failed"
	pixMissingCode  = "pix_not_configured"
	pixInvalidCode  = "pix_payload_failed"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	ProfessionalID uint

	// Fluxo autenticado: cliente já cadastrado.
	ClientID uint

	// Fluxo público: cliente identificado pelo e-mail.
	ClientName  string
	ClientEmail string
	ClientPhone string

	ServiceID     uint
	StartTime     string
	PaymentOption string
	Notes         string

	// nil no fluxo público
	Actor *identity.Identity
}

type PixPayment struct {
	TxID         string `json:"txid,omitempty"`
	ExternalID   string `json:"external_id,omitempty"`
	QRCodeURL    string `json:"qrcode_url,omitempty"`
	QRCodeBase64 string `json:"qrcode_base64,omitempty"`
	CopyPaste    string `json:"copy_paste"`
}

type BookingResult struct {
	Appointment    *models.Appointment `json:"appointment"`
	Pix            *PixPayment         `json:"pix,omitempty"`
	PaymentWarning string              `json:"payment_warning,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	locker   domain.Locker
	gateway  domain.PaymentGateway
	notifier domain.Notifier
	audit    *audit.Dispatcher
	log      *zap.Logger
	now      func() time.Time
}

// NewCreateBooking: gateway nil gera Pix estático local; locker nil confia só
// no advisory lock e no índice único do banco.
func NewCreateBooking(
	repo domain.Repository,
	locker domain.Locker,
	gateway domain.PaymentGateway,
	notifier domain.Notifier,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateBooking {
	if log == nil {
		log = zap.NewNop()
	}
	return &CreateBooking{
		repo:     repo,
		locker:   locker,
		gateway:  gateway,
		notifier: notifier,
		audit:    audit,
		log:      log,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*BookingResult, error) {

	if in.Actor != nil && !in.Actor.Owns(in.ProfessionalID) {
		return nil, httperr.ForbiddenErr("forbidden")
	}

	// --------------------------------------------------
	// 1️⃣ Profissional + data/hora no fuso dele
	// --------------------------------------------------
	prof, loc, err := loadProfessional(ctx, uc.repo, in.ProfessionalID)
	if err != nil {
		return nil, err
	}

	start, err := parseStart(in.StartTime, loc)
	if err != nil {
		return nil, err
	}

	option, err := domain.ParsePaymentOption(in.PaymentOption)
	if err != nil {
		return nil, err
	}

	if in.ClientID == 0 && strings.TrimSpace(in.ClientEmail) == "" {
		return nil, httperr.ValidationErr("invalid_request")
	}

	// --------------------------------------------------
	// 2️⃣ Serialização por profissional + dia
	// --------------------------------------------------
	if uc.locker != nil {
		unlock, err := uc.locker.Lock(ctx, domain.LockKey(prof.ID, start.Format(calendar.DateLayout)))
		if errors.Is(err, domain.ErrLockTimeout) {
			return nil, httperr.SlotConflictErr("slot_busy")
		}
		if err != nil {
			return nil, fmt.Errorf("booking lock: %w", err)
		}
		defer unlock()
	}

	var (
		created    *models.Appointment
		pixWarning string
	)

	err = uc.repo.WithinTx(ctx, func(ctx context.Context, tx domain.Repository) error {
		if err := tx.LockProfessional(ctx, prof.ID); err != nil {
			return err
		}

		// a. cota do plano
		if err := uc.checkQuota(ctx, tx, prof); err != nil {
			return err
		}

		// antecedência mínima só depois da cota
		if start.Before(earliestStart(uc.now().In(loc), prof)) {
			return httperr.ValidationErr("too_soon")
		}

		// b. serviço do profissional
		svc, err := loadActiveService(ctx, tx, prof.ID, in.ServiceID)
		if err != nil {
			return err
		}
		end := start.Add(svc.Duration())

		// c. janela do dia (exceção primeiro, regra semanal depois)
		if err := checkWindow(ctx, tx, prof.ID, start, end, loc); err != nil {
			return err
		}

		// d. conflito com agendamentos que ocupam horário
		if err := checkConflict(ctx, tx, prof.ID, start, end, 0); err != nil {
			return err
		}

		// e. cliente + agendamento
		client, err := uc.resolveClient(ctx, tx, prof.ID, in)
		if err != nil {
			return err
		}

		ap := &models.Appointment{
			ProfessionalID: prof.ID,
			ClientID:       client.ID,
			ServiceID:      svc.ID,
			StartTime:      start,
			Status:         string(domain.InitialStatus()),
			PaymentStatus:  string(option.InitialPaymentStatus()),
			PaymentOption:  string(option),
			PaymentAmount:  svc.Price,
			Notes:          strings.TrimSpace(in.Notes),
		}

		// f. Pix estático local quando não há gateway
		if option == domain.PaymentOnline && uc.gateway == nil {
			warning, err := uc.attachStaticPix(ctx, tx, prof, svc, ap)
			if err != nil {
				return err
			}
			pixWarning = warning
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		ap.Client = *client
		ap.Service = *svc
		created = ap
		return nil
	})

	if err != nil {
		if httperr.IsKind(err, httperr.KindSlotConflict) {
			uc.audit.Dispatch(audit.Event{
				ProfessionalID: prof.ID,
				ActorID:        actorID(in.Actor),
				Action:         audit.ActionAppointmentConflict,
				Entity:         "appointment",
				Metadata:       map[string]any{"start": start, "service_id": in.ServiceID},
			})
		}
		return nil, err
	}

	result := &BookingResult{Appointment: created, PaymentWarning: pixWarning}

	if option == domain.PaymentOnline {
		if uc.gateway != nil {
			uc.chargeViaGateway(ctx, created, result)
		} else if created.PixCopyPaste != "" {
			result.Pix = &PixPayment{
				TxID:      created.PixTxID,
				QRCodeURL: created.PixQRCodeURL,
				CopyPaste: created.PixCopyPaste,
			}
		}
	}

	uc.audit.Dispatch(audit.Event{
		ProfessionalID: prof.ID,
		ActorID:        actorID(in.Actor),
		Action:         audit.ActionAppointmentCreated,
		Entity:         "appointment",
		EntityID:       uintPtr(created.ID),
		Metadata:       map[string]any{"payment_option": created.PaymentOption},
	})

	notify(ctx, uc.notifier, created)

	return result, nil
}

// ======================================================
// STEPS
// ======================================================

func (uc *CreateBooking) checkQuota(
	ctx context.Context,
	tx domain.Repository,
	prof *models.Professional,
) error {
	if prof.Plan == nil || prof.Plan.MaxAppointments == nil {
		return nil
	}

	count, err := tx.CountAppointments(ctx, prof.ID)
	if err != nil {
		return err
	}
	if count >= int64(*prof.Plan.MaxAppointments) {
		return httperr.QuotaExceededErr("plan_limit_exceeded")
	}
	return nil
}

func (uc *CreateBooking) resolveClient(
	ctx context.Context,
	tx domain.Repository,
	professionalID uint,
	in CreateBookingInput,
) (*models.Client, error) {

	if in.ClientID != 0 {
		client, err := tx.GetClient(ctx, professionalID, in.ClientID)
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("client_not_found")
		}
		return client, err
	}

	return tx.UpsertClientByEmail(
		ctx,
		professionalID,
		strings.TrimSpace(in.ClientName),
		in.ClientEmail,
		in.ClientPhone,
	)
}

// attachStaticPix devolve o código de aviso quando a reserva online fica sem
// payload (sem chave cadastrada ou chave que não cabe no BR Code).
func (uc *CreateBooking) attachStaticPix(
	ctx context.Context,
	tx domain.Repository,
	prof *models.Professional,
	svc *models.Service,
	ap *models.Appointment,
) (string, error) {

	cfg, err := tx.GetPixConfig(ctx, prof.ID)
	if err != nil {
		return "", err
	}
	if cfg == nil {
		return pixMissingCode, nil
	}

	city := prof.City
	if city == "" {
		city = defaultPixCity
	}

	amount := svc.Price
	txid := newTxID()

	payload, err := pix.Encode(pix.Payload{
		Key:          cfg.PixKey,
		Amount:       &amount,
		Description:  pixDescription + svc.Name,
		TxID:         txid,
		MerchantName: prof.DisplayName(),
		MerchantCity: city,
	})
	if err != nil {
		// chave inválida não impede a reserva
		uc.log.Warn("pix payload", zap.Uint("professional_id", prof.ID), zap.Error(err))
		return pixInvalidCode, nil
	}

	ap.PixTxID = txid
	ap.PixCopyPaste = payload
	ap.PixQRCodeURL = qrChartURL + strings.ReplaceAll(url.QueryEscape(payload), "+", "%20")
	return "", nil
}

// chargeViaGateway roda depois do commit. Falha do gateway mantém a reserva
// e apenas omite o pagamento.
func (uc *CreateBooking) chargeViaGateway(
	ctx context.Context,
	ap *models.Appointment,
	result *BookingResult,
) {
	charge, err := uc.gateway.CreatePixCharge(ctx, domain.ChargeRequest{
		Amount:            ap.PaymentAmount,
		Description:       pixDescription + ap.Service.Name,
		PayerName:         ap.Client.Name,
		PayerEmail:        ap.Client.Email,
		ExternalReference: strconv.FormatUint(uint64(ap.ID), 10),
	})
	if err != nil || charge == nil {
		uc.log.Warn("payment gateway failed, booking kept without payment",
			zap.Uint("appointment_id", ap.ID),
			zap.Error(err),
		)
		result.PaymentWarning = gatewayFailCode
		return
	}

	ap.PaymentExternalID = charge.ID
	ap.PixCopyPaste = charge.Payload
	if charge.EncodedImage != "" {
		ap.PixQRCodeURL = "data:image/png;base64," + charge.EncodedImage
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		uc.log.Error("persist gateway charge",
			zap.Uint("appointment_id", ap.ID),
			zap.String("external_id", charge.ID),
			zap.Error(err),
		)
	}

	result.Pix = &PixPayment{
		ExternalID:   charge.ID,
		QRCodeBase64: charge.EncodedImage,
		CopyPaste:    charge.Payload,
	}
}

// ======================================================
// SHARED CHECKS
// ======================================================

// checkWindow aplica a mesma resolução de janela usada na grade de horários.
func checkWindow(
	ctx context.Context,
	repo domain.Repository,
	professionalID uint,
	start time.Time,
	end time.Time,
	loc *time.Location,
) error {

	ds, err := calendar.ResolveWindow(ctx, repo, professionalID, calendar.DayStart(start, loc))
	if err != nil {
		return err
	}

	switch {
	case ds.Blocked:
		return httperr.ScheduleUnavailableErr("day_blocked")
	case !ds.Open:
		return httperr.ScheduleUnavailableErr("day_not_available")
	case !ds.Window.Contains(start, end):
		return httperr.ScheduleUnavailableErr("outside_working_hours")
	}
	return nil
}

func checkConflict(
	ctx context.Context,
	repo domain.Repository,
	professionalID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {

	existing, err := repo.ListBlockingAppointments(ctx, professionalID, start, end)
	if err != nil {
		return err
	}
	if domain.FindConflict(start, end, existing, excludeID) != nil {
		return httperr.SlotConflictErr("time_conflict")
	}
	return nil
}

func newTxID() string {
	id := txIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	if len(id) > pix.MaxTxID {
		id = id[:pix.MaxTxID]
	}
	return id
}

func actorID(actor *identity.Identity) *uint {
	if actor == nil {
		return nil
	}
	return actor.ActorID()
}
