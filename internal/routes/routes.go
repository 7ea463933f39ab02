package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/pro-scheduler/internal/app"
	"github.com/BruksfildServices01/pro-scheduler/internal/config"
	"github.com/BruksfildServices01/pro-scheduler/internal/handlers"
	"github.com/BruksfildServices01/pro-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/pro-scheduler/internal/usecase/appointment"
	ucCalendar "github.com/BruksfildServices01/pro-scheduler/internal/usecase/calendar"
)

func RegisterRoutes(r *gin.Engine, in *app.Infra, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.Use(middleware.CORSMiddleware())

	repo := in.Repo

	// ======================================================
	// 🧠 USE CASES: APPOINTMENTS
	// ======================================================
	createBookingUC := ucAppointment.NewCreateBooking(
		repo,
		in.Locker,
		in.Gateway,
		in.Notifier,
		in.Audit,
		log.Named("booking"),
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(repo, in.Locker, in.Notifier, in.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(repo, in.Notifier, in.Audit)
	markPaidUC := ucAppointment.NewMarkAsPaid(repo, in.Notifier, in.Audit)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(repo, in.Audit)

	webhookUC := ucAppointment.NewProcessPaymentWebhook(
		repo,
		in.Gateway,
		in.Notifier,
		in.Audit,
		log.Named("webhook"),
	)

	// ======================================================
	// 🧠 USE CASES: CALENDAR
	// ======================================================
	listRulesUC := ucCalendar.NewListWeeklyRules(repo)
	replaceRulesUC := ucCalendar.NewReplaceWeeklyRules(repo, in.Audit)
	listExceptionsUC := ucCalendar.NewListExceptions(repo)
	createExceptionUC := ucCalendar.NewCreateException(repo, in.Audit)
	deleteExceptionUC := ucCalendar.NewDeleteException(repo, in.Audit)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(in.DB, cfg)
	meHandler := handlers.NewMeHandler(in.DB)
	serviceHandler := handlers.NewServiceHandler(in.DB)
	clientHandler := handlers.NewClientHandler(in.DB)
	pixConfigHandler := handlers.NewPixConfigHandler(in.DB)
	styleHandler := handlers.NewStyleHandler(in.DB, in.Store, log.Named("style"))
	auditLogsHandler := handlers.NewAuditLogsHandler(in.DB)

	scheduleHandler := handlers.NewScheduleHandler(
		listRulesUC,
		replaceRulesUC,
		listExceptionsUC,
		createExceptionUC,
		deleteExceptionUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createBookingUC,
		ucAppointment.NewListAppointments(repo),
		ucAppointment.NewListAppointmentsByDate(repo),
		ucAppointment.NewListAppointmentsByMonth(repo),
		ucAppointment.NewGetAppointment(repo),
		updateAppointmentUC,
		deleteAppointmentUC,
		cancelAppointmentUC,
		markPaidUC,
	)

	financeHandler := handlers.NewFinanceHandler(
		ucAppointment.NewGetFinanceSummary(repo),
		ucAppointment.NewListPendingPayments(repo),
	)

	publicHandler := handlers.NewPublicHandler(
		in.DB,
		ucAppointment.NewListPublicServices(repo),
		ucAppointment.NewGetAvailability(repo),
		ucAppointment.NewGetMonthlyAvailability(repo),
		createBookingUC,
		ucAppointment.NewGetPaymentStatus(repo),
	)

	webhookHandler := handlers.NewWebhookHandler(webhookUC, cfg.MercadoPagoWebhookSecret, log.Named("webhook"))

	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := in.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if in.Redis != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return in.Redis.Ping(ctx).Err()
		})
	}
	healthHandler := handlers.NewHealthHandler(checks)

	// ======================================================
	// ❤️ HEALTH
	// ======================================================
	r.GET("/healthz", healthHandler.Live)
	r.GET("/readyz", healthHandler.Ready)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public/:professionalId")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.GET("/availability/month", publicHandler.MonthAvailability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/appointments/:id/payment-status", publicHandler.PaymentStatus)
			publicAPI.GET("/has-pix", publicHandler.HasPix)
			publicAPI.GET("/style", publicHandler.Style)
		}

		// ------------------------------
		// 💳 WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/mercadopago", webhookHandler.MercadoPago)

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("", meHandler.GetMe)
			secured.PATCH("", meHandler.UpdateMe)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.GET("/weekly-rules", scheduleHandler.GetWeeklyRules)
			secured.PUT("/weekly-rules", scheduleHandler.ReplaceWeeklyRules)

			secured.GET("/exceptions", scheduleHandler.ListExceptions)
			secured.POST("/exceptions", scheduleHandler.CreateException)
			secured.DELETE("/exceptions/:id", scheduleHandler.DeleteException)

			secured.GET("/pix-config", pixConfigHandler.Show)
			secured.PUT("/pix-config", pixConfigHandler.Upsert)
			secured.DELETE("/pix-config", pixConfigHandler.Delete)

			secured.GET("/style", styleHandler.Show)
			secured.PUT("/style", styleHandler.Update)
			secured.POST("/style/:kind", styleHandler.Upload)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/:id", appointmentHandler.Show)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/mark-paid", appointmentHandler.MarkPaid)

			secured.GET("/finance/summary", financeHandler.Summary)
			secured.GET("/finance/pending", financeHandler.Pending)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
