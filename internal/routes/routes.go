package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/velourstudio/salon-scheduler/internal/audit"
	"github.com/velourstudio/salon-scheduler/internal/config"
	"github.com/velourstudio/salon-scheduler/internal/handlers"
	infraRepo "github.com/velourstudio/salon-scheduler/internal/infra/repository"
	"github.com/velourstudio/salon-scheduler/internal/media"
	"github.com/velourstudio/salon-scheduler/internal/middleware"
	"github.com/velourstudio/salon-scheduler/internal/payments"
	"github.com/velourstudio/salon-scheduler/internal/sms"
	"github.com/velourstudio/salon-scheduler/internal/token"
	ucAppointment "github.com/velourstudio/salon-scheduler/internal/usecase/appointment"
	"github.com/velourstudio/salon-scheduler/internal/usecase/booking"
	"github.com/velourstudio/salon-scheduler/internal/usecase/identity"
	ucVerification "github.com/velourstudio/salon-scheduler/internal/usecase/verification"
	ucWebhook "github.com/velourstudio/salon-scheduler/internal/usecase/webhook"
)

// Deps carries the process-level singletons main wires up once.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Processor payments.Processor
	SMS       sms.Gateway
	Uploader  *media.Uploader
	Logger    zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {

	db := deps.DB
	logger := deps.Logger

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	verificationRepo := infraRepo.NewVerificationGormRepository(db)
	webhookLedger := infraRepo.NewWebhookEventGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	sessionCodec := token.NewCodec(cfg.JWTSecret)
	webhookValidator := sms.NewValidator(cfg.SMSWebhookSecret)

	publicLimiter := middleware.NewRateLimit(deps.Redis, 30, time.Minute)

	// ======================================================
	// USE CASES
	// ======================================================
	resolver := identity.NewResolver(clientRepo, deps.Processor)

	createBookingUC := booking.NewCreateBooking(
		appointmentRepo,
		resolver,
		auditDispatcher,
		logger,
	)

	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher)
	checkInUC := ucAppointment.NewCheckInAppointment(appointmentRepo, auditDispatcher)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	noShowUC := ucAppointment.NewMarkNoShow(appointmentRepo, auditDispatcher)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	sendCodeUC := ucVerification.NewSendCode(verificationRepo, deps.SMS, logger)
	confirmCodeUC := ucVerification.NewConfirmCode(
		verificationRepo,
		clientRepo,
		deps.Processor,
		sessionCodec,
		logger,
	)

	processInboundUC := ucWebhook.NewProcessInbound(
		appointmentRepo,
		clientRepo,
		webhookLedger,
		deps.SMS,
		auditDispatcher,
		logger,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	locationHandler := handlers.NewLocationHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	blockHandler := handlers.NewBlockHandler(db)
	mediaHandler := handlers.NewMediaHandler(db, deps.Uploader)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		createBookingUC,
		listByDateUC,
		listByMonthUC,
		cancelUC,
		checkInUC,
		completeUC,
		noShowUC,
	)

	publicHandler := handlers.NewPublicHandler(db, createBookingUC, availabilityUC)
	verificationHandler := handlers.NewVerificationHandler(sendCodeUC, confirmCodeUC)

	smsWebhookHandler := handlers.NewSMSWebhookHandler(
		processInboundUC,
		webhookValidator,
		cfg.SMSWebhookURL,
		logger,
	)

	// ======================================================
	// WEBHOOKS
	// ======================================================
	r.POST("/webhooks/sms", smsWebhookHandler.Inbound)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(publicLimiter.Handler())
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/booking", publicHandler.CreateBooking)

			publicAPI.POST("/verify/send", verificationHandler.Send)
			publicAPI.POST("/verify/confirm", verificationHandler.Confirm)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/me/photo", mediaHandler.UploadPhoto)

			secured.GET("/me/location", locationHandler.GetMyLocation)
			secured.PATCH("/me/location", locationHandler.UpdateMyLocation)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/clients", clientHandler.List)
			secured.GET("/me/clients/:id", clientHandler.Get)
			secured.PATCH("/me/clients/:id/block", clientHandler.Block)
			secured.PATCH("/me/clients/:id/unblock", clientHandler.Unblock)

			secured.GET("/me/blocks", blockHandler.List)
			secured.POST("/me/blocks", blockHandler.Create)
			secured.DELETE("/me/blocks/:id", blockHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/check-in", appointmentHandler.CheckIn)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
