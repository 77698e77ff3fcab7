package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/config"
	"github.com/BruksfildServices01/medical-scheduler/internal/db"
	domainAppointment "github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/handlers"
	"github.com/BruksfildServices01/medical-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/medical-scheduler/internal/middleware"
	"github.com/BruksfildServices01/medical-scheduler/internal/notification"
	"github.com/BruksfildServices01/medical-scheduler/internal/session"
	ucAccount "github.com/BruksfildServices01/medical-scheduler/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/medical-scheduler/internal/usecase/appointment"
	ucDoctor "github.com/BruksfildServices01/medical-scheduler/internal/usecase/doctor"
	ucReport "github.com/BruksfildServices01/medical-scheduler/internal/usecase/report"
	"github.com/BruksfildServices01/medical-scheduler/internal/validators"
)

// Dependencies are the long-lived singletons built by cmd/api.
type Dependencies struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Location *time.Location

	Stores   *db.Stores
	Sessions *session.Manager
	Notifier notification.Notifier
	Audit    audit.Recorder

	// Optional; nil disables the feature.
	Photos      storage.ObjectStore
	StatsCache  ucReport.Cache
	AuthLimiter *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	loc := deps.Location
	stores := deps.Stores

	if err := validators.RegisterGinValidators(); err != nil {
		deps.Logger.Error().Err(err).Msg("custom validators not registered")
	}

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// USE CASES
	// ======================================================
	var checkDomain ucAccount.DomainChecker
	if cfg.CheckEmailDomain {
		checkDomain = validators.IsEmailDomainValid
	}
	policy := domainAppointment.PolicyFor(cfg.StrictStatusTransitions)

	registerUC := ucAccount.NewRegister(stores.Users, deps.Audit, checkDomain)
	loginUC := ucAccount.NewLogin(stores.Users)
	updateProfileUC := ucAccount.NewUpdateProfile(stores.Users, deps.Audit, checkDomain)

	listAppointmentsUC := ucAppointment.NewListAppointments(stores.Appointments)
	getAppointmentUC := ucAppointment.NewGetAppointment(stores.Appointments)
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		stores.Appointments,
		stores.Doctors,
		deps.Notifier,
		deps.Audit,
		loc,
	)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		stores.Appointments,
		stores.Doctors,
		deps.Notifier,
		deps.Audit,
		policy,
		loc,
	)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		stores.Appointments,
		deps.Notifier,
		deps.Audit,
	)
	exportAppointmentUC := ucAppointment.NewExportAppointment(stores.Appointments, loc)
	statsUC := ucReport.NewGetAppointmentStats(stores.Appointments, stores.Doctors, deps.StatsCache, loc)

	// ======================================================
	// HANDLERS
	// ======================================================
	secureCookies := cfg.IsProduction()

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, deps.Sessions, secureCookies)
	meHandler := handlers.NewMeHandler(updateProfileUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		listAppointmentsUC,
		getAppointmentUC,
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		exportAppointmentUC,
		statsUC,
		loc,
	)

	doctorHandler := handlers.NewDoctorHandler(
		ucDoctor.NewListDoctors(stores.Doctors),
		ucDoctor.NewGetDoctor(stores.Doctors),
		ucDoctor.NewCreateDoctor(stores.Doctors, deps.Audit),
		ucDoctor.NewUpdateDoctor(stores.Doctors, deps.Audit),
		ucDoctor.NewDeleteDoctor(stores.Doctors, stores.Appointments, deps.Audit),
		ucDoctor.NewGetAvailability(stores.Doctors, stores.Appointments, cfg.SlotDuration(), loc),
		ucDoctor.NewUploadPhoto(stores.Doctors, deps.Photos, deps.Audit),
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(stores.Audit, loc)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	api.Use(middleware.Session(deps.Sessions))
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		{
			limited := auth.Group("")
			if deps.AuthLimiter != nil {
				limited.Use(middleware.RateLimit(deps.AuthLimiter))
			}
			limited.POST("/register", authHandler.Register)
			limited.POST("/login", authHandler.Login)

			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", meHandler.GetMe)
		}

		// ------------------------------
		// SESSION REQUIRED
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.RequireSession())
		{
			secured.PUT("/users/profile", meHandler.UpdateProfile)

			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments", appointmentHandler.Update)
			secured.DELETE("/appointments", appointmentHandler.Delete)
			secured.GET("/appointments/stats", appointmentHandler.Stats)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.GET("/appointments/:id/pdf", appointmentHandler.ExportPDF)

			secured.GET("/doctors", doctorHandler.List)
			secured.GET("/doctors/:id", doctorHandler.Get)
			secured.GET("/doctors/:id/availability", doctorHandler.Availability)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/doctors", doctorHandler.Create)
			admin.PUT("/doctors", doctorHandler.Update)
			admin.PUT("/doctors/:id", doctorHandler.Update)
			admin.DELETE("/doctors/:id", doctorHandler.Delete)
			admin.PUT("/doctors/:id/photo", doctorHandler.UploadPhoto)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
