package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/massage-scheduler/internal/audit"
	"github.com/BruksfildServices01/massage-scheduler/internal/backup"
	"github.com/BruksfildServices01/massage-scheduler/internal/config"
	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	"github.com/BruksfildServices01/massage-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/massage-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/massage-scheduler/internal/metrics"
	"github.com/BruksfildServices01/massage-scheduler/internal/middleware"
	"github.com/BruksfildServices01/massage-scheduler/internal/validators"
	ucAppointment "github.com/BruksfildServices01/massage-scheduler/internal/usecase/appointment"
	ucCatalog "github.com/BruksfildServices01/massage-scheduler/internal/usecase/catalog"
	ucClient "github.com/BruksfildServices01/massage-scheduler/internal/usecase/client"
	ucStats "github.com/BruksfildServices01/massage-scheduler/internal/usecase/stats"
)

// Deps are the process-wide singletons the routes share with background jobs.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Location *time.Location

	Broker    *events.Broker
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	Reminders ucAppointment.Reminders
	Backups   *backup.Service
}

// RegisterRoutes builds repositories, use cases and handlers and mounts them.
func RegisterRoutes(r *gin.Engine, d Deps) error {
	if err := validators.Register(); err != nil {
		return err
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(d.Metrics),
		middleware.CORSMiddleware(),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	clientRepo := infraRepo.NewClientGormRepository(d.DB)
	serviceRepo := infraRepo.NewServiceGormRepository(d.DB)

	reminders := d.Reminders
	if reminders == nil {
		reminders = ucAppointment.NoReminders{}
	}
	lead := d.Config.ReminderLead()

	statsUC := ucStats.NewSummary(appointmentRepo, d.Location)
	// writes drop cached stats before the event goes out
	pub := statsUC.Invalidating(d.Broker)

	// ======================================================
	// USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		reminders,
		pub,
		d.Metrics,
		lead,
	)

	appointmentUC := handlers.AppointmentUseCases{
		Create:    createAppointmentUC,
		Recurring: ucAppointment.NewCreateRecurring(createAppointmentUC),
		Update: ucAppointment.NewUpdateAppointment(
			appointmentRepo,
			reminders,
			pub,
			d.Metrics,
			lead,
		),
		SetStatus: ucAppointment.NewSetAppointmentStatus(appointmentRepo, reminders, pub),
		Delete:    ucAppointment.NewDeleteAppointment(appointmentRepo, reminders, pub),
		Get:       ucAppointment.NewGetAppointment(appointmentRepo, d.Location),
		ByDate:    ucAppointment.NewListAppointmentsByDate(appointmentRepo, d.Location),
		ByMonth:   ucAppointment.NewListAppointmentsByMonth(appointmentRepo, d.Location),
		DayCounts: ucAppointment.NewDayCounts(appointmentRepo, d.Location),
		Upcoming:  ucAppointment.NewListUpcoming(appointmentRepo, d.Location),
	}

	clientsUC := ucClient.New(clientRepo, pub)
	servicesUC := ucCatalog.New(serviceRepo, pub)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler, err := handlers.NewAuthHandler(d.Config)
	if err != nil {
		return err
	}

	clientHandler := handlers.NewClientHandler(clientsUC, d.Config.BusinessName)
	serviceHandler := handlers.NewServiceHandler(servicesUC)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentUC, d.Location)
	statsHandler := handlers.NewStatsHandler(statsUC, d.Location)
	calendarHandler := handlers.NewCalendarHandler(appointmentRepo, d.Location)
	streamHandler := handlers.NewStreamHandler(d.Broker, d.Metrics)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB), d.Location)

	loginLimiter := middleware.NewRateLimiter(d.Config.LoginRate, d.Config.LoginBurst)

	// ======================================================
	// OPERATIONAL
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", loginLimiter.Handler(), authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			// ------------------------------
			// CLIENTS
			// ------------------------------
			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.PUT("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)
			secured.GET("/clients/:id/message-link", clientHandler.MessageLink)

			// ------------------------------
			// SERVICES
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.GET("/services/:id", serviceHandler.Get)
			secured.PUT("/services/:id", serviceHandler.Update)
			secured.PATCH("/services/:id/active", serviceHandler.SetActive)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.POST("/appointments/recurring", appointmentHandler.CreateRecurring)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.GET("/appointments/day-counts", appointmentHandler.DayCounts)
			secured.GET("/appointments/upcoming", appointmentHandler.Upcoming)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/status", appointmentHandler.SetStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.GET("/appointments/:id/message-link", appointmentHandler.MessageLink)

			// ------------------------------
			// REPORTS
			// ------------------------------
			secured.GET("/stats", statsHandler.Summary)
			secured.GET("/stats/chart", statsHandler.Chart)
			secured.GET("/calendar.ics", calendarHandler.ICS)
			secured.GET("/stream", streamHandler.Stream)
			secured.GET("/audit-logs", auditLogsHandler.List)

			if d.Backups != nil {
				backupHandler := handlers.NewBackupHandler(d.Backups)
				secured.POST("/backup", backupHandler.Run)
			}
		}
	}

	return nil
}
