package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/massage-scheduler/internal/audit"
	"github.com/BruksfildServices01/massage-scheduler/internal/backup"
	"github.com/BruksfildServices01/massage-scheduler/internal/events"
	infraRepo "github.com/BruksfildServices01/massage-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/massage-scheduler/internal/logger"
	"github.com/BruksfildServices01/massage-scheduler/internal/metrics"
	"github.com/BruksfildServices01/massage-scheduler/internal/notify"
	"github.com/BruksfildServices01/massage-scheduler/internal/reminder"
	"github.com/BruksfildServices01/massage-scheduler/internal/routes"
)

const (
	reminderBackendRedis = "redis"
	redisPollInterval    = time.Second
	shutdownTimeout      = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the reminder worker and the scheduled jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return serve(ctx, e)
	},
}

func serve(ctx context.Context, e *env) error {
	cfg := e.cfg

	gdb, err := e.openDB()
	if err != nil {
		return err
	}

	// ======================================================
	// SINGLETONS
	// ======================================================
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	broker := events.NewBroker(64)

	dispatcher := audit.NewDispatcher(audit.New(gdb))
	stopAudit := dispatcher.Follow(broker)
	defer dispatcher.Close()
	defer stopAudit()

	appointmentRepo := infraRepo.NewAppointmentGormRepository(gdb)

	// ======================================================
	// REMINDERS
	// ======================================================
	notifiers := notify.Multi{
		notify.NewLogNotifier(logger.Component("notify")),
		notify.NewBrokerNotifier(broker),
	}
	if cfg.SMTP.Enabled() {
		notifiers = append(notifiers, notify.NewMailNotifier(cfg.SMTP))
	}

	worker := reminder.NewWorker(appointmentRepo, notifiers, e.loc, cfg.AppURL, m)

	var queue reminder.Queue
	if cfg.Reminder.Backend == reminderBackendRedis {
		client, err := reminder.NewRedisClient(cfg.Reminder.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}

		rq := reminder.NewRedisQueue(client, worker.Handle, redisPollInterval)
		go rq.Run(ctx)
		queue = rq
	} else {
		queue = reminder.NewMemoryQueue(ctx, worker.Handle)
	}

	scheduler := reminder.NewScheduler(queue, m)

	if _, err := scheduler.ResyncOnStart(ctx, appointmentRepo); err != nil {
		e.log.Error().Err(err).Msg("initial reminder resync failed")
	}

	// ======================================================
	// CRON
	// ======================================================
	jobs := cron.New(cron.WithLocation(e.loc))
	if err := scheduler.RegisterResync(jobs, cfg.Reminder.ResyncCron, appointmentRepo); err != nil {
		return err
	}

	backups := backup.NewService(gdb, backup.NewStore(cfg.Backup))
	if cfg.Backup.Cron != "" {
		backupLog := logger.Component("backup")
		if _, err := jobs.AddFunc(cfg.Backup.Cron, func() {
			location, err := backups.Run(context.Background())
			if err != nil {
				backupLog.Error().Err(err).Msg("scheduled backup failed")
				return
			}
			backupLog.Info().Str("location", location).Msg("backup written")
		}); err != nil {
			return err
		}
	}

	jobs.Start()
	defer jobs.Stop()

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	err = routes.RegisterRoutes(r, routes.Deps{
		DB:        gdb,
		Config:    cfg,
		Location:  e.loc,
		Broker:    broker,
		Metrics:   m,
		Gatherer:  reg,
		Reminders: scheduler,
		Backups:   backups,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// open event streams end when the process is asked to stop
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		e.log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	e.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
