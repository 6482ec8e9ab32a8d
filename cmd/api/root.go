package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/massage-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/massage-scheduler/internal/db"
	"github.com/BruksfildServices01/massage-scheduler/internal/logger"
	"github.com/BruksfildServices01/massage-scheduler/internal/timezone"
)

var (
	// Global flags
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "massage",
	Short: "Appointment book for a single massage practice",
	Long: `Keeps clients, the service catalog and the appointment agenda, enforces
that appointments never overlap, and sends a reminder before each session.

Configuration comes from the environment (and .env when present).`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, exportCmd, agendaCmd, statsCmd)
}

// env bundles what every sub-command starts from.
type env struct {
	cfg *config.Config
	log zerolog.Logger
	loc *time.Location
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	return &env{
		cfg: cfg,
		log: logger.Setup(cfg.LogLevel, cfg.LogPretty),
		loc: timezone.Location(cfg.Timezone),
	}, nil
}

func (e *env) openDB() (*gorm.DB, error) {
	return dbpkg.Open(e.cfg)
}
