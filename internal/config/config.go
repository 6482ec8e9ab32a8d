package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	AppURL     string `envconfig:"APP_URL" default:"/"`

	// BusinessName signs the client message templates.
	BusinessName string `envconfig:"BUSINESS_NAME" default:"Massage Studio"`

	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBUrl    string `envconfig:"DATABASE_URL" default:"massage.db"`

	// Timezone used for day boundaries. "Local" means the host zone.
	Timezone string `envconfig:"TIMEZONE" default:"Local"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogPretty bool   `envconfig:"LOG_PRETTY" default:"true"`

	JWTSecret     string  `envconfig:"JWT_SECRET" default:"changeme"`
	OwnerPassword string  `envconfig:"OWNER_PASSWORD" default:"changeme"`
	LoginRate     float64 `envconfig:"LOGIN_RATE" default:"0.2"`
	LoginBurst    int     `envconfig:"LOGIN_BURST" default:"5"`

	Reminder ReminderConfig
	SMTP     SMTPConfig
	Backup   BackupConfig
}

type ReminderConfig struct {
	LeadMinutes int    `envconfig:"REMINDER_LEAD_MINUTES" default:"30"`
	Backend     string `envconfig:"REMINDER_BACKEND" default:"memory"`
	RedisURL    string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	ResyncCron  string `envconfig:"REMINDER_RESYNC_CRON" default:"@every 15m"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"SMTP_FROM"`
	To       string `envconfig:"SMTP_TO"`
}

type BackupConfig struct {
	Bucket    string `envconfig:"BACKUP_S3_BUCKET"`
	Region    string `envconfig:"BACKUP_S3_REGION" default:"us-east-1"`
	Endpoint  string `envconfig:"BACKUP_S3_ENDPOINT"`
	AccessKey string `envconfig:"BACKUP_S3_ACCESS_KEY"`
	SecretKey string `envconfig:"BACKUP_S3_SECRET_KEY"`
	Dir       string `envconfig:"BACKUP_DIR" default:"backups"`
	Cron      string `envconfig:"BACKUP_CRON"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) ReminderLead() time.Duration {
	return time.Duration(c.Reminder.LeadMinutes) * time.Minute
}

func (c *SMTPConfig) Enabled() bool {
	return c.Host != "" && c.To != ""
}

func (c *BackupConfig) S3Enabled() bool {
	return c.Bucket != ""
}
