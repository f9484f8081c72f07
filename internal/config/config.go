package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP struct {
		Port string `yaml:"port"`
	} `yaml:"http"`

	Admin struct {
		Port string `yaml:"port"`
	} `yaml:"admin"`

	Database struct {
		DSN string `yaml:"dsn"`
	} `yaml:"database"`

	JWT struct {
		PrivateKey string        `yaml:"privateKey"`
		TTL        time.Duration `yaml:"ttl"`
	} `yaml:"jwt"`

	Mail struct {
		APIKey    string `yaml:"apiKey"`
		Domain    string `yaml:"domain"`
		FromEmail string `yaml:"fromEmail"`
		QueueSize int    `yaml:"queueSize"`
		Workers   int    `yaml:"workers"`
	} `yaml:"mail"`

	S3 struct {
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"accessKey"`
		SecretKey string `yaml:"secretKey"`
		Bucket    string `yaml:"bucket"`
		PublicURL string `yaml:"publicUrl"`
	} `yaml:"s3"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Sentry struct {
		DSN         string `yaml:"dsn"`
		Environment string `yaml:"environment"`
	} `yaml:"sentry"`

	Promotion struct {
		SweepInterval time.Duration `yaml:"sweepInterval"`
	} `yaml:"promotion"`
}

func defaults() Config {
	cfg := Config{}
	cfg.HTTP.Port = "8080"
	cfg.Admin.Port = "9090"
	cfg.JWT.TTL = 7 * 24 * time.Hour
	cfg.Mail.QueueSize = 100
	cfg.Mail.Workers = 2
	cfg.S3.Region = "us-east-1"
	cfg.Log.Level = "info"
	cfg.Promotion.SweepInterval = time.Hour
	return cfg
}

func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	// Environment overrides (expected in deploy).
	strs := map[string]*string{
		"PORT":               &cfg.HTTP.Port,
		"ADMIN_PORT":         &cfg.Admin.Port,
		"DATABASE_URL":       &cfg.Database.DSN,
		"JWT_PRIVATE_KEY":    &cfg.JWT.PrivateKey,
		"MAILGUN_API_KEY":    &cfg.Mail.APIKey,
		"MAILGUN_DOMAIN":     &cfg.Mail.Domain,
		"MAILGUN_FROM_EMAIL": &cfg.Mail.FromEmail,
		"S3_REGION":          &cfg.S3.Region,
		"S3_ENDPOINT":        &cfg.S3.Endpoint,
		"S3_ACCESS_KEY":      &cfg.S3.AccessKey,
		"S3_SECRET_KEY":      &cfg.S3.SecretKey,
		"S3_BUCKET":          &cfg.S3.Bucket,
		"S3_PUBLIC_URL":      &cfg.S3.PublicURL,
		"LOG_LEVEL":          &cfg.Log.Level,
		"SENTRY_DSN":         &cfg.Sentry.DSN,
		"SENTRY_ENVIRONMENT": &cfg.Sentry.Environment,
	}
	for env, dst := range strs {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"JWT_TTL":                  &cfg.JWT.TTL,
		"PROMOTION_SWEEP_INTERVAL": &cfg.Promotion.SweepInterval,
	}
	for env, dst := range durations {
		if v := os.Getenv(env); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", env, err)
			}
			*dst = d
		}
	}

	ints := map[string]*int{
		"MAIL_QUEUE_SIZE": &cfg.Mail.QueueSize,
		"MAIL_WORKERS":    &cfg.Mail.Workers,
	}
	for env, dst := range ints {
		if v := os.Getenv(env); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", env, err)
			}
			*dst = n
		}
	}

	if cfg.Database.DSN == "" {
		return Config{}, errors.New("missing database dsn (set database.dsn in config or DATABASE_URL)")
	}
	if cfg.JWT.PrivateKey == "" {
		return Config{}, errors.New("missing jwt private key (set jwt.privateKey in config or JWT_PRIVATE_KEY)")
	}
	if cfg.Promotion.SweepInterval <= 0 {
		return Config{}, errors.New("promotion.sweepInterval must be positive")
	}

	return cfg, nil
}

// MailEnabled reports whether outbound mail is configured.
func (c Config) MailEnabled() bool {
	return c.Mail.APIKey != "" && c.Mail.Domain != ""
}

// UploadsEnabled reports whether an upload bucket is configured.
func (c Config) UploadsEnabled() bool {
	return c.S3.Bucket != ""
}
