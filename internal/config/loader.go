package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/placement-scheduler/internal/scheduler"
)

// Config captures environment driven configuration values for the placement service.
type Config struct {
	HTTPPort        int
	SQLiteDSN       string
	SessionTTL      time.Duration
	PlacementPolicy string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPSender   string
}

// SMTPEnabled reports whether a mail relay has been configured.
func (c Config) SMTPEnabled() bool {
	return c.SMTPHost != ""
}

// Load parses configuration values from the current process environment. A
// .env file in the working directory is read first when present.
//
// The loader applies sensible defaults for optional fields while validating
// the values that are set and reporting every offending variable at once.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTPPort:        8080,
		SQLiteDSN:       "file:placement.db",
		SessionTTL:      24 * time.Hour,
		PlacementPolicy: string(scheduler.PolicyLegacy),
		SMTPPort:        "587",
		SMTPSender:      "Placement Scheduler",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("SCHEDULER_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "SCHEDULER_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("SCHEDULER_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("SCHEDULER_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "SCHEDULER_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if policyValue := strings.TrimSpace(os.Getenv("SCHEDULER_PLACEMENT_POLICY")); policyValue != "" {
		if !scheduler.ValidPolicy(scheduler.Policy(policyValue)) {
			invalid = append(invalid, "SCHEDULER_PLACEMENT_POLICY")
		} else {
			cfg.PlacementPolicy = policyValue
		}
	}

	cfg.SMTPHost = strings.TrimSpace(os.Getenv("SCHEDULER_SMTP_HOST"))
	if portValue := strings.TrimSpace(os.Getenv("SCHEDULER_SMTP_PORT")); portValue != "" {
		cfg.SMTPPort = portValue
	}
	cfg.SMTPUsername = strings.TrimSpace(os.Getenv("SCHEDULER_SMTP_USERNAME"))
	cfg.SMTPPassword = os.Getenv("SCHEDULER_SMTP_PASSWORD")
	cfg.SMTPFrom = strings.TrimSpace(os.Getenv("SCHEDULER_SMTP_FROM"))
	if sender := strings.TrimSpace(os.Getenv("SCHEDULER_SMTP_SENDER")); sender != "" {
		cfg.SMTPSender = sender
	}

	if cfg.SMTPHost != "" && cfg.SMTPFrom == "" {
		missing = append(missing, "SCHEDULER_SMTP_FROM")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables are not set: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("environment variables have invalid values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
