package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`        // Environment (dev, staging, prod)
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"` // Log level (debug, info, warn, error)
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	DatabaseFile string `env:"WORKSPACE_DATABASE_FILE" envDefault:"workspace.db"`

	// AuthSecret is the HMAC secret shared with the identity provider that
	// issues access tokens. This service only verifies tokens.
	AuthSecret string `env:"WORKSPACE_AUTH_SECRET,required"`
	AuthIssuer string `env:"WORKSPACE_AUTH_ISSUER" envDefault:"hivedesk-auth"`

	// ArchiveGraceWindow is how long an archived workspace survives before
	// the reaper may delete it.
	ArchiveGraceWindow time.Duration `env:"WORKSPACE_ARCHIVE_GRACE_WINDOW" envDefault:"720h"`
	ReaperInterval     time.Duration `env:"WORKSPACE_REAPER_INTERVAL" envDefault:"1h"`

	InvitationTTL     time.Duration `env:"WORKSPACE_INVITATION_TTL" envDefault:"168h"`
	DefaultMaxMembers int           `env:"WORKSPACE_DEFAULT_MAX_MEMBERS" envDefault:"50"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
