package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
	Realtime   RealtimeConfig   `yaml:"realtime"`
	Redis      RedisConfig      `yaml:"redis"`
	NATS       NATSConfig       `yaml:"nats"`
	Escalation EscalationConfig `yaml:"escalation"`
	Numbering  NumberingConfig  `yaml:"numbering"`
}

// ServerConfig holds settings for the operational HTTP endpoint (health/readiness).
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Real-time transport drivers.
const (
	RealtimeDriverRedis = "redis"
	RealtimeDriverNATS  = "nats"
	RealtimeDriverLog   = "log"
)

// RealtimeConfig selects the transport notifications are pushed through.
type RealtimeConfig struct {
	Driver string `yaml:"driver" env:"REALTIME_DRIVER" env-default:"log"`
	// Prefix is the Redis channel prefix or NATS subject prefix; the
	// recipient id is appended to it.
	Prefix      string        `yaml:"prefix"       env:"REALTIME_PREFIX"       env-default:"notifications"`
	PushTimeout time.Duration `yaml:"push_timeout" env:"REALTIME_PUSH_TIMEOUT" env-default:"2s"`
}

// RedisConfig holds Redis connection settings for the pub/sub transport.
type RedisConfig struct {
	Addr        string        `yaml:"addr"         env:"REDIS_ADDR"         env-default:"localhost:6379"`
	Password    string        `yaml:"password"     env:"REDIS_PASSWORD"`
	DB          int           `yaml:"db"           env:"REDIS_DB"           env-default:"0"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
}

// NATSConfig holds NATS connection settings.
type NATSConfig struct {
	URL           string        `yaml:"url"            env:"NATS_URL"            env-default:"nats://localhost:4222"`
	Name          string        `yaml:"name"           env:"NATS_NAME"           env-default:"correspondence-backend"`
	ReconnectWait time.Duration `yaml:"reconnect_wait" env:"NATS_RECONNECT_WAIT" env-default:"2s"`
	MaxReconnects int           `yaml:"max_reconnects" env:"NATS_MAX_RECONNECTS" env-default:"60"`
}

// EscalationConfig holds scheduler and policy settings.
type EscalationConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"ESCALATION_ENABLED"          env-default:"true"`
	Schedule        string        `yaml:"schedule"         env:"ESCALATION_SCHEDULE"         env-default:"@every 5m"`
	BatchSize       int           `yaml:"batch_size"       env:"ESCALATION_BATCH_SIZE"       env-default:"200"`
	PriorityCeiling int           `yaml:"priority_ceiling" env:"ESCALATION_PRIORITY_CEILING" env-default:"10"`
	PolicyCacheTTL  time.Duration `yaml:"policy_cache_ttl" env:"ESCALATION_POLICY_CACHE_TTL" env-default:"1m"`
	LinkTemplate    string        `yaml:"link_template"    env:"ESCALATION_LINK_TEMPLATE"    env-default:"/distributions/{id}"`

	// Levels is used when the escalation_levels table holds no active rows.
	// DefaultLevels applies when this list is empty as well.
	Levels []LevelConfig `yaml:"levels"`
}

// LevelConfig is the YAML shape of one escalation level.
type LevelConfig struct {
	Level            int    `yaml:"level"`
	ThresholdMinutes int    `yaml:"threshold_minutes"`
	PriorityBump     int    `yaml:"priority_bump"`
	StatusOnReach    string `yaml:"status_on_reach"`
	ThrottleMinutes  int    `yaml:"throttle_minutes"`
	NotifyAssignee   bool   `yaml:"notify_assignee"`
	NotifyManager    bool   `yaml:"notify_manager"`
	NotifyAdmins     bool   `yaml:"notify_admins"`
	AutoReassign     bool   `yaml:"auto_reassign"`
	Severity         string `yaml:"severity"`
}

// DefaultLevels is the built-in three-tier policy.
func DefaultLevels() []LevelConfig {
	return []LevelConfig{
		{Level: 1, ThresholdMinutes: 60, PriorityBump: 1, StatusOnReach: "ESCALATED", ThrottleMinutes: 30,
			NotifyAssignee: true, Severity: "warning"},
		{Level: 2, ThresholdMinutes: 240, PriorityBump: 2, StatusOnReach: "ESCALATED", ThrottleMinutes: 60,
			NotifyAssignee: true, NotifyManager: true, AutoReassign: true, Severity: "warning"},
		{Level: 3, ThresholdMinutes: 1440, PriorityBump: 3, StatusOnReach: "ESCALATED", ThrottleMinutes: 120,
			NotifyAssignee: true, NotifyManager: true, NotifyAdmins: true, Severity: "danger"},
	}
}

// EffectiveLevels returns the configured levels or the defaults.
func (c EscalationConfig) EffectiveLevels() []LevelConfig {
	if len(c.Levels) == 0 {
		return DefaultLevels()
	}
	return c.Levels
}

// NumberingConfig holds sequence allocator settings.
type NumberingConfig struct {
	MaxAttempts  int    `yaml:"max_attempts"  env:"NUMBERING_MAX_ATTEMPTS"  env-default:"3"`
	DefaultScope string `yaml:"default_scope" env:"NUMBERING_DEFAULT_SCOPE" env-default:"INCOMING"`
}
