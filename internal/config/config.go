package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Auth     AuthConfig     `yaml:"auth" mapstructure:"auth"`
	Upload   UploadConfig   `yaml:"upload" mapstructure:"upload"`
	Queue    QueueConfig    `yaml:"queue" mapstructure:"queue"`
	Mail     MailConfig     `yaml:"mail" mapstructure:"mail"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Seed     SeedConfig     `yaml:"seed" mapstructure:"seed"`
}

type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	TrustProxy     bool     `yaml:"trust_proxy" mapstructure:"trust_proxy"`
}

type DatabaseConfig struct {
	URL      string `yaml:"url" mapstructure:"url"`
	MaxConns int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

type AuthConfig struct {
	JWTSecret          string        `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	TokenTTL           time.Duration `yaml:"token_ttl" mapstructure:"token_ttl"`
	LoginRatePerMinute int           `yaml:"login_rate_per_minute" mapstructure:"login_rate_per_minute"`
	BcryptCost         int           `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
}

// UploadConfig controls lead file uploads. RollbackOnFailure deletes the
// leads already written by an upload when a later write fails.
type UploadConfig struct {
	Dir               string `yaml:"dir" mapstructure:"dir"`
	MaxBytes          int64  `yaml:"max_bytes" mapstructure:"max_bytes"`
	RollbackOnFailure bool   `yaml:"rollback_on_failure" mapstructure:"rollback_on_failure"`
}

// QueueConfig configures RabbitMQ. An empty URL disables notifications.
type QueueConfig struct {
	URL string `yaml:"url" mapstructure:"url"`
}

type MailConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	From     string `yaml:"from" mapstructure:"from"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

type SeedConfig struct {
	AdminName     string `yaml:"admin_name" mapstructure:"admin_name"`
	AdminEmail    string `yaml:"admin_email" mapstructure:"admin_email"`
	AdminPassword string `yaml:"admin_password" mapstructure:"admin_password"`
}

// legacyEnv maps config keys to the unprefixed variable names older
// deployments use. The prefixed name still wins when both are set.
var legacyEnv = map[string]string{
	"database.url":    "DATABASE_URL",
	"auth.jwt_secret": "JWT_SECRET",
	"auth.token_ttl":  "JWT_EXPIRE",
	"queue.url":       "RABBITMQ_URL",
	"mail.host":       "MAIL_HOST",
	"mail.user":       "MAIL_USER",
	"mail.password":   "MAIL_PASS",
}

const envPrefix = "LEADDIST"

// Load reads .env, an optional config.yaml and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return nil, eris.Wrapf(err, "config: bind %s", key)
		}
	}

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.trust_proxy", false)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.login_rate_per_minute", 10)
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_bytes", 5*1024*1024)
	v.SetDefault("upload.rollback_on_failure", false)
	v.SetDefault("queue.url", "")
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.user", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "no-reply@leaddist.local")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("seed.admin_name", "Admin")
	v.SetDefault("seed.admin_email", "admin@example.com")
	v.SetDefault("seed.admin_password", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return eris.New("config: database.url is required")
	}
	if c.Auth.JWTSecret == "" {
		return eris.New("config: auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return eris.New("config: auth.token_ttl must be positive")
	}
	if c.Upload.MaxBytes <= 0 {
		return eris.New("config: upload.max_bytes must be positive")
	}
	return nil
}

// MailEnabled reports whether SMTP settings are present.
func (c *Config) MailEnabled() bool {
	return c.Mail.Host != ""
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
