package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"iptv-gateway"`

	Server  ServerConfig  `envPrefix:"SERVER_"`
	DB      DBConfig      `envPrefix:"DB_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Auth    AuthConfig    `envPrefix:"AUTH_"`
	Sync    SyncConfig    `envPrefix:"SYNC_"`
	Session SessionConfig `envPrefix:"SESSION_"`
	Email   EmailConfig   `envPrefix:"EMAIL_"`
	S3      S3Config      `envPrefix:"S3_"`
	Jaeger  JaegerConfig  `envPrefix:"JAEGER_"`
}

type ServerConfig struct {
	Mode   string `env:"MODE" envDefault:"dev"`
	Scheme string `env:"SCHEME" envDefault:"http"`
	Domain string `env:"DOMAIN" envDefault:"localhost"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// PublicDomain is substituted for {{DOMAIN}} in generated playlists
	// and must be the scheme://host[:port] subscribers reach us on.
	PublicDomain string `env:"PUBLIC_DOMAIN" envDefault:"http://localhost:8080"`
}

type DBConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER" envDefault:"postgres"`
	Password string `env:"PASSWORD" envDefault:"postgres"`
	Database string `env:"DATABASE" envDefault:"iptv"`
}

type RedisConfig struct {
	Addr string `env:"ADDR" envDefault:"localhost:6379"`
	Pass string `env:"PASS" envDefault:""`
}

type AuthConfig struct {
	JWT JWTConfig `envPrefix:"JWT_"`
}

type JWTConfig struct {
	Secret string `env:"SECRET,required"`
	Issuer string `env:"ISSUER" envDefault:"iptv-gateway"`
}

type SyncConfig struct {
	SourceURL       string        `env:"SOURCE_URL"`
	DownloadTimeout time.Duration `env:"DOWNLOAD_TIMEOUT" envDefault:"5m"`
	BatchSize       int           `env:"BATCH_SIZE" envDefault:"5000"`
	Workers         int           `env:"WORKERS" envDefault:"2"`
	MaxRetries      int           `env:"MAX_RETRIES" envDefault:"3"`
	TemplateDir     string        `env:"TEMPLATE_DIR" envDefault:"data/m3u"`
}

type SessionConfig struct {
	IdleTimeout   time.Duration `env:"IDLE_TIMEOUT" envDefault:"30m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`
}

type EmailConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Server  string `env:"SERVER"`
	Port    int    `env:"PORT" envDefault:"587"`
	User    string `env:"USER"`
	Pass    string `env:"PASS"`
	Admin   string `env:"ADMIN"`
}

type S3Config struct {
	Enabled   bool   `env:"ENABLED" envDefault:"false"`
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"iptv-templates"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

type JaegerConfig struct {
	Sampler  JaegerSamplerConfig  `envPrefix:"SAMPLER_"`
	Reporter JaegerReporterConfig `envPrefix:"REPORTER_"`
}

type JaegerSamplerConfig struct {
	Type  string `env:"TYPE" envDefault:"const"`
	Param int    `env:"PARAM" envDefault:"1"`
}

type JaegerReporterConfig struct {
	LogSpans           bool   `env:"LOG_SPANS" envDefault:"false"`
	LocalAgentHostPort string `env:"AGENT" envDefault:"localhost:6831"`
}

func MustLoad() Config {
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, relying on process environment")
	}

	conf := Config{}
	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to parse configuration: %v", err))
	}

	return conf
}
