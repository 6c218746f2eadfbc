package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Session   SessionConfig   `mapstructure:"session"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Tracing   TracingConfig   `mapstructure:"tracing"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig 登录令牌和进度缓存的过期时间
type SessionConfig struct {
	TokenTTL    time.Duration `mapstructure:"token_ttl_hours"`
	ProgressTTL time.Duration `mapstructure:"progress_ttl_hours"`
}

// QuizConfig 默认组卷配额：20 判断 + 20 单选 + 10 多选
type QuizConfig struct {
	JudgmentCount       int      `mapstructure:"judgment_count"`
	SingleChoiceCount   int      `mapstructure:"single_choice_count"`
	MultipleChoiceCount int      `mapstructure:"multiple_choice_count"`
	Whitelist           []string `mapstructure:"whitelist"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("QUIZ")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	viper.SetDefault("session.token_ttl_hours", 168)
	viper.SetDefault("session.progress_ttl_hours", 24)
	viper.SetDefault("quiz.judgment_count", 20)
	viper.SetDefault("quiz.single_choice_count", 20)
	viper.SetDefault("quiz.multiple_choice_count", 10)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Session.TokenTTL = cfg.Session.TokenTTL * time.Hour
	cfg.Session.ProgressTTL = cfg.Session.ProgressTTL * time.Hour

	return &cfg, nil
}

// DefaultQuotas 组卷配额兜底，配置缺省时使用
func (c *QuizConfig) DefaultQuotas() (judgment, single, multiple int) {
	judgment, single, multiple = c.JudgmentCount, c.SingleChoiceCount, c.MultipleChoiceCount
	if judgment <= 0 {
		judgment = 20
	}
	if single <= 0 {
		single = 20
	}
	if multiple <= 0 {
		multiple = 10
	}
	return
}
