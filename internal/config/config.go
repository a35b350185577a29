package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Study     StudyConfig     `mapstructure:"study"`
	AI        AIConfig        `mapstructure:"ai"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

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

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// StudyConfig carries the knobs of the running study. Task pools are
// configured explicitly: the submission flow draws from
// [task_pool_min, task_pool_max], the feedback pre-fetch flow from
// [feedback_task_pool_min, task_pool_max].
type StudyConfig struct {
	StartDate           string  `mapstructure:"start_date"` // YYYY-MM-DD, day index 0
	Timezone            string  `mapstructure:"timezone"`
	MinWords            int     `mapstructure:"min_words"`
	MaxWords            int     `mapstructure:"max_words"`
	SimilarityThreshold float64 `mapstructure:"similarity_threshold"`
	GoalTarget          int     `mapstructure:"goal_target"`
	GoalThreshold       int     `mapstructure:"goal_threshold"`
	TaskPoolMin         int     `mapstructure:"task_pool_min"`
	TaskPoolMax         int     `mapstructure:"task_pool_max"`
	FeedbackTaskPoolMin int     `mapstructure:"feedback_task_pool_min"`
}

// SubmissionTaskPool returns the task identifier space used by the submission flow.
func (s StudyConfig) SubmissionTaskPool() []int {
	return taskRange(s.TaskPoolMin, s.TaskPoolMax)
}

// FeedbackTaskPool returns the task identifier space used by the feedback pre-fetch flow.
func (s StudyConfig) FeedbackTaskPool() []int {
	return taskRange(s.FeedbackTaskPoolMin, s.TaskPoolMax)
}

func taskRange(min, max int) []int {
	if max < min {
		return nil
	}
	pool := make([]int, 0, max-min+1)
	for n := min; n <= max; n++ {
		pool = append(pool, n)
	}
	return pool
}

type AIConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("UIREVIEW")
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

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Study
	viper.BindEnv("study.start_date", "STUDY_START_DATE")
	viper.BindEnv("study.timezone", "STUDY_TIMEZONE")
	viper.BindEnv("study.goal_target", "GOAL_TARGET")
	viper.BindEnv("study.goal_threshold", "GOAL_THRESHOLD")

	// AI
	viper.BindEnv("ai.base_url", "AI_BASE_URL")
	viper.BindEnv("ai.api_key", "AI_API_KEY")
	viper.BindEnv("ai.model", "AI_MODEL")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	viper.SetDefault("study.min_words", 10)
	viper.SetDefault("study.max_words", 500)
	viper.SetDefault("study.similarity_threshold", 0.8)
	viper.SetDefault("study.goal_target", 80)
	viper.SetDefault("study.goal_threshold", 7)
	viper.SetDefault("study.task_pool_min", 1)
	viper.SetDefault("study.task_pool_max", 7)
	viper.SetDefault("study.feedback_task_pool_min", 0)
	viper.SetDefault("study.timezone", "UTC")
	viper.SetDefault("jwt.expire_hours", 24)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Study.StartDate == "" {
		return nil, fmt.Errorf("study.start_date is required")
	}

	return &cfg, nil
}
