// internal/config/config.go
package config

import (
	"log"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	// robfig/cron の標準5フィールド形式
	SyncCron     string `mapstructure:"sync_cron"`
	ReminderCron string `mapstructure:"reminder_cron"`
	// 全ユーザー同期時の同時実行数 (ユーザー単位の並列)
	SyncConcurrency int `mapstructure:"sync_concurrency"`
}

type LeetCodeConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	SubmissionLimit int    `mapstructure:"submission_limit"`
}

type MailerConfig struct {
	Type string `mapstructure:"type"` // "log" | "smtp" | "ses"
}

type SMTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	From string `mapstructure:"from"`
}

type SESConfig struct {
	Region          string `mapstructure:"region"`
	From            string `mapstructure:"from"`
	AuthType        string `mapstructure:"auth_type"` // "iam_role" | "static_credentials"
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppConfig      `mapstructure:"app"`
	LeetCode LeetCodeConfig `mapstructure:"leetcode"`
	Mailer   MailerConfig   `mapstructure:"mailer"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
	SES      SESConfig      `mapstructure:"ses"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

var Cfg Config

func LoadConfig(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	// 環境変数からの上書き (例: APP_SERVER_PORT)
	viper.SetEnvPrefix("APP")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("ses.access_key_id", "AWS_ACCESS_KEY_ID")
	viper.BindEnv("ses.secret_access_key", "AWS_SECRET_ACCESS_KEY")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: Config file not found. Using default settings or environment variables if available.")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	// --- デフォルト値の設定 ---
	if Cfg.Server.Port == "" {
		Cfg.Server.Port = DefaultServerPort
	}
	if Cfg.Log.Level == "" {
		Cfg.Log.Level = DefaultLogLevel
	}
	if Cfg.App.SyncCron == "" {
		Cfg.App.SyncCron = DefaultSyncCron
	}
	if Cfg.App.ReminderCron == "" {
		Cfg.App.ReminderCron = DefaultReminderCron
	}
	if Cfg.App.SyncConcurrency <= 0 {
		Cfg.App.SyncConcurrency = DefaultSyncConcurrency
	}
	if Cfg.LeetCode.BaseURL == "" {
		Cfg.LeetCode.BaseURL = DefaultLeetCodeBaseURL
	}
	if Cfg.LeetCode.TimeoutSeconds <= 0 {
		Cfg.LeetCode.TimeoutSeconds = DefaultLeetCodeTimeoutSeconds
	}
	if Cfg.LeetCode.SubmissionLimit <= 0 {
		Cfg.LeetCode.SubmissionLimit = DefaultSubmissionLimit
	}
	if Cfg.Mailer.Type == "" {
		Cfg.Mailer.Type = DefaultMailerType
	}
	if Cfg.Database.URL == "" {
		log.Println("Warning: Database URL is not set in config.")
	}

	log.Println("Config loaded successfully")
	log.Printf("Server Port: %s", Cfg.Server.Port)
	log.Printf("Sync Cron: %q / Reminder Cron: %q", Cfg.App.SyncCron, Cfg.App.ReminderCron)
	log.Printf("Mailer Type: %s", Cfg.Mailer.Type)

	return nil
}
