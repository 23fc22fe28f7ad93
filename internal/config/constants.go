// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "leetcode_srs"
	AppVersion = "0.3.0"
)

// デフォルト設定値
const (
	DefaultServerPort             = ":8080"
	DefaultLogLevel               = "info"
	DefaultSyncCron               = "0 */6 * * *" // 6時間ごと
	DefaultReminderCron           = "0 9 * * *"   // 毎日 09:00 (UTC運用)
	DefaultSyncConcurrency        = 4
	DefaultLeetCodeBaseURL        = "https://leetcode.com"
	DefaultLeetCodeTimeoutSeconds = 10
	DefaultSubmissionLimit        = 20
	DefaultMailerType             = "log"
)
