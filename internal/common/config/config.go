// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	AWS           AWSConfig          `mapstructure:"aws"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Channels      ChannelsConfig     `mapstructure:"channels"`
	Verification  VerificationConfig `mapstructure:"verification"`
	Integrations  IntegrationConfig  `mapstructure:"integrations"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int  `mapstructure:"port"`
	ReadTimeout     int  `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int  `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int  `mapstructure:"shutdown_timeout"` // milliseconds
	SeedDemoData    bool `mapstructure:"seed_demo_data"`
}

// AWSConfig holds settings for every AWS-backed port.
type AWSConfig struct {
	Region string `mapstructure:"region"`

	Lex struct {
		BotID      string `mapstructure:"bot_id"`
		BotAliasID string `mapstructure:"bot_alias_id"`
		LocaleID   string `mapstructure:"locale_id"`
	} `mapstructure:"lex"`

	Bedrock struct {
		ModelID     string  `mapstructure:"model_id"`
		Temperature float64 `mapstructure:"temperature"`
	} `mapstructure:"bedrock"`

	DynamoDB struct {
		UsersTable        string `mapstructure:"users_table"`
		ApplicationsTable string `mapstructure:"applications_table"`
	} `mapstructure:"dynamodb"`

	SES struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"ses"`

	SNS struct {
		Enabled            bool   `mapstructure:"enabled"`
		DefaultSMSSenderID string `mapstructure:"default_sms_sender_id"`
	} `mapstructure:"sns"`
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	CacheTTL int    `mapstructure:"cache_ttl"` // milliseconds
}

// ChannelPolicy tunes routing and formatting per delivery channel. The
// confidence threshold decides when a recognized intent is trusted; noisier
// input channels run with a stricter cutoff.
type ChannelPolicy struct {
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`
	MaxReplyLength      int     `mapstructure:"max_reply_length"`
	MaxTokens           int     `mapstructure:"max_tokens"`
}

type ChannelsConfig struct {
	Web      ChannelPolicy `mapstructure:"web"`
	WhatsApp ChannelPolicy `mapstructure:"whatsapp"`
}

// PolicyFor returns the channel policy for a channel name, defaulting to web.
func (c ChannelsConfig) PolicyFor(channel string) ChannelPolicy {
	if channel == "whatsapp" {
		return c.WhatsApp
	}
	return c.Web
}

// VerificationConfig holds document-analysis thresholds.
type VerificationConfig struct {
	VerifiedConfidence int `mapstructure:"verified_confidence"` // slot marked verified above this
	FilenameMinimum    int `mapstructure:"filename_minimum"`    // filename-only acceptance floor
}

// IntegrationConfig holds settings for external messaging transports.
type IntegrationConfig struct {
	Twilio struct {
		AccountSID string `mapstructure:"account_sid"`
		AuthToken  string `mapstructure:"auth_token"`
	} `mapstructure:"twilio"`
}

// NotificationConfig holds settings for completion notifications.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"sms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
