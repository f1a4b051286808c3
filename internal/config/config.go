package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "SEO_LEAD_CONFIG"

	openAIKeyEnv        = "OPENAI_API_KEY"
	openAIModelEnv      = "OPENAI_MODEL"
	dataForSEOLoginEnv  = "DATAFORSEO_LOGIN"
	dataForSEOPassEnv   = "DATAFORSEO_PASSWORD"
	sheetIDEnv          = "GOOGLE_SHEET_ID"
	sheetTokenEnv       = "GOOGLE_SHEETS_TOKEN"
	databaseDSNEnv      = "DATABASE_DSN"
	wordpressURLEnv     = "WORDPRESS_URL"
	wordpressTokenEnv   = "WORDPRESS_TOKEN"
	slackWebhookEnv     = "SLACK_WEBHOOK_URL"
	smtpUserEnv         = "SMTP_USER"
	smtpPasswordEnv     = "SMTP_PASSWORD"
	nicheEnv            = "NICHE"
	siteURLEnv          = "SITE_URL"
	logLevelEnv         = "LOG_LEVEL"
	dryRunEnv           = "DRY_RUN"
	portEnv             = "PORT"
	minKeywordVolumeEnv = "MIN_KEYWORD_VOLUME"
	topKeywordsEnv      = "TOP_KEYWORDS_TO_QUEUE"
)

// Config holds platform-wide settings. Built once at startup; the dry-run
// flag is fixed at construction and never flipped afterwards.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	OpenAI        OpenAIConfig       `yaml:"openai"`
	DataForSEO    DataForSEOConfig   `yaml:"dataforseo"`
	Sheets        SheetsConfig       `yaml:"sheets"`
	Database      DatabaseConfig     `yaml:"database"`
	WordPress     WordPressConfig    `yaml:"wordpress"`
	Images        ImagesConfig       `yaml:"images"`
	Indexing      IndexingConfig     `yaml:"indexing"`
	Analytics     AnalyticsConfig    `yaml:"analytics"`
	Notifications NotificationConfig `yaml:"notifications"`
	Site          SiteConfig         `yaml:"site"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Server        ServerConfig       `yaml:"server"`
	DryRun        bool               `yaml:"dryRun"`
}

// LoggingConfig selects handler level and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// OpenAIConfig defines how to contact the chat-completion API.
type OpenAIConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"apiKey"`
	MaxTokens int    `yaml:"maxTokens"`
	Retries   int    `yaml:"retries"`
}

// DataForSEOConfig holds keyword-data provider credentials.
type DataForSEOConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Login        string `yaml:"login"`
	Password     string `yaml:"password"`
	LocationCode int    `yaml:"locationCode"`
	LanguageCode string `yaml:"languageCode"`
}

// SheetsConfig addresses the shared spreadsheet.
type SheetsConfig struct {
	Endpoint      string `yaml:"endpoint"`
	SheetID       string `yaml:"sheetId"`
	Token         string `yaml:"token"`
	MinIntervalMS int    `yaml:"minIntervalMs"`
}

// MinInterval resolves the configured rate-limit floor between Sheets calls.
func (s SheetsConfig) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalMS) * time.Millisecond
}

// DatabaseConfig describes the optional Postgres run store.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// WordPressConfig wires the publishing endpoint.
type WordPressConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// ImagesConfig wires the image-generation provider.
type ImagesConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
	Model    string `yaml:"model"`
	Size     string `yaml:"size"`
}

// IndexingConfig wires the search-engine indexing submission endpoint.
type IndexingConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// AnalyticsConfig wires the analytics/search-console data service.
type AnalyticsConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
}

// NotificationConfig selects the outbound summary channel.
type NotificationConfig struct {
	Method string      `yaml:"method"` // none | slack | email
	Slack  SlackConfig `yaml:"slack"`
	SMTP   SMTPConfig  `yaml:"smtp"`
}

// SlackConfig holds the incoming-webhook URL.
type SlackConfig struct {
	WebhookURL string `yaml:"webhookUrl"`
}

// SMTPConfig holds mail relay settings for email notifications.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	To       string `yaml:"to"`
}

// SiteConfig identifies the target site and niche.
type SiteConfig struct {
	Niche string `yaml:"niche"`
	URL   string `yaml:"url"`
}

// PipelineConfig tunes the deterministic pipeline rules.
type PipelineConfig struct {
	MinKeywordVolume   int `yaml:"minKeywordVolume"`
	TopKeywordsToQueue int `yaml:"topKeywordsToQueue"`
}

// ServerConfig configures the HTTP dispatcher.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			cfg = defaultConfig()
			log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	setString := func(env string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			*dst = v
		}
	}
	setInt := func(env string, dst *int) {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString(openAIKeyEnv, &c.OpenAI.APIKey)
	setString(openAIModelEnv, &c.OpenAI.Model)
	setString(dataForSEOLoginEnv, &c.DataForSEO.Login)
	setString(dataForSEOPassEnv, &c.DataForSEO.Password)
	setString(sheetIDEnv, &c.Sheets.SheetID)
	setString(sheetTokenEnv, &c.Sheets.Token)
	setString(databaseDSNEnv, &c.Database.DSN)
	setString(wordpressURLEnv, &c.WordPress.URL)
	setString(wordpressTokenEnv, &c.WordPress.Token)
	setString(slackWebhookEnv, &c.Notifications.Slack.WebhookURL)
	setString(smtpUserEnv, &c.Notifications.SMTP.User)
	setString(smtpPasswordEnv, &c.Notifications.SMTP.Password)
	setString(nicheEnv, &c.Site.Niche)
	setString(siteURLEnv, &c.Site.URL)
	setString(logLevelEnv, &c.Logging.Level)
	setString(portEnv, &c.Server.Port)
	setInt(minKeywordVolumeEnv, &c.Pipeline.MinKeywordVolume)
	setInt(topKeywordsEnv, &c.Pipeline.TopKeywordsToQueue)

	if v := strings.ToLower(strings.TrimSpace(os.Getenv(dryRunEnv))); v != "" {
		c.DryRun = v == "true" || v == "1" || v == "yes"
	}
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		OpenAI: OpenAIConfig{
			Endpoint:  "https://api.openai.com/v1/chat/completions",
			Model:     "gpt-4o",
			MaxTokens: 4096,
			Retries:   2,
		},
		DataForSEO: DataForSEOConfig{
			Endpoint:     "https://api.dataforseo.com",
			LocationCode: 2840,
			LanguageCode: "en",
		},
		Sheets: SheetsConfig{
			Endpoint:      "https://sheets.googleapis.com/v4/spreadsheets",
			MinIntervalMS: 500,
		},
		WordPress: WordPressConfig{URL: "https://yourdomain.com"},
		Images: ImagesConfig{
			Endpoint: "https://api.openai.com/v1/images/generations",
			Model:    "dall-e-3",
			Size:     "1792x1024",
		},
		Indexing: IndexingConfig{
			Endpoint: "https://indexing.googleapis.com/v3/urlNotifications:publish",
		},
		Notifications: NotificationConfig{
			Method: "none",
			SMTP:   SMTPConfig{Host: "smtp.gmail.com", Port: 587},
		},
		Site: SiteConfig{Niche: "digital marketing", URL: "https://yourdomain.com"},
		Pipeline: PipelineConfig{
			MinKeywordVolume:   100,
			TopKeywordsToQueue: 10,
		},
		Server: ServerConfig{Port: "8080"},
	}
}
