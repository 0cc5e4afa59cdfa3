package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Sheets     SheetsConfig      `yaml:"sheets"`
	AI         AIConfig          `yaml:"ai"`
	Email      EmailConfig       `yaml:"email"`
	LinkedIn   LinkedInConfig    `yaml:"linkedin"`
	Reddit     RedditConfig      `yaml:"reddit"`
	Scorer     ScorerConfig      `yaml:"scorer"`
	Messages   MessagesConfig    `yaml:"messages"`
	Report     ReportConfig      `yaml:"report"`
	Schedules  map[string]string `yaml:"schedules"`
	Monitoring MonitoringConfig  `yaml:"monitoring"`
	DataDir    string            `yaml:"data_dir"`
}

type SheetsConfig struct {
	ClientID      string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret  string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenFile     string `yaml:"token_file"`
	SpreadsheetID string `yaml:"spreadsheet_id" env:"LEADGEN_SPREADSHEET_ID"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

type LinkedInConfig struct {
	SessionCookie   string   `yaml:"session_cookie" env:"LINKEDIN_SESSION_COOKIE"`
	Industries      []string `yaml:"industries"`
	Roles           []string `yaml:"roles"`
	MaxPages        int      `yaml:"max_pages"`
	MaxLeads        int      `yaml:"max_leads"`
	EnrichPerSearch int      `yaml:"enrich_per_search"`
}

type RedditConfig struct {
	UserAgent  string   `yaml:"user_agent" env:"REDDIT_USER_AGENT"`
	Subreddits []string `yaml:"subreddits"`
	Keywords   []string `yaml:"keywords"`
	TimeFilter string   `yaml:"time_filter"`
	PostLimit  int      `yaml:"post_limit"`
}

type ScorerConfig struct {
	UseAIAnalysis    bool `yaml:"use_ai_analysis"`
	MaxLinkedInLeads int  `yaml:"max_linkedin_leads"`
	MaxRedditLeads   int  `yaml:"max_reddit_leads"`
}

type MessagesConfig struct {
	MaxLinkedInLeads int `yaml:"max_linkedin_leads"`
	MaxRedditLeads   int `yaml:"max_reddit_leads"`
}

type ReportConfig struct {
	DaysBack     int    `yaml:"days_back"`
	ResponseDays int    `yaml:"response_days"`
	TemplateFile string `yaml:"template_file"`
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	cfg.applyEnv()
	cfg.ApplyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if c.Sheets.ClientID == "" {
		c.Sheets.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if c.Sheets.ClientSecret == "" {
		c.Sheets.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if c.Sheets.SpreadsheetID == "" {
		c.Sheets.SpreadsheetID = os.Getenv("LEADGEN_SPREADSHEET_ID")
	}
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Email.Username == "" {
		c.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if c.Email.Password == "" {
		c.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}
	if c.LinkedIn.SessionCookie == "" {
		c.LinkedIn.SessionCookie = os.Getenv("LINKEDIN_SESSION_COOKIE")
	}
	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = os.Getenv("REDDIT_USER_AGENT")
	}
}

// ApplyDefaults fills in every unset field with the stock value.
func (c *Config) ApplyDefaults() {
	if c.Sheets.TokenFile == "" {
		c.Sheets.TokenFile = "sheets_token.json"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Email.SMTPServer == "" {
		c.Email.SMTPServer = "smtp.gmail.com"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.FromEmail == "" {
		c.Email.FromEmail = c.Email.Username
	}
	if c.Email.ToEmail == "" {
		c.Email.ToEmail = c.Email.Username
	}

	if len(c.LinkedIn.Industries) == 0 {
		c.LinkedIn.Industries = []string{
			"Tech", "Finance", "Consulting", "Startups", "Healthcare", "Law",
		}
	}
	if len(c.LinkedIn.Roles) == 0 {
		c.LinkedIn.Roles = []string{
			"CEO", "Founder", "Co-Founder", "Business Owner",
			"Managing Director", "Partner",
		}
	}
	if c.LinkedIn.MaxPages == 0 {
		c.LinkedIn.MaxPages = 2
	}
	if c.LinkedIn.MaxLeads == 0 {
		c.LinkedIn.MaxLeads = 50
	}
	if c.LinkedIn.EnrichPerSearch == 0 {
		c.LinkedIn.EnrichPerSearch = 5
	}

	if c.Reddit.UserAgent == "" {
		c.Reddit.UserAgent = "LeadGenerationBot/1.0"
	}
	if len(c.Reddit.Subreddits) == 0 {
		c.Reddit.Subreddits = []string{
			"Entrepreneur", "Productivity", "MentalHealth", "GetMotivated",
			"WorkReform", "careerguidance", "jobs", "careeradvice",
			"personalfinance", "cscareerquestions",
		}
	}
	if len(c.Reddit.Keywords) == 0 {
		c.Reddit.Keywords = []string{
			"burnout", "feeling lost", "overwhelmed", "career transition",
			"work-life balance", "stress", "anxiety", "depression",
			"overworked", "career change", "hate my job", "toxic workplace",
			"mental health", "exhausted", "quit my job", "working too much",
		}
	}
	if c.Reddit.TimeFilter == "" {
		c.Reddit.TimeFilter = "month"
	}
	if c.Reddit.PostLimit == 0 {
		c.Reddit.PostLimit = 100
	}

	if c.Scorer.MaxLinkedInLeads == 0 {
		c.Scorer.MaxLinkedInLeads = 50
	}
	if c.Scorer.MaxRedditLeads == 0 {
		c.Scorer.MaxRedditLeads = 50
	}
	if c.Messages.MaxLinkedInLeads == 0 {
		c.Messages.MaxLinkedInLeads = 10
	}
	if c.Messages.MaxRedditLeads == 0 {
		c.Messages.MaxRedditLeads = 10
	}
	if c.Report.DaysBack == 0 {
		c.Report.DaysBack = 1
	}
	if c.Report.ResponseDays == 0 {
		c.Report.ResponseDays = 7
	}
	if c.Report.TemplateFile == "" {
		c.Report.TemplateFile = "agents/email-reporter/email_template.html"
	}
	if c.Monitoring.HealthPort == 0 {
		c.Monitoring.HealthPort = 8080
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Schedules == nil {
		c.Schedules = map[string]string{}
	}
}

func (c *Config) validate() error {
	if c.Sheets.ClientID == "" {
		return fmt.Errorf("Google client ID is required (set GOOGLE_CLIENT_ID or sheets.client_id)")
	}
	if c.Sheets.ClientSecret == "" {
		return fmt.Errorf("Google client secret is required (set GOOGLE_CLIENT_SECRET or sheets.client_secret)")
	}
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("spreadsheet ID is required (set LEADGEN_SPREADSHEET_ID or sheets.spreadsheet_id)")
	}
	if c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	if c.Email.Username == "" {
		return fmt.Errorf("Email username is required (set EMAIL_USERNAME or email.username)")
	}
	if c.Email.Password == "" {
		return fmt.Errorf("Email password is required (set EMAIL_PASSWORD or email.password)")
	}
	return nil
}
