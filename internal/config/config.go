// Load envs from .env
// Load YAML config
// Validate config
// Provide default values

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Safety holds the knobs every outreach action is gated on.
type Safety struct {
	MaxActionsPerDay      int  `yaml:"max_actions_per_day"`
	MinDelaySeconds       int  `yaml:"min_delay_between_actions"`
	MaxDelaySeconds       int  `yaml:"max_delay_between_actions"`
	HumanApprovalRequired bool `yaml:"human_approval_required"`
	// Zero means approval waits until answered or the run is cancelled.
	ApprovalTimeoutSeconds int `yaml:"approval_timeout_seconds"`
}

// Profile is the user profile recruiters and jobs are matched against.
type Profile struct {
	Name            string   `yaml:"name"`
	Headline        string   `yaml:"headline"`
	TargetCompanies []string `yaml:"target_companies"`
	Skills          []string `yaml:"skills"`
	YearsExperience int      `yaml:"years_experience"`
	Summary         string   `yaml:"summary"`
}

type Search struct {
	RecruiterKeywords []string `yaml:"recruiter_keywords"`
	JobKeywords       []string `yaml:"job_keywords"`
	Locations         []string `yaml:"locations"`
	MaxRecruiters     int      `yaml:"max_recruiters"`
	MaxJobs           int      `yaml:"max_jobs"`
	MinMatchScore     float64  `yaml:"min_match_score"`
}

type Config struct {
	LinkedInEmail    string  `yaml:"linkedin_email"`
	LinkedInPassword string  `yaml:"linkedin_password"`
	Safety           Safety  `yaml:"safety"`
	Profile          Profile `yaml:"profile"`
	Search           Search  `yaml:"search"`

	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`

	//Paths
	CookiesPath string `yaml:"cookies_path"`
	StatePath   string `yaml:"state_path"`
	LogDir      string `yaml:"log_dir"`

	// Optional Postgres DSN; empty selects the file-backed ledger.
	DatabaseURL string `yaml:"database_url"`

	LogLevel string `yaml:"log_level"`
	Headless bool   `yaml:"headless"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	//Override with env vars
	if email := os.Getenv("LINKEDIN_EMAIL"); email != "" {
		cfg.LinkedInEmail = email
	}
	if password := os.Getenv("LINKEDIN_PASSWORD"); password != "" {
		cfg.LinkedInPassword = password
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Safety.MaxActionsPerDay == 0 {
		c.Safety.MaxActionsPerDay = 20
	}
	if c.Safety.MinDelaySeconds == 0 {
		c.Safety.MinDelaySeconds = 300
	}
	if c.Safety.MaxDelaySeconds == 0 {
		c.Safety.MaxDelaySeconds = 900
	}
	if c.Search.MaxRecruiters == 0 {
		c.Search.MaxRecruiters = 10
	}
	if c.Search.MaxJobs == 0 {
		c.Search.MaxJobs = 20
	}
	if c.Search.MinMatchScore == 0 {
		c.Search.MinMatchScore = 50.0
	}
	if len(c.Search.RecruiterKeywords) == 0 {
		c.Search.RecruiterKeywords = []string{"Technical Recruiter"}
	}
	if c.CookiesPath == "" {
		c.CookiesPath = ".cookies"
	}
	if c.StatePath == "" {
		c.StatePath = "sessions"
	}
	if c.LogDir == "" {
		c.LogDir = "logs"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	if c.LinkedInEmail == "" || c.LinkedInPassword == "" {
		return fmt.Errorf("LINKEDIN_EMAIL and LINKEDIN_PASSWORD are required")
	}
	if c.Safety.MinDelaySeconds > c.Safety.MaxDelaySeconds {
		return fmt.Errorf("min_delay_between_actions (%d) exceeds max_delay_between_actions (%d)",
			c.Safety.MinDelaySeconds, c.Safety.MaxDelaySeconds)
	}
	if c.Safety.MaxActionsPerDay < 0 {
		return fmt.Errorf("max_actions_per_day must not be negative")
	}
	return nil
}

// MinDelay is the enforced spacing between two outreach actions.
func (s Safety) MinDelay() time.Duration {
	return time.Duration(s.MinDelaySeconds) * time.Second
}

func (s Safety) MaxDelay() time.Duration {
	return time.Duration(s.MaxDelaySeconds) * time.Second
}

func (s Safety) ApprovalTimeout() time.Duration {
	return time.Duration(s.ApprovalTimeoutSeconds) * time.Second
}
