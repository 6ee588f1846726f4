package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockScope/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Ticker         string        `yaml:"ticker"`
	StartDate      string        `yaml:"start_date"` // 2006-01-02
	EndDate        string        `yaml:"end_date"`   // 2006-01-02, empty = today
	InitialCapital float64       `yaml:"initial_capital"`
	Windows        model.Windows `yaml:"windows"`
	Display        struct {
		SMAFast bool `yaml:"sma_fast"`
		SMASlow bool `yaml:"sma_slow"`
		RSI     bool `yaml:"rsi"`
		MACD    bool `yaml:"macd"`
	} `yaml:"display"`
	Compare struct {
		Tickers []string `yaml:"tickers"`
	} `yaml:"compare"`
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo" or "csv"
		CSVDir   string `yaml:"csv_dir"`
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		WatchCron string `yaml:"watch_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Defaults are set up front so that omitted YAML fields
// (including booleans) keep them.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKSCOPE_TICKER"); v != "" {
		cfg.Ticker = v
	}
	if v := os.Getenv("STOCKSCOPE_START"); v != "" {
		cfg.StartDate = v
	}
	if v := os.Getenv("STOCKSCOPE_END"); v != "" {
		cfg.EndDate = v
	}
	if v := os.Getenv("INITIAL_CAPITAL"); v != "" {
		if capital, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.InitialCapital = capital
		}
	}
	if v := os.Getenv("CSV_DIR"); v != "" {
		cfg.DataSource.Provider = "csv"
		cfg.DataSource.CSVDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Schedule.WatchCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	if cfg.EndDate == "" {
		cfg.EndDate = time.Now().UTC().Format("2006-01-02")
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{
		Ticker:         "AAPL",
		StartDate:      "2020-01-01",
		InitialCapital: 10000.0,
		Windows:        model.DefaultWindows(),
	}
	cfg.Display.SMAFast = true
	cfg.Display.SMASlow = true
	cfg.Display.RSI = true
	cfg.Display.MACD = true
	cfg.DataSource.Provider = "yahoo"
	cfg.Schedule.WatchCron = "0 30 22 * * 1-5"
	return cfg
}

// Validate checks that all required fields are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Ticker) == "" {
		return fmt.Errorf("ticker is required")
	}
	if c.InitialCapital <= 0 {
		return fmt.Errorf("initial_capital must be positive")
	}
	start, end, err := c.DateRange()
	if err != nil {
		return err
	}
	if start.After(end) {
		return fmt.Errorf("start_date %s is after end_date %s", c.StartDate, c.EndDate)
	}
	switch c.DataSource.Provider {
	case "yahoo":
	case "csv":
		if c.DataSource.CSVDir == "" {
			return fmt.Errorf("data_source.csv_dir is required for the csv provider")
		}
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}
	return nil
}

// DateRange parses the configured date strings.
func (c *Config) DateRange() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", c.StartDate)
	if err != nil {
		return start, end, fmt.Errorf("parse start_date: %w", err)
	}
	end, err = time.Parse("2006-01-02", c.EndDate)
	if err != nil {
		return start, end, fmt.Errorf("parse end_date: %w", err)
	}
	return start, end, nil
}
