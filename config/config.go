package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vadiminshakov/marti-upbit/internal/domain"
)

const (
	EnvAccessKey = "UPBIT_ACCESS_KEY"
	EnvSecretKey = "UPBIT_SECRET_KEY"

	DefaultJournalDir = "./wal/orders"
	DefaultLogFile    = "trading.log"
)

type Config struct {
	Quote             string
	Benchmark         string
	ShortMAPeriods    []int
	LongMAPeriod      int
	TopGainers        int
	TakeProfitPercent decimal.Decimal
	MinOrderValue     decimal.Decimal
	SizingDivisor     decimal.Decimal

	PollInterval time.Duration
	Schedule     domain.Schedule
	// Location wall clock the schedule is evaluated in.
	Location *time.Location

	DryRun bool
	// JournalDir order journal directory, empty disables the journal.
	JournalDir string
	LogFile    string
	LogLevel   string

	RequestsPerSecond float64
	HTTPTimeout       time.Duration

	AccessKey string
	SecretKey string
}

// ConfigTmp raw yaml representation, every field optional.
type ConfigTmp struct {
	Quote                string  `yaml:"quote,omitempty"`
	Benchmark            string  `yaml:"benchmark,omitempty"`
	ShortMAPeriodsStr    string  `yaml:"short_ma_periods,omitempty"`
	LongMAPeriodStr      string  `yaml:"long_ma_period,omitempty"`
	TopGainersStr        string  `yaml:"top_gainers,omitempty"`
	TakeProfitPercentStr string  `yaml:"take_profit_percent,omitempty"`
	MinOrderValueStr     string  `yaml:"min_order_value,omitempty"`
	SizingDivisorStr     string  `yaml:"sizing_divisor,omitempty"`
	PollInterval         string  `yaml:"poll_interval,omitempty"`
	WindowStart          string  `yaml:"window_start,omitempty"`
	WindowEnd            string  `yaml:"window_end,omitempty"`
	CancelAt             string  `yaml:"cancel_at,omitempty"`
	ReviewAt             string  `yaml:"review_at,omitempty"`
	EntryAt              string  `yaml:"entry_at,omitempty"`
	Location             string  `yaml:"location,omitempty"`
	DryRun               bool    `yaml:"dry_run"`
	JournalDir           *string `yaml:"journal_dir,omitempty"`
	LogFile              string  `yaml:"log_file,omitempty"`
	LogLevel             string  `yaml:"log_level,omitempty"`
	RequestsPerSecondStr string  `yaml:"requests_per_second,omitempty"`
	HTTPTimeout          string  `yaml:"http_timeout,omitempty"`
}

// Default returns the configuration used when no yaml file is given.
func Default() Config {
	return Config{
		Quote:             "KRW",
		Benchmark:         "BTC",
		ShortMAPeriods:    []int{2, 4, 8},
		LongMAPeriod:      120,
		TopGainers:        6,
		TakeProfitPercent: decimal.NewFromInt(10),
		MinOrderValue:     decimal.NewFromInt(5000),
		SizingDivisor:     decimal.NewFromInt(1000),
		PollInterval:      time.Minute,
		Schedule:          domain.DefaultSchedule(),
		Location:          time.Local,
		JournalDir:        DefaultJournalDir,
		LogFile:           DefaultLogFile,
		LogLevel:          "info",
		RequestsPerSecond: 8,
		HTTPTimeout:       10 * time.Second,
	}
}

// Get parses command line arguments and loads the configuration they point to.
// Credentials come from the environment, optionally populated from .env.
func Get(args []string) (Config, Options, error) {
	opts, err := ParseFlags(args)
	if err != nil {
		return Config{}, opts, err
	}
	if opts.Setup {
		return Config{}, opts, nil
	}

	conf, err := Load(opts.ConfigPath)
	return conf, opts, err
}

// Load reads path (defaults only when empty) and credentials from the environment.
func Load(path string) (Config, error) {
	conf := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config %s", path)
		}
		conf, err = Parse(data)
		if err != nil {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, errors.Wrap(err, "failed to load .env")
	}
	conf.AccessKey = os.Getenv(EnvAccessKey)
	conf.SecretKey = os.Getenv(EnvSecretKey)

	return conf, nil
}

// Parse decodes yaml over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	var tmp ConfigTmp
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse yaml config")
	}

	conf, err := tmp.toConfig()
	if err != nil {
		return Config{}, err
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func (c ConfigTmp) toConfig() (Config, error) {
	conf := Default()
	var err error

	if c.Quote != "" {
		conf.Quote = strings.ToUpper(c.Quote)
	}
	if c.Benchmark != "" {
		conf.Benchmark = strings.ToUpper(c.Benchmark)
	}

	if c.ShortMAPeriodsStr != "" {
		if conf.ShortMAPeriods, err = parsePeriods(c.ShortMAPeriodsStr); err != nil {
			return Config{}, fmt.Errorf("incorrect 'short_ma_periods' param in yaml config (format is 2,4,8), error: %w", err)
		}
	}
	if c.LongMAPeriodStr != "" {
		if conf.LongMAPeriod, err = strconv.Atoi(c.LongMAPeriodStr); err != nil {
			return Config{}, fmt.Errorf("incorrect 'long_ma_period' param in yaml config (must be an integer), error: %w", err)
		}
	}
	if c.TopGainersStr != "" {
		if conf.TopGainers, err = strconv.Atoi(c.TopGainersStr); err != nil {
			return Config{}, fmt.Errorf("incorrect 'top_gainers' param in yaml config (must be an integer), error: %w", err)
		}
	}

	for _, d := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"take_profit_percent", c.TakeProfitPercentStr, &conf.TakeProfitPercent},
		{"min_order_value", c.MinOrderValueStr, &conf.MinOrderValue},
		{"sizing_divisor", c.SizingDivisorStr, &conf.SizingDivisor},
	} {
		if d.raw == "" {
			continue
		}
		if *d.dst, err = decimal.NewFromString(d.raw); err != nil {
			return Config{}, fmt.Errorf("incorrect '%s' param in yaml config (must be a decimal), error: %w", d.name, err)
		}
	}

	for _, d := range []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"poll_interval", c.PollInterval, &conf.PollInterval},
		{"http_timeout", c.HTTPTimeout, &conf.HTTPTimeout},
	} {
		if d.raw == "" {
			continue
		}
		if *d.dst, err = time.ParseDuration(d.raw); err != nil {
			return Config{}, fmt.Errorf("incorrect '%s' param in yaml config (e.g. 1m, 10s), error: %w", d.name, err)
		}
	}

	for _, t := range []struct {
		name string
		raw  string
		dst  *domain.ClockTime
	}{
		{"window_start", c.WindowStart, &conf.Schedule.WindowStart},
		{"window_end", c.WindowEnd, &conf.Schedule.WindowEnd},
		{"cancel_at", c.CancelAt, &conf.Schedule.CancelAt},
		{"review_at", c.ReviewAt, &conf.Schedule.ReviewAt},
		{"entry_at", c.EntryAt, &conf.Schedule.EntryAt},
	} {
		if t.raw == "" {
			continue
		}
		if *t.dst, err = domain.ParseClockTime(t.raw); err != nil {
			return Config{}, fmt.Errorf("incorrect '%s' param in yaml config (format is HH:MM), error: %w", t.name, err)
		}
	}

	if c.Location != "" {
		if conf.Location, err = time.LoadLocation(c.Location); err != nil {
			return Config{}, fmt.Errorf("incorrect 'location' param in yaml config (e.g. Asia/Seoul), error: %w", err)
		}
	}

	if c.RequestsPerSecondStr != "" {
		if conf.RequestsPerSecond, err = strconv.ParseFloat(c.RequestsPerSecondStr, 64); err != nil {
			return Config{}, fmt.Errorf("incorrect 'requests_per_second' param in yaml config (must be a number), error: %w", err)
		}
	}

	conf.DryRun = c.DryRun
	if c.JournalDir != nil {
		conf.JournalDir = *c.JournalDir
	}
	if c.LogFile != "" {
		conf.LogFile = c.LogFile
	}
	if c.LogLevel != "" {
		conf.LogLevel = strings.ToLower(c.LogLevel)
	}

	return conf, nil
}

// Validate checks values the yaml decoder cannot.
func (c Config) Validate() error {
	if c.Quote == "" || c.Benchmark == "" {
		return fmt.Errorf("quote and benchmark currencies are required")
	}
	for _, p := range c.ShortMAPeriods {
		if p < 1 || p > 200 {
			return fmt.Errorf("short_ma_periods must be between 1 and 200, got %d", p)
		}
	}
	if len(c.ShortMAPeriods) == 0 {
		return fmt.Errorf("short_ma_periods must not be empty")
	}
	if c.LongMAPeriod < 1 || c.LongMAPeriod > 200 {
		return fmt.Errorf("long_ma_period must be between 1 and 200, got %d", c.LongMAPeriod)
	}
	if c.TopGainers < 1 {
		return fmt.Errorf("top_gainers must be at least 1, got %d", c.TopGainers)
	}
	if c.TakeProfitPercent.IsNegative() {
		return fmt.Errorf("take_profit_percent must not be negative, got %s", c.TakeProfitPercent)
	}
	if c.MinOrderValue.IsNegative() {
		return fmt.Errorf("min_order_value must not be negative, got %s", c.MinOrderValue)
	}
	if !c.SizingDivisor.IsPositive() {
		return fmt.Errorf("sizing_divisor must be positive, got %s", c.SizingDivisor)
	}
	if c.PollInterval <= 0 || c.PollInterval > time.Minute {
		return fmt.Errorf("poll_interval must be in (0, 1m] so no gate minute is missed, got %s", c.PollInterval)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive, got %v", c.RequestsPerSecond)
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return c.Schedule.Validate()
}

func parsePeriods(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	periods := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		periods = append(periods, n)
	}
	return periods, nil
}

// FormatPeriods inverse of the short_ma_periods format.
func FormatPeriods(periods []int) string {
	parts := make([]string, len(periods))
	for i, p := range periods {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
