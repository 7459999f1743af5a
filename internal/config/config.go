package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Dataset locations and display settings.
	AreaType           string
	SimulationDataPath string
	ShortTermDataPath  string
	LongTermDataPath   string

	Thresholds domain.Thresholds
	RiskBands  domain.RiskBands

	// Alert publishing configuration.
	KafkaEnabled    bool
	KafkaBrokers    []string
	KafkaAlertTopic string
	PublishInterval time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
// Variables in a .env file (ENV_FILE, default ".env") are loaded first without
// overriding the process environment. Overheating thresholds and the night
// window have no defaults; every missing or invalid value is reported.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	var errs *multierror.Error

	thresholds := domain.Thresholds{}
	thresholds.IAT, err = requiredFloat("THRESHOLD_OVERHEATING_IAT")
	errs = multierror.Append(errs, err)
	thresholds.OverheatingPct, err = requiredPercentage("THRESHOLD_OVERHEATING_PERCENTAGE")
	errs = multierror.Append(errs, err)
	thresholds.NightOverheatingPct, err = requiredPercentage("THRESHOLD_NIGHT_OVERHEATING_PERCENTAGE")
	errs = multierror.Append(errs, err)
	thresholds.Night.Start, err = requiredHour("NIGHT_START_HOUR")
	errs = multierror.Append(errs, err)
	thresholds.Night.End, err = requiredHour("NIGHT_END_HOUR")
	errs = multierror.Append(errs, err)

	bands := domain.RiskBands{}
	bands.High, err = percentageOrDefault("HIGH_RISK_THRESHOLD", 50)
	errs = multierror.Append(errs, err)
	bands.Medium, err = percentageOrDefault("MEDIAN_RISK_THRESHOLD", 20)
	errs = multierror.Append(errs, err)
	if bands.Medium > bands.High {
		errs = multierror.Append(errs, errors.New("MEDIAN_RISK_THRESHOLD must not exceed HIGH_RISK_THRESHOLD"))
	}

	publishInterval, err := time.ParseDuration(sharedcfg.EnvOrDefault("PUBLISH_INTERVAL", "1h"))
	if err != nil || publishInterval <= 0 {
		errs = multierror.Append(errs, errors.New("invalid PUBLISH_INTERVAL"))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8070"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AreaType:           sharedcfg.EnvOrDefault("AREA_TYPE", domain.DefaultAreaType),
		SimulationDataPath: sharedcfg.EnvOrDefault("SIMULATION_DATA_PATH", "data/simulation.csv"),
		ShortTermDataPath:  sharedcfg.EnvOrDefault("SHORT_TERM_FORECAST_DATA_PATH", "data/shortterm_forecast.csv"),
		LongTermDataPath:   sharedcfg.EnvOrDefault("LONG_TERM_SIMULATION_DATA_PATH", "data/longterm_simulation.csv"),

		Thresholds: thresholds,
		RiskBands:  bands,

		KafkaEnabled:    kafkaEnabled,
		KafkaBrokers:    brokers,
		KafkaAlertTopic: sharedcfg.EnvOrDefault("KAFKA_ALERT_TOPIC", "overheating-alerts"),
		PublishInterval: publishInterval,
	}

	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaAlertTopic == "" {
		return nil, errors.New("KAFKA_ALERT_TOPIC is required")
	}

	return cfg, nil
}

func loadDotEnv() error {
	path := sharedcfg.EnvOrDefault("ENV_FILE", ".env")
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func requiredFloat(name string) (float64, error) {
	s := os.Getenv(name)
	if s == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s: %q is not a number", name, s)
	}
	return v, nil
}

func requiredPercentage(name string) (float64, error) {
	v, err := requiredFloat(name)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("invalid %s: %v outside 0-100", name, v)
	}
	return v, nil
}

func percentageOrDefault(name string, def float64) (float64, error) {
	if os.Getenv(name) == "" {
		return def, nil
	}
	return requiredPercentage(name)
}

func requiredHour(name string) (int, error) {
	s := os.Getenv(name)
	if s == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	h, err := strconv.Atoi(s)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid %s: %q is not an hour 0-23", name, s)
	}
	return h, nil
}
