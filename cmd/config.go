package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"dispatch/internal/core/domain/geo"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
)

// Config holds every setting of the dispatch service.
type Config struct {
	HTTPPort string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBAutoMigrate bool

	AverageSpeedKmh float64
	WeightTime      float64
	WeightRating    float64
	WeightLoad      float64
	WeightDistance  float64

	// AutoDispatchSchedule is a cron expression with seconds; empty disables the job.
	AutoDispatchSchedule string

	// KafkaHost is a comma separated broker list; empty disables publishing.
	KafkaHost              string
	KafkaOrderChangedTopic string

	// JWTSecret signs admin tokens; empty disables admin authentication.
	JWTSecret string

	LogLevel string
}

// LoadConfig reads configuration in order: .env (if present), environment,
// command line flags. Later sources override earlier ones.
func LoadConfig(args []string) (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := configFromEnv(DefaultConfig())
	if err != nil {
		return Config{}, err
	}

	flags := pflag.NewFlagSet("dispatch", pflag.ContinueOnError)
	flags.StringVar(&cfg.HTTPPort, "http-port", cfg.HTTPPort, "HTTP listen port")
	flags.StringVar(&cfg.DBHost, "db-host", cfg.DBHost, "postgres host")
	flags.StringVar(&cfg.DBPort, "db-port", cfg.DBPort, "postgres port")
	flags.StringVar(&cfg.DBUser, "db-user", cfg.DBUser, "postgres user")
	flags.StringVar(&cfg.DBPassword, "db-password", cfg.DBPassword, "postgres password")
	flags.StringVar(&cfg.DBName, "db-name", cfg.DBName, "postgres database")
	flags.StringVar(&cfg.DBSslMode, "db-sslmode", cfg.DBSslMode, "postgres sslmode")
	flags.BoolVar(&cfg.DBAutoMigrate, "auto-migrate", cfg.DBAutoMigrate, "create or update tables on startup")
	flags.Float64Var(&cfg.AverageSpeedKmh, "average-speed", cfg.AverageSpeedKmh, "average courier speed in km/h")
	flags.Float64Var(&cfg.WeightTime, "weight-time", cfg.WeightTime, "score weight of the ETA")
	flags.Float64Var(&cfg.WeightRating, "weight-rating", cfg.WeightRating, "score weight of the rating")
	flags.Float64Var(&cfg.WeightLoad, "weight-load", cfg.WeightLoad, "score weight of the active orders")
	flags.Float64Var(&cfg.WeightDistance, "weight-distance", cfg.WeightDistance, "score weight of the distance")
	flags.StringVar(&cfg.AutoDispatchSchedule, "auto-dispatch-schedule", cfg.AutoDispatchSchedule,
		"cron schedule (with seconds) of automatic dispatch, empty disables it")
	flags.StringVar(&cfg.KafkaHost, "kafka-host", cfg.KafkaHost, "comma separated kafka brokers")
	flags.StringVar(&cfg.KafkaOrderChangedTopic, "kafka-order-changed-topic", cfg.KafkaOrderChangedTopic,
		"topic of order status changes")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "HS256 secret of admin tokens")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")

	if err = flags.Parse(args); err != nil {
		return Config{}, err
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func configFromEnv(cfg Config) (Config, error) {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	var errList []error
	float := func(key string, dst *float64) {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(key, err))
			return
		}
		*dst = f
	}
	boolean := func(key string, dst *bool) {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(key, err))
			return
		}
		*dst = b
	}

	str("HTTP_PORT", &cfg.HTTPPort)
	str("DB_HOST", &cfg.DBHost)
	str("DB_PORT", &cfg.DBPort)
	str("DB_USER", &cfg.DBUser)
	str("DB_PASSWORD", &cfg.DBPassword)
	str("DB_NAME", &cfg.DBName)
	str("DB_SSLMODE", &cfg.DBSslMode)
	boolean("DB_AUTO_MIGRATE", &cfg.DBAutoMigrate)
	float("DISPATCH_AVERAGE_SPEED_KMH", &cfg.AverageSpeedKmh)
	float("DISPATCH_WEIGHT_TIME", &cfg.WeightTime)
	float("DISPATCH_WEIGHT_RATING", &cfg.WeightRating)
	float("DISPATCH_WEIGHT_LOAD", &cfg.WeightLoad)
	float("DISPATCH_WEIGHT_DISTANCE", &cfg.WeightDistance)
	str("AUTO_DISPATCH_SCHEDULE", &cfg.AutoDispatchSchedule)
	str("KAFKA_HOST", &cfg.KafkaHost)
	str("KAFKA_ORDER_CHANGED_TOPIC", &cfg.KafkaOrderChangedTopic)
	str("JWT_SECRET", &cfg.JWTSecret)
	str("LOG_LEVEL", &cfg.LogLevel)

	if err := errors.Join(errList...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can be used to start the service.
func (c Config) Validate() error {
	var errList []error

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port <= 0 || port > 65535 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("HTTP_PORT", c.HTTPPort, 1, 65535))
	}
	if c.DBHost == "" {
		errList = append(errList, errs.NewValueIsRequiredError("DB_HOST"))
	}
	if c.DBName == "" {
		errList = append(errList, errs.NewValueIsRequiredError("DB_NAME"))
	}
	if _, err := geo.NewEstimator(c.AverageSpeedKmh); err != nil {
		errList = append(errList, err)
	}
	if err := c.Weights().Validate(); err != nil {
		errList = append(errList, err)
	}
	if c.AutoDispatchSchedule != "" {
		if _, err := cronParser.Parse(c.AutoDispatchSchedule); err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("AUTO_DISPATCH_SCHEDULE", err))
		}
	}
	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		errList = append(errList, errs.NewValueIsRequiredError("KAFKA_ORDER_CHANGED_TOPIC"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errList = append(errList, err)
	}

	return errors.Join(errList...)
}

// Weights returns the score weights.
func (c Config) Weights() services.Weights {
	return services.Weights{
		Time:     c.WeightTime,
		Rating:   c.WeightRating,
		Load:     c.WeightLoad,
		Distance: c.WeightDistance,
	}
}

// KafkaBrokers splits KafkaHost into broker addresses.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// DSN returns the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}
	return level, nil
}

// Same parser as cron.WithSeconds.
var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)
