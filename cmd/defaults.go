package cmd

import (
	"dispatch/internal/core/domain/geo"
	"dispatch/internal/core/domain/services"
)

const (
	defaultHTTPPort               = "8082"
	defaultDBHost                 = "localhost"
	defaultDBPort                 = "5432"
	defaultDBUser                 = "username"
	defaultDBPassword             = "secret"
	defaultDBName                 = "dispatch"
	defaultDBSslMode              = "disable"
	defaultDBAutoMigrate          = true
	defaultAverageSpeedKmh        = geo.DefaultAverageSpeedKmh
	defaultAutoDispatchSchedule   = ""
	defaultKafkaOrderChangedTopic = "order.status.changed"
	defaultLogLevel               = "info"
)

// DefaultConfig returns the configuration used when nothing is overridden.
// Kafka publishing and admin authentication stay disabled.
func DefaultConfig() Config {
	weights := services.DefaultWeights()

	return Config{
		HTTPPort:               defaultHTTPPort,
		DBHost:                 defaultDBHost,
		DBPort:                 defaultDBPort,
		DBUser:                 defaultDBUser,
		DBPassword:             defaultDBPassword,
		DBName:                 defaultDBName,
		DBSslMode:              defaultDBSslMode,
		DBAutoMigrate:          defaultDBAutoMigrate,
		AverageSpeedKmh:        defaultAverageSpeedKmh,
		WeightTime:             weights.Time,
		WeightRating:           weights.Rating,
		WeightLoad:             weights.Load,
		WeightDistance:         weights.Distance,
		AutoDispatchSchedule:   defaultAutoDispatchSchedule,
		KafkaOrderChangedTopic: defaultKafkaOrderChangedTopic,
		LogLevel:               defaultLogLevel,
	}
}
