package app

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envProduction = "production"

// NewLogger builds the process logger: JSON in production, colored console
// output everywhere else. Both variants log to stdout.
func NewLogger(env string) *zap.Logger {
	config := loggerConfig(env)

	logger, err := config.Build()
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}

func loggerConfig(env string) zap.Config {
	if env == envProduction {
		config := zap.NewProductionConfig()
		config.OutputPaths = []string{"stdout"}
		return config
	}

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.OutputPaths = []string{"stdout"}
	return config
}
