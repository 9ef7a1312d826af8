package zap

import (
	"github.com/lintang-b-s/osm-disjoint-paths/pkg/logger/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a console logger writing to stderr, stdout is reserved for solver output.
func New(cfg config.Configuration) (*zap.Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimeFormat)
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.Level(cfg.Level)),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return zapCfg.Build()
}
