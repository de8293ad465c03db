package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New は本番ならJSON、それ以外はコンソール向けのロガーを返す。
func New(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}
