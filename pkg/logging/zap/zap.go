package zap

import (
	"go.uber.org/zap"
)

// NewLogger returns the development logger used with --dev.
func NewLogger() *zap.SugaredLogger {
	logger, _ := zap.NewDevelopment()
	return logger.Sugar()
}

// New returns a development logger when dev is set and a production
// logger otherwise.
func New(dev bool) (*zap.SugaredLogger, error) {
	if dev {
		return NewLogger(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
