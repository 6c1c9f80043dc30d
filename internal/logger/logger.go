package logger

import (
	"kebab-shop-demo/internal/config"

	"go.uber.org/zap"
)

// NewZapLog builds a production zap logger from the configured level and
// format. Console format is meant for local development only.
func NewZapLog(cfg config.Log) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	zapcfg := zap.NewProductionConfig()
	zapcfg.Level = lvl
	if cfg.Format == "console" {
		zapcfg.Encoding = "console"
	}

	return zapcfg.Build()
}
