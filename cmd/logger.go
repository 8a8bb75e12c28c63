package cmd

import "go.uber.org/zap"

// NewLogger creates a JSON production logger at the given level.
func NewLogger(level string) (*zap.Logger, error) {
	loggerLvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = loggerLvl

	return loggerCfg.Build()
}
