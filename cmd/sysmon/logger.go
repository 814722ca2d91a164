//go:build linux

package main

import (
	"go.uber.org/zap"
)

// newLogger builds a production JSON logger at level, writing to path or
// stderr when path is empty.
func newLogger(level, path string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = lvl
	if path != "" {
		loggerConfig.OutputPaths = []string{path}
		loggerConfig.ErrorOutputPaths = []string{path}
	}
	return loggerConfig.Build()
}
