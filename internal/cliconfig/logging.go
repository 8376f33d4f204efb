package cliconfig

import (
	"os"

	"github.com/rs/zerolog"

	logAdapter "github.com/bft-labs/dreamteam/internal/adapters/log"
)

// Logger returns the console logger used before and after configuration is
// loaded, at the given level.
func Logger(level string) zerolog.Logger {
	return logAdapter.NewConsoleLogger(os.Stderr, level)
}
