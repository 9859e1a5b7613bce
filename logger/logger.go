package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the process-wide logger. It writes to stdout and is usable
// before Init is called; Init only adjusts the level.
var Log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Init sets the global log level from the application environment.
// Development gets debug output, everything else info and above.
func Init(appEnv string) {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}
	Log = Log.Level(level)
}
