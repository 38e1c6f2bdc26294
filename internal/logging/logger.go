package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the shared application logger.
var Logger = logrus.New()

// Init configures the shared logger: JSON lines to a rotating file plus
// plain text on stdout. Unknown levels fall back to info.
func Init(level, file string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if file == "" {
		Logger.SetOutput(os.Stdout)
		return
	}

	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			Logger.Warnf("cannot create log directory %s: %v", dir, err)
			Logger.SetOutput(os.Stdout)
			return
		}
	}

	rotating := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	Logger.SetOutput(io.MultiWriter(os.Stdout, rotating))
}
