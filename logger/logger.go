package logger

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Init points the standard logger at a rotating log file. In development we
// also mirror everything to stdout so `go run` stays usable.
func Init(path string) {
	sink := io.Writer(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})
	if os.Getenv("PODLIBRARY_ENV") == "development" {
		sink = io.MultiWriter(sink, os.Stdout)
	}
	log.SetOutput(sink)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
