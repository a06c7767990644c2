package logger

import (
	"log"
	"os"
)

var std = log.New(os.Stdout, "", log.LstdFlags)

// Init initializes the basic printf-style logger.
// Kept for startup logging before the structured logger is configured.
func Init() {
	std.SetOutput(os.Stdout)
}

// Info logs an informational message
func Info(format string, v ...interface{}) {
	std.Printf("[INFO] "+format, v...)
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	std.Printf("[ERROR] "+format, v...)
}
