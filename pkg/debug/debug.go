// Package debug provides conditional debug logging for uiforge.
//
// Debug logging is enabled by setting UIFORGE_DEBUG to anything but "0" or
// "false", or by "debug: true" in the config file:
//
//	UIFORGE_DEBUG=1 wails dev
//
// Messages go to stderr with timestamps. When disabled every function is a
// no-op.
package debug

import (
	"io"
	"log"
	"os"
	"strings"
	"time"
)

const prefix = "[UIFORGE_DEBUG] "

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if ParseFlag(os.Getenv("UIFORGE_DEBUG")) {
		SetEnabled(true)
	}
}

// ParseFlag reads a UIFORGE_DEBUG value. Empty, "0" and "false" (in any
// case) are off; anything else is on.
func ParseFlag(val string) bool {
	val = strings.TrimSpace(val)
	return val != "" && val != "0" && !strings.EqualFold(val, "false")
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled turns debug logging on or off.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, prefix, log.Ltime|log.Lmicroseconds)
	}
}

// SetOutput redirects debug output, mainly for tests.
func SetOutput(w io.Writer) {
	logger = log.New(w, prefix, 0)
}

// Log writes a printf-style message if debug logging is enabled.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming records how long name took.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogEnterExit logs entry now and exit with timing when the returned
// function runs:
//
//	defer debug.LogEnterExit("Frontend")()
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}
