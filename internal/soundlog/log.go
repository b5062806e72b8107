// Package soundlog is the module's single structured-logging entry point,
// wrapping github.com/charmbracelet/log the way the teacher repo pulls it
// into its go.mod but otherwise leaves every component to log however it
// likes -- here, a shared logger so the core library, WAV I/O, and the CLI
// all emit consistent, leveled output that a caller can tune with
// SetLevel.
package soundlog

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "soundseg",
})

// SetLevel adjusts the minimum level emitted. CLI tools wire this to a
// -v/--verbose flag; the library itself never calls it.
func SetLevel(level log.Level) {
	logger.SetLevel(level)
}

// Debugf logs a low-volume diagnostic about an edit operation: a refused
// delete, or a write gap that was zero-filled.
func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

// Warnf logs a condition a caller should probably notice, such as a
// malformed WAV chunk being skipped.
func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}

// Infof logs routine operational events from the CLI (playback started).
func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

// Errorf logs a failure the caller needs to act on.
func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}
