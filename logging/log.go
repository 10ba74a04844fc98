package logging

/**
 * log.go - logging wrapper
 */

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

/**
 * Rotation defaults for file output
 */
const (
	defaultMaxSize    = 10 // megabytes
	defaultMaxBackups = 3
	defaultMaxAge     = 30 // days
)

/**
 * Logging initialize
 */
func init() {
	logrus.SetFormatter(new(MyFormatter))
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetOutput(os.Stdout)
}

/**
 * File rotation options, zero values mean defaults
 */
type Rotation struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

/**
 * Configure logging
 */
func Configure(output string, l string) error {
	return ConfigureRotation(output, l, Rotation{})
}

/**
 * Configure logging with explicit file rotation options
 */
func ConfigureRotation(output string, l string, r Rotation) error {

	if output == "" || output == "stdout" {
		logrus.SetOutput(os.Stdout)
	} else if output == "stderr" {
		logrus.SetOutput(os.Stderr)
	} else {
		logger := &lumberjack.Logger{
			Filename:   output,
			MaxSize:    orDefault(r.MaxSize, defaultMaxSize),
			MaxBackups: orDefault(r.MaxBackups, defaultMaxBackups),
			MaxAge:     orDefault(r.MaxAge, defaultMaxAge),
			Compress:   true,
		}
		logrus.SetOutput(logger)
	}

	if l == "" {
		return nil
	}

	level, err := logrus.ParseLevel(l)
	if err != nil {
		return fmt.Errorf("unknown loglevel %q: %w", l, err)
	}

	logrus.SetLevel(level)
	return nil
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}

/**
 * Our custom formatter
 */
type MyFormatter struct{}

/**
 * Format entry. Fields other than name are appended as key=value
 */
func (f *MyFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := &bytes.Buffer{}
	name, ok := entry.Data["name"]
	if !ok {
		name = "default"
	}
	fmt.Fprintf(b, "%s [%-5.5s] (%s): %s", entry.Time.Format("2006-01-02 15:04:05"), strings.ToUpper(entry.Level.String()), name, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		if k != "name" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

/**
 * Add logger name as field var
 */
func For(name string) *logrus.Entry {
	return logrus.WithField("name", name)
}

/* ----- Wrap logrus ------ */

func Debug(args ...interface{}) {
	logrus.Debug(args...)
}

func Info(args ...interface{}) {
	logrus.Info(args...)
}

func Warn(args ...interface{}) {
	logrus.Warn(args...)
}

func Error(args ...interface{}) {
	logrus.Error(args...)
}

func Fatal(args ...interface{}) {
	logrus.Fatal(args...)
}
