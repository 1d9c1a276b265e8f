// Package logger routes jsonrec diagnostics through logrus.
package logger

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/kr/pretty"
	log "github.com/sirupsen/logrus"
)

// EnvLogLevel names the environment variable read by Initialize.
const EnvLogLevel = "JSONREC_LOGLEVEL"

func Initialize() {

	switch logLevel := os.Getenv(EnvLogLevel); logLevel {
	case "trace":
		SetConsoleLogger(log.TraceLevel)
	case "debug":
		SetConsoleLogger(log.DebugLevel)
	case "info":
		SetConsoleLogger(log.InfoLevel)
	case "warn":
		SetConsoleLogger(log.WarnLevel)
	default:
		SetConsoleLogger(log.ErrorLevel)
	}
}

func SetConsoleLogger(level log.Level) {

	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	log.SetLevel(level)
}

// SetOutput redirects log output; tests use it to capture messages.
func SetOutput(w io.Writer) { log.SetOutput(w) }

// Enabled reports whether messages at level would be written.
func Enabled(level log.Level) bool { return log.IsLevelEnabled(level) }

func TraceMessage(format string, v ...interface{}) {
	if log.IsLevelEnabled(log.TraceLevel) {
		logMultiLine(fmt.Sprintf(format, preFormatArgs(v)...), log.Trace)
	}
}

func DebugMessage(format string, v ...interface{}) {
	if log.IsLevelEnabled(log.DebugLevel) {
		logMultiLine(fmt.Sprintf(format, preFormatArgs(v)...), log.Debug)
	}
}

func InfoMessage(format string, v ...interface{}) {
	if log.IsLevelEnabled(log.InfoLevel) {
		logMultiLine(fmt.Sprintf(format, preFormatArgs(v)...), log.Info)
	}
}

func WarnMessage(format string, v ...interface{}) {
	if log.IsLevelEnabled(log.WarnLevel) {
		logMultiLine(fmt.Sprintf(format, preFormatArgs(v)...), log.Warn)
	}
}

func ErrorMessage(format string, v ...interface{}) {
	if log.IsLevelEnabled(log.ErrorLevel) {
		logMultiLine(fmt.Sprintf(format, preFormatArgs(v)...), log.Error)
	}
}

// preFormatArgs renders composite arguments with kr/pretty. Values that
// implement fmt.Stringer or error keep their own rendering.
func preFormatArgs(v []interface{}) []interface{} {
	vv := []interface{}{}
	for _, o := range v {
		switch o.(type) {
		case fmt.Stringer, error:
			vv = append(vv, o)
			continue
		}
		k := reflect.ValueOf(o).Kind()
		if k == reflect.Struct ||
			k == reflect.Interface ||
			k == reflect.Ptr ||
			k == reflect.Slice ||
			k == reflect.Array ||
			k == reflect.Map {
			vv = append(vv, pretty.Formatter(o))
		} else {
			vv = append(vv, o)
		}
	}
	return vv
}

func logMultiLine(
	message string,
	logFunc func(args ...interface{}),
) {

	now := time.Now()
	s := bufio.NewScanner(strings.NewReader(message))
	for s.Scan() {
		log.WithTime(now)
		logFunc(s.Text())
	}
}
