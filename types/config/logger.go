package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

var (
	logger     echo.Logger
	onceLogger sync.Once
)

// SafeBuffer is a thread-safe wrapper around bytes.Buffer
type SafeBuffer struct {
	sync.RWMutex
	buffer bytes.Buffer
}

func (sb *SafeBuffer) Write(p []byte) (n int, err error) {
	sb.Lock()
	defer sb.Unlock()
	return sb.buffer.Write(p)
}

func (sb *SafeBuffer) Bytes() []byte {
	sb.RLock()
	defer sb.RUnlock()
	return sb.buffer.Bytes()
}

func (sb *SafeBuffer) String() string {
	sb.RLock()
	defer sb.RUnlock()
	return sb.buffer.String()
}

// LoggerWrapper fans writes out to multiple writers
type LoggerWrapper struct {
	sync.Mutex
	writers []io.Writer
}

func (lw *LoggerWrapper) Write(p []byte) (n int, err error) {
	lw.Lock()
	defer lw.Unlock()

	for _, writer := range lw.writers {
		n, err = writer.Write(p)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func ParseLogLevel(level string) log.Lvl {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return log.DEBUG
	case "INFO":
		return log.INFO
	case "ERROR":
		return log.ERROR
	case "OFF":
		return log.OFF
	default:
		return log.WARN
	}
}

func GetLogger() echo.Logger {
	onceLogger.Do(func() {
		config := GetConfig()
		e := echo.New()
		e.Logger.SetLevel(ParseLogLevel(config.Log.Level))
		e.Logger.SetOutput(os.Stderr)

		logger = e.Logger
	})
	return logger
}

// GetLoggerForEntity returns a logger prefixed with the entity key. Everything it
// writes is also captured in the returned buffer.
func GetLoggerForEntity(entityType string, entityId interface{}) (echo.Logger, *SafeBuffer) {
	entityKey := fmt.Sprintf("%s:%s", entityType, entityId)

	buffer := &SafeBuffer{}
	logWriter := &LoggerWrapper{
		writers: []io.Writer{buffer, os.Stderr},
	}

	e := echo.New()
	e.Logger.SetLevel(GetLogger().Level())
	e.Logger.SetOutput(logWriter)
	e.Logger.SetPrefix(entityKey)

	return e.Logger, buffer
}
