package log

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// 未调用 InitLog 时（例如单元测试）只输出 warn 以上
var logger = newLogger("mjx", log.WarnLevel)

func newLogger(appName string, level log.Level) *log.Logger {
	// 使用 os.Stdout，stderr 在部分 IDE 控制台里整段标红
	l := log.New(os.Stdout)
	l.SetPrefix(appName)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	l.SetReportCaller(true)
	// 包装了一层，调用者信息要多跳一帧
	l.SetCallerOffset(1)
	l.SetLevel(level)
	return l
}

func InitLog(appName string, logLevel string) {
	logger = newLogger(appName, ParseLevel(logLevel))
}

// ParseLevel 未知级别回退到 info
func ParseLevel(logLevel string) log.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func Fatal(format string, args ...any) {
	logger.Fatalf(format, args...)
}

func Info(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warn(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Error(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Debug(format string, args ...any) {
	logger.Debugf(format, args...)
}
