package zlog

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	once   sync.Once
)

// Init 初始化全局日志器，logPath 为空时只输出到控制台
func Init(logPath string) {
	once.Do(func() {
		logger = newLogger(logPath)
	})
}

func newLogger(logPath string) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			zapcore.InfoLevel,
		),
	}

	if logPath != "" {
		// 文件输出走 lumberjack 滚动
		fileWriter := &lumberjack.Logger{
			Filename:   filepath.Join(logPath, "sadam.log"),
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(fileWriter),
			zapcore.InfoLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCallerSkip(1), zap.AddCaller())
}

func l() *zap.Logger {
	if logger == nil {
		Init("")
	}
	return logger
}

func Debug(msg string, fields ...zap.Field) {
	l().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	l().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	l().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	l().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	l().Fatal(msg, fields...)
}
