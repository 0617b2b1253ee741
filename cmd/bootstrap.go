package cmd

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// bootstrapLogger 主日志器就绪之前使用的控制台日志器
var bootstrapLogger = newBootstrapLogger(os.Getenv("KEEPSAKE_LOG_LEVEL"))

// newBootstrapLogger 彩色控制台输出，level 为空或无法识别时使用 info
// 兼容旧的 DEBUG 环境变量
func newBootstrapLogger(level string) *zap.Logger {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = zapcore.InfoLevel
	}
	if os.Getenv("DEBUG") != "" {
		lvl = zapcore.DebugLevel
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	ec.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), lvl)
	return zap.New(core, zap.AddCaller()).Named("bootstrap")
}
