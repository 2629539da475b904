package logger

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	// Level 日志级别 debug/info/warn/error
	Level string
	// File 日志文件路径，为空时仅输出到控制台
	File string
	// Production true 输出 JSON 格式，false 输出带颜色的控制台格式
	Production bool
}

// NewLogger builds the runtime logger. Production mode writes JSON to the
// log file and plain console output; development mode writes colored
// console output only.
// NewLogger 构建运行时日志器
func NewLogger(c Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var cores []zapcore.Core

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if c.Production {
		consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	} else {
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cores = append(cores, zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleCfg),
		zapcore.Lock(os.Stdout),
		level,
	))

	if c.File != "" {
		if err := os.MkdirAll(filepath.Dir(c.File), 0754); err != nil {
			return nil, errors.Wrap(err, "logger: create log dir")
		}
		f, err := os.OpenFile(c.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, errors.Wrap(err, "logger: open log file")
		}

		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		var fileEnc zapcore.Encoder
		if c.Production {
			fileEnc = zapcore.NewJSONEncoder(fileCfg)
		} else {
			fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder
			fileEnc = zapcore.NewConsoleEncoder(fileCfg)
		}
		cores = append(cores, zapcore.NewCore(fileEnc, zapcore.Lock(f), level))
	}

	lg := zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	return lg, nil
}
