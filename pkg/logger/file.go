package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFile builds the service logger: JSON entries at info level, appended to
// logFile and mirrored to stdout. Missing parent directories are created.
func NewFile(logFile string) (*zap.Logger, error) {
	return newTee(logFile, zapcore.Lock(os.Stdout))
}

func newTee(logFile string, console zapcore.WriteSyncer) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(file), console),
		zap.InfoLevel,
	)
	return zap.New(core, zap.AddCaller()), nil
}
