package logger

import "go.uber.org/zap"

// CheckError logs msg at error level when err is not nil and reports whether it was.
// A nil logger only suppresses the output.
func CheckError(err error, logger *zap.Logger, msg string, fields ...zap.Field) bool {
	if err == nil {
		return false
	}
	if logger != nil {
		logger.Error(msg, append(fields, zap.Error(err))...)
	}
	return true
}

// CheckWarn is CheckError for conditions the caller recovers from.
func CheckWarn(err error, logger *zap.Logger, msg string, fields ...zap.Field) bool {
	if err == nil {
		return false
	}
	if logger != nil {
		logger.Warn(msg, append(fields, zap.Error(err))...)
	}
	return true
}

func MakeInfo(logger *zap.Logger, msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Info(msg, fields...)
	}
}

func MakeDebug(logger *zap.Logger, msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Debug(msg, fields...)
	}
}

// Named returns a child logger, keeping nil loggers nil.
func Named(logger *zap.Logger, name string) *zap.Logger {
	if logger == nil {
		return nil
	}
	return logger.Named(name)
}
