package log

import (
	"github.com/project/catalog/pkg/logger"
	"go.uber.org/zap"
)

func InfoCreateAuthor(l *zap.Logger, msg string, traceID, firstName, lastName string, id ...int64) {
	fields := []zap.Field{
		zap.String("trace_id", traceID),
		zap.String("first_name", firstName),
		zap.String("last_name", lastName),
		zap.String("action", CreateAuthor),
	}
	if len(id) > 0 {
		fields = append(fields, zap.Int64("author_id", id[0]))
	}
	logger.MakeInfo(l, msg, fields...)
}

func ErrorCreateAuthor(l *zap.Logger, err error, msg string, traceID, firstName, lastName string) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("first_name", firstName),
		zap.String("last_name", lastName),
		zap.String("action", CreateAuthor))
}

func InfoGetAuthor(l *zap.Logger, msg string, traceID string, authorID int64) {
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.Int64("author_id", authorID),
		zap.String("action", GetAuthor))
}

func InfoListAuthors(l *zap.Logger, msg string, traceID string, count int) {
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.Int("count", count),
		zap.String("action", ListAuthors))
}

func InfoDeleteAuthor(l *zap.Logger, msg string, traceID string, authorID int64, bookIDs ...int64) {
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.Int64("author_id", authorID),
		zap.Int64s("book_ids", bookIDs),
		zap.String("action", DeleteAuthor))
}

func ErrorDeleteAuthor(l *zap.Logger, err error, msg string, traceID string, authorID int64) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.Int64("author_id", authorID),
		zap.String("action", DeleteAuthor))
}

func ErrorGetAuthor(l *zap.Logger, err error, msg string, traceID string, authorID int64) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.Int64("author_id", authorID),
		zap.String("action", GetAuthor))
}
