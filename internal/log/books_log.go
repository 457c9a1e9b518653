package log

import (
	"github.com/project/catalog/pkg/logger"
	"go.uber.org/zap"
)

func InfoCreateBook(l *zap.Logger, msg string, traceID, title string, authorID int64, id ...int64) {
	fields := []zap.Field{
		zap.String("trace_id", traceID),
		zap.String("book_title", title),
		zap.Int64("author_id", authorID),
		zap.String("action", CreateBook),
	}
	if len(id) > 0 {
		fields = append(fields, zap.Int64("book_id", id[0]))
	}
	logger.MakeInfo(l, msg, fields...)
}

func ErrorCreateBook(l *zap.Logger, err error, msg string, traceID, title string, authorID int64) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.String("book_title", title),
		zap.Int64("author_id", authorID),
		zap.String("action", CreateBook))
}

func InfoGetBook(l *zap.Logger, msg string, traceID string, bookID int64) {
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.Int64("book_id", bookID),
		zap.String("action", GetBook))
}

func InfoListBooks(l *zap.Logger, msg string, traceID string, count int) {
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.Int("count", count),
		zap.String("action", ListBooks))
}

func InfoDeleteBook(l *zap.Logger, msg string, traceID string, bookID, authorID int64) {
	logger.MakeInfo(l, msg,
		zap.String("trace_id", traceID),
		zap.Int64("book_id", bookID),
		zap.Int64("author_id", authorID),
		zap.String("action", DeleteBook))
}

func ErrorDeleteBook(l *zap.Logger, err error, msg string, traceID string, bookID int64) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.Int64("book_id", bookID),
		zap.String("action", DeleteBook))
}


func ErrorGetBook(l *zap.Logger, err error, msg string, traceID string, bookID int64) bool {
	return logger.CheckError(err, l, msg,
		zap.String("trace_id", traceID),
		zap.Int64("book_id", bookID),
		zap.String("action", GetBook))
}
